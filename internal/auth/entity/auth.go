package entity

import "time"

// Identity is a registered account keyed by its unique lowercase email.
// PasswordHash is the only form the password ever takes at rest.
type Identity struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	Active       bool
	Profile      Profile
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewIdentity carries the fields needed to persist a fresh identity.
type NewIdentity struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	Profile      Profile
}

// Challenge is a pending one-time verification code for an (email, purpose)
// pair. Attempts counts failed code submissions; the record is destroyed on
// success, on expiry, and when attempts reach the configured ceiling.
type Challenge struct {
	Email     string           `json:"email"`
	Purpose   ChallengePurpose `json:"purpose"`
	Code      string           `json:"code"`
	Attempts  int              `json:"attempts"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// ExpiredAt reports whether the challenge lapsed at the given instant.
func (c Challenge) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// DeviceInfo is optional client metadata recorded with a session.
type DeviceInfo struct {
	DeviceID  string     `json:"device_id,omitempty"`
	Type      DeviceType `json:"type,omitempty"`
	UserAgent string     `json:"user_agent,omitempty"`
}

// Session is a refresh-token-backed login. TokenHash is the HMAC of the
// refresh-token value; the cleartext token is never stored. A revoked
// session stays around (inactive) until its natural expiry so revoking
// twice is a no-op rather than an error.
type Session struct {
	TokenHash string     `json:"token_hash"`
	UserID    int64      `json:"user_id"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Device    DeviceInfo `json:"device"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Usable reports whether the session can still mint access tokens.
func (s Session) Usable(now time.Time) bool {
	return s.Active && now.Before(s.ExpiresAt)
}
