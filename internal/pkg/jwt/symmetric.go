package jwt

import (
	"errors"
	"strconv"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

// Symmetric implements JWT signing and verification using HMAC secrets, one
// per token class.
type Symmetric struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audiences     []string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	clock         clocker
	uuid          generator
}

// NewHS512 constructs a Symmetric JWT implementation using HS512.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.AccessSecret) < 64 || len(cfg.RefreshSecret) < 64 {
		return nil, ErrSigningKeyTooShort
	}

	return &Symmetric{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		issuer:        cfg.Issuer,
		audiences:     cfg.Audiences,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		clock:         cfg.Clock,
		uuid:          cfg.UUID,
	}, nil
}

// GeneratePair creates a signed access and refresh token for the user.
func (s *Symmetric) GeneratePair(uid int64, email, role string) (string, string, error) {
	access, err := s.generate(uid, email, role, ClassAccess)
	if err != nil {
		return "", "", err
	}

	refresh, err := s.generate(uid, email, role, ClassRefresh)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// GenerateAccess creates a signed access token only. Used when an existing
// session is extended rather than re-established.
func (s *Symmetric) GenerateAccess(uid int64, email, role string) (string, error) {
	return s.generate(uid, email, role, ClassAccess)
}

func (s *Symmetric) generate(uid int64, email, role string, class Class) (string, error) {
	now := s.clock.Now()

	secret, ttl := s.accessSecret, s.accessTTL
	if class == ClassRefresh {
		secret, ttl = s.refreshSecret, s.refreshTTL
	}

	return libJWT.
		NewWithClaims(libJWT.SigningMethodHS512, Claims{
			RegisteredClaims: libJWT.RegisteredClaims{
				ID:        s.uuid.Generate(),
				Subject:   strconv.FormatInt(uid, 10),
				Issuer:    s.issuer,
				Audience:  s.audiences,
				IssuedAt:  libJWT.NewNumericDate(now),
				NotBefore: libJWT.NewNumericDate(now),
				ExpiresAt: libJWT.NewNumericDate(now.Add(ttl)),
			},
			UserID:     uid,
			UserEmail:  email,
			UserRole:   role,
			TokenClass: class,
		}).
		SignedString(secret)
}

// Verify parses and validates a JWT string, requiring the given class.
//
// A token signed with the other class's secret fails signature validation,
// and a forged class claim fails the explicit class check, so both defenses
// must agree before a token is accepted.
func (s *Symmetric) Verify(tokenStr string, class Class) (Claims, error) {
	var claims Claims

	secret := s.accessSecret
	if class == ClassRefresh {
		secret = s.refreshSecret
	}

	token, err := libJWT.ParseWithClaims(tokenStr, &claims,
		func(t *libJWT.Token) (any, error) {
			if t.Method != libJWT.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}
			return secret, nil
		},
		libJWT.WithIssuer(s.issuer),
		libJWT.WithAudience(s.audiences...),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, libJWT.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, err
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.TokenClass != class {
		return Claims{}, ErrClassMismatch
	}

	return claims, nil
}
