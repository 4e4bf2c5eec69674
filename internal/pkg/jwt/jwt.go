package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 signing key is less than 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrClassMismatch is returned when a token of one class (access, refresh)
	// is presented where the other class is required.
	ErrClassMismatch = errors.New("token class mismatch")
)

// Class distinguishes short-lived access tokens from long-lived refresh
// tokens. The two classes are signed with independent secrets, so a token of
// one class can never verify as the other.
type Class string

const (
	// ClassAccess is the class of short-lived API tokens.
	ClassAccess Class = "access"
	// ClassRefresh is the class of long-lived session tokens.
	ClassRefresh Class = "refresh"
)

// JWT defines the operations needed by the app: issue a token pair and
// verify a token of an expected class.
type JWT interface {
	// GeneratePair creates a signed access and refresh token for the user.
	GeneratePair(uid int64, email, role string) (access string, refresh string, err error)
	// GenerateAccess creates a signed access token only, leaving any
	// existing refresh token untouched.
	GenerateAccess(uid int64, email, role string) (string, error)
	// Verify parses and validates the token, requiring the given class,
	// and returns its claims.
	Verify(tokenStr string, class Class) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type jwtContextKey struct{}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// AccessSecret is the HMAC signing key for access tokens.
	AccessSecret []byte
	// RefreshSecret is the HMAC signing key for refresh tokens.
	RefreshSecret []byte
	// Issuer is the token issuer value.
	Issuer string
	// Audiences are the accepted token audiences.
	Audiences []string
	// AccessTTL is the access token time-to-live.
	AccessTTL time.Duration
	// RefreshTTL is the refresh token time-to-live.
	RefreshTTL time.Duration
	// Clock provides the current time source.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims is a helper for wrapping registered claims with a payload.
type Claims struct {
	// RegisteredClaims holds the standard JWT claims.
	jwt.RegisteredClaims
	// UserID is the authenticated user identifier.
	UserID int64 `json:"user_id,string"`
	// UserEmail is the authenticated user email.
	UserEmail string `json:"user_email"`
	// UserRole is the authenticated user role.
	UserRole string `json:"user_role"`
	// TokenClass marks the token as access or refresh.
	TokenClass Class `json:"token_class"`
}

// GetAuth returns the JWT claims stored in the context, if any.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores JWT claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
