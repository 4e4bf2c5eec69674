package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// Generator defines the contract for one-time verification codes that are
// delivered out of band (e.g. by email) and compared against user input.
type Generator interface {
	// Generate creates a new random numeric code.
	Generate() (string, error)
	// Match reports whether the submitted code equals the stored one.
	// The comparison is constant time.
	Match(submitted, stored string) bool
}

// Numeric produces uniformly random numeric codes of a fixed length.
type Numeric struct {
	length int
}

// NewNumeric constructs a Numeric generator. Lengths outside 4..10 fall back
// to 6 digits.
func NewNumeric(length int) *Numeric {
	if length < 4 || length > 10 {
		length = 6
	}

	return &Numeric{length: length}
}

// Generate creates a new random numeric code using crypto/rand. The first
// digit is never zero, so a 6-digit code lies in [100000, 999999].
func (n *Numeric) Generate() (string, error) {
	low := pow10(n.length - 1)
	span := big.NewInt(9 * low)

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	return fmt.Sprintf("%d", v.Int64()+low), nil
}

// Match reports whether the submitted code equals the stored one.
func (n *Numeric) Match(submitted, stored string) bool {
	if submitted == "" || stored == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}

func pow10(n int) int64 {
	v := int64(1)
	for range n {
		v *= 10
	}

	return v
}
