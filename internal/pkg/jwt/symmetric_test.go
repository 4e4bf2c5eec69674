package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type fixedUUID struct{}

func (fixedUUID) Generate() string { return "0198a2b3-0000-7000-8000-000000000001" }

func newTestSymmetric(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		AccessSecret:  []byte(strings.Repeat("a", 64)),
		RefreshSecret: []byte(strings.Repeat("r", 64)),
		Issuer:        "intelliverse",
		Audiences:     []string{"intelliverse-api"},
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Clock:         fixedClock{now: now},
		UUID:          fixedUUID{},
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	return s
}

func TestNewHS512ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{
		AccessSecret:  []byte("short"),
		RefreshSecret: []byte(strings.Repeat("r", 64)),
	})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("NewHS512() error = %v, want ErrSigningKeyTooShort", err)
	}
}

func TestGeneratePairAndVerify(t *testing.T) {
	now := time.Now()
	s := newTestSymmetric(t, now)

	access, refresh, err := s.GeneratePair(42, "ali@nu.edu.pk", "student")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	if access == refresh {
		t.Fatal("GeneratePair() access and refresh tokens are identical")
	}

	clm, err := s.Verify(access, ClassAccess)
	if err != nil {
		t.Fatalf("Verify(access) error = %v", err)
	}

	if clm.UserID != 42 || clm.UserEmail != "ali@nu.edu.pk" || clm.UserRole != "student" {
		t.Errorf("Verify(access) claims = %+v", clm)
	}

	if clm.TokenClass != ClassAccess {
		t.Errorf("Verify(access) class = %q, want access", clm.TokenClass)
	}

	if _, err := s.Verify(refresh, ClassRefresh); err != nil {
		t.Fatalf("Verify(refresh) error = %v", err)
	}
}

func TestGenerateAccess(t *testing.T) {
	s := newTestSymmetric(t, time.Now())

	access, err := s.GenerateAccess(7, "x@y.z", "student")
	if err != nil {
		t.Fatalf("GenerateAccess() error = %v", err)
	}

	clm, err := s.Verify(access, ClassAccess)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if clm.UserID != 7 || clm.TokenClass != ClassAccess {
		t.Errorf("Verify() claims = %+v", clm)
	}

	if _, err := s.Verify(access, ClassRefresh); err == nil {
		t.Error("Verify(access as refresh) error = nil, want failure")
	}
}

func TestVerifyClassMismatch(t *testing.T) {
	s := newTestSymmetric(t, time.Now())

	access, refresh, err := s.GeneratePair(1, "a@b.c", "faculty")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	// Cross-class verification must fail: the other class's secret will not
	// validate the signature.
	if _, err := s.Verify(access, ClassRefresh); err == nil {
		t.Error("Verify(access as refresh) error = nil, want failure")
	}

	if _, err := s.Verify(refresh, ClassAccess); err == nil {
		t.Error("Verify(refresh as access) error = nil, want failure")
	}
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	s := newTestSymmetric(t, issued)

	access, _, err := s.GeneratePair(1, "a@b.c", "student")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	if _, err := s.Verify(access, ClassAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify(expired) error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	s := newTestSymmetric(t, time.Now())

	if _, err := s.Verify("not-a-token", ClassAccess); err == nil {
		t.Error("Verify(garbage) error = nil, want failure")
	}
}
