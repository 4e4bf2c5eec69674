package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/hash"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
)

type mockRepoDB struct {
	getIdentityByEmailFn func(ctx context.Context, email string) (entity.Identity, error)
	createIdentityFn     func(ctx context.Context, in entity.NewIdentity) error
	updateLastLoginFn    func(ctx context.Context, id int64, at time.Time) error
}

func (m *mockRepoDB) GetIdentityByEmail(ctx context.Context, email string) (entity.Identity, error) {
	if m.getIdentityByEmailFn != nil {
		return m.getIdentityByEmailFn(ctx, email)
	}
	return entity.Identity{}, goerror.ErrNotFound
}

func (m *mockRepoDB) CreateIdentity(ctx context.Context, in entity.NewIdentity) error {
	if m.createIdentityFn != nil {
		return m.createIdentityFn(ctx, in)
	}
	return nil
}

func (m *mockRepoDB) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, id, at)
	}
	return nil
}

type mockRepoChallenge struct {
	upsertFn        func(ctx context.Context, ch entity.Challenge, ttl time.Duration) error
	findFn          func(ctx context.Context, purpose entity.ChallengePurpose, email string) (entity.Challenge, error)
	recordFailedFn  func(ctx context.Context, purpose entity.ChallengePurpose, email string) (int, error)
	invalidateFn    func(ctx context.Context, purpose entity.ChallengePurpose, email string) error
	invalidateCalls int
}

func (m *mockRepoChallenge) UpsertChallenge(ctx context.Context, ch entity.Challenge, ttl time.Duration) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, ch, ttl)
	}
	return nil
}

func (m *mockRepoChallenge) FindChallenge(ctx context.Context, purpose entity.ChallengePurpose, email string) (entity.Challenge, error) {
	if m.findFn != nil {
		return m.findFn(ctx, purpose, email)
	}
	return entity.Challenge{}, goerror.ErrNotFound
}

func (m *mockRepoChallenge) RecordFailedAttempt(ctx context.Context, purpose entity.ChallengePurpose, email string) (int, error) {
	if m.recordFailedFn != nil {
		return m.recordFailedFn(ctx, purpose, email)
	}
	return 1, nil
}

func (m *mockRepoChallenge) InvalidateChallenge(ctx context.Context, purpose entity.ChallengePurpose, email string) error {
	m.invalidateCalls++
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, purpose, email)
	}
	return nil
}

type mockRepoSession struct {
	createFn         func(ctx context.Context, session entity.Session) error
	findActiveFn     func(ctx context.Context, tokenHash string) (entity.Session, error)
	deactivateFn     func(ctx context.Context, tokenHash string) error
	deactivateUserFn func(ctx context.Context, userID int64) error
}

func (m *mockRepoSession) CreateSession(ctx context.Context, session entity.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockRepoSession) FindActiveSession(ctx context.Context, tokenHash string) (entity.Session, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, tokenHash)
	}
	return entity.Session{}, goerror.ErrNotFound
}

func (m *mockRepoSession) DeactivateSession(ctx context.Context, tokenHash string) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, tokenHash)
	}
	return nil
}

func (m *mockRepoSession) DeactivateUserSessions(ctx context.Context, userID int64) error {
	if m.deactivateUserFn != nil {
		return m.deactivateUserFn(ctx, userID)
	}
	return nil
}

type mockMailer struct {
	sendCodeFn func(ctx context.Context, to, name, code string, purpose entity.ChallengePurpose, expiryMinutes int) error
	sent       []string
}

func (m *mockMailer) SendCode(ctx context.Context, to, name, code string, purpose entity.ChallengePurpose, expiryMinutes int) error {
	m.sent = append(m.sent, code)
	if m.sendCodeFn != nil {
		return m.sendCodeFn(ctx, to, name, code, purpose, expiryMinutes)
	}
	return nil
}

// stubCodes always generates the same code and matches by plain equality.
type stubCodes struct{ code string }

func (s stubCodes) Generate() (string, error) { return s.code, nil }

func (s stubCodes) Match(submitted, stored string) bool { return submitted == stored }

type stubUID struct{ next int64 }

func (s *stubUID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

// stubConfig answers the handful of keys the usecases read and panics on
// anything else via the embedded nil interface.
type stubConfig struct {
	config.Config
	maxAttempts int
}

func (s stubConfig) GetMinute(string) time.Duration { return 5 * time.Minute }

// GetDay only answers the shared refresh lifetime key; reading any other
// key yields zero so a stale key name surfaces in assertions.
func (s stubConfig) GetDay(key string) time.Duration {
	if key == "jwt.refresh_ttl_days" {
		return 7 * 24 * time.Hour
	}
	return 0
}

func (s stubConfig) GetInt(string) int { return s.maxAttempts }

type testDeps struct {
	db        *mockRepoDB
	challenge *mockRepoChallenge
	session   *mockRepoSession
	mailer    *mockMailer
	uid       *stubUID
	clock     fixedClock
	jwt       *jwt.Symmetric
	password  hash.Hash
	hmac      hash.Hash
}

func newTestUsecase(t *testing.T) (*Usecase, *testDeps) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	clk := fixedClock{now: time.Now().Truncate(time.Second)}

	tok, err := jwt.NewHS512(jwt.Config{
		AccessSecret:  []byte(strings.Repeat("a", 64)),
		RefreshSecret: []byte(strings.Repeat("r", 64)),
		Issuer:        "intelliverse",
		Audiences:     []string{"intelliverse-api"},
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Clock:         realClock{},
		UUID:          seqUUID{},
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	deps := &testDeps{
		db:        &mockRepoDB{},
		challenge: &mockRepoChallenge{},
		session:   &mockRepoSession{},
		mailer:    &mockMailer{},
		uid:       &stubUID{},
		clock:     clk,
		jwt:       tok,
		password:  hash.NewBcrypt(4, ""),
		hmac:      hash.NewHMACSHA256("test-hmac-secret"),
	}

	uc := New(Dependency{
		RepoDB:        deps.db,
		RepoChallenge: deps.challenge,
		RepoSession:   deps.session,
		Mailer:        deps.mailer,
		Validator:     v,
		Config:        stubConfig{maxAttempts: 3},
		Password:      deps.password,
		HMAC:          deps.hmac,
		Codes:         stubCodes{code: "482913"},
		UID:           deps.uid,
		Clock:         clk,
		JWT:           tok,
		Instrument:    instrument.NewNoop(),
	})

	return uc, deps
}

// The JWT clock must move for real so tokens verify against wall time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type seqUUID struct{}

func (seqUUID) Generate() string { return "0198a2b3-0000-7000-8000-000000000001" }

func mustHashPassword(t *testing.T, h hash.Hash, password string) string {
	t.Helper()

	hashed, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	return string(hashed)
}

func assertBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatal("error = nil, want business error")
	}

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *goerror.Error", err, err)
	}

	if gerr.Code() != code {
		t.Fatalf("error code = %v, want %v", gerr.Code(), code)
	}
}
