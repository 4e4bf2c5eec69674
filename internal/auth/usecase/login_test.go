package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

func activeIdentity(t *testing.T, deps *testDeps, password string) entity.Identity {
	t.Helper()

	return entity.Identity{
		ID:           42,
		Email:        "bilal@nu.edu.pk",
		PasswordHash: mustHashPassword(t, deps.password, password),
		Role:         entity.RoleFaculty,
		Verified:     true,
		Active:       true,
		Profile: entity.Profile{
			FirstName:  "Bilal",
			LastName:   "Ahmed",
			Department: "EE",
			Faculty:    &entity.FacultyProfile{EmployeeID: "EMP-042", Designation: "Lecturer"},
		},
	}
}

func TestLoginChallengeFailuresAreIndistinguishable(t *testing.T) {
	uc, deps := newTestUsecase(t)
	user := activeIdentity(t, deps, "correct-horse")

	tests := []struct {
		name     string
		password string
		identity func() (entity.Identity, error)
	}{
		{
			name:     "unknown email",
			password: "correct-horse",
			identity: func() (entity.Identity, error) { return entity.Identity{}, goerror.ErrNotFound },
		},
		{
			name:     "wrong password",
			password: "battery-staple",
			identity: func() (entity.Identity, error) { return user, nil },
		},
		{
			name:     "unverified account",
			password: "correct-horse",
			identity: func() (entity.Identity, error) {
				u := user
				u.Verified = false
				return u, nil
			},
		},
		{
			name:     "deactivated account",
			password: "correct-horse",
			identity: func() (entity.Identity, error) {
				u := user
				u.Active = false
				return u, nil
			},
		},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps.db.getIdentityByEmailFn = func(context.Context, string) (entity.Identity, error) {
				return tt.identity()
			}

			_, err := uc.LoginChallenge(context.Background(), LoginChallengeInput{
				Email:    "bilal@nu.edu.pk",
				Password: tt.password,
			})
			assertBusinessCode(t, err, goerror.CodeUnauthorized)
			messages = append(messages, err.(*goerror.Error).Msg())
		})
	}

	for _, msg := range messages {
		if msg != messages[0] {
			t.Fatalf("failure messages differ: %v", messages)
		}
	}

	if len(deps.mailer.sent) != 0 {
		t.Error("mail was sent for a failed credential check")
	}
}

func TestLoginChallengeSuccess(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(context.Context, string) (entity.Identity, error) {
		return activeIdentity(t, deps, "correct-horse"), nil
	}

	var stored entity.Challenge
	deps.challenge.upsertFn = func(_ context.Context, ch entity.Challenge, _ time.Duration) error {
		stored = ch
		return nil
	}

	out, err := uc.LoginChallenge(context.Background(), LoginChallengeInput{
		Email:    "Bilal@NU.edu.pk",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("LoginChallenge() error = %v", err)
	}

	if out.Email != "bilal@nu.edu.pk" {
		t.Errorf("Email = %q", out.Email)
	}

	if stored.Purpose != entity.ChallengePurposeLogin {
		t.Errorf("challenge purpose = %q, want login", stored.Purpose)
	}

	if len(deps.mailer.sent) != 1 {
		t.Errorf("mailed codes = %v", deps.mailer.sent)
	}
}

func TestLoginConfirmSuccess(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(context.Context, string) (entity.Identity, error) {
		return activeIdentity(t, deps, "correct-horse"), nil
	}
	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 0), nil
	}

	var session entity.Session
	deps.session.createFn = func(_ context.Context, s entity.Session) error {
		session = s
		return nil
	}

	var lastLoginSet bool
	deps.db.updateLastLoginFn = func(context.Context, int64, time.Time) error {
		lastLoginSet = true
		return nil
	}

	out, err := uc.LoginConfirm(context.Background(), LoginConfirmInput{
		Email:      "bilal@nu.edu.pk",
		Code:       "482913",
		DeviceID:   "dev-1",
		DeviceType: "web",
	})
	if err != nil {
		t.Fatalf("LoginConfirm() error = %v", err)
	}

	if out.AccessToken == "" || out.RefreshToken == "" || out.AccessToken == out.RefreshToken {
		t.Error("token pair is incomplete")
	}

	if out.UserID != 42 || out.Role != "faculty" || out.FullName != "Bilal Ahmed" {
		t.Errorf("LoginConfirm() = %+v", out)
	}

	// The session is keyed by the token hash, never the token itself.
	if session.TokenHash == out.RefreshToken || session.TokenHash == "" {
		t.Error("session stores the raw refresh token")
	}

	wantHash, err := deps.hmac.Hash(out.RefreshToken)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if session.TokenHash != string(wantHash) {
		t.Error("session token hash does not match the refresh token")
	}

	if !session.Active || session.UserID != 42 || session.Device.DeviceID != "dev-1" {
		t.Errorf("session = %+v", session)
	}

	if !lastLoginSet {
		t.Error("last login timestamp was not updated")
	}
}

// The session must expire together with the refresh token it anchors; both
// lifetimes come from the single jwt.refresh_ttl_days key.
func TestLoginConfirmSessionLifetimeMatchesRefreshTTL(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(context.Context, string) (entity.Identity, error) {
		return activeIdentity(t, deps, "correct-horse"), nil
	}
	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 0), nil
	}

	var session entity.Session
	deps.session.createFn = func(_ context.Context, s entity.Session) error {
		session = s
		return nil
	}

	if _, err := uc.LoginConfirm(context.Background(), LoginConfirmInput{
		Email: "bilal@nu.edu.pk",
		Code:  "482913",
	}); err != nil {
		t.Fatalf("LoginConfirm() error = %v", err)
	}

	want := deps.clock.Now().Add(7 * 24 * time.Hour)
	if !session.ExpiresAt.Equal(want) {
		t.Errorf("session expiry = %v, want %v", session.ExpiresAt, want)
	}
}

func TestLoginConfirmDeactivatedBetweenSteps(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(context.Context, string) (entity.Identity, error) {
		u := activeIdentity(t, deps, "correct-horse")
		u.Active = false
		return u, nil
	}

	_, err := uc.LoginConfirm(context.Background(), LoginConfirmInput{
		Email: "bilal@nu.edu.pk",
		Code:  "482913",
	})
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginConfirmWrongCode(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(context.Context, string) (entity.Identity, error) {
		return activeIdentity(t, deps, "correct-horse"), nil
	}
	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 0), nil
	}
	deps.challenge.recordFailedFn = func(context.Context, entity.ChallengePurpose, string) (int, error) {
		return 2, nil
	}

	_, err := uc.LoginConfirm(context.Background(), LoginConfirmInput{
		Email: "bilal@nu.edu.pk",
		Code:  "999999",
	})
	assertBusinessCode(t, err, goerror.CodeUnauthorized)

	if got := err.(*goerror.Error).Fields()["attempts_remaining"]; got != "1" {
		t.Errorf("attempts_remaining = %q, want 1", got)
	}
}
