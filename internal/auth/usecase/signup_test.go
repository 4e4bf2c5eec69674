package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
)

func TestSignupChallengeAlreadyRegistered(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(_ context.Context, email string) (entity.Identity, error) {
		return entity.Identity{ID: 1, Email: email}, nil
	}

	_, err := uc.SignupChallenge(context.Background(), SignupChallengeInput{Email: "taken@nu.edu.pk"})
	assertBusinessCode(t, err, goerror.CodeConflict)

	if len(deps.mailer.sent) != 0 {
		t.Error("mail was sent for a registered address")
	}
}

func TestSignupChallengeInvalidEmail(t *testing.T) {
	uc, _ := newTestUsecase(t)

	if _, err := uc.SignupChallenge(context.Background(), SignupChallengeInput{Email: "not-an-email"}); err == nil {
		t.Fatal("SignupChallenge() error = nil, want validation error")
	}
}

func TestSignupChallengeSuccess(t *testing.T) {
	uc, deps := newTestUsecase(t)

	var stored entity.Challenge
	deps.challenge.upsertFn = func(_ context.Context, ch entity.Challenge, ttl time.Duration) error {
		stored = ch
		if ttl != 5*time.Minute {
			t.Errorf("upsert ttl = %v, want 5m", ttl)
		}
		return nil
	}

	out, err := uc.SignupChallenge(context.Background(), SignupChallengeInput{Email: "New@NU.edu.pk", FirstName: "Ayesha"})
	if err != nil {
		t.Fatalf("SignupChallenge() error = %v", err)
	}

	if out.Email != "new@nu.edu.pk" {
		t.Errorf("Email = %q, want lowercased", out.Email)
	}

	if stored.Code != "482913" || stored.Purpose != entity.ChallengePurposeSignup {
		t.Errorf("stored challenge = %+v", stored)
	}

	if len(deps.mailer.sent) != 1 || deps.mailer.sent[0] != "482913" {
		t.Errorf("mailed codes = %v", deps.mailer.sent)
	}
}

func TestSignupChallengeDeliveryFailure(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.mailer.sendCodeFn = func(context.Context, string, string, string, entity.ChallengePurpose, int) error {
		return errors.New("smtp down")
	}

	_, err := uc.SignupChallenge(context.Background(), SignupChallengeInput{Email: "x@nu.edu.pk"})
	assertBusinessCode(t, err, goerror.CodeInternal)

	// The stored challenge must not survive a failed delivery.
	if deps.challenge.invalidateCalls != 1 {
		t.Errorf("invalidate calls = %d, want 1", deps.challenge.invalidateCalls)
	}
}

func validSignupConfirmInput() SignupConfirmInput {
	return SignupConfirmInput{
		Email:    "ayesha@nu.edu.pk",
		Code:     "482913",
		Password: "s3cret-passw0rd",
		Role:     "student",
		Profile: SignupProfileInput{
			FirstName:  "Ayesha",
			LastName:   "Khan",
			Department: "Computer Science",
			StudentID:  "FA21-BCS-001",
			Semester:   5,
		},
	}
}

func pendingChallenge(now time.Time, purpose entity.ChallengePurpose, attempts int) entity.Challenge {
	return entity.Challenge{
		Email:     "ayesha@nu.edu.pk",
		Purpose:   purpose,
		Code:      "482913",
		Attempts:  attempts,
		ExpiresAt: now.Add(5 * time.Minute),
	}
}

func TestSignupConfirmNoChallenge(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.SignupConfirm(context.Background(), validSignupConfirmInput())
	assertBusinessCode(t, err, goerror.CodeNotFound)
}

func TestSignupConfirmExpired(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		ch := pendingChallenge(deps.clock.Now(), p, 0)
		ch.ExpiresAt = deps.clock.Now().Add(-time.Second)
		return ch, nil
	}

	_, err := uc.SignupConfirm(context.Background(), validSignupConfirmInput())
	assertBusinessCode(t, err, goerror.CodeUnauthorized)

	if deps.challenge.invalidateCalls != 1 {
		t.Errorf("invalidate calls = %d, want 1 (lapsed challenge destroyed)", deps.challenge.invalidateCalls)
	}
}

func TestSignupConfirmWrongCode(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 0), nil
	}
	deps.challenge.recordFailedFn = func(context.Context, entity.ChallengePurpose, string) (int, error) {
		return 1, nil
	}

	in := validSignupConfirmInput()
	in.Code = "000000"

	_, err := uc.SignupConfirm(context.Background(), in)
	assertBusinessCode(t, err, goerror.CodeUnauthorized)

	gerr := err.(*goerror.Error)
	if got := gerr.Fields()["attempts_remaining"]; got != "2" {
		t.Errorf("attempts_remaining = %q, want 2", got)
	}

	if deps.challenge.invalidateCalls != 0 {
		t.Error("challenge destroyed before attempts ran out")
	}
}

func TestSignupConfirmAttemptsExhausted(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 2), nil
	}
	deps.challenge.recordFailedFn = func(context.Context, entity.ChallengePurpose, string) (int, error) {
		return 3, nil
	}

	in := validSignupConfirmInput()
	in.Code = "000000"

	_, err := uc.SignupConfirm(context.Background(), in)
	assertBusinessCode(t, err, goerror.CodeTooManyRequest)

	if deps.challenge.invalidateCalls != 1 {
		t.Errorf("invalidate calls = %d, want 1 (exhausted challenge destroyed)", deps.challenge.invalidateCalls)
	}
}

func TestSignupConfirmSuccess(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 0), nil
	}

	var created entity.NewIdentity
	deps.db.createIdentityFn = func(_ context.Context, in entity.NewIdentity) error {
		created = in
		return nil
	}

	out, err := uc.SignupConfirm(context.Background(), validSignupConfirmInput())
	if err != nil {
		t.Fatalf("SignupConfirm() error = %v", err)
	}

	if out.Role != "student" || out.Email != "ayesha@nu.edu.pk" {
		t.Errorf("SignupConfirm() = %+v", out)
	}

	if !created.Verified {
		t.Error("created identity is not verified")
	}

	if created.PasswordHash == "s3cret-passw0rd" {
		t.Error("password stored in clear")
	}

	if !deps.password.Verify(created.PasswordHash, "s3cret-passw0rd") {
		t.Error("stored hash does not verify against the password")
	}

	if created.Profile.Student == nil || created.Profile.Student.StudentID != "FA21-BCS-001" {
		t.Errorf("created profile = %+v", created.Profile)
	}

	// Consumed exactly once.
	if deps.challenge.invalidateCalls != 1 {
		t.Errorf("invalidate calls = %d, want 1", deps.challenge.invalidateCalls)
	}
}

func TestSignupConfirmRaceOnCreate(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.challenge.findFn = func(_ context.Context, p entity.ChallengePurpose, _ string) (entity.Challenge, error) {
		return pendingChallenge(deps.clock.Now(), p, 0), nil
	}
	deps.db.createIdentityFn = func(context.Context, entity.NewIdentity) error {
		return goerror.ErrConflict
	}

	_, err := uc.SignupConfirm(context.Background(), validSignupConfirmInput())
	assertBusinessCode(t, err, goerror.CodeConflict)
}

func TestSignupConfirmProfileVariantMismatch(t *testing.T) {
	uc, _ := newTestUsecase(t)

	in := validSignupConfirmInput()
	in.Role = "faculty"
	// Faculty fields missing; the student variant does not carry over.

	_, err := uc.SignupConfirm(context.Background(), in)
	assertBusinessCode(t, err, goerror.CodeInvalidInput)
}

func TestSignupConfirmAdminRejected(t *testing.T) {
	uc, _ := newTestUsecase(t)

	in := validSignupConfirmInput()
	in.Role = "admin"

	if _, err := uc.SignupConfirm(context.Background(), in); err == nil {
		t.Fatal("SignupConfirm() error = nil, want rejection for admin role")
	}
}
