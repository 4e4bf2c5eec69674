package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
)

func issueRefreshToken(t *testing.T, deps *testDeps) (string, entity.Session) {
	t.Helper()

	_, refresh, err := deps.jwt.GeneratePair(42, "bilal@nu.edu.pk", "faculty")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	hashed, err := deps.hmac.Hash(refresh)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	return refresh, entity.Session{
		TokenHash: string(hashed),
		UserID:    42,
		Email:     "bilal@nu.edu.pk",
		Role:      entity.RoleFaculty,
		Active:    true,
		CreatedAt: deps.clock.Now(),
		ExpiresAt: deps.clock.Now().Add(7 * 24 * time.Hour),
	}
}

func TestRefreshSuccess(t *testing.T) {
	uc, deps := newTestUsecase(t)
	refresh, session := issueRefreshToken(t, deps)

	deps.session.findActiveFn = func(_ context.Context, tokenHash string) (entity.Session, error) {
		if tokenHash != session.TokenHash {
			t.Errorf("looked up hash %q, want %q", tokenHash, session.TokenHash)
		}
		return session, nil
	}

	out, err := uc.Refresh(context.Background(), RefreshInput{RefreshToken: refresh})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	clm, err := deps.jwt.Verify(out.AccessToken, jwt.ClassAccess)
	if err != nil {
		t.Fatalf("Verify(minted access) error = %v", err)
	}

	if clm.UserID != 42 || clm.UserRole != "faculty" {
		t.Errorf("minted claims = %+v", clm)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	uc, deps := newTestUsecase(t)

	access, _, err := deps.jwt.GeneratePair(42, "bilal@nu.edu.pk", "faculty")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	_, err = uc.Refresh(context.Background(), RefreshInput{RefreshToken: access})
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestRefreshRevokedSession(t *testing.T) {
	uc, deps := newTestUsecase(t)
	refresh, _ := issueRefreshToken(t, deps)

	deps.session.findActiveFn = func(context.Context, string) (entity.Session, error) {
		return entity.Session{}, goerror.ErrNotFound
	}

	_, err := uc.Refresh(context.Background(), RefreshInput{RefreshToken: refresh})
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestRefreshGarbageToken(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.Refresh(context.Background(), RefreshInput{RefreshToken: "not-a-token"})
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestLogoutIdempotent(t *testing.T) {
	uc, deps := newTestUsecase(t)

	var deactivated []string
	deps.session.deactivateFn = func(_ context.Context, tokenHash string) error {
		deactivated = append(deactivated, tokenHash)
		return nil
	}

	// Any string logs out cleanly, valid token or not.
	for _, token := range []string{"whatever", "whatever", "expired.jwt.value"} {
		if err := uc.Logout(context.Background(), LogoutInput{RefreshToken: token}); err != nil {
			t.Fatalf("Logout(%q) error = %v", token, err)
		}
	}

	if len(deactivated) != 3 {
		t.Errorf("deactivate calls = %d, want 3", len(deactivated))
	}

	if deactivated[0] != deactivated[1] {
		t.Error("same token hashed to different session keys")
	}
}

func TestLogoutAll(t *testing.T) {
	uc, deps := newTestUsecase(t)

	var userID int64
	deps.session.deactivateUserFn = func(_ context.Context, id int64) error {
		userID = id
		return nil
	}

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 42, UserEmail: "bilal@nu.edu.pk"})
	if err := uc.LogoutAll(ctx); err != nil {
		t.Fatalf("LogoutAll() error = %v", err)
	}

	if userID != 42 {
		t.Errorf("deactivated user = %d, want 42", userID)
	}
}

func TestLogoutAllUnauthenticated(t *testing.T) {
	uc, _ := newTestUsecase(t)

	err := uc.LogoutAll(context.Background())
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestMe(t *testing.T) {
	uc, deps := newTestUsecase(t)

	deps.db.getIdentityByEmailFn = func(_ context.Context, email string) (entity.Identity, error) {
		if email != "bilal@nu.edu.pk" {
			t.Errorf("looked up email %q", email)
		}
		return activeIdentity(t, deps, "pw"), nil
	}

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 42, UserEmail: "bilal@nu.edu.pk"})
	out, err := uc.Me(ctx)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}

	if out.UserID != 42 || out.Role != "faculty" || out.Profile.Faculty == nil {
		t.Errorf("Me() = %+v", out)
	}
}

func TestMeUnauthenticated(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.Me(context.Background())
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}
