package tests

import (
	"net/http"
	"testing"
)

func TestRefreshRejectsGarbageToken(t *testing.T) {
	payload := map[string]string{"refresh_token": "not-a-jwt"}

	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/refresh", payload, "")

	if status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got status=%d", status)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	payload := map[string]string{"refresh_token": "token-that-never-had-a-session"}

	for i := 0; i < 2; i++ {
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/logout", payload, "")
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("logout attempt %d failed: status=%d message=%q", i+1, status, errEnv.Message)
		}
	}
}

func TestMeRequiresAuthentication(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, "")

	if status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got status=%d", status)
	}
}

func TestFullSessionLifecycle(t *testing.T) {
	email := uniqueEmail("real-lifecycle")
	tokens := signupAndLogin(t, email, "Secret123!")

	// Refresh mints a fresh access token without touching the refresh token.
	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": tokens.RefreshToken,
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("refresh failed: status=%d message=%q", status, errEnv.Message)
	}
	decodeSuccess(t, body, &refreshed)
	if refreshed.AccessToken == "" {
		t.Fatal("missing access token after refresh")
	}

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	status, body = doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, refreshed.AccessToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("me failed: status=%d message=%q", status, errEnv.Message)
	}
	decodeSuccess(t, body, &me)
	if me.Email != email {
		t.Fatalf("me returned %q, want %q", me.Email, email)
	}
	if me.Role != "student" {
		t.Fatalf("me returned role %q, want student", me.Role)
	}

	// After logout the refresh token is dead.
	status, body = doJSON(t, http.MethodPost, "/api/v1/auth/logout", map[string]string{
		"refresh_token": tokens.RefreshToken,
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("logout failed: status=%d message=%q", status, errEnv.Message)
	}

	status, _ = doJSON(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": tokens.RefreshToken,
	}, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized after logout, got status=%d", status)
	}
}
