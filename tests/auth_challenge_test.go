package tests

import (
	"net/http"
	"testing"
)

func TestSignupChallengeAcceptsNewEmail(t *testing.T) {
	// Arrange
	payload := map[string]string{
		"email":      uniqueEmail("real-signup"),
		"first_name": "Test",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/signup/challenge", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("signup challenge failed: status=%d message=%q", status, errEnv.Message)
	}
}

func TestSignupChallengeRejectsInvalidEmail(t *testing.T) {
	payload := map[string]string{"email": "not-an-email"}

	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/signup/challenge", payload, "")

	if status == http.StatusOK {
		t.Fatalf("expected validation failure, got status=%d", status)
	}
}

func TestLoginChallengeDoesNotRevealAccounts(t *testing.T) {
	// Unknown account and wrong password must produce the same message, so
	// the endpoint cannot be used to probe which emails are registered.
	unknown := map[string]string{
		"email":    uniqueEmail("real-never-registered"),
		"password": "Secret123!",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/login/challenge", unknown, "")
	if status == http.StatusOK {
		t.Fatal("login challenge for unknown account must fail")
	}
	unknownEnv := decodeError(t, body)

	status, body = doJSON(t, http.MethodPost, "/api/v1/auth/login/challenge", map[string]string{
		"email":    uniqueEmail("real-other-never-registered"),
		"password": "AnotherSecret123!",
	}, "")
	if status == http.StatusOK {
		t.Fatal("login challenge for unknown account must fail")
	}
	otherEnv := decodeError(t, body)

	if unknownEnv.Message != otherEnv.Message {
		t.Fatalf("failure messages differ: %q vs %q", unknownEnv.Message, otherEnv.Message)
	}
}

func TestSignupConfirmWithoutChallenge(t *testing.T) {
	payload := map[string]any{
		"email":    uniqueEmail("real-no-challenge"),
		"code":     "123456",
		"password": "Secret123!",
		"role":     "student",
		"profile": map[string]any{
			"first_name": "Test",
			"last_name":  "User",
			"department": "Computer Science",
			"student_id": "STU-000001",
			"semester":   1,
		},
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/signup/confirm", payload, "")

	if status != http.StatusNotFound {
		errEnv := decodeError(t, body)
		t.Fatalf("expected not found, got status=%d message=%q", status, errEnv.Message)
	}
}
