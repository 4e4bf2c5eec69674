package tests

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@intelliverse.dev", prefix, time.Now().UnixNano())
}

// mailpitURL returns the Mailpit API base address, or "" when the mailbox is
// not reachable from the test run. Flows that must read a delivered
// verification code are skipped without it.
func mailpitURL() string {
	return strings.TrimSpace(os.Getenv("INTELLIVERSE_MAILPIT_URL"))
}

func fetchVerificationCode(t *testing.T, email string) string {
	t.Helper()

	base := mailpitURL()
	if base == "" {
		t.Skip("set INTELLIVERSE_MAILPIT_URL to run flows that read delivered codes")
	}

	searchURL := strings.TrimRight(base, "/") + "/api/v1/search?query=" + url.QueryEscape("to:"+email)

	// Delivery is asynchronous from the test's point of view.
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if code := latestCode(t, searchURL); code != "" {
			return code
		}
		time.Sleep(250 * time.Millisecond)
	}

	t.Fatalf("no verification mail arrived for %s", email)

	return ""
}

func latestCode(t *testing.T, searchURL string) string {
	t.Helper()

	resp, err := httpClient.Get(searchURL)
	if err != nil {
		t.Fatalf("search mailbox: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		Messages []struct {
			ID string `json:"ID"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode mailbox search: %v", err)
	}
	if len(result.Messages) == 0 {
		return ""
	}

	msgResp, err := httpClient.Get(strings.TrimRight(mailpitURL(), "/") + "/api/v1/message/" + result.Messages[0].ID)
	if err != nil {
		t.Fatalf("fetch mail message: %v", err)
	}
	defer msgResp.Body.Close()

	raw, err := io.ReadAll(msgResp.Body)
	if err != nil {
		t.Fatalf("read mail message: %v", err)
	}

	return codePattern.FindString(string(raw))
}

type tokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// signupAndLogin provisions a fresh verified student account and returns its
// token pair. It requires a reachable mailbox to read the delivered codes.
func signupAndLogin(t *testing.T, email, password string) tokenData {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/signup/challenge", map[string]string{
		"email":      email,
		"first_name": "Test",
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("signup challenge failed: status=%d message=%q", status, errEnv.Message)
	}

	status, body = doJSON(t, http.MethodPost, "/api/v1/auth/signup/confirm", map[string]any{
		"email":    email,
		"code":     fetchVerificationCode(t, email),
		"password": password,
		"role":     "student",
		"profile": map[string]any{
			"first_name": "Test",
			"last_name":  "User",
			"department": "Computer Science",
			"student_id": fmt.Sprintf("STU-%d", time.Now().UnixNano()%1_000_000),
			"semester":   3,
		},
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("signup confirm failed: status=%d message=%q", status, errEnv.Message)
	}

	status, body = doJSON(t, http.MethodPost, "/api/v1/auth/login/challenge", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login challenge failed: status=%d message=%q", status, errEnv.Message)
	}

	status, body = doJSON(t, http.MethodPost, "/api/v1/auth/login/confirm", map[string]any{
		"email": email,
		"code":  fetchVerificationCode(t, email),
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login confirm failed: status=%d message=%q", status, errEnv.Message)
	}

	var data tokenData
	decodeSuccess(t, body, &data)
	if data.AccessToken == "" || data.RefreshToken == "" {
		t.Fatal("missing token pair after login confirm")
	}

	return data
}
