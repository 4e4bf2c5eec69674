package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestLostfoundRequiresAuthentication(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/v1/lostfound/items", nil, "")

	if status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got status=%d", status)
	}
}

func TestReportAndClaimItem(t *testing.T) {
	reporter := signupAndLogin(t, uniqueEmail("real-reporter"), "Secret123!")

	var reported struct {
		ItemID string `json:"item_id"`
	}
	status, body := doJSON(t, http.MethodPost, "/api/v1/lostfound/items", map[string]any{
		"title":       "Black umbrella",
		"description": "Left near the library entrance",
		"location":    "Central Library",
		"status":      "found",
	}, reporter.AccessToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("report failed: status=%d message=%q", status, errEnv.Message)
	}
	decodeSuccess(t, body, &reported)
	if reported.ItemID == "" {
		t.Fatal("missing item id after report")
	}

	var detail struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	status, body = doJSON(t, http.MethodGet, "/api/v1/lostfound/items/"+reported.ItemID, nil, reporter.AccessToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("detail failed: status=%d message=%q", status, errEnv.Message)
	}
	decodeSuccess(t, body, &detail)
	if detail.Title != "Black umbrella" {
		t.Fatalf("detail returned title %q", detail.Title)
	}

	claimer := signupAndLogin(t, uniqueEmail("real-claimer"), "Secret123!")

	status, body = doJSON(t, http.MethodPut, "/api/v1/lostfound/items/"+reported.ItemID+"/claim", nil, claimer.AccessToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("claim failed: status=%d message=%q", status, errEnv.Message)
	}

	// A second claim must be rejected.
	status, _ = doJSON(t, http.MethodPut, "/api/v1/lostfound/items/"+reported.ItemID+"/claim", nil, reporter.AccessToken)
	if status != http.StatusConflict {
		t.Fatalf("expected conflict on double claim, got status=%d", status)
	}
}

func TestReportIdempotency(t *testing.T) {
	reporter := signupAndLogin(t, uniqueEmail("real-idem"), "Secret123!")

	payload := map[string]any{
		"title":           "Silver water bottle",
		"description":     "Found on the sports field",
		"location":        "Sports Complex",
		"status":          "found",
		"idempotency_key": fmt.Sprintf("e2e-%d", time.Now().UnixNano()),
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/lostfound/items", payload, reporter.AccessToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("first report failed: status=%d message=%q", status, errEnv.Message)
	}

	status, _ = doJSON(t, http.MethodPost, "/api/v1/lostfound/items", payload, reporter.AccessToken)
	if status != http.StatusConflict {
		t.Fatalf("expected conflict on duplicate report, got status=%d", status)
	}
}

func TestDeleteItemRequiresAdmin(t *testing.T) {
	reporter := signupAndLogin(t, uniqueEmail("real-delete"), "Secret123!")

	var reported struct {
		ItemID string `json:"item_id"`
	}
	status, body := doJSON(t, http.MethodPost, "/api/v1/lostfound/items", map[string]any{
		"title":       "Red notebook",
		"description": "Found in lecture hall B",
		"location":    "Lecture Hall B",
		"status":      "found",
	}, reporter.AccessToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("report failed: status=%d message=%q", status, errEnv.Message)
	}
	decodeSuccess(t, body, &reported)

	status, _ = doJSON(t, http.MethodDelete, "/api/v1/lostfound/items/"+reported.ItemID, nil, reporter.AccessToken)
	if status != http.StatusForbidden {
		t.Fatalf("expected forbidden for non-admin delete, got status=%d", status)
	}
}
