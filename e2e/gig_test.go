package e2e

import (
	"net/http"
	"testing"
)

func TestCreateGig(t *testing.T) {
	ta := setupApp(t)
	token, userID := registerUser(t, ta.app, "client")

	resp, err := doRequest(ta.app, http.MethodPost, "/api/gigs/",
		`{"title":"Build a portfolio site","description":"A static site with a handful of pages and a contact form.","budget":500}`, token)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	body := parseJSON(t, resp)
	if body["status"] != "open" {
		t.Errorf("expected new gig to be open, got %v", body["status"])
	}
	if body["ownerId"] != userID {
		t.Errorf("expected owner %s, got %v", userID, body["ownerId"])
	}
	owner, _ := body["owner"].(map[string]interface{})
	if owner["email"] != "client@example.com" {
		t.Errorf("expected owner summary, got %v", body["owner"])
	}

	// Unauthenticated
	resp, err = doRequest(ta.app, http.MethodPost, "/api/gigs/",
		`{"title":"Another gig here","description":"A long enough description of the work involved.","budget":100}`, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestCreateGigValidation(t *testing.T) {
	ta := setupApp(t)
	token, _ := registerUser(t, ta.app, "client")

	// Title too short, description too short, budget below 1.
	resp, err := doRequest(ta.app, http.MethodPost, "/api/gigs/",
		`{"title":"abc","description":"too short","budget":0}`, token)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)

	body := parseJSON(t, resp)
	if errorCode(t, body) != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", body)
	}
}

func TestListGigs(t *testing.T) {
	ta := setupApp(t)
	token, _ := registerUser(t, ta.app, "client")
	createGig(t, ta.app, token, "Build a React dashboard", 800)
	createGig(t, ta.app, token, "Design a logo", 200)

	// Public listing, no auth.
	resp, err := doRequest(ta.app, http.MethodGet, "/api/gigs/", "", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["count"] != float64(2) {
		t.Errorf("expected 2 gigs, got %v", body["count"])
	}

	// Search by title substring.
	resp, err = doRequest(ta.app, http.MethodGet, "/api/gigs/?search=react", "", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body = parseJSON(t, resp)
	if body["count"] != float64(1) {
		t.Errorf("expected 1 matching gig, got %v", body["count"])
	}
}

func TestMyGigs(t *testing.T) {
	ta := setupApp(t)
	token, _ := registerUser(t, ta.app, "client")
	other, _ := registerUser(t, ta.app, "othr")
	createGig(t, ta.app, token, "Build a portfolio site", 500)
	createGig(t, ta.app, other, "Design a brochure", 300)

	resp, err := doRequest(ta.app, http.MethodGet, "/api/gigs/my-gigs", "", token)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["count"] != float64(1) {
		t.Errorf("expected 1 owned gig, got %v", body["count"])
	}
}

func TestGetGig(t *testing.T) {
	ta := setupApp(t)
	token, _ := registerUser(t, ta.app, "client")
	gigID := createGig(t, ta.app, token, "Build a portfolio site", 500)

	resp, err := doRequest(ta.app, http.MethodGet, "/api/gigs/"+gigID, "", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["id"] != gigID {
		t.Errorf("expected gig %s, got %v", gigID, body["id"])
	}

	// Malformed id
	resp, err = doRequest(ta.app, http.MethodGet, "/api/gigs/not-a-uuid", "", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)

	// Unknown id
	resp, err = doRequest(ta.app, http.MethodGet, "/api/gigs/00000000-0000-0000-0000-000000000000", "", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}
