package e2e

import (
	"fmt"
	"net/http"
	"testing"
)

func TestPlaceBid(t *testing.T) {
	ta := setupApp(t)
	owner, _ := registerUser(t, ta.app, "owner")
	freelancer, freelancerID := registerUser(t, ta.app, "free")
	gigID := createGig(t, ta.app, owner, "Build a portfolio site", 500)

	payload := fmt.Sprintf(`{"gigId":%q,"message":"I can deliver this work on time.","price":400}`, gigID)
	resp, err := doRequest(ta.app, http.MethodPost, "/api/bids/", payload, freelancer)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	body := parseJSON(t, resp)
	if body["status"] != "pending" {
		t.Errorf("expected pending bid, got %v", body["status"])
	}
	fr, _ := body["freelancer"].(map[string]interface{})
	if fr["id"] != freelancerID {
		t.Errorf("expected freelancer summary for %s, got %v", freelancerID, body["freelancer"])
	}

	// Duplicate bid on the same gig.
	resp, err = doRequest(ta.app, http.MethodPost, "/api/bids/", payload, freelancer)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)

	// Owner bidding their own gig.
	resp, err = doRequest(ta.app, http.MethodPost, "/api/bids/", payload, owner)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusForbidden)
}

func TestPlaceBidValidation(t *testing.T) {
	ta := setupApp(t)
	owner, _ := registerUser(t, ta.app, "owner")
	freelancer, _ := registerUser(t, ta.app, "free")
	gigID := createGig(t, ta.app, owner, "Build a portfolio site", 500)

	// Message below 10 chars, price below 1.
	payload := fmt.Sprintf(`{"gigId":%q,"message":"short","price":0}`, gigID)
	resp, err := doRequest(ta.app, http.MethodPost, "/api/bids/", payload, freelancer)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestMyBids(t *testing.T) {
	ta := setupApp(t)
	owner, _ := registerUser(t, ta.app, "owner")
	freelancer, _ := registerUser(t, ta.app, "free")
	g1 := createGig(t, ta.app, owner, "Build a portfolio site", 500)
	g2 := createGig(t, ta.app, owner, "Design a logo", 200)
	placeBid(t, ta.app, freelancer, g1, 400)
	placeBid(t, ta.app, freelancer, g2, 150)

	resp, err := doRequest(ta.app, http.MethodGet, "/api/bids/my-bids", "", freelancer)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["count"] != float64(2) {
		t.Errorf("expected 2 bids, got %v", body["count"])
	}

	bids, _ := body["bids"].([]interface{})
	first, _ := bids[0].(map[string]interface{})
	gig, _ := first["gig"].(map[string]interface{})
	if gig["title"] == "" {
		t.Error("expected gig summary on each bid")
	}
}

func TestBidsForGigOwnerOnly(t *testing.T) {
	ta := setupApp(t)
	owner, _ := registerUser(t, ta.app, "owner")
	freelancer, _ := registerUser(t, ta.app, "free")
	gigID := createGig(t, ta.app, owner, "Build a portfolio site", 500)
	placeBid(t, ta.app, freelancer, gigID, 400)

	resp, err := doRequest(ta.app, http.MethodGet, "/api/bids/"+gigID, "", owner)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["count"] != float64(1) {
		t.Errorf("expected 1 bid, got %v", body["count"])
	}

	// Non-owners may not list a gig's bids.
	resp, err = doRequest(ta.app, http.MethodGet, "/api/bids/"+gigID, "", freelancer)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusForbidden)
}
