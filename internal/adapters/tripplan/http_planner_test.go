package tripplan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"route-chain-service/internal/domain"
)

func testChain() domain.RouteChain {
	load := &domain.Load{
		ID:            "L1",
		Origin:        domain.GeoPoint{Lat: 42.4, Lon: -71.1, City: "Boston", State: "MA"},
		Destination:   domain.GeoPoint{Lat: 32.8, Lon: -96.8, City: "Dallas", State: "TX"},
		DistanceMiles: 1550,
		RevenueAmount: 3200,
	}
	return domain.RouteChain{Legs: []domain.ChainLeg{{Load: load, DeadheadBefore: 5}}, FinalDeadhead: 5}
}

func testCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:      domain.GeoPoint{Lat: 42.3601, Lon: -71.0589, City: "Boston", State: "MA"},
		Destination: domain.GeoPoint{Lat: 32.7767, Lon: -96.7970, City: "Dallas", State: "TX"},
	}
}

func TestGeneratePlan(t *testing.T) {
	var gotPrompt string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotPrompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "Drive south on I-84.\n\nDay 1: Boston to Harrisburg."}}}},
			},
		})
	}))
	defer srv.Close()

	planner, err := NewHTTPTripPlanner(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan, err := planner.GeneratePlan(context.Background(), testChain(), testCriteria())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Summary != "Drive south on I-84." {
		t.Errorf("summary = %q, want first paragraph", plan.Summary)
	}
	if !strings.Contains(plan.DetailedPlan, "Day 1") {
		t.Errorf("detailed plan missing body: %q", plan.DetailedPlan)
	}

	for _, want := range []string{"Boston, MA", "Dallas, TX", "Segment 1", "Total Revenue: $3200.00"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGeneratePlanEmptyChain(t *testing.T) {
	planner, err := NewHTTPTripPlanner("http://localhost:0", "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := planner.GeneratePlan(context.Background(), domain.RouteChain{}, testCriteria()); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

func TestNewHTTPTripPlannerValidation(t *testing.T) {
	if _, err := NewHTTPTripPlanner("", "key"); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := NewHTTPTripPlanner("http://x", ""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
