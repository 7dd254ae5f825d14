package tripplan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"route-chain-service/internal/domain"
	"route-chain-service/internal/platform/httpretry"
	"route-chain-service/internal/platform/obs"
	"route-chain-service/internal/ports"
)

// HTTPTripPlanner implements the TripPlanner port against a hosted
// text-generation service using the generateContent REST shape. It is a
// best-effort collaborator: callers treat failures as "no plan", never as a
// search failure.
type HTTPTripPlanner struct {
	session *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewHTTPTripPlanner(baseURL, apiKey string) (*HTTPTripPlanner, error) {
	if baseURL == "" {
		return nil, errors.New("trip planner base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("trip planner api key is empty")
	}

	return &HTTPTripPlanner{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   "gemini-pro",
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (p *HTTPTripPlanner) GeneratePlan(
	ctx context.Context,
	chain domain.RouteChain,
	criteria domain.SearchCriteria,
) (_ ports.TripPlan, err error) {
	defer obs.Time(ctx, "tripplan.GeneratePlan")(&err)

	if chain.LoadCount() == 0 {
		return ports.TripPlan{}, errors.New("generate plan: chain has no loads")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(chain, criteria)}}}},
	})
	if err != nil {
		return ports.TripPlan{}, fmt.Errorf("generate plan: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)

	resp, err := httpretry.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", p.apiKey)
		return req, nil
	})
	if err != nil {
		return ports.TripPlan{}, fmt.Errorf("generate plan: request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.TripPlan{}, fmt.Errorf("generate plan: decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return ports.TripPlan{}, errors.New("generate plan: empty response")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	return ports.TripPlan{
		Summary:      firstParagraph(text),
		DetailedPlan: text,
	}, nil
}

// buildPrompt renders the chain as a segment-by-segment briefing for the
// language model.
func buildPrompt(chain domain.RouteChain, criteria domain.SearchCriteria) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional trucking route planner. Analyze the following route and provide a detailed trip plan.\n\n")
	fmt.Fprintf(&b, "Origin: %s, %s\n", criteria.Origin.City, criteria.Origin.State)
	fmt.Fprintf(&b, "Destination: %s, %s\n", criteria.Destination.City, criteria.Destination.State)
	fmt.Fprintf(&b, "Total Distance: %.0f miles\n", chain.TotalDistanceMiles())
	fmt.Fprintf(&b, "Total Revenue: $%.2f\n", chain.TotalRevenue())
	fmt.Fprintf(&b, "Total Deadhead: %.0f miles\n", chain.TotalDeadheadMiles())
	fmt.Fprintf(&b, "Number of Segments: %d\n", chain.LoadCount())

	for i, leg := range chain.Legs {
		fmt.Fprintf(&b, "\nSegment %d:\n", i+1)
		fmt.Fprintf(&b, "  - From: %s, %s\n", leg.Load.Origin.City, leg.Load.Origin.State)
		fmt.Fprintf(&b, "  - To: %s, %s\n", leg.Load.Destination.City, leg.Load.Destination.State)
		fmt.Fprintf(&b, "  - Distance: %.0f miles\n", leg.Load.DistanceMiles)
		fmt.Fprintf(&b, "  - Revenue: $%.2f\n", leg.Load.RevenueAmount)
		fmt.Fprintf(&b, "  - Deadhead before segment: %.1f miles\n", leg.DeadheadBefore)
		if leg.Load.PickupWindow != nil {
			fmt.Fprintf(&b, "  - Pickup Window: %s to %s\n",
				leg.Load.PickupWindow.Earliest.Format(time.RFC3339),
				leg.Load.PickupWindow.Latest.Format(time.RFC3339))
		}
		if leg.Load.DeliveryWindow != nil {
			fmt.Fprintf(&b, "  - Delivery Window: %s to %s\n",
				leg.Load.DeliveryWindow.Earliest.Format(time.RFC3339),
				leg.Load.DeliveryWindow.Latest.Format(time.RFC3339))
		}
	}

	b.WriteString("\nProvide a day-by-day itinerary with fuel and rest stops, honoring DOT hours of service.")
	return b.String()
}

func firstParagraph(text string) string {
	if idx := strings.Index(text, "\n\n"); idx > 0 {
		return text[:idx]
	}
	if len(text) > 200 {
		return text[:200]
	}
	return text
}
