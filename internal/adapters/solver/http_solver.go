package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"route-chain-service/internal/platform/httpretry"
	"route-chain-service/internal/platform/obs"
	"route-chain-service/internal/ports"
)

// HTTPSolver implements the VRPTWSolver port against a hosted solver service
// (POST /solve_routes). The heavy combinatorial work lives on the other side
// of this boundary; this adapter only ships the derived problem and decodes
// the reply. Safe for concurrent use.
type HTTPSolver struct {
	session *http.Client
	baseURL string
}

func NewHTTPSolver(baseURL string) (*HTTPSolver, error) {
	if baseURL == "" {
		return nil, errors.New("solver base URL is empty")
	}

	return &HTTPSolver{
		session: &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
	}, nil
}

func (s *HTTPSolver) Solve(ctx context.Context, problem ports.SolverProblem) (_ ports.SolverSolution, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	payload, err := json.Marshal(problem)
	if err != nil {
		return ports.SolverSolution{}, fmt.Errorf("solve: marshal problem: %w", err)
	}

	resp, err := httpretry.DoWithRetry(ctx, s.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/solve_routes", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return ports.SolverSolution{}, fmt.Errorf("solve: request failed: %w", err)
	}
	defer resp.Body.Close()

	var solution ports.SolverSolution
	if err := json.NewDecoder(resp.Body).Decode(&solution); err != nil {
		return ports.SolverSolution{}, fmt.Errorf("solve: decode solution: %w", err)
	}

	return solution, nil
}
