package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"route-chain-service/internal/adapters/cache"
	"route-chain-service/internal/adapters/repositories"
	"route-chain-service/internal/adapters/solver"
	"route-chain-service/internal/adapters/tripplan"
	"route-chain-service/internal/api"
	"route-chain-service/internal/config"
	"route-chain-service/internal/platform/db"
	"route-chain-service/internal/ports"
	"route-chain-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, the solver sidecar, the plan
// generator) behind ports and starts the HTTP server. Every collaborator is
// optional: the engine serves inline-load searches with none of them.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	policy := relaxationPolicyFromEnv()

	var repo ports.LoadRepository
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		repo = repositories.NewPostgresLoadRepository(conn)
		log.Println("Load store configured db=postgres")
	} else {
		log.Println("DATABASE_URL not set; load board endpoints disabled")
	}

	var vrptw ports.VRPTWSolver
	if solverURL := strings.TrimSpace(os.Getenv("SOLVER_URL")); solverURL != "" {
		s, err := solver.NewHTTPSolver(solverURL)
		if err != nil {
			log.Fatal(err)
		}
		vrptw = s
		log.Printf("Solver configured url=%s", solverURL)
	} else {
		log.Println("SOLVER_URL not set; itinerary endpoint disabled")
	}

	planner := buildPlanner()

	router := api.NewRouter(repo, planner, vrptw, policy)

	// Write timeout leaves room for plan generation against the external
	// text service.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildPlanner assembles the trip planner, wrapped in a Redis cache when one
// is configured. Returns nil when no plan generator is available.
func buildPlanner() ports.TripPlanner {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set; trip plans disabled")
		return nil
	}

	planner, err := tripplan.NewHTTPTripPlanner(config.Get("TRIPPLAN_URL", "https://generativelanguage.googleapis.com"), apiKey)
	if err != nil {
		log.Fatal(err)
	}

	redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if redisAddr == "" {
		return planner
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	cached, err := cache.NewRedisPlanCache(client, planner)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Trip plan cache configured addr=%s", redisAddr)
	return cached
}

func relaxationPolicyFromEnv() services.RelaxationPolicy {
	policy := services.DefaultRelaxationPolicy()
	policy.Multiplier = config.GetFloat("RELAX_MULTIPLIER", policy.Multiplier)
	policy.MaxRounds = config.GetInt("RELAX_MAX_ROUNDS", policy.MaxRounds)
	policy.CeilingMiles = config.GetFloat("RELAX_CEILING_MILES", policy.CeilingMiles)
	return policy
}
