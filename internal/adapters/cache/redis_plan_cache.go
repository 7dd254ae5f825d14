package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"route-chain-service/internal/domain"
	"route-chain-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// How long a generated plan stays valid. Plans are advisory text, so staleness
// is tolerable; the TTL mainly bounds memory.
const planTTL = 24 * time.Hour

// RedisPlanCache decorates a TripPlanner with a Redis result cache keyed by
// chain signature. Generation calls out to a hosted language model, so
// repeated requests for the same chain should not pay that cost twice.
type RedisPlanCache struct {
	client *redis.Client
	next   ports.TripPlanner
}

func NewRedisPlanCache(client *redis.Client, next ports.TripPlanner) (*RedisPlanCache, error) {
	if client == nil {
		return nil, errors.New("plan cache: redis client is nil")
	}
	if next == nil {
		return nil, errors.New("plan cache: wrapped planner is nil")
	}

	return &RedisPlanCache{client: client, next: next}, nil
}

type cachedPlan struct {
	Summary      string `json:"summary"`
	DetailedPlan string `json:"detailed_plan"`
}

func (c *RedisPlanCache) GeneratePlan(
	ctx context.Context,
	chain domain.RouteChain,
	criteria domain.SearchCriteria,
) (ports.TripPlan, error) {
	key := planKey(chain)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var cached cachedPlan
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return ports.TripPlan{Summary: cached.Summary, DetailedPlan: cached.DetailedPlan}, nil
		}
		// A corrupt entry falls through to regeneration.
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble must not block plan generation.
		log.Printf("plan cache read failed: key=%s err=%v", key, err)
	}

	plan, err := c.next.GeneratePlan(ctx, chain, criteria)
	if err != nil {
		return ports.TripPlan{}, err
	}

	payload, err := json.Marshal(cachedPlan{Summary: plan.Summary, DetailedPlan: plan.DetailedPlan})
	if err == nil {
		if err := c.client.Set(ctx, key, payload, planTTL).Err(); err != nil {
			log.Printf("plan cache write failed: key=%s err=%v", key, err)
		}
	}

	return plan, nil
}

func planKey(chain domain.RouteChain) string {
	return fmt.Sprintf("tripplan:%s", chain.Signature())
}
