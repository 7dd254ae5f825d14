package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"route-chain-service/internal/domain"

	"github.com/google/uuid"
)

// Initialize the Postgres schema for the load store.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLoadsQuery := `
	CREATE TABLE IF NOT EXISTS loads (
		load_id TEXT PRIMARY KEY,
		origin_lat DOUBLE PRECISION NOT NULL,
		origin_lon DOUBLE PRECISION NOT NULL,
		origin_city TEXT NOT NULL DEFAULT '',
		origin_state TEXT NOT NULL DEFAULT '',
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lon DOUBLE PRECISION NOT NULL,
		dest_city TEXT NOT NULL DEFAULT '',
		dest_state TEXT NOT NULL DEFAULT '',
		pickup_earliest TIMESTAMPTZ,
		pickup_latest TIMESTAMPTZ,
		delivery_earliest TIMESTAMPTZ,
		delivery_latest TIMESTAMPTZ,
		distance_miles DOUBLE PRECISION NOT NULL DEFAULT 0,
		revenue_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		rate_per_mile DOUBLE PRECISION,
		weight_pounds DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	createOriginIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_loads_origin
	ON loads(origin_lat, origin_lon);
	`

	statements := []string{
		createLoadsQuery,
		createOriginIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type seedWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

type LoadSeed struct {
	ID             string      `json:"id"`
	OriginLat      float64     `json:"origin_lat"`
	OriginLon      float64     `json:"origin_lon"`
	OriginCity     string      `json:"origin_city"`
	OriginState    string      `json:"origin_state"`
	DestLat        float64     `json:"dest_lat"`
	DestLon        float64     `json:"dest_lon"`
	DestCity       string      `json:"dest_city"`
	DestState      string      `json:"dest_state"`
	PickupWindow   *seedWindow `json:"pickup_window"`
	DeliveryWindow *seedWindow `json:"delivery_window"`
	DistanceMiles  float64     `json:"distance_miles"`
	RevenueAmount  float64     `json:"revenue_amount"`
	RatePerMile    *float64    `json:"rate_per_mile"`
	WeightPounds   float64     `json:"weight_pounds"`
}

// Populate the load store from a JSON seed file. Seeds without an id get a
// generated one so re-seeding stays an upsert, not a duplicate insert.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed loads: read %q: %w", jsonPath, err)
	}

	var data []LoadSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed loads: parse json: %w", err)
	}

	loads := make([]domain.Load, 0, len(data))
	for i, item := range data {
		load := domain.Load{
			ID: strings.TrimSpace(item.ID),
			Origin: domain.GeoPoint{
				Lat: item.OriginLat, Lon: item.OriginLon,
				City: item.OriginCity, State: item.OriginState,
			},
			Destination: domain.GeoPoint{
				Lat: item.DestLat, Lon: item.DestLon,
				City: item.DestCity, State: item.DestState,
			},
			DistanceMiles: item.DistanceMiles,
			RevenueAmount: item.RevenueAmount,
			RatePerMile:   item.RatePerMile,
			WeightPounds:  item.WeightPounds,
		}
		if load.ID == "" {
			load.ID = uuid.NewString()
		}
		if item.PickupWindow != nil {
			load.PickupWindow = &domain.TimeWindow{Earliest: item.PickupWindow.Earliest, Latest: item.PickupWindow.Latest}
		}
		if item.DeliveryWindow != nil {
			load.DeliveryWindow = &domain.TimeWindow{Earliest: item.DeliveryWindow.Earliest, Latest: item.DeliveryWindow.Latest}
		}

		if !load.Origin.ValidCoordinates() || !load.Destination.ValidCoordinates() {
			return fmt.Errorf("seed loads: item at index %d has coordinates out of range", i)
		}

		loads = append(loads, load)
	}

	repo := NewPostgresLoadRepository(db)
	if err := repo.SaveLoads(context.Background(), loads); err != nil {
		return fmt.Errorf("seed loads: %w", err)
	}

	return nil
}
