package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-chain-service/internal/domain"
	"route-chain-service/internal/ports"
)

// Postgres-backed implementation of the LoadRepository port.
type PostgresLoadRepository struct{ DB *sql.DB }

func NewPostgresLoadRepository(db *sql.DB) *PostgresLoadRepository {
	return &PostgresLoadRepository{DB: db}
}

// Return all posted loads ordered by id.
func (r *PostgresLoadRepository) ListLoads(ctx context.Context) ([]domain.Load, error) {
	if r.DB == nil {
		return nil, errors.New("load repository: DB is nil")
	}

	query := `
	SELECT
		load_id,
		origin_lat, origin_lon, origin_city, origin_state,
		dest_lat, dest_lon, dest_city, dest_state,
		pickup_earliest, pickup_latest,
		delivery_earliest, delivery_latest,
		distance_miles, revenue_amount, rate_per_mile, weight_pounds
	FROM loads
	ORDER BY load_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list loads: query loads table: %w", err)
	}
	defer rows.Close()

	loads := make([]domain.Load, 0, 64)
	for rows.Next() {
		var (
			load                           domain.Load
			pickupEarliest, pickupLatest   sql.NullTime
			deliverEarliest, deliverLatest sql.NullTime
			ratePerMile                    sql.NullFloat64
		)

		err := rows.Scan(
			&load.ID,
			&load.Origin.Lat, &load.Origin.Lon, &load.Origin.City, &load.Origin.State,
			&load.Destination.Lat, &load.Destination.Lon, &load.Destination.City, &load.Destination.State,
			&pickupEarliest, &pickupLatest,
			&deliverEarliest, &deliverLatest,
			&load.DistanceMiles, &load.RevenueAmount, &ratePerMile, &load.WeightPounds,
		)
		if err != nil {
			return nil, fmt.Errorf("list loads: scan row: %w", err)
		}

		load.PickupWindow = windowFromNullTimes(pickupEarliest, pickupLatest)
		load.DeliveryWindow = windowFromNullTimes(deliverEarliest, deliverLatest)
		if ratePerMile.Valid {
			rate := ratePerMile.Float64
			load.RatePerMile = &rate
		}

		loads = append(loads, load)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list loads: row iteration: %w", err)
	}

	return loads, nil
}

// Upsert loads keyed by their caller-assigned id.
func (r *PostgresLoadRepository) SaveLoads(ctx context.Context, loads []domain.Load) error {
	if r.DB == nil {
		return errors.New("load repository: DB is nil")
	}

	if len(loads) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save loads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO loads (
		load_id,
		origin_lat, origin_lon, origin_city, origin_state,
		dest_lat, dest_lon, dest_city, dest_state,
		pickup_earliest, pickup_latest,
		delivery_earliest, delivery_latest,
		distance_miles, revenue_amount, rate_per_mile, weight_pounds,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
	ON CONFLICT (load_id) DO UPDATE SET
		origin_lat = EXCLUDED.origin_lat,
		origin_lon = EXCLUDED.origin_lon,
		origin_city = EXCLUDED.origin_city,
		origin_state = EXCLUDED.origin_state,
		dest_lat = EXCLUDED.dest_lat,
		dest_lon = EXCLUDED.dest_lon,
		dest_city = EXCLUDED.dest_city,
		dest_state = EXCLUDED.dest_state,
		pickup_earliest = EXCLUDED.pickup_earliest,
		pickup_latest = EXCLUDED.pickup_latest,
		delivery_earliest = EXCLUDED.delivery_earliest,
		delivery_latest = EXCLUDED.delivery_latest,
		distance_miles = EXCLUDED.distance_miles,
		revenue_amount = EXCLUDED.revenue_amount,
		rate_per_mile = EXCLUDED.rate_per_mile,
		weight_pounds = EXCLUDED.weight_pounds,
		updated_at = NOW();
	`)
	if err != nil {
		return fmt.Errorf("save loads: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, load := range loads {
		id := strings.TrimSpace(load.ID)
		if id == "" {
			return fmt.Errorf("save loads: load with empty id")
		}

		pickupEarliest, pickupLatest := nullTimesFromWindow(load.PickupWindow)
		deliverEarliest, deliverLatest := nullTimesFromWindow(load.DeliveryWindow)

		var rate sql.NullFloat64
		if load.RatePerMile != nil {
			rate = sql.NullFloat64{Float64: *load.RatePerMile, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			id,
			load.Origin.Lat, load.Origin.Lon, load.Origin.City, load.Origin.State,
			load.Destination.Lat, load.Destination.Lon, load.Destination.City, load.Destination.State,
			pickupEarliest, pickupLatest,
			deliverEarliest, deliverLatest,
			load.DistanceMiles, load.RevenueAmount, rate, load.WeightPounds,
		)
		if err != nil {
			return fmt.Errorf("save loads: upsert load_id=%q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save loads: commit: %w", err)
	}

	return nil
}

// Delete loads by id, reporting ids that did not exist.
func (r *PostgresLoadRepository) RemoveLoads(ctx context.Context, ids []string) (ports.RemoveResult, error) {
	if r.DB == nil {
		return ports.RemoveResult{}, errors.New("load repository: DB is nil")
	}

	result := ports.RemoveResult{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		res, err := r.DB.ExecContext(ctx, `DELETE FROM loads WHERE load_id = $1;`, id)
		if err != nil {
			return ports.RemoveResult{}, fmt.Errorf("remove loads: delete load_id=%q: %w", id, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return ports.RemoveResult{}, fmt.Errorf("remove loads: rows affected for load_id=%q: %w", id, err)
		}

		if affected == 0 {
			result.MissingIDs = append(result.MissingIDs, id)
		} else {
			result.Removed = append(result.Removed, id)
		}
	}

	return result, nil
}

func windowFromNullTimes(earliest, latest sql.NullTime) *domain.TimeWindow {
	if !earliest.Valid || !latest.Valid {
		return nil
	}
	return &domain.TimeWindow{Earliest: earliest.Time, Latest: latest.Time}
}

func nullTimesFromWindow(w *domain.TimeWindow) (sql.NullTime, sql.NullTime) {
	if w == nil {
		return sql.NullTime{}, sql.NullTime{}
	}
	return sql.NullTime{Time: w.Earliest, Valid: true}, sql.NullTime{Time: w.Latest, Valid: true}
}
