package routes

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaqsa-transport/backend/internal/models"
)

// Repository handles route persistence. Per-vehicle rates live in a JSONB
// column keyed by vehicle ID.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a route repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanRates(raw []byte, route *models.Route) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &route.CustomRates)
}

// Create inserts a new route.
func (r *Repository) Create(ctx context.Context, route *models.Route) error {
	rates, err := json.Marshal(route.CustomRates)
	if err != nil {
		return err
	}
	if route.CustomRates == nil {
		rates = []byte(`{}`)
	}
	const q = `INSERT INTO routes (origin, destination, distance_km, duration_min, custom_rates, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, route.Origin, route.Destination, route.DistanceKm, route.DurationMin, rates, route.Active).
		Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
}

// GetByID returns a route by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	const q = `SELECT id, origin, destination, distance_km, duration_min, custom_rates, active, created_at, updated_at
		FROM routes WHERE id = $1`
	var route models.Route
	var raw []byte
	err := r.pool.QueryRow(ctx, q, id).Scan(&route.ID, &route.Origin, &route.Destination,
		&route.DistanceKm, &route.DurationMin, &raw, &route.Active, &route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := scanRates(raw, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// List returns routes; activeOnly filters to the public set.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Route, error) {
	q := `SELECT id, origin, destination, distance_km, duration_min, custom_rates, active, created_at, updated_at
		FROM routes`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY origin, destination`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Route
	for rows.Next() {
		var route models.Route
		var raw []byte
		if err := rows.Scan(&route.ID, &route.Origin, &route.Destination,
			&route.DistanceKm, &route.DurationMin, &raw, &route.Active, &route.CreatedAt, &route.UpdatedAt); err != nil {
			return nil, err
		}
		if err := scanRates(raw, &route); err != nil {
			return nil, err
		}
		list = append(list, route)
	}
	return list, rows.Err()
}

// Update updates route fields, excluding rates (see UpdateRates).
func (r *Repository) Update(ctx context.Context, route *models.Route) error {
	const q = `UPDATE routes SET origin = $1, destination = $2, distance_km = $3, duration_min = $4,
		active = $5, updated_at = NOW() WHERE id = $6`
	_, err := r.pool.Exec(ctx, q, route.Origin, route.Destination, route.DistanceKm, route.DurationMin, route.Active, route.ID)
	return err
}

// UpdateRates replaces the per-vehicle rate map for a route.
func (r *Repository) UpdateRates(ctx context.Context, id uuid.UUID, rates models.CustomRates) error {
	raw, err := json.Marshal(rates)
	if err != nil {
		return err
	}
	if rates == nil {
		raw = []byte(`{}`)
	}
	const q = `UPDATE routes SET custom_rates = $1, updated_at = NOW() WHERE id = $2`
	_, err = r.pool.Exec(ctx, q, raw, id)
	return err
}

// Delete removes a route by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM routes WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
