package vehicles

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaqsa-transport/backend/internal/models"
)

// Repository handles vehicle persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a vehicle repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new vehicle.
func (r *Repository) Create(ctx context.Context, v *models.Vehicle) error {
	const q = `INSERT INTO vehicles (name, category, seats, description, image_url, image_key, active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, v.Name, v.Category, v.Seats, v.Description, v.ImageURL, v.ImageKey, v.Active, v.SortOrder).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID returns a vehicle by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	const q = `SELECT id, name, category, seats, description, image_url, image_key, active, sort_order, created_at, updated_at
		FROM vehicles WHERE id = $1`
	var v models.Vehicle
	err := r.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.Category, &v.Seats, &v.Description,
		&v.ImageURL, &v.ImageKey, &v.Active, &v.SortOrder, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns vehicles ordered for display. When activeOnly is true only
// active vehicles are returned (public fleet page).
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	q := `SELECT id, name, category, seats, description, image_url, image_key, active, sort_order, created_at, updated_at
		FROM vehicles`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY sort_order, name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.Seats, &v.Description,
			&v.ImageURL, &v.ImageKey, &v.Active, &v.SortOrder, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update updates vehicle fields.
func (r *Repository) Update(ctx context.Context, v *models.Vehicle) error {
	const q = `UPDATE vehicles SET name = $1, category = $2, seats = $3, description = $4,
		active = $5, sort_order = $6, updated_at = NOW() WHERE id = $7`
	_, err := r.pool.Exec(ctx, q, v.Name, v.Category, v.Seats, v.Description, v.Active, v.SortOrder, v.ID)
	return err
}

// UpdateImage sets the vehicle image URL and S3 key.
func (r *Repository) UpdateImage(ctx context.Context, id uuid.UUID, imageURL, imageKey string) error {
	const q = `UPDATE vehicles SET image_url = $1, image_key = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, imageURL, imageKey, id)
	return err
}

// Delete removes a vehicle by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vehicles WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
