package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaqsa-transport/backend/internal/models"
)

// Repository handles review persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a review repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new review in pending status.
func (r *Repository) Create(ctx context.Context, rv *models.Review) error {
	const q = `INSERT INTO reviews (customer_name, rating, comment, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, rv.CustomerName, rv.Rating, rv.Comment, rv.Status).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
}

// GetByID returns a review by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	const q = `SELECT id, customer_name, rating, comment, status, created_at, updated_at
		FROM reviews WHERE id = $1`
	var rv models.Review
	err := r.pool.QueryRow(ctx, q, id).Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// List returns reviews, newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status string) ([]models.Review, error) {
	q := `SELECT id, customer_name, rating, comment, status, created_at, updated_at FROM reviews`
	var args []interface{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}

// UpdateStatus sets the moderation status of a review.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	const q = `UPDATE reviews SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, status, id)
	return err
}

// Delete removes a review by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM reviews WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
