package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaqsa-transport/backend/internal/models"
)

// Repository handles contact message persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a contact repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new contact message.
func (r *Repository) Create(ctx context.Context, m *models.ContactMessage) error {
	const q = `INSERT INTO contact_messages (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, m.Name, m.Email, m.Phone, m.Message).Scan(&m.ID, &m.CreatedAt)
}

// GetByID returns a contact message by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	const q = `SELECT id, name, email, phone, message, created_at FROM contact_messages WHERE id = $1`
	var m models.ContactMessage
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns contact messages, newest first.
func (r *Repository) List(ctx context.Context) ([]models.ContactMessage, error) {
	const q = `SELECT id, name, email, phone, message, created_at FROM contact_messages ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete removes a contact message by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM contact_messages WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
