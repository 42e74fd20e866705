package blog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaqsa-transport/backend/internal/models"
)

// Repository handles blog post persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a blog repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const postColumns = `id, title, slug, excerpt, body, cover_image_url, cover_image_key, published, published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }, p *models.Post) error {
	return row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.CoverImageURL, &p.CoverImageKey,
		&p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new post.
func (r *Repository) Create(ctx context.Context, p *models.Post) error {
	const q = `INSERT INTO posts (title, slug, excerpt, body, cover_image_url, cover_image_key, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, p.Title, p.Slug, p.Excerpt, p.Body, p.CoverImageURL, p.CoverImageKey, p.Published, p.PublishedAt).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a post by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns a published post by slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1 AND published`, slug), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugExists reports whether a slug is already taken.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// List returns posts, newest first; publishedOnly filters to the public set.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		q += ` WHERE published`
	}
	q += ` ORDER BY COALESCE(published_at, created_at) DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Post
	for rows.Next() {
		var p models.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update updates post fields.
func (r *Repository) Update(ctx context.Context, p *models.Post) error {
	const q = `UPDATE posts SET title = $1, slug = $2, excerpt = $3, body = $4, published = $5,
		published_at = $6, updated_at = NOW() WHERE id = $7`
	_, err := r.pool.Exec(ctx, q, p.Title, p.Slug, p.Excerpt, p.Body, p.Published, p.PublishedAt, p.ID)
	return err
}

// UpdateCover sets the cover image URL and S3 key.
func (r *Repository) UpdateCover(ctx context.Context, id uuid.UUID, coverURL, coverKey string) error {
	const q = `UPDATE posts SET cover_image_url = $1, cover_image_key = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, coverURL, coverKey, id)
	return err
}

// Delete removes a post by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM posts WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
