package blog

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/pkg/response"
	"github.com/alaqsa-transport/backend/pkg/storage"
)

// CreateRequest is the body for POST /admin/posts.
type CreateRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"` // generated from title when empty
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

// UpdateRequest is the body for PATCH /admin/posts/:id.
type UpdateRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

// Handler handles blog HTTP endpoints.
type Handler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a blog handler.
func NewHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, s3: s3, logger: logger}
}

// uniqueSlug appends a numeric suffix until the slug is free.
func (h *Handler) uniqueSlug(c *gin.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		taken, err := h.repo.SlugExists(c.Request.Context(), slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// ListPublic handles GET /blog. Published posts only.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), true)
	if err != nil {
		response.Internal(c, "failed to list posts")
		return
	}
	response.OK(c, list)
}

// GetBySlug handles GET /blog/:slug.
func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, post)
}

// List handles GET /admin/posts. Includes drafts.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), false)
	if err != nil {
		response.Internal(c, "failed to list posts")
		return
	}
	response.OK(c, list)
}

// Create handles POST /admin/posts.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	base := req.Slug
	if base == "" {
		base = Slugify(req.Title)
	}
	if base == "" {
		response.BadRequest(c, "title does not yield a usable slug")
		return
	}
	slug, err := h.uniqueSlug(c, base)
	if err != nil {
		response.Internal(c, "failed to allocate slug")
		return
	}
	post := &models.Post{
		Title:     req.Title,
		Slug:      slug,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		Published: req.Published,
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := h.repo.Create(c.Request.Context(), post); err != nil {
		h.logger.Error("create post failed", zap.Error(err))
		response.Internal(c, "failed to create post")
		return
	}
	response.Created(c, post)
}

// GetByID handles GET /admin/posts/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, post)
}

// Update handles PATCH /admin/posts/:id. Publishing for the first time
// stamps published_at.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != post.Slug {
		slug, err := h.uniqueSlug(c, *req.Slug)
		if err != nil {
			response.Internal(c, "failed to allocate slug")
			return
		}
		post.Slug = slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Published != nil {
		post.Published = *req.Published
		if post.Published && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}
	if err := h.repo.Update(c.Request.Context(), post); err != nil {
		response.Internal(c, "failed to update post")
		return
	}
	response.OK(c, post)
}

// UploadCover handles POST /admin/posts/:id/cover.
func (h *Handler) UploadCover(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "S3 not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "post not found")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file (form field: file)")
		return
	}
	if file.Size > storage.MaxImageFileSize {
		response.BadRequest(c, "file size exceeds 5MB limit")
		return
	}
	if !storage.ValidateImageFileType(file.Header.Get("Content-Type"), file.Filename) {
		response.BadRequest(c, "invalid file type: only jpg, png and webp allowed")
		return
	}

	contentType := storage.ContentTypeForFilename(file.Filename)
	key := storage.BlogKey(id.String(), file.Filename)
	rc, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()

	url, err := h.s3.Upload(c.Request.Context(), key, contentType, rc, file.Size, true)
	if err != nil {
		h.logger.Error("S3 upload failed", zap.Error(err), zap.String("post_id", id.String()), zap.String("key", key))
		response.Internal(c, "failed to upload cover image")
		return
	}
	if err := h.repo.UpdateCover(c.Request.Context(), id, url, key); err != nil {
		response.Internal(c, "failed to save cover reference")
		return
	}
	response.OK(c, gin.H{"cover_image_url": url, "s3_key": key})
}

// Delete handles DELETE /admin/posts/:id. Removes the S3 cover too when present.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete post")
		return
	}
	if h.s3 != nil && post.CoverImageKey != "" {
		if err := h.s3.DeleteObject(c.Request.Context(), post.CoverImageKey); err != nil {
			h.logger.Warn("delete cover image failed", zap.Error(err), zap.String("key", post.CoverImageKey))
		}
	}
	response.NoContent(c)
}
