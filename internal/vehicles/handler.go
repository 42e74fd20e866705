package vehicles

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/pkg/response"
	"github.com/alaqsa-transport/backend/pkg/storage"
)

// CreateRequest is the body for POST /admin/vehicles.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Seats       int    `json:"seats" binding:"required,min=1"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateRequest is the body for PATCH /admin/vehicles/:id.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Seats       *int    `json:"seats"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	SortOrder   *int    `json:"sort_order"`
}

// Handler handles vehicle HTTP endpoints.
type Handler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a vehicle handler.
func NewHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, s3: s3, logger: logger}
}

// ListPublic handles GET /fleet. Active vehicles only.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), true)
	if err != nil {
		response.Internal(c, "failed to list fleet")
		return
	}
	response.OK(c, list)
}

// List handles GET /admin/vehicles.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), false)
	if err != nil {
		response.Internal(c, "failed to list vehicles")
		return
	}
	response.OK(c, list)
}

// Create handles POST /admin/vehicles.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	v := &models.Vehicle{
		Name:        req.Name,
		Category:    req.Category,
		Seats:       req.Seats,
		Description: req.Description,
		Active:      active,
		SortOrder:   req.SortOrder,
	}
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		h.logger.Error("create vehicle failed", zap.Error(err))
		response.Internal(c, "failed to create vehicle")
		return
	}
	response.Created(c, v)
}

// GetByID handles GET /admin/vehicles/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "vehicle not found")
		return
	}
	response.OK(c, v)
}

// Update handles PATCH /admin/vehicles/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "vehicle not found")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.Seats != nil {
		v.Seats = *req.Seats
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Active != nil {
		v.Active = *req.Active
	}
	if req.SortOrder != nil {
		v.SortOrder = *req.SortOrder
	}
	if err := h.repo.Update(c.Request.Context(), v); err != nil {
		response.Internal(c, "failed to update vehicle")
		return
	}
	response.OK(c, v)
}

// GenerateUploadURLRequest is the body for POST /admin/vehicles/:id/image-url.
type GenerateUploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// RegisterImageRequest is the body for PUT /admin/vehicles/:id/image, used
// after the client uploads via a presigned URL.
type RegisterImageRequest struct {
	S3Key string `json:"s3_key" binding:"required"`
}

// GenerateUploadURL handles POST /admin/vehicles/:id/image-url. Presigned
// direct upload; prefer UploadImage when CORS is not set up on the bucket.
func (h *Handler) GenerateUploadURL(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "S3 not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "vehicle not found")
		return
	}
	var req GenerateUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.FileSize > storage.MaxImageFileSize {
		response.BadRequest(c, "file size exceeds 5MB limit")
		return
	}
	if !storage.ValidateImageFileType(req.ContentType, req.Filename) {
		response.BadRequest(c, "invalid file type: only jpg, png and webp allowed")
		return
	}

	contentType := storage.ContentTypeForFilename(req.Filename)
	key := storage.FleetKey(id.String(), req.Filename)
	expire := h.s3.PresignExpire()
	url, err := h.s3.GeneratePresignedUploadURL(c.Request.Context(), key, contentType, expire)
	if err != nil {
		h.logger.Error("generate presigned upload URL failed", zap.Error(err), zap.String("vehicle_id", id.String()))
		response.Internal(c, "S3 upload unavailable")
		return
	}
	response.OK(c, gin.H{
		"upload_url":   url,
		"s3_key":       key,
		"content_type": contentType,
		"expires_in":   int(expire.Seconds()),
	})
}

// RegisterImage handles PUT /admin/vehicles/:id/image. Records the image
// after a presigned upload completed.
func (h *Handler) RegisterImage(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "S3 not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "vehicle not found")
		return
	}
	var req RegisterImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "s3_key required")
		return
	}
	url := h.s3.PublicObjectURL(req.S3Key)
	if err := h.repo.UpdateImage(c.Request.Context(), id, url, req.S3Key); err != nil {
		response.Internal(c, "failed to save image reference")
		return
	}
	response.OK(c, gin.H{"image_url": url, "s3_key": req.S3Key})
}

// UploadImage handles POST /admin/vehicles/:id/image. Server-side upload to
// the public media bucket.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "S3 not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "vehicle not found")
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
	key := storage.FleetKey(id.String(), file.Filename)
	rc, err := file.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()

	url, err := h.s3.Upload(c.Request.Context(), key, contentType, rc, file.Size, true)
	if err != nil {
		h.logger.Error("S3 upload failed", zap.Error(err), zap.String("vehicle_id", id.String()), zap.String("key", key))
		response.Internal(c, "failed to upload image")
		return
	}
	if err := h.repo.UpdateImage(c.Request.Context(), id, url, key); err != nil {
		response.Internal(c, "failed to save image reference")
		return
	}
	response.OK(c, gin.H{"image_url": url, "s3_key": key})
}

// Delete handles DELETE /admin/vehicles/:id. Removes the S3 image too when present.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "vehicle not found")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete vehicle")
		return
	}
	if h.s3 != nil && v.ImageKey != "" {
		if err := h.s3.DeleteObject(c.Request.Context(), v.ImageKey); err != nil {
			h.logger.Warn("delete vehicle image failed", zap.Error(err), zap.String("key", v.ImageKey))
		}
	}
	response.NoContent(c)
}
