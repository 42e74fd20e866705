package reviews

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/pkg/response"
)

// CreateRequest is the body for POST /reviews.
type CreateRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"required"`
}

// ModerateRequest is the body for PATCH /admin/reviews/:id.
type ModerateRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// Handler handles review HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a review handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /reviews. New reviews start pending and stay hidden
// until approved.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	rv := &models.Review{
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Status:       models.ReviewStatusPending,
	}
	if err := h.repo.Create(c.Request.Context(), rv); err != nil {
		h.logger.Error("create review failed", zap.Error(err))
		response.Internal(c, "failed to submit review")
		return
	}
	response.Created(c, rv)
}

// ListPublic handles GET /reviews. Approved reviews only.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), models.ReviewStatusApproved)
	if err != nil {
		response.Internal(c, "failed to list reviews")
		return
	}
	response.OK(c, list)
}

// List handles GET /admin/reviews?status=...
func (h *Handler) List(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
	default:
		response.BadRequest(c, "unknown status filter")
		return
	}
	list, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		response.Internal(c, "failed to list reviews")
		return
	}
	response.OK(c, list)
}

// Moderate handles PATCH /admin/reviews/:id. Approves or rejects a review.
func (h *Handler) Moderate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status must be approved or rejected")
		return
	}
	rv, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "review not found")
		return
	}
	if err := h.repo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Internal(c, "failed to update review")
		return
	}
	rv.Status = req.Status
	response.OK(c, rv)
}

// Delete handles DELETE /admin/reviews/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete review")
		return
	}
	response.NoContent(c)
}
