package contact

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/pkg/queue"
	"github.com/alaqsa-transport/backend/pkg/response"
)

// CreateRequest is the body for POST /contact.
type CreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// Handler handles contact form endpoints.
type Handler struct {
	repo       *Repository
	jobs       *queue.Queue
	adminEmail string
	logger     *zap.Logger
}

// NewHandler creates a contact handler. adminEmail receives the
// notification for each new message.
func NewHandler(repo *Repository, jobs *queue.Queue, adminEmail string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jobs: jobs, adminEmail: adminEmail, logger: logger}
}

// Create handles POST /contact.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	m := &models.ContactMessage{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.repo.Create(c.Request.Context(), m); err != nil {
		h.logger.Error("create contact message failed", zap.Error(err))
		response.Internal(c, "failed to submit message")
		return
	}
	if h.jobs != nil && h.adminEmail != "" {
		err := h.jobs.EnqueueContactNotification(c.Request.Context(), queue.ContactEmailPayload{
			MessageID:      m.ID,
			RecipientEmail: h.adminEmail,
		})
		if err != nil {
			h.logger.Warn("enqueue contact notification failed", zap.Error(err), zap.String("message_id", m.ID.String()))
		}
	}
	response.Created(c, gin.H{"id": m.ID})
}

// List handles GET /admin/contact-messages.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list messages")
		return
	}
	response.OK(c, list)
}

// Delete handles DELETE /admin/contact-messages/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid message id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete message")
		return
	}
	response.NoContent(c)
}
