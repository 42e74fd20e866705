package settings

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/pkg/response"
)

// Handler handles settings HTTP endpoints.
type Handler struct {
	repo     *Repository
	discount *DiscountProvider
	logger   *zap.Logger
}

// NewHandler creates a settings handler.
func NewHandler(repo *Repository, discount *DiscountProvider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, discount: discount, logger: logger}
}

// List handles GET /admin/settings.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list settings")
		return
	}
	response.OK(c, list)
}

// Update handles PUT /admin/settings. The body is a flat key/value map;
// unknown keys are allowed since the store is free-form.
func (h *Handler) Update(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if len(req) == 0 {
		response.BadRequest(c, "no settings provided")
		return
	}
	if err := h.repo.UpsertMany(c.Request.Context(), req); err != nil {
		h.logger.Error("update settings failed", zap.Error(err))
		response.Internal(c, "failed to update settings")
		return
	}
	h.discount.Invalidate(c.Request.Context())
	response.OK(c, gin.H{"updated": len(req)})
}

// GetDiscount handles GET /settings/discount (public). Returns the current
// discount configuration plus whether it applies right now, for the site
// promo banner.
func (h *Handler) GetDiscount(c *gin.Context) {
	d, err := h.discount.Current(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load discount settings")
		return
	}
	response.OK(c, gin.H{
		"discount": d,
		"active":   d.ActiveAt(time.Now()),
	})
}
