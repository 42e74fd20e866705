package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/internal/pricing"
	"github.com/alaqsa-transport/backend/internal/settings"
	"github.com/alaqsa-transport/backend/internal/vehicles"
	"github.com/alaqsa-transport/backend/pkg/response"
)

// CreateRequest is the body for POST /admin/routes.
type CreateRequest struct {
	Origin      string             `json:"origin" binding:"required"`
	Destination string             `json:"destination" binding:"required"`
	DistanceKm  float64            `json:"distance_km"`
	DurationMin int                `json:"duration_min"`
	CustomRates map[string]float64 `json:"custom_rates"` // vehicle id -> base price
	Active      *bool              `json:"active"`
}

// UpdateRequest is the body for PATCH /admin/routes/:id.
type UpdateRequest struct {
	Origin      *string  `json:"origin"`
	Destination *string  `json:"destination"`
	DistanceKm  *float64 `json:"distance_km"`
	DurationMin *int     `json:"duration_min"`
	Active      *bool    `json:"active"`
}

// VehicleQuote is one priced route/vehicle combination for display.
type VehicleQuote struct {
	VehicleID uuid.UUID             `json:"vehicle_id"`
	Vehicle   string                `json:"vehicle"`
	Unpriced  bool                  `json:"unpriced,omitempty"`
	Quote     pricing.PricingResult `json:"quote"`
}

// Handler handles route HTTP endpoints.
type Handler struct {
	repo        *Repository
	vehicleRepo *vehicles.Repository
	discount    *settings.DiscountProvider
	logger      *zap.Logger
}

// NewHandler creates a route handler.
func NewHandler(repo *Repository, vehicleRepo *vehicles.Repository, discount *settings.DiscountProvider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, vehicleRepo: vehicleRepo, discount: discount, logger: logger}
}

func parseRates(raw map[string]float64) (models.CustomRates, error) {
	if raw == nil {
		return nil, nil
	}
	rates := make(models.CustomRates, len(raw))
	for k, v := range raw {
		id, err := uuid.Parse(k)
		if err != nil {
			return nil, err
		}
		rates[id] = v
	}
	return rates, nil
}

// ListPublic handles GET /routes. Active routes only.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), true)
	if err != nil {
		response.Internal(c, "failed to list routes")
		return
	}
	response.OK(c, list)
}

// Quote handles GET /routes/:id/quote?vehicle_id=... Returns the live
// discounted price for one route/vehicle pair. Unpriced pairs still quote
// from a zero base (legacy site behavior) but are flagged so the frontend
// can show "price on request" instead of a free ride.
func (h *Handler) Quote(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	vehicleID, err := uuid.Parse(c.Query("vehicle_id"))
	if err != nil {
		response.BadRequest(c, "invalid or missing vehicle_id")
		return
	}
	route, err := h.repo.GetByID(c.Request.Context(), routeID)
	if err != nil {
		response.NotFound(c, "route not found")
		return
	}

	discount, err := h.discount.Current(c.Request.Context())
	if err != nil {
		h.logger.Error("load discount settings failed", zap.Error(err))
		response.Internal(c, "failed to load pricing settings")
		return
	}

	now := time.Now()
	_, priced := pricing.ResolveBasePrice(route, vehicleID)
	quote := pricing.QuoteRoute(route, vehicleID, &discount, now)
	response.OK(c, gin.H{
		"route_id":   routeID,
		"vehicle_id": vehicleID,
		"unpriced":   !priced,
		"quote":      quote,
	})
}

// Quotes handles GET /routes/:id/quotes. Returns live discounted prices for
// every active vehicle on the route.
func (h *Handler) Quotes(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	route, err := h.repo.GetByID(c.Request.Context(), routeID)
	if err != nil {
		response.NotFound(c, "route not found")
		return
	}
	fleet, err := h.vehicleRepo.List(c.Request.Context(), true)
	if err != nil {
		response.Internal(c, "failed to list fleet")
		return
	}
	discount, err := h.discount.Current(c.Request.Context())
	if err != nil {
		h.logger.Error("load discount settings failed", zap.Error(err))
		response.Internal(c, "failed to load pricing settings")
		return
	}

	// One evaluation time for the whole listing keeps the quotes mutually
	// consistent when the window boundary falls mid-request.
	now := time.Now()
	quotes := make([]VehicleQuote, 0, len(fleet))
	for _, v := range fleet {
		_, priced := pricing.ResolveBasePrice(route, v.ID)
		quotes = append(quotes, VehicleQuote{
			VehicleID: v.ID,
			Vehicle:   v.Name,
			Unpriced:  !priced,
			Quote:     pricing.QuoteRoute(route, v.ID, &discount, now),
		})
	}
	response.OK(c, gin.H{"route_id": routeID, "quotes": quotes})
}

// List handles GET /admin/routes.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), false)
	if err != nil {
		response.Internal(c, "failed to list routes")
		return
	}
	response.OK(c, list)
}

// Create handles POST /admin/routes.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	rates, err := parseRates(req.CustomRates)
	if err != nil {
		response.BadRequest(c, "custom_rates keys must be vehicle ids")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	route := &models.Route{
		Origin:      req.Origin,
		Destination: req.Destination,
		DistanceKm:  req.DistanceKm,
		DurationMin: req.DurationMin,
		CustomRates: rates,
		Active:      active,
	}
	if err := h.repo.Create(c.Request.Context(), route); err != nil {
		h.logger.Error("create route failed", zap.Error(err))
		response.Internal(c, "failed to create route")
		return
	}
	response.Created(c, route)
}

// GetByID handles GET /admin/routes/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	route, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "route not found")
		return
	}
	response.OK(c, route)
}

// Update handles PATCH /admin/routes/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	route, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "route not found")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if req.Origin != nil {
		route.Origin = *req.Origin
	}
	if req.Destination != nil {
		route.Destination = *req.Destination
	}
	if req.DistanceKm != nil {
		route.DistanceKm = *req.DistanceKm
	}
	if req.DurationMin != nil {
		route.DurationMin = *req.DurationMin
	}
	if req.Active != nil {
		route.Active = *req.Active
	}
	if err := h.repo.Update(c.Request.Context(), route); err != nil {
		response.Internal(c, "failed to update route")
		return
	}
	response.OK(c, route)
}

// UpdateRates handles PUT /admin/routes/:id/rates. Replaces the whole
// per-vehicle rate map.
func (h *Handler) UpdateRates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "route not found")
		return
	}
	var req map[string]float64
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	rates, err := parseRates(req)
	if err != nil {
		response.BadRequest(c, "rate keys must be vehicle ids")
		return
	}
	for _, price := range rates {
		if price < 0 {
			response.BadRequest(c, "rates must be non-negative")
			return
		}
	}
	if err := h.repo.UpdateRates(c.Request.Context(), id, rates); err != nil {
		response.Internal(c, "failed to update rates")
		return
	}
	updated, _ := h.repo.GetByID(c.Request.Context(), id)
	response.OK(c, updated)
}

// Delete handles DELETE /admin/routes/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete route")
		return
	}
	response.NoContent(c)
}
