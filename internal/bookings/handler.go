package bookings

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/internal/pricing"
	"github.com/alaqsa-transport/backend/internal/routes"
	"github.com/alaqsa-transport/backend/internal/settings"
	"github.com/alaqsa-transport/backend/internal/vehicles"
	"github.com/alaqsa-transport/backend/pkg/queue"
	"github.com/alaqsa-transport/backend/pkg/response"
	"github.com/alaqsa-transport/backend/pkg/utils"
)

// CreateRequest is the body for POST /bookings.
type CreateRequest struct {
	RouteID        uuid.UUID `json:"route_id" binding:"required"`
	VehicleID      uuid.UUID `json:"vehicle_id" binding:"required"`
	CustomerName   string    `json:"customer_name" binding:"required"`
	CustomerEmail  string    `json:"customer_email" binding:"required,email"`
	CustomerPhone  string    `json:"customer_phone"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	TravelAt       time.Time `json:"travel_at" binding:"required"`
	Passengers     int       `json:"passengers" binding:"required,min=1"`
	Notes          string    `json:"notes"`
}

// StatusRequest is the body for PATCH /admin/bookings/:id/status.
type StatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// Handler handles booking HTTP endpoints.
type Handler struct {
	repo        *Repository
	routeRepo   *routes.Repository
	vehicleRepo *vehicles.Repository
	discount    *settings.DiscountProvider
	jobs        *queue.Queue
	logger      *zap.Logger
}

// NewHandler creates a booking handler.
func NewHandler(repo *Repository, routeRepo *routes.Repository, vehicleRepo *vehicles.Repository,
	discount *settings.DiscountProvider, jobs *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, routeRepo: routeRepo, vehicleRepo: vehicleRepo, discount: discount, jobs: jobs, logger: logger}
}

// Create handles POST /bookings. Resolves the base price for the chosen
// route/vehicle pair, applies the live discount and freezes the result onto
// the booking row. A pair with no configured rate is rejected instead of
// being booked for free.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.TravelAt.Before(time.Now()) {
		response.BadRequest(c, "travel date must be in the future")
		return
	}

	route, err := h.routeRepo.GetByID(c.Request.Context(), req.RouteID)
	if err != nil || !route.Active {
		response.NotFound(c, "route not found")
		return
	}
	vehicle, err := h.vehicleRepo.GetByID(c.Request.Context(), req.VehicleID)
	if err != nil || !vehicle.Active {
		response.NotFound(c, "vehicle not found")
		return
	}
	if req.Passengers > vehicle.Seats {
		response.BadRequest(c, "passenger count exceeds vehicle capacity")
		return
	}

	basePrice, priced := pricing.ResolveBasePrice(route, vehicle.ID)
	if !priced {
		response.Unprocessable(c, "no rate configured for this route and vehicle")
		return
	}
	discount, err := h.discount.Current(c.Request.Context())
	if err != nil {
		h.logger.Error("load discount settings failed", zap.Error(err))
		response.Internal(c, "failed to load pricing settings")
		return
	}
	result := pricing.CalculateFinalPrice(basePrice, &discount, time.Now())

	reference, err := utils.NewBookingReference()
	if err != nil {
		response.Internal(c, "failed to generate booking reference")
		return
	}
	booking := &models.Booking{
		Reference:       reference,
		RouteID:         route.ID,
		VehicleID:       vehicle.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:   req.CustomerPhone,
		PickupAddress:   req.PickupAddress,
		DropoffAddress:  req.DropoffAddress,
		TravelAt:        req.TravelAt,
		Passengers:      req.Passengers,
		Notes:           req.Notes,
		OriginalPrice:   result.OriginalPrice,
		DiscountApplied: result.DiscountApplied,
		FinalPrice:      result.Price,
		DiscountType:    string(result.DiscountType),
		Status:          models.BookingStatusPending,
	}
	if err := h.repo.Create(c.Request.Context(), booking); err != nil {
		h.logger.Error("create booking failed", zap.Error(err))
		response.Internal(c, "failed to create booking")
		return
	}

	if h.jobs != nil {
		err := h.jobs.EnqueueBookingConfirmation(c.Request.Context(), queue.BookingEmailPayload{
			BookingID:      booking.ID,
			RecipientEmail: booking.CustomerEmail,
		})
		if err != nil {
			// Booking stands even if the email job could not be queued.
			h.logger.Warn("enqueue confirmation email failed", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		}
	}
	response.Created(c, booking)
}

// GetByReference handles GET /bookings/:reference?email=... Customers look
// up their own booking; the email must match to avoid reference guessing.
func (h *Handler) GetByReference(c *gin.Context) {
	reference := strings.ToUpper(strings.TrimSpace(c.Param("reference")))
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if reference == "" || email == "" {
		response.BadRequest(c, "reference and email are required")
		return
	}
	booking, err := h.repo.GetByReference(c.Request.Context(), reference)
	if err != nil || booking.CustomerEmail != email {
		response.NotFound(c, "booking not found")
		return
	}
	response.OK(c, booking)
}

// List handles GET /admin/bookings?status=...
func (h *Handler) List(c *gin.Context) {
	var status *models.BookingStatus
	if s := c.Query("status"); s != "" {
		st := models.BookingStatus(s)
		switch st {
		case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCompleted, models.BookingStatusCancelled:
			status = &st
		default:
			response.BadRequest(c, "unknown status filter")
			return
		}
	}
	list, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		response.Internal(c, "failed to list bookings")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /admin/bookings/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	booking, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "booking not found")
		return
	}
	response.OK(c, booking)
}

// UpdateStatus handles PATCH /admin/bookings/:id/status. Only forward
// transitions in the booking flow are allowed; the price snapshot is never
// touched.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	booking, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "booking not found")
		return
	}
	if !models.CanTransitionBooking(booking.Status, req.Status) {
		response.Conflict(c, "cannot move booking from "+string(booking.Status)+" to "+string(req.Status))
		return
	}
	ok, err := h.repo.UpdateStatus(c.Request.Context(), id, booking.Status, req.Status)
	if err != nil {
		h.logger.Error("update booking status failed", zap.Error(err))
		response.Internal(c, "failed to update booking status")
		return
	}
	if !ok {
		response.Conflict(c, "booking status changed concurrently")
		return
	}
	booking.Status = req.Status

	if h.jobs != nil {
		err := h.jobs.EnqueueBookingStatus(c.Request.Context(), queue.BookingEmailPayload{
			BookingID:      booking.ID,
			RecipientEmail: booking.CustomerEmail,
			NewStatus:      string(req.Status),
		})
		if err != nil {
			h.logger.Warn("enqueue status email failed", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		}
	}
	response.OK(c, booking)
}
