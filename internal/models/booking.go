package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// AllowedBookingTransitions is the booking status flow.
var AllowedBookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionBooking reports whether a booking may move from one status
// to another. Completed and cancelled are terminal.
func CanTransitionBooking(from, to BookingStatus) bool {
	for _, s := range AllowedBookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking is a customer transfer booking. The price fields are a frozen
// snapshot of the quote computed at creation time; later changes to the
// discount settings or route rates never alter a stored booking.
type Booking struct {
	ID              uuid.UUID     `json:"id"`
	Reference       string        `json:"reference"`
	RouteID         uuid.UUID     `json:"route_id"`
	VehicleID       uuid.UUID     `json:"vehicle_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone,omitempty"`
	PickupAddress   string        `json:"pickup_address,omitempty"`
	DropoffAddress  string        `json:"dropoff_address,omitempty"`
	TravelAt        time.Time     `json:"travel_at"`
	Passengers      int           `json:"passengers"`
	Notes           string        `json:"notes,omitempty"`
	OriginalPrice   int64         `json:"original_price"`
	DiscountApplied int64         `json:"discount_applied"`
	FinalPrice      int64         `json:"final_price"`
	DiscountType    string        `json:"discount_type,omitempty"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
