package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleCategory groups fleet vehicles for the public fleet page.
const (
	VehicleCategorySedan   = "sedan"
	VehicleCategoryVan     = "van"
	VehicleCategoryMinibus = "minibus"
	VehicleCategoryBus     = "bus"
)

// Vehicle is a fleet vehicle offered for route bookings.
type Vehicle struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Seats       int       `json:"seats"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ImageKey    string    `json:"-"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
