package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomRates maps vehicle IDs to the base price for that route/vehicle
// pair, in whole currency units. A missing key means no price is configured
// for that combination (not a price of zero).
type CustomRates map[uuid.UUID]float64

// Route is a fixed transfer route (e.g. airport to city) with per-vehicle
// pricing stored as a JSONB column.
type Route struct {
	ID          uuid.UUID   `json:"id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	DistanceKm  float64     `json:"distance_km,omitempty"`
	DurationMin int         `json:"duration_min,omitempty"`
	CustomRates CustomRates `json:"custom_rates,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
