package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/alaqsa-transport/backend/internal/models"
)

// ResolveBasePrice looks up the configured base price for a route/vehicle
// pair. ok is false when the route carries no custom rate for the vehicle;
// a route/vehicle pair without a rate is unpriced, not free, and callers
// decide whether to reject (booking creation) or quote from zero (display).
func ResolveBasePrice(route *models.Route, vehicleID uuid.UUID) (float64, bool) {
	if route == nil {
		return 0, false
	}
	price, ok := route.CustomRates[vehicleID]
	return price, ok
}

// QuoteRoute prices a route/vehicle pair under the given discount settings.
// Unpriced combinations quote from a zero base, matching the behavior of
// the original site; use ResolveBasePrice first when "unpriced" must be
// distinguished from a genuine zero.
func QuoteRoute(route *models.Route, vehicleID uuid.UUID, d *DiscountSettings, now time.Time) PricingResult {
	base, _ := ResolveBasePrice(route, vehicleID)
	return CalculateFinalPrice(base, d, now)
}
