package pricing

import (
	"math"
	"time"
)

// CalculateFinalPrice computes the payable price for a base price under the
// given discount settings, evaluated at now. It is total: any input yields
// a well-formed result and it never panics. The base price is rounded half
// away from zero to whole currency units before any discount math.
//
// Two asymmetries are kept on purpose because stored booking snapshots and
// the admin panel rely on them:
//   - a fixed discount larger than the price floors the price at zero but
//     DiscountApplied still reports the full configured amount;
//   - the percentage branch has no floor, so a value over 100 produces a
//     negative price. Settings validation rejects such values at the
//     boundary (see ParseDiscountSettings); the calculator does not.
func CalculateFinalPrice(basePrice float64, d *DiscountSettings, now time.Time) PricingResult {
	original := int64(math.Round(basePrice))
	res := PricingResult{OriginalPrice: original, Price: original}

	if !d.ActiveAt(now) {
		return res
	}

	switch d.Type {
	case DiscountTypePercentage:
		applied := int64(math.Round(float64(original) * d.Value / 100))
		res.DiscountApplied = applied
		res.Price = original - applied
		res.DiscountType = DiscountTypePercentage
	case DiscountTypeFixed:
		applied := int64(d.Value)
		res.DiscountApplied = applied
		price := original - applied
		if price < 0 {
			price = 0
		}
		res.Price = price
		res.DiscountType = DiscountTypeFixed
	default:
		// Unknown discount type behaves as no discount; the settings
		// boundary is responsible for rejecting it.
	}
	return res
}
