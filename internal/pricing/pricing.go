// Package pricing implements the discount-aware price calculation engine.
// It is pure: no I/O, no clock access, no shared state. Callers load the
// discount settings snapshot and pass it in together with the evaluation
// time, so the same inputs always produce the same quote whether computed
// at display time, at booking time, or re-verified later.
package pricing

import "time"

// DiscountType is the discount mode: a percentage of the base price or a
// fixed currency amount.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// DiscountSettings is the sitewide promotional discount configuration,
// loaded from the settings store. A nil StartsAt or EndsAt means the
// validity window is unbounded on that side.
type DiscountSettings struct {
	Enabled  bool         `json:"enabled"`
	Type     DiscountType `json:"type"`
	Value    float64      `json:"value"`
	StartsAt *time.Time   `json:"starts_at,omitempty"`
	EndsAt   *time.Time   `json:"ends_at,omitempty"`
}

// ActiveAt reports whether the discount applies at the given time. Both
// window bounds are inclusive. A nil or disabled configuration is never
// active.
func (d *DiscountSettings) ActiveAt(now time.Time) bool {
	if d == nil || !d.Enabled {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	return true
}

// PricingResult is a computed quote. DiscountType is empty when no discount
// was applied (disabled, out of window, or none configured); the empty
// value is meaningful state, not just an omission, and is dropped from
// JSON via omitempty.
type PricingResult struct {
	OriginalPrice   int64        `json:"original_price"`
	Price           int64        `json:"price"`
	DiscountApplied int64        `json:"discount_applied"`
	DiscountType    DiscountType `json:"discount_type,omitempty"`
}
