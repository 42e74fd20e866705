package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var frozenNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func TestCalculateFinalPrice_NoDiscount(t *testing.T) {
	t.Run("nil settings", func(t *testing.T) {
		got := CalculateFinalPrice(100, nil, frozenNow)
		assert.Equal(t, PricingResult{OriginalPrice: 100, Price: 100}, got)
	})

	t.Run("disabled settings", func(t *testing.T) {
		d := &DiscountSettings{Enabled: false, Type: DiscountTypePercentage, Value: 20}
		got := CalculateFinalPrice(100, d, frozenNow)
		assert.Equal(t, PricingResult{OriginalPrice: 100, Price: 100}, got)
		assert.Empty(t, got.DiscountType)
	})
}

func TestCalculateFinalPrice_Percentage(t *testing.T) {
	d := &DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: 20}
	got := CalculateFinalPrice(100, d, frozenNow)
	assert.Equal(t, PricingResult{
		OriginalPrice:   100,
		Price:           80,
		DiscountApplied: 20,
		DiscountType:    DiscountTypePercentage,
	}, got)
}

func TestCalculateFinalPrice_Fixed(t *testing.T) {
	d := &DiscountSettings{Enabled: true, Type: DiscountTypeFixed, Value: 30}
	got := CalculateFinalPrice(100, d, frozenNow)
	assert.Equal(t, PricingResult{
		OriginalPrice:   100,
		Price:           70,
		DiscountApplied: 30,
		DiscountType:    DiscountTypeFixed,
	}, got)
}

func TestCalculateFinalPrice_FixedExceedsPrice(t *testing.T) {
	// Price floors at zero but DiscountApplied keeps the configured value.
	d := &DiscountSettings{Enabled: true, Type: DiscountTypeFixed, Value: 150}
	got := CalculateFinalPrice(100, d, frozenNow)
	assert.Equal(t, PricingResult{
		OriginalPrice:   100,
		Price:           0,
		DiscountApplied: 150,
		DiscountType:    DiscountTypeFixed,
	}, got)
}

func TestCalculateFinalPrice_Window(t *testing.T) {
	pct10 := DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: 10}

	t.Run("starts in the future", func(t *testing.T) {
		d := pct10
		d.StartsAt = timePtr(frozenNow.Add(7 * 24 * time.Hour))
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, PricingResult{OriginalPrice: 100, Price: 100}, got)
	})

	t.Run("ended in the past", func(t *testing.T) {
		d := pct10
		d.EndsAt = timePtr(frozenNow.Add(-7 * 24 * time.Hour))
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, PricingResult{OriginalPrice: 100, Price: 100}, got)
	})

	t.Run("inside window", func(t *testing.T) {
		d := pct10
		d.StartsAt = timePtr(frozenNow.Add(-24 * time.Hour))
		d.EndsAt = timePtr(frozenNow.Add(24 * time.Hour))
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, PricingResult{
			OriginalPrice:   100,
			Price:           90,
			DiscountApplied: 10,
			DiscountType:    DiscountTypePercentage,
		}, got)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		d := pct10
		d.StartsAt = timePtr(frozenNow)
		d.EndsAt = timePtr(frozenNow)
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, int64(90), got.Price)
	})

	t.Run("start only is open ended", func(t *testing.T) {
		d := pct10
		d.StartsAt = timePtr(frozenNow.Add(-365 * 24 * time.Hour))
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, int64(90), got.Price)
	})

	t.Run("end only applies until the end", func(t *testing.T) {
		d := pct10
		d.EndsAt = timePtr(frozenNow.Add(time.Hour))
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, int64(90), got.Price)
	})

	t.Run("inverted window never applies", func(t *testing.T) {
		d := pct10
		d.StartsAt = timePtr(frozenNow.Add(time.Hour))
		d.EndsAt = timePtr(frozenNow.Add(-time.Hour))
		got := CalculateFinalPrice(100, &d, frozenNow)
		assert.Equal(t, PricingResult{OriginalPrice: 100, Price: 100}, got)
	})
}

func TestCalculateFinalPrice_Rounding(t *testing.T) {
	cases := []struct {
		name     string
		base     float64
		want     int64
	}{
		{"whole", 100, 100},
		{"half rounds up", 99.5, 100},
		{"below half rounds down", 99.4, 99},
		{"zero", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateFinalPrice(tc.base, nil, frozenNow)
			assert.Equal(t, tc.want, got.OriginalPrice)
			assert.Equal(t, tc.want, got.Price)
		})
	}

	// Percentage amounts round half away from zero on the rounded base.
	d := &DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: 15}
	got := CalculateFinalPrice(90, d, frozenNow) // 13.5 rounds to 14
	assert.Equal(t, int64(14), got.DiscountApplied)
	assert.Equal(t, int64(76), got.Price)
}

func TestCalculateFinalPrice_ZeroBase(t *testing.T) {
	t.Run("fixed on zero base floors at zero", func(t *testing.T) {
		d := &DiscountSettings{Enabled: true, Type: DiscountTypeFixed, Value: 25}
		got := CalculateFinalPrice(0, d, frozenNow)
		assert.Equal(t, PricingResult{
			OriginalPrice:   0,
			Price:           0,
			DiscountApplied: 25,
			DiscountType:    DiscountTypeFixed,
		}, got)
	})

	t.Run("percentage of zero is zero", func(t *testing.T) {
		d := &DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: 50}
		got := CalculateFinalPrice(0, d, frozenNow)
		assert.Equal(t, PricingResult{
			OriginalPrice:   0,
			Price:           0,
			DiscountApplied: 0,
			DiscountType:    DiscountTypePercentage,
		}, got)
	})
}

func TestCalculateFinalPrice_PercentageOverHundred(t *testing.T) {
	// The percentage branch has no floor; the settings boundary is what
	// keeps such values out of production configuration.
	d := &DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: 150}
	got := CalculateFinalPrice(100, d, frozenNow)
	assert.Equal(t, int64(150), got.DiscountApplied)
	assert.Equal(t, int64(-50), got.Price)
}

func TestCalculateFinalPrice_UnknownType(t *testing.T) {
	d := &DiscountSettings{Enabled: true, Type: "bogus", Value: 20}
	got := CalculateFinalPrice(100, d, frozenNow)
	assert.Equal(t, PricingResult{OriginalPrice: 100, Price: 100}, got)
}

func TestCalculateFinalPrice_Deterministic(t *testing.T) {
	d := &DiscountSettings{
		Enabled:  true,
		Type:     DiscountTypePercentage,
		Value:    12.5,
		StartsAt: timePtr(frozenNow.Add(-time.Hour)),
		EndsAt:   timePtr(frozenNow.Add(time.Hour)),
	}
	first := CalculateFinalPrice(239.99, d, frozenNow)
	second := CalculateFinalPrice(239.99, d, frozenNow)
	assert.Equal(t, first, second)
}

func TestCalculateFinalPrice_Invariants(t *testing.T) {
	bases := []float64{0, 1, 49.5, 100, 250.4, 9999}
	values := []float64{0, 5, 12.5, 50, 100}

	for _, base := range bases {
		noDiscount := CalculateFinalPrice(base, nil, frozenNow)
		assert.Equal(t, noDiscount.OriginalPrice, noDiscount.Price)
		assert.Zero(t, noDiscount.DiscountApplied)

		for _, value := range values {
			d := &DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: value}
			got := CalculateFinalPrice(base, d, frozenNow)
			assert.Equal(t, noDiscount.OriginalPrice, got.OriginalPrice,
				"original price must not depend on discount state")
			assert.GreaterOrEqual(t, got.Price, int64(0))
			assert.LessOrEqual(t, got.Price, got.OriginalPrice)

			f := &DiscountSettings{Enabled: true, Type: DiscountTypeFixed, Value: value}
			fixed := CalculateFinalPrice(base, f, frozenNow)
			want := fixed.OriginalPrice - int64(value)
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, fixed.Price)
		}
	}
}
