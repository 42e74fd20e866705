package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alaqsa-transport/backend/internal/models"
)

func TestResolveBasePrice(t *testing.T) {
	sedan := uuid.New()
	van := uuid.New()
	route := &models.Route{
		Origin:      "Amman",
		Destination: "Queen Alia Airport",
		CustomRates: models.CustomRates{sedan: 35, van: 55},
	}

	t.Run("configured rate", func(t *testing.T) {
		price, ok := ResolveBasePrice(route, van)
		assert.True(t, ok)
		assert.Equal(t, 55.0, price)
	})

	t.Run("unpriced vehicle", func(t *testing.T) {
		price, ok := ResolveBasePrice(route, uuid.New())
		assert.False(t, ok)
		assert.Zero(t, price)
	})

	t.Run("nil route", func(t *testing.T) {
		_, ok := ResolveBasePrice(nil, sedan)
		assert.False(t, ok)
	})

	t.Run("no rates at all", func(t *testing.T) {
		_, ok := ResolveBasePrice(&models.Route{}, sedan)
		assert.False(t, ok)
	})

	t.Run("explicit zero rate is priced", func(t *testing.T) {
		free := uuid.New()
		r := &models.Route{CustomRates: models.CustomRates{free: 0}}
		price, ok := ResolveBasePrice(r, free)
		assert.True(t, ok)
		assert.Zero(t, price)
	})
}

func TestQuoteRoute(t *testing.T) {
	sedan := uuid.New()
	route := &models.Route{CustomRates: models.CustomRates{sedan: 100}}
	d := &DiscountSettings{Enabled: true, Type: DiscountTypePercentage, Value: 20}

	t.Run("priced vehicle quotes with discount", func(t *testing.T) {
		got := QuoteRoute(route, sedan, d, frozenNow)
		assert.Equal(t, int64(100), got.OriginalPrice)
		assert.Equal(t, int64(80), got.Price)
	})

	t.Run("unpriced vehicle quotes from zero", func(t *testing.T) {
		got := QuoteRoute(route, uuid.New(), d, frozenNow)
		assert.Equal(t, PricingResult{DiscountType: DiscountTypePercentage}, got)
	})
}
