package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discountValues(overrides map[string]string) map[string]string {
	values := map[string]string{
		SettingDiscountEnabled: "true",
		SettingDiscountType:    "percentage",
		SettingDiscountValue:   "20",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return values
}

func TestParseDiscountSettings(t *testing.T) {
	t.Run("valid percentage", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(nil))
		assert.True(t, d.Enabled)
		assert.Equal(t, DiscountTypePercentage, d.Type)
		assert.Equal(t, 20.0, d.Value)
		assert.Nil(t, d.StartsAt)
		assert.Nil(t, d.EndsAt)
	})

	t.Run("valid fixed with window", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountType:      "fixed",
			SettingDiscountValue:     "15",
			SettingDiscountStartDate: "2025-06-01T00:00:00Z",
			SettingDiscountEndDate:   "2025-06-30",
		}))
		assert.True(t, d.Enabled)
		assert.Equal(t, DiscountTypeFixed, d.Type)
		require.NotNil(t, d.StartsAt)
		require.NotNil(t, d.EndsAt)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *d.StartsAt)
		assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *d.EndsAt)
	})

	t.Run("disabled stays disabled", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountEnabled: "false",
		}))
		assert.False(t, d.Enabled)
	})

	t.Run("missing keys disable", func(t *testing.T) {
		d := ParseDiscountSettings(map[string]string{})
		assert.False(t, d.Enabled)
	})

	t.Run("unknown type disables", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountType: "loyalty",
		}))
		assert.False(t, d.Enabled)
	})

	t.Run("negative value disables", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountValue: "-5",
		}))
		assert.False(t, d.Enabled)
	})

	t.Run("percentage over 100 disables", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountValue: "150",
		}))
		assert.False(t, d.Enabled)
	})

	t.Run("fixed over 100 is fine", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountType:  "fixed",
			SettingDiscountValue: "150",
		}))
		assert.True(t, d.Enabled)
		assert.Equal(t, 150.0, d.Value)
	})

	t.Run("malformed start date disables", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountStartDate: "not-a-date",
		}))
		assert.False(t, d.Enabled)
	})

	t.Run("malformed end date disables", func(t *testing.T) {
		d := ParseDiscountSettings(discountValues(map[string]string{
			SettingDiscountEndDate: "31/06/2025",
		}))
		assert.False(t, d.Enabled)
	})
}

func TestParseDiscountSettings_RoundTripThroughCalculator(t *testing.T) {
	// A snapshot parsed from the store prices the same way as one built in
	// code: the booking flow and the display flow share both paths.
	d := ParseDiscountSettings(discountValues(map[string]string{
		SettingDiscountStartDate: "2025-06-14T00:00:00Z",
		SettingDiscountEndDate:   "2025-06-16T00:00:00Z",
	}))
	got := CalculateFinalPrice(100, &d, frozenNow)
	assert.Equal(t, int64(80), got.Price)
	assert.Equal(t, DiscountTypePercentage, got.DiscountType)
}
