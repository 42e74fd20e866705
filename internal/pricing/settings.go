package pricing

import (
	"strconv"
	"time"
)

// Settings store keys for the discount configuration.
const (
	SettingDiscountEnabled   = "discount_enabled"
	SettingDiscountType      = "discount_type"
	SettingDiscountValue     = "discount_value"
	SettingDiscountStartDate = "discount_start_date"
	SettingDiscountEndDate   = "discount_end_date"
)

// Date layouts accepted for discount window bounds.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDiscountSettings deserializes the discount configuration from raw
// settings values. Malformed configuration never reaches the calculator as
// an active discount: unparseable dates, an unknown type, a negative value
// or a value over 100 percent all yield a disabled discount.
func ParseDiscountSettings(values map[string]string) DiscountSettings {
	var d DiscountSettings

	if enabled, err := strconv.ParseBool(values[SettingDiscountEnabled]); err == nil {
		d.Enabled = enabled
	}

	switch t := DiscountType(values[SettingDiscountType]); t {
	case DiscountTypePercentage, DiscountTypeFixed:
		d.Type = t
	default:
		d.Enabled = false
	}

	value, err := strconv.ParseFloat(values[SettingDiscountValue], 64)
	switch {
	case err != nil || value < 0:
		d.Enabled = false
	case d.Type == DiscountTypePercentage && value > 100:
		d.Enabled = false
	default:
		d.Value = value
	}

	if raw := values[SettingDiscountStartDate]; raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			d.Enabled = false
		} else {
			d.StartsAt = &t
		}
	}
	if raw := values[SettingDiscountEndDate]; raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			d.Enabled = false
		} else {
			d.EndsAt = &t
		}
	}
	return d
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
