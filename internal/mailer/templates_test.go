package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingConfirmationTemplate(t *testing.T) {
	data := BookingEmailData{
		CustomerName:    "Amira",
		Reference:       "AQ-7KX2M9QD",
		Origin:          "Airport",
		Destination:     "City Center",
		Vehicle:         "Minibus",
		TravelAt:        "01 Sep 2026 09:30",
		Passengers:      4,
		OriginalPrice:   120,
		DiscountApplied: 24,
		FinalPrice:      96,
		Discounted:      true,
	}
	var buf bytes.Buffer
	require.NoError(t, BookingConfirmationTmpl.Execute(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "AQ-7KX2M9QD")
	assert.Contains(t, out, "<s>120</s> 96 (24 off)")
}

func TestBookingConfirmationTemplate_NoDiscount(t *testing.T) {
	data := BookingEmailData{
		CustomerName: "Amira",
		Reference:    "AQ-7KX2M9QD",
		FinalPrice:   120,
	}
	var buf bytes.Buffer
	require.NoError(t, BookingConfirmationTmpl.Execute(&buf, data))
	assert.NotContains(t, buf.String(), "<s>")
}

func TestContactNotificationTemplate_EscapesHTML(t *testing.T) {
	data := ContactEmailData{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "<script>alert(1)</script>",
	}
	var buf bytes.Buffer
	require.NoError(t, ContactNotificationTmpl.Execute(&buf, data))
	assert.NotContains(t, buf.String(), "<script>")
}
