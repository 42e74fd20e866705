package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailType for outgoing automation emails.
const (
	EmailTypeBookingConfirmation = "booking_confirmation"
	EmailTypeBookingStatus       = "booking_status"
	EmailTypeContactNotification = "contact_notification"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusPending = "pending"
	EmailLogStatusSent    = "sent"
	EmailLogStatusFailed  = "failed"
)

// EmailLog records outgoing emails per booking for the admin panel.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	BookingID      *uuid.UUID `json:"booking_id,omitempty"`
	EmailType      string     `json:"email_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
