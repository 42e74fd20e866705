package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/bookings"
	"github.com/alaqsa-transport/backend/internal/contact"
	"github.com/alaqsa-transport/backend/internal/emaillogs"
	"github.com/alaqsa-transport/backend/internal/mailer"
	"github.com/alaqsa-transport/backend/internal/models"
	"github.com/alaqsa-transport/backend/internal/routes"
	"github.com/alaqsa-transport/backend/internal/vehicles"
	"github.com/alaqsa-transport/backend/pkg/queue"
)

// EmailProcessor processes email jobs: load the referenced records, render
// the template, send via the mailer and record the outcome in email_logs.
type EmailProcessor struct {
	bookingRepo *bookings.Repository
	routeRepo   *routes.Repository
	vehicleRepo *vehicles.Repository
	contactRepo *contact.Repository
	logRepo     *emaillogs.Repository
	mail        *mailer.Mailer
	queue       *queue.Queue
	logger      *zap.Logger
}

// NewEmailProcessor creates an email job processor.
func NewEmailProcessor(bookingRepo *bookings.Repository, routeRepo *routes.Repository, vehicleRepo *vehicles.Repository,
	contactRepo *contact.Repository, logRepo *emaillogs.Repository, mail *mailer.Mailer, q *queue.Queue, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{
		bookingRepo: bookingRepo,
		routeRepo:   routeRepo,
		vehicleRepo: vehicleRepo,
		contactRepo: contactRepo,
		logRepo:     logRepo,
		mail:        mail,
		queue:       q,
		logger:      logger,
	}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeBookingConfirmation, queue.JobTypeBookingStatus:
		var payload queue.BookingEmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
		return p.processBooking(ctx, job.Type, payload)
	case queue.JobTypeContactNotification:
		var payload queue.ContactEmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
		return p.processContact(ctx, payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (p *EmailProcessor) processBooking(ctx context.Context, jobType queue.JobType, payload queue.BookingEmailPayload) error {
	booking, err := p.bookingRepo.GetByID(ctx, payload.BookingID)
	if err != nil {
		return fmt.Errorf("booking not found: %s", payload.BookingID)
	}
	route, err := p.routeRepo.GetByID(ctx, booking.RouteID)
	if err != nil {
		return fmt.Errorf("route not found: %s", booking.RouteID)
	}
	vehicle, err := p.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return fmt.Errorf("vehicle not found: %s", booking.VehicleID)
	}

	data := mailer.BookingEmailData{
		CustomerName:    booking.CustomerName,
		Reference:       booking.Reference,
		Origin:          route.Origin,
		Destination:     route.Destination,
		Vehicle:         vehicle.Name,
		TravelAt:        booking.TravelAt.Format("02 Jan 2006 15:04"),
		Passengers:      booking.Passengers,
		OriginalPrice:   booking.OriginalPrice,
		DiscountApplied: booking.DiscountApplied,
		FinalPrice:      booking.FinalPrice,
		Discounted:      booking.DiscountType != "",
		NewStatus:       payload.NewStatus,
	}

	emailType := models.EmailTypeBookingConfirmation
	subject := "Booking received: " + booking.Reference
	tmpl := mailer.BookingConfirmationTmpl
	if jobType == queue.JobTypeBookingStatus {
		emailType = models.EmailTypeBookingStatus
		subject = "Booking " + payload.NewStatus + ": " + booking.Reference
		tmpl = mailer.BookingStatusTmpl
	}

	entry := &models.EmailLog{
		BookingID:      &booking.ID,
		EmailType:      emailType,
		RecipientEmail: payload.RecipientEmail,
		Subject:        subject,
		Status:         models.EmailLogStatusPending,
	}
	if err := p.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("create email log: %w", err)
	}
	if err := p.mail.Send(payload.RecipientEmail, subject, tmpl, data); err != nil {
		if logErr := p.logRepo.MarkFailed(ctx, entry.ID, err.Error()); logErr != nil {
			p.logger.Error("mark email failed errored", zap.Error(logErr))
		}
		return err
	}
	return p.logRepo.MarkSent(ctx, entry.ID, time.Now())
}

func (p *EmailProcessor) processContact(ctx context.Context, payload queue.ContactEmailPayload) error {
	msg, err := p.contactRepo.GetByID(ctx, payload.MessageID)
	if err != nil {
		return fmt.Errorf("contact message not found: %s", payload.MessageID)
	}
	data := mailer.ContactEmailData{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Message: msg.Message,
	}
	subject := "New contact message from " + msg.Name

	entry := &models.EmailLog{
		EmailType:      models.EmailTypeContactNotification,
		RecipientEmail: payload.RecipientEmail,
		Subject:        subject,
		Status:         models.EmailLogStatusPending,
	}
	if err := p.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("create email log: %w", err)
	}
	if err := p.mail.Send(payload.RecipientEmail, subject, mailer.ContactNotificationTmpl, data); err != nil {
		if logErr := p.logRepo.MarkFailed(ctx, entry.ID, err.Error()); logErr != nil {
			p.logger.Error("mark email failed errored", zap.Error(logErr))
		}
		return err
	}
	return p.logRepo.MarkSent(ctx, entry.ID, time.Now())
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
