package mailer

import "html/template"

// BookingEmailData feeds the booking confirmation and status templates.
// Prices are whole currency units, already discounted at booking time.
type BookingEmailData struct {
	CustomerName    string
	Reference       string
	Origin          string
	Destination     string
	Vehicle         string
	TravelAt        string
	Passengers      int
	OriginalPrice   int64
	DiscountApplied int64
	FinalPrice      int64
	Discounted      bool
	NewStatus       string
}

// ContactEmailData feeds the admin contact notification template.
type ContactEmailData struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// BookingConfirmationTmpl is sent to the customer right after booking.
var BookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<h2>Booking received</h2>
<p>Dear {{.CustomerName}},</p>
<p>Thank you for your booking. Your reference is <strong>{{.Reference}}</strong>.</p>
<table>
  <tr><td>Route</td><td>{{.Origin}} &rarr; {{.Destination}}</td></tr>
  <tr><td>Vehicle</td><td>{{.Vehicle}}</td></tr>
  <tr><td>Travel date</td><td>{{.TravelAt}}</td></tr>
  <tr><td>Passengers</td><td>{{.Passengers}}</td></tr>
{{if .Discounted}}
  <tr><td>Price</td><td><s>{{.OriginalPrice}}</s> {{.FinalPrice}} ({{.DiscountApplied}} off)</td></tr>
{{else}}
  <tr><td>Price</td><td>{{.FinalPrice}}</td></tr>
{{end}}
</table>
<p>We will confirm your booking shortly.</p>
`))

// BookingStatusTmpl is sent when an admin moves a booking through its flow.
var BookingStatusTmpl = template.Must(template.New("booking_status").Parse(`
<h2>Booking update</h2>
<p>Dear {{.CustomerName}},</p>
<p>Your booking <strong>{{.Reference}}</strong> ({{.Origin}} &rarr; {{.Destination}}, {{.TravelAt}})
is now <strong>{{.NewStatus}}</strong>.</p>
`))

// ContactNotificationTmpl is sent to the site operators for each new
// contact-form message.
var ContactNotificationTmpl = template.Must(template.New("contact_notification").Parse(`
<h2>New contact message</h2>
<p><strong>{{.Name}}</strong> ({{.Email}}{{if .Phone}}, {{.Phone}}{{end}}) wrote:</p>
<blockquote>{{.Message}}</blockquote>
`))
