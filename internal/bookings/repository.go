package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alaqsa-transport/backend/internal/models"
)

// Repository handles booking persistence. The price snapshot columns are
// written once at insert and never updated.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a booking repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `id, reference, route_id, vehicle_id, customer_name, customer_email, customer_phone,
	pickup_address, dropoff_address, travel_at, passengers, notes,
	original_price, discount_applied, final_price, discount_type, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *models.Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.RouteID, &b.VehicleID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.PickupAddress, &b.DropoffAddress, &b.TravelAt, &b.Passengers, &b.Notes,
		&b.OriginalPrice, &b.DiscountApplied, &b.FinalPrice, &b.DiscountType, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a new booking with its frozen price snapshot.
func (r *Repository) Create(ctx context.Context, b *models.Booking) error {
	const q = `INSERT INTO bookings (reference, route_id, vehicle_id, customer_name, customer_email, customer_phone,
		pickup_address, dropoff_address, travel_at, passengers, notes,
		original_price, discount_applied, final_price, discount_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, b.Reference, b.RouteID, b.VehicleID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.PickupAddress, b.DropoffAddress, b.TravelAt, b.Passengers, b.Notes,
		b.OriginalPrice, b.DiscountApplied, b.FinalPrice, b.DiscountType, string(b.Status)).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a booking by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id), &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByReference returns a booking by its customer-facing reference code.
func (r *Repository) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var b models.Booking
	err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference = $1`, reference), &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings, newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []interface{}
	if status != nil {
		q += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateStatus moves a booking from one status to another. The WHERE guard
// makes concurrent transitions race-safe; ok is false when the booking was
// no longer in the expected status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) (bool, error) {
	const q = `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	tag, err := r.pool.Exec(ctx, q, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
