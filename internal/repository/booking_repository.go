package repository

import (
	"context"
	"database/sql"

	"github.com/hallbook/hallbook-api/internal/model"
)

// booking_date is formatted in SQL because parseTime would otherwise turn
// the DATE column into a time.Time at midnight UTC.
const bookingColumns = `id, user_id, hall_id, DATE_FORMAT(booking_date, '%Y-%m-%d'), start_time, end_time,
	duration_hours, total_amount, event_type, guest_count, special_requests, status, payment_status,
	payment_id, cancellation_reason, created_at, updated_at`

const (
	qInsertBooking = `INSERT INTO bookings (user_id, hall_id, booking_date, start_time, end_time, duration_hours,
	total_amount, event_type, guest_count, special_requests) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	qSelectBookingByID   = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	qListBookingsByUser  = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY id`
	qListBookingsByHall  = `SELECT ` + bookingColumns + ` FROM bookings WHERE hall_id = ? ORDER BY id`
	qUpdateBookingStatus = `UPDATE bookings SET status = ?, cancellation_reason = ? WHERE id = ?`
)

// BookingRepo stores bookings.  It does not check the hall calendar; a
// booking is persisted exactly as submitted.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts b with PENDING status and payment status and reads the
// stored row back into b.  A missing user or hall yields
// ErrReferenceNotFound.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	id, err := insertID(r.db.ExecContext(ctx, qInsertBooking,
		b.UserID, b.HallID, b.BookingDate, b.StartTime, b.EndTime, b.DurationHours,
		b.TotalAmount, b.EventType, b.GuestCount, b.SpecialRequests))
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*b = *created
	return nil
}

// GetByID retrieves one booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, qSelectBookingByID, id))
}

// ListByUser returns the bookings made by a user.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	return r.list(ctx, qListBookingsByUser, userID)
}

// ListByHall returns the bookings made for a hall.
func (r *BookingRepo) ListByHall(ctx context.Context, hallID uint64) ([]*model.Booking, error) {
	return r.list(ctx, qListBookingsByHall, hallID)
}

// UpdateStatus sets the booking status and cancellation reason.  Returns
// ErrNotFound when the id does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string, reason *string) error {
	res, err := r.db.ExecContext(ctx, qUpdateBookingStatus, status, reason, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepo) list(ctx context.Context, q string, id uint64) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(row scanner) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.HallID, &b.BookingDate, &b.StartTime, &b.EndTime,
		&b.DurationHours, &b.TotalAmount, &b.EventType, &b.GuestCount, &b.SpecialRequests, &b.Status,
		&b.PaymentStatus, &b.PaymentID, &b.CancellationReason, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}
