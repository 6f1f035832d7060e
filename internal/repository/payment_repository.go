package repository

import (
	"context"
	"database/sql"

	"github.com/hallbook/hallbook-api/internal/model"
)

const paymentColumns = `id, booking_id, amount, payment_method, transaction_id, payment_gateway, status, gateway_response, created_at`

const (
	qInsertPayment = `INSERT INTO payment_transactions (booking_id, amount, payment_method, transaction_id,
	payment_gateway, status, gateway_response) VALUES (?, ?, ?, ?, ?, ?, ?)`
	qSelectPaymentByID     = `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE id = ?`
	qSelectPaymentByTxID   = `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE transaction_id = ? LIMIT 1`
	qListPaymentsByBooking = `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE booking_id = ? ORDER BY id`
)

// PaymentRepo records payment transactions against bookings.  It does not
// talk to any payment gateway.
type PaymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts tx.  An empty Status is stored as PENDING.  A reused
// transaction_id yields ErrDuplicate; an unknown booking yields
// ErrReferenceNotFound.
func (r *PaymentRepo) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	status := tx.Status
	if status == "" {
		status = model.TransactionStatusPending
	}
	id, err := insertID(r.db.ExecContext(ctx, qInsertPayment,
		tx.BookingID, tx.Amount, tx.PaymentMethod, tx.TransactionID, tx.PaymentGateway, status, tx.GatewayResponse))
	if err != nil {
		return err
	}
	created, err := scanPayment(r.db.QueryRowContext(ctx, qSelectPaymentByID, id))
	if err != nil {
		return err
	}
	*tx = *created
	return nil
}

// GetByTransactionID looks up a transaction by its external identifier.
func (r *PaymentRepo) GetByTransactionID(ctx context.Context, txID string) (*model.PaymentTransaction, error) {
	return scanPayment(r.db.QueryRowContext(ctx, qSelectPaymentByTxID, txID))
}

// ListByBooking returns all transactions recorded for a booking.
func (r *PaymentRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]*model.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx, qListPaymentsByBooking, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.PaymentTransaction{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row scanner) (*model.PaymentTransaction, error) {
	var p model.PaymentTransaction
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.TransactionID, &p.PaymentGateway,
		&p.Status, &p.GatewayResponse, &p.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
