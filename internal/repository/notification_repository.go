package repository

import (
	"context"
	"database/sql"

	"github.com/hallbook/hallbook-api/internal/model"
)

const (
	qInsertNotification      = `INSERT INTO notifications (user_id, title, message, type) VALUES (?, ?, ?, ?)`
	qSelectNotificationByID  = `SELECT id, user_id, title, message, type, is_read, created_at FROM notifications WHERE id = ?`
	qListNotificationsByUser = `SELECT id, user_id, title, message, type, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	qMarkNotificationRead    = `UPDATE notifications SET is_read = 1 WHERE id = ?`
)

// NotificationRepo stores in-app notifications.  Storing a notification is
// all "sending" means here; nothing is pushed to the user.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts n as unread.  An empty Type is stored as BOOKING.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	typ := n.Type
	if typ == "" {
		typ = model.NotificationTypeBooking
	}
	id, err := insertID(r.db.ExecContext(ctx, qInsertNotification, n.UserID, n.Title, n.Message, typ))
	if err != nil {
		return err
	}
	created, err := scanNotification(r.db.QueryRowContext(ctx, qSelectNotificationByID, id))
	if err != nil {
		return err
	}
	*n = *created
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Notification, error) {
	rows, err := r.db.QueryContext(ctx, qListNotificationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read.  Returns ErrNotFound when the id
// does not exist.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, qMarkNotificationRead, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNotification(row scanner) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}
