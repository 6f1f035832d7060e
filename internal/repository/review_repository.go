package repository

import (
	"context"
	"database/sql"

	"github.com/hallbook/hallbook-api/internal/model"
)

const reviewColumns = `id, booking_id, user_id, hall_id, rating, review_text, created_at`

const (
	qInsertReview      = `INSERT INTO reviews (booking_id, user_id, hall_id, rating, review_text) VALUES (?, ?, ?, ?, ?)`
	qSelectReviewByID  = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	qListReviewsByHall = `SELECT ` + reviewColumns + ` FROM reviews WHERE hall_id = ? ORDER BY id`
	qListReviewsByUser = `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = ? ORDER BY id`
)

// ReviewRepo stores hall reviews.  At most one review exists per booking;
// a second one yields ErrDuplicate.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts rv and reads the stored row back.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	id, err := insertID(r.db.ExecContext(ctx, qInsertReview, rv.BookingID, rv.UserID, rv.HallID, rv.Rating, rv.ReviewText))
	if err != nil {
		return err
	}
	created, err := scanReview(r.db.QueryRowContext(ctx, qSelectReviewByID, id))
	if err != nil {
		return err
	}
	*rv = *created
	return nil
}

// ListByHall returns the reviews of a hall.
func (r *ReviewRepo) ListByHall(ctx context.Context, hallID uint64) ([]*model.Review, error) {
	return r.list(ctx, qListReviewsByHall, hallID)
}

// ListByUser returns the reviews written by a user.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Review, error) {
	return r.list(ctx, qListReviewsByUser, userID)
}

func (r *ReviewRepo) list(ctx context.Context, q string, id uint64) ([]*model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(row scanner) (*model.Review, error) {
	var rv model.Review
	if err := row.Scan(&rv.ID, &rv.BookingID, &rv.UserID, &rv.HallID, &rv.Rating, &rv.ReviewText, &rv.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &rv, nil
}
