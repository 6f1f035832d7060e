package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallbook/hallbook-api/internal/model"
)

func TestReviewRepo_Create_OnePerBooking(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReviewRepo(db)

	mock.ExpectExec(q(qInsertReview)).
		WithArgs(11, 2, 5, 4, nil).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '11' for key 'uq_reviews_booking'"})

	err := repo.Create(context.Background(), &model.Review{BookingID: 11, UserID: 2, HallID: 5, Rating: 4})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestReviewRepo_ListByHall(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReviewRepo(db)

	mock.ExpectQuery(q(qListReviewsByHall)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "user_id", "hall_id", "rating", "review_text", "created_at"}).
			AddRow(1, 11, 2, 5, 5, "great", created))

	list, err := repo.ListByHall(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)
}

func TestReviewRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReviewRepo(db)

	mock.ExpectQuery(q(qListReviewsByUser)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "user_id", "hall_id", "rating", "review_text", "created_at"}).
			AddRow(1, 11, 2, 5, 5, "great", created).
			AddRow(2, 12, 2, 6, 3, nil, created))

	list, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(6), list[1].HallID)
	assert.Nil(t, list[1].ReviewText)
}

func TestNotificationRepo_Create_DefaultType(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepo(db)

	mock.ExpectExec(q(qInsertNotification)).
		WithArgs(2, "Booked", "Your booking was received", "BOOKING").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectQuery(q(qSelectNotificationByID)).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "created_at"}).
			AddRow(8, 2, "Booked", "Your booking was received", "BOOKING", false, created))

	n := &model.Notification{UserID: 2, Title: "Booked", Message: "Your booking was received"}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, uint64(8), n.ID)
	assert.False(t, n.IsRead)
}

func TestNotificationRepo_MarkRead_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepo(db)

	mock.ExpectExec(q(qMarkNotificationRead)).WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.MarkRead(context.Background(), 99), ErrNotFound)
}

func TestNotificationRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepo(db)

	mock.ExpectQuery(q(qListNotificationsByUser)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "created_at"}).
			AddRow(9, 2, "Paid", "Payment received", "PAYMENT", true, created).
			AddRow(8, 2, "Booked", "Your booking was received", "BOOKING", false, created))

	list, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(9), list[0].ID)
	assert.True(t, list[0].IsRead)
}

func TestPreferenceRepo_Upsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPreferenceRepo(db)

	cities := "Pune,Mumbai"
	mock.ExpectExec(q(qUpsertPreference)).
		WithArgs(2, cities, nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(q(qSelectPreferenceByUser)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "preferred_cities", "preferred_hall_types", "budget_min",
			"budget_max", "preferred_capacity_min", "preferred_capacity_max", "updated_at"}).
			AddRow(1, 2, cities, nil, nil, nil, nil, nil, created))

	p := &model.UserPreference{UserID: 2, PreferredCities: &cities}
	require.NoError(t, repo.Upsert(context.Background(), p))
	assert.Equal(t, uint64(1), p.ID)
	require.NotNil(t, p.PreferredCities)
	assert.Equal(t, cities, *p.PreferredCities)
}

func TestPreferenceRepo_GetByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPreferenceRepo(db)

	mock.ExpectQuery(q(qSelectPreferenceByUser)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "preferred_cities", "preferred_hall_types", "budget_min",
			"budget_max", "preferred_capacity_min", "preferred_capacity_max", "updated_at"}).
			AddRow(1, 2, nil, "BANQUET", "1000.00", "5000.00", 50, 300, created))
	mock.ExpectQuery(q(qSelectPreferenceByUser)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.GetByUser(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, p.BudgetMin)
	assert.Equal(t, "1000.00", *p.BudgetMin)
	require.NotNil(t, p.PreferredCapacityMax)
	assert.Equal(t, 300, *p.PreferredCapacityMax)
	assert.Nil(t, p.PreferredCities)

	_, err = repo.GetByUser(context.Background(), 3)
	require.ErrorIs(t, err, ErrNotFound)
}
