package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallbook/hallbook-api/internal/model"
)

var hallCols = []string{"id", "owner_id", "name", "description", "address", "city", "state", "pincode",
	"latitude", "longitude", "capacity", "price_per_hour", "hall_type", "facilities", "status",
	"is_active", "rating", "total_bookings", "created_at", "updated_at"}

func hallRow(rows *sqlmock.Rows, id int64, city string) *sqlmock.Rows {
	return rows.AddRow(id, 1, "Grand Hall", nil, "1 Main St", city, nil, nil, nil, nil,
		200, "150.00", "OTHER", nil, "PENDING", true, "0.00", 0, created, created)
}

func TestHallRepo_Create_DefaultsHallType(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHallRepo(db)

	mock.ExpectExec(q(qInsertHall)).
		WithArgs(1, "Grand Hall", nil, "1 Main St", "Pune", nil, nil, nil, nil, 200, "150.00", "OTHER", nil).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(q(qSelectHallByID)).
		WithArgs(5).
		WillReturnRows(hallRow(sqlmock.NewRows(hallCols), 5, "Pune"))

	h := &model.Hall{OwnerID: 1, Name: "Grand Hall", Address: "1 Main St", City: "Pune", Capacity: 200, PricePerHour: "150.00"}
	require.NoError(t, repo.Create(context.Background(), h))
	assert.Equal(t, uint64(5), h.ID)
	assert.Equal(t, model.HallTypeOther, h.HallType)
	assert.Equal(t, model.HallStatusPending, h.Status)
	assert.True(t, h.IsActive)
	assert.Nil(t, h.Description)
}

func TestHallRepo_ListByCity(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHallRepo(db)

	rows := sqlmock.NewRows(hallCols)
	hallRow(rows, 1, "Pune")
	hallRow(rows, 2, "Pune")
	mock.ExpectQuery(q(qListHallsByCity)).WithArgs("Pune").WillReturnRows(rows)

	halls, err := repo.ListByCity(context.Background(), "Pune")
	require.NoError(t, err)
	require.Len(t, halls, 2)
	assert.Equal(t, uint64(2), halls[1].ID)
}

func TestHallRepo_ListAll_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHallRepo(db)

	mock.ExpectQuery(q(qListHalls)).WillReturnRows(sqlmock.NewRows(hallCols))

	halls, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, halls)
	assert.Empty(t, halls)
}

func TestHallRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHallRepo(db)

	mock.ExpectQuery(q(qSelectHallByID)).WithArgs(9).WillReturnRows(sqlmock.NewRows(hallCols))

	_, err := repo.GetByID(context.Background(), 9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHallRepo_ListByOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHallRepo(db)

	rows := sqlmock.NewRows(hallCols)
	hallRow(rows, 3, "Nagpur")
	mock.ExpectQuery(q(qListHallsByOwner)).WithArgs(1).WillReturnRows(rows)

	halls, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, uint64(1), halls[0].OwnerID)
	assert.Equal(t, "Nagpur", halls[0].City)
}
