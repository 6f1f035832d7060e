package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallbook/hallbook-api/internal/model"
)

var userCols = []string{"id", "username", "email", "password_hash", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(q(qInsertUser)).
		WithArgs("alice", "alice@example.com", "$2a$hash").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(q(qSelectUserByID)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(7, "alice", "alice@example.com", "$2a$hash", created))

	u := &model.User{Username: "alice", Email: " Alice@Example.com", PasswordHash: "$2a$hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, created, u.CreatedAt)
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(q(qInsertUser)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice@example.com' for key 'uq_users_email'"})

	err := repo.Create(context.Background(), &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(q(qSelectUserByEmail)).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "bob", "bob@example.com", "h", created))

	u, err := repo.GetByEmail(context.Background(), "BOB@example.com ")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, "h", u.PasswordHash)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(q(qSelectUserByEmail)).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_GetByID_DBError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(q(qSelectUserByID)).WithArgs(1).WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), 1)
	require.EqualError(t, err, "db down")
}
