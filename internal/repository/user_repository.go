package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hallbook/hallbook-api/internal/model"
)

const (
	qInsertUser        = `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	qSelectUserByID    = `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ? LIMIT 1`
	qSelectUserByEmail = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ? LIMIT 1`
)

// UserRepo persists users together with their password verifiers.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// NormalizeEmail is the canonical form stored in users.email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts u and fills in the generated ID and creation time.  The
// caller must have set PasswordHash; the raw password never reaches this
// layer.  A duplicate email or username yields ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = NormalizeEmail(u.Email)
	id, err := insertID(r.db.ExecContext(ctx, qInsertUser, u.Username, u.Email, u.PasswordHash))
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*u = *created
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, qSelectUserByEmail, NormalizeEmail(email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, qSelectUserByID, id))
}

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
