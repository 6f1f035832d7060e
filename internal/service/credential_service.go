package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hallbook/hallbook-api/internal/model"
	"github.com/hallbook/hallbook-api/internal/repository"
	"github.com/hallbook/hallbook-api/internal/utils"
)

// ErrEmptyPassword is returned by Register when no password was supplied.
var ErrEmptyPassword = errors.New("password must not be empty")

// ErrPasswordTooLong is returned by Register for passwords bcrypt cannot
// represent (more than 72 bytes).
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// UserStore is the persistence the credential service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Signup carries the fields accepted at registration.
type Signup struct {
	Email    string
	Username string
	Password string
}

// CredentialService turns plaintext passwords into stored bcrypt verifiers
// at registration and checks candidates against them at login.  Its only
// state is the cost factor and a dummy verifier, both fixed at
// construction, so a single instance is shared by all requests.
type CredentialService struct {
	users UserStore
	cost  int
	log   zerolog.Logger

	// dummy is compared against when the email is unknown so that both
	// login failure paths spend one bcrypt comparison.
	dummy string
}

// NewCredentialService builds the service.  cost must be a valid bcrypt
// cost.
func NewCredentialService(users UserStore, cost int, log zerolog.Logger) (*CredentialService, error) {
	dummy, err := utils.HashPassword("hallbook/unknown-account", cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy verifier: %w", err)
	}
	return &CredentialService{
		users: users,
		cost:  cost,
		log:   log.With().Str("component", "credentials").Logger(),
		dummy: dummy,
	}, nil
}

// Register hashes the password and persists a new user.  Uniqueness of
// email and username is enforced by the store; its ErrDuplicate is returned
// unchanged.
func (s *CredentialService) Register(ctx context.Context, in Signup) (*model.User, error) {
	if in.Password == "" {
		return nil, ErrEmptyPassword
	}
	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        repository.NormalizeEmail(in.Email),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Uint64("user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login returns the user whose email and password match.  An unknown email
// and a wrong password both yield (nil, false, nil); the error result is
// only set when the store itself fails.  Candidates longer than
// utils.MaxPasswordBytes never match, even when their prefix does.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*model.User, bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.VerifyPassword(s.dummy, password)
			s.log.Debug().Msg("login rejected")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		s.log.Debug().Msg("login rejected")
		return nil, false, nil
	}
	return u, true, nil
}
