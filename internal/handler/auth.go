package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
	"github.com/hallbook/hallbook-api/internal/service"
)

// CredentialManager registers users and checks login attempts.
type CredentialManager interface {
	Register(ctx context.Context, in service.Signup) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, bool, error)
}

// AuthHandler serves signup and login.
type AuthHandler struct {
	Base
	Creds CredentialManager
}

func NewAuthHandler(creds CredentialManager, b Base) *AuthHandler {
	return &AuthHandler{Base: b, Creds: creds}
}

type signupReq struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// Signup stores a new user and returns it without the verifier.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.Creds.Register(ctx, service.Signup{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyPassword) || errors.Is(err, service.ErrPasswordTooLong) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return h.writeError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}

// Login checks the email and password query parameters.  Any mismatch is
// reported as the same plain-text 400.
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.QueryParam("email")
	password := c.QueryParam("password")
	if email == "" || password == "" {
		return c.String(http.StatusBadRequest, "Invalid credentials")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	u, ok, err := h.Creds.Login(ctx, email, password)
	if err != nil {
		h.Log.Error().Err(err).Msg("login lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !ok {
		return c.String(http.StatusBadRequest, "Invalid credentials")
	}
	return c.JSON(http.StatusOK, u)
}
