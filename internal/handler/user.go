package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
)

// UserReader is the subset of repository.UserRepo used here.
type UserReader interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// PreferenceStore is the subset of repository.PreferenceRepo used here.
type PreferenceStore interface {
	Upsert(ctx context.Context, p *model.UserPreference) error
	GetByUser(ctx context.Context, userID uint64) (*model.UserPreference, error)
}

type UserHandler struct {
	Base
	Users       UserReader
	Preferences PreferenceStore
}

func NewUserHandler(users UserReader, prefs PreferenceStore, b Base) *UserHandler {
	return &UserHandler{Base: b, Users: users, Preferences: prefs}
}

// Get returns a user record; the password hash is never serialized.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return h.writeError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}

// GetPreferences returns the stored preferences of :id.
func (h *UserHandler) GetPreferences(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	p, err := h.Preferences.GetByUser(ctx, id)
	if err != nil {
		return h.writeError(c, err, "preferences")
	}
	return c.JSON(http.StatusOK, p)
}

type preferencesReq struct {
	PreferredCities      *string     `json:"preferred_cities"`
	PreferredHallTypes   *string     `json:"preferred_hall_types"`
	BudgetMin            json.Number `json:"budget_min" validate:"omitempty,decimal=10 2"`
	BudgetMax            json.Number `json:"budget_max" validate:"omitempty,decimal=10 2"`
	PreferredCapacityMin *int        `json:"preferred_capacity_min" validate:"omitempty,gte=0,max=2147483647"`
	PreferredCapacityMax *int        `json:"preferred_capacity_max" validate:"omitempty,gte=0,max=2147483647"`
}

// PutPreferences replaces the preferences of :id.
func (h *UserHandler) PutPreferences(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req preferencesReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p := &model.UserPreference{
		UserID:               id,
		PreferredCities:      optString(req.PreferredCities),
		PreferredHallTypes:   optString(req.PreferredHallTypes),
		BudgetMin:            optNumber(req.BudgetMin),
		BudgetMax:            optNumber(req.BudgetMax),
		PreferredCapacityMin: req.PreferredCapacityMin,
		PreferredCapacityMax: req.PreferredCapacityMax,
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Preferences.Upsert(ctx, p); err != nil {
		return h.writeError(c, err, "preferences")
	}
	return c.JSON(http.StatusOK, p)
}
