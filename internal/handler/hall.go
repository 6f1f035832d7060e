package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
)

// HallStore is the subset of repository.HallRepo used here.
type HallStore interface {
	Create(ctx context.Context, h *model.Hall) error
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	ListAll(ctx context.Context) ([]*model.Hall, error)
	ListByCity(ctx context.Context, city string) ([]*model.Hall, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hall, error)
}

type HallHandler struct {
	Base
	Halls HallStore
}

func NewHallHandler(halls HallStore, b Base) *HallHandler {
	return &HallHandler{Base: b, Halls: halls}
}

type createHallReq struct {
	OwnerID      uint64      `json:"owner_id" validate:"required"`
	Name         string      `json:"name" validate:"required,max=150"`
	Description  *string     `json:"description" validate:"omitempty,max=65535"`
	Address      string      `json:"address" validate:"required,max=255"`
	City         string      `json:"city" validate:"required,max=100"`
	State        *string     `json:"state" validate:"omitempty,max=100"`
	Pincode      *string     `json:"pincode" validate:"omitempty,max=10"`
	Latitude     json.Number `json:"latitude" validate:"omitempty,latitude"`
	Longitude    json.Number `json:"longitude" validate:"omitempty,longitude"`
	Capacity     int         `json:"capacity" validate:"required,gt=0,max=2147483647"`
	PricePerHour json.Number `json:"price_per_hour" validate:"required,decimal=10 2"`
	HallType     string      `json:"hall_type" validate:"omitempty,oneof=BANQUET CONFERENCE WEDDING PARTY OTHER"`
	Facilities   *string     `json:"facilities" validate:"omitempty,max=65535"`
}

// Create stores a hall.  Status starts as PENDING and the hall is active.
func (h *HallHandler) Create(c echo.Context) error {
	var req createHallReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	hall := &model.Hall{
		OwnerID:      req.OwnerID,
		Name:         strings.TrimSpace(req.Name),
		Description:  optString(req.Description),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		State:        optString(req.State),
		Pincode:      optString(req.Pincode),
		Latitude:     optNumber(req.Latitude),
		Longitude:    optNumber(req.Longitude),
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour.String(),
		HallType:     req.HallType,
		Facilities:   optString(req.Facilities),
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Halls.Create(ctx, hall); err != nil {
		return h.writeError(c, err, "hall")
	}
	return c.JSON(http.StatusOK, hall)
}

// Get returns one hall by id.
func (h *HallHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, id)
	if err != nil {
		return h.writeError(c, err, "hall")
	}
	return c.JSON(http.StatusOK, hall)
}

// List returns every hall, or only those of ?owner_id= when given.
func (h *HallHandler) List(c echo.Context) error {
	ownerID, present, ok := queryID(c, "owner_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid owner_id"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	var (
		halls []*model.Hall
		err   error
	)
	if present {
		halls, err = h.Halls.ListByOwner(ctx, ownerID)
	} else {
		halls, err = h.Halls.ListAll(ctx)
	}
	if err != nil {
		return h.writeError(c, err, "hall")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// ListByCity returns the halls located in :city.
func (h *HallHandler) ListByCity(c echo.Context) error {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city required"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	halls, err := h.Halls.ListByCity(ctx, city)
	if err != nil {
		return h.writeError(c, err, "hall")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}
