package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
)

// BookingStore is the subset of repository.BookingRepo used here.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error)
	ListByHall(ctx context.Context, hallID uint64) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, status string, reason *string) error
}

// BookingEvents is notified after a booking is stored.
type BookingEvents interface {
	BookingCreated(ctx context.Context, b *model.Booking) error
}

type BookingHandler struct {
	Base
	Bookings BookingStore
	Events   BookingEvents
}

func NewBookingHandler(bookings BookingStore, events BookingEvents, b Base) *BookingHandler {
	return &BookingHandler{Base: b, Bookings: bookings, Events: events}
}

type createBookingReq struct {
	UserID          uint64      `json:"user_id" validate:"required"`
	HallID          uint64      `json:"hall_id" validate:"required"`
	BookingDate     string      `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime       string      `json:"start_time" validate:"required,clock"`
	EndTime         string      `json:"end_time" validate:"required,clock"`
	DurationHours   json.Number `json:"duration_hours" validate:"required,decimal=4 2"`
	TotalAmount     json.Number `json:"total_amount" validate:"required,decimal=10 2"`
	EventType       *string     `json:"event_type" validate:"omitempty,max=100"`
	GuestCount      *int        `json:"guest_count" validate:"omitempty,gte=0,max=2147483647"`
	SpecialRequests *string     `json:"special_requests" validate:"omitempty,max=65535"`
}

// Create stores the booking as submitted.  No availability check is made.
// A booking.created event is published afterwards; publish failures are
// logged only.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	start, _ := normalizeClock(req.StartTime)
	end, _ := normalizeClock(req.EndTime)
	b := &model.Booking{
		UserID:          req.UserID,
		HallID:          req.HallID,
		BookingDate:     req.BookingDate,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   req.DurationHours.String(),
		TotalAmount:     req.TotalAmount.String(),
		EventType:       optString(req.EventType),
		GuestCount:      req.GuestCount,
		SpecialRequests: optString(req.SpecialRequests),
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Bookings.Create(ctx, b); err != nil {
		return h.writeError(c, err, "booking")
	}
	if h.Events != nil {
		if err := h.Events.BookingCreated(ctx, b); err != nil {
			h.Log.Warn().Err(err).Uint64("booking_id", b.ID).Msg("booking event not published")
		}
	}
	return c.JSON(http.StatusOK, b)
}

// Get returns one booking by id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return h.writeError(c, err, "booking")
	}
	return c.JSON(http.StatusOK, b)
}

type updateBookingStatusReq struct {
	Status             string  `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	CancellationReason *string `json:"cancellation_reason" validate:"omitempty,max=65535"`
}

// UpdateStatus moves a booking to any status and replies with the stored
// booking.  Transitions are not checked against the current status.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateBookingStatusReq
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Bookings.UpdateStatus(ctx, id, req.Status, optString(req.CancellationReason)); err != nil {
		return h.writeError(c, err, "booking")
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return h.writeError(c, err, "booking")
	}
	return c.JSON(http.StatusOK, b)
}

// List filters by exactly one of ?user_id= or ?hall_id=.
func (h *BookingHandler) List(c echo.Context) error {
	userID, byUser, okUser := queryID(c, "user_id")
	hallID, byHall, okHall := queryID(c, "hall_id")
	if !okUser || !okHall || byUser == byHall {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide one of user_id or hall_id"})
	}
	if byHall {
		return h.listByHall(c, hallID)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	items, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return h.writeError(c, err, "booking")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByHall serves /api/halls/:id/bookings.
func (h *BookingHandler) ListByHall(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	return h.listByHall(c, id)
}

func (h *BookingHandler) listByHall(c echo.Context, hallID uint64) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	items, err := h.Bookings.ListByHall(ctx, hallID)
	if err != nil {
		return h.writeError(c, err, "booking")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
