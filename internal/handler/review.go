package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
)

// ReviewStore is the subset of repository.ReviewRepo used here.
type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByHall(ctx context.Context, hallID uint64) ([]*model.Review, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Review, error)
}

type ReviewHandler struct {
	Base
	Reviews ReviewStore
}

func NewReviewHandler(reviews ReviewStore, b Base) *ReviewHandler {
	return &ReviewHandler{Base: b, Reviews: reviews}
}

type createReviewReq struct {
	BookingID  uint64  `json:"booking_id" validate:"required"`
	UserID     uint64  `json:"user_id" validate:"required"`
	HallID     uint64  `json:"hall_id" validate:"required"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	ReviewText *string `json:"review_text" validate:"omitempty,max=65535"`
}

// Create stores a review.  A second review for the same booking is a 409.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	rv := &model.Review{
		BookingID:  req.BookingID,
		UserID:     req.UserID,
		HallID:     req.HallID,
		Rating:     req.Rating,
		ReviewText: optString(req.ReviewText),
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Reviews.Create(ctx, rv); err != nil {
		return h.writeError(c, err, "review")
	}
	return c.JSON(http.StatusOK, rv)
}

// List filters by exactly one of ?hall_id= or ?user_id=.
func (h *ReviewHandler) List(c echo.Context) error {
	hallID, byHall, okHall := queryID(c, "hall_id")
	userID, byUser, okUser := queryID(c, "user_id")
	if !okHall || !okUser || byHall == byUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide one of hall_id or user_id"})
	}
	if byHall {
		return h.listByHall(c, hallID)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	items, err := h.Reviews.ListByUser(ctx, userID)
	if err != nil {
		return h.writeError(c, err, "review")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByHall serves /api/halls/:id/reviews.
func (h *ReviewHandler) ListByHall(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	return h.listByHall(c, id)
}

func (h *ReviewHandler) listByHall(c echo.Context, hallID uint64) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	items, err := h.Reviews.ListByHall(ctx, hallID)
	if err != nil {
		return h.writeError(c, err, "review")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
