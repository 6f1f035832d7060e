package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
)

// NotificationStore is the subset of repository.NotificationRepo used here.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uint64) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uint64) error
}

// NotificationHandler stores in-app notifications.  Delivery is out of
// scope; clients poll the list.
type NotificationHandler struct {
	Base
	Notifications NotificationStore
}

func NewNotificationHandler(store NotificationStore, b Base) *NotificationHandler {
	return &NotificationHandler{Base: b, Notifications: store}
}

type createNotificationReq struct {
	UserID  uint64 `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=65535"`
	Type    string `json:"type" validate:"omitempty,oneof=BOOKING PAYMENT REVIEW SYSTEM"`
}

func (h *NotificationHandler) Create(c echo.Context) error {
	var req createNotificationReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	n := &model.Notification{UserID: req.UserID, Title: req.Title, Message: req.Message, Type: req.Type}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Notifications.Create(ctx, n); err != nil {
		return h.writeError(c, err, "notification")
	}
	return c.JSON(http.StatusOK, n)
}

// List returns the notifications of ?user_id=, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, present, ok := queryID(c, "user_id")
	if !ok || !present {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	items, err := h.Notifications.ListByUser(ctx, userID)
	if err != nil {
		return h.writeError(c, err, "notification")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MarkRead flags one notification as read and replies 204.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		return h.writeError(c, err, "notification")
	}
	return c.NoContent(http.StatusNoContent)
}
