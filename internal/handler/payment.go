package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/model"
)

// PaymentStore is the subset of repository.PaymentRepo used here.
type PaymentStore interface {
	Create(ctx context.Context, tx *model.PaymentTransaction) error
	GetByTransactionID(ctx context.Context, txID string) (*model.PaymentTransaction, error)
	ListByBooking(ctx context.Context, bookingID uint64) ([]*model.PaymentTransaction, error)
}

// PaymentEvents is notified after a transaction is recorded.
type PaymentEvents interface {
	PaymentRecorded(ctx context.Context, tx *model.PaymentTransaction) error
}

// PaymentHandler records payment transactions.  No gateway is contacted.
type PaymentHandler struct {
	Base
	Payments PaymentStore
	Events   PaymentEvents
}

func NewPaymentHandler(payments PaymentStore, events PaymentEvents, b Base) *PaymentHandler {
	return &PaymentHandler{Base: b, Payments: payments, Events: events}
}

type createPaymentReq struct {
	BookingID       uint64      `json:"booking_id" validate:"required"`
	Amount          json.Number `json:"amount" validate:"required,decimal=10 2"`
	PaymentMethod   *string     `json:"payment_method" validate:"omitempty,max=50"`
	TransactionID   *string     `json:"transaction_id" validate:"omitempty,max=100"`
	PaymentGateway  *string     `json:"payment_gateway" validate:"omitempty,max=50"`
	Status          string      `json:"status" validate:"omitempty,oneof=PENDING SUCCESS FAILED REFUNDED"`
	GatewayResponse *string     `json:"gateway_response" validate:"omitempty,max=65535"`
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	tx := &model.PaymentTransaction{
		BookingID:       req.BookingID,
		Amount:          req.Amount.String(),
		PaymentMethod:   optString(req.PaymentMethod),
		TransactionID:   optString(req.TransactionID),
		PaymentGateway:  optString(req.PaymentGateway),
		Status:          req.Status,
		GatewayResponse: req.GatewayResponse,
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Payments.Create(ctx, tx); err != nil {
		return h.writeError(c, err, "transaction")
	}
	if h.Events != nil {
		if err := h.Events.PaymentRecorded(ctx, tx); err != nil {
			h.Log.Warn().Err(err).Uint64("payment_id", tx.ID).Msg("payment event not published")
		}
	}
	return c.JSON(http.StatusOK, tx)
}

// Get looks a transaction up by its external transaction id.
func (h *PaymentHandler) Get(c echo.Context) error {
	txID := strings.TrimSpace(c.Param("transaction_id"))
	if txID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "transaction_id required"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	tx, err := h.Payments.GetByTransactionID(ctx, txID)
	if err != nil {
		return h.writeError(c, err, "transaction")
	}
	return c.JSON(http.StatusOK, tx)
}

// List returns the transactions of ?booking_id=.
func (h *PaymentHandler) List(c echo.Context) error {
	bookingID, present, ok := queryID(c, "booking_id")
	if !ok || !present {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id required"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	items, err := h.Payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return h.writeError(c, err, "transaction")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
