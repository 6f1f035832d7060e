package handler // handler defines http handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hallbook/hallbook-api/internal/repository"
)

// DefaultTimeout bounds every database call made on behalf of a request.
const DefaultTimeout = 5 * time.Second

// Validator adapts go-playground/validator to echo.Validator so handlers
// can call c.Validate on bound request bodies.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the custom tags:
//
//	clock          HH:MM or HH:MM:SS
//	decimal=P S    non-negative value that fits DECIMAL(P,S)
//
// It panics if a tag cannot be registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "clock", func(fl validator.FieldLevel) bool {
		_, ok := normalizeClock(fl.Field().String())
		return ok
	})
	mustRegister(v, "decimal", func(fl validator.FieldLevel) bool {
		return fitsDecimal(fl.Field().String(), fl.Param())
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// fitsDecimal reports whether s is a plain non-negative decimal with at
// most P-S integer digits and S fraction digits.  param is "P S".
func fitsDecimal(s, param string) bool {
	f := strings.Fields(param)
	if len(f) != 2 {
		return false
	}
	precision, err1 := strconv.Atoi(f[0])
	scale, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil || scale > precision {
		return false
	}
	whole, frac, hasFrac := strings.Cut(strings.TrimPrefix(s, "+"), ".")
	if whole == "" || (hasFrac && frac == "") || !allDigits(whole) || !allDigits(frac) {
		return false
	}
	whole = strings.TrimLeft(whole, "0")
	return len(whole) <= precision-scale && len(frac) <= scale
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// Base bundles what every handler needs besides its stores.
type Base struct {
	Log     zerolog.Logger
	Timeout time.Duration
}

// ctx derives a request-scoped context with the configured timeout.
func (b Base) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	t := b.Timeout
	if t <= 0 {
		t = DefaultTimeout
	}
	return context.WithTimeout(c.Request().Context(), t)
}

// bindValid binds the JSON body into req and validates it.  The returned
// error is already an HTTP response.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	return nil
}

// validationMessage flattens validator errors into "field: tag" pairs.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request"
	}
	msg := ""
	for i, fe := range ve {
		if i > 0 {
			msg += "; "
		}
		msg += fe.Field() + ": failed " + fe.Tag()
	}
	return msg
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// queryID parses an optional positive numeric query parameter.  present is
// false when the parameter is absent.
func queryID(c echo.Context, name string) (id uint64, present, ok bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	return id, true, err == nil && id > 0
}

// writeError maps repository sentinels onto status codes.  what names the
// entity for 404 messages.
func (b Base) writeError(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": what + " already exists"})
	case errors.Is(err, repository.ErrInvalidValue):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value out of range for " + what})
	case errors.Is(err, repository.ErrReferenceNotFound):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "referenced record does not exist"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "database timeout"})
	}
	b.Log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// normalizeClock accepts HH:MM or HH:MM:SS and returns HH:MM:SS, the form
// MySQL returns for TIME columns.
func normalizeClock(s string) (string, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

// optString turns a blank optional field into NULL.
func optString(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// optNumber carries an optional JSON number as a decimal string.
func optNumber(n json.Number) *string {
	if n == "" {
		return nil
	}
	s := n.String()
	return &s
}
