package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/hallbook/hallbook-api/internal/handler"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Halls         *handler.HallHandler
	Bookings      *handler.BookingHandler
	Payments      *handler.PaymentHandler
	Reviews       *handler.ReviewHandler
	Notifications *handler.NotificationHandler
	Users         *handler.UserHandler
	Ready         echo.HandlerFunc
}

// Middleware holds the optional edge middleware.  Nil entries are skipped.
type Middleware struct {
	// RateLimit guards the credential endpoints.
	RateLimit echo.MiddlewareFunc
	// Cache serves hall reads; Invalidate purges it after hall writes.
	Cache      echo.MiddlewareFunc
	Invalidate echo.MiddlewareFunc
}

// RegisterRoutes mounts every endpoint of the API on e.
func RegisterRoutes(e *echo.Echo, h Handlers, mw Middleware) {
	e.GET("/healthz", handler.Health)
	if h.Ready != nil {
		e.GET("/readyz", h.Ready)
	}

	api := e.Group("/api")
	registerAuth(api, h.Auth, mw)
	registerHalls(api, h, mw)

	b := api.Group("/bookings")
	b.POST("", h.Bookings.Create)
	b.GET("", h.Bookings.List)
	b.GET("/:id", h.Bookings.Get)
	b.PATCH("/:id/status", h.Bookings.UpdateStatus)

	p := api.Group("/payments")
	p.POST("", h.Payments.Create)
	p.GET("", h.Payments.List)
	p.GET("/:transaction_id", h.Payments.Get)

	r := api.Group("/reviews")
	r.POST("", h.Reviews.Create)
	r.GET("", h.Reviews.List)

	n := api.Group("/notifications")
	n.POST("", h.Notifications.Create)
	n.GET("", h.Notifications.List)
	n.PATCH("/:id/read", h.Notifications.MarkRead)

	u := api.Group("/users")
	u.GET("/:id", h.Users.Get)
	u.GET("/:id/preferences", h.Users.GetPreferences)
	u.PUT("/:id/preferences", h.Users.PutPreferences)
}

func registerAuth(api *echo.Group, a *handler.AuthHandler, mw Middleware) {
	var guard []echo.MiddlewareFunc
	if mw.RateLimit != nil {
		guard = append(guard, mw.RateLimit)
	}
	api.POST("/signup", a.Signup, guard...)
	api.POST("/login", a.Login, guard...)
}

func registerHalls(api *echo.Group, h Handlers, mw Middleware) {
	var read, write []echo.MiddlewareFunc
	if mw.Cache != nil {
		read = append(read, mw.Cache)
	}
	if mw.Invalidate != nil {
		write = append(write, mw.Invalidate)
	}

	g := api.Group("/halls")
	g.POST("", h.Halls.Create, write...)
	g.GET("", h.Halls.List, read...)
	g.GET("/city/:city", h.Halls.ListByCity, read...)
	g.GET("/:id", h.Halls.Get, read...)
	g.GET("/:id/bookings", h.Bookings.ListByHall)
	g.GET("/:id/reviews", h.Reviews.ListByHall)
}
