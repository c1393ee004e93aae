package router // package router defines how HTTP routes are registered for the API

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"

	"github.com/stayhub/booking-api/internal/handler"
	"github.com/stayhub/booking-api/internal/middleware"
	"github.com/stayhub/booking-api/internal/model"
)

// Resources bundles the four CRUD controllers plus the login handler.
type Resources struct {
	Bookings   *handler.Resource[model.Booking]
	Hosts      *handler.Resource[model.Host]
	Properties *handler.Resource[model.Property]
	Reviews    *handler.Resource[model.Review]
	Login      *handler.LoginHandler
}

// ErrorHandler is the single top-level translator for anything handlers did
// not map themselves. Echo's own HTTP errors (unknown route, bad method)
// keep their status; everything else is logged and answered with a generic
// 500 so no request hangs and no internal detail reaches the caller.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, echo.Map{"error": fmt.Sprintf("%v", he.Message)})
		return
	}
	c.Logger().Error(err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
}

// Register wires all routes. Reads are open (and cached when a cache
// middleware is supplied); every create, update and delete sits behind the
// token gate. /login bypasses the gate by design: it is how tokens are
// obtained.
func Register(e *echo.Echo, secret string, cache echo.MiddlewareFunc, r Resources) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(emw.Recover())

	e.GET("/healthz", handler.Health)
	e.POST("/login", r.Login.Login)

	gate := middleware.TokenAuth(secret)
	mount(e, "/bookings", r.Bookings, gate, cache)
	mount(e, "/hosts", r.Hosts, gate, cache)
	mount(e, "/properties", r.Properties, gate, cache)
	mount(e, "/reviews", r.Reviews, gate, cache)
}

// mount registers the uniform five-endpoint surface of one resource.
func mount[T any](e *echo.Echo, base string, r *handler.Resource[T], gate, cache echo.MiddlewareFunc) {
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	e.GET(base, r.List, cache)
	e.GET(base+"/:id", r.Get, cache)
	e.POST(base, r.Create, gate)
	e.PUT(base+"/:id", r.Update, gate)
	e.DELETE(base+"/:id", r.Delete, gate)
}
