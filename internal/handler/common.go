// Package handler defines the HTTP handlers for the API. Handlers depend
// on small store interfaces instead of concrete repositories so tests can
// substitute doubles.
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/middleware"
	"github.com/rakhadjo/nusatrip/internal/queue"
)

// EventPublisher emits booking events after a successful commit. A nil
// publisher disables publishing; failures never fail the request.
type EventPublisher interface {
	BookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
}

// getUserID extracts the authenticated user id placed in context by the
// JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("no authenticated user in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// asBookingID coerces a decoded JSON value into a booking id. Clients send
// bookingId either as a number or a numeric string; anything else is a
// validation failure.
func asBookingID(v any) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		if t > 0 && t == float64(uint64(t)) {
			return uint64(t), true
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
