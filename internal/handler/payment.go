package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
)

// FlightPaymentStore is the persistence surface for flight payment review.
// *repository.FlightPaymentRepo satisfies it.
type FlightPaymentStore interface {
	List(ctx context.Context) ([]repository.FlightPaymentDetail, error)
	UpdateStatus(ctx context.Context, bookingID uint64, status string) (model.FlightPayment, error)
}

// HotelPaymentStore is the persistence surface for hotel payment review.
// *repository.HotelPaymentRepo satisfies it.
type HotelPaymentStore interface {
	List(ctx context.Context) ([]repository.HotelPaymentDetail, error)
	UpdateStatus(ctx context.Context, bookingID uint64, status string) (model.HotelPayment, error)
}

// PaymentHandler serves the payment-review endpoints for both booking
// flows. Status moves freely inside the closed set {pending, approved,
// rejected}; the last write wins and no history is kept.
type PaymentHandler struct {
	Flights FlightPaymentStore
	Hotels  HotelPaymentStore
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(flights FlightPaymentStore, hotels HotelPaymentStore) *PaymentHandler {
	if flights == nil || hotels == nil {
		panic("nil store passed to NewPaymentHandler")
	}
	return &PaymentHandler{Flights: flights, Hotels: hotels}
}

// statusUpdateRequest carries the body of both status-update endpoints.
// bookingId arrives as a number or a numeric string depending on the
// client, so it decodes as any and is coerced by asBookingID.
type statusUpdateRequest struct {
	BookingID any    `json:"bookingId" form:"bookingId"`
	Status    string `json:"status" form:"status"`
}

func bindStatusUpdate(c echo.Context) (uint64, string, int, string) {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return 0, "", http.StatusBadRequest, "invalid request body"
	}
	id, ok := asBookingID(req.BookingID)
	if !ok {
		return 0, "", http.StatusBadRequest, "Invalid bookingId provided. It must be an integer."
	}
	if !model.ValidPaymentStatus(req.Status) {
		return 0, "", http.StatusUnprocessableEntity, "Invalid status. Must be one of: pending, approved, rejected."
	}
	return id, req.Status, 0, ""
}

// ListFlights handles GET /pesawat/payments/index.
func (h *PaymentHandler) ListFlights(c echo.Context) error {
	out, err := h.Flights.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error fetching payments"})
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateFlightStatus handles PUT /pesawat/payments/status.
func (h *PaymentHandler) UpdateFlightStatus(c echo.Context) error {
	id, status, code, msg := bindStatusUpdate(c)
	if msg != "" {
		return c.JSON(code, echo.Map{"error": msg})
	}
	p, err := h.Flights.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error updating payment status"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Payment status updated successfully",
		"updatedPayment": p,
	})
}

// ListHotels handles GET /hotel/payments/index.
func (h *PaymentHandler) ListHotels(c echo.Context) error {
	out, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error fetching payments"})
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateHotelStatus handles PUT /hotel/payments/status.
func (h *PaymentHandler) UpdateHotelStatus(c echo.Context) error {
	id, status, code, msg := bindStatusUpdate(c)
	if msg != "" {
		return c.JSON(code, echo.Map{"error": msg})
	}
	p, err := h.Hotels.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error updating payment status"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Payment status updated successfully",
		"updatedPayment": p,
	})
}
