package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/queue"
	"github.com/rakhadjo/nusatrip/internal/repository"
	"github.com/rakhadjo/nusatrip/internal/upload"
)

// FlightBookingStore is the persistence surface for flight bookings.
// *repository.FlightBookingRepo satisfies it.
type FlightBookingStore interface {
	CreateWithPayment(ctx context.Context, b *model.FlightBooking, p *model.FlightPayment) error
	ListAll(ctx context.Context) ([]repository.FlightBookingDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.FlightBookingDetail, error)
	GetByIDAndUser(ctx context.Context, id, userID uint64) (repository.FlightBookingDetail, error)
	Update(ctx context.Context, id uint64, p repository.FlightBookingPatch) error
	Delete(ctx context.Context, id uint64) error
}

// FlightBookingHandler serves the booking-pesawat endpoints. The create
// flow snapshots the schedule price server-side; whatever the client sends
// for price is ignored.
type FlightBookingHandler struct {
	Bookings  FlightBookingStore
	Schedules ScheduleStore
	Events    EventPublisher
	PublicDir string
}

// NewFlightBookingHandler constructs a FlightBookingHandler. events may be
// nil to disable publishing.
func NewFlightBookingHandler(bookings FlightBookingStore, schedules ScheduleStore, events EventPublisher, publicDir string) *FlightBookingHandler {
	if bookings == nil || schedules == nil {
		panic("nil store passed to NewFlightBookingHandler")
	}
	return &FlightBookingHandler{Bookings: bookings, Schedules: schedules, Events: events, PublicDir: publicDir}
}

// Create handles POST /pesawat/book/flight/create. Multipart fields:
// jadwalId, name, gender, country, birthday, bank and the receipt image
// under "receipt". Booking and payment are written in one transaction; if
// that fails the stored receipt is deleted again.
func (h *FlightBookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized access"})
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file uploaded"})
	}
	// Receipt policy is checked before the schedule lookup so a bad upload
	// never costs a db roundtrip; Save re-validates when it stores the file.
	if err := upload.Validate(fh.Filename, fh.Size); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	jadwalID, err := strconv.ParseUint(c.FormValue("jadwalId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid jadwalId"})
	}
	birthday, err := time.Parse("2006-01-02", c.FormValue("birthday"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid birthday"})
	}

	ctx := c.Request().Context()
	jadwal, err := h.Schedules.GetByID(ctx, jadwalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Flight schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	name, cleanup, err := upload.Save(fh, h.PublicDir, upload.DirFlightReceipts)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store receipt"})
	}

	booking := model.FlightBooking{
		UserID:     userID,
		JadwalID:   jadwalID,
		Name:       c.FormValue("name"),
		Gender:     c.FormValue("gender"),
		Country:    c.FormValue("country"),
		Birthday:   birthday,
		TotalPrice: jadwal.Price,
	}
	payment := model.FlightPayment{
		Receipt: name,
		Bank:    c.FormValue("bank"),
	}
	if err := h.Bookings.CreateWithPayment(ctx, &booking, &payment); err != nil {
		cleanup()
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Flight schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	h.publish(ctx, booking, payment)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Booking and payment successfully created",
		"booking": booking,
		"payment": payment,
	})
}

func (h *FlightBookingHandler) publish(ctx context.Context, b model.FlightBooking, p model.FlightPayment) {
	if h.Events == nil {
		return
	}
	err := h.Events.BookingCreated(ctx, queue.BookingCreatedEvent{
		Kind:       queue.KindFlight,
		BookingID:  b.ID,
		PaymentID:  p.ID,
		UserID:     b.UserID,
		ResourceID: b.JadwalID,
		TotalPrice: b.TotalPrice,
		Bank:       p.Bank,
		CreatedAt:  b.BookingDate.UTC().Format(time.RFC3339),
	})
	if err != nil {
		logrus.WithError(err).Warn("booking event publish failed")
	}
}

// ListAll handles GET /pesawat/bookings/index (every booking, joined).
func (h *FlightBookingHandler) ListAll(c echo.Context) error {
	out, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list bookings"})
	}
	return c.JSON(http.StatusOK, out)
}

// ListMine handles GET /pesawat/bookings/index/user for the logged-in user.
func (h *FlightBookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized access"})
	}
	out, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list bookings"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /pesawat/booking/:bookingId. Bookings owned by another
// user answer 404, never 403, so ownership cannot be probed.
func (h *FlightBookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized access"})
	}
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}
	d, err := h.Bookings.GetByIDAndUser(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, d)
}

// Update handles PUT /pesawat/booking/update/:id. Only the passenger
// fields and the schedule reference can change; the price snapshot stays.
func (h *FlightBookingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}
	var req struct {
		JadwalID *uint64 `json:"jadwalId" form:"jadwalId"`
		Name     *string `json:"name" form:"name"`
		Gender   *string `json:"gender" form:"gender"`
		Country  *string `json:"country" form:"country"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	patch := repository.FlightBookingPatch{
		JadwalID: req.JadwalID,
		Name:     req.Name,
		Gender:   req.Gender,
		Country:  req.Country,
	}
	if err := h.Bookings.Update(c.Request().Context(), id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update booking."})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking updated successfully."})
}

// Delete handles DELETE /pesawat/booking/:id.
func (h *FlightBookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete booking."})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully."})
}
