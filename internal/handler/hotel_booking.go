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

// HotelBookingStore is the persistence surface for hotel bookings.
// *repository.HotelBookingRepo satisfies it.
type HotelBookingStore interface {
	CreateWithPayment(ctx context.Context, b *model.HotelBooking, p *model.HotelPayment) error
	ListAll(ctx context.Context) ([]repository.HotelBookingDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.HotelBookingDetail, error)
	GetByIDAndUser(ctx context.Context, id, userID uint64) (repository.HotelBookingDetail, error)
}

// HotelBookingHandler serves the booking-hotel endpoints. Unlike flights,
// totalPrice is taken from the client as submitted; only its float syntax
// is checked.
type HotelBookingHandler struct {
	Bookings  HotelBookingStore
	Hotels    HotelStore
	Events    EventPublisher
	PublicDir string
}

// NewHotelBookingHandler constructs a HotelBookingHandler. events may be
// nil to disable publishing.
func NewHotelBookingHandler(bookings HotelBookingStore, hotels HotelStore, events EventPublisher, publicDir string) *HotelBookingHandler {
	if bookings == nil || hotels == nil {
		panic("nil store passed to NewHotelBookingHandler")
	}
	return &HotelBookingHandler{Bookings: bookings, Hotels: hotels, Events: events, PublicDir: publicDir}
}

// Create handles POST /hotel/book/hotel/create. Multipart fields:
// hotelId, checkInDate, checkOutDate, rooms, totalPrice, bank and the
// receipt image under "receipt".
func (h *HotelBookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized access"})
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file uploaded"})
	}
	// Receipt policy is checked before the hotel lookup so a bad upload
	// never costs a db roundtrip; Save re-validates when it stores the file.
	if err := upload.Validate(fh.Filename, fh.Size); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	hotelID, err := strconv.ParseUint(c.FormValue("hotelId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotelId"})
	}
	checkIn, err := time.Parse("2006-01-02", c.FormValue("checkInDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid checkInDate"})
	}
	checkOut, err := time.Parse("2006-01-02", c.FormValue("checkOutDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid checkOutDate"})
	}
	rooms, err := strconv.ParseUint(c.FormValue("rooms"), 10, 32)
	if err != nil || rooms == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rooms"})
	}
	totalPrice, err := strconv.ParseFloat(c.FormValue("totalPrice"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid totalPrice"})
	}

	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	name, cleanup, err := upload.Save(fh, h.PublicDir, upload.DirHotelReceipts)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store receipt"})
	}

	booking := model.HotelBooking{
		UserID:       userID,
		HotelID:      hotelID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Rooms:        uint32(rooms),
		TotalPrice:   totalPrice,
	}
	payment := model.HotelPayment{
		Receipt: name,
		Bank:    c.FormValue("bank"),
	}
	if err := h.Bookings.CreateWithPayment(ctx, &booking, &payment); err != nil {
		cleanup()
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	if h.Events != nil {
		err := h.Events.BookingCreated(ctx, queue.BookingCreatedEvent{
			Kind:       queue.KindHotel,
			BookingID:  booking.ID,
			PaymentID:  payment.ID,
			UserID:     booking.UserID,
			ResourceID: booking.HotelID,
			TotalPrice: booking.TotalPrice,
			Bank:       payment.Bank,
			CreatedAt:  booking.BookingDate.UTC().Format(time.RFC3339),
		})
		if err != nil {
			logrus.WithError(err).Warn("booking event publish failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Hotel booking and payment successfully created",
		"booking": booking,
		"payment": payment,
	})
}

// ListAll handles GET /hotel/booking/index/admin (every booking, joined).
func (h *HotelBookingHandler) ListAll(c echo.Context) error {
	out, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch booking data."})
	}
	return c.JSON(http.StatusOK, out)
}

// ListMine handles GET /hotel/booking/index for the logged-in user.
func (h *HotelBookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized access"})
	}
	out, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch booking data."})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /hotel/booking/:bookingId, owner-scoped.
func (h *HotelBookingHandler) Get(c echo.Context) error {
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
