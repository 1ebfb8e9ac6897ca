package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
)

// ScheduleStore is the persistence surface for flight schedules.
// *repository.ScheduleRepo satisfies it.
type ScheduleStore interface {
	Search(ctx context.Context, q repository.ScheduleSearch) ([]model.FlightSchedule, error)
	GetByID(ctx context.Context, id uint64) (model.FlightSchedule, error)
	Create(ctx context.Context, s *model.FlightSchedule) error
	Update(ctx context.Context, id uint64, s model.FlightSchedule) (model.FlightSchedule, error)
	Delete(ctx context.Context, id uint64) error
}

// ScheduleHandler serves the jadwal-penerbangan endpoints.
type ScheduleHandler struct {
	Schedules ScheduleStore
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(schedules ScheduleStore) *ScheduleHandler {
	if schedules == nil {
		panic("nil store passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Schedules: schedules}
}

// List handles GET /jadwal-penerbangan with optional origin, destination,
// class and flightDate filters. String filters match case-insensitive
// substrings; flightDate matches the whole day. A filtered search with no
// matches answers 404.
func (h *ScheduleHandler) List(c echo.Context) error {
	q := repository.ScheduleSearch{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Class:       c.QueryParam("class"),
	}
	filtered := q.Origin != "" || q.Destination != "" || q.Class != ""
	if v := c.QueryParam("flightDate"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format"})
		}
		q.FlightDate = &d
		filtered = true
	}

	out, err := h.Schedules.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list flight schedules"})
	}
	if filtered && len(out) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No flights found."})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /jadwal-penerbangan/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Schedules.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// bindSchedule reads the full field set required by create and update.
// Accepts both JSON and form encodings.
func bindSchedule(c echo.Context) (model.FlightSchedule, string) {
	var req struct {
		PesawatID     string `json:"pesawatId" form:"pesawatId"`
		FlightDate    string `json:"flightDate" form:"flightDate"`
		DepartureTime string `json:"departureTime" form:"departureTime"`
		ArrivalTime   string `json:"arrivalTime" form:"arrivalTime"`
		Origin        string `json:"origin" form:"origin"`
		Destination   string `json:"destination" form:"destination"`
		Class         string `json:"class" form:"class"`
		Price         string `json:"price" form:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return model.FlightSchedule{}, "invalid request body"
	}
	if req.PesawatID == "" || req.FlightDate == "" || req.DepartureTime == "" ||
		req.ArrivalTime == "" || req.Origin == "" || req.Destination == "" ||
		req.Class == "" || req.Price == "" {
		return model.FlightSchedule{}, "all fields are required"
	}
	pesawatID, err := strconv.ParseUint(req.PesawatID, 10, 64)
	if err != nil {
		return model.FlightSchedule{}, "invalid pesawatId"
	}
	flightDate, err := time.Parse("2006-01-02", req.FlightDate)
	if err != nil {
		return model.FlightSchedule{}, "invalid date or time format"
	}
	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return model.FlightSchedule{}, "invalid price"
	}
	return model.FlightSchedule{
		PesawatID:     pesawatID,
		FlightDate:    flightDate,
		DepartureTime: strings.TrimSpace(req.DepartureTime),
		ArrivalTime:   strings.TrimSpace(req.ArrivalTime),
		Origin:        strings.TrimSpace(req.Origin),
		Destination:   strings.TrimSpace(req.Destination),
		Class:         strings.TrimSpace(req.Class),
		Price:         price,
	}, ""
}

// Create handles POST /jadwal-penerbangan/add.
func (h *ScheduleHandler) Create(c echo.Context) error {
	s, msg := bindSchedule(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Schedules.Create(c.Request().Context(), &s); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pesawat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create flight schedule"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /jadwal-penerbangan/update/:id; every field is
// required, as on create.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, msg := bindSchedule(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	out, err := h.Schedules.Update(c.Request().Context(), id, s)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update flight schedule"})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /jadwal-penerbangan/:id.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Schedules.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete flight schedule"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "flight schedule deleted"})
}
