package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
	"github.com/rakhadjo/nusatrip/internal/upload"
)

// HotelStore is the persistence surface for the hotel catalog.
// *repository.HotelRepo satisfies it.
type HotelStore interface {
	List(ctx context.Context) ([]model.Hotel, error)
	GetByID(ctx context.Context, id uint64) (model.Hotel, error)
	Create(ctx context.Context, h *model.Hotel) error
	Update(ctx context.Context, id uint64, h model.Hotel) (model.Hotel, error)
	Delete(ctx context.Context, id uint64) error
}

// HotelHandler serves the hotel catalog endpoints.
type HotelHandler struct {
	Hotels    HotelStore
	PublicDir string
}

// NewHotelHandler constructs a HotelHandler.
func NewHotelHandler(hotels HotelStore, publicDir string) *HotelHandler {
	if hotels == nil {
		panic("nil store passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, PublicDir: publicDir}
}

// parseHotelFields validates the shared price/rating form fields. Rating
// is constrained to 0–5 inclusive.
func parseHotelFields(c echo.Context) (price, rating float64, errMsg string) {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return 0, 0, "Invalid price value"
	}
	rating, err = strconv.ParseFloat(c.FormValue("rating"), 64)
	if err != nil || rating < 0 || rating > 5 {
		return 0, 0, "Invalid rating value. Rating must be between 0 and 5"
	}
	return price, rating, ""
}

// List handles GET /hotel.
func (h *HotelHandler) List(c echo.Context) error {
	out, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list hotels"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /hotel/:id.
func (h *HotelHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, hotel)
}

// Create handles POST /hotel/add (multipart). Field validation runs before
// the file is touched so a bad rating never leaves an orphaned image.
func (h *HotelHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
	}
	price, rating, msg := parseHotelFields(c)
	if msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}

	fileName, cleanup, err := upload.Save(fh, h.PublicDir, upload.DirHotels)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
	}

	hotel := model.Hotel{Name: name, Location: location, Price: price, Rating: rating, Image: fileName}
	if err := h.Hotels.Create(c.Request().Context(), &hotel); err != nil {
		cleanup()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hotel"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hotel": hotel})
}

// Update handles PUT /hotel/:id. The image is optional; a replacement
// removes the previous file once the database write commits.
func (h *HotelHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	current, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	price, rating, msg := parseHotelFields(c)
	if msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = current.Name
	}
	location := strings.TrimSpace(c.FormValue("location"))
	if location == "" {
		location = current.Location
	}

	next := model.Hotel{Name: name, Location: location, Price: price, Rating: rating}
	var cleanup func()
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		fileName, clean, err := upload.Save(fh, h.PublicDir, upload.DirHotels)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
		}
		next.Image, cleanup = fileName, clean
	}

	hotel, err := h.Hotels.Update(c.Request().Context(), id, next)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update hotel"})
	}
	if next.Image != "" {
		upload.Remove(h.PublicDir, upload.DirHotels, current.Image)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel": hotel})
}

// Delete handles DELETE /hotel/:id, removing the image file with the row.
func (h *HotelHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	current, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Hotels.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete hotel"})
	}
	upload.Remove(h.PublicDir, upload.DirHotels, current.Image)
	return c.JSON(http.StatusOK, echo.Map{"message": "hotel deleted"})
}
