package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
	"github.com/rakhadjo/nusatrip/internal/upload"
)

// PesawatStore is the persistence surface for the airline catalog.
// *repository.PesawatRepo satisfies it.
type PesawatStore interface {
	List(ctx context.Context) ([]model.Pesawat, error)
	GetByID(ctx context.Context, id uint64) (model.Pesawat, error)
	Create(ctx context.Context, p *model.Pesawat) error
	Update(ctx context.Context, id uint64, airline, logo string) (model.Pesawat, error)
	Delete(ctx context.Context, id uint64) error
}

// PesawatHandler serves the airline catalog endpoints.
type PesawatHandler struct {
	Pesawats  PesawatStore
	PublicDir string
}

// NewPesawatHandler constructs a PesawatHandler.
func NewPesawatHandler(pesawats PesawatStore, publicDir string) *PesawatHandler {
	if pesawats == nil {
		panic("nil store passed to NewPesawatHandler")
	}
	return &PesawatHandler{Pesawats: pesawats, PublicDir: publicDir}
}

// List handles GET /pesawat.
func (h *PesawatHandler) List(c echo.Context) error {
	out, err := h.Pesawats.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list pesawat"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /pesawat/:id.
func (h *PesawatHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Pesawats.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pesawat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /pesawat/add (multipart: airline + logo file).
func (h *PesawatHandler) Create(c echo.Context) error {
	airline := strings.TrimSpace(c.FormValue("airline"))
	if airline == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "airline is required"})
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}

	name, cleanup, err := upload.Save(fh, h.PublicDir, upload.DirAirlines)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store logo"})
	}

	p := model.Pesawat{Airline: airline, Logo: name}
	if err := h.Pesawats.Create(c.Request().Context(), &p); err != nil {
		cleanup()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create pesawat"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"pesawat": p})
}

// Update handles PUT /pesawat/update/:id. The logo file is optional; a
// replacement removes the previous file after the database write commits.
func (h *PesawatHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	current, err := h.Pesawats.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pesawat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	airline := strings.TrimSpace(c.FormValue("airline"))
	if airline == "" {
		airline = current.Airline
	}

	newLogo := ""
	var cleanup func()
	if fh, err := c.FormFile("logo"); err == nil && fh != nil {
		name, clean, err := upload.Save(fh, h.PublicDir, upload.DirAirlines)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store logo"})
		}
		newLogo, cleanup = name, clean
	}

	p, err := h.Pesawats.Update(c.Request().Context(), id, airline, newLogo)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update pesawat"})
	}
	if newLogo != "" {
		upload.Remove(h.PublicDir, upload.DirAirlines, current.Logo)
	}
	return c.JSON(http.StatusOK, echo.Map{"pesawat": p})
}

// Delete handles DELETE /pesawat/:id, removing the logo file with the row.
func (h *PesawatHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	current, err := h.Pesawats.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pesawat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Pesawats.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete pesawat"})
	}
	upload.Remove(h.PublicDir, upload.DirAirlines, current.Logo)
	return c.JSON(http.StatusOK, echo.Map{"message": "pesawat deleted"})
}
