package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
	"github.com/rakhadjo/nusatrip/internal/upload"
	"github.com/rakhadjo/nusatrip/internal/utils"
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	Users     UserStore
	PublicDir string
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users UserStore, publicDir string) *UserHandler {
	if users == nil {
		panic("nil store passed to NewUserHandler")
	}
	return &UserHandler{Users: users, PublicDir: publicDir}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list users"})
	}
	return c.JSON(http.StatusOK, users)
}

// Profile handles GET /users/profile for the authenticated user.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, user)
}

// CreateByAdmin handles POST /users/add: like registration but with an
// explicit role.
func (h *UserHandler) CreateByAdmin(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}
	user := model.User{Name: req.Name, Email: req.Email, Phone: req.Phone, Password: hash, Role: role}
	if err := h.Users.Create(c.Request().Context(), &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already used"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

// UpdateSelf handles PUT /users/update (multipart). Every field is
// optional; a new avatar replaces the previous file on disk once the
// database write succeeds.
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	patch := repository.UserPatch{}
	setIf := func(dst **string, key string) {
		if v := c.FormValue(key); v != "" {
			*dst = &v
		}
	}
	setIf(&patch.Name, "name")
	setIf(&patch.Email, "email")
	setIf(&patch.Phone, "phone")
	setIf(&patch.Gender, "gender")
	setIf(&patch.Country, "country")
	setIf(&patch.Role, "role")
	if v := c.FormValue("birthday"); v != "" {
		bd, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid birthday format"})
		}
		patch.Birthday = &bd
	}
	if v := c.FormValue("password"); v != "" {
		hash, err := utils.HashPassword(v)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
		}
		patch.Password = &hash
	}

	var cleanup func()
	var oldImage string
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		current, err := h.Users.GetByID(c.Request().Context(), userID)
		if err == nil && current.Image != nil {
			oldImage = *current.Image
		}
		name, clean, err := upload.Save(fh, h.PublicDir, upload.DirUsers)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidType) || errors.Is(err, upload.ErrTooLarge) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
		}
		cleanup = clean
		patch.Image = &name
	}

	user, err := h.Users.Update(c.Request().Context(), userID, patch)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already used"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update user"})
	}
	if patch.Image != nil && oldImage != "" {
		upload.Remove(h.PublicDir, upload.DirUsers, oldImage)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UpdateByAdmin handles PUT /users/:id with a JSON field patch.
func (h *UserHandler) UpdateByAdmin(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	patch := repository.UserPatch{Name: req.Name, Email: req.Email, Phone: req.Phone, Role: req.Role}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
		}
		patch.Password = &hash
	}

	user, err := h.Users.Update(c.Request().Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already used"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
