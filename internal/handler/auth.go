package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
	"github.com/rakhadjo/nusatrip/internal/utils"
)

// UserStore is the persistence surface the auth and user handlers need.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint64, p repository.UserPatch) (model.User, error)
	Delete(ctx context.Context, id uint64) error
}

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Users  UserStore
	Secret string
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users UserStore, secret string) *AuthHandler {
	if users == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, Secret: secret}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles POST /register. New accounts always get the "user"
// role; a taken email answers 400 per the documented API.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hash,
		Role:     model.RoleUser,
	}
	if err := h.Users.Create(c.Request().Context(), &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already used"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

// Login handles POST /login. Unknown email answers 404, a wrong password
// 401, and a mismatched expected role 403. The issued credential encodes
// id, email and role and stays valid for 30 days.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if req.Role != "" && req.Role != user.Role {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "role mismatch"})
	}

	token, err := utils.IssueToken(h.Secret, user.ID, user.Email, user.Role, utils.CredentialTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "role": user.Role})
}

// Logout handles POST /logout. The credential itself cannot be revoked;
// the endpoint exists so clients have a deliberate session boundary and
// answers with the caller's id.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"userId": userID})
}
