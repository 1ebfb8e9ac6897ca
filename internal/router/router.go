// Package router maps the public API paths onto their handlers. Paths are
// grouped by domain area; each Register function takes the handlers it
// needs so wiring stays explicit in main.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rakhadjo/nusatrip/internal/config"
	"github.com/rakhadjo/nusatrip/internal/handler"
	"github.com/rakhadjo/nusatrip/internal/middleware"
)

// RegisterHealth exposes the liveness probe.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and logout. Logout is the
// only one requiring a session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))
}

// RegisterUsers registers the user management endpoints. Profile and
// self-update act on the authenticated user; the rest take explicit ids.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	e.POST("/users/add", u.CreateByAdmin)
	e.GET("/users", u.List)
	e.GET("/users/profile", u.Profile, middleware.JWTAuth(jwtSecret))
	e.PUT("/users/update", u.UpdateSelf, middleware.JWTAuth(jwtSecret))
	e.PUT("/users/:id", u.UpdateByAdmin)
	e.DELETE("/users/:id", u.Delete)
}

// RegisterCatalog registers the pesawat, hotel and flight-schedule
// endpoints. Public GET listings go through the Redis response cache;
// mutations stay uncached.
func RegisterCatalog(e *echo.Echo, p *handler.PesawatHandler, h *handler.HotelHandler, s *handler.ScheduleHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.ResponseCache(cacheCfg, rdb)

	e.GET("/pesawat", p.List, cache)
	e.GET("/pesawat/:id", p.Get, cache)
	e.POST("/pesawat/add", p.Create)
	e.PUT("/pesawat/update/:id", p.Update)
	e.DELETE("/pesawat/:id", p.Delete)

	e.GET("/hotel", h.List, cache)
	e.GET("/hotel/:id", h.Get, cache)
	e.POST("/hotel/add", h.Create)
	e.PUT("/hotel/:id", h.Update)
	e.DELETE("/hotel/:id", h.Delete)

	// Schedule listings are search-parameterised, so the cache keys on the
	// full request URI.
	e.GET("/jadwal-penerbangan", s.List, cache)
	e.GET("/jadwal-penerbangan/:id", s.Get, cache)
	e.POST("/jadwal-penerbangan/add", s.Create)
	e.PUT("/jadwal-penerbangan/update/:id", s.Update)
	e.DELETE("/jadwal-penerbangan/:id", s.Delete)
}

// RegisterBookings registers both booking flows. Creation and user-scoped
// reads require a session; admin listings and maintenance do not, matching
// the documented surface.
func RegisterBookings(e *echo.Echo, f *handler.FlightBookingHandler, h *handler.HotelBookingHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	e.POST("/pesawat/book/flight/create", f.Create, auth)
	e.GET("/pesawat/bookings/index", f.ListAll)
	e.GET("/pesawat/bookings/index/user", f.ListMine, auth)
	e.GET("/pesawat/booking/:bookingId", f.Get, auth)
	e.PUT("/pesawat/booking/update/:id", f.Update)
	e.DELETE("/pesawat/booking/:id", f.Delete)

	e.POST("/hotel/book/hotel/create", h.Create, auth)
	e.GET("/hotel/booking/index/admin", h.ListAll)
	e.GET("/hotel/booking/index", h.ListMine, auth)
	e.GET("/hotel/booking/:bookingId", h.Get, auth)
}

// RegisterPayments registers the payment review endpoints.
func RegisterPayments(e *echo.Echo, p *handler.PaymentHandler) {
	e.GET("/pesawat/payments/index", p.ListFlights)
	e.PUT("/pesawat/payments/status", p.UpdateFlightStatus)
	e.GET("/hotel/payments/index", p.ListHotels)
	e.PUT("/hotel/payments/status", p.UpdateHotelStatus)
}
