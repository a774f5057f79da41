// Package router wires the handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-manager/internal/config"
	"github.com/iliyamo/hotel-manager/internal/handler"
	"github.com/iliyamo/hotel-manager/internal/middleware"
	"github.com/iliyamo/hotel-manager/internal/model"
)

// Cache namespaces shared by the response cache and its invalidators.
const (
	nsTariffs   = "tariffs"
	nsDashboard = "dashboard"
)

// RegisterRoutes exposes the unauthenticated health checks. readiness names the
// dependencies /readyz pings.
func RegisterRoutes(e *echo.Echo, readiness map[string]handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(readiness))
}

// RegisterAuth mounts the token endpoints under /v1/auth and the protected
// /v1/me. Logout is reachable without a valid access token so a client can
// always drop a refresh token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	e.POST("/v1/logout", a.Logout)
}

// Hotel bundles the handlers of the staff API.
type Hotel struct {
	Rooms        *handler.RoomHandler
	Guests       *handler.GuestHandler
	Bookings     *handler.BookingHandler
	Tariffs      *handler.TariffHandler
	Transactions *handler.FinancialHandler
	Employees    *handler.EmployeeHandler
	Dashboard    *handler.DashboardHandler
}

// Infra carries the settings of the Redis-backed middleware. A nil Redis
// client turns caching and rate limiting into pass-throughs.
type Infra struct {
	JWTSecret string
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
}

// RegisterHotel mounts the staff API under /v1. Every route needs a valid
// access token and is rate limited per caller; room, tariff and employee
// writes are reserved to ADMIN.
func RegisterHotel(e *echo.Echo, h Hotel, in Infra) {
	v1 := e.Group("/v1",
		middleware.JWTAuth(in.JWTSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff),
		middleware.RateLimit(in.RateLimit, in.Redis),
	)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// A room's type is copied onto its tariffs, and availability feeds the
	// dashboard.
	rooms := v1.Group("/rooms", middleware.InvalidateOnWrite(in.Cache, in.Redis, nsTariffs, nsDashboard))
	rooms.GET("", h.Rooms.List)
	rooms.GET("/:id", h.Rooms.Get)
	rooms.POST("", h.Rooms.Create, adminOnly)
	rooms.PUT("/:id", h.Rooms.Update, adminOnly)
	rooms.DELETE("/:id", h.Rooms.Delete, adminOnly)

	guests := v1.Group("/guests", middleware.InvalidateOnWrite(in.Cache, in.Redis, nsDashboard))
	guests.GET("", h.Guests.List)
	guests.GET("/:id", h.Guests.Get)
	guests.POST("", h.Guests.Create)
	guests.PUT("/:id", h.Guests.Update)
	guests.DELETE("/:id", h.Guests.Delete)

	bookings := v1.Group("/bookings", middleware.InvalidateOnWrite(in.Cache, in.Redis, nsDashboard))
	bookings.GET("", h.Bookings.List)
	bookings.GET("/quote", h.Bookings.Quote)
	bookings.GET("/:id", h.Bookings.Get)
	bookings.POST("", h.Bookings.Create)
	bookings.PUT("/:id", h.Bookings.Update)
	bookings.POST("/:id/checkin", h.Bookings.CheckIn)
	bookings.DELETE("/:id", h.Bookings.Delete)

	tariffs := v1.Group("/tariffs", middleware.ResponseCache(in.Cache, in.Redis, nsTariffs))
	tariffs.GET("", h.Tariffs.List)
	tariffs.GET("/current", h.Tariffs.Current)
	tariffs.GET("/:id", h.Tariffs.Get)
	tariffs.POST("", h.Tariffs.Create, adminOnly)
	tariffs.PUT("/:id", h.Tariffs.Update, adminOnly)
	tariffs.DELETE("/:id", h.Tariffs.Delete, adminOnly)

	txns := v1.Group("/financial-transactions", middleware.InvalidateOnWrite(in.Cache, in.Redis, nsDashboard))
	txns.GET("", h.Transactions.List)
	txns.GET("/:id", h.Transactions.Get)
	txns.POST("", h.Transactions.Create)
	txns.PUT("/:id", h.Transactions.Update)
	txns.DELETE("/:id", h.Transactions.Delete)

	employees := v1.Group("/employees")
	employees.GET("", h.Employees.List)
	employees.GET("/:id", h.Employees.Get)
	employees.POST("", h.Employees.Create, adminOnly)
	employees.PUT("/:id", h.Employees.Update, adminOnly)
	employees.DELETE("/:id", h.Employees.Delete, adminOnly)

	v1.GET("/dashboard/stats", h.Dashboard.Stats, middleware.ResponseCache(in.Cache, in.Redis, nsDashboard))
}
