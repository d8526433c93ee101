package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes.
// The health check stays outside the versioned group.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to
// the versioned API group only.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *Handler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	api.POST("/flights/search", h.SearchQuotations)

	quotes := api.Group("/quotes")
	quotes.POST("", h.CreateQuote)
	quotes.POST("/pdf", h.CreateQuotePDF)

	api.POST("/pricing", h.PriceFares)

	bookings := api.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.GET("/:id/pdf", h.GetBookingPDF)
}
