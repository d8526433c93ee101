// Package http provides the HTTP handler layer for the fare quotation API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luckytour/fare-quotation-service/internal/adapter/http/response"
	"github.com/luckytour/fare-quotation-service/internal/adapter/pdf"
	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
	"github.com/luckytour/fare-quotation-service/internal/usecase"
)

// healthCheckTimeout bounds all dependency checks of one /health call.
const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators of a Handler. Sellers, Renderer and Clock
// default when nil.
type Deps struct {
	Search       usecase.QuotationSearchUseCase
	Quotes       usecase.QuoteUseCase
	Bookings     usecase.BookingUseCase
	Sellers      *domain.SellerDirectory
	Renderer     *pdf.Renderer
	Clock        timeutil.Clock
	HealthChecks map[string]HealthCheck
}

// Handler handles HTTP requests for search, quote, pricing and booking endpoints.
type Handler struct {
	search   usecase.QuotationSearchUseCase
	quotes   usecase.QuoteUseCase
	bookings usecase.BookingUseCase
	sellers  *domain.SellerDirectory
	renderer *pdf.Renderer
	clock    timeutil.Clock
	checks   map[string]HealthCheck
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		search:   deps.Search,
		quotes:   deps.Quotes,
		bookings: deps.Bookings,
		sellers:  deps.Sellers,
		renderer: deps.Renderer,
		clock:    deps.Clock,
		checks:   deps.HealthChecks,
	}
	if h.sellers == nil {
		h.sellers = domain.NewSellerDirectory(nil, "")
	}
	if h.renderer == nil {
		h.renderer = pdf.NewRenderer(domain.DefaultSeller.Name)
	}
	if h.clock == nil {
		h.clock = timeutil.NewRealClock()
	}
	return h
}

// SearchQuotations handles POST /api/v1/flights/search
//
// @Summary Search fares
// @Description Search the GDS for quotations, then filter and sort them
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchQuotationsRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "GDS unavailable"
// @Failure 504 {object} response.ErrorDetail "GDS timeout"
// @Router /api/v1/flights/search [post]
func (h *Handler) SearchQuotations(c echo.Context) error {
	var req SearchQuotationsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.search.Search(c.Request().Context(), ToDomainCriteria(&req), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToSearchResponseDTO(result))
}

// CreateQuote handles POST /api/v1/quotes
//
// @Summary Build a quote
// @Description Fetch the priced detail of up to 5 quotations, sorted by price
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Quote options"
// @Success 200 {object} QuoteResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Quotation not found"
// @Failure 503 {object} response.ErrorDetail "GDS unavailable"
// @Router /api/v1/quotes [post]
func (h *Handler) CreateQuote(c echo.Context) error {
	quotations, seller, err := h.buildQuote(c)
	if err != nil {
		return err
	}
	if quotations == nil {
		return nil
	}
	return response.OK(c, ToQuoteResponseDTO(quotations, seller))
}

// CreateQuotePDF handles POST /api/v1/quotes/pdf
//
// @Summary Build a quote document
// @Description Same as /api/v1/quotes, rendered as a PDF with one page per option
// @Tags quotes
// @Accept json
// @Produce application/pdf
// @Param request body QuoteRequest true "Quote options"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Quotation not found"
// @Router /api/v1/quotes/pdf [post]
func (h *Handler) CreateQuotePDF(c echo.Context) error {
	quotations, seller, err := h.buildQuote(c)
	if err != nil {
		return err
	}
	if quotations == nil {
		return nil
	}

	body, err := h.renderer.Quote(pdf.NewQuoteDocument(quotations, seller, h.clock.Now()))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.PDF(c, "cotizacion.pdf", body)
}

// buildQuote binds, validates and runs a quote. A nil slice with a nil error
// means the error response was already written.
func (h *Handler) buildQuote(c echo.Context) ([]domain.Quotation, domain.Seller, error) {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return nil, domain.Seller{}, response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return nil, domain.Seller{}, h.handleValidationError(c, err)
	}

	quotations, err := h.quotes.BuildQuote(c.Request().Context(), ToQuoteRefs(req.Options))
	if err != nil {
		return nil, domain.Seller{}, h.handleError(c, err)
	}
	if quotations == nil {
		quotations = []domain.Quotation{}
	}
	return quotations, h.sellers.Lookup(req.Seller), nil
}

// PriceFares handles POST /api/v1/pricing
//
// @Summary Price net fares
// @Description Apply the agency fee or discount rules to net passenger-fare lines
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body PricingRequest true "Net fare lines"
// @Success 200 {object} PricingResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/pricing [post]
func (h *Handler) PriceFares(c echo.Context) error {
	var req PricingRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	priced, err := domain.PriceFareLines(currency, ToFareLines(req.Lines))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToPricingResponseDTO(currency, priced))
}

// CreateBooking handles POST /api/v1/bookings
//
// @Summary Record a booking
// @Description Store a booking for a PNR with a snapshot of the chosen quotation
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Booking"
// @Success 201 {object} BookingDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Quotation not found"
// @Failure 503 {object} response.ErrorDetail "GDS unavailable"
// @Router /api/v1/bookings [post]
func (h *Handler) CreateBooking(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	b, err := h.bookings.Create(c.Request().Context(), ToBookingInput(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, ToBookingDTO(b))
}

// GetBooking handles GET /api/v1/bookings/:id
//
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} BookingDTO
// @Failure 404 {object} response.ErrorDetail "Booking not found"
// @Router /api/v1/bookings/{id} [get]
func (h *Handler) GetBooking(c echo.Context) error {
	b, err := h.bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToBookingDTO(b))
}

// GetBookingPDF handles GET /api/v1/bookings/:id/pdf
//
// @Summary Booking confirmation document
// @Tags bookings
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} file
// @Failure 404 {object} response.ErrorDetail "Booking not found"
// @Router /api/v1/bookings/{id}/pdf [get]
func (h *Handler) GetBookingPDF(c echo.Context) error {
	b, err := h.bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	body, err := h.renderer.Booking(pdf.NewBookingDocument(b, h.sellers.Lookup(b.Seller)))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.PDF(c, "reserva-"+b.PNR+".pdf", body)
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	if len(h.checks) == 0 {
		return response.Health(c, nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	results := make(map[string]error, len(h.checks))
	for name, check := range h.checks {
		results[name] = check(ctx)
	}
	return response.Health(c, results)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *Handler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *Handler) handleError(c echo.Context, err error) error {
	switch {
	case domain.IsInvalidRequest(err):
		return response.ValidationErrorWithMessage(c, err.Error())
	case domain.IsNotFound(err):
		if errors.Is(err, domain.ErrBookingNotFound) {
			return response.NotFound(c, response.MsgBookingNotFound)
		}
		return response.NotFound(c, response.MsgQuotationNotFound)
	case domain.IsUpstreamTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrUnauthorized):
		logger.FromContext(c.Request().Context()).Warn().Err(err).Msg("upstream failure")
		return response.ServiceUnavailable(c)
	}

	logger.FromContext(c.Request().Context()).Error().Err(err).Msg("unhandled error")
	return response.InternalServerError(c)
}
