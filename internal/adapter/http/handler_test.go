package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckytour/fare-quotation-service/internal/adapter/http/response"
	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
	"github.com/luckytour/fare-quotation-service/internal/usecase"
)

type mockSearch struct {
	searchFunc func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error)
}

func (m *mockSearch) Search(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, criteria, opts)
	}
	resp := domain.NewSearchResponse(criteria, nil, domain.SearchMetadata{SearchTimeMs: 10})
	return &resp, nil
}

type mockQuotes struct {
	buildFunc func(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error)
}

func (m *mockQuotes) BuildQuote(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error) {
	return m.buildFunc(ctx, refs)
}

type mockBookings struct {
	createFunc func(ctx context.Context, in usecase.BookingInput) (*domain.Booking, error)
	getFunc    func(ctx context.Context, id string) (*domain.Booking, error)
}

func (m *mockBookings) Create(ctx context.Context, in usecase.BookingInput) (*domain.Booking, error) {
	return m.createFunc(ctx, in)
}

func (m *mockBookings) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return m.getFunc(ctx, id)
}

// setupTestHandler creates a test Echo instance with all routes registered.
func setupTestHandler(t *testing.T, deps Deps) *echo.Echo {
	t.Helper()
	if deps.Search == nil {
		deps.Search = &mockSearch{}
	}
	if deps.Clock == nil {
		deps.Clock = timeutil.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	}
	if deps.Sellers == nil {
		deps.Sellers = domain.NewSellerDirectory([]domain.Seller{
			{Key: "ventas", Name: "Lucky Tour Ventas", Email: "ventas@luckytourviajes.com"},
			{Key: "mara", Name: "Mara Gomez", Email: "mara@luckytourviajes.com", Phone: "+54 11 5555 0000"},
		}, "ventas")
	}

	e := echo.New()
	RegisterRoutes(e, NewHandler(deps))
	return e
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func handlerQuotation(id string, price float64) domain.Quotation {
	dep := time.Date(2026, 3, 28, 22, 40, 0, 0, time.UTC)
	return domain.Quotation{
		ID:                 id,
		SearchID:           "S-1",
		ValidatingCarrier:  "CM",
		CarrierDescription: "Copa Airlines",
		SellPriceAmount:    price,
		Currency:           "USD",
		StopCount:          1,
		Legs: []domain.ItineraryLeg{
			{
				Origin:           "EZE",
				OriginCity:       "Buenos Aires",
				Destination:      "MIA",
				DestinationCity:  "Miami",
				Departure:        dep,
				Arrival:          dep.Add(13 * time.Hour),
				DurationMinutes:  780,
				StopCount:        1,
				ConnectingCities: []string{"PTY"},
			},
		},
		Baggage: domain.BaggageAllowance{
			CabinBag:   domain.BaggageItem{Included: true, Label: "1 pieza"},
			CarryOn:    domain.BaggageItem{Label: domain.BaggageLabelNotInformed},
			CheckedBag: domain.BaggageItem{Label: domain.BaggageLabelNotIncluded},
		},
		Source: "glas",
	}
}

func validSearchBody() map[string]interface{} {
	return map[string]interface{}{
		"origin":        "eze",
		"destination":   "mia",
		"departureDate": "2026-03-28",
		"adults":        1,
	}
}

func TestSearchQuotations_Success(t *testing.T) {
	var gotCriteria domain.SearchCriteria
	var gotOpts usecase.SearchOptions

	search := &mockSearch{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			gotCriteria = criteria
			gotOpts = opts
			resp := domain.NewSearchResponse(criteria, []domain.Quotation{handlerQuotation("Q-1", 1035)}, domain.SearchMetadata{
				SearchID:        "S-1",
				UpstreamResults: 3,
				SearchTimeMs:    120,
			})
			return &resp, nil
		},
	}
	e := setupTestHandler(t, Deps{Search: search})

	body := validSearchBody()
	body["sortBy"] = "duration"
	body["filters"] = map[string]interface{}{"maxStops": 1, "carriers": []string{"cm"}}

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "EZE", gotCriteria.Origin)
	assert.Equal(t, "MIA", gotCriteria.Destination)
	assert.Equal(t, 1, gotCriteria.Adults)
	assert.Equal(t, domain.SortByDuration, gotOpts.SortBy)
	require.NotNil(t, gotOpts.Filters)
	assert.Equal(t, []string{"CM"}, gotOpts.Filters.Carriers)

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.TripOneWay), resp.SearchCriteria.TripType)
	assert.Equal(t, 1, resp.Metadata.TotalResults)
	assert.Equal(t, 3, resp.Metadata.UpstreamResults)
	require.Len(t, resp.Quotations, 1)
	assert.Equal(t, "USD 1,035", resp.Quotations[0].Price.Display)
	assert.Equal(t, "13h 0m", resp.Quotations[0].Duration.Formatted)
}

func TestSearchQuotations_InvalidBody(t *testing.T) {
	e := setupTestHandler(t, Deps{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/search", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeError(t, rec).Code)
}

func TestSearchQuotations_ValidationError(t *testing.T) {
	called := false
	search := &mockSearch{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			called = true
			return nil, nil
		},
	}
	e := setupTestHandler(t, Deps{Search: search})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", map[string]interface{}{
		"origin":      "EZE",
		"destination": "EZE",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	detail := decodeError(t, rec)
	assert.Equal(t, response.CodeValidationError, detail.Code)
	assert.Contains(t, detail.Details, "destination")
	assert.Contains(t, detail.Details, "departureDate")
}

func TestSearchQuotations_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid request from usecase",
			err:        domain.NewValidationError("departureDate", "must be a valid date"),
			wantStatus: http.StatusBadRequest,
			wantCode:   response.CodeValidationError,
		},
		{
			name:       "upstream timeout",
			err:        domain.NewProviderTimeoutError("glas"),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   response.CodeTimeout,
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   response.CodeTimeout,
		},
		{
			name:       "upstream unavailable",
			err:        domain.NewProviderUnavailableError("glas"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   response.CodeServiceUnavailable,
		},
		{
			name:       "unauthorized upstream",
			err:        domain.ErrUnauthorized,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   response.CodeServiceUnavailable,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   response.CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &mockSearch{
				searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
					return nil, tt.err
				},
			}
			e := setupTestHandler(t, Deps{Search: search})

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestCreateQuote_Success(t *testing.T) {
	var gotRefs []domain.QuoteRef
	quotes := &mockQuotes{
		buildFunc: func(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error) {
			gotRefs = refs
			return []domain.Quotation{handlerQuotation("Q-2", 900), handlerQuotation("Q-1", 1035)}, nil
		},
	}
	e := setupTestHandler(t, Deps{Quotes: quotes})

	rec := makeRequest(e, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
		"options": []map[string]string{
			{"searchId": "S-1", "quotationId": " Q-1 "},
			{"searchId": "S-1", "quotationId": "Q-2"},
		},
		"seller": "MARA",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []domain.QuoteRef{
		{SearchID: "S-1", QuotationID: "Q-1"},
		{SearchID: "S-1", QuotationID: "Q-2"},
	}, gotRefs)

	var resp QuoteResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Options, 2)
	assert.Equal(t, "Q-2", resp.Options[0].ID)
	assert.Equal(t, "Mara Gomez", resp.Seller.Name)
}

func TestCreateQuote_TooManyOptions(t *testing.T) {
	e := setupTestHandler(t, Deps{Quotes: &mockQuotes{}})

	options := make([]map[string]string, usecase.MaxQuoteOptions+1)
	for i := range options {
		options[i] = map[string]string{"searchId": "S-1", "quotationId": "Q"}
	}

	rec := makeRequest(e, http.MethodPost, "/api/v1/quotes", map[string]interface{}{"options": options})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "options")
}

func TestCreateQuote_NotFound(t *testing.T) {
	quotes := &mockQuotes{
		buildFunc: func(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error) {
			return nil, domain.ErrQuotationNotFound
		},
	}
	e := setupTestHandler(t, Deps{Quotes: quotes})

	rec := makeRequest(e, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
		"options": []map[string]string{{"searchId": "S-1", "quotationId": "Q-9"}},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, response.CodeNotFound, detail.Code)
	assert.Equal(t, response.MsgQuotationNotFound, detail.Message)
}

func TestCreateQuotePDF(t *testing.T) {
	quotes := &mockQuotes{
		buildFunc: func(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error) {
			return []domain.Quotation{handlerQuotation("Q-1", 1035)}, nil
		},
	}
	e := setupTestHandler(t, Deps{Quotes: quotes})

	rec := makeRequest(e, http.MethodPost, "/api/v1/quotes/pdf", map[string]interface{}{
		"options": []map[string]string{{"searchId": "S-1", "quotationId": "Q-1"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "cotizacion.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestPriceFares(t *testing.T) {
	e := setupTestHandler(t, Deps{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/pricing", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"passengerType": "ADT", "quantity": 2, "netAmount": 500, "fareType": "PUB"},
			{"passengerType": "CHD", "quantity": 1, "netAmount": 300, "fareType": "PUB"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PricingResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.Currency)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 525.0, resp.Lines[0].SellPrice)
	assert.Equal(t, "USD 525 cada adulto", resp.Lines[0].Label)
	assert.Equal(t, 325.0, resp.Lines[1].SellPrice)
	assert.Equal(t, "USD 325 menor", resp.Lines[1].Label)
}

func TestPriceFares_ValidationError(t *testing.T) {
	e := setupTestHandler(t, Deps{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/pricing", map[string]interface{}{
		"lines": []map[string]interface{}{{"passengerType": "XXX", "netAmount": -1}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Contains(t, details, "lines[0].netAmount")
	assert.Contains(t, details, "lines[0].passengerType")
}

func testBooking() *domain.Booking {
	q := handlerQuotation("Q-1", 1035)
	return &domain.Booking{
		ID:              "b-1",
		PNR:             "ABC123",
		SearchID:        "S-1",
		QuotationID:     "Q-1",
		Origin:          "EZE",
		Destination:     "MIA",
		DepartureDate:   "2026-03-28",
		Carrier:         "CM",
		SellPriceAmount: 1035,
		Currency:        "USD",
		Adults:          1,
		Status:          domain.BookingStatusCreated,
		Passengers: []domain.BookingPassenger{
			{FirstName: "Ana", LastName: "Perez", Type: domain.PassengerAdult},
		},
		Contact:   domain.BookingContact{Name: "Ana Perez", Email: "ana@example.com"},
		Seller:    "mara",
		Quotation: q,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateBooking_Success(t *testing.T) {
	var gotInput usecase.BookingInput
	bookings := &mockBookings{
		createFunc: func(ctx context.Context, in usecase.BookingInput) (*domain.Booking, error) {
			gotInput = in
			return testBooking(), nil
		},
	}
	e := setupTestHandler(t, Deps{Bookings: bookings})

	rec := makeRequest(e, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"pnr":         "abc123",
		"searchId":    "S-1",
		"quotationId": "Q-1",
		"passengers":  []map[string]string{{"firstName": "Ana", "lastName": "Perez"}},
		"contact":     map[string]string{"name": "Ana Perez", "email": "ana@example.com"},
		"seller":      "mara",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "ABC123", gotInput.PNR)
	assert.Equal(t, domain.QuoteRef{SearchID: "S-1", QuotationID: "Q-1"}, gotInput.Ref)
	require.Len(t, gotInput.Passengers, 1)
	assert.Equal(t, domain.PassengerAdult, gotInput.Passengers[0].Type)

	var resp BookingDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "ABC123", resp.PNR)
	assert.Equal(t, "Q-1", resp.Quotation.ID)
}

func TestCreateBooking_ValidationError(t *testing.T) {
	e := setupTestHandler(t, Deps{Bookings: &mockBookings{}})

	rec := makeRequest(e, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"pnr":     "a!",
		"contact": map[string]string{"email": "nope"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Contains(t, details, "pnr")
	assert.Contains(t, details, "quotationId")
	assert.Contains(t, details, "passengers")
	assert.Contains(t, details, "contact.email")
}

func TestGetBooking(t *testing.T) {
	bookings := &mockBookings{
		getFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
			if id == "b-1" {
				return testBooking(), nil
			}
			return nil, domain.ErrBookingNotFound
		},
	}
	e := setupTestHandler(t, Deps{Bookings: bookings})

	t.Run("found", func(t *testing.T) {
		rec := makeRequest(e, http.MethodGet, "/api/v1/bookings/b-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp BookingDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ABC123", resp.PNR)
	})

	t.Run("not found", func(t *testing.T) {
		rec := makeRequest(e, http.MethodGet, "/api/v1/bookings/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, response.MsgBookingNotFound, decodeError(t, rec).Message)
	})

	t.Run("pdf", func(t *testing.T) {
		rec := makeRequest(e, http.MethodGet, "/api/v1/bookings/b-1/pdf", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "reserva-ABC123.pdf")
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})
}

func TestHealth(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		e := setupTestHandler(t, Deps{})
		rec := makeRequest(e, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failing dependency", func(t *testing.T) {
		e := setupTestHandler(t, Deps{HealthChecks: map[string]HealthCheck{
			"postgres": func(ctx context.Context) error { return nil },
			"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
		}})
		rec := makeRequest(e, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp response.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusDegraded, resp.Status)
		assert.Equal(t, "ok", resp.Checks["postgres"])
		assert.Equal(t, "connection refused", resp.Checks["redis"])
	})
}
