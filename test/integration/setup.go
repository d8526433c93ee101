// Package integration provides helpers and integration tests for the fare
// quotation service. Integration tests drive the HTTP API through the full
// middleware chain, the use cases, the storage and cache adapters, and either
// a mock provider or the GDS client talking to a fake GDS.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luckytour/fare-quotation-service/internal/adapter/cache/redis"
	httpAdapter "github.com/luckytour/fare-quotation-service/internal/adapter/http"
	"github.com/luckytour/fare-quotation-service/internal/adapter/http/middleware"
	"github.com/luckytour/fare-quotation-service/internal/adapter/provider/glas"
	"github.com/luckytour/fare-quotation-service/internal/adapter/storage/memory"
	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/retry"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
	"github.com/luckytour/fare-quotation-service/internal/usecase"
	"github.com/luckytour/fare-quotation-service/test/mock"
	"github.com/luckytour/fare-quotation-service/test/testutil"
)

// TestNow is the wall clock seen by bookings and documents.
var TestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// TestSellers is the seller directory of every test server.
var TestSellers = []domain.Seller{
	domain.DefaultSeller,
	{Key: "mara", Name: "Mara Gomez", Email: "mara@luckytourviajes.com", Phone: "+54 11 5555 0101"},
}

// Options tunes NewTestServer. The zero value uses no cache and default timeouts.
type Options struct {
	Cache        domain.SearchCache
	Config       *usecase.Config
	HealthChecks map[string]httpAdapter.HealthCheck
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo     *echo.Echo
	Handler  *httpAdapter.Handler
	Bookings *memory.BookingStore
}

// NewTestServer wires provider into the use cases and the HTTP layer.
func NewTestServer(provider domain.QuotationProvider, opts Options) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	bookings := memory.NewBookingStore()
	clock := timeutil.NewMockClock(TestNow)

	handler := httpAdapter.NewHandler(httpAdapter.Deps{
		Search:       usecase.NewQuotationSearchUseCase(provider, opts.Cache, opts.Config),
		Quotes:       usecase.NewQuoteUseCase(provider, opts.Config),
		Bookings:     usecase.NewBookingUseCase(provider, bookings, clock, opts.Config),
		Sellers:      domain.NewSellerDirectory(TestSellers, domain.DefaultSeller.Key),
		Clock:        clock,
		HealthChecks: opts.HealthChecks,
	})

	middleware.Setup(e, logger.Nop())
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:     e,
		Handler:  handler,
		Bookings: bookings,
	}
}

// NewCache returns a search cache backed by an in-memory Redis stand-in.
func NewCache() (*redis.SearchCache, *mock.Redis) {
	client := mock.NewRedis()
	return redis.NewSearchCache(client, ""), client
}

// NewFakeGDS starts a fake GDS serving the testdata fixtures and closes it
// when the test ends.
func NewFakeGDS(t *testing.T) *mock.GDS {
	t.Helper()

	gds := mock.NewGDS(testutil.LoadTestJSON(t, "glas_search.json"), map[string][]byte{
		"Q-CM": testutil.LoadTestJSON(t, "glas_detail_cm.json"),
		"Q-AA": testutil.LoadTestJSON(t, "glas_detail_aa.json"),
	})
	t.Cleanup(gds.Close)
	return gds
}

// NewGDSClient returns a GDS client pointed at gds with fast retries.
func NewGDSClient(gds *mock.GDS) *glas.Client {
	httpClient := gds.Server.Client()
	tokens := glas.NewCachedTokenProvider(gds.URL(), glas.Credentials{
		Username:     "agent",
		Password:     "secret",
		WholesalerID: "538",
	}, time.Hour, timeutil.NewRealClock(), httpClient)

	return glas.NewClient(glas.Config{
		BaseURL:              gds.URL(),
		CompanyAssociationID: "3036",
		Origin:               "https://agency.example.com",
		Timeout:              5 * time.Second,
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Multiplier:   2,
		},
	}, tokens, httpClient)
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a fare search.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/flights/search", Body: body})
}

// QuoteRequest posts a quote.
func (ts *TestServer) QuoteRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/quotes", Body: body})
}

// QuotePDFRequest posts a quote for its PDF rendition.
func (ts *TestServer) QuotePDFRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/quotes/pdf", Body: body})
}

// PricingRequest posts net fare lines to price.
func (ts *TestServer) PricingRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/pricing", Body: body})
}

// BookingRequest posts a booking.
func (ts *TestServer) BookingRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/bookings", Body: body})
}

// GetBooking fetches a booking, or its PDF when pdf is set.
func (ts *TestServer) GetBooking(id string, pdf bool) Response {
	path := "/api/v1/bookings/" + id
	if pdf {
		path += "/pdf"
	}
	return ts.Do(Request{Method: http.MethodGet, Path: path})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// Decode unmarshals the response body into T, failing the test on error.
func Decode[T any](t *testing.T, r Response) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(r.Body, &v); err != nil {
		t.Fatalf("decode response (status %d): %v: %s", r.Code, err, string(r.Body))
	}
	return v
}

// ErrorBody is the error envelope returned by the API.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin        string                 `json:"origin"`
	Destination   string                 `json:"destination"`
	DepartureDate string                 `json:"departureDate"`
	ReturnDate    string                 `json:"returnDate,omitempty"`
	Adults        int                    `json:"adults"`
	Children      int                    `json:"children,omitempty"`
	Infants       int                    `json:"infants,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
	SortBy        string                 `json:"sortBy,omitempty"`
}

// DefaultSearchRequest returns a valid round-trip search request body.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:        "EZE",
		Destination:   "MIA",
		DepartureDate: "2026-03-28",
		ReturnDate:    "2026-04-04",
		Adults:        1,
	}
}

// DefaultSearchCriteria returns the criteria of DefaultSearchRequest for
// driving use cases directly.
func DefaultSearchCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        "EZE",
		Destination:   "MIA",
		DepartureDate: "2026-03-28",
		ReturnDate:    "2026-04-04",
		Adults:        1,
	}
}

// QuoteBody builds a quote request for the given quotation ids of searchID.
func QuoteBody(searchID, seller string, quotationIDs ...string) map[string]interface{} {
	options := make([]map[string]string, len(quotationIDs))
	for i, id := range quotationIDs {
		options[i] = map[string]string{"searchId": searchID, "quotationId": id}
	}
	return map[string]interface{}{"options": options, "seller": seller}
}

// BookingBody builds a booking request for two adults and one child.
func BookingBody(pnr, searchID, quotationID string) map[string]interface{} {
	return map[string]interface{}{
		"pnr":         pnr,
		"orderId":     "ORD-" + pnr,
		"searchId":    searchID,
		"quotationId": quotationID,
		"seller":      "mara",
		"passengers": []map[string]string{
			{"firstName": "Ana", "lastName": "Perez", "type": "ADT", "documentNumber": "30111222"},
			{"firstName": "Luis", "lastName": "Perez", "type": "ADT"},
			{"firstName": "Sofia", "lastName": "Perez", "type": "CHD", "birthDate": "2018-05-02"},
		},
		"contact": map[string]string{"name": "Ana Perez", "email": "ana@example.com", "phone": "+54 11 4444 0000"},
	}
}
