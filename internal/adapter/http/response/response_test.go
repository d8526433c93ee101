package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var result ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestHealth(t *testing.T) {
	c, rec := setupEcho()

	require.NoError(t, Health(c, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, StatusOK, result.Status)
	assert.Empty(t, result.Checks)
}

func TestHealth_DegradedWhenACheckFails(t *testing.T) {
	c, rec := setupEcho()

	err := Health(c, map[string]error{
		"postgres": nil,
		"redis":    errors.New("dial tcp: connection refused"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, StatusDegraded, result.Status)
	assert.Equal(t, StatusOK, result.Checks["postgres"])
	assert.Equal(t, "dial tcp: connection refused", result.Checks["redis"])
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name        string
		write       func(echo.Context) error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"invalid body", InvalidRequestBody, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody},
		{"validation message", func(c echo.Context) error { return ValidationErrorWithMessage(c, "bad pnr") }, http.StatusBadRequest, CodeValidationError, "bad pnr"},
		{"not found", func(c echo.Context) error { return NotFound(c, MsgBookingNotFound) }, http.StatusNotFound, CodeNotFound, MsgBookingNotFound},
		{"unavailable", ServiceUnavailable, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable},
		{"timeout", GatewayTimeout, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout},
		{"cancelled", RequestCancelled, http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled},
		{"internal", InternalServerError, http.StatusInternalServerError, CodeInternalError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := setupEcho()
			require.NoError(t, tt.write(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			result := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	c, rec := setupEcho()

	details := map[string]string{
		"origin":        "origin is required",
		"departureDate": "departureDate is required",
	}
	require.NoError(t, ValidationError(c, details))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeError(t, rec)
	assert.Equal(t, CodeValidationError, result.Code)
	assert.Equal(t, MsgValidationFailed, result.Message)
	assert.Equal(t, details, result.Details)
}

func TestSuccessWriters(t *testing.T) {
	c, rec := setupEcho()
	require.NoError(t, OK(c, map[string]string{"id": "b-1"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"b-1"}`, rec.Body.String())

	c, rec = setupEcho()
	require.NoError(t, Created(c, map[string]string{"id": "b-2"}))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPDF(t *testing.T) {
	c, rec := setupEcho()

	require.NoError(t, PDF(c, "cotizacion.pdf", []byte("%PDF-1.3")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `inline; filename="cotizacion.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
