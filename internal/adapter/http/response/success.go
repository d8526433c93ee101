package response

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`

	// Checks maps each dependency to "ok" or its error
	Checks map[string]string `json:"checks,omitempty"`
}

// Health writes a health check response. Any failing check degrades the
// status and answers 503.
func Health(c echo.Context, checks map[string]error) error {
	resp := &HealthResponse{Status: StatusOK}
	status := http.StatusOK

	if len(checks) > 0 {
		resp.Checks = make(map[string]string, len(checks))
		for name, err := range checks {
			if err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = StatusDegraded
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = StatusOK
		}
	}

	return c.JSON(status, resp)
}

// PDF writes a PDF document as an inline attachment named filename.
func PDF(c echo.Context, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", body)
}
