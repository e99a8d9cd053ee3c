package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithMiddleware(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(Middleware())
	e.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_ValidationErrorBecomes400(t *testing.T) {
	rec := runWithMiddleware(t, func(c echo.Context) error {
		return ValidationError("texts must not be empty").WithContext("field", "texts")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "texts must not be empty", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "texts", resp.Context["field"])
}

func TestMiddleware_PlainErrorBecomes500(t *testing.T) {
	rec := runWithMiddleware(t, func(c echo.Context) error {
		return assert.AnError
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeInternal, resp.Type)
	// The cause is logged, not leaked to the client.
	assert.Equal(t, "internal server error", resp.Error)
}

func TestMiddleware_SuccessPassesThrough(t *testing.T) {
	rec := runWithMiddleware(t, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_EchoHTTPErrorKeepsStatus(t *testing.T) {
	rec := runWithMiddleware(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "teapot")
	})
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
