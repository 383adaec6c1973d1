package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"usersvc/config"
	deliverycontext "usersvc/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(buf *bytes.Buffer, debug bool, h echo.HandlerFunc) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)
	e.GET("/", h)

	return e
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())

	return line
}

func TestRequestIDMiddleware_ContextCarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	e := newTestServer(&buf, false, func(c echo.Context) error {
		ctx := c.Request().Context()
		assert.Equal(t, deliverycontext.GetRequestID(c), deliverycontext.RequestIDFromContext(ctx))
		deliverycontext.GetLoggerOrDefault(ctx, nil).Info("inside handler")

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get(deliverycontext.HeaderXRequestID))
	line := decodeLogLine(t, &buf)
	assert.Equal(t, "inside handler", line["msg"])
	assert.Equal(t, "abc", line["request_id"])
}

func TestLoggerMiddleware_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		status    int
		wantLevel string
	}{
		{name: "success quiet", debug: false, status: http.StatusOK},
		{name: "success debug", debug: true, status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", debug: false, status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", debug: false, status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := newTestServer(&buf, tt.debug, func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?q=x", nil))

			if tt.wantLevel == "" {
				assert.Zero(t, buf.Len())

				return
			}
			line := decodeLogLine(t, &buf)
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "HTTP Request", line["msg"])
			assert.EqualValues(t, tt.status, line["status"])
			assert.Equal(t, "q=x", line["query"])
			assert.NotEmpty(t, line["request_id"])
		})
	}
}

func TestLoggerMiddleware_ResolvesErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	e := newTestServer(&buf, false, func(echo.Context) error {
		return echo.ErrForbidden
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	line := decodeLogLine(t, &buf)
	assert.EqualValues(t, http.StatusForbidden, line["status"])
	assert.NotEmpty(t, line["error"])
}
