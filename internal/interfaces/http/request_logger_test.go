package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novasalud/clinic-api/internal/domain"
)

func TestRequestLogger_AsignaRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Use(RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRequestLogger_RespetaRequestIDEntranteYRegistraStatusDeError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Use(RequestLogger(log))
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.NotFound("venta", 1) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	assert.Contains(t, buf.String(), `"status":404`)
}
