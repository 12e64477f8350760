package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/novasalud/clinic-api/internal/domain"
)

func TestMapError(t *testing.T) {
	verr := domain.NewValidationError("items[0].quantity", "debe ser mayor que 0")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", fmt.Errorf("crear: %w", verr), fiber.StatusBadRequest, "VALIDATION"},
		{"cuerpo", errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
		{"no encontrado", domain.NotFound("venta", 3), fiber.StatusNotFound, "NOT_FOUND"},
		{"stock", &domain.InsufficientStockError{ProductID: 1, ProductName: "Jarabe", Requested: 5, Available: 1}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"referencia", domain.ReferencedBy("tiene ventas"), fiber.StatusConflict, "REFERENTIAL_INTEGRITY"},
		{"conflicto", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{"credenciales", domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"fiber", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_405"},
		{"infraestructura", domain.Infrastructure("commit", errors.New("conn reset")), fiber.StatusInternalServerError, "INTERNAL"},
		{"desconocido", errors.New("x"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestMapError_ValidacionIncluyeCampos(t *testing.T) {
	_, body := mapError(domain.NewValidationError("date", "fecha inválida"))
	if assert.Len(t, body.Fields, 1) {
		assert.Equal(t, "date", body.Fields[0].Field)
	}
}

func TestMapError_InternoNoFiltraDetalle(t *testing.T) {
	_, body := mapError(domain.Infrastructure("commit", errors.New("password authentication failed")))
	assert.NotContains(t, body.Message, "password")
}
