package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
)

// errInvalidBody cuerpo que no se pudo decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

// ErrorHandler traduce los errores devueltos por los handlers a respuestas JSON.
// Los errores internos se registran completos y al cliente solo llega un mensaje genérico.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", GetRequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

// mapError: tabla error de dominio → status HTTP + código.
func mapError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]dto.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.FieldError{Field: f.Field, Message: f.Message})
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: domain.ErrValidation.Error(), Fields: fields}
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: fmt.Sprintf("HTTP_%d", fe.Code), Message: fe.Message}
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()}
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrReferentialIntegrity):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "REFERENTIAL_INTEGRITY", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
}
