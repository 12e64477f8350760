package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// RequestLogger asigna un X-Request-ID a cada petición y registra método, ruta, status y latencia.
// Un logger con el request_id queda en el UserContext (zerolog.Ctx).
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalRequestID, rid)
		c.Set(HeaderRequestID, rid)

		reqLog := log.With().Str("request_id", rid).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		if chainErr := c.Next(); chainErr != nil {
			// El status final lo decide el ErrorHandler.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = reqLog.Error()
		case status >= fiber.StatusBadRequest:
			ev = reqLog.Warn()
		default:
			ev = reqLog.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

// GetRequestID devuelve el id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
