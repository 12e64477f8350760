package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
)

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "debe ser un identificador positivo")
	}
	return id, nil
}

// pageQuery lee ?page=&limit=&search=. Valores no numéricos se ignoran.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}
}

// parseBody decodifica el JSON del cuerpo en out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}
