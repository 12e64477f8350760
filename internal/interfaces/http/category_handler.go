package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
)

// CategoryService lo que el handler necesita de *usecase.CategoryUseCase.
type CategoryService interface {
	Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error)
	ListAll(ctx context.Context) ([]dto.CategoryResponse, error)
}

// CategoryHandler categorías de productos (protegido).
type CategoryHandler struct {
	uc CategoryService
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc CategoryService) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete DELETE /api/categories/:id (409 si tiene productos asignados)
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

// List GET /api/categories?page=1&limit=10&search=
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// All GET /api/categories/all, sin paginar (selects del frontend).
func (h *CategoryHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
