package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
)

// ProductService lo que el handler necesita de *usecase.ProductUseCase.
type ProductService interface {
	Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error)
}

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc ProductService
}

// NewProductHandler construye el handler.
func NewProductHandler(uc ProductService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre o categoría"
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}
