package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
)

// ClientService lo que el handler necesita de *usecase.ClientUseCase.
type ClientService interface {
	Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error)
	Update(ctx context.Context, id int64, in dto.ClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error)
}

// ClientHandler maneja las peticiones HTTP de clientes (protegido).
type ClientHandler struct {
	uc ClientService
}

// NewClientHandler construye el handler.
func NewClientHandler(uc ClientService) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
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
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del cliente"
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.ClientRequest
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
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "cliente eliminado"})
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre o DNI"
// @Success      200     {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
