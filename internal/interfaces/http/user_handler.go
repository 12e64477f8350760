package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
)

// UserService lo que el handler necesita de *usecase.UserUseCase.
type UserService interface {
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error)
}

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc UserService
}

// NewUserHandler construye el handler.
func NewUserHandler(uc UserService) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
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

// Update PUT /api/users/:id (password vacío conserva la actual)
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if id == GetUserID(c) {
		return domain.NewValidationError("id", "no puede eliminar su propio usuario")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// List GET /api/users?page=1&limit=10&search=
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
