package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
)

// AuthService lo que el handler necesita de *auth.AuthUseCase.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Verify(token string) (*dto.VerifyResponse, error)
}

// AuthHandler maneja login y verificación de token.
type AuthHandler struct {
	uc AuthService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc AuthService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar token
// @Tags         auth
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <token>"
// @Success      200  {object}  dto.VerifyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return domain.ErrUnauthorized
	}
	out, err := h.uc.Verify(token)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
