package usecase

import (
	"context"

	"github.com/novasalud/clinic-api/internal/application/auth"
	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create registra un usuario con la contraseña hasheada. Usuario repetido → ErrConflict.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Infrastructure("hash password", err)
	}
	u := &entity.User{Username: normalizeName(in.Username), PasswordHash: hash, Role: in.Role}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := auth.ToUserResponse(u)
	return &out, nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario", id)
	}
	out := auth.ToUserResponse(u)
	return &out, nil
}

// Update cambia usuario y rol; la contraseña solo si viene informada.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario", id)
	}
	u.Username = normalizeName(in.Username)
	u.Role = in.Role
	u.PasswordHash = ""
	if in.Password != "" {
		if u.PasswordHash, err = auth.HashPassword(in.Password); err != nil {
			return nil, domain.Infrastructure("hash password", err)
		}
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := auth.ToUserResponse(u)
	return &out, nil
}

// Delete elimina un usuario sin ventas registradas.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if isReferential(err) {
		return domain.ReferencedBy("el usuario tiene ventas registradas")
	}
	return err
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, filterOf(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// ResetPassword fija una nueva contraseña (herramienta de administración).
func (uc *UserUseCase) ResetPassword(ctx context.Context, username, password string) error {
	if len(password) < 6 {
		return domain.NewValidationError("password", "debe ser al menos 6")
	}
	u, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.Infrastructure("hash password", err)
	}
	return uc.repo.UpdatePassword(ctx, u.ID, hash)
}
