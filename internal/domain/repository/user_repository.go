package repository

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update actualiza usuario y rol; la contraseña solo si PasswordHash no está vacío.
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.User, int, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
}
