package repository

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.Category, int, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
	CountProducts(ctx context.Context, id int64) (int, error)
}
