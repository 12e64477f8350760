package repository

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.Product, int, error)
	ListInStock(ctx context.Context) ([]*entity.Product, error)
}
