package repository

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus SaleDetail.
type SaleRepository interface {
	// Create inserta la cabecera y asigna sale.ID.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera dentro de la transacción. (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	// Delete borra la cabecera; false si no había fila.
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Sale, int, error)

	AddDetail(ctx context.Context, detail *entity.SaleDetail) error
	ListDetails(ctx context.Context, saleID int64) ([]*entity.SaleDetail, error)
	DeleteDetails(ctx context.Context, saleID int64) error
}
