package repository

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// StockRepository es la guarda de stock. Solo tiene sentido atado a una transacción.
type StockRepository interface {
	// GetForUpdate relee el producto y bloquea su fila (SELECT ... FOR UPDATE). (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, productID int64) (*entity.Product, error)
	// Decrement resta quantity solo si stock >= quantity. false si la guarda no se cumplió.
	Decrement(ctx context.Context, productID int64, quantity int) (bool, error)
	// Restore suma quantity sin condición.
	Restore(ctx context.Context, productID int64, quantity int) error
}
