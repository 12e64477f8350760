package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo guarda de stock sobre la tabla products. Pensado para usarse con una tx (Querier).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar la tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el producto y bloquea su fila hasta el fin de la transacción.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.Product, error) {
	query := `
		SELECT id, name, description, stock, price, category_id, created_at
		FROM products WHERE id = $1
		FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Stock, &p.Price, &p.CategoryID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get stock for update", err)
	}
	return &p, nil
}

// Decrement resta quantity solo si alcanza. La condición se evalúa en el mismo UPDATE.
func (r *StockRepo) Decrement(ctx context.Context, productID int64, quantity int) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		productID, quantity)
	if err != nil {
		return false, mapError("decrement stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Restore devuelve quantity al stock.
func (r *StockRepo) Restore(ctx context.Context, productID int64, quantity int) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE id = $1`, productID, quantity)
	if err != nil {
		return mapError("restore stock", err)
	}
	return nil
}
