package sales

import (
	"context"
	"fmt"

	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// applyItems descuenta el stock de cada línea en el orden recibido e inserta su detalle.
// Todo ocurre sobre los repos de la transacción del llamador.
func applyItems(ctx context.Context, saleID int64, items []Item, saleRepo repository.SaleRepository, stockRepo repository.StockRepository) error {
	for _, it := range items {
		product, err := stockRepo.GetForUpdate(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", it.ProductID)
		}
		if !product.HasStockFor(it.Quantity) {
			return insufficient(product, it.Quantity)
		}
		ok, err := stockRepo.Decrement(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return insufficient(product, it.Quantity)
		}
		if err := saleRepo.AddDetail(ctx, entity.NewSaleDetail(saleID, it.ProductID, it.Quantity, it.UnitPrice)); err != nil {
			return fmt.Errorf("insertar detalle: %w", err)
		}
	}
	return nil
}

// restoreDetails devuelve al inventario lo que consumieron los detalles actuales de la venta.
func restoreDetails(ctx context.Context, saleID int64, saleRepo repository.SaleRepository, stockRepo repository.StockRepository) error {
	details, err := saleRepo.ListDetails(ctx, saleID)
	if err != nil {
		return err
	}
	for _, d := range details {
		if err := stockRepo.Restore(ctx, d.ProductID, d.Quantity); err != nil {
			return fmt.Errorf("restaurar stock del producto %d: %w", d.ProductID, err)
		}
	}
	return nil
}

func insufficient(p *entity.Product, requested int) error {
	return &domain.InsufficientStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Requested:   requested,
		Available:   p.Stock,
	}
}
