package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Item línea de venta pedida.
type Item struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	// ClaimedSubtotal es el subtotal que envió el cliente, si lo envió. Nunca se persiste.
	ClaimedSubtotal *decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Header datos escalares de una venta más su conjunto completo de líneas.
type Header struct {
	ClientID int64
	SellerID int64
	Date     time.Time
	Items    []Item
	// ClaimedTotal es el total que envió el cliente, si lo envió. Nunca se persiste.
	ClaimedTotal *decimal.Decimal
}

// Total recalcula el total como suma de subtotales.
func (h Header) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range h.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Result es lo que devuelve un comando de escritura.
type Result struct {
	SaleID int64
	Total  decimal.Decimal
}

// Command es una operación de escritura sobre ventas. Solo este paquete puede implementarla.
type Command interface {
	execute(ctx context.Context, s *Service) (Result, error)
}

// CreateSale registra una venta nueva y descuenta el stock de cada línea.
type CreateSale struct {
	Header
}

// UpdateSale reemplaza por completo la cabecera y las líneas de una venta existente.
type UpdateSale struct {
	SaleID int64
	Header
}

// DeleteSale elimina una venta y devuelve su stock.
type DeleteSale struct {
	SaleID int64
}

func (c CreateSale) execute(ctx context.Context, s *Service) (Result, error) {
	return s.create(ctx, c)
}

func (c UpdateSale) execute(ctx context.Context, s *Service) (Result, error) {
	return s.update(ctx, c)
}

func (c DeleteSale) execute(ctx context.Context, s *Service) (Result, error) {
	return s.delete(ctx, c)
}
