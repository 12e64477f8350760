package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de farmacia con su stock disponible.
// Stock nunca es negativo; solo lo modifican las ventas (decremento con guarda) y la edición directa.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Stock        int
	Price        decimal.Decimal // precio de venta vigente
	CategoryID   *int64          // nil si no tiene categoría
	CategoryName string          // solo lectura (JOIN)
	CreatedAt    time.Time
}

// HasStockFor indica si el stock alcanza para la cantidad pedida.
func (p *Product) HasStockFor(quantity int) bool {
	return p.Stock >= quantity
}
