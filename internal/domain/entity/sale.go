package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una venta. Total siempre es la suma de los subtotales de sus detalles.
type Sale struct {
	ID         int64
	ClientID   int64
	SellerID   int64
	Date       time.Time
	Total      decimal.Decimal
	ClientName string // solo lectura (JOIN)
	SellerName string // solo lectura (JOIN)
}

// SaleDetail es una línea de venta. UnitPrice es una foto del precio al momento de vender.
type SaleDetail struct {
	ID          int64
	SaleID      int64
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	ProductName string // solo lectura (JOIN)
}

// NewSaleDetail calcula el subtotal a partir de cantidad y precio unitario.
func NewSaleDetail(saleID, productID int64, quantity int, unitPrice decimal.Decimal) *SaleDetail {
	return &SaleDetail{
		SaleID:    saleID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
