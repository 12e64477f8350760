package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta enviada por el cliente. Subtotal es informativo y se recalcula.
type SaleItemRequest struct {
	ProductID int64            `json:"product_id" validate:"gt=0"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal  `json:"unit_price" validate:"gte=0"`
	Subtotal  *decimal.Decimal `json:"subtotal,omitempty"`
}

// SaleRequest entrada para crear o reemplazar una venta. Total es informativo y se recalcula.
// SellerID vacío toma el usuario autenticado.
type SaleRequest struct {
	ClientID int64             `json:"client_id" validate:"gt=0"`
	SellerID int64             `json:"seller_id" validate:"gte=0"`
	Date     string            `json:"date" validate:"required"`
	Items    []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Total    *decimal.Decimal  `json:"total,omitempty"`
}

// SaleResultResponse resultado de crear o actualizar una venta.
type SaleResultResponse struct {
	SaleID int64           `json:"sale_id"`
	Total  decimal.Decimal `json:"total"`
}

// SaleResponse cabecera de una venta.
type SaleResponse struct {
	ID         int64           `json:"id"`
	ClientID   int64           `json:"client_id"`
	ClientName string          `json:"client_name"`
	SellerID   int64           `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
}

// SaleDetailResponse línea de una venta.
type SaleDetailResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SaleFormDataResponse datos para poblar el formulario de venta.
type SaleFormDataResponse struct {
	Clients  []ClientOption  `json:"clients"`
	Sellers  []SellerOption  `json:"sellers"`
	Products []ProductOption `json:"products"`
}

// ClientOption cliente seleccionable.
type ClientOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	DNI  string `json:"dni"`
}

// SellerOption vendedor seleccionable.
type SellerOption struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ProductOption producto con stock disponible.
type ProductOption struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}
