package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto.
type ProductRequest struct {
	Name        string          `json:"name" validate:"notblank,max=150"`
	Description string          `json:"description" validate:"max=500"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	CategoryID  *int64          `json:"category_id" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryRequest entrada para crear una categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
