package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse resumen del día para la pantalla principal.
type DashboardResponse struct {
	TodaySales     decimal.Decimal     `json:"today_sales"`
	UnitsSoldToday int                 `json:"units_sold_today"`
	ClientsToday   int                 `json:"clients_today"`
	LowStockCount  int                 `json:"low_stock_count"`
	LowStock       []LowStockDTO       `json:"low_stock"`
	Recent         []RecentActivityDTO `json:"recent_activity"`
}

// LowStockDTO producto con stock bajo.
type LowStockDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// RecentActivityDTO evento reciente (venta o cliente nuevo).
type RecentActivityDTO struct {
	Kind        string           `json:"kind"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
