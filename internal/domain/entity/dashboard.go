package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary métricas del día en curso.
type DailySummary struct {
	SalesTotal    decimal.Decimal
	UnitsSold     int
	ClientsServed int
	LowStockCount int
}

// Activity es un evento reciente (venta registrada o cliente nuevo).
type Activity struct {
	Kind        string // "sale" | "client"
	Description string
	Amount      *decimal.Decimal
	OccurredAt  time.Time
}

const (
	ActivitySale   = "sale"
	ActivityClient = "client"
)
