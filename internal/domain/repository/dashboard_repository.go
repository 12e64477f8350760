package repository

import (
	"context"
	"time"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// DashboardRepository consultas de solo lectura para el panel principal.
type DashboardRepository interface {
	DailySummary(ctx context.Context, day time.Time, lowStockThreshold int) (*entity.DailySummary, error)
	LowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error)
	RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error)
	RecentClients(ctx context.Context, limit int) ([]*entity.Client, error)
}
