package postgres

import (
	"context"
	"time"

	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only del panel principal.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el repositorio.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// DailySummary totales del día [day, day+24h).
func (r *DashboardRepo) DailySummary(ctx context.Context, day time.Time, lowStockThreshold int) (*entity.DailySummary, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	var s entity.DailySummary
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(total) FROM sales WHERE date >= $1 AND date < $2), 0),
			COALESCE((SELECT SUM(d.quantity) FROM sale_details d JOIN sales s ON s.id = d.sale_id
			          WHERE s.date >= $1 AND s.date < $2), 0),
			(SELECT COUNT(DISTINCT client_id) FROM sales WHERE date >= $1 AND date < $2),
			(SELECT COUNT(*) FROM products WHERE stock <= $3)`,
		from, to, lowStockThreshold,
	).Scan(&s.SalesTotal, &s.UnitsSold, &s.ClientsServed, &s.LowStockCount)
	if err != nil {
		return nil, mapError("daily summary", err)
	}
	return &s, nil
}

// LowStock productos con stock <= threshold, los más escasos primero.
func (r *DashboardRepo) LowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, stock FROM products WHERE stock <= $1 ORDER BY stock, name LIMIT $2`,
		threshold, limit)
	if err != nil {
		return nil, mapError("low stock", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock); err != nil {
			return nil, mapError("scan low stock", err)
		}
		out = append(out, &p)
	}
	return out, mapError("low stock", rows.Err())
}

// RecentSales últimas ventas con el nombre del cliente.
func (r *DashboardRepo) RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+` ORDER BY s.date DESC, s.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, mapError("recent sales", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, mapError("scan recent sale", err)
		}
		out = append(out, s)
	}
	return out, mapError("recent sales", rows.Err())
}

// RecentClients últimos clientes registrados.
func (r *DashboardRepo) RecentClients(ctx context.Context, limit int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY registered_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, mapError("recent clients", err)
	}
	defer rows.Close()

	var out []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, mapError("scan recent client", err)
		}
		out = append(out, c)
	}
	return out, mapError("recent clients", rows.Err())
}
