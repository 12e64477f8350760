// Package analytics contiene los casos de uso del panel principal.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

const (
	lowStockItems   = 10 // productos en el widget de stock bajo
	recentPerSource = 5  // ventas y clientes que aporta cada fuente
	recentItems     = 10
)

// DashboardUseCase genera el resumen del día.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo      repository.DashboardRepository
	threshold int
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso. threshold es el stock a partir del cual un producto se considera bajo.
func NewDashboardUseCase(repo repository.DashboardRepository, threshold int) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, threshold: threshold, now: time.Now}
}

// GetSummary construye el DashboardResponse.
//
// Cuatro llamadas en paralelo:
//  1. DailySummary(hoy)      → ventas, unidades, clientes y conteo de stock bajo
//  2. LowStock(umbral, 10)   → lista de stock bajo
//  3. RecentSales(5)         → actividad reciente
//  4. RecentClients(5)       → actividad reciente
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type summaryResult struct {
		s   *entity.DailySummary
		err error
	}
	type lowStockResult struct {
		products []*entity.Product
		err      error
	}
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type clientsResult struct {
		clients []*entity.Client
		err     error
	}

	summaryCh := make(chan summaryResult, 1)
	lowCh := make(chan lowStockResult, 1)
	salesCh := make(chan salesResult, 1)
	clientsCh := make(chan clientsResult, 1)

	go func() {
		s, err := uc.repo.DailySummary(ctx, uc.now(), uc.threshold)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		p, err := uc.repo.LowStock(ctx, uc.threshold, lowStockItems)
		lowCh <- lowStockResult{p, err}
	}()
	go func() {
		s, err := uc.repo.RecentSales(ctx, recentPerSource)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		c, err := uc.repo.RecentClients(ctx, recentPerSource)
		clientsCh <- clientsResult{c, err}
	}()

	summary := <-summaryCh
	low := <-lowCh
	sales := <-salesCh
	clients := <-clientsCh

	if summary.err != nil {
		return nil, fmt.Errorf("dashboard resumen diario: %w", summary.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard stock bajo: %w", low.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard ventas recientes: %w", sales.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("dashboard clientes recientes: %w", clients.err)
	}

	out := &dto.DashboardResponse{
		TodaySales:     summary.s.SalesTotal,
		UnitsSoldToday: summary.s.UnitsSold,
		ClientsToday:   summary.s.ClientsServed,
		LowStockCount:  summary.s.LowStockCount,
		LowStock:       make([]dto.LowStockDTO, 0, len(low.products)),
		Recent:         mergeActivity(sales.sales, clients.clients),
	}
	for _, p := range low.products {
		out.LowStock = append(out.LowStock, dto.LowStockDTO{ID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return out, nil
}

// mergeActivity junta ventas y clientes nuevos, más recientes primero.
func mergeActivity(sales []*entity.Sale, clients []*entity.Client) []dto.RecentActivityDTO {
	out := make([]dto.RecentActivityDTO, 0, len(sales)+len(clients))
	for _, s := range sales {
		total := s.Total
		out = append(out, dto.RecentActivityDTO{
			Kind:        entity.ActivitySale,
			Description: fmt.Sprintf("Venta #%d a %s", s.ID, s.ClientName),
			Amount:      &total,
			OccurredAt:  s.Date,
		})
	}
	for _, c := range clients {
		out = append(out, dto.RecentActivityDTO{
			Kind:        entity.ActivityClient,
			Description: "Nuevo cliente: " + c.Name,
			OccurredAt:  c.RegisteredAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > recentItems {
		out = out[:recentItems]
	}
	return out
}
