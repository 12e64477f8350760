package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novasalud/clinic-api/internal/application/sales"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/pkg/config"
)

// Requiere una base PostgreSQL desechable: TEST_DATABASE_URL=postgres://... go test ./...
func integrationService(t *testing.T) (*sales.Service, *ProductRepo, *entity.Client, *entity.User) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool, zerolog.Nop())
	require.NoError(t, err)

	suffix := time.Now().UnixNano()
	client := &entity.Client{Name: "Cliente integración", DNI: fmt.Sprintf("T%d", suffix)}
	require.NoError(t, NewClientRepository(pool).Create(ctx, client))
	seller := &entity.User{Username: fmt.Sprintf("it%d", suffix), PasswordHash: "x", Role: entity.RoleVendedor}
	require.NoError(t, NewUserRepository(pool).Create(ctx, seller))

	products := NewProductRepository(pool)
	svc := sales.NewService(NewTxRunner(pool), NewSaleRepository(pool), NewClientRepository(pool),
		NewUserRepository(pool), products, zerolog.Nop())
	return svc, products, client, seller
}

func TestIntegration_VentasConcurrentesNoSobrevenden(t *testing.T) {
	svc, products, client, seller := integrationService(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Alcohol 70%", Stock: 10, Price: decimal.RequireFromString("3.20")}
	require.NoError(t, products.Create(ctx, p))

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, short := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, sales.Header{
				ClientID: client.ID, SellerID: seller.ID, Date: time.Now(),
				Items: []sales.Item{{ProductID: p.ID, Quantity: 3, UnitPrice: p.Price}},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				short++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok, "10 unidades alcanzan para 3 ventas de 3")
	assert.Equal(t, workers-3, short)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}

func TestIntegration_ActualizarYEliminarRestauranStock(t *testing.T) {
	svc, products, client, seller := integrationService(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Suero oral", Stock: 10, Price: decimal.RequireFromString("4.00")}
	require.NoError(t, products.Create(ctx, p))

	h := sales.Header{
		ClientID: client.ID, SellerID: seller.ID, Date: time.Now(),
		Items: []sales.Item{{ProductID: p.ID, Quantity: 4, UnitPrice: p.Price}},
	}
	res, err := svc.Create(ctx, h)
	require.NoError(t, err)

	h.Items[0].Quantity = 15
	_, err = svc.Update(ctx, res.SaleID, h)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, 6, got.Stock, "el reemplazo fallido no deja rastro")

	h.Items[0].Quantity = 9
	_, err = svc.Update(ctx, res.SaleID, h)
	require.NoError(t, err)
	got, _ = products.GetByID(ctx, p.ID)
	assert.Equal(t, 1, got.Stock)

	require.NoError(t, svc.Delete(ctx, res.SaleID))
	got, _ = products.GetByID(ctx, p.ID)
	assert.Equal(t, 10, got.Stock)
}

func TestIntegration_ActualizarYEliminarConcurrentesLaMismaVenta(t *testing.T) {
	svc, products, client, seller := integrationService(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Gasas estériles", Stock: 50, Price: decimal.RequireFromString("1.50")}
	require.NoError(t, products.Create(ctx, p))

	h := sales.Header{ClientID: client.ID, SellerID: seller.ID, Date: time.Now()}
	for round := 0; round < 10; round++ {
		h.Items = []sales.Item{{ProductID: p.ID, Quantity: 2, UnitPrice: p.Price}}
		res, err := svc.Create(ctx, h)
		require.NoError(t, err)

		upd := h
		upd.Items = []sales.Item{{ProductID: p.ID, Quantity: 7, UnitPrice: p.Price}}

		var updErr, delErr error
		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, updErr = svc.Update(ctx, res.SaleID, upd)
		}()
		go func() {
			defer wg.Done()
			<-start
			delErr = svc.Delete(ctx, res.SaleID)
		}()
		close(start)
		wg.Wait()

		require.NoError(t, delErr, "ronda %d", round)
		if updErr != nil {
			require.ErrorIs(t, updErr, domain.ErrNotFound, "ronda %d", round)
		}
		got, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, 50, got.Stock, "ronda %d: eliminada la venta, el stock vuelve al original", round)
	}
}

func TestIntegration_EliminarYCrearConcurrentesSobreElMismoProducto(t *testing.T) {
	svc, products, client, seller := integrationService(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Jeringa 5ml", Stock: 6, Price: decimal.RequireFromString("0.80")}
	require.NoError(t, products.Create(ctx, p))

	h := sales.Header{
		ClientID: client.ID, SellerID: seller.ID, Date: time.Now(),
		Items: []sales.Item{{ProductID: p.ID, Quantity: 6, UnitPrice: p.Price}},
	}
	first, err := svc.Create(ctx, h)
	require.NoError(t, err)

	var createErr, delErr error
	var second sales.Result
	var wg sync.WaitGroup
	start := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		second, createErr = svc.Create(ctx, h)
	}()
	go func() {
		defer wg.Done()
		<-start
		delErr = svc.Delete(ctx, first.SaleID)
	}()
	close(start)
	wg.Wait()

	require.NoError(t, delErr)
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	if createErr != nil {
		assert.ErrorIs(t, createErr, domain.ErrInsufficientStock, "la venta nueva llegó antes de la devolución")
		assert.Equal(t, 6, got.Stock)
		return
	}
	assert.Equal(t, 0, got.Stock)
	require.NoError(t, svc.Delete(ctx, second.SaleID))
	got, err = products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)
}
