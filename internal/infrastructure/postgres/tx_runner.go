package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novasalud/clinic-api/internal/application/sales"
	"github.com/novasalud/clinic-api/internal/domain"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunSales(ctx context.Context, fn func(repos sales.TxRepos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(sales.TxRepos{
			Sales:   NewSaleRepository(tx),
			Stock:   NewStockRepository(tx),
			Clients: NewClientRepository(tx),
			Users:   NewUserRepository(tx),
		})
	})
}

// run garantiza que la transacción termine en commit o rollback y que la conexión vuelva al pool,
// incluso si fn entra en pánico.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Infrastructure("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapError("commit transaction", err); !errors.Is(mapped, domain.ErrInfrastructure) {
			return mapped
		}
		return domain.Infrastructure("commit transaction", err)
	}
	return nil
}
