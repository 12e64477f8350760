package sales

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Sales   repository.SaleRepository
	Stock   repository.StockRepository
	Clients repository.ClientRepository
	Users   repository.UserRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn retorna error se hace rollback;
// si no, commit. La conexión se libera en cualquier caso.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(repos TxRepos) error) error
}

// ReceiptGenerator genera el comprobante imprimible de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, r Receipt) ([]byte, error)
}
