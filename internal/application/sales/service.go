// Package sales administra las ventas y su efecto sobre el inventario.
//
// Cada escritura (crear, reemplazar, eliminar) corre en una única transacción:
// o se aplican todos los movimientos de stock y filas de detalle, o ninguno.
package sales

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// Service casos de uso de ventas.
type Service struct {
	tx       TxRunner
	sales    repository.SaleRepository
	clients  repository.ClientRepository
	users    repository.UserRepository
	products repository.ProductRepository
	receipts ReceiptGenerator
	log      zerolog.Logger
}

// NewService construye el servicio. Los repos son de solo lectura (pool); las escrituras usan tx.
func NewService(
	tx TxRunner,
	sales repository.SaleRepository,
	clients repository.ClientRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		tx:       tx,
		sales:    sales,
		clients:  clients,
		users:    users,
		products: products,
		log:      log.With().Str("component", "sales").Logger(),
	}
}

// Execute ejecuta un comando de escritura.
func (s *Service) Execute(ctx context.Context, cmd Command) (Result, error) {
	return cmd.execute(ctx, s)
}

// Create registra una venta nueva.
func (s *Service) Create(ctx context.Context, h Header) (Result, error) {
	return s.Execute(ctx, CreateSale{Header: h})
}

// Update reemplaza una venta existente.
func (s *Service) Update(ctx context.Context, saleID int64, h Header) (Result, error) {
	return s.Execute(ctx, UpdateSale{SaleID: saleID, Header: h})
}

// Delete elimina una venta y devuelve su stock.
func (s *Service) Delete(ctx context.Context, saleID int64) error {
	_, err := s.Execute(ctx, DeleteSale{SaleID: saleID})
	return err
}

func (s *Service) create(ctx context.Context, c CreateSale) (Result, error) {
	if err := validateHeader(c.Header); err != nil {
		return Result{}, err
	}
	total := s.recomputeTotal(0, c.Header)
	sale := &entity.Sale{ClientID: c.ClientID, SellerID: c.SellerID, Date: c.Date, Total: total}

	err := s.tx.RunSales(ctx, func(r TxRepos) error {
		if err := checkReferences(ctx, r, c.ClientID, c.SellerID); err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		return applyItems(ctx, sale.ID, c.Items, r.Sales, r.Stock)
	})
	if err != nil {
		s.logFailure(err, "create", 0)
		return Result{}, err
	}
	s.log.Info().Int64("sale_id", sale.ID).Str("total", total.StringFixed(2)).Int("items", len(c.Items)).Msg("venta registrada")
	return Result{SaleID: sale.ID, Total: total}, nil
}

func (s *Service) update(ctx context.Context, c UpdateSale) (Result, error) {
	if err := validateSaleID(c.SaleID); err != nil {
		return Result{}, err
	}
	if err := validateHeader(c.Header); err != nil {
		return Result{}, err
	}
	total := s.recomputeTotal(c.SaleID, c.Header)

	err := s.tx.RunSales(ctx, func(r TxRepos) error {
		current, err := r.Sales.GetForUpdate(ctx, c.SaleID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("venta", c.SaleID)
		}
		if err := checkReferences(ctx, r, c.ClientID, c.SellerID); err != nil {
			return err
		}
		if err := restoreDetails(ctx, c.SaleID, r.Sales, r.Stock); err != nil {
			return err
		}
		if err := r.Sales.DeleteDetails(ctx, c.SaleID); err != nil {
			return err
		}
		current.ClientID = c.ClientID
		current.SellerID = c.SellerID
		current.Date = c.Date
		current.Total = total
		if err := r.Sales.UpdateHeader(ctx, current); err != nil {
			return err
		}
		return applyItems(ctx, c.SaleID, c.Items, r.Sales, r.Stock)
	})
	if err != nil {
		s.logFailure(err, "update", c.SaleID)
		return Result{}, err
	}
	s.log.Info().Int64("sale_id", c.SaleID).Str("total", total.StringFixed(2)).Msg("venta actualizada")
	return Result{SaleID: c.SaleID, Total: total}, nil
}

func (s *Service) delete(ctx context.Context, c DeleteSale) (Result, error) {
	if err := validateSaleID(c.SaleID); err != nil {
		return Result{}, err
	}
	err := s.tx.RunSales(ctx, func(r TxRepos) error {
		// Bloquear la cabecera antes de leer los detalles: un reemplazo concurrente
		// de la misma venta termina primero y los detalles leídos son los vigentes.
		current, err := r.Sales.GetForUpdate(ctx, c.SaleID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("venta", c.SaleID)
		}
		if err := restoreDetails(ctx, c.SaleID, r.Sales, r.Stock); err != nil {
			return err
		}
		if err := r.Sales.DeleteDetails(ctx, c.SaleID); err != nil {
			return err
		}
		deleted, err := r.Sales.Delete(ctx, c.SaleID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.NotFound("venta", c.SaleID)
		}
		return nil
	})
	if err != nil {
		s.logFailure(err, "delete", c.SaleID)
		return Result{}, err
	}
	s.log.Info().Int64("sale_id", c.SaleID).Msg("venta eliminada")
	return Result{SaleID: c.SaleID}, nil
}

func checkReferences(ctx context.Context, r TxRepos, clientID, sellerID int64) error {
	client, err := r.Clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NotFound("cliente", clientID)
	}
	seller, err := r.Users.GetByID(ctx, sellerID)
	if err != nil {
		return err
	}
	if seller == nil {
		return domain.NotFound("vendedor", sellerID)
	}
	return nil
}

// recomputeTotal calcula el total en servidor y deja constancia si el cliente envió otro valor.
func (s *Service) recomputeTotal(saleID int64, h Header) decimal.Decimal {
	for i, it := range h.Items {
		if it.ClaimedSubtotal != nil && !it.ClaimedSubtotal.Equal(it.Subtotal()) {
			s.log.Warn().Int64("sale_id", saleID).Int("item", i).
				Str("claimed", it.ClaimedSubtotal.String()).Str("computed", it.Subtotal().String()).
				Msg("subtotal enviado no coincide; se usa el calculado")
		}
	}
	total := h.Total()
	if h.ClaimedTotal != nil && !h.ClaimedTotal.Equal(total) {
		s.log.Warn().Int64("sale_id", saleID).
			Str("claimed", h.ClaimedTotal.String()).Str("computed", total.String()).
			Msg("total enviado no coincide; se usa el calculado")
	}
	return total
}

func (s *Service) logFailure(err error, op string, saleID int64) {
	if errors.Is(err, domain.ErrInfrastructure) {
		s.log.Error().Err(err).Str("op", op).Int64("sale_id", saleID).Msg("fallo de infraestructura en venta")
		return
	}
	s.log.Warn().Err(err).Str("op", op).Int64("sale_id", saleID).Msg("venta revertida")
}

// Get devuelve la cabecera de una venta.
func (s *Service) Get(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta", id)
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// GetDetails devuelve las líneas de una venta en orden de inserción.
func (s *Service) GetDetails(ctx context.Context, id int64) ([]dto.SaleDetailResponse, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta", id)
	}
	details, err := s.sales.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.SaleDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return out, nil
}

// List lista ventas (más recientes primero) con búsqueda por cliente o fecha.
func (s *Service) List(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, total, err := s.sales.List(ctx, repository.ListFilter{Search: page.Search, Limit: page.Limit, Offset: page.Offset()})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		items = append(items, toSaleResponse(sale))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// FormData clientes, vendedores y productos con stock para el formulario de venta.
func (s *Service) FormData(ctx context.Context) (*dto.SaleFormDataResponse, error) {
	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListInStock(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleFormDataResponse{
		Clients:  make([]dto.ClientOption, 0, len(clients)),
		Sellers:  make([]dto.SellerOption, 0, len(sellers)),
		Products: make([]dto.ProductOption, 0, len(products)),
	}
	for _, c := range clients {
		out.Clients = append(out.Clients, dto.ClientOption{ID: c.ID, Name: c.Name, DNI: c.DNI})
	}
	for _, u := range sellers {
		out.Sellers = append(out.Sellers, dto.SellerOption{ID: u.ID, Username: u.Username})
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductOption{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock})
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:         s.ID,
		ClientID:   s.ClientID,
		ClientName: s.ClientName,
		SellerID:   s.SellerID,
		SellerName: s.SellerName,
		Date:       s.Date,
		Total:      s.Total,
	}
}
