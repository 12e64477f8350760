package sales

import (
	"context"
	"errors"

	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// Receipt datos que necesita el generador para imprimir una venta.
type Receipt struct {
	Sale    *entity.Sale
	Client  *entity.Client
	Details []*entity.SaleDetail
}

var errNoReceiptGenerator = errors.New("generador de comprobantes no configurado")

// WithReceipts asigna el generador de comprobantes.
func (s *Service) WithReceipts(g ReceiptGenerator) *Service {
	s.receipts = g
	return s
}

// Receipt arma el comprobante de la venta id y devuelve los bytes generados.
func (s *Service) Receipt(ctx context.Context, id int64) ([]byte, error) {
	if err := validateSaleID(id); err != nil {
		return nil, err
	}
	if s.receipts == nil {
		return nil, domain.Infrastructure("comprobante", errNoReceiptGenerator)
	}
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta", id)
	}
	client, err := s.clients.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		// Cliente borrado no debería ocurrir (FK), se imprime con el nombre de la venta.
		client = &entity.Client{ID: sale.ClientID, Name: sale.ClientName}
	}
	details, err := s.sales.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.receipts.GenerateReceipt(ctx, Receipt{Sale: sale, Client: client, Details: details})
	if err != nil {
		s.log.Error().Err(err).Int64("sale_id", id).Msg("error generando comprobante")
		return nil, domain.Infrastructure("comprobante", err)
	}
	return doc, nil
}
