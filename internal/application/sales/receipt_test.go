package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novasalud/clinic-api/internal/domain"
)

type captureReceipts struct {
	got Receipt
	err error
}

func (c *captureReceipts) GenerateReceipt(ctx context.Context, r Receipt) ([]byte, error) {
	c.got = r
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestReceipt_ArmaDatosDeLaVenta(t *testing.T) {
	svc, m := newTestService(t)
	m.addProduct(1, "Paracetamol", 10, "2.50")
	res, err := svc.Create(context.Background(), header(item(1, 2, "2.50")))
	require.NoError(t, err)

	gen := &captureReceipts{}
	svc.WithReceipts(gen)

	doc, err := svc.Receipt(context.Background(), res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)
	assert.Equal(t, "Ana Pérez", gen.got.Client.Name)
	require.Len(t, gen.got.Details, 1)
	assert.Equal(t, "Paracetamol", gen.got.Details[0].ProductName)
}

func TestReceipt_Errores(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Receipt(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInfrastructure, "sin generador")

	svc.WithReceipts(&captureReceipts{})
	_, err = svc.Receipt(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Receipt(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReceipt_FalloDelGenerador(t *testing.T) {
	svc, m := newTestService(t)
	m.addProduct(1, "Paracetamol", 10, "2.50")
	res, err := svc.Create(context.Background(), header(item(1, 1, "2.50")))
	require.NoError(t, err)

	svc.WithReceipts(&captureReceipts{err: errors.New("fuente no encontrada")})
	_, err = svc.Receipt(context.Background(), res.SaleID)
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
}
