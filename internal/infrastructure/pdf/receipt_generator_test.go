package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novasalud/clinic-api/internal/application/sales"
	"github.com/novasalud/clinic-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "S/ 0.00", money(decimal.Zero))
	assert.Equal(t, "S/ 1,234.50", money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "S/ 1,000,000.00", money(decimal.NewFromInt(1000000)))
	assert.Equal(t, "S/ -25.10", money(decimal.RequireFromString("-25.1")))
}

func TestGenerateReceipt_ProducePDF(t *testing.T) {
	g := NewReceiptGenerator("")
	doc, err := g.GenerateReceipt(context.Background(), sales.Receipt{
		Sale: &entity.Sale{
			ID: 7, Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Total: decimal.RequireFromString("12.50"), SellerName: "vendedor1",
		},
		Client: &entity.Client{ID: 1, Name: "Ana Pérez", DNI: "12345678"},
		Details: []*entity.SaleDetail{
			{ProductName: "Paracetamol", Quantity: 5, UnitPrice: decimal.RequireFromString("2.50"), Subtotal: decimal.RequireFromString("12.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateReceipt_SinVenta(t *testing.T) {
	_, err := NewReceiptGenerator("Nova Salud").GenerateReceipt(context.Background(), sales.Receipt{})
	assert.Error(t, err)
}
