package dto

import (
	"errors"
	"testing"

	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SaleRequestSinItems(t *testing.T) {
	err := Validate(SaleRequest{ClientID: 1, Date: "2024-05-01"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "items", verr.Fields[0].Field)
}

func TestValidate_SaleRequestValida(t *testing.T) {
	req := SaleRequest{
		ClientID: 1,
		Date:     "2024-05-01",
		Items:    []SaleItemRequest{{ProductID: 2, Quantity: 3, UnitPrice: decimal.RequireFromString("4.50")}},
	}
	assert.NoError(t, Validate(req))
}

func TestValidate_ItemConPrecioNegativo(t *testing.T) {
	req := SaleRequest{
		ClientID: 1,
		Date:     "2024-05-01",
		Items:    []SaleItemRequest{{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
	}
	var verr *domain.ValidationError
	require.True(t, errors.As(Validate(req), &verr))
	assert.Equal(t, "items[0].unit_price", verr.Fields[0].Field)
}

func TestPageRequest_Defaults(t *testing.T) {
	p := PageRequest{Page: 3, Limit: 500, Search: "  ana "}
	p.DefaultPage()

	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
	assert.Equal(t, "ana", p.Search)
	assert.Equal(t, 2, NewPageResponse(PageRequest{Page: 1, Limit: 10}, 11).TotalPages)
}
