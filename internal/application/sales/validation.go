package sales

import (
	"fmt"

	"github.com/novasalud/clinic-api/internal/domain"
)

func validateHeader(h Header) error {
	verr := &domain.ValidationError{}
	if h.ClientID <= 0 {
		verr.Add("client_id", "debe ser un identificador positivo")
	}
	if h.SellerID <= 0 {
		verr.Add("seller_id", "debe ser un identificador positivo")
	}
	if h.Date.IsZero() {
		verr.Add("date", "fecha inválida")
	}
	if len(h.Items) == 0 {
		verr.Add("items", "la venta debe tener al menos un producto")
	}
	for i, it := range h.Items {
		if it.ProductID <= 0 {
			verr.Add(fmt.Sprintf("items[%d].product_id", i), "debe ser un identificador positivo")
		}
		if it.Quantity <= 0 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que 0")
		}
		if it.UnitPrice.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].unit_price", i), "no puede ser negativo")
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func validateSaleID(id int64) error {
	if id <= 0 {
		return domain.NewValidationError("sale_id", "debe ser un identificador positivo")
	}
	return nil
}
