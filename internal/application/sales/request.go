package sales

import (
	"strings"
	"time"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate acepta fecha sola o fecha y hora; sin zona se interpreta en hora local.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("date", "fecha inválida")
}

// HeaderFromRequest convierte el cuerpo HTTP en un Header. sellerID se usa si la petición no trae vendedor.
func HeaderFromRequest(req dto.SaleRequest, sellerID int64) (Header, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return Header{}, err
	}
	h := Header{
		ClientID:     req.ClientID,
		SellerID:     req.SellerID,
		Date:         date,
		Items:        make([]Item, 0, len(req.Items)),
		ClaimedTotal: req.Total,
	}
	if h.SellerID == 0 {
		h.SellerID = sellerID
	}
	for _, it := range req.Items {
		h.Items = append(h.Items, Item{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			ClaimedSubtotal: it.Subtotal,
		})
	}
	return h, nil
}
