// Package pdf genera el comprobante de venta imprimible de Nova Salud.
//
// Layout de la página A4:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Nova Salud       │  Venta N° + Fecha  │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: Nombre + DNI + contacto             │
//	│  VENDEDOR                                     │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal   │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL                                        │
//	│  FOOTER: leyenda                              │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/novasalud/clinic-api/internal/application/sales"
	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 121, Blue: 107}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador. storeName aparece en la cabecera.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	if strings.TrimSpace(storeName) == "" {
		storeName = "Nova Salud"
	}
	return &ReceiptGenerator{storeName: storeName}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, r sales.Receipt) ([]byte, error) {
	if r.Sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comprobante de venta %d", r.Sale.ID), true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, r.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(r.Client, r.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(r.Details)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(r.Sale.Total))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(store string, sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(store, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Botica", props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %06d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+sale.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func clientRow(c *entity.Client, sale *entity.Sale) core.Row {
	name, dni, phone := sale.ClientName, "", ""
	if c != nil {
		name, dni, phone = c.Name, c.DNI, c.Phone
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("DNI: %s   |   Tel: %s", nonEmpty(dni, "-"), nonEmpty(phone, "-")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New("Atendido por: "+nonEmpty(sale.SellerName, "-"),
				props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRows(details []*entity.SaleDetail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", d.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				d.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(d.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(d.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra. Conserve este comprobante para cualquier reclamo.",
			props.Text{Size: 6.5, Color: colorGray, Align: align.Center, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea en soles con separador de miles: 1234.5 → "S/ 1,234.50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return "S/ " + sign + formatThousands(intPart) + "." + frac
}

// formatThousands inserta comas de miles en un string numérico sin decimales.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
