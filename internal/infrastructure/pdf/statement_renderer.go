// Package pdf genera el estado de cuenta de un cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + Empresa    │  ESTADO DE CUENTA + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: Email / Tel / Id cliente                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRAS: Fecha | Producto | Cant | P.Unit | Subtotal        │
//	│  TOTAL                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INTERACCIONES: Fecha | Tipo | Estado | Descripción          │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ crm.DocumentRenderer = (*StatementRenderer)(nil)

// StatementRenderer implementa crm.DocumentRenderer produciendo un PDF.
type StatementRenderer struct {
	author string
}

// NewStatementRenderer construye el renderer; author queda en los metadatos del PDF.
func NewStatementRenderer(author string) *StatementRenderer {
	return &StatementRenderer{author: author}
}

// Render genera el PDF y devuelve sus bytes.
func (r *StatementRenderer) Render(_ context.Context, doc *crm.CustomerDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta "+doc.Customer.Name, true).
		WithAuthor(nonEmpty(r.author, "crm-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("COMPRAS"))
	m.AddRows(purchaseHeaderRow())
	if len(doc.Purchases) == 0 {
		m.AddRows(emptyRow("Sin compras registradas"))
	}
	m.AddRows(purchaseRows(doc.Purchases)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc.Total))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("INTERACCIONES"))
	m.AddRows(interactionHeaderRow())
	if len(doc.Interactions) == 0 {
		m.AddRows(emptyRow("Sin interacciones registradas"))
	}
	m.AddRows(interactionRows(doc.Interactions)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y empresa (izq), título y fecha de generación (der).
func headerRow(doc *crm.CustomerDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.Customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Customer.Company, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func contactRow(c entity.Customer) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Id: %s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
				c.ID,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{
		Size: 8, Color: colorGray, Top: 1, Left: 1,
	})))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func purchaseHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Cant.", 1, align.Center),
		headerCell("Precio Unit.", 2, align.Right),
		headerCell("Subtotal", 3, align.Right),
	)
}

// purchaseRows: una fila por compra.
func purchaseRows(purchases []entity.Purchase) []core.Row {
	result := make([]core.Row, 0, len(purchases))
	for _, p := range purchases {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(p.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Product, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(p.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(p.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+formatMoney(p.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL COMPRAS:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func interactionHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Tipo", 2, align.Left),
		headerCell("Estado", 2, align.Left),
		headerCell("Descripción", 6, align.Left),
	)
}

func interactionRows(interactions []entity.Interaction) []core.Row {
	result := make([]core.Row, 0, len(interactions))
	for _, i := range interactions {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(i.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(i.InteractionType, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(i.Status, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(nonEmpty(i.Description, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con dos decimales, puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
