// Package pdf implementa la generación del comprobante de orden en PDF
// (ticket para el cliente de la pizzería).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  N° Orden + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + dirección (si delivery)       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción (tamaño + toppings) | P.U. | Sub │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / Descuento / TOTAL              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el número de orden + leyenda                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/currency"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// OrderReceiptGenerator implementa order.ReceiptGenerator usando Maroto v2.
type OrderReceiptGenerator struct {
	storeName string
	symbol    string
}

// NewOrderReceiptGenerator construye el generador. currencyCode es el código
// ISO 4217 de la moneda de la tienda (ej. "AUD"); si no es válido se usa "$".
func NewOrderReceiptGenerator(storeName, currencyCode string) *OrderReceiptGenerator {
	symbol := "$"
	if unit, err := currency.ParseISO(currencyCode); err == nil {
		symbol = fmt.Sprintf("%v", currency.Symbol(unit))
	}
	return &OrderReceiptGenerator{storeName: storeName, symbol: symbol}
}

// GenerateReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *OrderReceiptGenerator) GenerateReceipt(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Orden "+order.Number, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de ítems
	m.AddRows(tableHeaderRow())
	for _, r := range g.tableItemRows(order.Items) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(order))

	// Footer con QR
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(order) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y N° de orden + fecha (der).
func (g *OrderReceiptGenerator) headerRow(order *entity.Order) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(orderTypeLabel(order.Type), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y dirección de entrega si aplica.
func customerRow(order *entity.Order) core.Row {
	contact := fmt.Sprintf("Tel: %s   |   Email: %s",
		nonEmpty(order.CustomerPhone, "—"),
		nonEmpty(order.CustomerEmail, "—"),
	)
	address := "Retiro en tienda"
	if order.Type == entity.OrderTypeDelivery {
		address = "Entrega: " + nonEmpty(order.DeliveryAddress, "—")
	}

	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(contact+"   |   "+address, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por ítem, con el tamaño y los toppings bajo el nombre.
func (g *OrderReceiptGenerator) tableItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		height := 7.0
		if detail := itemDetail(it); detail != "" {
			height = 11
		}

		cols := []core.Col{
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		}

		desc := col.New(6).Add(text.New(
			it.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		))
		if detail := itemDetail(it); detail != "" {
			desc = col.New(6).Add(
				text.New(it.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1}),
				text.New(detail, props.Text{Size: 7, Align: align.Left, Top: 5.5, Left: 3, Color: colorGray}),
			)
		}
		cols = append(cols, desc,
			col.New(2).Add(text.New(
				g.money(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.money(subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		)

		result = append(result, row.New(height).Add(cols...))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *OrderReceiptGenerator) totalsRow(order *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	discount := "—"
	if order.DiscountAmount.IsPositive() {
		discount = "-" + g.money(order.DiscountAmount)
		if order.DiscountCode != "" {
			discount += " (" + order.DiscountCode + ")"
		}
	}

	return row.New(32).Add(
		col.New(3),
		col.New(4).Add(
			label("Subtotal:"),
			label("Envío:"),
			label("Descuento:"),
			grandLabel("TOTAL:"),
		),
		col.New(4).Add(
			value(g.money(order.Subtotal)),
			value(g.money(order.DeliveryFee)),
			value(discount),
			grandValue(g.money(order.Total)),
		),
		col.New(1),
	)
}

// footerRows: código QR con el número de orden + leyenda.
func footerRows(order *entity.Order) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(order.Number, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Presenta este código al retirar\no recibir tu orden.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("¡Gracias por tu compra!", props.Text{
					Style: fontstyle.Bold, Size: 11, Top: 20,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Este comprobante no es un documento fiscal. "+
					"Conserva el número de orden para consultas y reclamos.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *OrderReceiptGenerator) money(d decimal.Decimal) string {
	return g.symbol + d.StringFixed(2)
}

// itemDetail arma la línea secundaria con el tamaño y los toppings del ítem.
func itemDetail(it entity.OrderItem) string {
	var parts []string
	if it.SizeName != "" {
		parts = append(parts, it.SizeName)
	}
	for _, t := range it.Toppings {
		parts = append(parts, "+ "+t.Name)
	}
	return strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func orderTypeLabel(t string) string {
	if t == entity.OrderTypePickup {
		return "Orden para retiro en tienda"
	}
	return "Orden con entrega a domicilio"
}
