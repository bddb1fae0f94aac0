// Package pdf genera la factura imprimible de un alquiler con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: nombre de la app  │  N° de alquiler + fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ARRENDATARIO: username                                      │
//	│  VEHÍCULO: marca modelo (tipo)                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Rango | Días | Tarifa/día | Descuento | Total        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoInvoiceGenerator implementa usecase.InvoiceGenerator usando Maroto v2.
type MarotoInvoiceGenerator struct {
	appName string
}

// NewMarotoInvoiceGenerator construye el generador. appName aparece en el
// encabezado de la factura.
func NewMarotoInvoiceGenerator(appName string) *MarotoInvoiceGenerator {
	return &MarotoInvoiceGenerator{appName: appName}
}

// RentalInvoice genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoInvoiceGenerator) RentalInvoice(inv dto.InvoiceResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de alquiler", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(inv.Rental))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(inv.Rental.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la app (izq), número de alquiler y fecha (der).
func (g *MarotoInvoiceGenerator) headerRow(inv dto.InvoiceResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Factura de alquiler", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Alquiler "+inv.Rental.ID, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Emitida: "+inv.Rental.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// partiesRow: arrendatario y vehículo.
func partiesRow(inv dto.InvoiceResponse) core.Row {
	vehicle := fmt.Sprintf("%s %s (%s)", inv.Rental.Brand, inv.Rental.Model, inv.Rental.Type)
	return row.New(14).Add(
		col.New(6).Add(
			text.New("ARRENDATARIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray}),
			text.New(inv.Username, props.Text{Size: 10, Top: 5}),
		),
		col.New(6).Add(
			text.New("VEHÍCULO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray}),
			text.New(vehicle, props.Text{Size: 10, Top: 5}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header(4, "Rango"),
		header(2, "Días"),
		header(2, "Tarifa/día"),
		header(2, "Descuento"),
		header(2, "Total"),
	)
}

func tableDetailRow(r dto.RentalResponse) core.Row {
	days := r.Days
	if r.UsedDays > 0 {
		days = r.UsedDays // al devolver se cobra por días usados
	}
	discount := r.Discount.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 9}))
	}
	return row.New(7).Add(
		cell(4, r.StartDate+" a "+r.EndDate),
		cell(2, fmt.Sprintf("%d", days)),
		cell(2, "$"+r.Rate.StringFixed(2)),
		cell(2, discount),
		cell(2, "$"+r.Total.StringFixed(2)),
	)
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(
			text.New("TOTAL A PAGAR: $"+total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2,
			}),
		),
	)
}
