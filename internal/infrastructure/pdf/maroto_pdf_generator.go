// Package pdf genera la lista de precios del catálogo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de emisión                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUBCATEGORÍA                                                │
//	│  TABLA: Código | Descripción | Unidad | Valor | IGV | Precio │
//	│  ... una sección por subcategoría ...                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 232, Green: 240, Blue: 248}
)

// ── Formato de moneda ─────────────────────────────────────────────────────────

var currencies = map[string]*accounting.Accounting{
	"PEN": {Symbol: "S/", Precision: 2, Thousand: ",", Decimal: ".", Format: "%s %v"},
	"USD": {Symbol: "US$", Precision: 2, Thousand: ",", Decimal: ".", Format: "%s %v"},
	"EUR": {Symbol: "€", Precision: 2, Thousand: ".", Decimal: ",", Format: "%s %v"},
}

// FormatMoney formatea un importe con el símbolo de su moneda. Monedas desconocidas se muestran con su código.
func FormatMoney(moneda string, amount decimal.Decimal) string {
	ac, ok := currencies[moneda]
	if !ok {
		ac = &accounting.Accounting{Symbol: moneda, Precision: 2, Thousand: ",", Decimal: ".", Format: "%s %v"}
	}
	return ac.FormatMoneyDecimal(amount)
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.PriceListGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador; title vacío usa "Lista de precios".
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Lista de precios"
	}
	return &MarotoPDFGenerator{title: title}
}

// GeneratePriceListPDF genera el PDF y devuelve sus bytes.
// items llega ordenado por subcategoría y código; cada cambio de subcategoría abre una sección.
func (g *MarotoPDFGenerator) GeneratePriceListPDF(
	_ context.Context,
	items []dto.ProductListItem,
	issuedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, issuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(items) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("No hay productos activos.", props.Text{Size: 9, Align: align.Center, Top: 4, Color: colorGray}),
		)))
	}
	for _, section := range groupBySubcategory(items) {
		m.AddRows(sectionTitleRow(section.name))
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(section.items)...)
		m.AddRows(row.New(3))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type section struct {
	name  string
	items []dto.ProductListItem
}

// groupBySubcategory agrupa items consecutivos de la misma subcategoría.
func groupBySubcategory(items []dto.ProductListItem) []section {
	var out []section
	for _, it := range items {
		name := nonEmpty(it.Subcategoria, "Sin subcategoría")
		if len(out) == 0 || out[len(out)-1].name != name {
			out = append(out, section{name: name})
		}
		last := &out[len(out)-1]
		last.items = append(last.items, it)
	}
	return out
}

// headerRow: título (izq) y fecha de emisión (der).
func headerRow(title string, issuedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Emitida: "+issuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(name string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Unidad", 2, align.Left),
		h("Valor", 1, align.Right),
		h("Imp.%", 1, align.Center),
		h("Precio", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por producto, con bandas alternas.
func tableDetailRows(items []dto.ProductListItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		r := row.New(7).Add(
			col.New(2).Add(text.New(it.Codigo, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.Descripcion, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(unidad(it), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(
				FormatMoney(it.Moneda, it.ValorVenta),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.TasaImpuesto.String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				FormatMoney(it.Moneda, it.PrecioVenta),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow(total int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos activos. Precios incluyen impuestos.", total), props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func unidad(it dto.ProductListItem) string {
	if it.ConfUnidadVenta == "" {
		return it.UnidadVenta
	}
	return it.UnidadVenta + " " + it.ConfUnidadVenta
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
