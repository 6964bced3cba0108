package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
)

func item(codigo, sub, moneda, precio string) dto.ProductListItem {
	return dto.ProductListItem{
		Codigo:          codigo,
		Descripcion:     "Producto " + codigo,
		UnidadVenta:     "BOT",
		ConfUnidadVenta: "750ml",
		Moneda:          moneda,
		ValorVenta:      decimal.RequireFromString(precio),
		TasaImpuesto:    decimal.NewFromInt(18),
		PrecioVenta:     decimal.RequireFromString(precio),
		Subcategoria:    sub,
	}
}

func TestFormatMoney_PorMoneda(t *testing.T) {
	assert.Equal(t, "S/ 14.56", FormatMoney("PEN", decimal.RequireFromString("14.56")))
	assert.Equal(t, "US$ 1,234.50", FormatMoney("USD", decimal.RequireFromString("1234.5")))
	assert.Equal(t, "€ 1.234,50", FormatMoney("EUR", decimal.RequireFromString("1234.5")))
	assert.Equal(t, "CLP 10.00", FormatMoney("CLP", decimal.NewFromInt(10)))
}

func TestGroupBySubcategory_Consecutivos(t *testing.T) {
	got := groupBySubcategory([]dto.ProductListItem{
		item("LC001", "Lácteos", "PEN", "5"),
		item("LC002", "Lácteos", "PEN", "6"),
		item("VT001", "Vinos", "PEN", "14.56"),
		item("XX001", "", "USD", "1"),
	})
	require.Len(t, got, 3)
	assert.Equal(t, "Lácteos", got[0].name)
	assert.Len(t, got[0].items, 2)
	assert.Equal(t, "Vinos", got[1].name)
	assert.Equal(t, "Sin subcategoría", got[2].name)
}

func TestGeneratePriceListPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	doc, err := g.GeneratePriceListPDF(context.Background(), []dto.ProductListItem{
		item("VT001", "Vinos", "PEN", "14.56"),
		item("VT002", "Vinos", "USD", "20"),
	}, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGeneratePriceListPDF_SinProductos(t *testing.T) {
	doc, err := NewMarotoPDFGenerator("Catálogo").GeneratePriceListPDF(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
