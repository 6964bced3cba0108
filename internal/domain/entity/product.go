package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de venta admitidas.
const (
	UnidadCaja    = "CJA"
	UnidadPaquete = "PAQ"
	UnidadBolsa   = "BOL"
	UnidadBotella = "BOT"
	UnidadBarra   = "BAR"
	UnidadSachet  = "SCH"
)

// Monedas admitidas.
const (
	MonedaPEN = "PEN"
	MonedaUSD = "USD"
	MonedaEUR = "EUR"
)

// UnidadesVenta lista ordenada de unidades válidas (usada en validación y documentación).
var UnidadesVenta = []string{UnidadCaja, UnidadPaquete, UnidadBolsa, UnidadBotella, UnidadBarra, UnidadSachet}

// Monedas lista de monedas válidas.
var Monedas = []string{MonedaPEN, MonedaUSD, MonedaEUR}

// ValidUnidadVenta indica si u es una unidad de venta enumerada.
func ValidUnidadVenta(u string) bool {
	for _, v := range UnidadesVenta {
		if v == u {
			return true
		}
	}
	return false
}

// ValidMoneda indica si m es una moneda enumerada.
func ValidMoneda(m string) bool {
	for _, v := range Monedas {
		if v == m {
			return true
		}
	}
	return false
}

// Product representa un producto del catálogo.
// Codigo es la clave de negocio (única, inmutable); ID es la identidad interna que enlaza el Stock.
// PrecioVenta siempre se calcula en el servidor desde ValorVenta y TasaImpuesto.
type Product struct {
	ID              string
	Codigo          string
	Descripcion     string
	UnidadVenta     string
	ConfUnidadVenta string
	InfoAdicional   string
	Estado          string
	Foto            string
	Moneda          string
	ValorVenta      decimal.Decimal // sin impuesto
	TasaImpuesto    decimal.Decimal // porcentaje, ej. 18 = 18%
	PrecioVenta     decimal.Decimal
	SubcategoriaID  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductRow fila de lectura: producto unido a su subcategoría y stock.
// Las relaciones pueden faltar (nil) y el shaper aplica los valores por defecto.
type ProductRow struct {
	Product
	SubcategoriaNombre *string
	StockFisico        *int
	StockComprometido  *int
}

// ProductDetail producto con la subcategoría completa y su stock (respuesta de create/update/get).
type ProductDetail struct {
	Product
	Subcategoria *Subcategory
	Stock        *Stock
}
