package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PrecioVenta implementa el cálculo del precio con impuesto (servicio de dominio).
// PrecioVenta = round(ValorVenta * (1 + TasaImpuesto/100), 2)
func PrecioVenta(valorVenta, tasaImpuesto decimal.Decimal) decimal.Decimal {
	return valorVenta.Mul(Factor(tasaImpuesto)).Round(2)
}

// Factor devuelve 1 + pct/100.
func Factor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}

// ScaledPrices aplica un incremento porcentual a valor y precio de forma independiente,
// cada uno redondeado a 2 decimales. El precio no se recalcula desde el nuevo valor.
func ScaledPrices(valorVenta, precioVenta, pct decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	f := Factor(pct)
	return valorVenta.Mul(f).Round(2), precioVenta.Mul(f).Round(2)
}
