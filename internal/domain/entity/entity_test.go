package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func TestToggleEstado_IdaYVuelta(t *testing.T) {
	assert.Equal(t, entity.EstadoInactivo, entity.ToggleEstado(entity.EstadoActivo))
	assert.Equal(t, entity.EstadoActivo, entity.ToggleEstado(entity.EstadoInactivo))
	assert.Equal(t, entity.EstadoActivo, entity.ToggleEstado(entity.ToggleEstado(entity.EstadoActivo)))
}

func TestToggleEstado_ValorDesconocidoPasaAActivo(t *testing.T) {
	assert.Equal(t, entity.EstadoActivo, entity.ToggleEstado(""))
}

func TestEnumeraciones(t *testing.T) {
	for _, u := range []string{"CJA", "PAQ", "BOL", "BOT", "BAR", "SCH"} {
		assert.True(t, entity.ValidUnidadVenta(u), u)
	}
	assert.False(t, entity.ValidUnidadVenta("KG"))
	assert.False(t, entity.ValidUnidadVenta("bot"))

	assert.True(t, entity.ValidMoneda("PEN"))
	assert.True(t, entity.ValidMoneda("USD"))
	assert.False(t, entity.ValidMoneda("COP"))

	assert.True(t, entity.ValidEstado("A"))
	assert.False(t, entity.ValidEstado("X"))
}

func TestStock_Overcommitted(t *testing.T) {
	assert.False(t, (&entity.Stock{StockFisico: 5, StockComprometido: 5}).Overcommitted())
	assert.True(t, (&entity.Stock{StockFisico: 2, StockComprometido: 3}).Overcommitted())
}
