package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

func validProduct() dto.CreateProductRequest {
	v := decimal.NewFromInt(100)
	t := decimal.NewFromInt(18)
	return dto.CreateProductRequest{
		Codigo: "VT001", Descripcion: "Vino tinto", UnidadVenta: "BOT", ConfUnidadVenta: "750ml",
		Moneda: "PEN", ValorVenta: &v, TasaImpuesto: &t, SubcategoriaID: "sub-1",
	}
}

func TestStruct_ProductoValido(t *testing.T) {
	in := validProduct()
	assert.NoError(t, validation.Struct(in))
}

func TestStruct_CamposFaltantes(t *testing.T) {
	in := validProduct()
	in.Codigo = ""
	in.ValorVenta = nil
	err := validation.Struct(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"codigo", "valorVenta"}, verr.Fields)
}

func TestStruct_EnumInvalido(t *testing.T) {
	in := validProduct()
	in.Moneda = "COP"
	in.UnidadVenta = "KG"
	msgs := validation.Messages(in)
	assert.Contains(t, msgs, "moneda")
	assert.Contains(t, msgs, "unidadVenta")
	assert.Contains(t, msgs["moneda"], "PEN USD EUR")
}

func TestStruct_BulkVacio(t *testing.T) {
	err := validation.Struct(dto.BulkStateUpdateRequest{ProductIDs: []string{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestStruct_SubcategoriasAnidadas(t *testing.T) {
	in := dto.CreateCategoryRequest{
		Nombre:        "Bebidas",
		Subcategorias: []dto.InlineSubcategoryInput{{Nombre: ""}},
	}
	var verr *domain.ValidationError
	require.True(t, errors.As(validation.Struct(in), &verr))
	assert.Equal(t, []string{"subcategorias[0].nombre"}, verr.Fields)
}
