package seed_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogo-api/internal/seed"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func useCases() (*usecase.CategoryUseCase, *usecase.ProductUseCase) {
	_, categories, products := useCasesOn()
	return categories, products
}

func useCasesOn() (*memory.Store, *usecase.CategoryUseCase, *usecase.ProductUseCase) {
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	images := imageupload.NewResolver(nil, 0, logger.Nop())
	return store, usecase.NewCategoryUseCase(tx, repos.Categories, repos.Subcategories, images, "", logger.Nop()),
		usecase.NewProductUseCase(tx, repos.Products, repos.Subcategories, repos.Stock, images, usecase.ProductConfig{}, logger.Nop())
}

func TestRun_CargaCatalogoCompleto(t *testing.T) {
	categories, products := useCases()
	ctx := context.Background()

	sum, err := seed.Run(ctx, categories, products, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Categories: 3, Subcategories: 9, Products: 7}, sum)

	vt001, err := products.GetByCodigo(ctx, "VT001")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("53.10").Equal(vt001.PrecioVenta))
	assert.Equal(t, 50, vt001.StockFisico)
	require.NotNil(t, vt001.Subcategoria)
	assert.Equal(t, "Vinos tintos", vt001.Subcategoria.Nombre)

	vb001, err := products.GetByCodigo(ctx, "VB001")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("44.84").Equal(vb001.PrecioVenta))

	page, err := products.List(ctx, dto.ProductListQuery{Search: "vino"})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalProducts)
}

func TestRun_SegundaVezEsDuplicado(t *testing.T) {
	categories, products := useCases()
	ctx := context.Background()
	_, err := seed.Run(ctx, categories, products, logger.Nop())
	require.NoError(t, err)

	_, err = seed.Run(ctx, categories, products, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProducts_SubcategoriaFaltante(t *testing.T) {
	_, err := seed.Products(map[string]string{"Vinos tintos": "x"})
	assert.Error(t, err)
}

func TestRun_TrasVaciarSeRecarga(t *testing.T) {
	store, categories, products := useCasesOn()
	ctx := context.Background()
	_, err := seed.Run(ctx, categories, products, logger.Nop())
	require.NoError(t, err)

	store.Reset()
	sum, err := seed.Run(ctx, categories, products, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 7, sum.Products)

	list, err := categories.List(ctx, dto.CategoryListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
