package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	// Base dedicada: los tests vacían las tablas del catálogo.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definida: se omiten los tests de integración")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dbURL}, "catalogo-api-test")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, postgres.TruncateCatalog(ctx, pool))
	return pool
}

type catalog struct {
	products      *usecase.ProductUseCase
	categories    *usecase.CategoryUseCase
	subcategories *usecase.SubcategoryUseCase
}

func newCatalog(pool *pgxpool.Pool) catalog {
	repos := postgres.Repos(pool)
	tx := postgres.NewTxRunner(pool)
	images := imageupload.NewResolver(nil, 0, logger.Nop())
	return catalog{
		products: usecase.NewProductUseCase(tx, repos.Products, repos.Subcategories, repos.Stock, images,
			usecase.ProductConfig{BulkWorkers: 4}, logger.Nop()),
		categories:    usecase.NewCategoryUseCase(tx, repos.Categories, repos.Subcategories, images, "", logger.Nop()),
		subcategories: usecase.NewSubcategoryUseCase(repos.Categories, repos.Subcategories, images, "", logger.Nop()),
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMigrate_Idempotente(t *testing.T) {
	pool := setupTestDB(t)
	n, err := postgres.Migrate(context.Background(), pool, logger.Nop())
	require.NoError(t, err)
	assert.Zero(t, n, "una segunda ejecución no aplica nada")
}

func TestCatalog_ProductosDeExtremoAExtremo(t *testing.T) {
	pool := setupTestDB(t)
	c := newCatalog(pool)
	ctx := context.Background()

	cat, err := c.categories.Create(ctx, dto.CreateCategoryRequest{
		Nombre:        "Vinos y licores",
		Subcategorias: []dto.InlineSubcategoryInput{{Nombre: "Vinos tintos"}},
	})
	require.NoError(t, err)
	sub := cat.Subcategorias[0].ID

	fisico := 50
	for i := 1; i <= 7; i++ {
		_, err := c.products.Create(ctx, dto.CreateProductRequest{
			Codigo:          fmt.Sprintf("VT%03d", i),
			Descripcion:     fmt.Sprintf("Vino Tinto %d", i),
			UnidadVenta:     "BOT",
			ConfUnidadVenta: "750ml",
			Moneda:          "PEN",
			ValorVenta:      dec("12.34"),
			TasaImpuesto:    dec("18"),
			SubcategoriaID:  sub,
			StockFisico:     &fisico,
		}, nil)
		require.NoError(t, err)
	}

	got, err := c.products.GetByCodigo(ctx, "VT001")
	require.NoError(t, err)
	assert.True(t, dec("14.56").Equal(got.PrecioVenta))
	assert.Equal(t, 50, got.StockFisico)

	page, err := c.products.List(ctx, dto.ProductListQuery{Search: "tinto", SortBy: "codigo", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalProducts)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Products, 6)
	assert.Equal(t, "VT001", page.Products[0].Codigo)
	assert.Equal(t, "Vinos tintos", page.Products[0].Subcategoria)

	past, err := c.products.List(ctx, dto.ProductListQuery{Page: 4})
	require.NoError(t, err)
	assert.Empty(t, past.Products)
	assert.Equal(t, 7, past.TotalProducts)

	n, err := c.products.BulkUpdatePrices(ctx, dto.BulkPriceUpdateRequest{
		ProductIDs: []string{"VT001", "VT002"}, PercentageIncrease: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	got, err = c.products.GetByCodigo(ctx, "VT002")
	require.NoError(t, err)
	assert.True(t, dec("13.57").Equal(got.ValorVenta))
	assert.True(t, dec("16.02").Equal(got.PrecioVenta))

	n, err = c.products.BulkToggleEstado(ctx, dto.BulkStateUpdateRequest{ProductIDs: []string{"VT003", "NOPE"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalog_ClavesInvalidasSon404(t *testing.T) {
	pool := setupTestDB(t)
	c := newCatalog(pool)
	_, err := c.categories.GetByID(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.subcategories.GetByID(context.Background(), "8f6a2d1e-1111-4c3b-9a55-0c1d2e3f4a5b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
