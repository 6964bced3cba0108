package usecase_test

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
}

type fakeImages struct {
	mu       sync.Mutex
	n        int
	uploaded []string
	deleted  []string
}

func (f *fakeImages) Upload(_ context.Context, _ ports.Image, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	url := "https://res.example.com/" + folder + "/" + string(rune('a'+f.n-1)) + ".png"
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return true, nil
}

type fixture struct {
	store         *memory.Store
	images        *fakeImages
	products      *usecase.ProductUseCase
	categories    *usecase.CategoryUseCase
	subcategories *usecase.SubcategoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	images := &fakeImages{}
	resolver := imageupload.NewResolver(images, 0, logger.Nop())
	return &fixture{
		store:  store,
		images: images,
		products: usecase.NewProductUseCase(tx, repos.Products, repos.Subcategories, repos.Stock, resolver,
			usecase.ProductConfig{ImageFolder: "catalogo/productos"}, logger.Nop()),
		categories:    usecase.NewCategoryUseCase(tx, repos.Categories, repos.Subcategories, resolver, "", logger.Nop()),
		subcategories: usecase.NewSubcategoryUseCase(repos.Categories, repos.Subcategories, resolver, "", logger.Nop()),
	}
}

// subcategory crea Bebidas > Vinos y devuelve el id de la subcategoría.
func (f *fixture) subcategory(t *testing.T) string {
	t.Helper()
	cat, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{
		Nombre:        "Bebidas",
		Subcategorias: []dto.InlineSubcategoryInput{{Nombre: "Vinos"}},
	})
	require.NoError(t, err)
	require.Len(t, cat.Subcategorias, 1)
	return cat.Subcategorias[0].ID
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(v int) *int { return &v }

func productReq(codigo, subID, valor, tasa string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Codigo:          codigo,
		Descripcion:     "Vino tinto " + codigo,
		UnidadVenta:     "BOT",
		ConfUnidadVenta: "750ml",
		Moneda:          "PEN",
		ValorVenta:      dec(valor),
		TasaImpuesto:    dec(tasa),
		SubcategoriaID:  subID,
		StockFisico:     intp(50),
	}
}
