package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type stubImages struct{}

func (stubImages) Upload(_ context.Context, img ports.Image, folder string) (string, error) {
	return "https://res.example.com/" + folder + "/" + img.Filename, nil
}

func (stubImages) Delete(context.Context, string) (bool, error) { return true, nil }

type stubPDF struct{}

func (stubPDF) GeneratePriceListPDF(context.Context, []dto.ProductListItem, time.Time) ([]byte, error) {
	return []byte("%PDF-1.3 lista"), nil
}

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	images := imageupload.NewResolver(stubImages{}, 0, logger.Nop())

	productUC := usecase.NewProductUseCase(tx, repos.Products, repos.Subcategories, repos.Stock, images,
		usecase.ProductConfig{ImageFolder: "catalogo/productos"}, logger.Nop())

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:   "catalogo-api",
		ProductUC:     productUC,
		CategoryUC:    usecase.NewCategoryUseCase(tx, repos.Categories, repos.Subcategories, images, "", logger.Nop()),
		SubcategoryUC: usecase.NewSubcategoryUseCase(repos.Categories, repos.Subcategories, images, "", logger.Nop()),
		PriceListUC:   usecase.NewPriceListUseCase(productUC, stubPDF{}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// seedSubcategory crea Bebidas > Vinos por la API y devuelve el id de Vinos.
func seedSubcategory(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{
		"nombre":        "Bebidas",
		"subcategorias": []map[string]any{{"nombre": "Vinos"}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var cat dto.CategoryResponse
	decode(t, resp, &cat)
	require.Len(t, cat.Subcategorias, 1)
	return cat.Subcategorias[0].ID
}

func productBody(codigo, subID string) map[string]any {
	return map[string]any{
		"codigo":          codigo,
		"descripcion":     "Vino tinto " + codigo,
		"unidadVenta":     "BOT",
		"confUnidadVenta": "750ml",
		"moneda":          "PEN",
		"valorVenta":      12.34,
		"tasaImpuesto":    18,
		"precioVenta":     999,
		"subcategoriaId":  subID,
		"stockFisico":     50,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "catalogo-api", body["service"])
}

func TestProduct_CrearYLeer(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/products", productBody("VT001", sub))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	decode(t, resp, &created)
	assert.True(t, decimal.RequireFromString("14.56").Equal(created.PrecioVenta), "el precio enviado se ignora")

	resp = doJSON(t, app, http.MethodGet, "/api/products/VT001", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.ProductResponse
	decode(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 50, got.StockFisico)
	require.NotNil(t, got.Subcategoria)
	assert.Equal(t, "Vinos", got.Subcategoria.Nombre)
}

func TestProduct_CamposFaltantes400(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"codigo": "X1"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body dto.ValidationErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "descripcion")
	assert.Contains(t, body.Fields, "valorVenta")
	assert.NotEmpty(t, body.Error, "el 400 incluye el detalle técnico")
}

func TestProduct_Duplicado409(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)
	require.Equal(t, fiber.StatusCreated, doJSON(t, app, http.MethodPost, "/api/products", productBody("VT001", sub)).StatusCode)

	resp := doJSON(t, app, http.MethodPost, "/api/products", productBody("VT001", sub))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Error)
}

func TestProduct_NoExiste404(t *testing.T) {
	app := buildTestApp(t)
	for _, method := range []string{http.MethodGet, http.MethodPatch} {
		resp := doJSON(t, app, method, "/api/products/NOPE", nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode, method)
		var body dto.ErrorResponse
		decode(t, resp, &body)
		assert.Equal(t, "Producto no encontrado", body.Message)
		assert.Contains(t, body.Error, "NOPE", method)
	}
}

func TestProduct_ToggleIdaYVuelta(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)
	doJSON(t, app, http.MethodPost, "/api/products", productBody("VT001", sub))

	for _, want := range []string{"I", "A"} {
		resp := doJSON(t, app, http.MethodPatch, "/api/products/VT001", map[string]string{"estado": "A"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var p dto.ProductResponse
		decode(t, resp, &p)
		assert.Equal(t, want, p.Estado, "el estado declarado por el cliente se ignora")
	}
}

func TestProduct_MultipartConFoto(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)

	data, err := json.Marshal(productBody("VT009", sub))
	require.NoError(t, err)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("data", string(data)))
	part, err := w.CreateFormFile("foto", "botella.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var p dto.ProductResponse
	decode(t, resp, &p)
	assert.Equal(t, "https://res.example.com/catalogo/productos/botella.png", p.Foto)
}

func TestProduct_ListadoPaginaFueraDeRango(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)
	for _, c := range []string{"VT001", "VT002", "VT003"} {
		doJSON(t, app, http.MethodPost, "/api/products", productBody(c, sub))
	}

	resp := doJSON(t, app, http.MethodGet, "/api/products?page=1&limit=2&sortBy=codigo&sortOrder=asc", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page dto.ProductListResponse
	decode(t, resp, &page)
	assert.Equal(t, 3, page.TotalProducts)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "VT001", page.Products[0].Codigo)
	assert.Equal(t, "Vinos", page.Products[0].Subcategoria)

	resp = doJSON(t, app, http.MethodGet, "/api/products?page=9&limit=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &page)
	assert.Empty(t, page.Products)
	assert.Equal(t, 3, page.TotalProducts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones masivas
// ──────────────────────────────────────────────────────────────────────────────

func TestBulk_ActualizarPrecios(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)
	doJSON(t, app, http.MethodPost, "/api/products", productBody("VT001", sub))
	doJSON(t, app, http.MethodPost, "/api/products", productBody("VT002", sub))

	resp := doJSON(t, app, http.MethodPost, "/api/products/update-prices", map[string]any{
		"productIds":         []string{"VT001", "VT002", "NOPE"},
		"percentageIncrease": 10,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.BulkUpdateResponse
	decode(t, resp, &out)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.UpdatedCount)
	assert.Equal(t, "2 productos actualizados correctamente", out.Message)

	resp = doJSON(t, app, http.MethodGet, "/api/products/VT002", nil)
	var p dto.ProductResponse
	decode(t, resp, &p)
	assert.True(t, decimal.RequireFromString("13.57").Equal(p.ValorVenta))
	assert.True(t, decimal.RequireFromString("16.02").Equal(p.PrecioVenta))
}

func TestBulk_EstadoListaVacia400(t *testing.T) {
	app := buildTestApp(t)
	sub := seedSubcategory(t, app)
	doJSON(t, app, http.MethodPost, "/api/products", productBody("VT001", sub))

	resp := doJSON(t, app, http.MethodPost, "/api/products/update-state", map[string]any{"productIds": []string{}})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var verr dto.ValidationErrorResponse
	decode(t, resp, &verr)
	assert.NotEmpty(t, verr.Error)

	resp = doJSON(t, app, http.MethodGet, "/api/products/VT001", nil)
	var p dto.ProductResponse
	decode(t, resp, &p)
	assert.Equal(t, "A", p.Estado, "ninguna fila cambia")
}

func TestBulk_PreciosSinPorcentaje400(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/products/update-prices", map[string]any{"productIds": []string{"VT001"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBulk_CuerpoInvalido400(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/products/update-state", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPriceListPDF(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products/price-list.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "lista-precios-")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y subcategorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_ToggleBebidas(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"nombre": "Bebidas"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var cat dto.CategoryResponse
	decode(t, resp, &cat)
	assert.Equal(t, "A", cat.Estado)

	resp = doJSON(t, app, http.MethodPatch, "/api/categories/"+cat.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &cat)
	assert.Equal(t, "I", cat.Estado)

	resp = doJSON(t, app, http.MethodGet, "/api/categories?estado=I", nil)
	var list []dto.CategoryResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Bebidas", list[0].Nombre)
}

func TestCategory_NoExiste404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/categories/8f6a2d1e-1111-4c3b-9a55-0c1d2e3f4a5b", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "Categoría no encontrada", body.Message)
	assert.NotEmpty(t, body.Error)
}

func TestSubcategory_CrearConCategoria(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"nombre": "Lácteos"})
	var cat dto.CategoryResponse
	decode(t, resp, &cat)

	resp = doJSON(t, app, http.MethodPost, "/api/subcategories", map[string]any{"categoriaId": cat.ID, "nombre": "Quesos"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var sub dto.SubcategoryResponse
	decode(t, resp, &sub)

	resp = doJSON(t, app, http.MethodGet, "/api/subcategories/"+sub.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &sub)
	require.NotNil(t, sub.Categoria)
	assert.Equal(t, "Lácteos", sub.Categoria.Nombre)

	resp = doJSON(t, app, http.MethodPost, "/api/subcategories", map[string]any{
		"categoriaId": "8f6a2d1e-1111-4c3b-9a55-0c1d2e3f4a5b", "nombre": "Huérfana",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRutaDesconocida404JSON(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/nada", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
