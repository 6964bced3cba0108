// Package catalogclient cliente HTTP de la API del catálogo con caché de lecturas.
//
// Las lecturas se cachean por la tupla completa de parámetros durante StaleTime; lecturas idénticas
// concurrentes comparten una sola llamada. Cada mutación exitosa invalida el namespace de su entidad y los de las
// entidades que la embeben (las categorías anidan subcategorías; los productos, su nombre).
// Tras leer una página de productos se precarga la siguiente en segundo plano.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// DefaultStaleTime frescura de una lectura cacheada.
const DefaultStaleTime = 5 * time.Minute

// Config opciones del cliente.
type Config struct {
	BaseURL    string
	StaleTime  time.Duration // por defecto DefaultStaleTime
	Timeout    time.Duration // por petición; por defecto 15s
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// APIError respuesta no 2xx de la API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Detail  string
	// UpdatedCount solo en fallos parciales de operaciones masivas.
	UpdatedCount int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("catalogo HTTP %d: %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("catalogo HTTP %d: %s", e.Status, e.Message)
}

// Client cliente de la API del catálogo. Seguro para uso concurrente.
type Client struct {
	base     string
	http     *http.Client
	timeout  time.Duration
	cache    *cache
	group    singleflight.Group
	log      *logger.Logger
	prefetch sync.WaitGroup
}

// New construye el cliente.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("catalogclient: BaseURL requerido")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("catalogclient: BaseURL inválido: %w", err)
	}
	if cfg.StaleTime <= 0 {
		cfg.StaleTime = DefaultStaleTime
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		timeout: cfg.Timeout,
		cache:   newCache(cfg.StaleTime, time.Now),
		log:     cfg.Logger.Named("catalogclient"),
	}, nil
}

// Invalidate descarta todas las lecturas cacheadas de ns.
func (c *Client) Invalidate(ns string) {
	c.cache.invalidate(ns)
}

// WaitPrefetch espera a que terminen las precargas en curso.
func (c *Client) WaitPrefetch() {
	c.prefetch.Wait()
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ListProducts lee una página de productos y precarga la siguiente.
func (c *Client) ListProducts(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	var out dto.ProductListResponse
	if err := c.read(ctx, NSProducts, "/api/products", productValues(q), &out); err != nil {
		return nil, err
	}
	if out.CurrentPage < out.TotalPages {
		next := q
		next.Page = out.CurrentPage + 1
		c.prefetchProducts(ctx, next)
	}
	return &out, nil
}

// GetProduct lee un producto por código.
func (c *Client) GetProduct(ctx context.Context, codigo string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.read(ctx, NSProducts, "/api/products/"+url.PathEscape(codigo), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct crea un producto.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.write(ctx, http.MethodPost, "/api/products", in, &out, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct reemplaza un producto.
func (c *Client) UpdateProduct(ctx context.Context, codigo string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.write(ctx, http.MethodPut, "/api/products/"+url.PathEscape(codigo), in, &out, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleProduct invierte el estado de un producto.
func (c *Client) ToggleProduct(ctx context.Context, codigo string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.write(ctx, http.MethodPatch, "/api/products/"+url.PathEscape(codigo), nil, &out, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkUpdatePrices aplica un incremento porcentual. En un fallo parcial el *APIError lleva UpdatedCount.
func (c *Client) BulkUpdatePrices(ctx context.Context, in dto.BulkPriceUpdateRequest) (*dto.BulkUpdateResponse, error) {
	var out dto.BulkUpdateResponse
	if err := c.write(ctx, http.MethodPost, "/api/products/update-prices", in, &out, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkUpdateState invierte el estado de varios productos.
func (c *Client) BulkUpdateState(ctx context.Context, in dto.BulkStateUpdateRequest) (*dto.BulkUpdateResponse, error) {
	var out dto.BulkUpdateResponse
	if err := c.write(ctx, http.MethodPost, "/api/products/update-state", in, &out, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

// ListCategories lista categorías con sus subcategorías.
func (c *Client) ListCategories(ctx context.Context, q dto.CategoryListQuery) ([]dto.CategoryResponse, error) {
	v := url.Values{}
	setIf(v, "nombre", q.Nombre)
	setIf(v, "estado", q.Estado)
	var out []dto.CategoryResponse
	if err := c.read(ctx, NSCategories, "/api/categories", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory lee una categoría.
func (c *Client) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.read(ctx, NSCategories, "/api/categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory crea una categoría (y sus subcategorías anidadas).
func (c *Client) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.write(ctx, http.MethodPost, "/api/categories", in, &out, NSCategories, NSSubcategories); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory reemplaza una categoría.
func (c *Client) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.write(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), in, &out, NSCategories, NSSubcategories); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleCategory invierte el estado de una categoría.
func (c *Client) ToggleCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.write(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id), nil, &out, NSCategories, NSSubcategories); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Subcategorías ─────────────────────────────────────────────────────────────

// ListSubcategories lista subcategorías con su categoría.
func (c *Client) ListSubcategories(ctx context.Context, q dto.SubcategoryListQuery) ([]dto.SubcategoryResponse, error) {
	v := url.Values{}
	setIf(v, "nombre", q.Nombre)
	setIf(v, "estado", q.Estado)
	setIf(v, "categoriaId", q.CategoriaID)
	var out []dto.SubcategoryResponse
	if err := c.read(ctx, NSSubcategories, "/api/subcategories", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSubcategory lee una subcategoría.
func (c *Client) GetSubcategory(ctx context.Context, id string) (*dto.SubcategoryResponse, error) {
	var out dto.SubcategoryResponse
	if err := c.read(ctx, NSSubcategories, "/api/subcategories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSubcategory crea una subcategoría; también invalida categorías, que la anidan.
func (c *Client) CreateSubcategory(ctx context.Context, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	var out dto.SubcategoryResponse
	if err := c.write(ctx, http.MethodPost, "/api/subcategories", in, &out, NSSubcategories, NSCategories); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSubcategory reemplaza una subcategoría. Los productos llevan su nombre: se invalidan también.
func (c *Client) UpdateSubcategory(ctx context.Context, id string, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	var out dto.SubcategoryResponse
	if err := c.write(ctx, http.MethodPut, "/api/subcategories/"+url.PathEscape(id), in, &out, NSSubcategories, NSCategories, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleSubcategory invierte el estado de una subcategoría.
func (c *Client) ToggleSubcategory(ctx context.Context, id string) (*dto.SubcategoryResponse, error) {
	var out dto.SubcategoryResponse
	if err := c.write(ctx, http.MethodPatch, "/api/subcategories/"+url.PathEscape(id), nil, &out, NSSubcategories, NSCategories, NSProducts); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// read sirve desde el caché si está fresco; si no, una sola llamada por clave y generación aunque haya
// lectores concurrentes. Una lectura posterior a una invalidación nunca se une a un vuelo anterior.
// La llamada compartida no depende del ctx de quien la inició: cada lector espera con el suyo.
func (c *Client) read(ctx context.Context, ns, path string, q url.Values, out any) error {
	target := path
	if len(q) > 0 {
		target += "?" + q.Encode() // Encode ordena las claves: la tupla define la clave
	}
	key := cacheKey(ns, target)
	if body, ok := c.cache.get(key); ok {
		return json.Unmarshal(body, out)
	}

	gen := c.cache.generation(ns)
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		body, err := c.do(fetchCtx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		c.cache.put(ns, key, gen, body)
		return body, nil
	})
	select {
	case <-ctx.Done():
		return fmt.Errorf("catalogclient: GET %s: %w", target, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), out)
	}
}

// write envía la mutación e invalida namespaces solo si tuvo éxito.
func (c *Client) write(ctx context.Context, method, path string, in, out any, namespaces ...string) error {
	var payload []byte
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("catalogclient: serializar petición: %w", err)
		}
		payload = raw
	}
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	for _, ns := range namespaces {
		c.cache.invalidate(ns)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) prefetchProducts(ctx context.Context, q dto.ProductListQuery) {
	c.prefetch.Add(1)
	go func() {
		defer c.prefetch.Done()
		var out dto.ProductListResponse
		if err := c.read(context.WithoutCancel(ctx), NSProducts, "/api/products", productValues(q), &out); err != nil {
			c.log.Warn().Err(err).Int("page", q.Page).Msg("precarga de la siguiente página falló")
		}
	}()
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	var body struct {
		Code         string `json:"code"`
		Message      string `json:"message"`
		Error        string `json:"error"`
		UpdatedCount int    `json:"updatedCount"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return &APIError{Status: status, Message: http.StatusText(status), Detail: strings.TrimSpace(string(raw))}
	}
	return &APIError{
		Status:       status,
		Code:         body.Code,
		Message:      body.Message,
		Detail:       body.Error,
		UpdatedCount: body.UpdatedCount,
	}
}

func productValues(q dto.ProductListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	setIf(v, "search", q.Search)
	setIf(v, "sortBy", q.SortBy)
	setIf(v, "sortOrder", q.SortOrder)
	setIf(v, "estado", q.Estado)
	setIf(v, "subcategoriaId", q.SubcategoriaID)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
