package repository

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Campos ordenables del listado de productos.
const (
	SortCreatedAt         = "createdAt"
	SortCodigo            = "codigo"
	SortDescripcion       = "descripcion"
	SortUnidadVenta       = "unidadVenta"
	SortMoneda            = "moneda"
	SortEstado            = "estado"
	SortValorVenta        = "valorVenta"
	SortTasaImpuesto      = "tasaImpuesto"
	SortPrecioVenta       = "precioVenta"
	SortSubcategoria      = "subcategoria"
	SortStockFisico       = "stockFisico"
	SortStockComprometido = "stockComprometido"
)

// SortFields campos admitidos en ProductQuery.SortBy.
var SortFields = []string{
	SortCreatedAt, SortCodigo, SortDescripcion, SortUnidadVenta, SortMoneda, SortEstado,
	SortValorVenta, SortTasaImpuesto, SortPrecioVenta, SortSubcategoria, SortStockFisico, SortStockComprometido,
}

// ProductQuery parámetros normalizados del listado paginado (ver Normalize).
type ProductQuery struct {
	Page           int
	PageSize       int
	Search         string // descripción contiene, sin distinguir mayúsculas
	SortBy         string
	SortDesc       bool
	Estado         string
	SubcategoriaID string
}

// Offset filas a saltar para la página actual; satura en math.MaxInt en vez de desbordar.
func (q ProductQuery) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Product, error)
	ListByCodigos(ctx context.Context, codigos []string) ([]*entity.Product, error)
	// Update reemplaza los campos mutables (todo salvo id, codigo y created_at).
	Update(ctx context.Context, product *entity.Product) error
	// UpdatePrices y UpdateEstado devuelven false si ninguna fila coincide con el código.
	UpdatePrices(ctx context.Context, codigo string, valorVenta, precioVenta decimal.Decimal) (bool, error)
	UpdateEstado(ctx context.Context, codigo, estado string) (bool, error)
	// Search ejecuta el listado paginado y devuelve la página más el total sin paginar.
	Search(ctx context.Context, q ProductQuery) ([]*entity.ProductRow, int, error)
	// ListActive devuelve los productos activos con su subcategoría y stock (exportación).
	ListActive(ctx context.Context) ([]*entity.ProductRow, error)
}
