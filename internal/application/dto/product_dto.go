package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// PrecioVenta se acepta por compatibilidad pero se ignora: el servidor lo recalcula.
type CreateProductRequest struct {
	Codigo            string           `json:"codigo" validate:"required,min=1,max=50"`
	Descripcion       string           `json:"descripcion" validate:"required,min=1,max=255"`
	UnidadVenta       string           `json:"unidadVenta" validate:"required,oneof=CJA PAQ BOL BOT BAR SCH"`
	ConfUnidadVenta   string           `json:"confUnidadVenta" validate:"required,max=100"`
	InfoAdicional     string           `json:"infoAdicional" validate:"max=500"`
	Foto              string           `json:"foto"`
	Moneda            string           `json:"moneda" validate:"required,oneof=PEN USD EUR"`
	ValorVenta        *decimal.Decimal `json:"valorVenta" validate:"required"`
	TasaImpuesto      *decimal.Decimal `json:"tasaImpuesto" validate:"required"`
	PrecioVenta       *decimal.Decimal `json:"precioVenta,omitempty"`
	SubcategoriaID    string           `json:"subcategoriaId" validate:"required"`
	Estado            string           `json:"estado" validate:"omitempty,oneof=A I"`
	StockFisico       *int             `json:"stockFisico" validate:"omitempty,min=0"`
	StockComprometido *int             `json:"stockComprometido" validate:"omitempty,min=0"`
}

// UpdateProductRequest reemplazo completo de un producto (el código es inmutable).
// Stock nil conserva la cantidad actual; SubcategoriaID vacío conserva la subcategoría.
type UpdateProductRequest struct {
	Descripcion       string           `json:"descripcion" validate:"required,min=1,max=255"`
	UnidadVenta       string           `json:"unidadVenta" validate:"required,oneof=CJA PAQ BOL BOT BAR SCH"`
	ConfUnidadVenta   string           `json:"confUnidadVenta" validate:"required,max=100"`
	InfoAdicional     string           `json:"infoAdicional" validate:"max=500"`
	Foto              string           `json:"foto"`
	Moneda            string           `json:"moneda" validate:"required,oneof=PEN USD EUR"`
	ValorVenta        *decimal.Decimal `json:"valorVenta" validate:"required"`
	TasaImpuesto      *decimal.Decimal `json:"tasaImpuesto" validate:"required"`
	PrecioVenta       *decimal.Decimal `json:"precioVenta,omitempty"`
	SubcategoriaID    string           `json:"subcategoriaId"`
	StockFisico       *int             `json:"stockFisico" validate:"omitempty,min=0"`
	StockComprometido *int             `json:"stockComprometido" validate:"omitempty,min=0"`
}

// ProductListQuery parámetros del listado paginado.
type ProductListQuery struct {
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
	Search         string `query:"search"`
	SortBy         string `query:"sortBy"`
	SortOrder      string `query:"sortOrder"`
	Estado         string `query:"estado"`
	SubcategoriaID string `query:"subcategoriaId"`
}

// ProductResponse producto con su subcategoría y stock (create, update, get, toggle).
type ProductResponse struct {
	ID                string               `json:"id"`
	Codigo            string               `json:"codigo"`
	Descripcion       string               `json:"descripcion"`
	UnidadVenta       string               `json:"unidadVenta"`
	ConfUnidadVenta   string               `json:"confUnidadVenta"`
	InfoAdicional     string               `json:"infoAdicional"`
	Estado            string               `json:"estado"`
	Foto              string               `json:"foto"`
	Moneda            string               `json:"moneda"`
	ValorVenta        decimal.Decimal      `json:"valorVenta"`
	TasaImpuesto      decimal.Decimal      `json:"tasaImpuesto"`
	PrecioVenta       decimal.Decimal      `json:"precioVenta"`
	SubcategoriaID    string               `json:"subcategoriaId"`
	Subcategoria      *SubcategoryResponse `json:"subcategoria,omitempty"`
	StockFisico       int                  `json:"stockFisico"`
	StockComprometido int                  `json:"stockComprometido"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// ProductListItem fila aplanada del listado: subcategoría como nombre y stock como campos.
type ProductListItem struct {
	ID                string          `json:"id"`
	Codigo            string          `json:"codigo"`
	Descripcion       string          `json:"descripcion"`
	UnidadVenta       string          `json:"unidadVenta"`
	ConfUnidadVenta   string          `json:"confUnidadVenta"`
	InfoAdicional     string          `json:"infoAdicional"`
	Estado            string          `json:"estado"`
	Foto              string          `json:"foto"`
	Moneda            string          `json:"moneda"`
	ValorVenta        decimal.Decimal `json:"valorVenta"`
	TasaImpuesto      decimal.Decimal `json:"tasaImpuesto"`
	PrecioVenta       decimal.Decimal `json:"precioVenta"`
	SubcategoriaID    string          `json:"subcategoriaId"`
	Subcategoria      string          `json:"subcategoria"`
	StockFisico       int             `json:"stockFisico"`
	StockComprometido int             `json:"stockComprometido"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Products      []ProductListItem `json:"products"`
	TotalProducts int               `json:"totalProducts"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	PageSize      int               `json:"pageSize"`
}

// BulkPriceUpdateRequest incremento porcentual sobre una lista de códigos.
type BulkPriceUpdateRequest struct {
	ProductIDs         []string         `json:"productIds" validate:"required,min=1,dive,required"`
	PercentageIncrease *decimal.Decimal `json:"percentageIncrease" validate:"required"`
}

// BulkStateUpdateRequest inversión de estado sobre una lista de códigos.
type BulkStateUpdateRequest struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1,dive,required"`
}

// BulkUpdateResponse resultado de una operación masiva. UpdatedCount es la fuente de verdad.
type BulkUpdateResponse struct {
	Success      bool   `json:"success"`
	UpdatedCount int    `json:"updatedCount"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
}
