package usecase

import (
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func toCategorySummary(c *entity.Category) *dto.CategorySummary {
	if c == nil {
		return nil
	}
	return &dto.CategorySummary{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Icon:        c.Icon,
		Foto:        c.Foto,
		Estado:      c.Estado,
		CreatedAt:   c.CreatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	subs := make([]dto.SubcategoryResponse, 0, len(c.Subcategorias))
	for _, s := range c.Subcategorias {
		subs = append(subs, *toSubcategoryResponse(s))
	}
	return &dto.CategoryResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Descripcion:   c.Descripcion,
		Icon:          c.Icon,
		Foto:          c.Foto,
		Estado:        c.Estado,
		CreatedAt:     c.CreatedAt,
		Subcategorias: subs,
	}
}

func toSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	if s == nil {
		return nil
	}
	return &dto.SubcategoryResponse{
		ID:          s.ID,
		CategoriaID: s.CategoriaID,
		Nombre:      s.Nombre,
		Descripcion: s.Descripcion,
		Icon:        s.Icon,
		Foto:        s.Foto,
		Estado:      s.Estado,
		CreatedAt:   s.CreatedAt,
		Categoria:   toCategorySummary(s.Categoria),
	}
}

func toProductResponse(d *entity.ProductDetail) *dto.ProductResponse {
	if d == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:              d.ID,
		Codigo:          d.Codigo,
		Descripcion:     d.Descripcion,
		UnidadVenta:     d.UnidadVenta,
		ConfUnidadVenta: d.ConfUnidadVenta,
		InfoAdicional:   d.InfoAdicional,
		Estado:          d.Estado,
		Foto:            d.Foto,
		Moneda:          d.Moneda,
		ValorVenta:      d.ValorVenta,
		TasaImpuesto:    d.TasaImpuesto,
		PrecioVenta:     d.PrecioVenta,
		SubcategoriaID:  d.SubcategoriaID,
		Subcategoria:    toSubcategoryResponse(d.Subcategoria),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Stock != nil {
		out.StockFisico = d.Stock.StockFisico
		out.StockComprometido = d.Stock.StockComprometido
	}
	return out
}
