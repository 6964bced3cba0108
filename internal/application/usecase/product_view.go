package usecase

import (
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ShapeProductRow aplana una fila unida (producto + subcategoría + stock) para el listado.
// Es total: relaciones ausentes producen "" y 0, nunca valores nulos.
func ShapeProductRow(row *entity.ProductRow) dto.ProductListItem {
	if row == nil {
		return dto.ProductListItem{}
	}
	item := dto.ProductListItem{
		ID:              row.ID,
		Codigo:          row.Codigo,
		Descripcion:     row.Descripcion,
		UnidadVenta:     row.UnidadVenta,
		ConfUnidadVenta: row.ConfUnidadVenta,
		InfoAdicional:   row.InfoAdicional,
		Estado:          row.Estado,
		Foto:            row.Foto,
		Moneda:          row.Moneda,
		ValorVenta:      row.ValorVenta,
		TasaImpuesto:    row.TasaImpuesto,
		PrecioVenta:     row.PrecioVenta,
		SubcategoriaID:  row.SubcategoriaID,
		CreatedAt:       row.CreatedAt,
	}
	if row.SubcategoriaNombre != nil {
		item.Subcategoria = *row.SubcategoriaNombre
	}
	if row.StockFisico != nil {
		item.StockFisico = *row.StockFisico
	}
	if row.StockComprometido != nil {
		item.StockComprometido = *row.StockComprometido
	}
	return item
}

// ShapeProductRows aplica ShapeProductRow a toda la página; nunca devuelve nil.
func ShapeProductRows(rows []*entity.ProductRow) []dto.ProductListItem {
	items := make([]dto.ProductListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ShapeProductRow(r))
	}
	return items
}
