package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// productSortColumns lista blanca campo → expresión SQL. Nada del request se interpola en el ORDER BY.
var productSortColumns = map[string]string{
	repository.SortCreatedAt:         "p.created_at",
	repository.SortCodigo:            "p.codigo",
	repository.SortDescripcion:       "p.descripcion",
	repository.SortUnidadVenta:       "p.unidad_venta",
	repository.SortMoneda:            "p.moneda",
	repository.SortEstado:            "p.estado",
	repository.SortValorVenta:        "p.valor_venta",
	repository.SortTasaImpuesto:      "p.tasa_impuesto",
	repository.SortPrecioVenta:       "p.precio_venta",
	repository.SortSubcategoria:      "COALESCE(s.nombre, '')",
	repository.SortStockFisico:       "COALESCE(st.stock_fisico, 0)",
	repository.SortStockComprometido: "COALESCE(st.stock_comprometido, 0)",
}

const productRowSelect = `
		SELECT p.id, p.codigo, p.descripcion, p.unidad_venta, p.conf_unidad_venta, p.info_adicional,
		       p.estado, p.foto, p.moneda, p.valor_venta, p.tasa_impuesto, p.precio_venta,
		       p.subcategoria_id, p.created_at, p.updated_at,
		       s.nombre, st.stock_fisico, st.stock_comprometido
		FROM products p
		LEFT JOIN subcategories s ON s.id = p.subcategoria_id
		LEFT JOIN stock st ON st.product_id = p.id`

// productSearch consulta de página y de conteo con sus argumentos.
type productSearch struct {
	listSQL   string
	listArgs  []any
	countSQL  string
	countArgs []any
}

// buildProductSearch compone el listado paginado: filtros opcionales, orden de la lista blanca
// con desempate por p.id, LIMIT/OFFSET. El conteo comparte el WHERE.
func buildProductSearch(q repository.ProductQuery) productSearch {
	var where []string
	var args []any
	pos := 1
	if q.Search != "" {
		where = append(where, fmt.Sprintf("p.descripcion ILIKE $%d", pos))
		args = append(args, "%"+escapeLike(q.Search)+"%")
		pos++
	}
	if q.Estado != "" {
		where = append(where, fmt.Sprintf("p.estado = $%d", pos))
		args = append(args, q.Estado)
		pos++
	}
	if q.SubcategoriaID != "" {
		where = append(where, fmt.Sprintf("p.subcategoria_id::text = $%d", pos))
		args = append(args, q.SubcategoriaID)
		pos++
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := productSortColumns[q.SortBy]
	if !ok {
		col = productSortColumns[repository.SortCreatedAt]
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}

	listArgs := append(append([]any{}, args...), q.PageSize, q.Offset())
	return productSearch{
		listSQL: productRowSelect + whereSQL +
			fmt.Sprintf(" ORDER BY %s %s, p.id ASC LIMIT $%d OFFSET $%d", col, dir, pos, pos+1),
		listArgs:  listArgs,
		countSQL:  `SELECT COUNT(*) FROM products p` + whereSQL,
		countArgs: args,
	}
}
