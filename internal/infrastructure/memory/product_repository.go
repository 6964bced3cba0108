package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct {
	s *Store
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.codigos[p.Codigo]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.subcategories[p.SubcategoriaID]; !ok {
		return notFound("subcategoría", p.SubcategoriaID)
	}
	r.s.products[p.ID] = *p
	r.s.codigos[p.Codigo] = p.ID
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *ProductRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.codigos[codigo]
	if !ok {
		return nil, nil
	}
	row := r.s.products[id]
	return &row, nil
}

func (r *ProductRepo) ListByCodigos(ctx context.Context, codigos []string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(codigos))
	for _, c := range codigos {
		id, ok := r.s.codigos[c]
		if !ok {
			continue
		}
		row := r.s.products[id]
		out = append(out, &row)
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.products[p.ID]
	if !ok {
		return fmt.Errorf("producto %s: %w", p.Codigo, domain.ErrNotFound)
	}
	if _, ok := r.s.subcategories[p.SubcategoriaID]; !ok {
		return notFound("subcategoría", p.SubcategoriaID)
	}
	updated := *p
	updated.ID = row.ID
	updated.Codigo = row.Codigo
	updated.CreatedAt = row.CreatedAt
	r.s.products[p.ID] = updated
	return nil
}

func (r *ProductRepo) UpdatePrices(ctx context.Context, codigo string, valorVenta, precioVenta decimal.Decimal) (bool, error) {
	return r.mutate(ctx, codigo, func(p *entity.Product) {
		p.ValorVenta = valorVenta
		p.PrecioVenta = precioVenta
	})
}

func (r *ProductRepo) UpdateEstado(ctx context.Context, codigo, estado string) (bool, error) {
	return r.mutate(ctx, codigo, func(p *entity.Product) {
		p.Estado = estado
	})
}

func (r *ProductRepo) mutate(ctx context.Context, codigo string, fn func(p *entity.Product)) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.s.codigos[codigo]
	if !ok {
		return false, nil
	}
	row := r.s.products[id]
	fn(&row)
	row.UpdatedAt = nowUTC()
	r.s.products[id] = row
	return true, nil
}

// Search mismo contrato que el listado SQL: filtros, orden por campo con desempate por id, página.
func (r *ProductRepo) Search(ctx context.Context, q repository.ProductQuery) ([]*entity.ProductRow, int, error) {
	r.s.mu.RLock()
	rows := make([]*entity.ProductRow, 0, len(r.s.products))
	for _, p := range r.s.products {
		if q.Estado != "" && p.Estado != q.Estado {
			continue
		}
		if q.SubcategoriaID != "" && p.SubcategoriaID != q.SubcategoriaID {
			continue
		}
		if !containsFold(p.Descripcion, q.Search) {
			continue
		}
		rows = append(rows, r.joinLocked(p))
	}
	r.s.mu.RUnlock()

	slices.SortFunc(rows, func(a, b *entity.ProductRow) int {
		n := compareBy(q.SortBy, a, b)
		if q.SortDesc {
			n = -n
		}
		if n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(rows)
	start := q.Offset()
	if start < 0 || start >= total {
		return []*entity.ProductRow{}, total, nil
	}
	end := start + min(q.PageSize, total-start)
	return rows[start:end], total, nil
}

// ListActive productos activos ordenados por subcategoría y código.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.ProductRow, error) {
	r.s.mu.RLock()
	rows := make([]*entity.ProductRow, 0)
	for _, p := range r.s.products {
		if p.Estado == entity.EstadoActivo {
			rows = append(rows, r.joinLocked(p))
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(rows, func(a, b *entity.ProductRow) int {
		if n := strings.Compare(deref(a.SubcategoriaNombre), deref(b.SubcategoriaNombre)); n != 0 {
			return n
		}
		return strings.Compare(a.Codigo, b.Codigo)
	})
	return rows, nil
}

// joinLocked arma la fila unida; requiere r.s.mu tomado.
func (r *ProductRepo) joinLocked(p entity.Product) *entity.ProductRow {
	row := &entity.ProductRow{Product: p}
	if sub, ok := r.s.subcategories[p.SubcategoriaID]; ok {
		nombre := sub.Nombre
		row.SubcategoriaNombre = &nombre
	}
	if st, ok := r.s.stock[p.ID]; ok {
		fisico, comprometido := st.StockFisico, st.StockComprometido
		row.StockFisico = &fisico
		row.StockComprometido = &comprometido
	}
	return row
}

func compareBy(field string, a, b *entity.ProductRow) int {
	switch field {
	case repository.SortCodigo:
		return strings.Compare(a.Codigo, b.Codigo)
	case repository.SortDescripcion:
		return strings.Compare(a.Descripcion, b.Descripcion)
	case repository.SortUnidadVenta:
		return strings.Compare(a.UnidadVenta, b.UnidadVenta)
	case repository.SortMoneda:
		return strings.Compare(a.Moneda, b.Moneda)
	case repository.SortEstado:
		return strings.Compare(a.Estado, b.Estado)
	case repository.SortValorVenta:
		return a.ValorVenta.Cmp(b.ValorVenta)
	case repository.SortTasaImpuesto:
		return a.TasaImpuesto.Cmp(b.TasaImpuesto)
	case repository.SortPrecioVenta:
		return a.PrecioVenta.Cmp(b.PrecioVenta)
	case repository.SortSubcategoria:
		return strings.Compare(deref(a.SubcategoriaNombre), deref(b.SubcategoriaNombre))
	case repository.SortStockFisico:
		return cmp.Compare(derefInt(a.StockFisico), derefInt(b.StockFisico))
	case repository.SortStockComprometido:
		return cmp.Compare(derefInt(a.StockComprometido), derefInt(b.StockComprometido))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
