package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, codigo, descripcion, unidad_venta, conf_unidad_venta, info_adicional, estado, foto,
	moneda, valor_venta, tasa_impuesto, precio_venta, subcategoria_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Descripcion, &p.UnidadVenta, &p.ConfUnidadVenta, &p.InfoAdicional, &p.Estado, &p.Foto,
		&p.Moneda, &p.ValorVenta, &p.TasaImpuesto, &p.PrecioVenta, &p.SubcategoriaID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProductRow(rows pgx.Rows) (*entity.ProductRow, error) {
	var r entity.ProductRow
	err := rows.Scan(
		&r.ID, &r.Codigo, &r.Descripcion, &r.UnidadVenta, &r.ConfUnidadVenta, &r.InfoAdicional, &r.Estado, &r.Foto,
		&r.Moneda, &r.ValorVenta, &r.TasaImpuesto, &r.PrecioVenta, &r.SubcategoriaID, &r.CreatedAt, &r.UpdatedAt,
		&r.SubcategoriaNombre, &r.StockFisico, &r.StockComprometido,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste un nuevo producto. Un código repetido devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Descripcion, p.UnidadVenta, p.ConfUnidadVenta, p.InfoAdicional, p.Estado, p.Foto,
		p.Moneda, p.ValorVenta, p.TasaImpuesto, p.PrecioVenta, p.SubcategoriaID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("la subcategoría no existe", "subcategoriaId")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validUUID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCodigo obtiene un producto por su código de negocio.
func (r *ProductRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE codigo = $1`, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by codigo: %w", err)
	}
	return p, nil
}

// ListByCodigos devuelve los productos existentes entre codigos; los desconocidos se omiten.
func (r *ProductRepo) ListByCodigos(ctx context.Context, codigos []string) ([]*entity.Product, error) {
	if len(codigos) == 0 {
		return []*entity.Product{}, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE codigo = ANY($1) ORDER BY codigo`, codigos)
	if err != nil {
		return nil, fmt.Errorf("list products by codigo: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0, len(codigos))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables; id, codigo y created_at no cambian.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET descripcion = $2, unidad_venta = $3, conf_unidad_venta = $4, info_adicional = $5,
			estado = $6, foto = $7, moneda = $8, valor_venta = $9, tasa_impuesto = $10, precio_venta = $11,
			subcategoria_id = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Descripcion, p.UnidadVenta, p.ConfUnidadVenta, p.InfoAdicional,
		p.Estado, p.Foto, p.Moneda, p.ValorVenta, p.TasaImpuesto, p.PrecioVenta,
		p.SubcategoriaID, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("la subcategoría no existe", "subcategoriaId")
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update product %s: %w", p.Codigo, domain.ErrNotFound)
	}
	return nil
}

// UpdatePrices escribe los precios ya escalados de un producto.
func (r *ProductRepo) UpdatePrices(ctx context.Context, codigo string, valorVenta, precioVenta decimal.Decimal) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET valor_venta = $2, precio_venta = $3, updated_at = now() WHERE codigo = $1`,
		codigo, valorVenta, precioVenta,
	)
	if err != nil {
		return false, fmt.Errorf("update product prices: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// UpdateEstado fija el estado de un producto.
func (r *ProductRepo) UpdateEstado(ctx context.Context, codigo, estado string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET estado = $2, updated_at = now() WHERE codigo = $1`,
		codigo, estado,
	)
	if err != nil {
		return false, fmt.Errorf("update product estado: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Search ejecuta el listado paginado (ver buildProductSearch) y el conteo total sin paginar.
func (r *ProductRepo) Search(ctx context.Context, q repository.ProductQuery) ([]*entity.ProductRow, int, error) {
	s := buildProductSearch(q)

	var total int
	if err := r.q.QueryRow(ctx, s.countSQL, s.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	list, err := r.queryRows(ctx, s.listSQL, s.listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	return list, total, nil
}

// ListActive productos activos con subcategoría y stock, por subcategoría y código.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.ProductRow, error) {
	query := productRowSelect + ` WHERE p.estado = 'A' ORDER BY COALESCE(s.nombre, ''), p.codigo`
	list, err := r.queryRows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return list, nil
}

func (r *ProductRepo) queryRows(ctx context.Context, query string, args ...any) ([]*entity.ProductRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*entity.ProductRow, 0)
	for rows.Next() {
		row, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
