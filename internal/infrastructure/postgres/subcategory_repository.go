package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implementación de SubcategoryRepository sobre PostgreSQL.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

const subcategoryColumns = `id, categoria_id, nombre, descripcion, icon, foto, estado, created_at`

func scanSubcategory(row pgx.Row) (*entity.Subcategory, error) {
	var s entity.Subcategory
	err := row.Scan(&s.ID, &s.CategoriaID, &s.Nombre, &s.Descripcion, &s.Icon, &s.Foto, &s.Estado, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubcategoryRepo) Create(ctx context.Context, s *entity.Subcategory) error {
	query := `
		INSERT INTO subcategories (` + subcategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CategoriaID, s.Nombre, s.Descripcion, s.Icon, s.Foto, s.Estado, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("la categoría no existe", "categoriaId")
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) GetByID(ctx context.Context, id string) (*entity.Subcategory, error) {
	if !validUUID(id) {
		return nil, nil
	}
	s, err := scanSubcategory(r.q.QueryRow(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return s, nil
}

func (r *SubcategoryRepo) Update(ctx context.Context, s *entity.Subcategory) error {
	query := `
		UPDATE subcategories SET categoria_id = $2, nombre = $3, descripcion = $4, icon = $5, foto = $6, estado = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.CategoriaID, s.Nombre, s.Descripcion, s.Icon, s.Foto, s.Estado)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("la categoría no existe", "categoriaId")
		}
		return fmt.Errorf("update subcategory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update subcategory %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SubcategoryRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE subcategories SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update subcategory estado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update subcategory %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List filtra por nombre (ILIKE), estado y categorías; más recientes primero.
func (r *SubcategoryRepo) List(ctx context.Context, f repository.SubcategoryFilter) ([]*entity.Subcategory, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE 1=1`
	var args []any
	pos := 1
	if f.Nombre != "" {
		query += fmt.Sprintf(" AND nombre ILIKE $%d", pos)
		args = append(args, "%"+escapeLike(f.Nombre)+"%")
		pos++
	}
	if f.Estado != "" {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, f.Estado)
		pos++
	}
	if len(f.CategoriaIDs) > 0 {
		ids := make([]string, 0, len(f.CategoriaIDs))
		for _, id := range f.CategoriaIDs {
			if validUUID(id) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return []*entity.Subcategory{}, nil
		}
		query += fmt.Sprintf(" AND categoria_id = ANY($%d::uuid[])", pos)
		args = append(args, ids)
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Subcategory, 0)
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
