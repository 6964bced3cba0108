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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, nombre, descripcion, icon, foto, estado, created_at`

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Icon, c.Foto, c.Estado, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id).Scan(
		&c.ID, &c.Nombre, &c.Descripcion, &c.Icon, &c.Foto, &c.Estado, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET nombre = $2, descripcion = $3, icon = $4, foto = $5, estado = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Icon, c.Foto, c.Estado)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update category %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *CategoryRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE categories SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update category estado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update category %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List filtra por nombre (ILIKE) y estado; más recientes primero.
func (r *CategoryRepo) List(ctx context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE 1=1`
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
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Icon, &c.Foto, &c.Estado, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
