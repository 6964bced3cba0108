package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// CategoryRepo implementa repository.CategoryRepository en memoria.
type CategoryRepo struct {
	s *Store
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	row := *c
	row.Subcategorias = nil
	r.s.categories[c.ID] = row
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.categories[c.ID]
	if !ok {
		return fmt.Errorf("categoría %s: %w", c.ID, domain.ErrNotFound)
	}
	row.Nombre = c.Nombre
	row.Descripcion = c.Descripcion
	row.Icon = c.Icon
	row.Foto = c.Foto
	row.Estado = c.Estado
	r.s.categories[c.ID] = row
	return nil
}

func (r *CategoryRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.categories[id]
	if !ok {
		return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	row.Estado = estado
	r.s.categories[id] = row
	return nil
}

// List más recientes primero; empate por id.
func (r *CategoryRepo) List(ctx context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, row := range r.s.categories {
		if f.Estado != "" && row.Estado != f.Estado {
			continue
		}
		if !containsFold(row.Nombre, f.Nombre) {
			continue
		}
		c := row
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *entity.Category) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
