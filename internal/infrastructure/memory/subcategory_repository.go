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

// SubcategoryRepo implementa repository.SubcategoryRepository en memoria.
type SubcategoryRepo struct {
	s *Store
}

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

func (r *SubcategoryRepo) Create(ctx context.Context, sub *entity.Subcategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subcategories[sub.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.categories[sub.CategoriaID]; !ok {
		return notFound("categoría", sub.CategoriaID)
	}
	row := *sub
	row.Categoria = nil
	r.s.subcategories[sub.ID] = row
	return nil
}

func (r *SubcategoryRepo) GetByID(ctx context.Context, id string) (*entity.Subcategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.subcategories[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *SubcategoryRepo) Update(ctx context.Context, sub *entity.Subcategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.subcategories[sub.ID]
	if !ok {
		return fmt.Errorf("subcategoría %s: %w", sub.ID, domain.ErrNotFound)
	}
	if _, ok := r.s.categories[sub.CategoriaID]; !ok {
		return notFound("categoría", sub.CategoriaID)
	}
	row.CategoriaID = sub.CategoriaID
	row.Nombre = sub.Nombre
	row.Descripcion = sub.Descripcion
	row.Icon = sub.Icon
	row.Foto = sub.Foto
	row.Estado = sub.Estado
	r.s.subcategories[sub.ID] = row
	return nil
}

func (r *SubcategoryRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.subcategories[id]
	if !ok {
		return fmt.Errorf("subcategoría %s: %w", id, domain.ErrNotFound)
	}
	row.Estado = estado
	r.s.subcategories[id] = row
	return nil
}

// List más recientes primero; empate por id.
func (r *SubcategoryRepo) List(ctx context.Context, f repository.SubcategoryFilter) ([]*entity.Subcategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Subcategory, 0)
	for _, row := range r.s.subcategories {
		if f.Estado != "" && row.Estado != f.Estado {
			continue
		}
		if len(f.CategoriaIDs) > 0 && !slices.Contains(f.CategoriaIDs, row.CategoriaID) {
			continue
		}
		if !containsFold(row.Nombre, f.Nombre) {
			continue
		}
		sub := row
		out = append(out, &sub)
	}
	slices.SortFunc(out, func(a, b *entity.Subcategory) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
