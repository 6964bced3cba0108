package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// SubcategoryFilter criterios de listado de subcategorías. Campos vacíos no filtran.
type SubcategoryFilter struct {
	Nombre       string
	Estado       string
	CategoriaIDs []string
}

// SubcategoryRepository define el puerto de persistencia para Subcategory (DIP).
// List ordena por created_at descendente.
type SubcategoryRepository interface {
	Create(ctx context.Context, sub *entity.Subcategory) error
	GetByID(ctx context.Context, id string) (*entity.Subcategory, error)
	Update(ctx context.Context, sub *entity.Subcategory) error
	UpdateEstado(ctx context.Context, id, estado string) error
	List(ctx context.Context, filter SubcategoryFilter) ([]*entity.Subcategory, error)
}
