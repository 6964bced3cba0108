package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// CategoryFilter criterios de listado de categorías. Campos vacíos no filtran.
type CategoryFilter struct {
	Nombre string // contiene, sin distinguir mayúsculas
	Estado string // A, I
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	UpdateEstado(ctx context.Context, id, estado string) error
	List(ctx context.Context, filter CategoryFilter) ([]*entity.Category, error)
}
