package dto

import "time"

// CreateSubcategoryRequest entrada para crear una subcategoría.
type CreateSubcategoryRequest struct {
	CategoriaID string `json:"categoriaId" validate:"required"`
	Nombre      string `json:"nombre" validate:"required,min=1,max=120"`
	Descripcion string `json:"descripcion" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=60"`
	Foto        string `json:"foto"`
	Estado      string `json:"estado" validate:"omitempty,oneof=A I"`
}

// UpdateSubcategoryRequest reemplazo completo. CategoriaID vacío conserva la categoría actual.
type UpdateSubcategoryRequest struct {
	CategoriaID string `json:"categoriaId"`
	Nombre      string `json:"nombre" validate:"required,min=1,max=120"`
	Descripcion string `json:"descripcion" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=60"`
	Foto        string `json:"foto"`
	Estado      string `json:"estado" validate:"omitempty,oneof=A I"`
}

// SubcategoryListQuery filtros del listado de subcategorías.
type SubcategoryListQuery struct {
	Nombre      string `query:"nombre"`
	Estado      string `query:"estado"`
	CategoriaID string `query:"categoriaId"`
}

// SubcategoryResponse salida de una subcategoría; Categoria solo en lecturas que la incluyen.
type SubcategoryResponse struct {
	ID          string           `json:"id"`
	CategoriaID string           `json:"categoriaId"`
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion"`
	Icon        string           `json:"icon"`
	Foto        string           `json:"foto"`
	Estado      string           `json:"estado"`
	CreatedAt   time.Time        `json:"createdAt"`
	Categoria   *CategorySummary `json:"categoria,omitempty"`
}
