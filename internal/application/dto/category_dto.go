package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría, opcionalmente con subcategorías anidadas.
type CreateCategoryRequest struct {
	Nombre        string                   `json:"nombre" validate:"required,min=1,max=120"`
	Descripcion   string                   `json:"descripcion" validate:"max=500"`
	Icon          string                   `json:"icon" validate:"max=60"`
	Foto          string                   `json:"foto"`
	Estado        string                   `json:"estado" validate:"omitempty,oneof=A I"`
	Subcategorias []InlineSubcategoryInput `json:"subcategorias" validate:"omitempty,dive"`
}

// InlineSubcategoryInput subcategoría creada junto con su categoría.
type InlineSubcategoryInput struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=120"`
	Descripcion string `json:"descripcion" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=60"`
	Foto        string `json:"foto"`
	Estado      string `json:"estado" validate:"omitempty,oneof=A I"`
}

// UpdateCategoryRequest reemplazo completo de una categoría. Estado vacío conserva el actual.
type UpdateCategoryRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=120"`
	Descripcion string `json:"descripcion" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=60"`
	Foto        string `json:"foto"`
	Estado      string `json:"estado" validate:"omitempty,oneof=A I"`
}

// CategoryListQuery filtros del listado de categorías.
type CategoryListQuery struct {
	Nombre string `query:"nombre"`
	Estado string `query:"estado"`
}

// CategoryResponse salida de una categoría con sus subcategorías (más recientes primero).
type CategoryResponse struct {
	ID            string                `json:"id"`
	Nombre        string                `json:"nombre"`
	Descripcion   string                `json:"descripcion"`
	Icon          string                `json:"icon"`
	Foto          string                `json:"foto"`
	Estado        string                `json:"estado"`
	CreatedAt     time.Time             `json:"createdAt"`
	Subcategorias []SubcategoryResponse `json:"subcategorias"`
}

// CategorySummary categoría sin relaciones (anidada en SubcategoryResponse).
type CategorySummary struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Icon        string    `json:"icon"`
	Foto        string    `json:"foto"`
	Estado      string    `json:"estado"`
	CreatedAt   time.Time `json:"createdAt"`
}
