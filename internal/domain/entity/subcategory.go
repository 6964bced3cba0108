package entity

import "time"

// Subcategory segundo nivel de la taxonomía; pertenece a exactamente una Category.
type Subcategory struct {
	ID          string
	CategoriaID string
	Nombre      string
	Descripcion string
	Icon        string
	Foto        string // opcional
	Estado      string
	CreatedAt   time.Time
	Categoria   *Category // se llena solo en lecturas que incluyen la relación
}
