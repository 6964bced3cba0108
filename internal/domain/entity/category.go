package entity

import "time"

// Estados posibles de categorías, subcategorías y productos.
const (
	EstadoActivo   = "A"
	EstadoInactivo = "I"
)

// ToggleEstado invierte el estado (A ↔ I). Cualquier valor distinto de A se considera inactivo.
func ToggleEstado(estado string) string {
	if estado == EstadoActivo {
		return EstadoInactivo
	}
	return EstadoActivo
}

// ValidEstado indica si estado es uno de los valores enumerados.
func ValidEstado(estado string) bool {
	return estado == EstadoActivo || estado == EstadoInactivo
}

// Category representa una categoría de productos (primer nivel de la taxonomía).
// Nunca se elimina: el estado I reemplaza al borrado.
type Category struct {
	ID            string
	Nombre        string
	Descripcion   string
	Icon          string
	Foto          string
	Estado        string // A, I
	CreatedAt     time.Time
	Subcategorias []*Subcategory // se llena solo en lecturas que incluyen la relación
}
