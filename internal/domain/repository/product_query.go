package repository

import (
	"math"
	"strings"
)

// Límites de paginación del listado de productos.
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// NewProductQuery normaliza los parámetros crudos del request:
// page < 1 → 1; pageSize < 1 → defaultPageSize (o DefaultPageSize), tope MaxPageSize;
// page se acota para que (page-1)*pageSize no desborde; sortBy desconocido → createdAt;
// sortOrder distinto de "asc" → descendente. search se conserva tal cual salvo si es solo espacios.
func NewProductQuery(page, pageSize int, search, sortBy, sortOrder string, defaultPageSize int) ProductQuery {
	if defaultPageSize < 1 {
		defaultPageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}
	if strings.TrimSpace(search) == "" {
		search = ""
	}
	if !ValidSortField(sortBy) {
		sortBy = SortCreatedAt
	}
	return ProductQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		SortBy:   sortBy,
		SortDesc: !strings.EqualFold(strings.TrimSpace(sortOrder), "asc"),
	}
}

// ValidSortField indica si f es un campo ordenable.
func ValidSortField(f string) bool {
	for _, s := range SortFields {
		if s == f {
			return true
		}
	}
	return false
}

// TotalPages ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
