package repository_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

func TestNewProductQuery_Defaults(t *testing.T) {
	q := repository.NewProductQuery(0, 0, "", "", "", 0)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, repository.DefaultPageSize, q.PageSize)
	assert.Equal(t, "", q.Search)
	assert.Equal(t, repository.SortCreatedAt, q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 0, q.Offset())
}

func TestNewProductQuery_SortDesconocidoVuelveACreatedAt(t *testing.T) {
	q := repository.NewProductQuery(2, 10, "  vino ", "precio; DROP TABLE products", "ASC", 6)
	assert.Equal(t, repository.SortCreatedAt, q.SortBy)
	assert.False(t, q.SortDesc, "ASC sin distinguir mayúsculas es ascendente")
	assert.Equal(t, "  vino ", q.Search, "el término se busca tal cual")
	assert.Equal(t, 10, q.Offset())
}

func TestNewProductQuery_TopeDePagina(t *testing.T) {
	q := repository.NewProductQuery(1, 5000, "", repository.SortPrecioVenta, "desc", 6)
	assert.Equal(t, repository.MaxPageSize, q.PageSize)
	assert.Equal(t, repository.SortPrecioVenta, q.SortBy)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, repository.TotalPages(0, 6))
	assert.Equal(t, 1, repository.TotalPages(6, 6))
	assert.Equal(t, 2, repository.TotalPages(7, 6))
	assert.Equal(t, 0, repository.TotalPages(10, 0))
}

func TestNewProductQuery_BusquedaSoloEspaciosEsVacia(t *testing.T) {
	q := repository.NewProductQuery(1, 6, "   ", "", "", 6)
	assert.Equal(t, "", q.Search)
}

func TestNewProductQuery_PaginaEnormeNoDesborda(t *testing.T) {
	for _, tc := range []struct{ page, size int }{
		{math.MaxInt, 6},
		{1<<61 + 1, 8},
		{math.MaxInt, 100},
	} {
		q := repository.NewProductQuery(tc.page, tc.size, "", "", "", 6)
		assert.GreaterOrEqual(t, q.Offset(), 0, "page=%d size=%d", tc.page, tc.size)
		assert.Greater(t, q.Offset(), 1<<40, "page=%d size=%d", tc.page, tc.size)
	}
}

func TestOffset_Satura(t *testing.T) {
	q := repository.ProductQuery{Page: math.MaxInt, PageSize: 100}
	assert.Equal(t, math.MaxInt, q.Offset())
	assert.Equal(t, 0, repository.ProductQuery{Page: 0, PageSize: 6}.Offset())
}
