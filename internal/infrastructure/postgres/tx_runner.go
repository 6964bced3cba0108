package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner agrupa escrituras del catálogo (producto + stock, categoría + subcategorías) en una tx.
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxRunner usa READ COMMITTED: cada transacción toca filas nuevas o una fila por clave.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// Run ejecuta fn con repositorios atados a la tx. Error (o panic) de fn => rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos usecase.CatalogRepos) error) error {
	return pgx.BeginTxFunc(ctx, r.pool, r.opts, func(tx pgx.Tx) error {
		return fn(Repos(tx))
	})
}

// Repos repositorios del catálogo sobre q: el pool para lecturas sueltas, una tx dentro de Run.
func Repos(q Querier) usecase.CatalogRepos {
	return usecase.CatalogRepos{
		Categories:    NewCategoryRepository(q),
		Subcategories: NewSubcategoryRepository(q),
		Products:      NewProductRepository(q),
		Stock:         NewStockRepository(q),
	}
}
