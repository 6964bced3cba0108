package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, stock_fisico, stock_comprometido, updated_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(ctx, query, s.ProductID, s.StockFisico, s.StockComprometido)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByProductID devuelve (nil, nil) si el producto no tiene fila de stock.
func (r *StockRepo) GetByProductID(ctx context.Context, productID string) (*entity.Stock, error) {
	if !validUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT product_id, stock_fisico, stock_comprometido, updated_at
		FROM stock WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.StockFisico, &s.StockComprometido, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock SET stock_fisico = $2, stock_comprometido = $3, updated_at = now() WHERE product_id = $1`,
		s.ProductID, s.StockFisico, s.StockComprometido,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("stock de %s: %w", s.ProductID, domain.ErrNotFound)
	}
	return nil
}
