package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// StockRepo implementa repository.StockRepository en memoria.
type StockRepo struct {
	s *Store
}

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) Create(ctx context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[st.ProductID]; !ok {
		return notFound("producto", st.ProductID)
	}
	if _, ok := r.s.stock[st.ProductID]; ok {
		return domain.ErrDuplicate
	}
	r.s.stock[st.ProductID] = *st
	return nil
}

func (r *StockRepo) GetByProductID(ctx context.Context, productID string) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.stock[productID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *StockRepo) Update(ctx context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stock[st.ProductID]; !ok {
		return fmt.Errorf("stock de %s: %w", st.ProductID, domain.ErrNotFound)
	}
	r.s.stock[st.ProductID] = *st
	return nil
}
