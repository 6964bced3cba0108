package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// StockRepository define el puerto para el registro de stock 1:1 de cada producto.
// Usado dentro de transacciones junto con ProductRepository.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByProductID(ctx context.Context, productID string) (*entity.Stock, error)
	// Update modifica las cantidades; devuelve domain.ErrNotFound si el producto no tiene fila de stock.
	Update(ctx context.Context, stock *entity.Stock) error
}
