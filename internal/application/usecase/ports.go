package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// CatalogRepos repositorios atados a una misma transacción.
type CatalogRepos struct {
	Categories    repository.CategoryRepository
	Subcategories repository.SubcategoryRepository
	Products      repository.ProductRepository
	Stock         repository.StockRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que producto y stock se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos CatalogRepos) error) error
}

// PriceListGenerator genera el documento de la lista de precios (implementado con Maroto en infrastructure/pdf).
type PriceListGenerator interface {
	GeneratePriceListPDF(ctx context.Context, items []dto.ProductListItem, issuedAt time.Time) ([]byte, error)
}
