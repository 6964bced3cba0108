package usecase

import (
	"context"
	"fmt"
	"time"
)

// PriceListUseCase exporta los productos activos como lista de precios.
type PriceListUseCase struct {
	products  *ProductUseCase
	generator PriceListGenerator
	now       func() time.Time
}

// NewPriceListUseCase construye el caso de uso.
func NewPriceListUseCase(products *ProductUseCase, generator PriceListGenerator) *PriceListUseCase {
	return &PriceListUseCase{products: products, generator: generator, now: time.Now}
}

// Download devuelve el PDF y el nombre de archivo sugerido (lista-precios-AAAAMMDD.pdf).
func (uc *PriceListUseCase) Download(ctx context.Context) ([]byte, string, error) {
	items, err := uc.products.ListActive(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	doc, err := uc.generator.GeneratePriceListPDF(ctx, items, now)
	if err != nil {
		return nil, "", fmt.Errorf("lista de precios: %w", err)
	}
	return doc, "lista-precios-" + now.Format("20060102") + ".pdf", nil
}
