package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/pricing"
)

// minPercentage por debajo de -100 los precios quedarían negativos.
var minPercentage = decimal.NewFromInt(-100)

// BulkUpdatePrices aplica percentageIncrease a valorVenta y precioVenta de cada código.
// Cada fila se actualiza por separado y en paralelo, sin transacción del lote: ante un fallo
// parcial las filas ya escritas se conservan y el conteo devuelto refleja lo que cambió.
// Los códigos inexistentes se omiten sin contarse.
func (uc *ProductUseCase) BulkUpdatePrices(ctx context.Context, in dto.BulkPriceUpdateRequest) (int, error) {
	if err := validation.Struct(in); err != nil {
		return 0, err
	}
	pct := *in.PercentageIncrease
	if pct.LessThan(minPercentage) {
		return 0, domain.NewValidationError("percentageIncrease no puede ser menor a -100", "percentageIncrease")
	}
	products, err := uc.products.ListByCodigos(ctx, dedupe(in.ProductIDs))
	if err != nil {
		return 0, storageErr("buscar productos", err)
	}
	return uc.fanOut(ctx, products, "actualizar precios", func(ctx context.Context, p *entity.Product) (bool, error) {
		valor, precio := pricing.ScaledPrices(p.ValorVenta, p.PrecioVenta, pct)
		return uc.products.UpdatePrices(ctx, p.Codigo, valor, precio)
	})
}

// BulkToggleEstado invierte el estado de cada código. Mismas reglas de concurrencia que BulkUpdatePrices.
func (uc *ProductUseCase) BulkToggleEstado(ctx context.Context, in dto.BulkStateUpdateRequest) (int, error) {
	if err := validation.Struct(in); err != nil {
		return 0, err
	}
	products, err := uc.products.ListByCodigos(ctx, dedupe(in.ProductIDs))
	if err != nil {
		return 0, storageErr("buscar productos", err)
	}
	return uc.fanOut(ctx, products, "cambiar estados", func(ctx context.Context, p *entity.Product) (bool, error) {
		return uc.products.UpdateEstado(ctx, p.Codigo, entity.ToggleEstado(p.Estado))
	})
}

// fanOut ejecuta fn por producto en un pool acotado y cuenta las filas efectivamente actualizadas.
func (uc *ProductUseCase) fanOut(
	ctx context.Context,
	products []*entity.Product,
	op string,
	fn func(ctx context.Context, p *entity.Product) (bool, error),
) (int, error) {
	var updated atomic.Int64
	p := pool.New().WithMaxGoroutines(uc.cfg.BulkWorkers).WithContext(ctx)
	for _, product := range products {
		p.Go(func(ctx context.Context) error {
			ok, err := fn(ctx, product)
			if err != nil {
				uc.log.Error().Err(err).Str("codigo", product.Codigo).Msg(op + ": fila fallida")
				return fmt.Errorf("%s: %w", product.Codigo, err)
			}
			if ok {
				updated.Add(1)
			}
			return nil
		})
	}
	err := p.Wait()
	count := int(updated.Load())
	uc.log.Info().Int("solicitados", len(products)).Int("actualizados", count).Msg(op)
	if err != nil {
		return count, domain.NewStorageError(op, err)
	}
	return count, nil
}

// dedupe conserva el primer orden de aparición; un código repetido se procesa una sola vez.
func dedupe(codigos []string) []string {
	seen := make(map[string]struct{}, len(codigos))
	out := make([]string, 0, len(codigos))
	for _, c := range codigos {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
