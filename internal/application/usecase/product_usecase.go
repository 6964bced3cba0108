package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/pricing"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ProductConfig parámetros de comportamiento del catálogo de productos.
type ProductConfig struct {
	DefaultPageSize int    // tamaño de página si el request no lo indica
	BulkWorkers     int    // actualizaciones concurrentes en operaciones masivas
	ImageFolder     string // carpeta del host de imágenes para fotos de productos
}

// ProductUseCase casos de uso de productos: CRUD, listado paginado y operaciones masivas.
// PrecioVenta siempre se recalcula aquí; nunca se confía en el valor enviado por el cliente.
type ProductUseCase struct {
	tx            TxRunner
	products      repository.ProductRepository
	subcategories repository.SubcategoryRepository
	stock         repository.StockRepository
	images        *imageupload.Resolver
	cfg           ProductConfig
	log           *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	subcategories repository.SubcategoryRepository,
	stock repository.StockRepository,
	images *imageupload.Resolver,
	cfg ProductConfig,
	log *logger.Logger,
) *ProductUseCase {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = repository.DefaultPageSize
	}
	if cfg.BulkWorkers <= 0 {
		cfg.BulkWorkers = 8
	}
	if cfg.ImageFolder == "" {
		cfg.ImageFolder = "catalogo/productos"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		tx:            tx,
		products:      products,
		subcategories: subcategories,
		stock:         stock,
		images:        images,
		cfg:           cfg,
		log:           log.Named("productos"),
	}
}

// Create crea el producto y su registro de stock en una sola transacción.
// img, si no es nil, tiene prioridad sobre in.Foto (subida multipart).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, img *ports.Image) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validateAmounts(*in.ValorVenta, *in.TasaImpuesto); err != nil {
		return nil, err
	}
	existing, err := uc.products.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, storageErr("buscar producto", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.requireSubcategory(ctx, in.SubcategoriaID); err != nil {
		return nil, err
	}

	foto, uploaded, err := uc.resolveFoto(ctx, in.Foto, img)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoActivo
	}
	product := &entity.Product{
		ID:              uuid.New().String(),
		Codigo:          in.Codigo,
		Descripcion:     in.Descripcion,
		UnidadVenta:     in.UnidadVenta,
		ConfUnidadVenta: in.ConfUnidadVenta,
		InfoAdicional:   in.InfoAdicional,
		Estado:          estado,
		Foto:            foto,
		Moneda:          in.Moneda,
		ValorVenta:      *in.ValorVenta,
		TasaImpuesto:    *in.TasaImpuesto,
		PrecioVenta:     pricing.PrecioVenta(*in.ValorVenta, *in.TasaImpuesto),
		SubcategoriaID:  in.SubcategoriaID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	stock := &entity.Stock{
		ProductID:         product.ID,
		StockFisico:       intOrZero(in.StockFisico),
		StockComprometido: intOrZero(in.StockComprometido),
		UpdatedAt:         now,
	}
	uc.warnOvercommitted(product.Codigo, stock)

	err = uc.tx.Run(ctx, func(repos CatalogRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		return repos.Stock.Create(ctx, stock)
	})
	if err != nil {
		if uploaded {
			uc.images.Cleanup(ctx, foto, "")
		}
		return nil, storageErr("crear producto", err)
	}
	uc.log.Info().Str("codigo", product.Codigo).Str("precio_venta", product.PrecioVenta.String()).Msg("producto creado")
	return uc.detail(ctx, product)
}

// GetByCodigo obtiene un producto por su código de negocio.
func (uc *ProductUseCase) GetByCodigo(ctx context.Context, codigo string) (*dto.ProductResponse, error) {
	product, err := uc.mustGet(ctx, codigo)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, product)
}

// Update reemplaza el producto identificado por codigo y actualiza su stock en la misma transacción.
// Si se sube una foto nueva, la anterior se elimina del host después del commit (best-effort).
func (uc *ProductUseCase) Update(ctx context.Context, codigo string, in dto.UpdateProductRequest, img *ports.Image) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validateAmounts(*in.ValorVenta, *in.TasaImpuesto); err != nil {
		return nil, err
	}
	product, err := uc.mustGet(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if in.SubcategoriaID != "" && in.SubcategoriaID != product.SubcategoriaID {
		if err := uc.requireSubcategory(ctx, in.SubcategoriaID); err != nil {
			return nil, err
		}
		product.SubcategoriaID = in.SubcategoriaID
	}

	previousFoto := product.Foto
	foto, uploaded, err := uc.resolveFoto(ctx, in.Foto, img)
	if err != nil {
		return nil, err
	}
	if foto != "" {
		product.Foto = foto
	}

	product.Descripcion = in.Descripcion
	product.UnidadVenta = in.UnidadVenta
	product.ConfUnidadVenta = in.ConfUnidadVenta
	product.InfoAdicional = in.InfoAdicional
	product.Moneda = in.Moneda
	product.ValorVenta = *in.ValorVenta
	product.TasaImpuesto = *in.TasaImpuesto
	product.PrecioVenta = pricing.PrecioVenta(product.ValorVenta, product.TasaImpuesto)
	product.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(repos CatalogRepos) error {
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		stock, err := repos.Stock.GetByProductID(ctx, product.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			// Producto legado sin fila de stock: se repara creando la fila.
			stock = &entity.Stock{ProductID: product.ID}
			applyStock(stock, in.StockFisico, in.StockComprometido, product.UpdatedAt)
			uc.warnOvercommitted(product.Codigo, stock)
			return repos.Stock.Create(ctx, stock)
		}
		applyStock(stock, in.StockFisico, in.StockComprometido, product.UpdatedAt)
		uc.warnOvercommitted(product.Codigo, stock)
		return repos.Stock.Update(ctx, stock)
	})
	if err != nil {
		if uploaded {
			uc.images.Cleanup(ctx, foto, "")
		}
		return nil, storageErr("actualizar producto", err)
	}
	if uploaded {
		uc.images.Cleanup(ctx, previousFoto, product.Foto)
	}
	uc.log.Info().Str("codigo", product.Codigo).Str("precio_venta", product.PrecioVenta.String()).Msg("producto actualizado")
	return uc.detail(ctx, product)
}

// ToggleEstado invierte el estado del producto (A ↔ I). Nunca usa un estado declarado por el cliente.
func (uc *ProductUseCase) ToggleEstado(ctx context.Context, codigo string) (*dto.ProductResponse, error) {
	product, err := uc.mustGet(ctx, codigo)
	if err != nil {
		return nil, err
	}
	product.Estado = entity.ToggleEstado(product.Estado)
	ok, err := uc.products.UpdateEstado(ctx, codigo, product.Estado)
	if err != nil {
		return nil, storageErr("cambiar estado", err)
	}
	if !ok {
		return nil, domain.NewNotFoundError("producto", codigo)
	}
	return uc.detail(ctx, product)
}

// List devuelve una página del listado filtrado y ordenado, con el total sin paginar.
// Una página más allá del final devuelve una lista vacía, no un error.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q := repository.NewProductQuery(in.Page, in.Limit, in.Search, in.SortBy, in.SortOrder, uc.cfg.DefaultPageSize)
	if entity.ValidEstado(in.Estado) {
		q.Estado = in.Estado
	}
	q.SubcategoriaID = in.SubcategoriaID

	rows, total, err := uc.products.Search(ctx, q)
	if err != nil {
		return nil, storageErr("listar productos", err)
	}
	return &dto.ProductListResponse{
		Products:      ShapeProductRows(rows),
		TotalProducts: total,
		TotalPages:    repository.TotalPages(total, q.PageSize),
		CurrentPage:   q.Page,
		PageSize:      q.PageSize,
	}, nil
}

// ListActive productos activos aplanados (exportación de lista de precios).
func (uc *ProductUseCase) ListActive(ctx context.Context) ([]dto.ProductListItem, error) {
	rows, err := uc.products.ListActive(ctx)
	if err != nil {
		return nil, storageErr("listar productos activos", err)
	}
	return ShapeProductRows(rows), nil
}

func (uc *ProductUseCase) mustGet(ctx context.Context, codigo string) (*entity.Product, error) {
	product, err := uc.products.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, storageErr("buscar producto", err)
	}
	if product == nil {
		return nil, domain.NewNotFoundError("producto", codigo)
	}
	return product, nil
}

func (uc *ProductUseCase) requireSubcategory(ctx context.Context, id string) error {
	sub, err := uc.subcategories.GetByID(ctx, id)
	if err != nil {
		return storageErr("buscar subcategoría", err)
	}
	if sub == nil {
		return domain.NewValidationError("la subcategoría no existe", "subcategoriaId")
	}
	return nil
}

// resolveFoto devuelve la URL a guardar y si hubo subida (para limpiar en caso de fallo).
func (uc *ProductUseCase) resolveFoto(ctx context.Context, foto string, img *ports.Image) (string, bool, error) {
	if img != nil {
		url, err := uc.images.Upload(ctx, *img, uc.cfg.ImageFolder)
		return url, err == nil, err
	}
	if imageupload.IsDataURI(foto) {
		url, err := uc.images.Resolve(ctx, foto, uc.cfg.ImageFolder)
		return url, err == nil, err
	}
	return foto, false, nil
}

// detail arma la respuesta con subcategoría y stock actuales.
func (uc *ProductUseCase) detail(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	sub, err := uc.subcategories.GetByID(ctx, p.SubcategoriaID)
	if err != nil {
		return nil, storageErr("buscar subcategoría", err)
	}
	stock, err := uc.stock.GetByProductID(ctx, p.ID)
	if err != nil {
		return nil, storageErr("buscar stock", err)
	}
	return toProductResponse(&entity.ProductDetail{Product: *p, Subcategoria: sub, Stock: stock}), nil
}

func (uc *ProductUseCase) warnOvercommitted(codigo string, s *entity.Stock) {
	if s.Overcommitted() {
		uc.log.Warn().
			Str("codigo", codigo).
			Int("stock_fisico", s.StockFisico).
			Int("stock_comprometido", s.StockComprometido).
			Msg("stock comprometido mayor que el físico")
	}
}

func validateAmounts(valor, tasa decimal.Decimal) error {
	var fields []string
	if valor.IsNegative() {
		fields = append(fields, "valorVenta")
	}
	if tasa.IsNegative() {
		fields = append(fields, "tasaImpuesto")
	}
	if len(fields) > 0 {
		return domain.NewValidationError("los montos no pueden ser negativos", fields...)
	}
	return nil
}

func applyStock(s *entity.Stock, fisico, comprometido *int, now time.Time) {
	if fisico != nil {
		s.StockFisico = *fisico
	}
	if comprometido != nil {
		s.StockComprometido = *comprometido
	}
	s.UpdatedAt = now
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
