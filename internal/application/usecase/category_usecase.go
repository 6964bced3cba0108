package usecase

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	tx            TxRunner
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	images        *imageupload.Resolver
	folder        string
	subFolder     string
	log           *logger.Logger
}

// NewCategoryUseCase construye el caso de uso. folder es la carpeta del host de imágenes.
func NewCategoryUseCase(
	tx TxRunner,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	images *imageupload.Resolver,
	folder string,
	log *logger.Logger,
) *CategoryUseCase {
	if folder == "" {
		folder = "catalogo/categorias"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryUseCase{
		tx:            tx,
		categories:    categories,
		subcategories: subcategories,
		images:        images,
		folder:        folder,
		subFolder:     path.Join(path.Dir(folder), "subcategorias"),
		log:           log.Named("categorias"),
	}
}

// Create crea la categoría y, en la misma transacción, las subcategorías anidadas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	// Fotos subidas en esta llamada: se eliminan si algo falla antes del commit.
	var uploaded []string
	discard := func() {
		for _, u := range uploaded {
			uc.images.Cleanup(ctx, u, "")
		}
	}
	foto, err := uc.images.Resolve(ctx, in.Foto, uc.folder)
	if err != nil {
		return nil, err
	}
	if foto != in.Foto {
		uploaded = append(uploaded, foto)
	}
	subFotos := make([]string, len(in.Subcategorias))
	for i, s := range in.Subcategorias {
		u, err := uc.images.Resolve(ctx, s.Foto, uc.subFolder)
		if err != nil {
			discard()
			return nil, err
		}
		if u != s.Foto {
			uploaded = append(uploaded, u)
		}
		subFotos[i] = u
	}

	now := time.Now().UTC()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Icon:        in.Icon,
		Foto:        foto,
		Estado:      estadoOrDefault(in.Estado),
		CreatedAt:   now,
	}
	// Orden inverso de creación: el listado anidado queda en el mismo orden que el enviado.
	for i, s := range in.Subcategorias {
		cat.Subcategorias = append(cat.Subcategorias, &entity.Subcategory{
			ID:          uuid.New().String(),
			CategoriaID: cat.ID,
			Nombre:      s.Nombre,
			Descripcion: s.Descripcion,
			Icon:        s.Icon,
			Foto:        subFotos[i],
			Estado:      estadoOrDefault(s.Estado),
			CreatedAt:   now.Add(-time.Duration(i) * time.Microsecond),
		})
	}

	err = uc.tx.Run(ctx, func(repos CatalogRepos) error {
		if err := repos.Categories.Create(ctx, cat); err != nil {
			return err
		}
		for _, s := range cat.Subcategorias {
			if err := repos.Subcategories.Create(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		discard()
		return nil, storageErr("crear categoría", err)
	}
	uc.log.Info().Str("id", cat.ID).Str("nombre", cat.Nombre).Int("subcategorias", len(cat.Subcategorias)).Msg("categoría creada")
	return toCategoryResponse(cat), nil
}

// GetByID categoría con sus subcategorías.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	subs, err := uc.subcategories.List(ctx, repository.SubcategoryFilter{CategoriaIDs: []string{id}})
	if err != nil {
		return nil, storageErr("listar subcategorías", err)
	}
	cat.Subcategorias = subs
	return toCategoryResponse(cat), nil
}

// List categorías filtradas por nombre (contiene) y estado, cada una con sus subcategorías.
func (uc *CategoryUseCase) List(ctx context.Context, q dto.CategoryListQuery) ([]dto.CategoryResponse, error) {
	filter := repository.CategoryFilter{Nombre: q.Nombre}
	if entity.ValidEstado(q.Estado) {
		filter.Estado = q.Estado
	}
	cats, err := uc.categories.List(ctx, filter)
	if err != nil {
		return nil, storageErr("listar categorías", err)
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	if len(cats) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	subs, err := uc.subcategories.List(ctx, repository.SubcategoryFilter{CategoriaIDs: ids})
	if err != nil {
		return nil, storageErr("listar subcategorías", err)
	}
	byCat := make(map[string][]*entity.Subcategory, len(cats))
	for _, s := range subs {
		byCat[s.CategoriaID] = append(byCat[s.CategoriaID], s)
	}
	for _, c := range cats {
		c.Subcategorias = byCat[c.ID]
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update reemplaza los campos de la categoría. Foto o estado vacíos conservan el valor actual.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cat, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := cat.Foto
	foto, err := uc.images.Resolve(ctx, in.Foto, uc.folder)
	if err != nil {
		return nil, err
	}
	uploaded := foto != in.Foto

	cat.Nombre = in.Nombre
	cat.Descripcion = in.Descripcion
	cat.Icon = in.Icon
	if foto != "" {
		cat.Foto = foto
	}
	if in.Estado != "" {
		cat.Estado = in.Estado
	}
	if err := uc.categories.Update(ctx, cat); err != nil {
		if uploaded {
			uc.images.Cleanup(ctx, foto, "")
		}
		return nil, storageErr("actualizar categoría", err)
	}
	if uploaded {
		uc.images.Cleanup(ctx, previous, cat.Foto)
	}
	return uc.GetByID(ctx, id)
}

// ToggleEstado invierte el estado de la categoría (A ↔ I). Las subcategorías no se tocan.
func (uc *CategoryUseCase) ToggleEstado(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	cat.Estado = entity.ToggleEstado(cat.Estado)
	if err := uc.categories.UpdateEstado(ctx, id, cat.Estado); err != nil {
		return nil, storageErr("cambiar estado", err)
	}
	return toCategoryResponse(cat), nil
}

func (uc *CategoryUseCase) mustGet(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("buscar categoría", err)
	}
	if cat == nil {
		return nil, domain.NewNotFoundError("categoría", id)
	}
	return cat, nil
}

func estadoOrDefault(estado string) string {
	if estado == "" {
		return entity.EstadoActivo
	}
	return estado
}
