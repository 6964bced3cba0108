package usecase

import (
	"context"
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

// SubcategoryUseCase casos de uso de subcategorías. Toda subcategoría referencia una categoría existente.
type SubcategoryUseCase struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	images        *imageupload.Resolver
	folder        string
	log           *logger.Logger
}

func NewSubcategoryUseCase(
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	images *imageupload.Resolver,
	folder string,
	log *logger.Logger,
) *SubcategoryUseCase {
	if folder == "" {
		folder = "catalogo/subcategorias"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SubcategoryUseCase{
		categories:    categories,
		subcategories: subcategories,
		images:        images,
		folder:        folder,
		log:           log.Named("subcategorias"),
	}
}

func (uc *SubcategoryUseCase) Create(ctx context.Context, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cat, err := uc.requireCategory(ctx, in.CategoriaID)
	if err != nil {
		return nil, err
	}
	foto, err := uc.images.Resolve(ctx, in.Foto, uc.folder)
	if err != nil {
		return nil, err
	}
	sub := &entity.Subcategory{
		ID:          uuid.New().String(),
		CategoriaID: cat.ID,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Icon:        in.Icon,
		Foto:        foto,
		Estado:      estadoOrDefault(in.Estado),
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.subcategories.Create(ctx, sub); err != nil {
		if foto != in.Foto {
			uc.images.Cleanup(ctx, foto, "")
		}
		return nil, storageErr("crear subcategoría", err)
	}
	uc.log.Info().Str("id", sub.ID).Str("categoria_id", cat.ID).Msg("subcategoría creada")
	sub.Categoria = cat
	return toSubcategoryResponse(sub), nil
}

// GetByID subcategoría con su categoría.
func (uc *SubcategoryUseCase) GetByID(ctx context.Context, id string) (*dto.SubcategoryResponse, error) {
	sub, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	cat, err := uc.categories.GetByID(ctx, sub.CategoriaID)
	if err != nil {
		return nil, storageErr("buscar categoría", err)
	}
	sub.Categoria = cat
	return toSubcategoryResponse(sub), nil
}

// List filtra por nombre (contiene), estado y categoría; más recientes primero.
func (uc *SubcategoryUseCase) List(ctx context.Context, q dto.SubcategoryListQuery) ([]dto.SubcategoryResponse, error) {
	filter := repository.SubcategoryFilter{Nombre: q.Nombre}
	if entity.ValidEstado(q.Estado) {
		filter.Estado = q.Estado
	}
	if q.CategoriaID != "" {
		filter.CategoriaIDs = []string{q.CategoriaID}
	}
	subs, err := uc.subcategories.List(ctx, filter)
	if err != nil {
		return nil, storageErr("listar subcategorías", err)
	}

	cats := make(map[string]*entity.Category)
	out := make([]dto.SubcategoryResponse, 0, len(subs))
	for _, s := range subs {
		cat, ok := cats[s.CategoriaID]
		if !ok {
			cat, err = uc.categories.GetByID(ctx, s.CategoriaID)
			if err != nil {
				return nil, storageErr("buscar categoría", err)
			}
			cats[s.CategoriaID] = cat
		}
		s.Categoria = cat
		out = append(out, *toSubcategoryResponse(s))
	}
	return out, nil
}

// Update reemplaza los campos; categoriaId, foto o estado vacíos conservan el valor actual.
func (uc *SubcategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	sub, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoriaID != "" && in.CategoriaID != sub.CategoriaID {
		if _, err := uc.requireCategory(ctx, in.CategoriaID); err != nil {
			return nil, err
		}
		sub.CategoriaID = in.CategoriaID
	}
	previous := sub.Foto
	foto, err := uc.images.Resolve(ctx, in.Foto, uc.folder)
	if err != nil {
		return nil, err
	}
	uploaded := foto != in.Foto

	sub.Nombre = in.Nombre
	sub.Descripcion = in.Descripcion
	sub.Icon = in.Icon
	if foto != "" {
		sub.Foto = foto
	}
	if in.Estado != "" {
		sub.Estado = in.Estado
	}
	if err := uc.subcategories.Update(ctx, sub); err != nil {
		if uploaded {
			uc.images.Cleanup(ctx, foto, "")
		}
		return nil, storageErr("actualizar subcategoría", err)
	}
	if uploaded {
		uc.images.Cleanup(ctx, previous, sub.Foto)
	}
	return uc.GetByID(ctx, id)
}

// ToggleEstado invierte el estado (A ↔ I).
func (uc *SubcategoryUseCase) ToggleEstado(ctx context.Context, id string) (*dto.SubcategoryResponse, error) {
	sub, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Estado = entity.ToggleEstado(sub.Estado)
	if err := uc.subcategories.UpdateEstado(ctx, id, sub.Estado); err != nil {
		return nil, storageErr("cambiar estado", err)
	}
	return toSubcategoryResponse(sub), nil
}

func (uc *SubcategoryUseCase) mustGet(ctx context.Context, id string) (*entity.Subcategory, error) {
	sub, err := uc.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("buscar subcategoría", err)
	}
	if sub == nil {
		return nil, domain.NewNotFoundError("subcategoría", id)
	}
	return sub, nil
}

func (uc *SubcategoryUseCase) requireCategory(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("buscar categoría", err)
	}
	if cat == nil {
		return nil, domain.NewValidationError("la categoría no existe", "categoriaId")
	}
	return cat, nil
}
