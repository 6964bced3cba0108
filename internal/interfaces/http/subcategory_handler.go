package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// SubcategoryHandler maneja las peticiones HTTP de subcategorías.
type SubcategoryHandler struct {
	uc *usecase.SubcategoryUseCase
}

// NewSubcategoryHandler construye el handler.
func NewSubcategoryHandler(uc *usecase.SubcategoryUseCase) *SubcategoryHandler {
	return &SubcategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear subcategoría
// @Description  La categoría indicada en categoriaId debe existir.
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubcategoryRequest  true  "Datos de la subcategoría"
// @Success      201   {object}  dto.SubcategoryResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/subcategories [post]
func (h *SubcategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubcategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "Error al crear subcategoría", err, in)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar subcategorías con su categoría
// @Tags         subcategories
// @Produce      json
// @Param        nombre  query  string  false  "Texto en el nombre"
// @Param        estado  query  string  false  "A o I"
// @Param        categoriaId  query  string  false  "Categoría"
// @Success      200  {array}  dto.SubcategoryResponse
// @Router       /api/subcategories [get]
func (h *SubcategoryHandler) List(c *fiber.Ctx) error {
	var q dto.SubcategoryListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, "Error al obtener subcategorías", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener subcategoría
// @Tags         subcategories
// @Produce      json
// @Param        id   path  string  true  "ID de la subcategoría"
// @Success      200  {object}  dto.SubcategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [get]
func (h *SubcategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "Error al obtener la subcategoría", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar subcategoría
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la subcategoría"
// @Param        body  body  dto.UpdateSubcategoryRequest  true  "Datos de la subcategoría"
// @Success      200  {object}  dto.SubcategoryResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [put]
func (h *SubcategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSubcategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, "Error al actualizar la subcategoría", err, in)
	}
	return c.JSON(out)
}

// ToggleEstado godoc
// @Summary      Cambiar estado de la subcategoría (A ↔ I)
// @Tags         subcategories
// @Produce      json
// @Param        id   path  string  true  "ID de la subcategoría"
// @Success      200  {object}  dto.SubcategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [patch]
func (h *SubcategoryHandler) ToggleEstado(c *fiber.Ctx) error {
	out, err := h.uc.ToggleEstado(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "Error al cambiar el estado de la subcategoría", err)
	}
	return c.JSON(out)
}
