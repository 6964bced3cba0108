package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP de productos. La clave de ruta es el código.
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	priceList *usecase.PriceListUseCase
}

// NewProductHandler construye el handler. priceList puede ser nil (exportación deshabilitada).
func NewProductHandler(uc *usecase.ProductUseCase, priceList *usecase.PriceListUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, priceList: priceList}
}

// Create godoc
// @Summary      Crear producto
// @Description  JSON, o multipart con el documento JSON en el campo "data" y la imagen en "foto".
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	img, err := parseProductBody(c, &in)
	if err != nil {
		return writeError(c, "Error al crear producto", err)
	}
	out, err := h.uc.Create(c.UserContext(), in, img)
	if err != nil {
		return writeError(c, "Error al crear producto", err, in)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCodigo godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Produce      json
// @Param        codigo  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{codigo} [get]
func (h *ProductHandler) GetByCodigo(c *fiber.Ctx) error {
	out, err := h.uc.GetByCodigo(c.UserContext(), c.Params("codigo"))
	if err != nil {
		return writeError(c, "Error al obtener producto", err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Paginado, con búsqueda por descripción y orden por cualquier columna del listado.
// @Tags         products
// @Produce      json
// @Param        page            query  int     false  "Página"              default(1)
// @Param        limit           query  int     false  "Tamaño de página"    default(6)
// @Param        search          query  string  false  "Texto en la descripción"
// @Param        sortBy          query  string  false  "Campo de orden"      default(createdAt)
// @Param        sortOrder       query  string  false  "asc o desc"          default(desc)
// @Param        estado          query  string  false  "A o I"
// @Param        subcategoriaId  query  string  false  "Subcategoría"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, "Error al obtener productos", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        codigo  path  string  true  "Código del producto"
// @Param        body    body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{codigo} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	img, err := parseProductBody(c, &in)
	if err != nil {
		return writeError(c, "Error al actualizar producto", err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("codigo"), in, img)
	if err != nil {
		return writeError(c, "Error al actualizar producto", err, in)
	}
	return c.JSON(out)
}

// ToggleEstado godoc
// @Summary      Cambiar estado del producto (A ↔ I)
// @Tags         products
// @Produce      json
// @Param        codigo  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{codigo} [patch]
func (h *ProductHandler) ToggleEstado(c *fiber.Ctx) error {
	out, err := h.uc.ToggleEstado(c.UserContext(), c.Params("codigo"))
	if err != nil {
		return writeError(c, "Error al actualizar el estado del producto", err)
	}
	return c.JSON(out)
}

// UpdatePrices godoc
// @Summary      Incremento porcentual de precios
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkPriceUpdateRequest  true  "Códigos y porcentaje"
// @Success      200  {object}  dto.BulkUpdateResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      500  {object}  dto.BulkUpdateResponse
// @Router       /api/products/update-prices [post]
func (h *ProductHandler) UpdatePrices(c *fiber.Ctx) error {
	var in dto.BulkPriceUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	n, err := h.uc.BulkUpdatePrices(c.UserContext(), in)
	return bulkResult(c, n, err, in, "%d productos actualizados correctamente", "Error al actualizar precios")
}

// UpdateState godoc
// @Summary      Invertir el estado de varios productos
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkStateUpdateRequest  true  "Códigos"
// @Success      200  {object}  dto.BulkUpdateResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      500  {object}  dto.BulkUpdateResponse
// @Router       /api/products/update-state [post]
func (h *ProductHandler) UpdateState(c *fiber.Ctx) error {
	var in dto.BulkStateUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	n, err := h.uc.BulkToggleEstado(c.UserContext(), in)
	return bulkResult(c, n, err, in, "Estado de %d productos actualizado correctamente", "Error al actualizar estados de productos")
}

// PriceList godoc
// @Summary      Lista de precios en PDF
// @Description  Productos activos agrupados por subcategoría.
// @Tags         products
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/price-list.pdf [get]
func (h *ProductHandler) PriceList(c *fiber.Ctx) error {
	if h.priceList == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "exportación no disponible"})
	}
	doc, filename, err := h.priceList.Download(c.UserContext())
	if err != nil {
		return writeError(c, "Error al generar la lista de precios", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

// bulkResult 200 con el conteo, 400 si la entrada es inválida y 500 con el conteo parcial si alguna fila falló.
func bulkResult(c *fiber.Ctx, n int, err error, in any, okFormat, failMessage string) error {
	if err == nil {
		return c.JSON(dto.BulkUpdateResponse{Success: true, UpdatedCount: n, Message: fmt.Sprintf(okFormat, n)})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return writeError(c, failMessage, err, in)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.BulkUpdateResponse{
		UpdatedCount: n,
		Message:      failMessage,
		Error:        err.Error(),
	})
}

// parseProductBody decodifica JSON, o multipart con el documento en "data" y la imagen en "foto".
func parseProductBody(c *fiber.Ctx, in any) (*ports.Image, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(in); err != nil {
			return nil, domain.NewValidationError("cuerpo inválido")
		}
		return nil, nil
	}

	data := c.FormValue("data")
	if data == "" {
		return nil, domain.NewValidationError("falta el campo data con el producto", "data")
	}
	if err := json.Unmarshal([]byte(data), in); err != nil {
		return nil, domain.NewValidationError("data no es un JSON válido", "data")
	}

	fh, err := c.FormFile("foto")
	if err != nil {
		// Sin archivo: foto puede venir como URL o data URI dentro de data.
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, domain.NewValidationError("no se pudo leer la foto", "foto")
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, imageupload.MaxImageBytes+1))
	if err != nil {
		return nil, domain.NewValidationError("no se pudo leer la foto", "foto")
	}
	img, err := imageupload.Validate(raw, fh.Filename)
	if err != nil {
		return nil, err
	}
	return &img, nil
}
