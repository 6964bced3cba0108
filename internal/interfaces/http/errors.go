package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// writeError traduce un error de la capa de aplicación a la respuesta HTTP.
// body es la entrada decodificada; si se pasa, el 400 detalla un mensaje por campo.
func writeError(c *fiber.Ctx, message string, err error, body ...any) error {
	var verr *domain.ValidationError
	var nf *domain.NotFoundError
	var up *domain.UpstreamError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    "VALIDATION",
			Message: verr.Message,
			Error:   err.Error(),
			Fields:  fieldMessages(verr, body),
		})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMessage(nf), Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado", Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un registro con ese código", Error: err.Error()})
	case errors.As(err, &up):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "UPSTREAM",
			Message: "Error al subir la imagen",
			Error:   up.Err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Error: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: message,
			Error:   err.Error(),
		})
	}
}

func fieldMessages(verr *domain.ValidationError, body []any) map[string]string {
	if len(body) > 0 {
		if msgs := validation.Messages(body[0]); len(msgs) > 0 {
			return msgs
		}
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f] = verr.Message
	}
	return out
}

func notFoundMessage(nf *domain.NotFoundError) string {
	switch nf.Entity {
	case "producto":
		return "Producto no encontrado"
	case "categoría":
		return "Categoría no encontrada"
	case "subcategoría":
		return "Subcategoría no encontrada"
	default:
		return nf.Error()
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler respuesta JSON para errores que escapan a los handlers (404 de ruta, body demasiado grande, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: httpCode(code), Message: err.Error()})
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		if status < fiber.StatusInternalServerError {
			return "BAD_REQUEST"
		}
		return "INTERNAL"
	}
}
