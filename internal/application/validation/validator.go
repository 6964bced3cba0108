package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// instance devuelve el validador compartido; los nombres de campo salen del tag json.
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct valida los tags `validate` de s y traduce las fallas a *domain.ValidationError.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldPath(fe))
	}
	return &domain.ValidationError{Fields: fields, Message: "faltan campos requeridos o tienen formato inválido"}
}

// Messages devuelve un mensaje legible por campo (para el cuerpo del 400).
func Messages(s any) map[string]string {
	err := instance().Struct(s)
	var verrs validator.ValidationErrors
	if err == nil || !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateProductRequest.codigo" → "codigo".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s debe tener un mínimo de %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener un máximo de %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("validación %s falló en %s", fe.Tag(), fe.Field())
	}
}
