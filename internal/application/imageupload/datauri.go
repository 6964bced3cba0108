package imageupload

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// dataImagePrefix marca un campo foto que trae la imagen embebida en lugar de una URL.
const dataImagePrefix = "data:image"

// MaxImageBytes tamaño máximo de una imagen decodificada.
const MaxImageBytes = 8 << 20

// IsDataURI indica si foto trae una imagen embebida (data:image/...;base64,...).
func IsDataURI(foto string) bool {
	return strings.HasPrefix(foto, dataImagePrefix)
}

// DecodeDataURI decodifica un data URI base64 y verifica por contenido que sea una imagen.
// El tipo declarado en el prefijo no se usa: manda el contenido real.
func DecodeDataURI(foto string) (ports.Image, error) {
	header, payload, ok := strings.Cut(foto, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return ports.Image{}, domain.NewValidationError("foto debe ser un data URI base64", "foto")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		// Algunos clientes envían base64 sin padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(payload), "="))
		if err != nil {
			return ports.Image{}, domain.NewValidationError("foto: base64 inválido", "foto")
		}
	}
	return Validate(data, "")
}

// Validate comprueba tamaño y tipo de una imagen en bruto (data URI o parte multipart).
func Validate(data []byte, filename string) (ports.Image, error) {
	if len(data) == 0 {
		return ports.Image{}, domain.NewValidationError("foto vacía", "foto")
	}
	if len(data) > MaxImageBytes {
		return ports.Image{}, domain.NewValidationError(fmt.Sprintf("foto supera %d MB", MaxImageBytes>>20), "foto")
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return ports.Image{}, domain.NewValidationError("foto no es una imagen ("+mt.String()+")", "foto")
	}
	if filename == "" {
		filename = "foto" + mt.Extension()
	}
	return ports.Image{Data: data, ContentType: mt.String(), Filename: filename}, nil
}
