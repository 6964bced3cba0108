package usecase

import (
	"errors"

	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// storageErr deja pasar los errores de dominio y envuelve el resto como StorageError.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{domain.ErrDuplicate, domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrUpstream, domain.ErrStorage} {
		if errors.Is(err, known) {
			return err
		}
	}
	return domain.NewStorageError(op, err)
}
