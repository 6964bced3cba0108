package imageupload

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const mediaService = "host de imágenes"

// ErrStoreDisabled el host de imágenes no está configurado.
var ErrStoreDisabled = errors.New("host de imágenes no configurado")

// Resolver reemplaza fotos embebidas por URLs del host de imágenes y limpia las reemplazadas.
type Resolver struct {
	store   ports.ImageStore
	timeout time.Duration
	log     *logger.Logger
}

// NewResolver construye el resolver. store puede ser nil: en ese caso solo se aceptan URLs.
func NewResolver(store ports.ImageStore, timeout time.Duration, log *logger.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resolver{store: store, timeout: timeout, log: log}
}

// Resolve devuelve la URL a persistir: foto tal cual si ya es URL (o vacía),
// o la URL devuelta por el host tras subir el data URI a folder.
func (r *Resolver) Resolve(ctx context.Context, foto, folder string) (string, error) {
	if !IsDataURI(foto) {
		return foto, nil
	}
	img, err := DecodeDataURI(foto)
	if err != nil {
		return "", err
	}
	return r.Upload(ctx, img, folder)
}

// Upload sube una imagen ya validada.
func (r *Resolver) Upload(ctx context.Context, img ports.Image, folder string) (string, error) {
	if r.store == nil {
		return "", domain.NewUpstreamError(mediaService, ErrStoreDisabled)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	url, err := r.store.Upload(ctx, img, folder)
	if err != nil {
		return "", domain.NewUpstreamError(mediaService, err)
	}
	r.log.Debug().Str("url", url).Int("bytes", len(img.Data)).Msg("imagen subida")
	return url, nil
}

// Cleanup elimina oldURL si fue reemplazada por newURL. Best-effort: los fallos solo se registran.
func (r *Resolver) Cleanup(ctx context.Context, oldURL, newURL string) {
	if r.store == nil || oldURL == "" || oldURL == newURL {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()
	deleted, err := r.store.Delete(ctx, oldURL)
	if err != nil {
		r.log.Warn().Err(err).Str("url", oldURL).Msg("no se pudo eliminar la imagen anterior")
		return
	}
	if deleted {
		r.log.Info().Str("url", oldURL).Msg("imagen anterior eliminada")
	}
}
