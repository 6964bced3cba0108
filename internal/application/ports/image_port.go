package ports

import "context"

// Image contenido binario de una imagen ya decodificada y validada.
type Image struct {
	Data        []byte
	ContentType string // image/png, image/jpeg, ...
	Filename    string // opcional, solo informativo
}

// ImageStore define el puerto de salida hacia el host de imágenes.
// Cualquier adaptador (Cloudinary, S3, mock) debe implementar esta interfaz.
// Las llamadas son de red: el contexto debe llevar timeout.
type ImageStore interface {
	// Upload sube la imagen a la carpeta indicada y devuelve la URL pública (https).
	Upload(ctx context.Context, img Image, folder string) (string, error)
	// Delete elimina una imagen previamente subida a partir de su URL.
	// Devuelve false si la URL no pertenece a este host (nada que borrar).
	Delete(ctx context.Context, url string) (bool, error)
}
