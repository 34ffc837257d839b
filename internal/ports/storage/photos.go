package storage

import (
	"context"
	"io"
)

// PhotoStore guarda los bytes de una foto bajo key y devuelve la URL pública.
// Falla con error de red/auth/cuota; quien llama decide si lo propaga.
type PhotoStore interface {
	Store(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
