package cats

import (
	"context"
	"time"

	"cat-collector/internal/domain/toys"
)

type Repository interface {
	Create(ctx context.Context, c Cat) (Cat, error)
	Update(ctx context.Context, c Cat) error
	GetByID(ctx context.Context, id int64) (Cat, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error)
	// Delete borra el gato junto con sus feedings, photos y asociaciones.
	Delete(ctx context.Context, id int64) error
}

type FeedingRepository interface {
	// Create inserta el feeding ya ligado a su gato (una sola escritura).
	Create(ctx context.Context, f Feeding) (Feeding, error)
	// ListByCat devuelve fecha desc (empates: id desc).
	ListByCat(ctx context.Context, catID int64) ([]Feeding, error)
	CountOnDay(ctx context.Context, catID int64, day time.Time) (int, error)
}

type PhotoRepository interface {
	Create(ctx context.Context, p Photo) (Photo, error)
	ListByCat(ctx context.Context, catID int64) ([]Photo, error)
}

// ToyLinkRepository maneja la tabla de asociación gato <-> toy.
type ToyLinkRepository interface {
	// Add es idempotente. Devuelve toys.ErrNotFound si el toy no existe.
	Add(ctx context.Context, catID, toyID int64) error
	// Remove de un par inexistente no es error.
	Remove(ctx context.Context, catID, toyID int64) error
	ToysOf(ctx context.Context, catID int64) ([]toys.Toy, error)
	ToysNotOn(ctx context.Context, catID int64) ([]toys.Toy, error)
}

// Repos agrupa los repositorios que usa el servicio de gatos.
type Repos struct {
	Cats     Repository
	Feedings FeedingRepository
	Photos   PhotoRepository
	ToyLinks ToyLinkRepository
}
