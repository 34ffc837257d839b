package toys

import "context"

type Repository interface {
	Create(ctx context.Context, t Toy) (Toy, error)
	Update(ctx context.Context, t Toy) error
	GetByID(ctx context.Context, id int64) (Toy, error)
	List(ctx context.Context) ([]Toy, error)
	// Delete borra el toy y sus filas de asociación; nunca borra gatos.
	Delete(ctx context.Context, id int64) error
}
