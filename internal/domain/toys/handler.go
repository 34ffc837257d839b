package toys

import (
	"context"

	"cat-collector/internal/crud"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/ports/auth"
	"cat-collector/internal/web"

	"github.com/go-chi/chi/v5"
)

// Schema declara los campos de Toy; create y update aceptan los mismos.
var Schema = crud.MustSchema(crud.Schema{
	Entity: "toy",
	Plural: "toys",
	Fields: []crud.Field{
		{Name: "name", Label: "Name", Kind: crud.KindText, Required: true, MaxLen: maxNameLen},
		{Name: "color", Label: "Color", Kind: crud.KindText, Required: true, MaxLen: maxColorLen},
	},
	CreateFields: []string{"name", "color"},
	UpdateFields: []string{"name", "color"},
})

// RegisterRoutes monta /toys con los handlers estándar del factory.
func RegisterRoutes(r chi.Router, svc *Service, views *web.Renderer, log logger.Logger) {
	h := crud.NewHandlers(crud.Config[Toy]{
		Schema:          Schema,
		Store:           crudStore{svc: svc},
		Views:           views,
		Log:             log,
		Param:           "toyID",
		ListPage:        "toys/index",
		DetailPage:      "toys/detail",
		ListURL:         web.URL("toys_index"),
		DetailURL:       func(t Toy) string { return web.URL("toy_detail", t.ID) },
		Initial:         initial,
		ErrNotFound:     ErrNotFound,
		ErrInvalidInput: ErrInvalidInput,
	})

	r.Route("/toys", func(tr chi.Router) {
		h.Mount(tr, "toyID")
	})
}

func initial(t Toy) crud.Values {
	return crud.Values{"name": t.Name, "color": t.Color}
}

// crudStore adapta Service al contrato del factory. Los toys son compartidos,
// así que el user no filtra nada.
type crudStore struct {
	svc *Service
}

func (s crudStore) List(ctx context.Context, _ auth.Claims) ([]Toy, error) {
	return s.svc.List(ctx)
}

func (s crudStore) Get(ctx context.Context, _ auth.Claims, id int64) (Toy, error) {
	return s.svc.GetByID(ctx, id)
}

func (s crudStore) Create(ctx context.Context, _ auth.Claims, in crud.Values) (Toy, error) {
	return s.svc.Create(ctx, Input{Name: in.String("name"), Color: in.String("color")})
}

func (s crudStore) Update(ctx context.Context, _ auth.Claims, id int64, in crud.Values) (Toy, error) {
	return s.svc.Update(ctx, id, Input{Name: in.String("name"), Color: in.String("color")})
}

func (s crudStore) Delete(ctx context.Context, _ auth.Claims, id int64) error {
	return s.svc.Delete(ctx, id)
}
