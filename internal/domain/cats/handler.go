package cats

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cat-collector/internal/crud"
	"cat-collector/internal/domain/toys"
	"cat-collector/internal/middleware"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/ports/auth"
	"cat-collector/internal/web"

	"github.com/go-chi/chi/v5"
)

// maxUploadMemory es lo que ParseMultipartForm guarda en memoria; el resto va a disco temporal.
const maxUploadMemory = 10 << 20

// Schema: name y breed solo se aceptan al crear.
var Schema = crud.MustSchema(crud.Schema{
	Entity: "cat",
	Plural: "cats",
	Fields: []crud.Field{
		{Name: "name", Label: "Name", Kind: crud.KindText, Required: true, MaxLen: maxNameLen},
		{Name: "breed", Label: "Breed", Kind: crud.KindText, Required: true, MaxLen: maxBreedLen},
		{Name: "description", Label: "Description", Kind: crud.KindTextArea, Required: true, MaxLen: maxDescriptionLen},
		{Name: "age", Label: "Age", Kind: crud.KindInt, Required: true, Min: crud.Min(0)},
	},
	CreateFields: []string{"name", "breed", "description", "age"},
	UpdateFields: []string{"description", "age"},
})

var feedingSchema = crud.MustSchema(crud.Schema{
	Entity: "feeding",
	Plural: "feedings",
	Fields: []crud.Field{
		{Name: "date", Label: "Feeding date", Kind: crud.KindDate, Required: true},
		{Name: "meal", Label: "Meal", Kind: crud.KindChoice, Required: true, Choices: mealChoices()},
	},
	CreateFields: []string{"date", "meal"},
})

func mealChoices() []crud.Choice {
	out := make([]crud.Choice, 0, len(Meals))
	for _, m := range Meals {
		out = append(out, crud.Choice{Value: string(m), Label: m.Name()})
	}
	return out
}

func RegisterRoutes(r chi.Router, svc *Service, views *web.Renderer, log logger.Logger) {
	h := crud.NewHandlers(crud.Config[Cat]{
		Schema:          Schema,
		Store:           crudStore{svc: svc},
		Views:           views,
		Log:             log,
		Param:           "catID",
		ListPage:        "cats/index",
		DetailPage:      "cats/detail",
		ListURL:         web.URL("index"),
		DetailURL:       func(c Cat) string { return web.URL("details", c.ID) },
		Initial:         initial,
		Detail:          detailData(svc),
		ErrNotFound:     ErrNotFound,
		ErrInvalidInput: ErrInvalidInput,
	})

	r.Route("/cats", func(cr chi.Router) {
		h.Mount(cr, "catID")

		cr.Post("/{catID}/add_feeding", middleware.RequireUser(addFeedingHandler(svc, views, log)))
		cr.Post("/{catID}/add_photo", middleware.RequireUser(addPhotoHandler(svc, views, log)))
		cr.Post("/{catID}/assoc_toy/{toyID}", middleware.RequireUser(assocToyHandler(svc, views, log)))
		cr.Post("/{catID}/assoc_toy/{toyID}/delete", middleware.RequireUser(removeToyHandler(svc, views, log)))
	})
}

func initial(c Cat) crud.Values {
	return crud.Values{
		"name":        c.Name,
		"breed":       c.Breed,
		"description": c.Description,
		"age":         strconv.Itoa(c.Age),
	}
}

func detailData(svc *Service) func(ctx context.Context, user auth.Claims, c Cat) (map[string]any, error) {
	return func(ctx context.Context, _ auth.Claims, c Cat) (map[string]any, error) {
		feedings, err := svc.Feedings(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		fed, err := svc.IsFedToday(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		photos, err := svc.Photos(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		owned, err := svc.Toys(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		available, err := svc.ToysNotOnCat(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"feedings":  feedings,
			"fedToday":  fed,
			"photos":    photos,
			"toys":      owned,
			"available": available,
			"meals":     Meals,
			"today":     svc.Today().Format(time.DateOnly),
		}, nil
	}
}

// addFeedingHandler godoc
// @Summary Registrar feeding
// @Description Crea un feeding (date + meal) para el gato de la ruta. Siempre redirige al detalle del gato; si el form es inválido no se guarda nada.
// @Tags cats
// @Accept x-www-form-urlencoded
// @Param catID path int true "ID del gato"
// @Param date formData string true "Fecha YYYY-MM-DD"
// @Param meal formData string true "B, L o D"
// @Success 303 {string} string "redirect a /cats/{catID}/"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/add_feeding [post]
func addFeedingHandler(svc *Service, views *web.Renderer, log logger.Logger) middleware.UserHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, user auth.Claims) {
		catID, err := crud.PathID(r, "catID")
		if err != nil {
			views.NotFound(w, user)
			return
		}
		if _, err := svc.GetOwned(r.Context(), user.UserID, catID); err != nil {
			writeCatError(w, views, log, user, err)
			return
		}

		// Form inválido: no se guarda y se redirige igual.
		_ = r.ParseForm()
		values, errs := feedingSchema.Bind(r.PostForm, feedingSchema.CreateFields)
		if errs != nil {
			log.Info("feeding discarded", logger.Fields{"cat_id": catID, "errors": errs})
			web.Redirect(w, r, web.URL("details", catID))
			return
		}

		date, _ := crud.ParseDate(values.String("date"))
		_, err = svc.AddFeeding(r.Context(), user.UserID, catID, FeedingInput{
			Date: date,
			Meal: Meal(values.String("meal")),
		})
		switch {
		case err == nil, errors.Is(err, ErrInvalidInput):
			web.Redirect(w, r, web.URL("details", catID))
		default:
			writeCatError(w, views, log, user, err)
		}
	}
}

// addPhotoHandler godoc
// @Summary Subir foto
// @Description Sube el archivo `photo-file` al object storage y lo asocia al gato. Sin archivo no hace nada. Si el storage falla se loguea y se redirige sin crear la foto.
// @Tags cats
// @Accept multipart/form-data
// @Param catID path int true "ID del gato"
// @Param photo-file formData file false "Imagen"
// @Success 303 {string} string "redirect a /cats/{catID}/"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/add_photo [post]
func addPhotoHandler(svc *Service, views *web.Renderer, log logger.Logger) middleware.UserHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, user auth.Claims) {
		catID, err := crud.PathID(r, "catID")
		if err != nil {
			views.NotFound(w, user)
			return
		}

		up := PhotoUpload{}
		if err := r.ParseMultipartForm(maxUploadMemory); err == nil {
			if f, hdr, err := r.FormFile("photo-file"); err == nil {
				defer f.Close()
				up = PhotoUpload{
					Filename:    hdr.Filename,
					ContentType: hdr.Header.Get("Content-Type"),
					Body:        f,
				}
			}
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		if _, _, err := svc.AddPhoto(r.Context(), user.UserID, catID, up); err != nil {
			writeCatError(w, views, log, user, err)
			return
		}
		web.Redirect(w, r, web.URL("details", catID))
	}
}

// assocToyHandler godoc
// @Summary Asociar toy
// @Description Asocia el toy al gato (idempotente).
// @Tags cats
// @Param catID path int true "ID del gato"
// @Param toyID path int true "ID del toy"
// @Success 303 {string} string "redirect a /cats/{catID}/"
// @Failure 404 {string} string "cat or toy not found"
// @Router /cats/{catID}/assoc_toy/{toyID} [post]
func assocToyHandler(svc *Service, views *web.Renderer, log logger.Logger) middleware.UserHandlerFunc {
	return toyLinkHandler(views, log, svc.AssocToy)
}

// removeToyHandler godoc
// @Summary Quitar toy
// @Description Quita la asociación gato-toy; si no existía no hace nada.
// @Tags cats
// @Param catID path int true "ID del gato"
// @Param toyID path int true "ID del toy"
// @Success 303 {string} string "redirect a /cats/{catID}/"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/assoc_toy/{toyID}/delete [post]
func removeToyHandler(svc *Service, views *web.Renderer, log logger.Logger) middleware.UserHandlerFunc {
	return toyLinkHandler(views, log, svc.RemoveToy)
}

func toyLinkHandler(views *web.Renderer, log logger.Logger, op func(ctx context.Context, ownerUserID string, catID, toyID int64) error) middleware.UserHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, user auth.Claims) {
		catID, err := crud.PathID(r, "catID")
		if err != nil {
			views.NotFound(w, user)
			return
		}
		toyID, err := crud.PathID(r, "toyID")
		if err != nil {
			views.NotFound(w, user)
			return
		}

		if err := op(r.Context(), user.UserID, catID, toyID); err != nil {
			writeCatError(w, views, log, user, err)
			return
		}
		web.Redirect(w, r, web.URL("details", catID))
	}
}

func writeCatError(w http.ResponseWriter, views *web.Renderer, log logger.Logger, user auth.Claims, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, toys.ErrNotFound) {
		views.NotFound(w, user)
		return
	}
	log.Error("cat request failed", logger.Fields{"err": err, "user_id": user.UserID})
	views.ServerError(w, user)
}

// crudStore adapta Service al factory, aplicando siempre el scope del owner.
type crudStore struct {
	svc *Service
}

func (s crudStore) List(ctx context.Context, user auth.Claims) ([]Cat, error) {
	return s.svc.ListByOwner(ctx, user.UserID)
}

func (s crudStore) Get(ctx context.Context, user auth.Claims, id int64) (Cat, error) {
	return s.svc.GetOwned(ctx, user.UserID, id)
}

func (s crudStore) Create(ctx context.Context, user auth.Claims, in crud.Values) (Cat, error) {
	return s.svc.Create(ctx, user.UserID, CreateInput{
		Name:        in.String("name"),
		Breed:       in.String("breed"),
		Description: in.String("description"),
		Age:         in.Int("age"),
	})
}

func (s crudStore) Update(ctx context.Context, user auth.Claims, id int64, in crud.Values) (Cat, error) {
	return s.svc.Update(ctx, user.UserID, id, UpdateInput{
		Description: in.String("description"),
		Age:         in.Int("age"),
	})
}

func (s crudStore) Delete(ctx context.Context, user auth.Claims, id int64) error {
	return s.svc.Delete(ctx, user.UserID, id)
}
