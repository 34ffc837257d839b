package crud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cat-collector/internal/middleware"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/ports/auth"
	"cat-collector/internal/web"

	"github.com/go-chi/chi/v5"
)

// Item es cualquier entidad con id numérico.
type Item interface {
	ItemID() int64
	fmt.Stringer
}

// Store es lo que el factory necesita de un módulo. El user viaja explícito
// para que cada módulo aplique su política de ownership.
type Store[T Item] interface {
	List(ctx context.Context, user auth.Claims) ([]T, error)
	Get(ctx context.Context, user auth.Claims, id int64) (T, error)
	Create(ctx context.Context, user auth.Claims, in Values) (T, error)
	Update(ctx context.Context, user auth.Claims, id int64, in Values) (T, error)
	Delete(ctx context.Context, user auth.Claims, id int64) error
}

type Config[T Item] struct {
	Schema Schema
	Store  Store[T]
	Views  *web.Renderer
	Log    logger.Logger

	// Param es el nombre del path param del id, p.ej. "catID".
	Param string

	// Templates de listado y detalle.
	ListPage   string
	DetailPage string

	ListURL   string
	DetailURL func(item T) string

	// Initial arma los valores del formulario de edición desde la entidad.
	Initial func(item T) Values

	// Detail agrega datos a la vista de detalle (opcional).
	Detail func(ctx context.Context, user auth.Claims, item T) (map[string]any, error)

	// Errores del módulo que el factory traduce a 404 / 400.
	ErrNotFound     error
	ErrInvalidInput error
}

// Handlers son los cinco handlers estándar de una entidad.
// Create/Update muestran el form en GET y lo procesan en POST;
// Delete muestra la confirmación en GET y borra en POST.
type Handlers struct {
	List   http.HandlerFunc
	Detail http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

func NewHandlers[T Item](cfg Config[T]) Handlers {
	if err := cfg.Schema.Validate(); err != nil {
		panic(err)
	}
	h := &handlers[T]{cfg: cfg}
	return Handlers{
		List:   middleware.RequireUser(h.list),
		Detail: middleware.RequireUser(h.detail),
		Create: middleware.RequireUser(h.create),
		Update: middleware.RequireUser(h.update),
		Delete: middleware.RequireUser(h.delete),
	}
}

// Mount registra las rutas estándar relativas al router recibido.
func (h Handlers) Mount(r chi.Router, param string) {
	r.Get("/", h.List)
	r.Get("/create", h.Create)
	r.Post("/create", h.Create)
	r.Get("/{"+param+"}", h.Detail)
	r.Get("/{"+param+"}/update", h.Update)
	r.Post("/{"+param+"}/update", h.Update)
	r.Get("/{"+param+"}/delete", h.Delete)
	r.Post("/{"+param+"}/delete", h.Delete)
}

type handlers[T Item] struct {
	cfg Config[T]
}

func (h *handlers[T]) list(w http.ResponseWriter, r *http.Request, user auth.Claims) {
	items, err := h.cfg.Store.List(r.Context(), user)
	if err != nil {
		h.fail(w, user, "list", err)
		return
	}
	h.cfg.Views.Render(w, http.StatusOK, h.cfg.ListPage, web.Page{
		Title: title(h.cfg.Schema.Plural),
		User:  user,
		Data:  map[string]any{"items": items},
	})
}

func (h *handlers[T]) detail(w http.ResponseWriter, r *http.Request, user auth.Claims) {
	item, ok := h.load(w, r, user)
	if !ok {
		return
	}

	data := map[string]any{"item": item}
	if h.cfg.Detail != nil {
		extra, err := h.cfg.Detail(r.Context(), user, item)
		if err != nil {
			h.fail(w, user, "detail", err)
			return
		}
		for k, v := range extra {
			data[k] = v
		}
	}

	h.cfg.Views.Render(w, http.StatusOK, h.cfg.DetailPage, web.Page{
		Title: item.String(),
		User:  user,
		Data:  data,
	})
}

func (h *handlers[T]) create(w http.ResponseWriter, r *http.Request, user auth.Claims) {
	fields := h.cfg.Schema.fields(h.cfg.Schema.CreateFields)
	heading := "Add " + title(h.cfg.Schema.Entity)

	if r.Method != http.MethodPost {
		h.renderForm(w, http.StatusOK, user, heading, r.URL.Path, h.cfg.ListURL, fields, Values{}, Errors{})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, user, heading, r.URL.Path, h.cfg.ListURL, fields, Values{}, Errors{NonFieldErrors: "invalid form"})
		return
	}

	values, errs := h.cfg.Schema.Bind(r.PostForm, h.cfg.Schema.CreateFields)
	if errs != nil {
		h.renderForm(w, http.StatusBadRequest, user, heading, r.URL.Path, h.cfg.ListURL, fields, values, errs)
		return
	}

	item, err := h.cfg.Store.Create(r.Context(), user, values)
	if err != nil {
		if h.isInvalid(err) {
			h.renderForm(w, http.StatusBadRequest, user, heading, r.URL.Path, h.cfg.ListURL, fields, values, Errors{NonFieldErrors: err.Error()})
			return
		}
		h.fail(w, user, "create", err)
		return
	}

	h.cfg.Log.Info(h.cfg.Schema.Entity+" created", logger.Fields{"id": item.ItemID(), "user_id": user.UserID})
	web.Redirect(w, r, h.cfg.DetailURL(item))
}

func (h *handlers[T]) update(w http.ResponseWriter, r *http.Request, user auth.Claims) {
	current, ok := h.load(w, r, user)
	if !ok {
		return
	}

	fields := h.cfg.Schema.fields(h.cfg.Schema.UpdateFields)
	heading := "Edit " + current.String()
	cancel := h.cfg.DetailURL(current)

	if r.Method != http.MethodPost {
		h.renderForm(w, http.StatusOK, user, heading, r.URL.Path, cancel, fields, h.cfg.Initial(current), Errors{})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, user, heading, r.URL.Path, cancel, fields, h.cfg.Initial(current), Errors{NonFieldErrors: "invalid form"})
		return
	}

	values, errs := h.cfg.Schema.Bind(r.PostForm, h.cfg.Schema.UpdateFields)
	if errs != nil {
		h.renderForm(w, http.StatusBadRequest, user, heading, r.URL.Path, cancel, fields, values, errs)
		return
	}

	updated, err := h.cfg.Store.Update(r.Context(), user, current.ItemID(), values)
	if err != nil {
		switch {
		case h.isNotFound(err):
			h.cfg.Views.NotFound(w, user)
		case h.isInvalid(err):
			h.renderForm(w, http.StatusBadRequest, user, heading, r.URL.Path, cancel, fields, values, Errors{NonFieldErrors: err.Error()})
		default:
			h.fail(w, user, "update", err)
		}
		return
	}

	web.Redirect(w, r, h.cfg.DetailURL(updated))
}

func (h *handlers[T]) delete(w http.ResponseWriter, r *http.Request, user auth.Claims) {
	item, ok := h.load(w, r, user)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		h.cfg.Views.Render(w, http.StatusOK, "crud/confirm_delete", web.Page{
			Title: "Delete " + item.String(),
			User:  user,
			Data: map[string]any{
				"heading": "Delete " + title(h.cfg.Schema.Entity),
				"label":   item.String(),
				"action":  r.URL.Path,
				"cancel":  h.cfg.DetailURL(item),
			},
		})
		return
	}

	if err := h.cfg.Store.Delete(r.Context(), user, item.ItemID()); err != nil {
		if h.isNotFound(err) {
			h.cfg.Views.NotFound(w, user)
			return
		}
		h.fail(w, user, "delete", err)
		return
	}

	h.cfg.Log.Info(h.cfg.Schema.Entity+" deleted", logger.Fields{"id": item.ItemID(), "user_id": user.UserID})
	web.Redirect(w, r, h.cfg.ListURL)
}

// load resuelve el id de la ruta; responde 404 si no parsea o no existe.
func (h *handlers[T]) load(w http.ResponseWriter, r *http.Request, user auth.Claims) (T, bool) {
	var zero T

	id, err := PathID(r, h.cfg.Param)
	if err != nil {
		h.cfg.Views.NotFound(w, user)
		return zero, false
	}

	item, err := h.cfg.Store.Get(r.Context(), user, id)
	if err != nil {
		if h.isNotFound(err) {
			h.cfg.Views.NotFound(w, user)
			return zero, false
		}
		h.fail(w, user, "get", err)
		return zero, false
	}
	return item, true
}

func (h *handlers[T]) renderForm(w http.ResponseWriter, status int, user auth.Claims, heading, action, cancel string, fields []Field, values Values, errs Errors) {
	h.cfg.Views.Render(w, status, "crud/form", web.Page{
		Title: heading,
		User:  user,
		Data: map[string]any{
			"heading": heading,
			"action":  action,
			"cancel":  cancel,
			"fields":  fields,
			"values":  values,
			"errors":  errs,
		},
	})
}

func (h *handlers[T]) fail(w http.ResponseWriter, user auth.Claims, op string, err error) {
	h.cfg.Log.Error(h.cfg.Schema.Entity+" "+op+" failed", logger.Fields{"err": err, "user_id": user.UserID})
	h.cfg.Views.ServerError(w, user)
}

func (h *handlers[T]) isNotFound(err error) bool {
	return h.cfg.ErrNotFound != nil && errors.Is(err, h.cfg.ErrNotFound)
}

func (h *handlers[T]) isInvalid(err error) bool {
	return h.cfg.ErrInvalidInput != nil && errors.Is(err, h.cfg.ErrInvalidInput)
}

// PathID parsea un id positivo desde un path param de chi.
func PathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}

// ParseDate parsea fechas YYYY-MM-DD a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
