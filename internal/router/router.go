package router

import (
	"net/http"
	"time"

	_ "cat-collector/docs"
	"cat-collector/internal/adapters/auth/session"
	mem "cat-collector/internal/adapters/storage/memory"
	"cat-collector/internal/domain/accounts"
	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
	"cat-collector/internal/middleware"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/platform/metrics"
	"cat-collector/internal/ports/auth"
	"cat-collector/internal/ports/storage"
	"cat-collector/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Store es lo que cumple cualquier backend de persistencia (memory, sqlstore).
type Store interface {
	CatRepos() cats.Repos
	Toys() toys.Repository
	Users() accounts.Repository
}

// Sessions firma y verifica los tokens de sesión.
type Sessions interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

type Options struct {
	// Opcional: si no viene, in-memory.
	Store Store

	// Opcional: sin store de fotos las subidas se loguean y se descartan.
	Photos             storage.PhotoStore
	PhotoUploadTimeout time.Duration

	// Opcional: si no viene, se usa un manager JWT con secret aleatorio.
	Sessions Sessions
	DevAuth  bool // acepta X-Debug-User-ID (solo dev/tests)

	Location *time.Location

	// Costo bcrypt; 0 = default. Los tests usan bcrypt.MinCost.
	PasswordCost int

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	store := opts.Store
	if store == nil {
		store = mem.NewDB()
	}

	sessions := opts.Sessions
	if sessions == nil {
		mgr, err := session.NewManager("", 0)
		if err != nil {
			panic(err)
		}
		sessions = mgr
	}

	// templates embebidos: si no parsean es un bug de build
	views, err := web.NewRenderer(log)
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.AccessLog(log, m))

	r.Use(middleware.AuthContext(sessions, opts.DevAuth))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/", staticPage(views, "home", ""))
	r.Get("/about", staticPage(views, "about", "About"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.GetClaims(r.Context())
		views.NotFound(w, user)
	})

	// Services por módulo
	toysSvc := toys.NewService(store.Toys())
	catsSvc := cats.NewService(store.CatRepos(), cats.Options{
		Photos:        opts.Photos,
		UploadTimeout: opts.PhotoUploadTimeout,
		Location:      opts.Location,
		Log:           log.With(logger.Fields{"module": "cats"}),
		Metrics:       m,
	})
	accountsSvc := accounts.NewService(store.Users(), accounts.Options{Cost: opts.PasswordCost})

	// Rutas por módulo
	cats.RegisterRoutes(r, catsSvc, views, log.With(logger.Fields{"module": "cats"}))
	toys.RegisterRoutes(r, toysSvc, views, log.With(logger.Fields{"module": "toys"}))
	accounts.RegisterRoutes(r, accountsSvc, sessions, views, log.With(logger.Fields{"module": "accounts"}))

	return r
}

func staticPage(views *web.Renderer, name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.GetClaims(r.Context())
		views.Render(w, http.StatusOK, name, web.Page{Title: title, User: user})
	}
}
