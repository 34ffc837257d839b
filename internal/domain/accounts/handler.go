package accounts

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cat-collector/internal/middleware"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/ports/auth"
	"cat-collector/internal/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, views *web.Renderer, log logger.Logger) {
	r.Route("/accounts", func(ar chi.Router) {
		ar.Get("/signup", signupHandler(svc, issuer, views, log))
		ar.Post("/signup", signupHandler(svc, issuer, views, log))
		ar.Get("/login", loginHandler(svc, issuer, views, log))
		ar.Post("/login", loginHandler(svc, issuer, views, log))
		ar.Post("/logout", logoutHandler(log))
	})
}

// signupHandler godoc
// @Summary Registro
// @Description Crea la cuenta, abre sesión (cookie cc_session) y redirige a /cats/. Si el form es inválido se re-renderiza con 400.
// @Tags accounts
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "Username (max 150, letras, números y @/./+/-/_)"
// @Param password1 formData string true "Password (min 8, no solo números)"
// @Param password2 formData string true "Confirmación"
// @Success 303 {string} string "redirect a /cats/"
// @Failure 400 {string} string "form con errores"
// @Router /accounts/signup [post]
func signupHandler(svc *Service, issuer auth.TokenIssuer, views *web.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			renderSignup(w, views, http.StatusOK, "", "", FieldErrors{})
			return
		}
		if err := r.ParseForm(); err != nil {
			renderSignup(w, views, http.StatusBadRequest, "", "Invalid form.", FieldErrors{})
			return
		}

		username := r.PostForm.Get("username")
		u, err := svc.Signup(r.Context(), SignupInput{
			Username:  username,
			Password1: r.PostForm.Get("password1"),
			Password2: r.PostForm.Get("password2"),
		})
		if err != nil {
			var fe FieldErrors
			if errors.As(err, &fe) {
				renderSignup(w, views, http.StatusBadRequest, username, "", fe)
				return
			}
			log.Error("signup failed", logger.Fields{"err": err})
			views.ServerError(w, auth.Claims{})
			return
		}

		log.Info("user signed up", logger.Fields{"user_id": u.ID})
		if !startSession(w, r, issuer, u, log) {
			views.ServerError(w, auth.Claims{})
			return
		}
		web.Redirect(w, r, web.URL("index"))
	}
}

func renderSignup(w http.ResponseWriter, views *web.Renderer, status int, username, msg string, errs FieldErrors) {
	if errs == nil {
		errs = FieldErrors{}
	}
	views.Render(w, status, "registration/signup", web.Page{
		Title: "Sign Up",
		Data: map[string]any{
			"username": username,
			"error":    msg,
			"errors":   map[string]string(errs),
		},
	})
}

// loginHandler godoc
// @Summary Login
// @Description Valida credenciales, setea la cookie de sesión y redirige a `next` (solo paths locales) o a /cats/.
// @Tags accounts
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param next formData string false "Path local al que volver"
// @Success 303 {string} string "redirect"
// @Failure 400 {string} string "credenciales inválidas"
// @Router /accounts/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer, views *web.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			renderLogin(w, views, http.StatusOK, "", safeNext(r.URL.Query().Get("next")), "")
			return
		}
		if err := r.ParseForm(); err != nil {
			renderLogin(w, views, http.StatusBadRequest, "", "", "Invalid form.")
			return
		}

		username := r.PostForm.Get("username")
		next := safeNext(r.PostForm.Get("next"))

		u, err := svc.Authenticate(r.Context(), username, r.PostForm.Get("password"))
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				log.Info("login rejected", logger.Fields{"username": username})
				renderLogin(w, views, http.StatusBadRequest, username, next,
					"Please enter a correct username and password. Note that both fields may be case-sensitive.")
				return
			}
			log.Error("login failed", logger.Fields{"err": err})
			views.ServerError(w, auth.Claims{})
			return
		}

		if !startSession(w, r, issuer, u, log) {
			views.ServerError(w, auth.Claims{})
			return
		}
		if next == "" {
			next = web.URL("index")
		}
		web.Redirect(w, r, next)
	}
}

func renderLogin(w http.ResponseWriter, views *web.Renderer, status int, username, next, msg string) {
	views.Render(w, status, "registration/login", web.Page{
		Title: "Log In",
		Data: map[string]any{
			"username": username,
			"next":     next,
			"error":    msg,
		},
	})
}

// logoutHandler godoc
// @Summary Logout
// @Description Borra la cookie de sesión y redirige al home.
// @Tags accounts
// @Success 303 {string} string "redirect a /"
// @Router /accounts/logout [post]
func logoutHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, ok := middleware.GetClaims(r.Context()); ok {
			log.Info("user logged out", logger.Fields{"user_id": user.UserID})
		}
		middleware.ClearSession(w)
		web.Redirect(w, r, web.URL("home"))
	}
}

func startSession(w http.ResponseWriter, r *http.Request, issuer auth.TokenIssuer, u User, log logger.Logger) bool {
	token, ttl, err := issuer.Issue(u.Claims())
	if err != nil {
		log.Error("issue session token", logger.Fields{"err": err, "user_id": u.ID})
		return false
	}
	middleware.SetSession(w, r, token, time.Duration(ttl)*time.Second)
	return true
}

// safeNext solo acepta paths locales; cualquier otra cosa se descarta.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") {
		return ""
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return ""
	}
	return next
}
