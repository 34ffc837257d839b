package middleware

import (
	"net/http"
	"net/url"

	"cat-collector/internal/ports/auth"
)

// LoginPath es a donde se manda a los anónimos.
const LoginPath = "/accounts/login/"

// UserHandlerFunc recibe la identidad ya verificada como argumento explícito.
type UserHandlerFunc func(w http.ResponseWriter, r *http.Request, user auth.Claims)

// RequireUser corta requests anónimos con un redirect (303) al login,
// preservando el path original en ?next=.
func RequireUser(next UserHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetClaims(r.Context())
		if !ok {
			http.Redirect(w, r, LoginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}
