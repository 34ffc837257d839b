package web

import "fmt"

// routes mapea nombres de ruta a su path. Los handlers redirigen por nombre
// y los templates usan {{url "details" .ID}}.
var routes = map[string]string{
	"home":  "/",
	"about": "/about/",

	"index":            "/cats/",
	"details":          "/cats/%d/",
	"cats_create":      "/cats/create/",
	"cat_update":       "/cats/%d/update/",
	"cat_delete":       "/cats/%d/delete/",
	"add_feeding":      "/cats/%d/add_feeding/",
	"add_photo":        "/cats/%d/add_photo/",
	"assoc_toy":        "/cats/%d/assoc_toy/%d/",
	"assoc_toy_delete": "/cats/%d/assoc_toy/%d/delete/",

	"toys_index":  "/toys/",
	"toy_detail":  "/toys/%d/",
	"toys_create": "/toys/create/",
	"toys_update": "/toys/%d/update/",
	"toys_delete": "/toys/%d/delete/",

	"signup": "/accounts/signup/",
	"login":  "/accounts/login/",
	"logout": "/accounts/logout/",
}

// URL construye el path de una ruta con nombre. Un nombre desconocido es un
// bug de programación y entra en pánico.
func URL(name string, params ...any) string {
	pattern, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("web: unknown route %q", name))
	}
	if len(params) == 0 {
		return pattern
	}
	return fmt.Sprintf(pattern, params...)
}
