// Package docs registra el documento swagger servido en /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["platform"],
                "summary": "Health check",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/cats/{catID}/add_feeding": {
            "post": {
                "description": "Crea un feeding (date + meal) para el gato de la ruta. Siempre redirige al detalle del gato; si el form es inválido no se guarda nada.",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["cats"],
                "summary": "Registrar feeding",
                "parameters": [
                    {"type": "integer", "description": "ID del gato", "name": "catID", "in": "path", "required": true},
                    {"type": "string", "description": "Fecha YYYY-MM-DD", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "description": "B, L o D", "name": "meal", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "redirect a /cats/{catID}/", "schema": {"type": "string"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}/add_photo": {
            "post": {
                "description": "Sube el archivo photo-file al object storage y lo asocia al gato. Sin archivo no hace nada. Si el storage falla se loguea y se redirige sin crear la foto.",
                "consumes": ["multipart/form-data"],
                "tags": ["cats"],
                "summary": "Subir foto",
                "parameters": [
                    {"type": "integer", "description": "ID del gato", "name": "catID", "in": "path", "required": true},
                    {"type": "file", "description": "Imagen", "name": "photo-file", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "redirect a /cats/{catID}/", "schema": {"type": "string"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}/assoc_toy/{toyID}": {
            "post": {
                "description": "Asocia el toy al gato (idempotente).",
                "tags": ["cats"],
                "summary": "Asociar toy",
                "parameters": [
                    {"type": "integer", "description": "ID del gato", "name": "catID", "in": "path", "required": true},
                    {"type": "integer", "description": "ID del toy", "name": "toyID", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "redirect a /cats/{catID}/", "schema": {"type": "string"}},
                    "404": {"description": "cat or toy not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}/assoc_toy/{toyID}/delete": {
            "post": {
                "description": "Quita la asociación gato-toy; si no existía no hace nada.",
                "tags": ["cats"],
                "summary": "Quitar toy",
                "parameters": [
                    {"type": "integer", "description": "ID del gato", "name": "catID", "in": "path", "required": true},
                    {"type": "integer", "description": "ID del toy", "name": "toyID", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "redirect a /cats/{catID}/", "schema": {"type": "string"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            }
        },
        "/accounts/signup": {
            "post": {
                "description": "Crea la cuenta, abre sesión (cookie cc_session) y redirige a /cats/. Si el form es inválido se re-renderiza con 400.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["accounts"],
                "summary": "Registro",
                "parameters": [
                    {"type": "string", "description": "Username (max 150, letras, números y @/./+/-/_)", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password (min 8, no solo números)", "name": "password1", "in": "formData", "required": true},
                    {"type": "string", "description": "Confirmación", "name": "password2", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "redirect a /cats/", "schema": {"type": "string"}},
                    "400": {"description": "form con errores", "schema": {"type": "string"}}
                }
            }
        },
        "/accounts/login": {
            "post": {
                "description": "Valida credenciales, setea la cookie de sesión y redirige a next (solo paths locales) o a /cats/.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["accounts"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Path local al que volver", "name": "next", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "redirect", "schema": {"type": "string"}},
                    "400": {"description": "credenciales inválidas", "schema": {"type": "string"}}
                }
            }
        },
        "/accounts/logout": {
            "post": {
                "description": "Borra la cookie de sesión y redirige al home.",
                "tags": ["accounts"],
                "summary": "Logout",
                "responses": {"303": {"description": "redirect a /", "schema": {"type": "string"}}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CatCollector",
	Description:      "Registro de gatos, toys, feedings y fotos por usuario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
