package auth

import "strings"

// Claims identifica al usuario que actúa en el request.
type Claims struct {
	UserID   string
	Username string
}

// Anonymous indica que no hay usuario autenticado.
func (c Claims) Anonymous() bool {
	return strings.TrimSpace(c.UserID) == ""
}
