package accounts

import (
	"strconv"
	"time"

	"cat-collector/internal/ports/auth"
)

// User es la cuenta que firma las sesiones. El resto del dominio solo ve
// el id como string opaco (Claims.UserID).
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

func (u User) Claims() auth.Claims {
	return auth.Claims{UserID: strconv.FormatInt(u.ID, 10), Username: u.Username}
}
