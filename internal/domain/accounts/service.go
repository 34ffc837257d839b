package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-collector/internal/platform/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// signupForm lleva las reglas del registro. maxbytes=72 es el límite de bcrypt.
type signupForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Password1 string `form:"password1" validate:"required,min=8,maxbytes=72,notnumeric"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

const (
	msgUsernameTaken    = "A user with that username already exists."
	msgPasswordMismatch = "The two password fields didn't match."
)

var signupMessages = validation.Messages{
	"password1.min":        "This password is too short. It must contain at least %s characters.",
	"password1.notnumeric": "This password is entirely numeric.",
	"password2.eqfield":    msgPasswordMismatch,
}

// FieldErrors son los errores de validación de signup por campo.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for k, v := range e {
		parts = append(parts, k+": "+v)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e FieldErrors) Is(target error) bool { return target == ErrInvalidInput }

type Service struct {
	repo Repository
	cost int
	now  func() time.Time

	// dummy se compara cuando el usuario no existe para igualar tiempos.
	dummy []byte
}

type Options struct {
	// Cost de bcrypt; 0 usa bcrypt.DefaultCost.
	Cost int
}

func NewService(repo Repository, opts Options) *Service {
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &Service{repo: repo, cost: cost, now: time.Now, dummy: dummy}
}

type SignupInput struct {
	Username  string
	Password1 string
	Password2 string
}

// Signup valida el form, hashea la password y crea el usuario.
// Los errores de validación vuelven como FieldErrors.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	username := strings.TrimSpace(in.Username)

	found, err := validation.Struct(signupForm{
		Username:  username,
		Password1: in.Password1,
		Password2: in.Password2,
	}, signupMessages)
	if err != nil {
		return User{}, err
	}
	errs := FieldErrors(found)
	if errs == nil {
		errs = FieldErrors{}
	}
	// Si password1 ya es inválida no se compara con la confirmación.
	if _, bad := errs["password1"]; bad && errs["password2"] == msgPasswordMismatch {
		delete(errs, "password2")
	}

	if _, ok := errs["username"]; !ok {
		if _, err := s.repo.GetByUsername(ctx, username); err == nil {
			errs["username"] = msgUsernameTaken
		} else if !errors.Is(err, ErrNotFound) {
			return User{}, err
		}
	}
	if len(errs) > 0 {
		return User{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, User{Username: username, PasswordHash: hash, CreatedAt: s.now()})
	if errors.Is(err, ErrUsernameTaken) {
		return User{}, FieldErrors{"username": msgUsernameTaken}
	}
	return u, err
}

// Authenticate devuelve ErrInvalidCredentials tanto si el usuario no existe
// como si la password no coincide.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}
