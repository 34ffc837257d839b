package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	byID   map[int64]User
	lastID int64
}

func newTestRepo() *testRepo { return &testRepo{byID: map[int64]User{}} }

func (r *testRepo) Create(ctx context.Context, u User) (User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return User{}, ErrUsernameTaken
		}
	}
	r.lastID++
	u.ID = r.lastID
	r.byID[u.ID] = u
	return u, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func newTestService() *Service {
	return NewService(newTestRepo(), Options{Cost: bcrypt.MinCost})
}

func TestSignupAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "alice", Password1: "correct-horse", Password2: "correct-horse"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if string(u.PasswordHash) == "correct-horse" {
		t.Fatalf("password stored in clear")
	}
	if c := u.Claims(); c.UserID != "1" || c.Username != "alice" {
		t.Fatalf("claims=%+v", c)
	}

	if _, err := svc.Authenticate(ctx, "alice", "correct-horse"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "bob", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, _ = svc.Signup(ctx, SignupInput{Username: "taken", Password1: "correct-horse", Password2: "correct-horse"})

	cases := []struct {
		name  string
		in    SignupInput
		field string
		msg   string
	}{
		{"empty username", SignupInput{Password1: "correct-horse", Password2: "correct-horse"}, "username", "required"},
		{"bad charset", SignupInput{Username: "al ice", Password1: "correct-horse", Password2: "correct-horse"}, "username", "valid username"},
		{"too long", SignupInput{Username: strings.Repeat("a", 151), Password1: "correct-horse", Password2: "correct-horse"}, "username", "at most 150"},
		{"taken", SignupInput{Username: "taken", Password1: "correct-horse", Password2: "correct-horse"}, "username", "already exists"},
		{"short password", SignupInput{Username: "bob", Password1: "short", Password2: "short"}, "password1", "too short"},
		{"numeric password", SignupInput{Username: "bob", Password1: "12345678", Password2: "12345678"}, "password1", "entirely numeric"},
		{"mismatch", SignupInput{Username: "bob", Password1: "correct-horse", Password2: "other-horse"}, "password2", "didn't match"},
		{"password too long", SignupInput{Username: "bob", Password1: strings.Repeat("p", 73), Password2: strings.Repeat("p", 73)}, "password1", "at most 72 bytes"},
		{"missing confirmation", SignupInput{Username: "bob", Password1: "correct-horse"}, "password2", "required"},
	}
	for _, tc := range cases {
		_, err := svc.Signup(ctx, tc.in)
		var fe FieldErrors
		if !errors.As(err, &fe) {
			t.Fatalf("%s: expected FieldErrors, got %v", tc.name, err)
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: FieldErrors should match ErrInvalidInput", tc.name)
		}
		if !strings.Contains(fe[tc.field], tc.msg) {
			t.Fatalf("%s: %s=%q", tc.name, tc.field, fe[tc.field])
		}
	}
}

func TestSignupSkipsMismatchWhenPasswordInvalid(t *testing.T) {
	svc := newTestService()
	_, err := svc.Signup(context.Background(), SignupInput{Username: "bob", Password1: "short", Password2: "different"})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fe["password2"]; ok {
		t.Fatalf("password2 should not be compared: %v", fe)
	}
	if !strings.Contains(fe["password1"], "too short") {
		t.Fatalf("password1=%q", fe["password1"])
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"/cats/":               "/cats/",
		"":                     "",
		"https://evil.example": "",
		"//evil.example":       "",
		`/\evil.example`:       "",
		"cats/":                "",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Fatalf("safeNext(%q)=%q want %q", in, got, want)
		}
	}
}
