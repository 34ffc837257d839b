package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var ErrUnavailable = errors.New("photo store unavailable")

type Object struct {
	Body        []byte
	ContentType string
}

// Store guarda las fotos en memoria. Para dev sin bucket y para tests;
// Fail simula una caída del storage.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]Object

	Fail bool
}

func New(baseURL string) *Store {
	if baseURL == "" {
		baseURL = "http://localhost/photos/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Store{baseURL: baseURL, objects: make(map[string]Object)}
}

// Store lee el body fuera del lock; solo el alta en el mapa es exclusiva.
func (s *Store) Store(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if s.Fail {
		return "", ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{Body: b, ContentType: contentType}
	return s.baseURL + key, nil
}

func (s *Store) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	return o, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
