package toys

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("toy not found")
)

const (
	maxNameLen  = 50
	maxColorLen = 20
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name  string
	Color string
}

func (in Input) normalize() (Input, error) {
	out := Input{Name: strings.TrimSpace(in.Name), Color: strings.TrimSpace(in.Color)}
	if out.Name == "" || out.Color == "" {
		return Input{}, fmt.Errorf("%w: name and color are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(out.Name) > maxNameLen || utf8.RuneCountInString(out.Color) > maxColorLen {
		return Input{}, fmt.Errorf("%w: name or color too long", ErrInvalidInput)
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Toy, error) {
	in, err := in.normalize()
	if err != nil {
		return Toy{}, err
	}
	return s.repo.Create(ctx, Toy{Name: in.Name, Color: in.Color})
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Toy, error) {
	in, err := in.normalize()
	if err != nil {
		return Toy{}, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Toy{}, err
	}
	t.Name = in.Name
	t.Color = in.Color
	if err := s.repo.Update(ctx, t); err != nil {
		return Toy{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Toy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Toy, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
