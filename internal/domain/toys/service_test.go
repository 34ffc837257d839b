package toys

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type testRepo struct {
	byID   map[int64]Toy
	lastID int64
}

func newTestRepo() *testRepo { return &testRepo{byID: map[int64]Toy{}} }

func (r *testRepo) Create(ctx context.Context, t Toy) (Toy, error) {
	r.lastID++
	t.ID = r.lastID
	r.byID[t.ID] = t
	return t, nil
}

func (r *testRepo) Update(ctx context.Context, t Toy) error {
	if _, ok := r.byID[t.ID]; !ok {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Toy, error) {
	t, ok := r.byID[id]
	if !ok {
		return Toy{}, ErrNotFound
	}
	return t, nil
}

func (r *testRepo) List(ctx context.Context) ([]Toy, error) {
	out := make([]Toy, 0, len(r.byID))
	for id := int64(1); id <= r.lastID; id++ {
		if t, ok := r.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreateAndUpdate(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	toy, err := svc.Create(ctx, Input{Name: " ball ", Color: "red"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if toy.Name != "ball" || toy.String() != "red ball" {
		t.Fatalf("toy=%+v str=%q", toy, toy.String())
	}

	got, err := svc.Update(ctx, toy.ID, Input{Name: "ball", Color: "blue"})
	if err != nil || got.Color != "blue" {
		t.Fatalf("Update: %+v %v", got, err)
	}

	if _, err := svc.Update(ctx, 99, Input{Name: "x", Color: "y"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	for _, in := range []Input{
		{Name: "", Color: "red"},
		{Name: "ball", Color: "  "},
		{Name: strings.Repeat("b", 51), Color: "red"},
		{Name: "ball", Color: strings.Repeat("r", 21)},
	} {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}
