package memory

import (
	"context"
	"sort"

	"cat-collector/internal/domain/toys"
)

type toyRepo struct {
	db *DB
}

func (r *toyRepo) Create(ctx context.Context, t toys.Toy) (toys.Toy, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t.ID = r.db.nextID("toys")
	r.db.toys[t.ID] = t
	return t, nil
}

func (r *toyRepo) Update(ctx context.Context, t toys.Toy) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.toys[t.ID]; !ok {
		return toys.ErrNotFound
	}
	r.db.toys[t.ID] = t
	return nil
}

func (r *toyRepo) GetByID(ctx context.Context, id int64) (toys.Toy, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.toys[id]
	if !ok {
		return toys.Toy{}, toys.ErrNotFound
	}
	return t, nil
}

func (r *toyRepo) List(ctx context.Context) ([]toys.Toy, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]toys.Toy, 0, len(r.db.toys))
	for _, t := range r.db.toys {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete solo arrastra las asociaciones; los gatos quedan intactos.
func (r *toyRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.toys[id]; !ok {
		return toys.ErrNotFound
	}
	delete(r.db.toys, id)
	for k := range r.db.catToys {
		if k.toyID == id {
			delete(r.db.catToys, k)
		}
	}
	return nil
}
