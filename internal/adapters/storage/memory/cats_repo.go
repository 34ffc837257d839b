package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
)

type catRepo struct {
	db *DB
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c.ID = r.db.nextID("cats")
	r.db.cats[c.ID] = c
	return c, nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.cats[c.ID]; !ok {
		return cats.ErrNotFound
	}
	r.db.cats[c.ID] = c
	return nil
}

func (r *catRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.cats[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func (r *catRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ownerUserID = strings.TrimSpace(ownerUserID)
	out := make([]cats.Cat, 0)
	for _, c := range r.db.cats {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *catRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.cats[id]; !ok {
		return cats.ErrNotFound
	}
	delete(r.db.cats, id)

	// cascada
	for fid, f := range r.db.feedings {
		if f.CatID == id {
			delete(r.db.feedings, fid)
		}
	}
	for pid, p := range r.db.photos {
		if p.CatID == id {
			delete(r.db.photos, pid)
		}
	}
	for k := range r.db.catToys {
		if k.catID == id {
			delete(r.db.catToys, k)
		}
	}
	return nil
}

type feedingRepo struct {
	db *DB
}

func (r *feedingRepo) Create(ctx context.Context, f cats.Feeding) (cats.Feeding, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.cats[f.CatID]; !ok {
		return cats.Feeding{}, cats.ErrNotFound
	}
	f.ID = r.db.nextID("feedings")
	r.db.feedings[f.ID] = f
	return f, nil
}

func (r *feedingRepo) ListByCat(ctx context.Context, catID int64) ([]cats.Feeding, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]cats.Feeding, 0)
	for _, f := range r.db.feedings {
		if f.CatID == catID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *feedingRepo) CountOnDay(ctx context.Context, catID int64, day time.Time) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for _, f := range r.db.feedings {
		if f.CatID == catID && f.Date.Equal(day) {
			n++
		}
	}
	return n, nil
}

type photoRepo struct {
	db *DB
}

func (r *photoRepo) Create(ctx context.Context, p cats.Photo) (cats.Photo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.cats[p.CatID]; !ok {
		return cats.Photo{}, cats.ErrNotFound
	}
	p.ID = r.db.nextID("photos")
	r.db.photos[p.ID] = p
	return p, nil
}

func (r *photoRepo) ListByCat(ctx context.Context, catID int64) ([]cats.Photo, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]cats.Photo, 0)
	for _, p := range r.db.photos {
		if p.CatID == catID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type toyLinkRepo struct {
	db *DB
}

func (r *toyLinkRepo) Add(ctx context.Context, catID, toyID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.cats[catID]; !ok {
		return cats.ErrNotFound
	}
	if _, ok := r.db.toys[toyID]; !ok {
		return toys.ErrNotFound
	}
	r.db.catToys[catToy{catID: catID, toyID: toyID}] = struct{}{}
	return nil
}

func (r *toyLinkRepo) Remove(ctx context.Context, catID, toyID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.catToys, catToy{catID: catID, toyID: toyID})
	return nil
}

func (r *toyLinkRepo) ToysOf(ctx context.Context, catID int64) ([]toys.Toy, error) {
	return r.filter(catID, true), nil
}

func (r *toyLinkRepo) ToysNotOn(ctx context.Context, catID int64) ([]toys.Toy, error) {
	return r.filter(catID, false), nil
}

func (r *toyLinkRepo) filter(catID int64, linked bool) []toys.Toy {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]toys.Toy, 0)
	for id, t := range r.db.toys {
		_, ok := r.db.catToys[catToy{catID: catID, toyID: id}]
		if ok == linked {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
