package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
)

type catRepo struct {
	s *Store
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	err := r.s.queryRow(ctx, `
		INSERT INTO cats (owner_user_id, name, breed, description, age, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, c.OwnerUserID, c.Name, c.Breed, c.Description, c.Age, c.CreatedAt.UTC()).Scan(&c.ID)
	if err != nil {
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	res, err := r.s.exec(ctx, `
		UPDATE cats
		SET description = ?, age = ?
		WHERE id = ?
	`, c.Description, c.Age, c.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

const catColumns = `id, owner_user_id, name, breed, description, age, created_at`

func scanCat(sc interface{ Scan(...any) error }) (cats.Cat, error) {
	var c cats.Cat
	err := sc.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Breed, &c.Description, &c.Age, dbTime{&c.CreatedAt})
	return c, err
}

func (r *catRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	c, err := scanCat(r.s.queryRow(ctx, `SELECT `+catColumns+` FROM cats WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, err
}

func (r *catRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	rows, err := r.s.query(ctx, `SELECT `+catColumns+` FROM cats WHERE owner_user_id = ? ORDER BY id`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete confía en ON DELETE CASCADE para feedings, photos y cat_toys.
func (r *catRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.s.exec(ctx, `DELETE FROM cats WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

type feedingRepo struct {
	s *Store
}

func (r *feedingRepo) Create(ctx context.Context, f cats.Feeding) (cats.Feeding, error) {
	ok, err := r.s.exists(ctx, "cats", f.CatID)
	if err != nil {
		return cats.Feeding{}, err
	}
	if !ok {
		return cats.Feeding{}, cats.ErrNotFound
	}

	err = r.s.queryRow(ctx, `
		INSERT INTO feedings (cat_id, date, meal)
		VALUES (?, ?, ?)
		RETURNING id
	`, f.CatID, dateParam(f.Date), string(f.Meal)).Scan(&f.ID)
	if err != nil {
		return cats.Feeding{}, err
	}
	f.Date = asDay(f.Date)
	return f, nil
}

func (r *feedingRepo) ListByCat(ctx context.Context, catID int64) ([]cats.Feeding, error) {
	rows, err := r.s.query(ctx, `
		SELECT id, cat_id, date, meal
		FROM feedings
		WHERE cat_id = ?
		ORDER BY date DESC, id DESC
	`, catID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Feeding, 0)
	for rows.Next() {
		var (
			f    cats.Feeding
			meal string
		)
		if err := rows.Scan(&f.ID, &f.CatID, dbTime{&f.Date}, &meal); err != nil {
			return nil, err
		}
		f.Date = asDay(f.Date)
		f.Meal = cats.Meal(meal)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *feedingRepo) CountOnDay(ctx context.Context, catID int64, day time.Time) (int, error) {
	var n int
	err := r.s.queryRow(ctx, `SELECT COUNT(*) FROM feedings WHERE cat_id = ? AND date = ?`, catID, dateParam(day)).Scan(&n)
	return n, err
}

type photoRepo struct {
	s *Store
}

func (r *photoRepo) Create(ctx context.Context, p cats.Photo) (cats.Photo, error) {
	ok, err := r.s.exists(ctx, "cats", p.CatID)
	if err != nil {
		return cats.Photo{}, err
	}
	if !ok {
		return cats.Photo{}, cats.ErrNotFound
	}

	err = r.s.queryRow(ctx, `INSERT INTO photos (url, cat_id) VALUES (?, ?) RETURNING id`, p.URL, p.CatID).Scan(&p.ID)
	if err != nil {
		return cats.Photo{}, err
	}
	return p, nil
}

func (r *photoRepo) ListByCat(ctx context.Context, catID int64) ([]cats.Photo, error) {
	rows, err := r.s.query(ctx, `SELECT id, cat_id, url FROM photos WHERE cat_id = ? ORDER BY id`, catID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Photo, 0)
	for rows.Next() {
		var p cats.Photo
		if err := rows.Scan(&p.ID, &p.CatID, &p.URL); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type toyLinkRepo struct {
	s *Store
}

func (r *toyLinkRepo) Add(ctx context.Context, catID, toyID int64) error {
	ok, err := r.s.exists(ctx, "cats", catID)
	if err != nil {
		return err
	}
	if !ok {
		return cats.ErrNotFound
	}
	ok, err = r.s.exists(ctx, "toys", toyID)
	if err != nil {
		return err
	}
	if !ok {
		return toys.ErrNotFound
	}

	_, err = r.s.exec(ctx, `
		INSERT INTO cat_toys (cat_id, toy_id)
		VALUES (?, ?)
		ON CONFLICT (cat_id, toy_id) DO NOTHING
	`, catID, toyID)
	return err
}

func (r *toyLinkRepo) Remove(ctx context.Context, catID, toyID int64) error {
	_, err := r.s.exec(ctx, `DELETE FROM cat_toys WHERE cat_id = ? AND toy_id = ?`, catID, toyID)
	return err
}

func (r *toyLinkRepo) ToysOf(ctx context.Context, catID int64) ([]toys.Toy, error) {
	return r.s.listToys(ctx, `
		SELECT t.id, t.name, t.color
		FROM toys t
		JOIN cat_toys ct ON ct.toy_id = t.id
		WHERE ct.cat_id = ?
		ORDER BY t.id
	`, catID)
}

func (r *toyLinkRepo) ToysNotOn(ctx context.Context, catID int64) ([]toys.Toy, error) {
	return r.s.listToys(ctx, `
		SELECT t.id, t.name, t.color
		FROM toys t
		WHERE NOT EXISTS (
			SELECT 1 FROM cat_toys ct WHERE ct.toy_id = t.id AND ct.cat_id = ?
		)
		ORDER BY t.id
	`, catID)
}
