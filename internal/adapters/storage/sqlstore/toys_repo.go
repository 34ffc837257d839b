package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"cat-collector/internal/domain/toys"
)

type toyRepo struct {
	s *Store
}

func (r *toyRepo) Create(ctx context.Context, t toys.Toy) (toys.Toy, error) {
	err := r.s.queryRow(ctx, `INSERT INTO toys (name, color) VALUES (?, ?) RETURNING id`, t.Name, t.Color).Scan(&t.ID)
	if err != nil {
		return toys.Toy{}, err
	}
	return t, nil
}

func (r *toyRepo) Update(ctx context.Context, t toys.Toy) error {
	res, err := r.s.exec(ctx, `UPDATE toys SET name = ?, color = ? WHERE id = ?`, t.Name, t.Color, t.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return toys.ErrNotFound
	}
	return nil
}

func (r *toyRepo) GetByID(ctx context.Context, id int64) (toys.Toy, error) {
	var t toys.Toy
	err := r.s.queryRow(ctx, `SELECT id, name, color FROM toys WHERE id = ?`, id).Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return toys.Toy{}, toys.ErrNotFound
	}
	return t, err
}

func (r *toyRepo) List(ctx context.Context) ([]toys.Toy, error) {
	return r.s.listToys(ctx, `SELECT id, name, color FROM toys ORDER BY id`)
}

func (r *toyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.s.exec(ctx, `DELETE FROM toys WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return toys.ErrNotFound
	}
	return nil
}

func (s *Store) listToys(ctx context.Context, q string, args ...any) ([]toys.Toy, error) {
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]toys.Toy, 0)
	for rows.Next() {
		var t toys.Toy
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
