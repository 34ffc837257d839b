package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cat-collector/internal/adapters/storage/sqlstore"

	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

// Open abre (o crea) la DB SQLite con foreign keys activas, necesarias para
// las cascadas. Una sola conexión: SQLite serializa las escrituras igual.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "catcollector.db"
	}
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// dsn agrega el pragma al DSN para que aplique también si el pool reabre la conexión.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func OpenStore(ctx context.Context, path string) (*sqlstore.Store, *sql.DB, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	st, err := sqlstore.New(db, sqlstore.SQLite)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return st, db, nil
}
