package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cat-collector/internal/adapters/storage/sqlstore"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// OpenStore abre la DB, aplica el schema y devuelve los repos SQL.
func OpenStore(ctx context.Context, dsn string) (*sqlstore.Store, *sql.DB, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	st, err := sqlstore.New(db, sqlstore.Postgres)
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
