package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	"cat-collector/internal/domain/accounts"
	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
)

// Dialect elige placeholders y schema.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store agrupa los repos SQL sobre un mismo *sql.DB. Las queries se escriben
// una vez con "?" y se reescriben a $n para Postgres.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) (*Store, error) {
	switch dialect {
	case Postgres, SQLite:
	default:
		return nil, fmt.Errorf("sqlstore: unknown dialect %q", dialect)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Migrate aplica el schema embebido del dialecto. Es idempotente.
func (s *Store) Migrate(ctx context.Context) error {
	raw, err := schemaFS.ReadFile("schema/" + string(s.dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	for _, stmt := range strings.Split(string(raw), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) CatRepos() cats.Repos {
	return cats.Repos{
		Cats:     &catRepo{s: s},
		Feedings: &feedingRepo{s: s},
		Photos:   &photoRepo{s: s},
		ToyLinks: &toyLinkRepo{s: s},
	}
}

func (s *Store) Toys() toys.Repository { return &toyRepo{s: s} }

func (s *Store) Users() accounts.Repository { return &userRepo{s: s} }

// rebind pasa "?" a "$1..$n" en Postgres. Las queries no llevan "?" literales.
func (s *Store) rebind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(q), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(q), args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(q), args...)
}

// exists responde si hay una fila con ese id en la tabla (nombre fijo, no input).
func (s *Store) exists(ctx context.Context, table string, id int64) (bool, error) {
	var one int
	err := s.queryRow(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
