package memory

import (
	"sync"

	"cat-collector/internal/domain/accounts"
	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
)

type catToy struct {
	catID int64
	toyID int64
}

// DB es el store en memoria compartido por todos los repos, así las cascadas
// (cat => feedings/photos/asociaciones, toy => asociaciones) se resuelven
// bajo el mismo lock. Solo para dev y tests.
type DB struct {
	mu sync.RWMutex

	lastID map[string]int64

	cats     map[int64]cats.Cat
	feedings map[int64]cats.Feeding
	photos   map[int64]cats.Photo
	toys     map[int64]toys.Toy
	catToys  map[catToy]struct{}
	users    map[int64]accounts.User
}

func NewDB() *DB {
	return &DB{
		lastID:   make(map[string]int64),
		cats:     make(map[int64]cats.Cat),
		feedings: make(map[int64]cats.Feeding),
		photos:   make(map[int64]cats.Photo),
		toys:     make(map[int64]toys.Toy),
		catToys:  make(map[catToy]struct{}),
		users:    make(map[int64]accounts.User),
	}
}

// nextID asume el lock de escritura tomado. Los ids nunca se reutilizan.
func (db *DB) nextID(table string) int64 {
	db.lastID[table]++
	return db.lastID[table]
}

// CatRepos arma el set de repos que necesita cats.Service.
func (db *DB) CatRepos() cats.Repos {
	return cats.Repos{
		Cats:     &catRepo{db: db},
		Feedings: &feedingRepo{db: db},
		Photos:   &photoRepo{db: db},
		ToyLinks: &toyLinkRepo{db: db},
	}
}

func (db *DB) Toys() toys.Repository { return &toyRepo{db: db} }

func (db *DB) Users() accounts.Repository { return &userRepo{db: db} }
