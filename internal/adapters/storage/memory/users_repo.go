package memory

import (
	"context"

	"cat-collector/internal/domain/accounts"
)

type userRepo struct {
	db *DB
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) (accounts.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return accounts.User{}, accounts.ErrUsernameTaken
		}
	}
	u.ID = r.db.nextID("users")
	r.db.users[u.ID] = u
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return accounts.User{}, accounts.ErrNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (accounts.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, nil
}
