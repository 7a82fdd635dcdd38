package memory

import (
	"context"

	"vet-records/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func NewUserRepo(s *Store) users.Repository {
	return &userRepo{s: s}
}

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return users.User{}, users.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return users.User{}, users.ErrUsernameTaken
		}
	}

	u.ID = r.s.nextID("users")
	r.s.users[u.ID] = u
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.find(func(u users.User) bool { return u.Email == email })
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.find(func(u users.User) bool { return u.Username == username })
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Password = hash
	r.s.users[id] = u
	return nil
}

func (r *userRepo) find(match func(users.User) bool) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}
