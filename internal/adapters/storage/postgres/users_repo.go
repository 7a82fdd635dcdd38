package postgres

import (
	"context"

	"vet-records/internal/domain/users"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, username, password, created_at`

type UsersRepo struct {
	db *sqlx.DB
}

func NewUsersRepo(db *sqlx.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	q, args, err := sqlx.Named(`
		INSERT INTO users (email, username, password, created_at)
		VALUES (:email, :username, :password, :created_at)
		RETURNING id
	`, u)
	if err != nil {
		return users.User{}, translate(err, users.ErrNotFound, "bind user")
	}
	if err := r.db.GetContext(ctx, &u.ID, r.db.Rebind(q), args...); err != nil {
		return users.User{}, translate(err, users.ErrNotFound, "insert user")
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return r.getBy(ctx, `id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getBy(ctx, `email = $1`, email)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.getBy(ctx, `username = $1`, username)
}

func (r *UsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return translate(err, users.ErrNotFound, "update password")
	}
	return expectOne(res, users.ErrNotFound)
}

func (r *UsersRepo) getBy(ctx context.Context, where string, arg any) (users.User, error) {
	var u users.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		return users.User{}, translate(err, users.ErrNotFound, "get user")
	}
	return u, nil
}
