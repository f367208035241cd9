package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/model"
)

const userColumns = "id, username, api_key, created_at"

type UserRepo struct{ sqlStore }

func NewUserRepo(db *sqlx.DB, d database.Dialect) *UserRepo {
	return &UserRepo{sqlStore{db: db, dialect: d}}
}

// Insert stores u and fills in its ID and CreatedAt. A taken username or key
// yields ErrDuplicate and leaves the existing row untouched.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) error {
	u.CreatedAt = stamp(u.CreatedAt)
	id, err := r.insert(ctx,
		"INSERT INTO users (username, api_key, created_at) VALUES (?, ?, ?)",
		u.Username, u.APIKey, u.CreatedAt)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", username)
	return u, err
}

// GetByAPIKey fetches the user owning apiKey.
func (r *UserRepo) GetByAPIKey(ctx context.Context, apiKey string) (model.User, error) {
	var u model.User
	err := r.get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE api_key = ? LIMIT 1", apiKey)
	return u, err
}
