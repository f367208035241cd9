package service

import (
	"context"
	"errors"

	"github.com/iliyamo/mental-wellness-api/internal/model"
	"github.com/iliyamo/mental-wellness-api/internal/repository"
)

// IdentityResolver maps an API key to the user that owns it.
type IdentityResolver struct {
	users repository.UserStore
}

func NewIdentityResolver(users repository.UserStore) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve returns ErrMissingCredential for an empty key and
// ErrInvalidCredential for a key nobody owns. It has no side effects.
func (r *IdentityResolver) Resolve(ctx context.Context, apiKey string) (model.Identity, error) {
	if apiKey == "" {
		return model.Identity{}, ErrMissingCredential
	}
	u, err := r.users.GetByAPIKey(ctx, apiKey)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Identity{}, ErrInvalidCredential
	}
	if err != nil {
		return model.Identity{}, storeErr("resolve api key", err)
	}
	return model.Identity{UserID: u.ID, Username: u.Username}, nil
}
