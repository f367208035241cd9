package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/mental-wellness-api/internal/logging"
	"github.com/iliyamo/mental-wellness-api/internal/metrics"
	"github.com/iliyamo/mental-wellness-api/internal/model"
	"github.com/iliyamo/mental-wellness-api/internal/repository"
)

// Registration is what a new user gets back: the only time the key is shown.
type Registration struct {
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
}

type UserService struct {
	users  repository.UserStore
	log    logging.Logger
	newKey func() string
}

func NewUserService(users repository.UserStore, log logging.Logger) *UserService {
	return &UserService{users: users, log: log, newKey: uuid.NewString}
}

// Register creates a user with a fresh random API key. The username is stored
// exactly as given; a blank one is rejected. A taken username returns
// ErrConflict and leaves the existing user's key untouched.
func (s *UserService) Register(ctx context.Context, username string) (Registration, error) {
	if strings.TrimSpace(username) == "" {
		return Registration{}, invalid("username", "Username required")
	}
	u := model.User{Username: username, APIKey: s.newKey()}
	if err := s.users.Insert(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordRegistration("conflict")
			return Registration{}, ErrConflict
		}
		metrics.RecordRegistration("error")
		return Registration{}, storeErr("register user", err)
	}
	metrics.RecordRegistration("created")
	s.log.Info(ctx, "user registered", "user_id", u.ID, "username", u.Username)
	return Registration{Username: u.Username, APIKey: u.APIKey}, nil
}

// findUser resolves a username for the read-by-username operations.
func findUser(ctx context.Context, users repository.UserStore, username string) (model.User, error) {
	u, err := users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("lookup user", err)
	}
	return u, nil
}
