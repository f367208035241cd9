package repository

import (
	"context"
	"time"

	"github.com/iliyamo/mental-wellness-api/internal/model"
)

// UserStore is the capability set the services need over `users`.
type UserStore interface {
	Insert(ctx context.Context, u *model.User) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (model.User, error)
}

// MoodStore is the capability set the services need over `mood_entries`.
type MoodStore interface {
	Insert(ctx context.Context, e *model.MoodEntry) error
	GetByID(ctx context.Context, id int64) (model.MoodEntry, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.MoodEntry, error)
	ListByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]model.MoodEntry, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByIDAndUser(ctx context.Context, id, userID int64) error
	TopValues(ctx context.Context, userID int64, column model.FrequencyColumn, n int) ([]model.Frequency, error)
}

// JournalStore is the capability set the services need over `journal_entries`.
type JournalStore interface {
	Insert(ctx context.Context, e *model.JournalEntry) error
	GetByID(ctx context.Context, id int64) (model.JournalEntry, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.JournalEntry, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByIDAndUser(ctx context.Context, id, userID int64) error
	TopValues(ctx context.Context, userID int64, column model.FrequencyColumn, n int) ([]model.Frequency, error)
	AverageSentiment(ctx context.Context, userID int64) (float64, error)
}
