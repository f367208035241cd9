package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/model"
)

const moodColumns = "id, user_id, mood, feeling, notes, created_at"

var moodFrequencyColumns = map[model.FrequencyColumn]bool{
	model.ColumnMood:    true,
	model.ColumnFeeling: true,
}

type MoodRepo struct{ sqlStore }

func NewMoodRepo(db *sqlx.DB, d database.Dialect) *MoodRepo {
	return &MoodRepo{sqlStore{db: db, dialect: d}}
}

// Insert stores e and fills in ID and CreatedAt.
func (r *MoodRepo) Insert(ctx context.Context, e *model.MoodEntry) error {
	e.CreatedAt = stamp(e.CreatedAt)
	id, err := r.insert(ctx,
		"INSERT INTO mood_entries (user_id, mood, feeling, notes, created_at) VALUES (?, ?, ?, ?, ?)",
		e.UserID, e.Mood, e.Feeling, e.Notes, e.CreatedAt)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *MoodRepo) GetByID(ctx context.Context, id int64) (model.MoodEntry, error) {
	var e model.MoodEntry
	err := r.get(ctx, &e, "SELECT "+moodColumns+" FROM mood_entries WHERE id = ?", id)
	return e, err
}

// ListByUser returns one page of the user's entries, newest first.
func (r *MoodRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.MoodEntry, error) {
	out := []model.MoodEntry{}
	err := r.selectRows(ctx, &out,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		userID, limit, offset)
	return out, err
}

// ListByUserBetween returns the user's entries with from <= created_at < to,
// newest first.
func (r *MoodRepo) ListByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]model.MoodEntry, error) {
	out := []model.MoodEntry{}
	err := r.selectRows(ctx, &out,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = ? AND created_at >= ? AND created_at < ? ORDER BY created_at DESC, id DESC",
		userID, from.UTC(), to.UTC())
	return out, err
}

func (r *MoodRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, "mood_entries", userID)
}

// DeleteByIDAndUser returns ErrNotFound when the id does not exist or belongs
// to someone else; the two cases are not distinguished.
func (r *MoodRepo) DeleteByIDAndUser(ctx context.Context, id, userID int64) error {
	return r.deleteOwned(ctx, "mood_entries", id, userID)
}

func (r *MoodRepo) TopValues(ctx context.Context, userID int64, column model.FrequencyColumn, n int) ([]model.Frequency, error) {
	return r.topValues(ctx, "mood_entries", moodFrequencyColumns, userID, column, n)
}
