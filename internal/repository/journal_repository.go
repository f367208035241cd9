package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/model"
)

const journalColumns = "id, user_id, title, content, tags, sentiment_score, created_at"

var journalFrequencyColumns = map[model.FrequencyColumn]bool{
	model.ColumnTags: true,
}

type JournalRepo struct{ sqlStore }

func NewJournalRepo(db *sqlx.DB, d database.Dialect) *JournalRepo {
	return &JournalRepo{sqlStore{db: db, dialect: d}}
}

// Insert stores e as given; the sentiment score must already be computed.
func (r *JournalRepo) Insert(ctx context.Context, e *model.JournalEntry) error {
	e.CreatedAt = stamp(e.CreatedAt)
	id, err := r.insert(ctx,
		"INSERT INTO journal_entries (user_id, title, content, tags, sentiment_score, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.UserID, e.Title, e.Content, e.Tags, e.SentimentScore, e.CreatedAt)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *JournalRepo) GetByID(ctx context.Context, id int64) (model.JournalEntry, error) {
	var e model.JournalEntry
	err := r.get(ctx, &e, "SELECT "+journalColumns+" FROM journal_entries WHERE id = ?", id)
	return e, err
}

func (r *JournalRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.JournalEntry, error) {
	out := []model.JournalEntry{}
	err := r.selectRows(ctx, &out,
		"SELECT "+journalColumns+" FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		userID, limit, offset)
	return out, err
}

func (r *JournalRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, "journal_entries", userID)
}

func (r *JournalRepo) DeleteByIDAndUser(ctx context.Context, id, userID int64) error {
	return r.deleteOwned(ctx, "journal_entries", id, userID)
}

func (r *JournalRepo) TopValues(ctx context.Context, userID int64, column model.FrequencyColumn, n int) ([]model.Frequency, error) {
	return r.topValues(ctx, "journal_entries", journalFrequencyColumns, userID, column, n)
}

// AverageSentiment is the mean score over the user's journal rows, or 0 when
// there are none.
func (r *JournalRepo) AverageSentiment(ctx context.Context, userID int64) (float64, error) {
	var avg float64
	err := r.get(ctx, &avg,
		"SELECT COALESCE(AVG(sentiment_score), 0) FROM journal_entries WHERE user_id = ?", userID)
	return avg, err
}
