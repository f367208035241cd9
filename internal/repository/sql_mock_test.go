package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/model"
)

func newMock(t *testing.T, d database.Dialect) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, d.DriverName)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestUserRepo_Insert_PostgresReturning(t *testing.T) {
	db, mock := newMock(t, database.Postgres)
	repo := NewUserRepo(db, database.Postgres)

	mock.ExpectQuery(`INSERT INTO users \(username, api_key, created_at\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs("alice", "k1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u := model.User{Username: "alice", APIKey: "k1"}
	require.NoError(t, repo.Insert(context.Background(), &u))
	assert.EqualValues(t, 7, u.ID)
}

func TestUserRepo_Insert_PostgresDuplicate(t *testing.T) {
	db, mock := newMock(t, database.Postgres)
	repo := NewUserRepo(db, database.Postgres)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	u := model.User{Username: "alice", APIKey: "k1"}
	err := repo.Insert(context.Background(), &u)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Zero(t, u.ID)
}

func TestUserRepo_Insert_MySQL(t *testing.T) {
	db, mock := newMock(t, database.MySQL)
	repo := NewUserRepo(db, database.MySQL)

	mock.ExpectExec(`INSERT INTO users \(username, api_key, created_at\) VALUES \(\?, \?, \?\)`).
		WithArgs("alice", "k1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	u := model.User{Username: "alice", APIKey: "k1"}
	require.NoError(t, repo.Insert(context.Background(), &u))
	assert.EqualValues(t, 12, u.ID)

	again := model.User{Username: "alice", APIKey: "k2"}
	assert.ErrorIs(t, repo.Insert(context.Background(), &again), ErrDuplicate)
}

func TestMoodRepo_ListByUser_PostgresBindvars(t *testing.T) {
	db, mock := newMock(t, database.Postgres)
	repo := NewMoodRepo(db, database.Postgres)

	ts := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, user_id, mood, feeling, notes, created_at FROM mood_entries WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(3), 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "mood", "feeling", "notes", "created_at"}).
			AddRow(int64(1), int64(3), "happy", nil, "n", ts))

	rows, err := repo.ListByUser(context.Background(), 3, 10, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "happy", rows[0].Mood)
	assert.Nil(t, rows[0].Feeling)
	require.NotNil(t, rows[0].Notes)
	assert.Equal(t, "n", *rows[0].Notes)
	assert.Equal(t, ts, rows[0].CreatedAt)
}

func TestMoodRepo_DeleteByIDAndUser_MySQL(t *testing.T) {
	db, mock := newMock(t, database.MySQL)
	repo := NewMoodRepo(db, database.MySQL)

	mock.ExpectExec(`DELETE FROM mood_entries WHERE id = \? AND user_id = \?`).
		WithArgs(int64(5), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM mood_entries WHERE id = \? AND user_id = \?`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, repo.DeleteByIDAndUser(context.Background(), 5, 9), ErrNotFound)
	assert.NoError(t, repo.DeleteByIDAndUser(context.Background(), 5, 1))
}

func TestJournalRepo_TopValuesAndAverage_Postgres(t *testing.T) {
	db, mock := newMock(t, database.Postgres)
	repo := NewJournalRepo(db, database.Postgres)

	mock.ExpectQuery(`SELECT tags AS val, COUNT\(\*\) AS cnt FROM journal_entries WHERE user_id = \$1 AND tags IS NOT NULL GROUP BY tags ORDER BY cnt DESC LIMIT \$2`).
		WithArgs(int64(2), 5).
		WillReturnRows(sqlmock.NewRows([]string{"val", "cnt"}).AddRow("work", int64(4)).AddRow("home", int64(1)))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(sentiment_score\), 0\) FROM journal_entries WHERE user_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.3))

	top, err := repo.TopValues(context.Background(), 2, model.ColumnTags, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.Frequency{{Value: "work", Count: 4}, {Value: "home", Count: 1}}, top)

	avg, err := repo.AverageSentiment(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0.3, avg)
}

func TestJournalRepo_CountPropagatesStoreError(t *testing.T) {
	db, mock := newMock(t, database.MySQL)
	repo := NewJournalRepo(db, database.MySQL)

	boom := errors.New("connection refused")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries WHERE user_id = \?`).
		WithArgs(int64(1)).
		WillReturnError(boom)

	_, err := repo.CountByUser(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
