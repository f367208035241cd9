package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mental-wellness-api/internal/config"
	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/model"
)

func newTestDB(t *testing.T) (*sqlx.DB, database.Dialect) {
	t.Helper()
	db, d, err := database.Open(context.Background(), config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, d
}

func strp(s string) *string { return &s }

func mustUser(t *testing.T, r *UserRepo, name string) model.User {
	t.Helper()
	u := model.User{Username: name, APIKey: "key-" + name}
	require.NoError(t, r.Insert(context.Background(), &u))
	return u
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	db, d := newTestDB(t)
	users := NewUserRepo(db, d)

	alice := mustUser(t, users, "alice")
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "key-alice", got.APIKey)

	got, err = users.GetByAPIKey(ctx, "key-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.GetByAPIKey(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	dup := model.User{Username: "alice", APIKey: "another"}
	err = users.Insert(ctx, &dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	// the first user's key is unchanged
	got, err = users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "key-alice", got.APIKey)
}

func TestMoodRepo_ListCountDelete(t *testing.T) {
	ctx := context.Background()
	db, d := newTestDB(t)
	users := NewUserRepo(db, d)
	moods := NewMoodRepo(db, d)
	alice := mustUser(t, users, "alice")
	bob := mustUser(t, users, "bob")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := model.MoodEntry{UserID: alice.ID, Mood: "m", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, moods.Insert(ctx, &e))
	}
	other := model.MoodEntry{UserID: bob.ID, Mood: "calm", Feeling: strp("ok"), Notes: strp("n")}
	require.NoError(t, moods.Insert(ctx, &other))

	n, err := moods.CountByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	page, err := moods.ListByUser(ctx, alice.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))
	assert.Equal(t, base.Add(4*time.Hour), page[0].CreatedAt.UTC())
	assert.Nil(t, page[0].Feeling)

	empty, err := moods.ListByUser(ctx, alice.ID, 10, 50)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	got, err := moods.GetByID(ctx, other.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Feeling)
	assert.Equal(t, "ok", *got.Feeling)

	// alice cannot delete bob's entry; it survives
	assert.ErrorIs(t, moods.DeleteByIDAndUser(ctx, other.ID, alice.ID), ErrNotFound)
	_, err = moods.GetByID(ctx, other.ID)
	require.NoError(t, err)

	require.NoError(t, moods.DeleteByIDAndUser(ctx, other.ID, bob.ID))
	_, err = moods.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, moods.DeleteByIDAndUser(ctx, 99999, bob.ID), ErrNotFound)
}

func TestMoodRepo_ListByUserBetween(t *testing.T) {
	ctx := context.Background()
	db, d := newTestDB(t)
	users := NewUserRepo(db, d)
	moods := NewMoodRepo(db, d)
	alice := mustUser(t, users, "alice")

	stamps := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, ts := range stamps {
		e := model.MoodEntry{UserID: alice.ID, Mood: "m", CreatedAt: ts}
		require.NoError(t, moods.Insert(ctx, &e))
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := moods.ListByUserBetween(ctx, alice.ID, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, stamps[1], rows[0].CreatedAt.UTC())
	assert.Equal(t, stamps[0], rows[1].CreatedAt.UTC())
}

func TestMoodRepo_TopValues(t *testing.T) {
	ctx := context.Background()
	db, d := newTestDB(t)
	users := NewUserRepo(db, d)
	moods := NewMoodRepo(db, d)
	alice := mustUser(t, users, "alice")
	bob := mustUser(t, users, "bob")

	insert := func(uid int64, mood string, feeling *string) {
		e := model.MoodEntry{UserID: uid, Mood: mood, Feeling: feeling}
		require.NoError(t, moods.Insert(ctx, &e))
	}
	insert(alice.ID, "happy", strp("calm"))
	insert(alice.ID, "happy", nil)
	insert(alice.ID, "happy", nil)
	insert(alice.ID, "sad", strp("calm"))
	insert(alice.ID, "tired", strp("drained"))
	insert(bob.ID, "sad", nil)
	insert(bob.ID, "sad", nil)
	insert(bob.ID, "sad", nil)
	insert(bob.ID, "sad", nil)

	top, err := moods.TopValues(ctx, alice.ID, model.ColumnMood, 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, model.Frequency{Value: "happy", Count: 3}, top[0])
	assert.ElementsMatch(t, []model.Frequency{{Value: "sad", Count: 1}, {Value: "tired", Count: 1}}, top[1:])

	feelings, err := moods.TopValues(ctx, alice.ID, model.ColumnFeeling, 5)
	require.NoError(t, err)
	require.Len(t, feelings, 2)
	assert.Equal(t, model.Frequency{Value: "calm", Count: 2}, feelings[0])

	limited, err := moods.TopValues(ctx, alice.ID, model.ColumnMood, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Frequency{{Value: "happy", Count: 3}}, limited)

	none, err := moods.TopValues(ctx, 424242, model.ColumnMood, 5)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = moods.TopValues(ctx, alice.ID, model.ColumnTags, 5)
	assert.ErrorIs(t, err, ErrUnsupportedColumn)
	_, err = moods.TopValues(ctx, alice.ID, model.FrequencyColumn("mood; DROP TABLE users"), 5)
	assert.ErrorIs(t, err, ErrUnsupportedColumn)
}

func TestJournalRepo(t *testing.T) {
	ctx := context.Background()
	db, d := newTestDB(t)
	users := NewUserRepo(db, d)
	journals := NewJournalRepo(db, d)
	alice := mustUser(t, users, "alice")

	avg, err := journals.AverageSentiment(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	entries := []model.JournalEntry{
		{UserID: alice.ID, Title: "a", Content: "x", Tags: strp("work"), SentimentScore: 0.4},
		{UserID: alice.ID, Title: "b", Content: "y", Tags: strp("work"), SentimentScore: -0.2},
		{UserID: alice.ID, Title: "c", Content: "z", SentimentScore: 0.4},
	}
	for i := range entries {
		require.NoError(t, journals.Insert(ctx, &entries[i]))
		assert.NotZero(t, entries[i].ID)
	}

	avg, err = journals.AverageSentiment(ctx, alice.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, avg, 1e-9)

	n, err := journals.CountByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	list, err := journals.ListByUser(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Title) // same second, higher id first

	got, err := journals.GetByID(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.4, got.SentimentScore)

	tags, err := journals.TopValues(ctx, alice.ID, model.ColumnTags, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.Frequency{{Value: "work", Count: 2}}, tags)

	_, err = journals.TopValues(ctx, alice.ID, model.ColumnMood, 5)
	assert.ErrorIs(t, err, ErrUnsupportedColumn)

	require.NoError(t, journals.DeleteByIDAndUser(ctx, entries[0].ID, alice.ID))
	assert.ErrorIs(t, journals.DeleteByIDAndUser(ctx, entries[0].ID, alice.ID), ErrNotFound)
}
