package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/model"
)

// sqlStore holds what every table repository shares: the handle and the
// dialect. Queries are written with ? placeholders and rebound by sqlx.
type sqlStore struct {
	db      *sqlx.DB
	dialect database.Dialect
}

// insert runs an INSERT and returns the new row id.
func (s sqlStore) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dialect.Returning {
		var id int64
		err := s.db.QueryRowxContext(ctx, s.db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, s.mapErr(err)
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, s.mapErr(err)
	}
	return res.LastInsertId()
}

func (s sqlStore) get(ctx context.Context, dest any, query string, args ...any) error {
	return s.mapErr(s.db.GetContext(ctx, dest, s.db.Rebind(query), args...))
}

func (s sqlStore) selectRows(ctx context.Context, dest any, query string, args ...any) error {
	return s.mapErr(s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...))
}

// deleteOwned removes one row only when it belongs to userID.
func (s sqlStore) deleteOwned(ctx context.Context, table string, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind("DELETE FROM "+table+" WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s sqlStore) count(ctx context.Context, table string, userID int64) (int64, error) {
	var n int64
	err := s.get(ctx, &n, "SELECT COUNT(*) FROM "+table+" WHERE user_id = ?", userID)
	return n, err
}

// topValues groups the user's rows by column and returns the n most frequent
// non-NULL values. Ties keep whatever order the engine's grouping yields.
func (s sqlStore) topValues(ctx context.Context, table string, allowed map[model.FrequencyColumn]bool,
	userID int64, column model.FrequencyColumn, n int) ([]model.Frequency, error) {
	if !allowed[column] {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnsupportedColumn, table, column)
	}
	col := string(column)
	q := "SELECT " + col + " AS val, COUNT(*) AS cnt FROM " + table +
		" WHERE user_id = ? AND " + col + " IS NOT NULL" +
		" GROUP BY " + col + " ORDER BY cnt DESC LIMIT ?"
	out := []model.Frequency{}
	if err := s.selectRows(ctx, &out, q, userID, n); err != nil {
		return nil, err
	}
	return out, nil
}

func (s sqlStore) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// stamp returns t, or the current UTC time truncated to the second when t is
// zero. Every backend stores at least second precision, so the value handed
// back to the caller matches what a later read returns.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Second)
}
