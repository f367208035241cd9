package model

import "time"

// MoodEntry mirrors the `mood_entries` table. Feeling and Notes are optional
// and stay nil when the client did not send them.
type MoodEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Mood      string    `db:"mood" json:"mood"`
	Feeling   *string   `db:"feeling" json:"feeling"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
