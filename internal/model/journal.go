package model

import "time"

// JournalEntry mirrors the `journal_entries` table. SentimentScore is fixed
// when the entry is written and lies in [-1, 1].
type JournalEntry struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"-"`
	Title          string    `db:"title" json:"title"`
	Content        string    `db:"content" json:"content"`
	Tags           *string   `db:"tags" json:"tags"`
	SentimentScore float64   `db:"sentiment_score" json:"sentiment_score"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
