// Package queue carries entry lifecycle events over RabbitMQ: the payload,
// the publishers used by the services, and the consumer that turns events
// into an activity log.
package queue

const (
	EventEntryCreated = "entry.created"
	EventEntryDeleted = "entry.deleted"

	KindMood    = "mood"
	KindJournal = "journal"
)

// EntryEvent is published after an entry is written or removed. It carries
// enough for downstream consumers to log or count activity without querying
// the store; entry bodies (notes, journal content) are never included.
type EntryEvent struct {
	Type           string   `json:"type"`
	Kind           string   `json:"kind"`
	EntryID        int64    `json:"entry_id"`
	UserID         int64    `json:"user_id"`
	Username       string   `json:"username"`
	Mood           string   `json:"mood,omitempty"`
	Title          string   `json:"title,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	OccurredAt     string   `json:"occurred_at"`
}
