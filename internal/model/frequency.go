package model

// FrequencyColumn names a column that may be grouped by in a top-N query.
// Only the constants below are accepted by the store.
type FrequencyColumn string

const (
	ColumnMood    FrequencyColumn = "mood"
	ColumnFeeling FrequencyColumn = "feeling"
	ColumnTags    FrequencyColumn = "tags"
)

// Frequency is one row of a top-N table: a distinct column value and how many
// of the user's rows carry it.
type Frequency struct {
	Value string `db:"val"`
	Count int64  `db:"cnt"`
}
