package service

import (
	"context"

	"github.com/iliyamo/mental-wellness-api/internal/model"
	"github.com/iliyamo/mental-wellness-api/internal/repository"
)

// DefaultTopN is how many rows a top-N table holds when the caller does not say.
const DefaultTopN = 5

// Analytics computes the per-user aggregates behind the stats endpoints.
type Analytics struct {
	moods    repository.MoodStore
	journals repository.JournalStore
}

func NewAnalytics(moods repository.MoodStore, journals repository.JournalStore) *Analytics {
	return &Analytics{moods: moods, journals: journals}
}

// AverageSentiment is the mean sentiment over the user's journal entries, or
// 0 when there are none.
func (a *Analytics) AverageSentiment(ctx context.Context, userID int64) (float64, error) {
	avg, err := a.journals.AverageSentiment(ctx, userID)
	if err != nil {
		return 0, storeErr("average sentiment", err)
	}
	return avg, nil
}

// TopN returns up to n (DefaultTopN when n <= 0) distinct non-null values of
// column with their counts, most frequent first. mood and feeling are read
// from mood entries, tags from journal entries.
func (a *Analytics) TopN(ctx context.Context, userID int64, column model.FrequencyColumn, n int) ([]model.Frequency, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	var (
		out []model.Frequency
		err error
	)
	switch column {
	case model.ColumnMood, model.ColumnFeeling:
		out, err = a.moods.TopValues(ctx, userID, column, n)
	case model.ColumnTags:
		out, err = a.journals.TopValues(ctx, userID, column, n)
	default:
		return nil, storeErr("top "+string(column), repository.ErrUnsupportedColumn)
	}
	if err != nil {
		return nil, storeErr("top "+string(column), err)
	}
	if out == nil {
		out = []model.Frequency{}
	}
	return out, nil
}
