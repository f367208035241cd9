package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/mental-wellness-api/internal/logging"
	"github.com/iliyamo/mental-wellness-api/internal/metrics"
	"github.com/iliyamo/mental-wellness-api/internal/model"
	"github.com/iliyamo/mental-wellness-api/internal/pagination"
	"github.com/iliyamo/mental-wellness-api/internal/queue"
	"github.com/iliyamo/mental-wellness-api/internal/repository"
)

// DateLayout is the only accepted format for the date filter.
const DateLayout = "2006-01-02"

type MoodInput struct {
	Mood    string
	Feeling *string
	Notes   *string
}

type MoodStats struct {
	TopMoods    []model.Frequency
	TopFeelings []model.Frequency
}

type MoodService struct {
	users     repository.UserStore
	moods     repository.MoodStore
	analytics *Analytics
	events    queue.Publisher
	log       logging.Logger
	now       func() time.Time
}

func NewMoodService(users repository.UserStore, moods repository.MoodStore, analytics *Analytics,
	events queue.Publisher, log logging.Logger) *MoodService {
	return &MoodService{users: users, moods: moods, analytics: analytics, events: events, log: log, now: time.Now}
}

// Create stores a mood entry owned by the caller and returns it as stored.
func (s *MoodService) Create(ctx context.Context, id model.Identity, in MoodInput) (model.MoodEntry, error) {
	if in.Mood == "" {
		return model.MoodEntry{}, invalid("mood", "Mood is required")
	}
	e := model.MoodEntry{
		UserID:    id.UserID,
		Mood:      in.Mood,
		Feeling:   in.Feeling,
		Notes:     in.Notes,
		CreatedAt: s.now(),
	}
	if err := s.moods.Insert(ctx, &e); err != nil {
		return model.MoodEntry{}, storeErr("insert mood entry", err)
	}
	metrics.RecordEntryCreated(queue.KindMood)
	s.publish(ctx, queue.EntryEvent{
		Type: queue.EventEntryCreated, Kind: queue.KindMood,
		EntryID: e.ID, UserID: id.UserID, Username: id.Username, Mood: e.Mood,
	})
	return e, nil
}

// ListByUsername returns one page of the user's entries, newest first.
// Reading requires no API key.
func (s *MoodService) ListByUsername(ctx context.Context, username string, page, limit *int) (Page[model.MoodEntry], error) {
	if err := checkWindow(page, limit); err != nil {
		return Page[model.MoodEntry]{}, err
	}
	u, err := findUser(ctx, s.users, username)
	if err != nil {
		return Page[model.MoodEntry]{}, err
	}
	total, err := s.moods.CountByUser(ctx, u.ID)
	if err != nil {
		return Page[model.MoodEntry]{}, storeErr("count mood entries", err)
	}
	w := pagination.Paginate(page, limit, total)
	entries := []model.MoodEntry{}
	if !w.Empty() {
		entries, err = s.moods.ListByUser(ctx, u.ID, w.Limit, w.Offset)
		if err != nil {
			return Page[model.MoodEntry]{}, storeErr("list mood entries", err)
		}
	}
	return Page[model.MoodEntry]{Entries: entries, Pagination: w.Envelope()}, nil
}

// ListByDate returns every entry the user created on the given UTC calendar
// day (YYYY-MM-DD), newest first. It is not paginated.
func (s *MoodService) ListByDate(ctx context.Context, username, date string) ([]model.MoodEntry, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, invalid("date", "Date must be in YYYY-MM-DD format")
	}
	u, err := findUser(ctx, s.users, username)
	if err != nil {
		return nil, err
	}
	entries, err := s.moods.ListByUserBetween(ctx, u.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, storeErr("list mood entries by date", err)
	}
	if entries == nil {
		entries = []model.MoodEntry{}
	}
	return entries, nil
}

// Stats returns the user's five most frequent moods and feelings.
func (s *MoodService) Stats(ctx context.Context, username string) (MoodStats, error) {
	u, err := findUser(ctx, s.users, username)
	if err != nil {
		return MoodStats{}, err
	}
	moods, err := s.analytics.TopN(ctx, u.ID, model.ColumnMood, DefaultTopN)
	if err != nil {
		return MoodStats{}, err
	}
	feelings, err := s.analytics.TopN(ctx, u.ID, model.ColumnFeeling, DefaultTopN)
	if err != nil {
		return MoodStats{}, err
	}
	return MoodStats{TopMoods: moods, TopFeelings: feelings}, nil
}

// Delete removes entry id if the caller owns it. A missing id and someone
// else's id both yield ErrNotFoundOrUnauthorized.
func (s *MoodService) Delete(ctx context.Context, id model.Identity, entryID int64) error {
	err := s.moods.DeleteByIDAndUser(ctx, entryID, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFoundOrUnauthorized
	}
	if err != nil {
		return storeErr("delete mood entry", err)
	}
	metrics.RecordEntryDeleted(queue.KindMood)
	s.publish(ctx, queue.EntryEvent{
		Type: queue.EventEntryDeleted, Kind: queue.KindMood,
		EntryID: entryID, UserID: id.UserID, Username: id.Username,
	})
	return nil
}

func (s *MoodService) publish(ctx context.Context, ev queue.EntryEvent) {
	publishEvent(ctx, s.events, s.log, s.now(), ev)
}

// publishEvent stamps and sends ev. Failures are logged and never reach the
// caller: the write they describe has already succeeded.
func publishEvent(ctx context.Context, p queue.Publisher, log logging.Logger, at time.Time, ev queue.EntryEvent) {
	if p == nil {
		return
	}
	ev.OccurredAt = at.UTC().Format(time.RFC3339)
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn(ctx, "entry event not published", "type", ev.Type, "kind", ev.Kind, "entry_id", ev.EntryID, "err", err)
	}
}
