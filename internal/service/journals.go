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
	"github.com/iliyamo/mental-wellness-api/internal/sentiment"
)

type JournalInput struct {
	Title   string
	Content string
	Tags    *string
}

type JournalStats struct {
	AverageSentiment float64
	TopTags          []model.Frequency
}

type JournalService struct {
	users     repository.UserStore
	journals  repository.JournalStore
	analytics *Analytics
	events    queue.Publisher
	log       logging.Logger
	now       func() time.Time
}

func NewJournalService(users repository.UserStore, journals repository.JournalStore, analytics *Analytics,
	events queue.Publisher, log logging.Logger) *JournalService {
	return &JournalService{users: users, journals: journals, analytics: analytics, events: events, log: log, now: time.Now}
}

// Create scores the content, stores the entry and returns it with its score.
// The score is never recomputed afterwards.
func (s *JournalService) Create(ctx context.Context, id model.Identity, in JournalInput) (model.JournalEntry, error) {
	var fields []FieldError
	if in.Title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "Title is required"})
	}
	if in.Content == "" {
		fields = append(fields, FieldError{Field: "content", Message: "Content is required"})
	}
	if len(fields) > 0 {
		return model.JournalEntry{}, &ValidationError{Fields: fields}
	}

	e := model.JournalEntry{
		UserID:         id.UserID,
		Title:          in.Title,
		Content:        in.Content,
		Tags:           in.Tags,
		SentimentScore: sentiment.Score(in.Content),
		CreatedAt:      s.now(),
	}
	if err := s.journals.Insert(ctx, &e); err != nil {
		return model.JournalEntry{}, storeErr("insert journal entry", err)
	}
	metrics.RecordEntryCreated(queue.KindJournal)
	metrics.ObserveSentiment(e.SentimentScore)
	score := e.SentimentScore
	s.publish(ctx, queue.EntryEvent{
		Type: queue.EventEntryCreated, Kind: queue.KindJournal,
		EntryID: e.ID, UserID: id.UserID, Username: id.Username,
		Title: e.Title, SentimentScore: &score,
	})
	return e, nil
}

func (s *JournalService) ListByUsername(ctx context.Context, username string, page, limit *int) (Page[model.JournalEntry], error) {
	if err := checkWindow(page, limit); err != nil {
		return Page[model.JournalEntry]{}, err
	}
	u, err := findUser(ctx, s.users, username)
	if err != nil {
		return Page[model.JournalEntry]{}, err
	}
	total, err := s.journals.CountByUser(ctx, u.ID)
	if err != nil {
		return Page[model.JournalEntry]{}, storeErr("count journal entries", err)
	}
	w := pagination.Paginate(page, limit, total)
	entries := []model.JournalEntry{}
	if !w.Empty() {
		entries, err = s.journals.ListByUser(ctx, u.ID, w.Limit, w.Offset)
		if err != nil {
			return Page[model.JournalEntry]{}, storeErr("list journal entries", err)
		}
	}
	return Page[model.JournalEntry]{Entries: entries, Pagination: w.Envelope()}, nil
}

// Stats returns the user's average sentiment and five most frequent tags.
func (s *JournalService) Stats(ctx context.Context, username string) (JournalStats, error) {
	u, err := findUser(ctx, s.users, username)
	if err != nil {
		return JournalStats{}, err
	}
	avg, err := s.analytics.AverageSentiment(ctx, u.ID)
	if err != nil {
		return JournalStats{}, err
	}
	tags, err := s.analytics.TopN(ctx, u.ID, model.ColumnTags, DefaultTopN)
	if err != nil {
		return JournalStats{}, err
	}
	return JournalStats{AverageSentiment: avg, TopTags: tags}, nil
}

func (s *JournalService) Delete(ctx context.Context, id model.Identity, entryID int64) error {
	err := s.journals.DeleteByIDAndUser(ctx, entryID, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFoundOrUnauthorized
	}
	if err != nil {
		return storeErr("delete journal entry", err)
	}
	metrics.RecordEntryDeleted(queue.KindJournal)
	s.publish(ctx, queue.EntryEvent{
		Type: queue.EventEntryDeleted, Kind: queue.KindJournal,
		EntryID: entryID, UserID: id.UserID, Username: id.Username,
	})
	return nil
}

func (s *JournalService) publish(ctx context.Context, ev queue.EntryEvent) {
	publishEvent(ctx, s.events, s.log, s.now(), ev)
}
