// Package searchlog records validated guidance searches for later analysis.
package searchlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alan-mat/careerpath/internal/guidance"
)

// DefaultTimeout bounds a single record call.
const DefaultTimeout = 2 * time.Second

// Record is a persisted search.
type Record struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRecord(q guidance.SearchQuery) Record {
	return Record{
		ID:        uuid.NewString(),
		Type:      q.Type.String(),
		Query:     q.Query,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists search records.
type Store interface {
	Save(ctx context.Context, r Record) error
}

// Logger records searches into a Store, bounding every call by a timeout.
type Logger struct {
	store   Store
	timeout time.Duration
}

func NewLogger(store Store, timeout time.Duration) *Logger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Logger{
		store:   store,
		timeout: timeout,
	}
}

func (l *Logger) RecordSearch(ctx context.Context, q guidance.SearchQuery) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	return l.store.Save(ctx, NewRecord(q))
}

// SlogStore writes records to a structured logger. It never fails.
type SlogStore struct {
	logger *slog.Logger
}

func NewSlogStore(logger *slog.Logger) *SlogStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogStore{logger: logger}
}

func (s *SlogStore) Save(ctx context.Context, r Record) error {
	s.logger.InfoContext(ctx, "search recorded", "id", r.ID, "type", r.Type, "query", r.Query, "created_at", r.CreatedAt)
	return nil
}
