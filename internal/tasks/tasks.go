package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/alan-mat/careerpath/internal/searchlog"
)

const (
	TypeSearchLog = "careerpath:search_log"

	searchLogMaxRetry = 5
)

type searchLogTaskPayload struct {
	Record searchlog.Record `json:"record"`
}

func NewSearchLogTask(r searchlog.Record) (*asynq.Task, error) {
	payload, err := json.Marshal(searchLogTaskPayload{Record: r})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSearchLog, payload, asynq.MaxRetry(searchLogMaxRetry)), nil
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueStore is a [searchlog.Store] that hands records to the worker
// instead of persisting them on the request path.
type QueueStore struct {
	client enqueuer
}

func NewQueueStore(client *asynq.Client) *QueueStore {
	return &QueueStore{client: client}
}

func (s *QueueStore) Save(ctx context.Context, r searchlog.Record) error {
	t, err := NewSearchLogTask(r)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to enqueue search log task: %w", err)
	}
	slog.Debug("enqueued task successfully", "id", info.ID, "record", r.ID)
	return nil
}

// SearchLogTaskHandler persists queued records into a store.
type SearchLogTaskHandler struct {
	store searchlog.Store
}

func NewSearchLogTaskHandler(store searchlog.Store) *SearchLogTaskHandler {
	return &SearchLogTaskHandler{
		store: store,
	}
}

func (h *SearchLogTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if t.Type() != TypeSearchLog {
		return fmt.Errorf("unrecognized task type '%s' (%w)", t.Type(), asynq.SkipRetry)
	}

	var p searchLogTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to decode search log payload: %v (%w)", err, asynq.SkipRetry)
	}
	slog.Info("received search log task", "id", p.Record.ID, "type", p.Record.Type)

	if err := h.store.Save(ctx, p.Record); err != nil {
		slog.Error("failed to persist search", "id", p.Record.ID, "err", err)
		return err
	}
	return nil
}
