package guidance

import (
	"context"

	"github.com/alan-mat/careerpath/internal/logctx"
)

// SearchLogger records validated queries for later analysis.
type SearchLogger interface {
	RecordSearch(ctx context.Context, q SearchQuery) error
}

// RemoteResolver generates suggestions with an external service. It may fail.
type RemoteResolver interface {
	Resolve(ctx context.Context, q SearchQuery) (SuggestionResponse, error)
}

// FallbackResolver produces suggestions locally and cannot fail.
type FallbackResolver interface {
	Resolve(q SearchQuery) SuggestionResponse
}

// Result is a resolved response together with the resolver that produced it.
type Result struct {
	Response SuggestionResponse
	Source   Source
}

type ServiceOption func(*Service)

// WithSearchLogger sets the logger every validated query is recorded to.
func WithSearchLogger(l SearchLogger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// WithRemoteResolver enables remote resolution. Without it every
// query is answered by the fallback resolver.
func WithRemoteResolver(r RemoteResolver) ServiceOption {
	return func(s *Service) {
		s.remote = r
	}
}

// Service validates, records and resolves guidance searches.
type Service struct {
	logger   SearchLogger
	remote   RemoteResolver
	fallback FallbackResolver
}

func NewService(fallback FallbackResolver, opts ...ServiceOption) *Service {
	s := &Service{
		fallback: fallback,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search handles a raw request body. It returns a *[ValidationError] when the
// body is rejected; once past validation it always returns a result.
func (s *Service) Search(ctx context.Context, body []byte) (*Result, error) {
	q, err := ParseSearchQuery(body)
	if err != nil {
		return nil, err
	}

	s.record(ctx, q)
	return s.Resolve(ctx, q), nil
}

// Resolve answers an already validated query, attempting the remote
// resolver first and falling back to the local one on any failure.
func (s *Service) Resolve(ctx context.Context, q SearchQuery) *Result {
	l := logctx.From(ctx)

	if s.remote != nil {
		resp, err := s.remote.Resolve(ctx, q)
		if err == nil {
			l.Debug("resolved search remotely", "type", q.Type, "results", len(resp.Results))
			return &Result{Response: resp, Source: SourceRemote}
		}
		l.Warn("remote resolution failed, falling back to heuristic", "type", q.Type, "query", q.Query, "err", err)
	}

	return &Result{
		Response: s.fallback.Resolve(q),
		Source:   SourceHeuristic,
	}
}

func (s *Service) record(ctx context.Context, q SearchQuery) {
	if s.logger == nil {
		return
	}

	l := logctx.From(ctx)
	if err := s.logger.RecordSearch(ctx, q); err != nil {
		l.Warn("failed to record search", "type", q.Type, "err", err)
		return
	}
	l.Debug("recorded search", "type", q.Type)
}
