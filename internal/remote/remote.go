// Package remote resolves guidance searches with a text generation provider.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/guidance"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrResolution wraps every failure returned by [Resolver.Resolve].
	ErrResolution   = errors.New("remote resolution failed")
	ErrEmptyContent = errors.New("generator returned no content")
)

type Option func(*Resolver)

func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithModel(name string) Option {
	return func(r *Resolver) {
		r.model = name
	}
}

func WithTemperature(t float32) Option {
	return func(r *Resolver) {
		r.temperature = t
	}
}

// Resolver issues exactly one generation request per query and
// never retries. It is safe for concurrent use if its generator is.
type Resolver struct {
	generator   api.Generator
	timeout     time.Duration
	model       string
	temperature float32
}

func New(g api.Generator, opts ...Option) *Resolver {
	r := &Resolver{
		generator:   g,
		timeout:     DefaultTimeout,
		temperature: 0.7,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

type generateResult struct {
	content string
	err     error
}

// Resolve generates suggestions for q. The generated document is decoded and
// validated against the response shape of q.Type before it is returned.
func (r *Resolver) Resolve(ctx context.Context, q guidance.SearchQuery) (guidance.SuggestionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req := api.GenerationRequest{
		Prompt:         Prompt(q),
		ModelName:      r.model,
		ResponseFormat: api.ResponseFormatJSONObject,
		ResponseSchema: ResponseSchema(q.Type),
		Temperature:    r.temperature,
	}

	// generators are not trusted to honor the deadline
	resCh := make(chan generateResult, 1)
	go func() {
		content, err := r.generator.Generate(ctx, req)
		resCh <- generateResult{content: content, err: err}
	}()

	var res generateResult
	select {
	case <-ctx.Done():
		return guidance.SuggestionResponse{}, fmt.Errorf("%w: generation request: %w", ErrResolution, ctx.Err())
	case res = <-resCh:
	}

	if res.err != nil {
		return guidance.SuggestionResponse{}, fmt.Errorf("%w: generation request: %w", ErrResolution, res.err)
	}

	content := stripFences(res.content)
	if content == "" {
		return guidance.SuggestionResponse{}, fmt.Errorf("%w: %w", ErrResolution, ErrEmptyContent)
	}

	var resp guidance.SuggestionResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return guidance.SuggestionResponse{}, fmt.Errorf("%w: failed to decode generated content: %w", ErrResolution, err)
	}

	if err := guidance.ValidateResponse(q.Type, resp); err != nil {
		return guidance.SuggestionResponse{}, fmt.Errorf("%w: %w", ErrResolution, err)
	}

	return resp, nil
}

// stripFences removes markdown code fences around generated JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
