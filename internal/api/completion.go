package api

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ResponseFormat constrains the shape of generated content.
type ResponseFormat string

const (
	ResponseFormatText       ResponseFormat = "text"
	ResponseFormatJSONObject ResponseFormat = "json_object"
)

type GenerationRequest struct {
	// Required
	Prompt string

	// Optional params
	ModelName      string
	ResponseFormat ResponseFormat
	ResponseSchema *Schema
	Temperature    float32
}

// Generator issues a single generation request and returns the textual
// content of the first candidate.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

type CompletionStream interface {
	Recv() (string, error)
	Close() error
}

type completionStreamPayload struct {
	content string
	err     error
}

// StreamReadAll receives from a completion stream accumulating the results
// and returning the streamed chunks as a whole. This function will return an error
// if one is received from the CompletionStream, or the context error if ctx is
// done first. Calling this function will always close the underlying stream.
func StreamReadAll(ctx context.Context, stream CompletionStream) (string, error) {
	defer stream.Close()
	dataChan := make(chan completionStreamPayload)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(dataChan)

		for {
			chunk, err := stream.Recv()

			if errors.Is(err, io.EOF) {
				return
			}

			payload := completionStreamPayload{content: chunk, err: err}
			select {
			case dataChan <- payload:
			case <-done:
				return
			}

			if err != nil {
				return
			}
		}
	}()

	var acc strings.Builder

	for {
		select {
		case <-ctx.Done():
			return acc.String(), ctx.Err()
		case payload, ok := <-dataChan:
			if !ok {
				// data stream closed
				return acc.String(), nil
			}

			if payload.err != nil {
				return acc.String(), payload.err
			}

			acc.WriteString(payload.content)
		}
	}
}
