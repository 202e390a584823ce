package cohere

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alan-mat/careerpath/internal/api"
	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	coherecore "github.com/cohere-ai/cohere-go/v2/core"
)

const DefaultModel = "command-r-08-2024"

type Config struct {
	APIKey string
	Model  string
}

type CohereProvider struct {
	client       *cohereclient.Client
	defaultModel string
}

func New(conf Config) *CohereProvider {
	c := cohereclient.NewClient(
		cohereclient.WithToken(conf.APIKey),
		cohereclient.WithHTTPClient(
			&http.Client{
				Timeout: 60 * time.Second,
			},
		),
	)

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	return &CohereProvider{
		client:       c,
		defaultModel: model,
	}
}

// Generate streams a chat response and returns it once complete. The JSON
// constraint is carried by the prompt alone.
func (p CohereProvider) Generate(ctx context.Context, req api.GenerationRequest) (string, error) {
	if req.Prompt == "" {
		return "", fmt.Errorf("completion request failed: missing parameter 'prompt' in request")
	}

	temp := float64(req.Temperature)
	cohereReq := &cohere.V2ChatStreamRequest{
		Model:       p.defaultModel,
		Temperature: &temp,
	}

	if req.ModelName != "" {
		cohereReq.Model = req.ModelName
	}

	cohereReq.Messages = append(cohereReq.Messages, &cohere.ChatMessageV2{
		Role: "user",
		User: &cohere.UserMessage{Content: &cohere.UserMessageContent{
			String: req.Prompt,
		}},
	})

	stream, err := p.client.V2.ChatStream(ctx, cohereReq)
	if err != nil {
		return "", fmt.Errorf("chat streaming request failed: %w", err)
	}

	return api.StreamReadAll(ctx, &CohereCompletionStream{stream: stream})
}

type CohereCompletionStream struct {
	stream *coherecore.Stream[cohere.StreamedChatResponseV2]
}

func (s CohereCompletionStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			return "", err
		}

		delta := resp.ContentDelta
		if delta == nil || delta.Delta == nil || delta.Delta.Message == nil ||
			delta.Delta.Message.Content == nil || delta.Delta.Message.Content.Text == nil {
			continue
		}
		return *delta.Delta.Message.Content.Text, nil
	}
}

func (s CohereCompletionStream) Close() error {
	return s.stream.Close()
}
