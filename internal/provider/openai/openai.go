package openai

import (
	"context"
	"errors"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT4oMini

var ErrNoChoices = errors.New("completion returned no choices")

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type OpenAIProvider struct {
	client       *openai.Client
	defaultModel string
}

func New(conf Config) *OpenAIProvider {
	clientConf := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		clientConf.BaseURL = conf.BaseURL
	}

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIProvider{
		client:       openai.NewClientWithConfig(clientConf),
		defaultModel: model,
	}
}

func (p OpenAIProvider) Generate(ctx context.Context, req api.GenerationRequest) (string, error) {
	openaiReq := openai.ChatCompletionRequest{
		Model:       p.defaultModel,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}

	if req.ModelName != "" {
		openaiReq.Model = req.ModelName
	}

	if req.ResponseFormat == api.ResponseFormatJSONObject {
		openaiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
