package gemini

import (
	"context"
	"fmt"

	"github.com/alan-mat/careerpath/internal/api"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey string
	Model  string
}

type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
}

func New(ctx context.Context, conf Config) (*GeminiProvider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  conf.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	return &GeminiProvider{
		client:       c,
		defaultModel: model,
	}, nil
}

func (p GeminiProvider) Generate(ctx context.Context, req api.GenerationRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	modelName := p.defaultModel
	if req.ModelName != "" {
		modelName = req.ModelName
	}

	if req.ResponseFormat == api.ResponseFormatJSONObject {
		config.ResponseMIMEType = "application/json"
		if req.ResponseSchema != nil {
			config.ResponseSchema = parseResponseSchema(req.ResponseSchema)
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), config)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

var schemaTypes = map[api.DataType]genai.Type{
	api.TypeString:  genai.TypeString,
	api.TypeNumber:  genai.TypeNumber,
	api.TypeInteger: genai.TypeInteger,
	api.TypeBoolean: genai.TypeBoolean,
	api.TypeArray:   genai.TypeArray,
	api.TypeObject:  genai.TypeObject,
}

func parseResponseSchema(s *api.Schema) *genai.Schema {
	schema := &genai.Schema{
		Description: s.Description,
		Title:       s.Title,
		Required:    s.Required,
		Type:        schemaTypes[s.Type],
	}

	if s.Items != nil {
		schema.Items = parseResponseSchema(s.Items)
	}

	if s.Properties != nil {
		properties := make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			properties[k] = parseResponseSchema(v)
		}
		schema.Properties = properties
	}

	return schema
}
