// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.


package ollama

import (
	"context"
	"fmt"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/http"
)

const (
	Endpoint     = "http://localhost:11434"
	DefaultModel = "gemma3:4b"
)

type Config struct {
	BaseURL string
	Model   string
}

type OllamaProvider struct {
	client       http.Client
	defaultModel string
}

type generateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

func New(conf Config) *OllamaProvider {
	endpoint := conf.BaseURL
	if endpoint == "" {
		endpoint = Endpoint
	}

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	c := http.NewClient(
		endpoint,
		http.WithMaxRetries(3),
	)
	return &OllamaProvider{
		client:       c,
		defaultModel: model,
	}
}

func (p OllamaProvider) Generate(ctx context.Context, req api.GenerationRequest) (string, error) {
	model := p.defaultModel
	if req.ModelName != "" {
		model = req.ModelName
	}

	requestData := map[string]any{
		"model":  model,
		"prompt": req.Prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": req.Temperature,
		},
	}

	if req.ResponseFormat == api.ResponseFormatJSONObject {
		if req.ResponseSchema != nil {
			requestData["format"] = req.ResponseSchema
		} else {
			requestData["format"] = "json"
		}
	}

	var resp generateResponse
	if err := p.client.Request(ctx, http.MethodPost, "/api/generate", requestData, &resp); err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	return resp.Response, nil
}
