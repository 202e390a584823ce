// Package provider builds the text generation client selected by configuration.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/provider/cohere"
	"github.com/alan-mat/careerpath/internal/provider/gemini"
	"github.com/alan-mat/careerpath/internal/provider/ollama"
	"github.com/alan-mat/careerpath/internal/provider/openai"
)

var (
	ErrInvalidProviderType = errors.New("no generation provider found for given type")
	ErrMissingAPIKey       = errors.New("generation provider requires an api key")
)

type ProviderType string

const (
	ProviderTypeNone   ProviderType = "none"
	ProviderTypeOpenAI ProviderType = "openai"
	ProviderTypeGemini ProviderType = "gemini"
	ProviderTypeCohere ProviderType = "cohere"
	ProviderTypeOllama ProviderType = "ollama"
)

type Config struct {
	Type    ProviderType
	APIKey  string
	BaseURL string
	Model   string
}

// New returns the generator for conf.Type. It returns a nil generator
// and nil error for [ProviderTypeNone] or an empty type.
func New(ctx context.Context, conf Config) (api.Generator, error) {
	switch conf.Type {
	case "", ProviderTypeNone:
		return nil, nil
	case ProviderTypeOllama:
		return ollama.New(ollama.Config{BaseURL: conf.BaseURL, Model: conf.Model}), nil
	case ProviderTypeOpenAI, ProviderTypeGemini, ProviderTypeCohere:
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidProviderType, conf.Type)
	}

	if conf.APIKey == "" {
		return nil, fmt.Errorf("%w: '%s'", ErrMissingAPIKey, conf.Type)
	}

	switch conf.Type {
	case ProviderTypeOpenAI:
		return openai.New(openai.Config{APIKey: conf.APIKey, BaseURL: conf.BaseURL, Model: conf.Model}), nil
	case ProviderTypeGemini:
		p, err := gemini.New(ctx, gemini.Config{APIKey: conf.APIKey, Model: conf.Model})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return cohere.New(cohere.Config{APIKey: conf.APIKey, Model: conf.Model}), nil
	}
}
