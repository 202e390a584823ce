package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/provider/openai"
)

func newServer(t *testing.T, body string, got *map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path '%s'", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header '%s'", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate(t *testing.T) {
	var got map[string]any
	srv := newServer(t, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"results\":[]}"},"finish_reason":"stop"}]}`, &got)

	p := openai.New(openai.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	content, err := p.Generate(context.Background(), api.GenerationRequest{
		Prompt:         "suggest majors",
		ResponseFormat: api.ResponseFormatJSONObject,
		Temperature:    0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content != `{"results":[]}` {
		t.Errorf("unexpected content '%s'", content)
	}
	if got["model"] != string(openai.DefaultModel) {
		t.Errorf("expected default model, got '%v'", got["model"])
	}
	format, ok := got["response_format"].(map[string]any)
	if !ok || format["type"] != "json_object" {
		t.Errorf("expected json_object response format, got '%v'", got["response_format"])
	}
}

func TestGenerateNoChoices(t *testing.T) {
	var got map[string]any
	srv := newServer(t, `{"id":"c1","object":"chat.completion","choices":[]}`, &got)

	p := openai.New(openai.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o"})
	_, err := p.Generate(context.Background(), api.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, openai.ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got '%v'", err)
	}
	if got["model"] != "gpt-4o" {
		t.Errorf("expected configured model, got '%v'", got["model"])
	}
}
