package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/provider/ollama"
)

func TestGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path '%s'", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"model":"gemma3:4b","response":"{\"results\":[]}","done":true}`))
	}))
	defer srv.Close()

	p := ollama.New(ollama.Config{BaseURL: srv.URL})
	content, err := p.Generate(context.Background(), api.GenerationRequest{
		Prompt:         "suggest majors",
		ResponseFormat: api.ResponseFormatJSONObject,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content != `{"results":[]}` {
		t.Errorf("unexpected content '%s'", content)
	}
	if got["model"] != ollama.DefaultModel {
		t.Errorf("expected default model, got '%v'", got["model"])
	}
	if got["stream"] != false {
		t.Errorf("expected non streaming request, got '%v'", got["stream"])
	}
	if got["format"] != "json" {
		t.Errorf("expected json format, got '%v'", got["format"])
	}
}

func TestGenerateWithSchema(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"response":"{}","done":true}`))
	}))
	defer srv.Close()

	p := ollama.New(ollama.Config{BaseURL: srv.URL, Model: "llama3"})
	_, err := p.Generate(context.Background(), api.GenerationRequest{
		Prompt:         "suggest majors",
		ModelName:      "qwen3",
		ResponseFormat: api.ResponseFormatJSONObject,
		ResponseSchema: api.ObjectSchema("title"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got["model"] != "qwen3" {
		t.Errorf("expected request model to win, got '%v'", got["model"])
	}
	format, ok := got["format"].(map[string]any)
	if !ok || format["type"] != "object" {
		t.Errorf("expected schema format, got '%v'", got["format"])
	}
}

func TestGenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	p := ollama.New(ollama.Config{BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), api.GenerationRequest{Prompt: "x"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}
