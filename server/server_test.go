package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan-mat/careerpath/internal/guidance"
	"github.com/alan-mat/careerpath/internal/heuristic"
	"github.com/alan-mat/careerpath/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRecorder struct {
	calls int
}

func (m *mockRecorder) RecordSearch(context.Context, guidance.SearchQuery) error {
	m.calls++
	return nil
}

type mockRemote struct {
	calls int
	err   error
}

func (m *mockRemote) Resolve(context.Context, guidance.SearchQuery) (guidance.SuggestionResponse, error) {
	m.calls++
	if m.err != nil {
		return guidance.SuggestionResponse{}, m.err
	}
	return guidance.SuggestionResponse{Results: []guidance.Suggestion{
		{Title: "Data Engineer", Description: "Builds pipelines.", Link: "https://example.com/jobs/1"},
	}}, nil
}

func newTestServer(t *testing.T, opts ...guidance.ServiceOption) http.Handler {
	t.Helper()
	svc := guidance.NewService(heuristic.New(nil), opts...)
	return server.New(server.DefaultConfig(), svc).Handler()
}

func postSearch(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/guidance/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSearchHeuristic(t *testing.T) {
	h := newTestServer(t)

	w := postSearch(h, `{"type":"suggest_major","query":"Software Engineer"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(guidance.SourceHeuristic), w.Header().Get(server.HeaderSource))

	var resp guidance.SuggestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Computer Science", resp.Results[0].Title)
	assert.Equal(t, "Software Engineering", resp.Results[1].Title)
	assert.Equal(t, "Mathematics", resp.Results[2].Title)
	assert.NotContains(t, w.Body.String(), `"link"`)
}

func TestSearchJobAppsIncludesLink(t *testing.T) {
	h := newTestServer(t)

	w := postSearch(h, `{"type":"job_apps","query":"Nurse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp guidance.SuggestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Junior Nurse Role", resp.Results[0].Title)
	assert.Equal(t, "#", resp.Results[0].Link)
}

func TestSearchRemote(t *testing.T) {
	rem := &mockRemote{}
	h := newTestServer(t, guidance.WithRemoteResolver(rem))

	w := postSearch(h, `{"type":"job_apps","query":"Data"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(guidance.SourceRemote), w.Header().Get(server.HeaderSource))
	assert.JSONEq(t, `{"results":[{"title":"Data Engineer","description":"Builds pipelines.","link":"https://example.com/jobs/1"}]}`, w.Body.String())
}

func TestSearchRemoteFailureFallsBack(t *testing.T) {
	rem := &mockRemote{err: errors.New("timeout")}
	h := newTestServer(t, guidance.WithRemoteResolver(rem))

	w := postSearch(h, `{"type":"related_careers","query":"Computer Science"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(guidance.SourceHeuristic), w.Header().Get(server.HeaderSource))
	assert.Contains(t, w.Body.String(), "Software Engineer")
}

func TestSearchValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		field    string
		contains string
	}{
		{name: "missing type", body: `{"query":"x"}`, field: "type", contains: "Required"},
		{name: "invalid type", body: `{"type":"hobbies","query":"x"}`, field: "type", contains: "Invalid enum value"},
		{name: "empty query", body: `{"type":"job_apps","query":""}`, field: "query", contains: "at least 1 character"},
		{name: "not an object", body: `"job_apps"`, field: "", contains: "Expected object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &mockRecorder{}
			rem := &mockRemote{}
			h := newTestServer(t, guidance.WithSearchLogger(rec), guidance.WithRemoteResolver(rem))

			w := postSearch(h, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.field, body["field"])
			assert.Contains(t, body["message"], tt.contains)

			assert.Zero(t, rec.calls)
			assert.Zero(t, rem.calls)
		})
	}
}

func TestSearchBodyTooLarge(t *testing.T) {
	svc := guidance.NewService(heuristic.New(nil))
	h := server.New(server.ServerConfig{MaxBodyBytes: 16}, svc).Handler()

	w := postSearch(h, `{"type":"job_apps","query":"a very long query that will not fit"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, []byte) (*guidance.Result, error) {
	return nil, errors.New("boom")
}

func TestSearchInternalError(t *testing.T) {
	h := server.New(server.DefaultConfig(), failingSearcher{}).Handler()

	w := postSearch(h, `{"type":"job_apps","query":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = postSearch(h, `{"type":"job_apps","query":"x"}`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
