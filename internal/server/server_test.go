package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/repo-analyzer/apimodels"
	"github.com/sozercan/repo-analyzer/internal/analyzer"
	"github.com/sozercan/repo-analyzer/internal/config"
	"github.com/sozercan/repo-analyzer/internal/llm"
)

type stubProvider struct {
	content string
	err     error
	calls   int
	prompt  string
}

func (p *stubProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (*llm.Response, error) {
	p.calls++
	p.prompt = prompt
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Response{Content: p.content, Model: "stub"}, nil
}

func newTestServer(p llm.Provider) *Server {
	return New(config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"}}, analyzer.New(p))
}

const twoSections = "### Summary\nTwo bugs found.\n### Bugs\nThe `Close` error is <b>ignored</b>.\n"

func submitForm(t *testing.T, s *Server, repo, query string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"repositoryUrl": {repo}, "query": {query}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(&stubProvider{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI-Powered Repository Analyzer")
	assert.Contains(t, rec.Body.String(), `name="repositoryUrl"`)
	assert.Contains(t, rec.Body.String(), "Analyze Repository")
}

func TestSubmitRendersSummaryAndCollapsibleSections(t *testing.T) {
	p := &stubProvider{content: twoSections}
	s := newTestServer(p)

	rec := submitForm(t, s, "https://github.com/org/repo", "find bugs in this repo")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, p.prompt, "https://github.com/org/repo")
	assert.Contains(t, p.prompt, "find bugs in this repo")

	body := rec.Body.String()
	assert.Contains(t, body, "Analysis Complete!")
	assert.Equal(t, 1, strings.Count(body, `<div class="summary">`), "one promoted block")
	assert.Equal(t, 1, strings.Count(body, "<details>"), "one collapsible block")
	assert.Contains(t, body, "📂 Bugs")
	assert.Contains(t, body, "<code>Close</code>")
	assert.Contains(t, body, "<b>ignored</b>", "raw HTML is passed through")
}

func TestSubmitGenerationFailure(t *testing.T) {
	p := &stubProvider{err: errors.New("quota exceeded")}
	s := newTestServer(p)

	rec := submitForm(t, s, "https://github.com/org/repo", "find bugs in this repo")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "quota exceeded")
	assert.NotContains(t, body, "<details>")
	assert.NotContains(t, body, "Analysis Complete!")
	assert.Contains(t, body, `value="https://github.com/org/repo"`, "inputs are kept so the user can retry")
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		query   string
		status  int
		message string
	}{
		{"missing url", "", "find bugs", http.StatusBadRequest, "Please enter a GitHub repo URL before analyzing."},
		{"missing query", "https://github.com/org/repo", "   ", http.StatusBadRequest, "Please enter a question to analyze."},
		{"out of scope", "https://github.com/org/repo", "what's the weather", http.StatusUnprocessableEntity, "Only repository/code-related questions are allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{content: twoSections}
			rec := submitForm(t, newTestServer(p), tt.repo, tt.query)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Zero(t, p.calls)
		})
	}
}

func TestAPIAnalyze(t *testing.T) {
	s := newTestServer(&stubProvider{content: twoSections})

	payload := `{"repositoryUrl": "https://github.com/org/repo", "query": "find bugs in this repo"}`
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp apimodels.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Summaries, 1)
	assert.Equal(t, "Two bugs found.", resp.Summaries[0].Body)
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "Bugs", resp.Sections[0].Header)
	assert.Equal(t, "stub", resp.Metadata.Model)
}

func TestAPIAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		payload  string
		status   int
		code     string
	}{
		{"bad json", &stubProvider{}, `{`, http.StatusBadRequest, "invalid_request"},
		{"missing input", &stubProvider{}, `{"query": "find bugs"}`, http.StatusBadRequest, "input_missing"},
		{"out of scope", &stubProvider{}, `{"repositoryUrl": "x", "query": "hello"}`, http.StatusUnprocessableEntity, "query_out_of_scope"},
		{"generation failure", &stubProvider{err: errors.New("quota exceeded")}, `{"repositoryUrl": "x", "query": "find bugs"}`, http.StatusBadGateway, "generation_failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(tt.provider).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(tt.payload)))

			assert.Equal(t, tt.status, rec.Code)
			var resp apimodels.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&stubProvider{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
