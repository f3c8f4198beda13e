package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/sozercan/repo-analyzer/apimodels"
	"github.com/sozercan/repo-analyzer/internal/analyzer"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Section bodies may carry raw HTML from the model; it is passed through.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"markdown": renderMarkdown}).
		ParseFS(templatesFS, "templates/index.html"),
)

type pageData struct {
	RepositoryURL string
	Query         string
	Warning       string
	Error         string
	Result        *apimodels.AnalysisResponse
}

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &buf); err != nil {
		slog.Warn("Failed to render markdown, falling back to escaped text", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, pageData{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, pageData{Error: "Invalid form submission."})
		return
	}

	data := pageData{
		RepositoryURL: r.PostFormValue("repositoryUrl"),
		Query:         r.PostFormValue("query"),
	}

	result, err := s.analyzer.Analyze(r.Context(), apimodels.AnalysisRequest{
		RepositoryURL: data.RepositoryURL,
		Query:         data.Query,
	})
	if err != nil {
		status, _ := classifyError(err)
		if errors.Is(err, analyzer.ErrInputMissing) {
			data.Warning = userMessage(err)
		} else {
			data.Error = userMessage(err)
		}
		renderPage(w, status, data)
		return
	}

	data.Result = result
	renderPage(w, http.StatusOK, data)
}

func userMessage(err error) string {
	var genErr *analyzer.GenerationError
	switch {
	case errors.Is(err, analyzer.ErrMissingRepositoryURL):
		return "Please enter a GitHub repo URL before analyzing."
	case errors.Is(err, analyzer.ErrMissingQuery):
		return "Please enter a question to analyze."
	case errors.Is(err, analyzer.ErrQueryOutOfScope):
		return "Only repository/code-related questions are allowed. Please rephrase your query."
	case errors.As(err, &genErr):
		return "Error during analysis: " + genErr.Err.Error()
	default:
		return err.Error()
	}
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
