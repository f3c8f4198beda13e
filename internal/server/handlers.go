package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sozercan/repo-analyzer/apimodels"
	"github.com/sozercan/repo-analyzer/internal/analyzer"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{
			Code:    "invalid_request",
			Message: fmt.Sprintf("Invalid request: %v", err),
		})
		return
	}
	defer r.Body.Close()

	slog.Debug("Received analysis request", "request", req)

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		status, code := classifyError(err)
		writeJSON(w, status, apimodels.ErrorResponse{Code: code, Message: err.Error()})
		return
	}

	slog.Debug("Analysis request completed successfully", "tokens", result.Metadata.TokensUsed)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// classifyError maps the analyzer's failure kinds onto HTTP.
func classifyError(err error) (int, string) {
	var genErr *analyzer.GenerationError
	switch {
	case errors.Is(err, analyzer.ErrInputMissing):
		return http.StatusBadRequest, "input_missing"
	case errors.Is(err, analyzer.ErrQueryOutOfScope):
		return http.StatusUnprocessableEntity, "query_out_of_scope"
	case errors.As(err, &genErr):
		return http.StatusBadGateway, "generation_failure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
