package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"fontpair/internal/external"
	"fontpair/internal/models"
	"fontpair/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Image uploads arrive base64 encoded inside the JSON body.
const maxAnalysisBodySize = 16 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func readJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

type quotaResponse struct {
	Error  string             `json:"error"`
	Kind   string             `json:"kind"`
	Status models.QuotaStatus `json:"status"`
}

// writeServiceError maps service and remote failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var quotaErr *services.QuotaExceededError
	switch {
	case errors.As(err, &quotaErr):
		writeJSON(w, http.StatusTooManyRequests, quotaResponse{
			Error:  quotaErr.Status.Message,
			Kind:   string(quotaErr.Kind),
			Status: quotaErr.Status,
		})
	case errors.Is(err, services.ErrFeatureNotAvailable):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrEmptyRequest),
		errors.Is(err, services.ErrInvalidAIMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrProjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrAlreadyLicensed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, external.ErrNotConfigured):
		http.Error(w, "AI backend is not configured", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}
}
