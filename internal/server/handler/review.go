// Package handler provides HTTP handlers for the wizpro review server.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/jobs"
)

const (
	msgInvalidBody         = "Invalid request body"
	msgCodeRequired        = "Code is required"
	msgUnsupportedLanguage = "Unsupported language"
	msgReviewFailed        = "Failed to generate review"
	msgBusy                = "Server is busy, please try again later"
)

// ReviewHandler answers get-review requests with review markdown.
type ReviewHandler struct {
	reviewer     core.Reviewer
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewReviewHandler creates a handler. maxBodyBytes caps the request body; zero
// disables the cap.
func NewReviewHandler(reviewer core.Reviewer, maxBodyBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer:     reviewer,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle processes POST {"code": ..., "language": ...}.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req core.ReviewRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.logger.Warn("rejecting malformed review request", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, msgCodeRequired)
		return
	}
	if req.Language == "" {
		req.Language = core.DefaultLanguage
	}
	if !req.Language.IsSupported() {
		writeError(w, http.StatusBadRequest, msgUnsupportedLanguage)
		return
	}

	start := time.Now()
	review, err := h.reviewer.Review(r.Context(), req.Code, req.Language)
	switch {
	case errors.Is(err, jobs.ErrQueueFull), errors.Is(err, jobs.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, msgBusy)
		return
	case err != nil:
		h.logger.Error("failed to generate review", "language", req.Language, "error", err)
		writeError(w, http.StatusBadGateway, msgReviewFailed)
		return
	}

	h.logger.Info("review served",
		"language", req.Language,
		"chars", len(req.Code),
		"duration", time.Since(start).Round(time.Millisecond))

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(review))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(core.ErrorResponse{Message: message})
}
