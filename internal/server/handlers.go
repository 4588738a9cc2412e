package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/biaslens/biaslens/internal/bias"
	"github.com/biaslens/biaslens/internal/events"
	"github.com/biaslens/biaslens/internal/gateway"
	"github.com/biaslens/biaslens/internal/models"
	"github.com/biaslens/biaslens/internal/scraper"
)

const (
	SESSION_HEADER  = "X-Session-ID"
	DEFAULT_SESSION = "anonymous"

	URL_MIN_LENGTH  = 5
	URL_MAX_LENGTH  = 2000
	NOTE_MAX_LENGTH = 600

	HISTORY_DEFAULT_LIMIT = 12
	HISTORY_MAX_LIMIT     = 50
)

const upstreamErrorMessage = "Analysis failed due to an upstream model error. Please try again."

type analyzeRequest struct {
	URL string `json:"url"`
}

type feedbackRequest struct {
	Vote       string `json:"vote"`
	Note       string `json:"note"`
	AnalysisID string `json:"analysis_id"`
}

type jobResponse struct {
	JobID  string                  `json:"job_id"`
	Status models.JobStatus        `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Result *models.AnalysisOutcome `json:"result,omitempty"`
}

func sessionID(r *http.Request) string {
	if sid := strings.TrimSpace(r.Header.Get(SESSION_HEADER)); sid != "" {
		return sid
	}
	return DEFAULT_SESSION
}

func parseURLBody(r *http.Request) (string, error) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", errors.New("request body must be JSON with a url field")
	}
	rawURL := strings.TrimSpace(req.URL)
	if len(rawURL) < URL_MIN_LENGTH || len(rawURL) > URL_MAX_LENGTH {
		return "", errors.New("url must be between 5 and 2000 characters")
	}
	return rawURL, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	rawURL, err := parseURLBody(r)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sid := sessionID(r)

	outcome, err := s.pipeline.Run(r.Context(), rawURL, sid)
	if err != nil {
		s.respondAnalysisError(w, sid, rawURL, err)
		return
	}

	if err := s.store.StoreHistory(r.Context(), models.NewHistoryRecord(sid, outcome)); err != nil {
		slog.Warn("[Server] Failed to store history",
			slog.String("error", err.Error()))
	}
	events.Publish(sid, models.EventAnalysisCompleted, map[string]string{
		"analysis_id": outcome.AnalysisID,
		"source":      string(outcome.Source),
	})

	writeJSON(w, http.StatusOK, outcome)
}

// respondAnalysisError maps pipeline failures onto status codes: input and
// extraction problems surface verbatim as 422, backend failures come back
// as a generic 502.
func (s *Server) respondAnalysisError(w http.ResponseWriter, sid, rawURL string, err error) {
	events.Publish(sid, models.EventAnalysisFailed, map[string]string{
		"url":   rawURL,
		"error": err.Error(),
	})

	var inputErr *scraper.InputError
	var scrapeErr *scraper.ScrapeError
	var extractionErr *scraper.ExtractionError
	if errors.As(err, &inputErr) || errors.As(err, &scrapeErr) || errors.As(err, &extractionErr) {
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var modelErr *gateway.ModelCallError
	var formatErr *bias.ResponseFormatError
	if errors.As(err, &modelErr) || errors.As(err, &formatErr) {
		slog.Error("[Server] Analysis backend failure",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
		errorResponse(w, http.StatusBadGateway, upstreamErrorMessage)
		return
	}

	slog.Error("[Server] Analysis failed",
		slog.String("url", rawURL),
		slog.String("error", err.Error()))
	errorResponse(w, http.StatusInternalServerError, "Internal server error.")
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	rawURL, err := parseURLBody(r)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sid := sessionID(r)

	now := time.Now().UTC()
	job := models.AnalysisJob{
		JobID:     uuid.NewString(),
		SessionID: sid,
		InputURL:  rawURL,
		Status:    models.JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(models.JobTTL).Unix(),
	}

	msg := models.JobMessage{
		JobID:      job.JobID,
		SessionID:  sid,
		InputURL:   rawURL,
		EnqueuedAt: now,
	}
	if err := s.queue.Enqueue(r.Context(), msg); err != nil {
		slog.Error("[Server] Failed to enqueue job",
			slog.String("error", err.Error()))
		errorResponse(w, http.StatusServiceUnavailable, "Job queue is unavailable.")
		return
	}

	if err := s.store.SaveJob(r.Context(), job); err != nil {
		// The worker recreates the record on pickup, so the job still runs.
		slog.Warn("[Server] Failed to save queued job",
			slog.String("job_id", job.JobID),
			slog.String("error", err.Error()))
	}

	events.Publish(sid, models.EventJobEnqueued, map[string]string{
		"job_id": job.JobID,
	})

	writeJSON(w, http.StatusAccepted, jobResponse{
		JobID:  job.JobID,
		Status: models.JobQueued,
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, found, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		slog.Error("[Server] Failed to load job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		errorResponse(w, http.StatusInternalServerError, "Could not load job.")
		return
	}
	if !found {
		errorResponse(w, http.StatusNotFound, "Job not found.")
		return
	}

	writeJSON(w, http.StatusOK, jobResponse{
		JobID:  job.JobID,
		Status: job.Status,
		Error:  job.Error,
		Result: job.Result,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := clampInt(r.URL.Query().Get("limit"), HISTORY_DEFAULT_LIMIT, HISTORY_MAX_LIMIT)

	items, err := s.store.GetRecentHistory(r.Context(), sessionID(r), limit)
	if err != nil {
		slog.Error("[Server] Failed to load history",
			slog.String("error", err.Error()))
		errorResponse(w, http.StatusInternalServerError, "Could not load history.")
		return
	}
	if items == nil {
		items = []models.HistoryItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	vote := strings.ToLower(strings.TrimSpace(req.Vote))
	if vote != models.VoteUp && vote != models.VoteDown {
		errorResponse(w, http.StatusBadRequest, `vote must be "up" or "down"`)
		return
	}

	note := strings.TrimSpace(req.Note)
	if runes := []rune(note); len(runes) > NOTE_MAX_LENGTH {
		note = string(runes[:NOTE_MAX_LENGTH])
	}

	sid := sessionID(r)
	fb := models.FeedbackRecord{
		ID:         uuid.NewString(),
		SessionID:  sid,
		AnalysisID: strings.TrimSpace(req.AnalysisID),
		Vote:       vote,
		Note:       note,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.StoreFeedback(r.Context(), fb); err != nil {
		slog.Error("[Server] Failed to store feedback",
			slog.String("error", err.Error()))
		errorResponse(w, http.StatusInternalServerError, "Could not store feedback.")
		return
	}

	events.Publish(sid, models.EventFeedbackSubmitted, map[string]string{
		"vote": vote,
	})

	writeJSON(w, http.StatusCreated, map[string]string{"id": fb.ID})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMetrics(r.Context())
	if err != nil {
		slog.Error("[Server] Failed to load metrics",
			slog.String("error", err.Error()))
		errorResponse(w, http.StatusInternalServerError, "Could not load metrics.")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}
