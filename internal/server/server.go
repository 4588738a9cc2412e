package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/biaslens/biaslens/internal/models"
)

type PipelineRunner interface {
	Run(ctx context.Context, rawURL, sessionID string) (models.AnalysisOutcome, error)
}

type Storage interface {
	SaveJob(ctx context.Context, job models.AnalysisJob) error
	GetJob(ctx context.Context, jobID string) (models.AnalysisJob, bool, error)
	StoreHistory(ctx context.Context, record models.HistoryRecord) error
	GetRecentHistory(ctx context.Context, sessionID string, limit int) ([]models.HistoryItem, error)
	StoreFeedback(ctx context.Context, fb models.FeedbackRecord) error
	GetMetrics(ctx context.Context) (models.Metrics, error)
}

type JobQueue interface {
	Enqueue(ctx context.Context, msg models.JobMessage) error
}

// Server owns the HTTP surface: synchronous analyses, job submission and
// the read endpoints over stored results.
type Server struct {
	pipeline PipelineRunner
	store    Storage
	queue    JobQueue
}

func New(pipeline PipelineRunner, store Storage, queue JobQueue) *Server {
	return &Server{
		pipeline: pipeline,
		store:    store,
		queue:    queue,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/jobs", s.handleCreateJob)
		r.Get("/jobs/{id}", s.handleGetJob)
		r.Get("/history", s.handleHistory)
		r.Post("/feedback", s.handleFeedback)
		r.Get("/metrics", s.handleMetrics)
	})

	return r
}
