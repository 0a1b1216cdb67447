// Package rest provides the HTTP JSON API for the web pages and the job board.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jobnest/jobnest/app/geo"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/logx"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_pipeline.go . Pipeline

// Pipeline prepares the content of the pages.
type Pipeline interface {
	SuggestBooks(ctx context.Context, skill string) ([]store.Book, error)
	AnalyzeResume(ctx context.Context, img store.Image) (store.ResumeAnalysis, error)
	AnalyzeResumeText(ctx context.Context, text string) (store.ResumeAnalysis, error)
	TechTalks(ctx context.Context) ([]store.Article, error)
}

// Server serves the HTTP API.
type Server struct {
	Logger  *slog.Logger
	Addr    string
	Version string
	Service Pipeline
	Places  geo.Searcher
	Store   store.Interface
	// MaxUploadSize limits the size of the uploaded resume.
	MaxUploadSize int64
}

// Run starts the server and shuts it down when the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.InfoContext(ctx, "starting http server", slog.String("addr", s.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestID,
		s.logRequest,
		middleware.Recoverer,
	)

	r.Get("/ping", s.ping)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/learn", s.learn)
		r.Post("/resume", s.resume)
		r.Get("/techtalks", s.techTalks)
		r.Get("/locations", s.locations)

		r.Get("/jobs", s.listJobs)
		r.Post("/jobs", s.createJob)
		r.Get("/jobs/{id}", s.getJob)
		r.Post("/jobs/{id}/apply", s.apply)

		r.Post("/users", s.createUser)
		r.Get("/users/{id}/applications", s.listApplications)
	})

	return r
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong, version: " + s.Version))
}

// requestID puts the id set by chi into the context for loggers.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(logx.ContextWithRequestID(r.Context(), reqID))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.Logger.InfoContext(r.Context(), "request processed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}
