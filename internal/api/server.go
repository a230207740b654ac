package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/WillCS/uqplanner/internal/engine"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

// Server exposes the engine over HTTP.
type Server struct {
	engine   *engine.Engine
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// NewServer creates a Server with its own metrics registry.
func NewServer(e *engine.Engine, logger zerolog.Logger) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		engine:   e,
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
}

// OptimiseRequest is the body of POST /optimise.
type OptimiseRequest struct {
	Listings            []timetable.Listing `json:"listings"`
	MinDays             int                 `json:"minDays"`
	MaxDays             int                 `json:"maxDays"`
	AllowLectureOverlap bool                `json:"allowLectureOverlap"`
	MaxNodes            int                 `json:"maxNodes"`
}

// SessionsRequest is the body of POST /layout and POST /clashes.
type SessionsRequest struct {
	Sessions []timetable.ScheduledOccurrence `json:"sessions"`
}

// Router returns the HTTP handler for every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverer)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/optimise", s.handleOptimise).Methods(http.MethodPost)
	r.HandleFunc("/layout", s.handleLayout).Methods(http.MethodPost)
	r.HandleFunc("/clashes", s.handleClashes).Methods(http.MethodPost)
	r.HandleFunc("/subjects/{code:[A-Za-z0-9]+}", s.handleSubject).Methods(http.MethodGet)

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.engine.Settings().SearchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// recoverer turns handler panics into 500 replies.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				writeError(w, s.logger, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptimise(w http.ResponseWriter, r *http.Request) {
	var body OptimiseRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Listings == nil {
		writeError(w, s.logger, http.StatusBadRequest, "listings required")
		return
	}

	result, err := s.engine.Optimize(r.Context(), &engine.OptimizeRequest{
		Listings:            body.Listings,
		MinDays:             body.MinDays,
		MaxDays:             body.MaxDays,
		AllowLectureOverlap: body.AllowLectureOverlap,
		MaxNodes:            body.MaxNodes,
	})
	if err != nil {
		s.metrics.observe(nil)
		s.fail(w, r, err)
		return
	}
	s.metrics.observe(result.Schedule)
	writeJSON(w, s.logger, http.StatusOK, result.Schedule)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var body SessionsRequest
	if !s.decode(w, r, &body) {
		return
	}

	result, err := s.engine.Layout(r.Context(), &engine.LayoutRequest{Sessions: nonNil(body.Sessions)})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, result)
}

func (s *Server) handleClashes(w http.ResponseWriter, r *http.Request) {
	var body SessionsRequest
	if !s.decode(w, r, &body) {
		return
	}

	result, err := s.engine.Clashes(r.Context(), &engine.ClashesRequest{Sessions: nonNil(body.Sessions)})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, result)
}

func (s *Server) handleSubject(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &engine.FetchListingRequest{
		CourseCode: mux.Vars(r)["code"],
		Campus:     q.Get("campus"),
		Mode:       q.Get("mode"),
	}

	var err error
	if req.Year, err = intParam(q.Get("year")); err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "invalid year")
		return
	}
	if req.Semester, err = intParam(q.Get("semester")); err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "invalid semester")
		return
	}

	listing, err := s.engine.FetchListing(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, listing)
}

// decode reads a JSON body, replying 400 and returning false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	event := s.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = s.logger.Error()
	}
	event.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	writeError(w, s.logger, status, err.Error())
}

func nonNil(sessions []timetable.ScheduledOccurrence) []timetable.ScheduledOccurrence {
	if sessions == nil {
		return []timetable.ScheduledOccurrence{}
	}
	return sessions
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
