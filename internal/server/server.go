// Package server exposes the planner over HTTP: POST /api/draw computes a
// plan and stores the rendered file, which is then served under /media/.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/piwi3910/TilePlan/internal/engine"
	"github.com/piwi3910/TilePlan/internal/export"
	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/piwi3910/TilePlan/internal/project"
)

const (
	mediaURL        = "/media/"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server handles draw requests. It holds no per-request state, so one value
// serves concurrent requests.
type Server struct {
	cfg     model.AppConfig
	planner *engine.Planner
	store   *project.OutputStore
	logger  *log.Logger
	router  chi.Router
}

// New builds a server from the application config. Project defaults (price,
// waste, grout formula) come from cfg; files are stored under cfg.MediaRoot.
func New(cfg model.AppConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		planner: engine.New(engine.Config{Canvas: cfg.CanvasSize()}),
		store:   project.NewOutputStore(cfg.MediaRoot),
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/draw", s.handleDraw)
	r.Handle(mediaURL+"*", http.StripPrefix(mediaURL, http.FileServer(http.Dir(s.cfg.MediaRoot))))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, &apiError{Code: http.StatusNotFound, Message: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, &apiError{Code: http.StatusMethodNotAllowed, Message: "Method not allowed"})
	})
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "media", s.cfg.MediaRoot)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) defaultProject() model.Project {
	p := model.NewProject()
	s.cfg.ApplyToProject(&p)
	return p
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, badRequest("Invalid JSON body: %v", err))
		return
	}

	proj, format, err := req.toProject(s.defaultProject())
	if err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := s.planner.Plan(proj)
	if err != nil {
		s.writeError(w, planError(err))
		return
	}
	s.logger.Info("plan",
		"scheme", plan.Scheme,
		"scale", plan.Scale,
		"surfaces", len(plan.Surfaces),
		"tiles", plan.TilesUsed(),
		"format", format)

	opts := export.Options{WatermarkText: s.cfg.WatermarkText}
	name, err := s.store.Save(format.Ext(), func(path string) error {
		return export.ExportFile(path, format, plan, opts)
	})
	if err != nil {
		s.logger.Error("failed to store output", "err", err)
		s.writeError(w, &apiError{Code: http.StatusInternalServerError, Message: "Failed to render plan"})
		return
	}

	s.writeJSON(w, http.StatusOK, drawResponse{
		OK:       true,
		URL:      mediaURL + name,
		Format:   format,
		Tiles:    plan.TilesUsed(),
		Estimate: plan.Estimate,
	})
}

// planError maps planner failures to HTTP errors. Input problems become 400
// with the error text; anything else is a 500.
func planError(err error) *apiError {
	if engine.IsValidation(err) || errors.Is(err, engine.ErrScaleNotFound) {
		msg := err.Error()
		if msg != "" {
			msg = strings.ToUpper(msg[:1]) + msg[1:]
		}
		return badRequest("%s", msg)
	}
	return &apiError{Code: http.StatusInternalServerError, Message: "Internal server error"}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "status", status, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = &apiError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
	s.writeJSON(w, apiErr.Code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}
