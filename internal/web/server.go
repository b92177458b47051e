package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alehernandezlabs/trade-notifier/internal/config"
	"github.com/alehernandezlabs/trade-notifier/internal/logger"
	"github.com/alehernandezlabs/trade-notifier/internal/storage"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// Sender delivers a formatted message to the destination chat.
type Sender interface {
	Send(text string) error
	Enabled() bool
}

type Server struct {
	httpServer *http.Server
	sender     Sender
	repo       *storage.Repository // nil when the activity log is disabled
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(sender Sender, repo *storage.Repository, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		sender: sender,
		repo:   repo,
		config: cfg,
		logger: log,
	}

	r := mux.NewRouter()
	r.Use(s.logMiddleware)
	r.HandleFunc("/healthcheck", s.handleHealthcheck).Methods(http.MethodGet)
	r.HandleFunc("/send-message", s.handleSendMessage).Methods(http.MethodPost)
	r.HandleFunc("/trade-execution", s.handleTradeExecution).Methods(http.MethodPost)
	r.HandleFunc("/notifications", s.handleNotifications).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.config.Addr())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

// --- helpers ---

func parseLimit(r *http.Request, defaultLimit int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxActivityLimit {
		return maxActivityLimit
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
