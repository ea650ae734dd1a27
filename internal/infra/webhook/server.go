// File: internal/infra/webhook/server.go
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"meteobolt-bot/internal/config"
	"meteobolt-bot/internal/infra/logging"
	"meteobolt-bot/internal/infra/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	// Telegram updates are small; anything larger is not an update.
	maxUpdateBytes = 1 << 20
)

// UpdateQueue accepts an update for asynchronous handling. It must not block.
type UpdateQueue interface {
	Enqueue(ctx context.Context, update tgbotapi.Update) error
}

// Server is the HTTP intake: liveness, Telegram webhook and Prometheus metrics.
type Server struct {
	queue  UpdateQueue
	cfg    config.HTTPConfig
	log    *zerolog.Logger
	router chi.Router
	srv    *http.Server
}

func NewServer(queue UpdateQueue, cfg config.HTTPConfig, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = "/webhook"
	}
	s := &Server{queue: queue, cfg: cfg, log: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(TraceID)
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	r.Get("/health", s.handleHealth)
	r.Post(s.cfg.WebhookPath, s.handleWebhook)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving on cfg.Port until Shutdown is called.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(s.cfg.Port)),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.log.Info().Int("port", s.cfg.Port).Str("webhook_path", s.cfg.WebhookPath).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleWebhook decodes the update and enqueues it. It answers before the
// update is handled; 500 means Telegram should redeliver.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	l := logging.With(r.Context(), s.log)

	var update tgbotapi.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBytes)).Decode(&update); err != nil {
		l.Warn().Err(err).Msg("failed to decode telegram update")
		s.fail(w, "bad update")
		return
	}

	if err := s.queue.Enqueue(r.Context(), update); err != nil {
		l.Error().Err(err).Int("update_id", update.UpdateID).Msg("failed to enqueue telegram update")
		s.fail(w, "busy")
		return
	}

	metrics.IncWebhookRequest(http.StatusOK)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) fail(w http.ResponseWriter, msg string) {
	metrics.IncWebhookRequest(http.StatusInternalServerError)
	http.Error(w, msg, http.StatusInternalServerError)
}
