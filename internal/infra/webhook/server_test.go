//go:build !integration

package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meteobolt-bot/internal/config"
	"meteobolt-bot/internal/infra/logging"
	"meteobolt-bot/internal/infra/metrics"
)

type fakeQueue struct {
	mu      sync.Mutex
	updates []tgbotapi.Update
	traces  []string
	err     error
	panics  bool
}

func (q *fakeQueue) Enqueue(ctx context.Context, u tgbotapi.Update) error {
	if q.panics {
		panic("queue exploded")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.updates = append(q.updates, u)
	tid, _ := logging.TraceIDFrom(ctx)
	q.traces = append(q.traces, tid)
	return nil
}

func newTestServer(q *fakeQueue) *Server {
	return NewServer(q, config.HTTPConfig{Port: 0, WebhookPath: "/webhook"}, logging.Nop())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	q := &fakeQueue{}
	rec := do(t, newTestServer(q), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("trace id header missing")
	}
	if len(q.updates) != 0 {
		t.Fatalf("health must not enqueue anything")
	}
}

func TestWebhook_Accepts(t *testing.T) {
	q := &fakeQueue{}
	body := `{"update_id": 10, "message": {"message_id": 1, "chat": {"id": 42, "type": "private"}, "text": "Moscow"}}`
	rec := do(t, newTestServer(q), http.MethodPost, "/webhook", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(q.updates) != 1 || q.updates[0].UpdateID != 10 || q.updates[0].Message.Text != "Moscow" {
		t.Fatalf("update not enqueued correctly: %+v", q.updates)
	}
}

func TestWebhook_PassesTraceIDToQueue(t *testing.T) {
	q := &fakeQueue{}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id": 11}`))
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	newTestServer(q).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if len(q.traces) != 1 || q.traces[0] != "req-123" {
		t.Fatalf("trace id not handed to the queue: %v", q.traces)
	}
}

func TestWebhook_Failures(t *testing.T) {
	tests := []struct {
		name  string
		queue *fakeQueue
		body  string
	}{
		{name: "malformed json", queue: &fakeQueue{}, body: `{"update_id":`},
		{name: "queue full", queue: &fakeQueue{err: errors.New("worker queue full")}, body: `{"update_id": 1}`},
		{name: "handoff panics", queue: &fakeQueue{panics: true}, body: `{"update_id": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(tt.queue), http.MethodPost, "/webhook", tt.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("want 500, got %d", rec.Code)
			}
		})
	}
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(&fakeQueue{}), http.MethodGet, "/webhook", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.MustRegister()
	metrics.IncWebhookRequest(http.StatusOK)

	rec := do(t, newTestServer(&fakeQueue{}), http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "webhook_requests_total") {
		t.Fatalf("metrics output missing webhook counter")
	}
}
