package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goalcrush/fantasy-scoring/internal/platform/resilience"
	"github.com/goalcrush/fantasy-scoring/internal/usecase"
)

func testEvent() usecase.MatchScoredEvent {
	return usecase.MatchScoredEvent{
		MatchID:               1,
		SeasonID:              7,
		PerformancesProcessed: 2,
		FantasySeasonIDs:      []int64{100},
		RulesVersion:          "1.0.0",
		ScoredAt:              "2026-03-01T12:00:00Z",
	}
}

func TestWebhookPublisherDeliversEvent(t *testing.T) {
	t.Parallel()

	var gotBody atomic.Value
	var gotEventType atomic.Value
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody.Store(string(raw))
		gotEventType.Store(r.Header.Get("X-Event-Type"))
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		TargetURL: server.URL,
		Token:     "secret",
	}, nil)

	if err := publisher.PublishMatchScored(context.Background(), testEvent()); err != nil {
		t.Fatalf("PublishMatchScored() error = %v", err)
	}

	body, _ := gotBody.Load().(string)
	if !strings.Contains(body, `"match_id":1`) || !strings.Contains(body, `"rules_version":"1.0.0"`) {
		t.Fatalf("request body = %q, want match_id and rules_version fields", body)
	}
	if eventType, _ := gotEventType.Load().(string); eventType != "fantasy.match.scored" {
		t.Fatalf("X-Event-Type = %q, want fantasy.match.scored", eventType)
	}
	if auth, _ := gotAuth.Load().(string); auth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want Bearer secret", auth)
	}
}

func TestWebhookPublisherRejectsInvalidTargetURL(t *testing.T) {
	t.Parallel()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		TargetURL: "ftp://example.com/hooks",
	}, nil)

	if err := publisher.PublishMatchScored(context.Background(), testEvent()); err == nil {
		t.Fatal("PublishMatchScored() error = nil, want invalid target url error")
	}
}

func TestWebhookPublisherOpensCircuitOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		TargetURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := publisher.PublishMatchScored(ctx, testEvent()); err == nil {
			t.Fatalf("publish %d error = nil, want transient failure", i)
		}
	}

	err := publisher.PublishMatchScored(ctx, testEvent())
	if err == nil || !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("publish after threshold error = %v, want circuit rejection", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("target received %d calls, want 2 before circuit opened", got)
	}
}

func TestWebhookPublisherTreatsClientErrorsAsPermanent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		TargetURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := publisher.PublishMatchScored(ctx, testEvent())
		if err == nil {
			t.Fatalf("publish %d error = nil, want status error", i)
		}
		if strings.Contains(err.Error(), "temporarily unavailable") {
			t.Fatalf("publish %d rejected by circuit, 4xx must not trip it", i)
		}
	}
}
