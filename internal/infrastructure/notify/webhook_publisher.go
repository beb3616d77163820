// Package notify delivers outbound events to downstream consumers
// over HTTP webhooks.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goalcrush/fantasy-scoring/internal/platform/id"
	"github.com/goalcrush/fantasy-scoring/internal/platform/logging"
	"github.com/goalcrush/fantasy-scoring/internal/platform/resilience"
	"github.com/goalcrush/fantasy-scoring/internal/usecase"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	TargetURL      string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher posts match-scored events to one configured URL.
// Delivery failures are logged and counted against the circuit
// breaker but never bubble into the scoring path.
type WebhookPublisher struct {
	client         *fasthttp.Client
	targetURL      string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	ids            *id.RandomGenerator
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		targetURL:      strings.TrimSpace(cfg.TargetURL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		ids:            id.NewRandomGenerator(),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (p *WebhookPublisher) PublishMatchScored(ctx context.Context, event usecase.MatchScoredEvent) error {
	err := p.publish(ctx, event)
	if err != nil {
		p.logger.WarnContext(ctx, "match scored webhook failed",
			"match_id", event.MatchID,
			"target_url", p.targetURL,
			"error", err,
		)
	}
	return err
}

func (p *WebhookPublisher) publish(ctx context.Context, event usecase.MatchScoredEvent) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			return fmt.Errorf("webhook target is temporarily unavailable: %w", err)
		}
	}

	targetURL, err := validateHTTPURL(p.targetURL)
	if err != nil {
		return crerr.Wrap(err, "invalid webhook target url")
	}

	body, err := sonic.Marshal(event)
	if err != nil {
		return crerr.Wrap(err, "marshal match scored event")
	}

	eventID, err := p.ids.NewID()
	if err != nil {
		return crerr.Wrap(err, "generate event id")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.target_url", targetURL),
			attribute.String("webhook.event_id", eventID),
			attribute.String("webhook.request_body", truncateForLog(string(body), 4096)),
		)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Event-Id", eventID)
	req.Header.Set("X-Event-Type", "fantasy.match.scored")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		callErr := fmt.Errorf("%w: post match scored event target_url=%s: %v", errWebhookTransient, targetURL, err)
		p.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := truncateForLog(string(resp.Body()), 4096)
		if isRetryableStatus(status) {
			callErr := fmt.Errorf("%w: post match scored event status=%d target_url=%s body=%s", errWebhookTransient, status, targetURL, strings.TrimSpace(raw))
			p.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf("post match scored event status=%d target_url=%s body=%s", status, targetURL, strings.TrimSpace(raw))
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "match scored webhook delivered",
		"match_id", event.MatchID,
		"event_id", eventID,
		"fantasy_season_ids", event.FantasySeasonIDs,
		"curl_preview", buildCurlPreview(targetURL, eventID, truncateForLog(string(body), 1024), p.token != ""),
	)
	p.recordCircuitResult(nil)
	return nil
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func buildCurlPreview(targetURL, eventID, body string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendFlagHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(targetURL))
	appendFlagHeader("Content-Type: application/json")
	appendFlagHeader("X-Event-Id: " + eventID)
	appendFlagHeader("X-Event-Type: fantasy.match.scored")
	if withToken {
		appendFlagHeader("Authorization: Bearer ***")
	}
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
