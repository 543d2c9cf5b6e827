package services

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

// transport sends upstream requests with a per-call timeout, an outbound
// throttle and bounded retries on transport failures. Non-2xx answers are
// returned as-is and never retried here.
type transport struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	retries int
	backoff time.Duration
	metrics *obs.Metrics
	prefix  string
}

type requestBuilder func(ctx context.Context) (*http.Request, error)

func (t *transport) do(ctx context.Context, endpoint string, build requestBuilder) (int, []byte, error) {
	attempts := t.retries + 1
	var lastErr error
	tried := 0

	for tried < attempts {
		tried++
		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				lastErr = err
				break
			}
		}

		status, body, err := t.once(ctx, endpoint, build)
		if err == nil {
			return status, body, nil
		}
		lastErr = err
		log.Warnf("%s %s attempt %d/%d failed: %v", t.prefix, endpoint, tried, attempts, err)

		if ctx.Err() != nil || tried == attempts {
			break
		}
		select {
		case <-time.After(t.backoff * time.Duration(tried)):
		case <-ctx.Done():
		}
	}
	return 0, nil, &TransportError{Op: endpoint, Attempts: tried, Err: lastErr}
}

func (t *transport) once(ctx context.Context, endpoint string, build requestBuilder) (int, []byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := build(callCtx)
	if err != nil {
		return 0, nil, err
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.metrics.ObserveUpstream(endpoint, "error", time.Since(start).Seconds())
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.ObserveUpstream(endpoint, "error", time.Since(start).Seconds())
		return 0, nil, err
	}
	t.metrics.ObserveUpstream(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	return resp.StatusCode, body, nil
}

func newTransport(timeout time.Duration, retries int, perSecond float64, burst int, m *obs.Metrics) *transport {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	var limiter *rate.Limiter
	if perSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return &transport{
		client:  &http.Client{},
		limiter: limiter,
		timeout: timeout,
		retries: retries,
		backoff: 200 * time.Millisecond,
		metrics: m,
		prefix:  logcolors.LogDirectory,
	}
}

// budget is the longest do can take: every attempt timing out plus the
// backoff between attempts.
func (t *transport) budget() time.Duration {
	attempts := time.Duration(t.retries + 1)
	pauses := time.Duration(t.retries * (t.retries + 1) / 2)
	return attempts*t.timeout + pauses*t.backoff
}

func snippet(body []byte) string {
	const maxLen = 200
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
