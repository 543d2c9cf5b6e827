package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

// tokenRefreshSkew is how long before expiry a cached token stops being used.
const tokenRefreshSkew = 60 * time.Second

// tokenCache holds the directory bearer token. Concurrent callers that find
// it stale share one credential exchange.
type tokenCache struct {
	clientID     string
	clientSecret string
	tokenURL     string
	transport    *transport
	now          func() time.Time
	metrics      *obs.Metrics

	mu     sync.Mutex
	token  string
	expiry time.Time
	group  singleflight.Group
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (t *tokenCache) configured() bool {
	return t.clientID != "" && t.clientSecret != ""
}

// Token returns a bearer token, exchanging credentials when none is cached
// or the cached one is within tokenRefreshSkew of expiring.
func (t *tokenCache) Token(ctx context.Context) (string, error) {
	if !t.configured() {
		return "", ErrMissingCredentials
	}

	t.mu.Lock()
	if t.token != "" && t.now().Add(tokenRefreshSkew).Before(t.expiry) {
		token := t.token
		t.mu.Unlock()
		return token, nil
	}
	t.mu.Unlock()

	// The exchange is shared, so one caller's cancellation must not fail the rest.
	v, err, _ := t.group.Do("token", func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.transport.budget())
		defer cancel()
		return t.refresh(refreshCtx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call exchanges again.
func (t *tokenCache) Invalidate() {
	t.mu.Lock()
	t.token = ""
	t.expiry = time.Time{}
	t.mu.Unlock()
}

func (t *tokenCache) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)
	encoded := form.Encode()

	status, body, err := t.transport.do(ctx, "token", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &StatusError{Op: "token", Status: status, Body: snippet(body)}
	}

	var result tokenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("token response carried no access_token")
	}

	expiry := t.now().Add(time.Duration(result.ExpiresIn) * time.Second)
	t.mu.Lock()
	t.token = result.AccessToken
	t.expiry = expiry
	t.mu.Unlock()

	t.metrics.IncTokenRefresh()
	log.Infof("%s Refreshed directory token, valid until %s", logcolors.LogToken, expiry.Format(time.RFC3339))
	return result.AccessToken, nil
}
