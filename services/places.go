package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/hotels"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

type PlacesConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Retries int
}

// PlacesClient looks up place photos for hotel enrichment and the photo proxy.
type PlacesClient struct {
	apiKey    string
	baseURL   string
	transport *transport
	client    *http.Client
	timeout   time.Duration
	metrics   *obs.Metrics
}

var _ hotels.PhotoSearcher = (*PlacesClient)(nil)

func NewPlacesClient(cfg PlacesConfig, m *obs.Metrics) *PlacesClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	t := newTransport(cfg.Timeout, cfg.Retries, 0, 0, m)
	t.prefix = logcolors.LogPhotos
	return &PlacesClient{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		transport: t,
		client:    &http.Client{},
		timeout:   t.timeout,
		metrics:   m,
	}
}

func (c *PlacesClient) Configured() bool {
	return c.apiKey != ""
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name   string `json:"name"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// FindPhotoReference returns the first photo reference for a text query, or
// "" when nothing matches.
func (c *PlacesClient) FindPhotoReference(ctx context.Context, query string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.apiKey)
	target := c.baseURL + "/maps/api/place/textsearch/json?" + q.Encode()

	status, body, err := c.transport.do(ctx, "places-textsearch", func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &StatusError{Op: "places-textsearch", Status: status, Body: snippet(body)}
	}

	var resp textSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse place search: %w", err)
	}
	switch resp.Status {
	case "OK", "ZERO_RESULTS", "":
	default:
		return "", fmt.Errorf("place search status %s: %s", resp.Status, resp.ErrorMessage)
	}

	for _, r := range resp.Results {
		for _, p := range r.Photos {
			if p.PhotoReference != "" {
				return p.PhotoReference, nil
			}
		}
	}
	return "", nil
}

// Photo is an upstream image stream. Callers must close Body.
type Photo struct {
	ContentType string
	Body        io.ReadCloser
	cancel      context.CancelFunc
}

func (p *Photo) Close() error {
	if p.cancel != nil {
		defer p.cancel()
	}
	return p.Body.Close()
}

// FetchPhoto opens the photo for ref at the given width.
func (c *PlacesClient) FetchPhoto(ctx context.Context, ref string, width int) (*Photo, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("maxwidth", strconv.Itoa(width))
	q.Set("photo_reference", ref)
	q.Set("key", c.apiKey)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/maps/api/place/photo?"+q.Encode(), nil)
	if err != nil {
		cancel()
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		cancel()
		c.metrics.ObserveUpstream("places-photo", "error", time.Since(start).Seconds())
		return nil, &TransportError{Op: "places-photo", Attempts: 1, Err: err}
	}
	c.metrics.ObserveUpstream("places-photo", strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		cancel()
		return nil, &StatusError{Op: "places-photo", Status: resp.StatusCode, Body: snippet(body)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &Photo{ContentType: contentType, Body: resp.Body, cancel: cancel}, nil
}
