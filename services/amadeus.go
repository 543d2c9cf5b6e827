package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/hotels"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusConfig struct {
	ClientID      string
	ClientSecret  string
	BaseURL       string
	Timeout       time.Duration
	Retries       int
	RatePerSecond float64
	RateBurst     int
	RetryBackoff  time.Duration
	Now           func() time.Time
}

// AmadeusClient talks to the hotel directory: hotel lists by city or
// geocode, batched offer search and single offer detail.
type AmadeusClient struct {
	baseURL   string
	transport *transport
	tokens    *tokenCache
}

var _ hotels.Directory = (*AmadeusClient)(nil)

func NewAmadeusClient(cfg AmadeusConfig, m *obs.Metrics) *AmadeusClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	t := newTransport(cfg.Timeout, cfg.Retries, cfg.RatePerSecond, cfg.RateBurst, m)
	if cfg.RetryBackoff > 0 {
		t.backoff = cfg.RetryBackoff
	}

	c := &AmadeusClient{
		baseURL:   baseURL,
		transport: t,
		tokens: &tokenCache{
			clientID:     cfg.ClientID,
			clientSecret: cfg.ClientSecret,
			tokenURL:     baseURL + "/v1/security/oauth2/token",
			transport:    t,
			now:          cfg.Now,
			metrics:      m,
		},
	}

	if !c.Configured() {
		log.Warnf("%s AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set, hotel search will report errors", logcolors.LogDirectory)
	}
	return c
}

func (c *AmadeusClient) Configured() bool {
	return c.tokens.configured()
}

// Warm exchanges credentials ahead of the first search.
func (c *AmadeusClient) Warm(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

func (c *AmadeusClient) get(ctx context.Context, endpoint, path string, q url.Values) (int, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: auth failed: %w", endpoint, err)
	}

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	status, body, err := c.transport.do(ctx, endpoint, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, nil, err
	}
	if status == http.StatusUnauthorized {
		c.tokens.Invalidate()
	}
	if status < 200 || status >= 300 {
		log.Debugf("%s %s returned %d: %s", logcolors.LogDirectory, endpoint, status, snippet(body))
	}
	return status, body, nil
}

// ─── Hotel List ───────────────────────────────────────────────────────────────

type hotelListResponse struct {
	Data []struct {
		HotelID  string `json:"hotelId"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
	} `json:"data"`
}

func parseHotelIDs(status int, body []byte) (int, []string, error) {
	if status < 200 || status >= 300 {
		return status, nil, nil
	}
	var resp hotelListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Debugf("%s unreadable hotel list (%d): %v: %s", logcolors.LogDirectory, status, err, snippet(body))
		return status, nil, nil
	}
	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return status, ids, nil
}

func (c *AmadeusClient) HotelsByCity(ctx context.Context, cityCode string, allSources bool) (int, []string, error) {
	q := url.Values{}
	q.Set("cityCode", cityCode)
	if allSources {
		q.Set("hotelSource", "ALL")
	}
	status, body, err := c.get(ctx, "hotels-by-city", "/v1/reference-data/locations/hotels/by-city", q)
	if err != nil {
		return 0, nil, err
	}
	return parseHotelIDs(status, body)
}

func (c *AmadeusClient) HotelsByGeocode(ctx context.Context, lat, lon float64, radiusKm int, allSources bool) (int, []string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radiusKm))
	q.Set("radiusUnit", "KM")
	if allSources {
		q.Set("hotelSource", "ALL")
	}
	status, body, err := c.get(ctx, "hotels-by-geocode", "/v1/reference-data/locations/hotels/by-geocode", q)
	if err != nil {
		return 0, nil, err
	}
	return parseHotelIDs(status, body)
}

// ─── Hotel Offers ─────────────────────────────────────────────────────────────

type hotelOffersResponse struct {
	Data []hotels.OfferBundle `json:"data"`
}

type hotelOfferResponse struct {
	Data *hotels.OfferBundle `json:"data"`
}

// HotelOffers runs one batched availability query. A minimal query sends
// only hotel IDs and adults.
func (c *AmadeusClient) HotelOffers(ctx context.Context, oq hotels.OfferQuery) (int, []hotels.OfferBundle, error) {
	q := url.Values{}
	q.Set("hotelIds", strings.Join(oq.HotelIDs, ","))
	q.Set("adults", strconv.Itoa(max(oq.Adults, 1)))
	if !oq.Minimal {
		q.Set("checkInDate", oq.CheckIn)
		q.Set("checkOutDate", oq.CheckOut)
		q.Set("roomQuantity", "1")
		q.Set("bestRateOnly", "true")
		if oq.PageLimit > 0 {
			q.Set("page[limit]", strconv.Itoa(oq.PageLimit))
		}
	}

	status, body, err := c.get(ctx, "hotel-offers", "/v3/shopping/hotel-offers", q)
	if err != nil {
		return 0, nil, err
	}
	if status < 200 || status >= 300 {
		return status, nil, nil
	}

	var resp hotelOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return status, nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}
	return status, resp.Data, nil
}

func (c *AmadeusClient) HotelOffer(ctx context.Context, offerID string) (int, *hotels.OfferBundle, error) {
	status, body, err := c.get(ctx, "hotel-offer", "/v3/shopping/hotel-offers/"+url.PathEscape(offerID), nil)
	if err != nil {
		return 0, nil, err
	}
	if status < 200 || status >= 300 {
		return status, nil, nil
	}

	var resp hotelOfferResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return status, nil, fmt.Errorf("failed to parse hotel offer: %w", err)
	}
	return status, resp.Data, nil
}
