// Package hotels resolves hotel availability for a destination by walking a
// staged fallback pipeline over the hotel directory: explicit IDs, city
// lookup, geographic expansion and nearby-market fallback.
package hotels

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Stage tags reported in SearchResult.Via.
const (
	ViaExplicitIDs    = "v3:explicit-ids"
	ViaCity           = "v3:v1-city"
	ViaCityGeo        = "v3:v1-city+geo"
	ViaMarketFallback = "v3:market-fallback"

	ViaEmptyExplicitIDs = "v3-empty:explicit-ids"
	ViaEmptyStrictCity  = "v3-empty:strict-city"
	ViaEmptyStaged      = "v3-empty:staged"

	ViaError = "v3-error"
)

var hotelIDPattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// IsValidHotelID reports whether id has the directory's 8-character form.
func IsValidHotelID(id string) bool {
	return hotelIDPattern.MatchString(id)
}

// NormalizeHotelIDs uppercases and trims ids, drops anything that is not a
// valid hotel ID and removes duplicates while keeping first-seen order.
func NormalizeHotelIDs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.ToUpper(strings.TrimSpace(id))
		if !IsValidHotelID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ─── Request ────────────────────────────────────────────────

type SearchRequest struct {
	CityCode   string
	Lat        *float64
	Lon        *float64
	CheckIn    string
	CheckOut   string
	Adults     int
	HotelIDs   []string
	StrictCity bool
}

func (r SearchRequest) HasGeo() bool {
	return r.Lat != nil && r.Lon != nil
}

func (r SearchRequest) HasCity() bool {
	return strings.TrimSpace(r.CityCode) != ""
}

// Normalized returns a copy with the city code uppercased, adults defaulted
// to 1 and hotel IDs filtered.
func (r SearchRequest) Normalized() SearchRequest {
	r.CityCode = strings.ToUpper(strings.TrimSpace(r.CityCode))
	r.CheckIn = strings.TrimSpace(r.CheckIn)
	r.CheckOut = strings.TrimSpace(r.CheckOut)
	if r.Adults < 1 {
		r.Adults = 1
	}
	r.HotelIDs = NormalizeHotelIDs(r.HotelIDs)
	return r
}

// CacheKey composes every field that affects the result into one string.
func (r SearchRequest) CacheKey() string {
	geo := "-"
	if r.HasGeo() {
		geo = coordKey(*r.Lat, *r.Lon)
	}
	ids := append([]string(nil), r.HotelIDs...)
	sort.Strings(ids)
	strict := "0"
	if r.StrictCity {
		strict = "1"
	}
	return strings.Join([]string{
		"search",
		"city=" + r.CityCode,
		"in=" + r.CheckIn,
		"out=" + r.CheckOut,
		"adults=" + strconv.Itoa(r.Adults),
		"strict=" + strict,
		"geo=" + geo,
		"ids=" + strings.Join(ids, ","),
	}, "|")
}

// coordKey renders a coordinate pair at full precision so nearby points
// never share an entry.
func coordKey(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

// ─── Directory payloads ─────────────────────────────────────

type Hotel struct {
	HotelID   string   `json:"hotelId"`
	Name      string   `json:"name,omitempty"`
	CityCode  string   `json:"cityCode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type RoomDescription struct {
	Text string `json:"text,omitempty"`
	Lang string `json:"lang,omitempty"`
}

type Room struct {
	Type        string           `json:"type,omitempty"`
	Description *RoomDescription `json:"description,omitempty"`
}

type Guests struct {
	Adults int `json:"adults,omitempty"`
}

type Price struct {
	Currency string `json:"currency,omitempty"`
	Base     string `json:"base,omitempty"`
	Total    string `json:"total,omitempty"`
}

type Offer struct {
	ID           string          `json:"id"`
	CheckInDate  string          `json:"checkInDate,omitempty"`
	CheckOutDate string          `json:"checkOutDate,omitempty"`
	RateCode     string          `json:"rateCode,omitempty"`
	Room         *Room           `json:"room,omitempty"`
	Guests       *Guests         `json:"guests,omitempty"`
	Price        Price           `json:"price"`
	Policies     json.RawMessage `json:"policies,omitempty"`
}

// OfferBundle is one hotel with its priced offers, plus an optional photo
// URL attached during enrichment.
type OfferBundle struct {
	Type      string  `json:"type,omitempty"`
	Hotel     Hotel   `json:"hotel"`
	Available bool    `json:"available"`
	Offers    []Offer `json:"offers"`
	Image     string  `json:"image,omitempty"`
}

// ─── Trace ──────────────────────────────────────────────────

// TraceEntry records one upstream or cache step. Status is an HTTP status
// code, "cache", "ok" or "empty".
type TraceEntry struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Trace is the append-only stage log owned by a single search run.
type Trace struct {
	entries []TraceEntry
}

func (t *Trace) Add(stage, status string, count int) {
	t.entries = append(t.entries, TraceEntry{Stage: stage, Status: status, Count: count})
}

func (t *Trace) AddStatus(stage string, status, count int) {
	t.Add(stage, strconv.Itoa(status), count)
}

func (t *Trace) Entries() []TraceEntry {
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ─── Results ────────────────────────────────────────────────

type Meta struct {
	Stage []TraceEntry `json:"stage"`
	Error string       `json:"error,omitempty"`
}

type SearchResult struct {
	FromCache        bool          `json:"fromCache"`
	Via              string        `json:"via"`
	Data             []OfferBundle `json:"data"`
	ResolvedCity     *string       `json:"resolvedCity"`
	UsedNearestDates bool          `json:"usedNearestDates"`
	Meta             Meta          `json:"meta"`
}

// OfferDetail is the response for a single offer lookup.
type OfferDetail struct {
	FromCache bool         `json:"fromCache"`
	Data      *OfferBundle `json:"data"`
	Meta      *DetailMeta  `json:"meta,omitempty"`
}

type DetailMeta struct {
	Status int    `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
