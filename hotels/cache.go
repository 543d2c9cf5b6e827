package hotels

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

const (
	DiscoveryTTL = time.Hour
	OfferTTL     = 15 * time.Minute
	MarketTTL    = 5 * time.Minute
	PhotoTTL     = time.Hour

	nearTermTTL = 2 * time.Minute
	midTermTTL  = 5 * time.Minute
	farTermTTL  = 15 * time.Minute
)

// TTLCache is a typed view over go-cache. Expired entries are invisible to
// Get even before the janitor sweeps them.
type TTLCache[T any] struct {
	name    string
	items   *gocache.Cache
	metrics *obs.Metrics
}

func NewTTLCache[T any](name string, defaultTTL, sweep time.Duration, m *obs.Metrics) *TTLCache[T] {
	return &TTLCache[T]{
		name:    name,
		items:   gocache.New(defaultTTL, sweep),
		metrics: m,
	}
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := c.items.Get(key)
	if !ok {
		c.metrics.IncCache(c.name, false)
		return zero, false
	}
	typed, ok := v.(T)
	c.metrics.IncCache(c.name, ok)
	if !ok {
		return zero, false
	}
	return typed, true
}

func (c *TTLCache[T]) Set(key string, value T, ttl time.Duration) {
	c.items.Set(key, value, ttl)
}

func (c *TTLCache[T]) Delete(key string) {
	c.items.Delete(key)
}

func (c *TTLCache[T]) Len() int {
	return c.items.ItemCount()
}

// Caches holds the four TTL stores the pipeline reads and writes.
type Caches struct {
	IDs    *TTLCache[[]string]
	Search *TTLCache[SearchResult]
	Offers *TTLCache[OfferBundle]
	Photos *TTLCache[string]
}

func NewCaches(sweep time.Duration, m *obs.Metrics) *Caches {
	if sweep <= 0 {
		sweep = time.Minute
	}
	return &Caches{
		IDs:    NewTTLCache[[]string]("ids", DiscoveryTTL, sweep, m),
		Search: NewTTLCache[SearchResult]("search", midTermTTL, sweep, m),
		Offers: NewTTLCache[OfferBundle]("offer", OfferTTL, sweep, m),
		Photos: NewTTLCache[string]("photo", PhotoTTL, sweep, m),
	}
}

func cityIDsKey(aliases []string) string {
	return "ids:city:" + strings.Join(aliases, "+")
}

func offerKey(id string) string {
	return "offer:" + id
}

func photoKey(query string) string {
	return "photo:" + strings.ToLower(query)
}

// SearchTTL picks the search cache lifetime from how far away check-in is.
// Unparseable dates get the middle tier.
func SearchTTL(checkIn string, now time.Time) time.Duration {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return midTermTTL
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	days := int(in.Sub(today).Hours() / 24)

	switch {
	case days <= 3:
		return nearTermTTL
	case days <= 14:
		return midTermTTL
	default:
		return farTermTTL
	}
}
