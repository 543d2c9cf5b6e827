package hotels

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

type PhotoOptions struct {
	Limit       int
	Concurrency int64
	Timeout     time.Duration
	MaxWidth    int
}

// PhotoEnricher attaches proxied image URLs to offer bundles that have none.
type PhotoEnricher struct {
	searcher PhotoSearcher
	cache    *TTLCache[string]
	opts     PhotoOptions
	metrics  *obs.Metrics
}

func NewPhotoEnricher(searcher PhotoSearcher, cache *TTLCache[string], opts PhotoOptions, m *obs.Metrics) *PhotoEnricher {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = int64(opts.Limit)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 800
	}
	return &PhotoEnricher{searcher: searcher, cache: cache, opts: opts, metrics: m}
}

// PhotoURL is the local proxy URL for a place photo reference.
func PhotoURL(ref string, width int) string {
	return "/api/places/photo?ref=" + url.QueryEscape(ref) + "&w=" + strconv.Itoa(width)
}

// Enrich fills Image on up to Limit bundles lacking one. It returns once
// every lookup has settled. Lookup failures leave the bundle untouched.
func (p *PhotoEnricher) Enrich(ctx context.Context, bundles []OfferBundle, city string) {
	var targets []int
	for i := range bundles {
		if len(targets) == p.opts.Limit {
			break
		}
		if bundles[i].Image == "" {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return
	}

	sem := semaphore.NewWeighted(p.opts.Concurrency)
	var wg sync.WaitGroup
	for _, idx := range targets {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Warnf("%s lookup panicked: %v", logcolors.LogPhotos, r)
				}
			}()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			if ref := p.lookup(ctx, bundles[idx].Hotel.Name, city); ref != "" {
				bundles[idx].Image = PhotoURL(ref, p.opts.MaxWidth)
			}
		}(idx)
	}
	wg.Wait()
}

func (p *PhotoEnricher) lookup(ctx context.Context, name, city string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		p.metrics.IncPhoto("skipped")
		return ""
	}
	query := strings.TrimSpace(name + " " + city)
	key := photoKey(query)
	if ref, ok := p.cache.Get(key); ok {
		return ref
	}

	lookupCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	ref, err := p.searcher.FindPhotoReference(lookupCtx, query)
	if err != nil {
		log.Debugf("%s %q: %v", logcolors.LogPhotos, query, err)
		p.metrics.IncPhoto("error")
		return ""
	}
	if ref == "" {
		p.metrics.IncPhoto("no_match")
		return ""
	}
	p.cache.Set(key, ref, PhotoTTL)
	p.metrics.IncPhoto("found")
	return ref
}
