package hotels

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/catalog"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

type Options struct {
	CityIDCap      int
	GeoIDCap       int
	MarketIDCap    int
	OfferPageLimit int
	GeoRadiiKm     []int
	MarketFallback bool
	// Coalesce shares one pipeline run between identical concurrent searches.
	Coalesce bool
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.CityIDCap <= 0 {
		o.CityIDCap = 20
	}
	if o.GeoIDCap <= 0 {
		o.GeoIDCap = 50
	}
	if o.MarketIDCap <= 0 {
		o.MarketIDCap = 20
	}
	if o.OfferPageLimit <= 0 {
		o.OfferPageLimit = 20
	}
	if len(o.GeoRadiiKm) == 0 {
		o.GeoRadiiKm = DefaultGeoRadiiKm
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Service is the search orchestrator. It is safe for concurrent use.
type Service struct {
	dir          Directory
	discovery    *discovery
	availability *availability
	resolver     *Resolver
	caches       *Caches
	photos       *PhotoEnricher
	metrics      *obs.Metrics
	opts         Options
	flight       singleflight.Group
}

// NewService wires the pipeline. photos may be nil to disable enrichment.
func NewService(dir Directory, resolver *Resolver, caches *Caches, photos *PhotoEnricher, m *obs.Metrics, opts Options) *Service {
	opts = opts.withDefaults()
	return &Service{
		dir:          dir,
		discovery:    &discovery{dir: dir},
		availability: &availability{dir: dir, pageLimit: opts.OfferPageLimit},
		resolver:     resolver,
		caches:       caches,
		photos:       photos,
		metrics:      m,
		opts:         opts,
	}
}

// Search resolves availability for req. On a transport failure the returned
// result is already shaped as the error response, carrying the partial
// trace, and err is non-nil for logging.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	req = req.Normalized()
	key := req.CacheKey()

	if cached, ok := s.caches.Search.Get(key); ok {
		cached.FromCache = true
		s.metrics.IncSearch(cached.Via)
		log.Debugf("%s hit %s", logcolors.LogCache, key)
		return cached, nil
	}

	if !s.opts.Coalesce {
		return s.run(ctx, key, req)
	}

	type shared struct {
		res SearchResult
		err error
	}
	v, _, _ := s.flight.Do(key, func() (interface{}, error) {
		res, err := s.run(ctx, key, req)
		return shared{res: res, err: err}, nil
	})
	out := v.(shared)
	return out.res, out.err
}

// Offer returns a single offer, from the offer cache when a previous search
// or detail call stored it.
func (s *Service) Offer(ctx context.Context, offerID string) (OfferDetail, error) {
	offerID = strings.TrimSpace(offerID)
	key := offerKey(offerID)
	if b, ok := s.caches.Offers.Get(key); ok {
		return OfferDetail{FromCache: true, Data: &b}, nil
	}

	status, bundle, err := s.dir.HotelOffer(ctx, offerID)
	if err != nil {
		return OfferDetail{Meta: &DetailMeta{Error: err.Error()}}, err
	}
	if !isSuccess(status) || bundle == nil {
		return OfferDetail{Meta: &DetailMeta{Status: status}}, nil
	}
	s.caches.Offers.Set(key, *bundle, OfferTTL)
	return OfferDetail{Data: bundle}, nil
}

// ─── Pipeline run ───────────────────────────────────────────

type stageOutput struct {
	via              string
	bundles          []OfferBundle
	usedNearestDates bool
	resolvedCity     string
	ttl              time.Duration
}

type run struct {
	svc     *Service
	req     SearchRequest
	trace   *Trace
	cityIDs []string
}

func (s *Service) run(ctx context.Context, key string, req SearchRequest) (SearchResult, error) {
	r := &run{svc: s, req: req, trace: &Trace{}}
	plan := planFor(req, s.opts.MarketFallback)
	stage := firstStage(plan)
	last := stage

	for {
		var (
			out stageOutput
			err error
		)
		switch stage {
		case StageExplicitIDs:
			out, err = r.explicit(ctx)
		case StageCityLookup:
			out, err = r.city(ctx)
		case StageGeoExpansion:
			out, err = r.geo(ctx)
		case StageMarketFallback:
			out, err = r.market(ctx)
		case StageStrictShortCircuit:
			return s.empty(r, StageStrictShortCircuit), nil
		default:
			return s.empty(r, last), nil
		}

		outcome := OutcomeEmpty
		switch {
		case err != nil:
			outcome = OutcomeTransportError
		case len(out.bundles) > 0:
			outcome = OutcomeSuccess
		}
		s.metrics.IncStage(stage.String(), outcome.String())

		switch outcome {
		case OutcomeTransportError:
			return s.failed(r, err), err
		case OutcomeSuccess:
			return s.complete(ctx, key, r, out), nil
		}

		last = stage
		stage = nextStage(stage, plan, outcome)
	}
}

func (r *run) explicit(ctx context.Context) (stageOutput, error) {
	res, err := r.svc.availability.search(ctx, r.trace, "explicit-ids", r.req.HotelIDs, r.req)
	if err != nil {
		return stageOutput{}, err
	}
	return stageOutput{via: ViaExplicitIDs, bundles: res.bundles, usedNearestDates: res.usedNearestDates}, nil
}

func (r *run) city(ctx context.Context) (stageOutput, error) {
	s := r.svc
	aliases := s.resolver.AliasesOf(r.req.CityCode)
	key := cityIDsKey(aliases)

	ids, ok := s.caches.IDs.Get(key)
	if ok {
		r.trace.Add("v1-city:cache", "cache", len(ids))
	} else {
		lists := make([][]string, 0, len(aliases))
		for _, code := range aliases {
			found, err := s.discovery.byCity(ctx, r.trace, "v1-city", code)
			if err != nil {
				return stageOutput{}, err
			}
			lists = append(lists, found)
		}
		ids = union(0, lists...)
		if len(ids) > 0 {
			s.caches.IDs.Set(key, ids, DiscoveryTTL)
		}
	}
	r.cityIDs = ids

	res, err := s.availability.search(ctx, r.trace, "v1-city", capIDs(ids, s.opts.CityIDCap), r.req)
	if err != nil {
		return stageOutput{}, err
	}
	return stageOutput{via: ViaCity, bundles: res.bundles, usedNearestDates: res.usedNearestDates}, nil
}

func (r *run) geo(ctx context.Context) (stageOutput, error) {
	s := r.svc
	lat, lon := *r.req.Lat, *r.req.Lon
	key := "ids:geo:" + coordKey(lat, lon) + ":" + r.req.CityCode

	merged, ok := s.caches.IDs.Get(key)
	if ok {
		r.trace.Add("v1-geo:cache", "cache", len(merged))
	} else {
		lists := [][]string{r.cityIDs}
		for _, radius := range s.opts.GeoRadiiKm {
			found, err := s.discovery.byGeo(ctx, r.trace, lat, lon, radius)
			if err != nil {
				return stageOutput{}, err
			}
			lists = append(lists, found)
		}
		merged = union(s.opts.GeoIDCap, lists...)
		if len(merged) > 0 {
			s.caches.IDs.Set(key, merged, DiscoveryTTL)
		}
	}

	res, err := s.availability.search(ctx, r.trace, "v1-city+geo", merged, r.req)
	if err != nil {
		return stageOutput{}, err
	}
	return stageOutput{via: ViaCityGeo, bundles: res.bundles, usedNearestDates: res.usedNearestDates}, nil
}

func (r *run) market(ctx context.Context) (stageOutput, error) {
	s := r.svc
	for _, code := range s.resolver.FallbackMarkets(r.req.CityCode) {
		key := cityIDsKey([]string{code})
		ids, ok := s.caches.IDs.Get(key)
		if ok {
			r.trace.Add("market:"+code+":cache", "cache", len(ids))
		} else {
			found, err := s.discovery.byCity(ctx, r.trace, "market", code)
			if err != nil {
				return stageOutput{}, err
			}
			ids = found
			if len(ids) > 0 {
				s.caches.IDs.Set(key, ids, DiscoveryTTL)
			}
		}
		if len(ids) == 0 {
			continue
		}

		res, err := s.availability.search(ctx, r.trace, "market:"+code, capIDs(ids, s.opts.MarketIDCap), r.req)
		if err != nil {
			return stageOutput{}, err
		}
		if len(res.bundles) > 0 {
			log.Infof("%s %s had no inventory, serving %s", logcolors.LogFallback, r.req.CityCode, code)
			return stageOutput{
				via:              ViaMarketFallback,
				bundles:          res.bundles,
				usedNearestDates: res.usedNearestDates,
				resolvedCity:     code,
				ttl:              MarketTTL,
			}, nil
		}
	}
	return stageOutput{}, nil
}

// ─── Results ────────────────────────────────────────────────

func (s *Service) complete(ctx context.Context, key string, r *run, out stageOutput) SearchResult {
	resolved := out.resolvedCity
	if resolved == "" {
		resolved = r.req.CityCode
	}

	if s.photos != nil {
		s.photos.Enrich(ctx, out.bundles, cityLabel(resolved))
	}

	for _, b := range out.bundles {
		for _, o := range b.Offers {
			if o.ID == "" {
				continue
			}
			single := b
			single.Offers = []Offer{o}
			s.caches.Offers.Set(offerKey(o.ID), single, OfferTTL)
		}
	}

	ttl := out.ttl
	if ttl == 0 {
		ttl = SearchTTL(r.req.CheckIn, s.opts.Now())
	}

	res := SearchResult{
		Via:              out.via,
		Data:             out.bundles,
		ResolvedCity:     stringPtr(resolved),
		UsedNearestDates: out.usedNearestDates,
		Meta:             Meta{Stage: r.trace.Entries()},
	}
	s.caches.Search.Set(key, res, ttl)
	s.metrics.IncSearch(res.Via)

	log.Infof("%s %s: %d hotel(s) via %s, cached %v", logcolors.LogSearch, searchLabel(r.req), len(res.Data), res.Via, ttl)
	return res
}

func (s *Service) empty(r *run, from Stage) SearchResult {
	via := emptyVia(from)
	s.metrics.IncSearch(via)
	log.Infof("%s %s: no inventory (%s)", logcolors.LogSearch, searchLabel(r.req), via)
	return SearchResult{
		Via:          via,
		Data:         []OfferBundle{},
		ResolvedCity: stringPtr(r.req.CityCode),
		Meta:         Meta{Stage: r.trace.Entries()},
	}
}

func (s *Service) failed(r *run, err error) SearchResult {
	s.metrics.IncSearch(ViaError)
	log.Errorf("%s %s: %v", logcolors.LogSearch, searchLabel(r.req), err)
	return SearchResult{
		Via:          ViaError,
		Data:         []OfferBundle{},
		ResolvedCity: stringPtr(r.req.CityCode),
		Meta:         Meta{Stage: r.trace.Entries(), Error: err.Error()},
	}
}

func capIDs(ids []string, limit int) []string {
	if limit > 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}

func cityLabel(code string) string {
	if d, ok := catalog.Lookup(code); ok {
		return d.Name
	}
	return code
}

func searchLabel(req SearchRequest) string {
	switch {
	case req.HasCity():
		return req.CityCode
	case req.HasGeo():
		return fmt.Sprintf("%.4f,%.4f", *req.Lat, *req.Lon)
	case len(req.HotelIDs) > 0:
		return strings.Join(req.HotelIDs, ",")
	default:
		return "(empty)"
	}
}
