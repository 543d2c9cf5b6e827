package hotels

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
)

// DefaultGeoRadiiKm are the radii probed during geographic expansion.
var DefaultGeoRadiiKm = []int{10, 25, 50}

type discovery struct {
	dir Directory
}

type lookupFunc func(allSources bool) (int, []string, error)

// adaptive asks with the all-sources parameter and, on a non-2xx answer,
// retries once without it. It records the final status in the trace.
func (d *discovery) adaptive(trace *Trace, stage string, call lookupFunc) ([]string, error) {
	status, raw, err := call(true)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		log.Debugf("%s %s returned %d, retrying without source filter", logcolors.LogDiscovery, stage, status)
		status, raw, err = call(false)
		if err != nil {
			return nil, err
		}
	}

	var ids []string
	if isSuccess(status) {
		ids = NormalizeHotelIDs(raw)
	}
	trace.AddStatus(stage, status, len(ids))
	return ids, nil
}

func (d *discovery) byCity(ctx context.Context, trace *Trace, stage, cityCode string) ([]string, error) {
	return d.adaptive(trace, stage+":"+cityCode, func(all bool) (int, []string, error) {
		return d.dir.HotelsByCity(ctx, cityCode, all)
	})
}

func (d *discovery) byGeo(ctx context.Context, trace *Trace, lat, lon float64, radiusKm int) ([]string, error) {
	return d.adaptive(trace, fmt.Sprintf("v1-geo:%dkm", radiusKm), func(all bool) (int, []string, error) {
		return d.dir.HotelsByGeocode(ctx, lat, lon, radiusKm, all)
	})
}

// union appends the members of each list not already present, in order,
// stopping at limit when limit > 0.
func union(limit int, lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, id := range list {
			if limit > 0 && len(out) >= limit {
				return out
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
