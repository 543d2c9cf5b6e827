package hotels

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
)

type availabilityResult struct {
	bundles          []OfferBundle
	usedNearestDates bool
}

type availability struct {
	dir       Directory
	pageLimit int
}

// search asks for dated offers and, when that yields nothing, probes again
// with only hotel IDs and adults so the directory can pick nearby dates.
func (a *availability) search(ctx context.Context, trace *Trace, stage string, ids []string, req SearchRequest) (availabilityResult, error) {
	if len(ids) == 0 {
		return availabilityResult{}, nil
	}

	q := OfferQuery{
		HotelIDs:  ids,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Adults:    req.Adults,
		PageLimit: a.pageLimit,
	}
	status, bundles, err := a.dir.HotelOffers(ctx, q)
	if err != nil {
		return availabilityResult{}, err
	}
	bundles = bookable(status, bundles)
	trace.AddStatus(stage+":dated", status, len(bundles))
	if len(bundles) > 0 {
		return availabilityResult{bundles: bundles}, nil
	}

	q.Minimal = true
	status, bundles, err = a.dir.HotelOffers(ctx, q)
	if err != nil {
		return availabilityResult{}, err
	}
	bundles = bookable(status, bundles)
	trace.AddStatus(stage+":minimal", status, len(bundles))
	if len(bundles) > 0 {
		log.Debugf("%s %s served %d hotel(s) from nearest dates", logcolors.LogSearch, stage, len(bundles))
		return availabilityResult{bundles: bundles, usedNearestDates: true}, nil
	}
	return availabilityResult{}, nil
}

// bookable keeps bundles that carry at least one offer. Non-2xx answers are
// treated as empty.
func bookable(status int, bundles []OfferBundle) []OfferBundle {
	if !isSuccess(status) {
		return nil
	}
	out := bundles[:0:0]
	for _, b := range bundles {
		if len(b.Offers) > 0 {
			out = append(out, b)
		}
	}
	return out
}
