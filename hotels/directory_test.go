package hotels

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// fakeDirectory is an in-memory Directory that records every call.
type fakeDirectory struct {
	mu sync.Mutex

	cityIDs          map[string][]string
	rejectAllSources map[string]bool
	geoIDs           map[int][]string
	dated            map[string]OfferBundle
	minimal          map[string]OfferBundle
	detail           map[string]OfferBundle
	err              error

	calls       []string
	lastOffered []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		cityIDs:          map[string][]string{},
		rejectAllSources: map[string]bool{},
		geoIDs:           map[int][]string{},
		dated:            map[string]OfferBundle{},
		minimal:          map[string]OfferBundle{},
		detail:           map[string]OfferBundle{},
	}
}

func (f *fakeDirectory) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeDirectory) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeDirectory) countPrefix(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeDirectory) HotelsByCity(_ context.Context, cityCode string, allSources bool) (int, []string, error) {
	if allSources {
		f.record("city:" + cityCode + ":all")
	} else {
		f.record("city:" + cityCode)
	}
	if f.err != nil {
		return 0, nil, f.err
	}
	if allSources && f.rejectAllSources[cityCode] {
		return http.StatusBadRequest, nil, nil
	}
	ids, ok := f.cityIDs[cityCode]
	if !ok {
		return http.StatusNotFound, nil, nil
	}
	return http.StatusOK, ids, nil
}

func (f *fakeDirectory) HotelsByGeocode(_ context.Context, _, _ float64, radiusKm int, allSources bool) (int, []string, error) {
	if allSources {
		f.record(fmt.Sprintf("geo:%d:all", radiusKm))
	} else {
		f.record(fmt.Sprintf("geo:%d", radiusKm))
	}
	if f.err != nil {
		return 0, nil, f.err
	}
	return http.StatusOK, f.geoIDs[radiusKm], nil
}

func (f *fakeDirectory) HotelOffers(_ context.Context, q OfferQuery) (int, []OfferBundle, error) {
	source := f.dated
	if q.Minimal {
		f.record("offers:minimal")
		source = f.minimal
	} else {
		f.record("offers:dated")
		f.mu.Lock()
		f.lastOffered = append([]string(nil), q.HotelIDs...)
		f.mu.Unlock()
	}
	if f.err != nil {
		return 0, nil, f.err
	}
	var out []OfferBundle
	for _, id := range q.HotelIDs {
		if b, ok := source[id]; ok {
			out = append(out, b)
		}
	}
	return http.StatusOK, out, nil
}

func (f *fakeDirectory) HotelOffer(_ context.Context, offerID string) (int, *OfferBundle, error) {
	f.record("offer:" + offerID)
	if f.err != nil {
		return 0, nil, f.err
	}
	b, ok := f.detail[offerID]
	if !ok {
		return http.StatusNotFound, nil, nil
	}
	return http.StatusOK, &b, nil
}

func makeIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%05d", prefix, i+1)
	}
	return ids
}

func makeBundle(hotelID, name string) OfferBundle {
	return OfferBundle{
		Type:      "hotel-offers",
		Hotel:     Hotel{HotelID: hotelID, Name: name},
		Available: true,
		Offers: []Offer{{
			ID:    "OFFER" + hotelID,
			Price: Price{Currency: "INR", Total: "5400.00"},
		}},
	}
}
