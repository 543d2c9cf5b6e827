package hotels

import "context"

// OfferQuery is one availability request. Minimal drops dates, room count
// and result shaping, leaving only hotel IDs and adults.
type OfferQuery struct {
	HotelIDs  []string
	CheckIn   string
	CheckOut  string
	Adults    int
	PageLimit int
	Minimal   bool
}

// Directory is the upstream hotel directory. A non-nil error means the call
// never produced an HTTP response (network failure, timeout, auth
// failure); any HTTP status is returned with a nil error.
type Directory interface {
	HotelsByCity(ctx context.Context, cityCode string, allSources bool) (status int, ids []string, err error)
	HotelsByGeocode(ctx context.Context, lat, lon float64, radiusKm int, allSources bool) (status int, ids []string, err error)
	HotelOffers(ctx context.Context, q OfferQuery) (status int, bundles []OfferBundle, err error)
	HotelOffer(ctx context.Context, offerID string) (status int, bundle *OfferBundle, err error)
}

// PhotoSearcher finds a representative photo reference for a free-text
// place query. An empty reference with a nil error means no match.
type PhotoSearcher interface {
	FindPhotoReference(ctx context.Context, query string) (string, error)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
