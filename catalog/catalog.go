// Package catalog holds the static destination and airport catalog used for
// lookups, airport→metro code normalization, and city→country resolution.
package catalog

import (
	"sort"
	"strings"
	"unicode"
)

type Destination struct {
	Code     string `json:"code"`      // IATA airport or city code
	CityCode string `json:"city_code"` // metro code the hotel directory indexes by
	Name     string `json:"name"`
	Country  string `json:"country"` // ISO 3166-1 alpha-2
	Airport  bool   `json:"airport"`
}

var destinations = []Destination{
	// India
	{"GOI", "GOI", "Goa (Dabolim)", "IN", true},
	{"GOX", "GOI", "Goa (Mopa)", "IN", true},
	{"BOM", "BOM", "Mumbai", "IN", false},
	{"DEL", "DEL", "New Delhi", "IN", false},
	{"BLR", "BLR", "Bengaluru", "IN", false},
	{"MAA", "MAA", "Chennai", "IN", false},
	{"CCU", "CCU", "Kolkata", "IN", false},
	{"HYD", "HYD", "Hyderabad", "IN", false},
	{"COK", "COK", "Kochi", "IN", false},
	{"JAI", "JAI", "Jaipur", "IN", false},
	{"UDR", "UDR", "Udaipur", "IN", false},
	{"AGR", "AGR", "Agra", "IN", false},

	// South & South-East Asia
	{"CMB", "CMB", "Colombo", "LK", false},
	{"KTM", "KTM", "Kathmandu", "NP", false},
	{"MLE", "MLE", "Malé", "MV", false},
	{"BKK", "BKK", "Bangkok", "TH", false},
	{"HKT", "HKT", "Phuket", "TH", false},
	{"SIN", "SIN", "Singapore", "SG", false},
	{"KUL", "KUL", "Kuala Lumpur", "MY", false},
	{"DPS", "DPS", "Bali (Denpasar)", "ID", false},

	// Middle East
	{"DXB", "DXB", "Dubai", "AE", false},
	{"AUH", "AUH", "Abu Dhabi", "AE", false},
	{"DOH", "DOH", "Doha", "QA", false},

	// Europe
	{"LON", "LON", "London", "GB", false},
	{"LHR", "LON", "London Heathrow", "GB", true},
	{"LGW", "LON", "London Gatwick", "GB", true},
	{"STN", "LON", "London Stansted", "GB", true},
	{"LTN", "LON", "London Luton", "GB", true},
	{"PAR", "PAR", "Paris", "FR", false},
	{"CDG", "PAR", "Paris Charles de Gaulle", "FR", true},
	{"ORY", "PAR", "Paris Orly", "FR", true},
	{"ROM", "ROM", "Rome", "IT", false},
	{"FCO", "ROM", "Rome Fiumicino", "IT", true},
	{"CIA", "ROM", "Rome Ciampino", "IT", true},
	{"MIL", "MIL", "Milan", "IT", false},
	{"MXP", "MIL", "Milan Malpensa", "IT", true},
	{"MAD", "MAD", "Madrid", "ES", false},
	{"BCN", "BCN", "Barcelona", "ES", false},
	{"AMS", "AMS", "Amsterdam", "NL", false},
	{"BER", "BER", "Berlin", "DE", false},
	{"SXF", "BER", "Berlin Schönefeld", "DE", true},
	{"FRA", "FRA", "Frankfurt", "DE", false},
	{"MUC", "MUC", "Munich", "DE", false},
	{"IST", "IST", "Istanbul", "TR", false},
	{"LIS", "LIS", "Lisbon", "PT", false},
	{"ATH", "ATH", "Athens", "GR", false},

	// Central Asia
	{"TAS", "TAS", "Tashkent", "UZ", false},
	{"ALA", "ALA", "Almaty", "KZ", false},

	// East Asia & Pacific
	{"TYO", "TYO", "Tokyo", "JP", false},
	{"NRT", "TYO", "Tokyo Narita", "JP", true},
	{"HND", "TYO", "Tokyo Haneda", "JP", true},
	{"OSA", "OSA", "Osaka", "JP", false},
	{"SEL", "SEL", "Seoul", "KR", false},
	{"ICN", "SEL", "Seoul Incheon", "KR", true},
	{"HKG", "HKG", "Hong Kong", "HK", false},
	{"SYD", "SYD", "Sydney", "AU", false},
	{"MEL", "MEL", "Melbourne", "AU", false},

	// Americas
	{"NYC", "NYC", "New York", "US", false},
	{"JFK", "NYC", "New York JFK", "US", true},
	{"LGA", "NYC", "New York LaGuardia", "US", true},
	{"EWR", "NYC", "Newark", "US", true},
	{"LAX", "LAX", "Los Angeles", "US", false},
	{"SFO", "SFO", "San Francisco", "US", false},
	{"MIA", "MIA", "Miami", "US", false},
	{"CHI", "CHI", "Chicago", "US", false},
	{"ORD", "CHI", "Chicago O'Hare", "US", true},
	{"YTO", "YTO", "Toronto", "CA", false},
	{"YYZ", "YTO", "Toronto Pearson", "CA", true},
	{"MEX", "MEX", "Mexico City", "MX", false},
	{"CUN", "CUN", "Cancún", "MX", false},
	{"GRU", "SAO", "São Paulo Guarulhos", "BR", true},
	{"SAO", "SAO", "São Paulo", "BR", false},

	// Africa
	{"CAI", "CAI", "Cairo", "EG", false},
	{"CPT", "CPT", "Cape Town", "ZA", false},
	{"NBO", "NBO", "Nairobi", "KE", false},
	{"RAK", "RAK", "Marrakesh", "MA", false},
}

var byCode = func() map[string]Destination {
	m := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		m[d.Code] = d
	}
	return m
}()

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the catalog entry for an airport or city code.
func Lookup(code string) (Destination, bool) {
	d, ok := byCode[normalize(code)]
	return d, ok
}

// CityCodeFor maps an airport code to the metro code the hotel directory uses.
// Unknown codes are returned as-is.
func CityCodeFor(code string) string {
	code = normalize(code)
	if d, ok := byCode[code]; ok {
		return d.CityCode
	}
	return code
}

// CountryOf returns the ISO country for a code, or "" when unknown.
func CountryOf(code string) string {
	if d, ok := byCode[normalize(code)]; ok {
		return d.Country
	}
	return ""
}

// CityCountries returns a fresh code→country map for every catalog entry.
func CityCountries() map[string]string {
	m := make(map[string]string, len(destinations))
	for _, d := range destinations {
		m[d.Code] = d.Country
	}
	return m
}

// Search matches q against codes (prefix) and names (substring), exact code
// matches first. An empty query lists cities only.
func Search(q string, limit int) []Destination {
	if limit <= 0 {
		limit = 20
	}
	q = strings.TrimSpace(q)
	upper := strings.ToUpper(q)
	lower := strings.ToLower(q)

	type scored struct {
		d     Destination
		score int
	}
	var hits []scored
	for _, d := range destinations {
		switch {
		case q == "":
			if !d.Airport {
				hits = append(hits, scored{d, 3})
			}
		case d.Code == upper:
			hits = append(hits, scored{d, 0})
		case strings.HasPrefix(d.Code, upper):
			hits = append(hits, scored{d, 1})
		case strings.Contains(strings.ToLower(d.Name), lower):
			hits = append(hits, scored{d, 2})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]Destination, 0, min(limit, len(hits)))
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.d)
	}
	return out
}

// Mentioned finds the destination a free-text message talks about: an
// uppercase IATA code first, then the longest city name it contains.
func Mentioned(text string) (Destination, bool) {
	for _, tok := range strings.FieldsFunc(text, notLetter) {
		if len(tok) == 3 && tok == strings.ToUpper(tok) {
			if d, ok := byCode[tok]; ok {
				return d, true
			}
		}
	}

	padded := " " + strings.Join(strings.FieldsFunc(strings.ToLower(text), notLetter), " ") + " "
	var best Destination
	var bestName string
	found := false
	for _, d := range destinations {
		name := strings.ToLower(d.Name)
		if i := strings.Index(name, " ("); i > 0 {
			name = name[:i]
		}
		if !strings.Contains(padded, " "+name+" ") {
			continue
		}
		// cities beat airports, then longer names win
		if !found || (best.Airport && !d.Airport) || (d.Airport == best.Airport && len(name) > len(bestName)) {
			best, bestName, found = d, name, true
		}
	}
	return best, found
}

func notLetter(r rune) bool {
	return !unicode.IsLetter(r)
}
