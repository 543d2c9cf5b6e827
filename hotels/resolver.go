package hotels

import (
	"strings"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/catalog"
)

// MarketTables is the reference data the resolver reads. Tables are copied
// at construction and never mutated afterwards.
type MarketTables struct {
	// Aliases lists codes that tag the same destination inconsistently in
	// the directory (GOI and GOX for Goa).
	Aliases map[string][]string
	// MetroCodes maps airport codes to the metro code hotels are indexed by.
	MetroCodes    map[string]string
	CityCountry   map[string]string
	CountryRegion map[string]string
	RegionMarkets map[string][]string
	GlobalMarkets []string
}

// DefaultMarketTables builds the tables from the destination catalog plus
// the built-in region lists.
func DefaultMarketTables() MarketTables {
	metro := make(map[string]string)
	for code := range catalog.CityCountries() {
		if city := catalog.CityCodeFor(code); city != code {
			metro[code] = city
		}
	}

	return MarketTables{
		Aliases: map[string][]string{
			"GOI": {"GOX"},
			"GOX": {"GOI"},
			"DXB": {"SHJ"},
			"SHJ": {"DXB"},
		},
		MetroCodes:  metro,
		CityCountry: catalog.CityCountries(),
		CountryRegion: map[string]string{
			"IN": "south-asia", "LK": "south-asia", "NP": "south-asia", "MV": "south-asia", "BD": "south-asia",
			"TH": "southeast-asia", "SG": "southeast-asia", "MY": "southeast-asia", "ID": "southeast-asia", "VN": "southeast-asia", "PH": "southeast-asia",
			"AE": "middle-east", "QA": "middle-east", "SA": "middle-east", "OM": "middle-east", "BH": "middle-east",
			"GB": "europe", "FR": "europe", "IT": "europe", "ES": "europe", "NL": "europe", "DE": "europe",
			"PT": "europe", "GR": "europe", "TR": "europe", "CH": "europe", "AT": "europe", "BE": "europe", "IE": "europe",
			"UZ": "central-asia", "KZ": "central-asia",
			"JP": "east-asia", "KR": "east-asia", "HK": "east-asia", "CN": "east-asia", "TW": "east-asia",
			"AU": "oceania", "NZ": "oceania",
			"US": "north-america", "CA": "north-america", "MX": "north-america",
			"BR": "south-america", "AR": "south-america", "CL": "south-america", "PE": "south-america", "CO": "south-america",
			"EG": "africa", "ZA": "africa", "KE": "africa", "MA": "africa",
		},
		RegionMarkets: map[string][]string{
			"south-asia":     {"BOM", "DEL", "BLR", "MAA"},
			"southeast-asia": {"BKK", "SIN", "KUL", "DPS"},
			"middle-east":    {"DXB", "DOH", "AUH"},
			"europe":         {"LON", "PAR", "ROM", "BCN"},
			"central-asia":   {"TAS", "ALA", "IST"},
			"east-asia":      {"TYO", "SEL", "HKG"},
			"oceania":        {"SYD", "MEL"},
			"north-america":  {"NYC", "LAX", "MIA", "YTO"},
			"south-america":  {"SAO", "MEX"},
			"africa":         {"CAI", "CPT", "NBO"},
		},
		GlobalMarkets: []string{"LON", "PAR", "NYC", "DXB", "SIN", "BKK"},
	}
}

// Resolver answers alias and nearby-market questions. It performs no I/O.
type Resolver struct {
	t MarketTables
}

func NewResolver(t MarketTables) *Resolver {
	cp := MarketTables{
		Aliases:       make(map[string][]string, len(t.Aliases)),
		MetroCodes:    make(map[string]string, len(t.MetroCodes)),
		CityCountry:   make(map[string]string, len(t.CityCountry)),
		CountryRegion: make(map[string]string, len(t.CountryRegion)),
		RegionMarkets: make(map[string][]string, len(t.RegionMarkets)),
		GlobalMarkets: append([]string(nil), t.GlobalMarkets...),
	}
	for k, v := range t.Aliases {
		cp.Aliases[k] = append([]string(nil), v...)
	}
	for k, v := range t.MetroCodes {
		cp.MetroCodes[k] = v
	}
	for k, v := range t.CityCountry {
		cp.CityCountry[k] = v
	}
	for k, v := range t.CountryRegion {
		cp.CountryRegion[k] = v
	}
	for k, v := range t.RegionMarkets {
		cp.RegionMarkets[k] = append([]string(nil), v...)
	}
	return &Resolver{t: cp}
}

// AliasesOf returns code first, then its known synonyms and metro code,
// deduplicated.
func (r *Resolver) AliasesOf(code string) []string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	out := []string{code}
	seen := map[string]struct{}{code: {}}
	add := func(c string) {
		if _, ok := seen[c]; ok || c == "" {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, a := range r.t.Aliases[code] {
		add(a)
	}
	if metro, ok := r.t.MetroCodes[code]; ok {
		add(metro)
	}
	return out
}

// FallbackMarkets lists nearby market codes to try for code: its region's
// markets first, then the global defaults. The origin and its aliases are
// never included.
func (r *Resolver) FallbackMarkets(code string) []string {
	code = strings.ToUpper(strings.TrimSpace(code))
	seen := make(map[string]struct{})
	for _, a := range r.AliasesOf(code) {
		seen[a] = struct{}{}
	}

	var out []string
	add := func(list []string) {
		for _, m := range list {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	country := r.t.CityCountry[code]
	if country == "" {
		if metro, ok := r.t.MetroCodes[code]; ok {
			country = r.t.CityCountry[metro]
		}
	}
	if region, ok := r.t.CountryRegion[country]; ok {
		add(r.t.RegionMarkets[region])
	}
	add(r.t.GlobalMarkets)
	return out
}
