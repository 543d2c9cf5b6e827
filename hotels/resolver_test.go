package hotels

import (
	"reflect"
	"testing"
)

func TestAliasesOf(t *testing.T) {
	r := NewResolver(DefaultMarketTables())

	tests := []struct {
		code string
		want []string
	}{
		{"GOI", []string{"GOI", "GOX"}},
		{"gox", []string{"GOX", "GOI"}},
		{"LHR", []string{"LHR", "LON"}},
		{"BOM", []string{"BOM"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := r.AliasesOf(tt.code); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AliasesOf(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestFallbackMarketsRegionBeforeGlobal(t *testing.T) {
	r := NewResolver(DefaultMarketTables())
	got := r.FallbackMarkets("GOI")
	want := []string{"BOM", "DEL", "BLR", "MAA", "LON", "PAR", "NYC", "DXB", "SIN", "BKK"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FallbackMarkets(GOI) = %v, want %v", got, want)
	}
}

func TestFallbackMarketsSkipsOriginAndDuplicates(t *testing.T) {
	r := NewResolver(DefaultMarketTables())
	got := r.FallbackMarkets("PAR")
	want := []string{"LON", "ROM", "BCN", "NYC", "DXB", "SIN", "BKK"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FallbackMarkets(PAR) = %v, want %v", got, want)
	}
}

func TestFallbackMarketsAirportUsesMetroCountry(t *testing.T) {
	tables := DefaultMarketTables()
	delete(tables.CityCountry, "CDG")
	r := NewResolver(tables)
	if got := r.FallbackMarkets("CDG"); len(got) == 0 || got[0] != "LON" {
		t.Errorf("Expected europe markets for CDG, got %v", got)
	}
}

func TestFallbackMarketsUnknownUsesGlobal(t *testing.T) {
	r := NewResolver(DefaultMarketTables())
	got := r.FallbackMarkets("ZZQ")
	want := []string{"LON", "PAR", "NYC", "DXB", "SIN", "BKK"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FallbackMarkets(ZZQ) = %v, want %v", got, want)
	}
}

func TestResolverTablesAreCopied(t *testing.T) {
	tables := DefaultMarketTables()
	r := NewResolver(tables)
	tables.GlobalMarkets[0] = "XXX"
	tables.Aliases["GOI"][0] = "XXX"

	if got := r.FallbackMarkets("ZZQ")[0]; got != "LON" {
		t.Errorf("Resolver saw caller mutation: %s", got)
	}
	if got := r.AliasesOf("GOI"); got[1] != "GOX" {
		t.Errorf("Resolver saw caller mutation: %v", got)
	}
}
