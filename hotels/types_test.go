package hotels

import (
	"reflect"
	"testing"
)

func TestNormalizeHotelIDs(t *testing.T) {
	got := NormalizeHotelIDs([]string{" rtpar001 ", "RTPAR001", "short", "TOOLONG123", "HL-12345", "MCLONGHM", ""})
	want := []string{"RTPAR001", "MCLONGHM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeHotelIDs() = %v, want %v", got, want)
	}
}

func TestCacheKeyDistinguishesVariants(t *testing.T) {
	base := SearchRequest{CityCode: "GOI", CheckIn: "2026-03-10", CheckOut: "2026-03-12", Adults: 2}

	variants := map[string]SearchRequest{}
	variants["base"] = base

	strict := base
	strict.StrictCity = true
	variants["strict"] = strict

	geo := base
	geo.Lat, geo.Lon = ptr(15.3), ptr(74.1)
	variants["geo"] = geo

	nearA := base
	nearA.Lat, nearA.Lon = ptr(15.29001), ptr(74.1)
	variants["near geo a"] = nearA

	nearB := base
	nearB.Lat, nearB.Lon = ptr(15.29004), ptr(74.1)
	variants["near geo b"] = nearB

	ids := base
	ids.HotelIDs = []string{"AAAAAAAA"}
	variants["ids"] = ids

	adults := base
	adults.Adults = 3
	variants["adults"] = adults

	out := base
	out.CheckOut = "2026-03-13"
	variants["checkout"] = out

	seen := map[string]string{}
	for name, req := range variants {
		key := req.CacheKey()
		if other, ok := seen[key]; ok {
			t.Errorf("%s and %s share cache key %q", name, other, key)
		}
		seen[key] = name
	}
}

func TestCacheKeyIgnoresIDOrder(t *testing.T) {
	a := SearchRequest{HotelIDs: []string{"AAAAAAAA", "BBBBBBBB"}}
	b := SearchRequest{HotelIDs: []string{"BBBBBBBB", "AAAAAAAA"}}
	if a.CacheKey() != b.CacheKey() {
		t.Error("Expected ID order not to affect the cache key")
	}
}

func TestNormalizedDefaults(t *testing.T) {
	req := SearchRequest{CityCode: " goi ", HotelIDs: []string{"bad"}}.Normalized()
	if req.CityCode != "GOI" {
		t.Errorf("Expected GOI, got %q", req.CityCode)
	}
	if req.Adults != 1 {
		t.Errorf("Expected adults default 1, got %d", req.Adults)
	}
	if len(req.HotelIDs) != 0 {
		t.Errorf("Expected invalid IDs dropped, got %v", req.HotelIDs)
	}
}
