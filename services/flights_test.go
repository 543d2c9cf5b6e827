package services

import (
	"errors"
	"reflect"
	"testing"
)

func TestEstimateFlightsIsDeterministic(t *testing.T) {
	q := FlightQuery{Origin: "DEL", Destination: "GOI", DepartureDate: "2026-04-10", ReturnDate: "2026-04-15", Adults: 2}

	first, err := EstimateFlights(q)
	if err != nil {
		t.Fatalf("EstimateFlights returned error: %v", err)
	}
	second, _ := EstimateFlights(q)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical offers for identical queries")
	}
	if len(first) != 5 {
		t.Fatalf("Expected 5 offers, got %d", len(first))
	}
	for _, f := range first {
		if f.Source != "estimated" {
			t.Errorf("Expected estimated source, got %q", f.Source)
		}
		if f.Price <= 0 {
			t.Errorf("Expected positive price, got %v", f.Price)
		}
		if f.ReturnDepartureTime == "" {
			t.Error("Expected return leg when returnDate is set")
		}
	}
	if first[0].Airline != "Air India" {
		t.Errorf("Expected domestic carriers for DEL-GOI, got %s", first[0].Airline)
	}
}

func TestEstimateFlightsNormalizesAirports(t *testing.T) {
	viaAirport, err := EstimateFlights(FlightQuery{Origin: "LHR", Destination: "JFK", DepartureDate: "2026-05-01"})
	if err != nil {
		t.Fatalf("EstimateFlights returned error: %v", err)
	}
	viaCity, _ := EstimateFlights(FlightQuery{Origin: "LON", Destination: "NYC", DepartureDate: "2026-05-01"})
	if !reflect.DeepEqual(viaAirport, viaCity) {
		t.Error("Expected airport codes to resolve to the same metro route")
	}
	if viaAirport[0].ReturnDepartureTime != "" {
		t.Error("One-way query should have no return leg")
	}
}

func TestEstimateFlightsValidation(t *testing.T) {
	tests := []struct {
		name string
		q    FlightQuery
	}{
		{"missing origin", FlightQuery{Destination: "GOI", DepartureDate: "2026-04-10"}},
		{"same city", FlightQuery{Origin: "LHR", Destination: "LGW", DepartureDate: "2026-04-10"}},
		{"bad date", FlightQuery{Origin: "DEL", Destination: "GOI", DepartureDate: "10/04/2026"}},
		{"return before departure", FlightQuery{Origin: "DEL", Destination: "GOI", DepartureDate: "2026-04-10", ReturnDate: "2026-04-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EstimateFlights(tt.q); !errors.Is(err, ErrInvalidFlightQuery) {
				t.Errorf("Expected ErrInvalidFlightQuery, got %v", err)
			}
		})
	}
}

func TestFormatDurationMin(t *testing.T) {
	if got := formatDurationMin(150); got != "2h 30m" {
		t.Errorf("Expected 2h 30m, got %s", got)
	}
	if got := formatDurationMin(120); got != "2h" {
		t.Errorf("Expected 2h, got %s", got)
	}
}
