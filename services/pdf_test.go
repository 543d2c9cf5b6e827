package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/database"
)

func TestGenerateTripPDF(t *testing.T) {
	trip := &database.Trip{
		Title:        "Goa getaway",
		TravelerName: "Sam",
		Origin:       "DEL",
		Destination:  "GOI",
		StartDate:    "2026-04-10",
		EndDate:      "2026-04-13",
		Adults:       2,
		Flight: &database.TripFlight{
			Airline:       "IndiGo",
			FlightNumber:  "6E123",
			DepartureTime: "2026-04-10T06:15:00Z",
			ArrivalTime:   "2026-04-10T08:45:00Z",
			Duration:      "2h 30m",
			Price:         180,
			Currency:      "USD",
		},
		Hotel: &database.TripHotel{Name: "Sea Breeze Resort", Price: 420, Currency: "USD"},
		Days: []database.TripDay{
			{Day: 1, Date: "2026-04-10", Title: "Arrival in Goa", Morning: "Arrive", Afternoon: "Beach", Evening: "Malé-style seafood"},
		},
		Notes: "Window seat please",
	}

	pdfBytes, err := GenerateTripPDF(trip, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GenerateTripPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("Expected PDF header, got %q", pdfBytes[:min(8, len(pdfBytes))])
	}
}

func TestGenerateTripPDFMinimal(t *testing.T) {
	trip := &database.Trip{Title: "Trip to PAR", Destination: "PAR", StartDate: "2026-04-10", EndDate: "2026-04-12", Adults: 1}

	pdfBytes, err := GenerateTripPDF(trip, time.Now())
	if err != nil {
		t.Fatalf("GenerateTripPDF returned error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Error("Expected non-empty PDF")
	}
}

func TestFormatFlightLeg(t *testing.T) {
	got := formatFlightLeg("2026-04-10T06:15:00Z", "2026-04-10T08:45:00Z", "2h 30m")
	if got != "10 Apr 06:15 - 10 Apr 08:45 (2h 30m)" {
		t.Errorf("Unexpected leg: %s", got)
	}
	if got := formatFlightLeg("", "", ""); got != "N/A" {
		t.Errorf("Expected N/A, got %s", got)
	}
}
