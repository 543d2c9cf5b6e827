package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "data", "trips.db")
	s, err := OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("Failed to open bolt store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltSaveAndGetTrip(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()

	trip := &Trip{
		Destination: "GOI",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Adults:      2,
		Hotel:       &TripHotel{HotelID: "HLGOI001", Name: "Sea Breeze", Price: 420, Currency: "EUR"},
		Days:        []TripDay{{Day: 1, Date: "2026-04-10", Title: "Arrival"}},
	}
	if err := s.SaveTrip(ctx, trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	if trip.ID == "" {
		t.Fatal("Expected SaveTrip to assign an id")
	}
	if trip.CreatedAt.IsZero() {
		t.Fatal("Expected SaveTrip to assign created_at")
	}

	got, err := s.GetTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if got.Destination != "GOI" || got.Hotel == nil || got.Hotel.Name != "Sea Breeze" {
		t.Errorf("Unexpected trip: %+v", got)
	}
	if len(got.Days) != 1 || got.Days[0].Title != "Arrival" {
		t.Errorf("Expected days to round-trip, got %+v", got.Days)
	}
}

func TestBoltGetMissingTrip(t *testing.T) {
	s := openTestBolt(t)

	if _, err := s.GetTrip(context.Background(), "nope"); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("Expected ErrTripNotFound, got %v", err)
	}
}

func TestBoltListTripsNewestFirst(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, dest := range []string{"PAR", "LON", "NYC"} {
		trip := &Trip{
			Destination: dest,
			StartDate:   "2026-04-10",
			EndDate:     "2026-04-12",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.SaveTrip(ctx, trip); err != nil {
			t.Fatalf("SaveTrip failed: %v", err)
		}
	}

	trips, err := s.ListTrips(ctx, 0)
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("Expected 3 trips, got %d", len(trips))
	}
	order := []string{trips[0].Destination, trips[1].Destination, trips[2].Destination}
	if order[0] != "NYC" || order[1] != "LON" || order[2] != "PAR" {
		t.Errorf("Expected newest first, got %v", order)
	}

	limited, _ := s.ListTrips(ctx, 2)
	if len(limited) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(limited))
	}
}

func TestBoltUpdateKeepsSingleIndexEntry(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()

	trip := &Trip{Destination: "DXB", StartDate: "2026-04-10", EndDate: "2026-04-12"}
	if err := s.SaveTrip(ctx, trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	trip.Notes = "window seat"
	trip.CreatedAt = trip.CreatedAt.Add(time.Minute)
	if err := s.SaveTrip(ctx, trip); err != nil {
		t.Fatalf("Second SaveTrip failed: %v", err)
	}

	trips, _ := s.ListTrips(ctx, 10)
	if len(trips) != 1 {
		t.Fatalf("Expected 1 trip after update, got %d", len(trips))
	}
	if trips[0].Notes != "window seat" {
		t.Errorf("Expected updated notes, got %q", trips[0].Notes)
	}
}

func TestBoltDeleteTrip(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()

	trip := &Trip{Destination: "SIN", StartDate: "2026-04-10", EndDate: "2026-04-12"}
	if err := s.SaveTrip(ctx, trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	if err := s.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}
	if _, err := s.GetTrip(ctx, trip.ID); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("Expected trip to be gone, got %v", err)
	}
	if err := s.DeleteTrip(ctx, trip.ID); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("Expected ErrTripNotFound on second delete, got %v", err)
	}
	trips, _ := s.ListTrips(ctx, 10)
	if len(trips) != 0 {
		t.Errorf("Expected empty list, got %d", len(trips))
	}
}

func TestBoltPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trips.db")
	ctx := context.Background()

	s, err := OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("Failed to open bolt store: %v", err)
	}
	trip := &Trip{Destination: "BKK", StartDate: "2026-04-10", EndDate: "2026-04-12"}
	if err := s.SaveTrip(ctx, trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	s.Close()

	s2, err := OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen bolt store: %v", err)
	}
	defer s2.Close()

	if err := s2.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if _, err := s2.GetTrip(ctx, trip.ID); err != nil {
		t.Errorf("Expected trip to survive reopen, got %v", err)
	}
}
