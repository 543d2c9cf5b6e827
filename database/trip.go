package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTripNotFound = errors.New("trip not found")
	ErrInvalidTrip  = errors.New("invalid trip")
)

// ─── Models ──────────────────────────────────────────────────────────────────

type Trip struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	TravelerName string      `json:"traveler_name,omitempty"`
	Origin       string      `json:"origin,omitempty"`
	Destination  string      `json:"destination"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Adults       int         `json:"adults"`
	Flight       *TripFlight `json:"flight,omitempty"`
	Hotel        *TripHotel  `json:"hotel,omitempty"`
	Days         []TripDay   `json:"days,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

type TripFlight struct {
	Airline             string  `json:"airline"`
	FlightNumber        string  `json:"flight_number,omitempty"`
	DepartureTime       string  `json:"departure_time,omitempty"`
	ArrivalTime         string  `json:"arrival_time,omitempty"`
	ReturnDepartureTime string  `json:"return_departure_time,omitempty"`
	ReturnArrivalTime   string  `json:"return_arrival_time,omitempty"`
	Duration            string  `json:"duration,omitempty"`
	Stops               int     `json:"stops"`
	Price               float64 `json:"price"`
	Currency            string  `json:"currency,omitempty"`
}

type TripHotel struct {
	HotelID  string  `json:"hotel_id,omitempty"`
	OfferID  string  `json:"offer_id,omitempty"`
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Price    float64 `json:"price"` // whole stay
	Currency string  `json:"currency,omitempty"`
	Image    string  `json:"image,omitempty"`
}

type TripDay struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Store persists saved trips as JSON documents.
type Store interface {
	SaveTrip(ctx context.Context, t *Trip) error
	GetTrip(ctx context.Context, id string) (*Trip, error)
	ListTrips(ctx context.Context, limit int) ([]Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

// ─── Validation ──────────────────────────────────────────────────────────────

// Normalize trims and uppercases codes and fills defaults.
func (t *Trip) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Origin = strings.ToUpper(strings.TrimSpace(t.Origin))
	t.Destination = strings.ToUpper(strings.TrimSpace(t.Destination))
	t.StartDate = strings.TrimSpace(t.StartDate)
	t.EndDate = strings.TrimSpace(t.EndDate)
	if t.Adults < 1 {
		t.Adults = 1
	}
	if t.Title == "" && t.Destination != "" {
		t.Title = "Trip to " + t.Destination
	}
}

func (t *Trip) Validate() error {
	if t.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidTrip)
	}
	start, err := time.Parse("2006-01-02", t.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidTrip)
	}
	end, err := time.Parse("2006-01-02", t.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidTrip)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalidTrip)
	}
	return nil
}

// Nights is the number of nights between start and end, or 0 when the dates
// do not parse.
func (t *Trip) Nights() int {
	start, err1 := time.Parse("2006-01-02", t.StartDate)
	end, err2 := time.Parse("2006-01-02", t.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// assignIdentity gives a new trip its id and creation time.
func assignIdentity(t *Trip, now time.Time) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now.UTC()
	}
}
