package services

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/catalog"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/database"
)

const maxItineraryDays = 14

var ErrInvalidItinerary = errors.New("invalid itinerary request")

type ItineraryRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Interests   []string `json:"interests"`
}

type Itinerary struct {
	Destination string             `json:"destination"`
	City        string             `json:"city"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Interests   []string           `json:"interests"`
	Days        []database.TripDay `json:"days"`
	Truncated   bool               `json:"truncated,omitempty"`
	Source      string             `json:"source"`
}

// activity pools; %s is the city name
var interestPools = map[string]struct {
	morning   []string
	afternoon []string
	evening   []string
}{
	"culture": {
		morning:   []string{"Guided walk through the old quarter of %s", "Visit the main history museum in %s", "Early entry at the best-known landmark in %s"},
		afternoon: []string{"Gallery hopping around central %s", "Architecture tour of %s", "Local craft workshop in %s"},
		evening:   []string{"Live music or theatre show in %s", "Sunset at a historic viewpoint in %s"},
	},
	"food": {
		morning:   []string{"Breakfast crawl through a market in %s", "Coffee and pastry tasting in %s"},
		afternoon: []string{"Street food tour of %s", "Cooking class with a local chef in %s", "Lunch at a long-running family restaurant in %s"},
		evening:   []string{"Tasting menu at a well-reviewed kitchen in %s", "Night market dinner in %s"},
	},
	"nature": {
		morning:   []string{"Sunrise hike on the outskirts of %s", "Botanical garden stroll in %s"},
		afternoon: []string{"Day trip to a nature reserve near %s", "Cycling route along the green belt of %s"},
		evening:   []string{"Stargazing spot outside %s", "Riverside or lakeside walk in %s"},
	},
	"beach": {
		morning:   []string{"Swim and breakfast by the sea in %s", "Snorkelling session near %s"},
		afternoon: []string{"Lazy afternoon at the quietest beach in %s", "Boat trip along the coast of %s"},
		evening:   []string{"Beach shack dinner in %s", "Sunset cruise off %s"},
	},
	"nightlife": {
		morning:   []string{"Slow brunch in a cafe district of %s"},
		afternoon: []string{"Rooftop lounge hopping in %s", "Craft brewery visit in %s"},
		evening:   []string{"Bar crawl through the lively quarter of %s", "Late-night club or jazz bar in %s"},
	},
	"shopping": {
		morning:   []string{"Flea market treasure hunt in %s", "Boutique street wander in %s"},
		afternoon: []string{"Design stores and local brands in %s", "Bazaar bargaining in %s"},
		evening:   []string{"Evening market and souvenirs in %s"},
	},
	"adventure": {
		morning:   []string{"Kayaking or rafting near %s", "Rock climbing intro near %s"},
		afternoon: []string{"Zipline or paragliding session near %s", "Off-road excursion from %s"},
		evening:   []string{"Campfire dinner outside %s"},
	},
}

const defaultInterest = "culture"

// GenerateItinerary builds a repeatable day-by-day plan. The same destination,
// dates and interests always produce the same plan.
func GenerateItinerary(req ItineraryRequest) (Itinerary, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Destination))
	if code == "" {
		return Itinerary{}, fmt.Errorf("%w: destination is required", ErrInvalidItinerary)
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return Itinerary{}, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidItinerary)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || end.Before(start) {
		return Itinerary{}, fmt.Errorf("%w: endDate must be YYYY-MM-DD on or after startDate", ErrInvalidItinerary)
	}

	city := code
	if d, ok := catalog.Lookup(code); ok {
		city = d.Name
		code = d.CityCode
	}

	interests := normalizeInterests(req.Interests)

	total := int(end.Sub(start).Hours()/24) + 1
	count := min(total, maxItineraryDays)

	days := make([]database.TripDay, 0, count)
	for i := 0; i < count; i++ {
		seed := daySeed(code, i+1)
		pool := interestPools[interests[int(seed%uint32(len(interests)))]]

		day := database.TripDay{
			Day:       i + 1,
			Date:      start.AddDate(0, 0, i).Format("2006-01-02"),
			Morning:   pick(pool.morning, seed, city),
			Afternoon: pick(pool.afternoon, seed>>4, city),
			Evening:   pick(pool.evening, seed>>8, city),
		}

		switch {
		case i == 0:
			day.Title = "Arrival in " + city
			day.Morning = "Arrive in " + city + " and check in"
		case i == total-1:
			day.Title = "Farewell " + city
			day.Evening = "Pack up and head to the airport"
		default:
			day.Title = fmt.Sprintf("Day %d in %s", i+1, city)
		}
		days = append(days, day)
	}

	return Itinerary{
		Destination: code,
		City:        city,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Interests:   interests,
		Days:        days,
		Truncated:   total > maxItineraryDays,
		Source:      "generated",
	}, nil
}

// normalizeInterests keeps known interests, lowercased, deduplicated and
// sorted so request order does not change the plan.
func normalizeInterests(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if _, ok := interestPools[s]; !ok || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return []string{defaultInterest}
	}
	sort.Strings(out)
	return out
}

func daySeed(code string, day int) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s#%d", code, day)
	return h.Sum32()
}

func pick(options []string, seed uint32, city string) string {
	return fmt.Sprintf(options[int(seed%uint32(len(options)))], city)
}
