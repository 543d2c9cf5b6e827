package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/catalog"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
)

var ErrEmptyMessage = errors.New("message is empty")

type AssistantConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Assistant answers travel questions from keyword rules and, when a Hugging
// Face key is set, lets the model rephrase the rule answer.
type Assistant struct {
	apiKey    string
	model     string
	baseURL   string
	transport *transport
}

func NewAssistant(cfg AssistantConfig, m *obs.Metrics) *Assistant {
	model := cfg.Model
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	t := newTransport(cfg.Timeout, 0, 0, 0, m)
	t.prefix = logcolors.LogAssistant

	if cfg.APIKey != "" {
		log.Infof("%s Hugging Face rewriting enabled with model %s", logcolors.LogAssistant, model)
	} else {
		log.Infof("%s HUGGINGFACE_API_KEY not set, answering from rules only", logcolors.LogAssistant)
	}
	return &Assistant{apiKey: cfg.APIKey, model: model, baseURL: baseURL, transport: t}
}

func (a *Assistant) LLMEnabled() bool {
	return a.apiKey != ""
}

type ChatReply struct {
	Reply       string   `json:"reply"`
	Intent      string   `json:"intent"`
	Source      string   `json:"source"` // rules | llm
	Destination string   `json:"destination,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// Chat never fails on upstream trouble; a model error keeps the rule answer.
func (a *Assistant) Chat(ctx context.Context, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, ErrEmptyMessage
	}

	dest, hasDest := catalog.Mentioned(message)
	intent := classify(message)
	reply := ruleReply(intent, dest, hasDest)
	if hasDest {
		reply.Destination = dest.CityCode
	}

	if !a.LLMEnabled() || intent == intentGreeting {
		return reply, nil
	}

	rewritten, err := a.rewrite(ctx, message, reply.Reply)
	if err != nil {
		log.Warnf("%s Model rewrite failed, keeping rule answer: %v", logcolors.LogAssistant, err)
		return reply, nil
	}
	reply.Reply = rewritten
	reply.Source = "llm"
	return reply, nil
}

// ─── Rules ────────────────────────────────────────────────────────────────────

const (
	intentGreeting  = "greeting"
	intentHotels    = "hotels"
	intentFlights   = "flights"
	intentWeather   = "weather"
	intentBudget    = "budget"
	intentItinerary = "itinerary"
	intentFallback  = "fallback"
)

// Checked in order; a greeting only wins when nothing else matches.
var intentKeywords = []struct {
	intent   string
	keywords []string
}{
	{intentHotels, []string{"hotel", "stay", "room", "accommodation", "resort", "hostel"}},
	{intentFlights, []string{"flight", "fly", "airline", "plane", "ticket"}},
	{intentWeather, []string{"weather", "temperature", "rain", "climate", "season", "monsoon"}},
	{intentBudget, []string{"budget", "cheap", "cost", "price", "afford", "expensive"}},
	{intentItinerary, []string{"itinerary", "plan", "things to do", "what to do", "sightseeing", "days in"}},
	{intentGreeting, []string{"hello", "hi", "hey", "namaste", "good morning", "good evening"}},
}

func classify(message string) string {
	padded := " " + strings.Join(strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}), " ") + " "

	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			// plural forms of single words match too
			if strings.Contains(padded, " "+kw+" ") || (!strings.Contains(kw, " ") && strings.Contains(padded, " "+kw+"s ")) {
				return group.intent
			}
		}
	}
	return intentFallback
}

// best months by country
var bestSeasons = map[string]string{
	"IN": "October to March, after the monsoon and before the summer heat",
	"AE": "November to March, when days are warm rather than scorching",
	"TH": "November to February, the cool and dry season",
	"GB": "May to September, for the longest and mildest days",
	"FR": "April to June and September, to dodge peak crowds",
	"US": "April to June and September to October",
	"SG": "February to April, usually the driest stretch",
	"JP": "late March to May and October to November",
}

func ruleReply(intent string, dest catalog.Destination, hasDest bool) ChatReply {
	where := "your destination"
	if hasDest {
		where = dest.Name
	}

	r := ChatReply{Intent: intent, Source: "rules"}
	switch intent {
	case intentGreeting:
		r.Reply = "Hi! I can help you find hotels, estimate flights, and sketch a day-by-day plan. Where are you thinking of going?"
		r.Suggestions = []string{"Hotels in Goa", "Flights from Delhi to Dubai", "Plan 3 days in Paris"}
	case intentHotels:
		r.Reply = fmt.Sprintf("I can look up live availability in %s. Pick your check-in and check-out dates and I'll show bookable rooms, nearest options first.", where)
		r.Suggestions = []string{"Search hotels", "Only show this city", "Add to my trip"}
	case intentFlights:
		r.Reply = fmt.Sprintf("Tell me where you're flying from and your dates, and I'll estimate fares to %s across a few carriers.", where)
		r.Suggestions = []string{"One-way", "Round trip", "Cheapest option"}
	case intentWeather:
		season := "spring and autumn usually bring the most comfortable weather"
		if hasDest {
			if s, ok := bestSeasons[dest.Country]; ok {
				season = "the best time is " + s
			}
		}
		r.Reply = fmt.Sprintf("For %s, %s. Check a forecast a few days before you leave.", where, season)
		r.Suggestions = []string{"Plan a trip", "Find hotels"}
	case intentBudget:
		r.Reply = fmt.Sprintf("To keep %s affordable, travel midweek, book stays a few weeks ahead, and compare the cheapest room per hotel. I can sort options by price for you.", where)
		r.Suggestions = []string{"Cheapest hotels", "Cheapest flights"}
	case intentItinerary:
		r.Reply = fmt.Sprintf("I can draft a morning, afternoon and evening plan for each day in %s. Share your dates and interests like food, culture, beach or nightlife.", where)
		r.Suggestions = []string{"Food and culture", "Beach and nightlife", "Nature and adventure"}
	default:
		r.Reply = "I'm not sure I caught that. I can help with hotels, flights, weather, budgets, and day plans."
		r.Suggestions = []string{"Hotels", "Flights", "Itinerary"}
	}
	return r
}

// ─── Model rewrite ────────────────────────────────────────────────────────────

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (a *Assistant) rewrite(ctx context.Context, question, draft string) (string, error) {
	jsonBody, err := json.Marshal(hfRequest{
		Inputs: buildPrompt(question, draft),
		Parameters: hfParameters{
			MaxNewTokens:   160,
			Temperature:    0.6,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s", a.baseURL, a.model)
	status, body, err := a.transport.do(ctx, "hf:generate", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
		return req, nil
	})
	if err != nil {
		return "", err
	}

	if status == http.StatusServiceUnavailable {
		return "", fmt.Errorf("model is loading")
	}
	if status != http.StatusOK {
		return "", &StatusError{Op: "hf:generate", Status: status, Body: snippet(body)}
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("failed to parse model response: %w", err)
	}
	if len(hfResp) == 0 || strings.TrimSpace(hfResp[0].GeneratedText) == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return strings.TrimSpace(hfResp[0].GeneratedText), nil
}

func buildPrompt(question, draft string) string {
	return fmt.Sprintf(`[INST] You are a helpful travel assistant.
Traveler asked: %s
Draft answer: %s

Rewrite the draft answer in a friendly, direct tone in 80 words or fewer. Keep every fact, add no prices or dates. [/INST]`, question, draft)
}
