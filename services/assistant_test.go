package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Hello there", intentGreeting},
		{"hi, any hotels in Goa?", intentHotels},
		{"cheapest flights to Dubai", intentFlights},
		{"what's the weather like in Bangkok", intentWeather},
		{"I'm on a tight budget", intentBudget},
		{"Plan 3 days in Paris", intentItinerary},
		{"this is unrelated", intentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := classify(tt.message); got != tt.want {
				t.Errorf("classify(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}

func TestChatRulesOnly(t *testing.T) {
	a := NewAssistant(AssistantConfig{}, nil)

	reply, err := a.Chat(context.Background(), "What's the weather in Dubai?")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply.Intent != intentWeather || reply.Source != "rules" {
		t.Errorf("Unexpected reply meta: %+v", reply)
	}
	if reply.Destination != "DXB" {
		t.Errorf("Expected DXB destination, got %q", reply.Destination)
	}
	if !strings.Contains(reply.Reply, "November to March") {
		t.Errorf("Expected seasonal advice, got %q", reply.Reply)
	}
	if len(reply.Suggestions) == 0 {
		t.Error("Expected suggestions")
	}
}

func TestChatEmptyMessage(t *testing.T) {
	a := NewAssistant(AssistantConfig{}, nil)
	if _, err := a.Chat(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Expected ErrEmptyMessage, got %v", err)
	}
}

func TestChatModelRewrite(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq hfRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text":"  Goa has lovely stays near the beach!  "}]`))
	}))
	defer server.Close()

	a := NewAssistant(AssistantConfig{APIKey: "hf-key", Model: "test/model", BaseURL: server.URL, Timeout: time.Second}, nil)

	reply, err := a.Chat(context.Background(), "hotels in goa")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply.Source != "llm" || reply.Reply != "Goa has lovely stays near the beach!" {
		t.Errorf("Expected rewritten reply, got %+v", reply)
	}
	if gotAuth != "Bearer hf-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotPath != "/models/test/model" {
		t.Errorf("Expected model path, got %q", gotPath)
	}
	if !strings.Contains(gotReq.Inputs, "hotels in goa") {
		t.Errorf("Expected question in prompt, got %q", gotReq.Inputs)
	}
}

func TestChatModelFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	a := NewAssistant(AssistantConfig{APIKey: "hf-key", BaseURL: server.URL, Timeout: time.Second}, nil)

	reply, err := a.Chat(context.Background(), "flights to london")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply.Source != "rules" || reply.Intent != intentFlights {
		t.Errorf("Expected rule answer on model failure, got %+v", reply)
	}
	if !strings.Contains(reply.Reply, "London") {
		t.Errorf("Expected destination in reply, got %q", reply.Reply)
	}
}

func TestChatGreetingSkipsModel(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	a := NewAssistant(AssistantConfig{APIKey: "hf-key", BaseURL: server.URL}, nil)
	reply, _ := a.Chat(context.Background(), "hey")
	if called {
		t.Error("Expected greeting to be answered without the model")
	}
	if reply.Intent != intentGreeting {
		t.Errorf("Expected greeting intent, got %s", reply.Intent)
	}
}
