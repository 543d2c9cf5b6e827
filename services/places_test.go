package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newPlacesServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "maps-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/maps/api/place/textsearch/json":
			switch r.URL.Query().Get("query") {
			case "Taj Exotica Goa":
				w.Write([]byte(`{"status":"OK","results":[{"name":"Taj","photos":[]},{"name":"Taj Exotica","photos":[{"photo_reference":"REF123"}]}]}`))
			case "broken":
				w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
			default:
				w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
			}
		case "/maps/api/place/photo":
			if r.URL.Query().Get("photo_reference") != "REF123" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("PNGDATA"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFindPhotoReference(t *testing.T) {
	server := newPlacesServer(t)
	c := NewPlacesClient(PlacesConfig{APIKey: "maps-key", BaseURL: server.URL, Timeout: time.Second}, nil)

	tests := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{"Taj Exotica Goa", "REF123", false},
		{"Nowhere Inn", "", false},
		{"broken", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := c.FindPhotoReference(context.Background(), tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindPhotoReference() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FindPhotoReference() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlacesNotConfigured(t *testing.T) {
	c := NewPlacesClient(PlacesConfig{}, nil)
	if _, err := c.FindPhotoReference(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
	if _, err := c.FetchPhoto(context.Background(), "x", 800); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestFetchPhoto(t *testing.T) {
	server := newPlacesServer(t)
	c := NewPlacesClient(PlacesConfig{APIKey: "maps-key", BaseURL: server.URL, Timeout: time.Second}, nil)

	photo, err := c.FetchPhoto(context.Background(), "REF123", 800)
	if err != nil {
		t.Fatalf("FetchPhoto returned error: %v", err)
	}
	defer photo.Close()

	body, _ := io.ReadAll(photo.Body)
	if string(body) != "PNGDATA" || photo.ContentType != "image/png" {
		t.Errorf("Unexpected photo %q %q", photo.ContentType, body)
	}

	_, err = c.FetchPhoto(context.Background(), "OTHER", 800)
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadRequest {
		t.Errorf("Expected StatusError 400, got %v", err)
	}
}
