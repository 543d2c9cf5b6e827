package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/database"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/hotels"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/services"
)

type HotelSearcher interface {
	Search(ctx context.Context, req hotels.SearchRequest) (hotels.SearchResult, error)
	Offer(ctx context.Context, offerID string) (hotels.OfferDetail, error)
}

type PhotoFetcher interface {
	Configured() bool
	FetchPhoto(ctx context.Context, ref string, width int) (*services.Photo, error)
}

type ChatAssistant interface {
	Chat(ctx context.Context, message string) (services.ChatReply, error)
}

type Deps struct {
	Hotels    HotelSearcher
	Photos    PhotoFetcher
	Trips     database.Store
	Assistant ChatAssistant
	// DirectoryConfigured reports whether hotel directory credentials are set.
	DirectoryConfigured func() bool
	PhotoMaxWidth       int
	Now                 func() time.Time
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.PhotoMaxWidth <= 0 {
		d.PhotoMaxWidth = 800
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.DirectoryConfigured == nil {
		d.DirectoryConfigured = func() bool { return false }
	}
	return &Handler{Deps: d}
}

// Register mounts every API route on the group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/health", h.Health)
	api.GET("/destinations", h.Destinations)

	api.GET("/hotels/search", h.SearchHotels)
	api.GET("/hotels/offer/:offerId", h.HotelOffer)
	api.GET("/places/photo", h.PlacePhoto)
	api.GET("/flights/search", h.SearchFlights)

	api.POST("/itinerary/generate", h.GenerateItinerary)
	api.POST("/assistant/chat", h.Chat)

	trips := api.Group("/trips")
	{
		trips.POST("", h.CreateTrip)
		trips.GET("", h.ListTrips)
		trips.GET("/:id", h.GetTrip)
		trips.DELETE("/:id", h.DeleteTrip)
		trips.GET("/:id/pdf", h.DownloadTripPDF)
	}
}
