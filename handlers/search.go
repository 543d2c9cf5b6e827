package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/hotels"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/services"
)

const maxPhotoWidth = 1600

// SearchHotels answers 200 with the pipeline result even when the upstream
// failed; only missing dates are a client error.
func (h *Handler) SearchHotels(c *gin.Context) {
	req := hotels.SearchRequest{
		CityCode:   c.Query("cityCode"),
		CheckIn:    strings.TrimSpace(c.Query("checkInDate")),
		CheckOut:   strings.TrimSpace(c.Query("checkOutDate")),
		Adults:     queryInt(c, "adults", 1),
		StrictCity: queryBool(c, "strictCity"),
		HotelIDs:   splitIDs(c.Query("hotelIds"), c.Query("hotelId")),
	}
	if req.CheckIn == "" || req.CheckOut == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkInDate and checkOutDate are required (YYYY-MM-DD)"})
		return
	}

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat == nil && errLon == nil {
		req.Lat, req.Lon = &lat, &lon
	}

	// The pipeline finishes and fills the caches even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	res, err := h.Hotels.Search(ctx, req)
	if err != nil {
		log.Warnf("%s search failed for %s: %v", logcolors.LogSearch, req.CityCode, err)
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) HotelOffer(c *gin.Context) {
	offerID := strings.TrimSpace(c.Param("offerId"))
	if offerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing offer ID"})
		return
	}

	res, err := h.Hotels.Offer(context.WithoutCancel(c.Request.Context()), offerID)
	if err != nil {
		log.Warnf("%s offer %s lookup failed: %v", logcolors.LogSearch, offerID, err)
	}
	c.JSON(http.StatusOK, res)
}

// PlacePhoto proxies a place photo so the maps key never reaches the browser.
func (h *Handler) PlacePhoto(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo reference"})
		return
	}
	if h.Photos == nil || !h.Photos.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo service is not configured"})
		return
	}

	width := queryInt(c, "w", h.PhotoMaxWidth)
	if width <= 0 || width > maxPhotoWidth {
		width = h.PhotoMaxWidth
	}

	photo, err := h.Photos.FetchPhoto(c.Request.Context(), ref, width)
	if err != nil {
		if errors.Is(err, services.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo service is not configured"})
			return
		}
		log.Warnf("%s photo fetch failed: %v", logcolors.LogPhotos, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch photo"})
		return
	}
	defer photo.Close()

	c.Header("Cache-Control", "public, max-age=86400, immutable")
	c.DataFromReader(http.StatusOK, -1, photo.ContentType, photo.Body, nil)
}

func (h *Handler) SearchFlights(c *gin.Context) {
	q := services.FlightQuery{
		Origin:        c.Query("origin"),
		Destination:   c.Query("destination"),
		DepartureDate: strings.TrimSpace(c.Query("departureDate")),
		ReturnDate:    strings.TrimSpace(c.Query("returnDate")),
		Adults:        queryInt(c, "adults", 1),
	}

	flights, err := services.EstimateFlights(q)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFlightQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate flights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   flights,
		"source": "estimated",
	})
}

// ─── Query helpers ────────────────────────────────────────────────────────────

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return fallback
	}
	return v
}

func queryBool(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// splitIDs merges comma-separated id lists; validation happens in the pipeline.
func splitIDs(lists ...string) []string {
	var ids []string
	for _, l := range lists {
		for _, id := range strings.Split(l, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
