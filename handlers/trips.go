package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/database"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
)

func (h *Handler) CreateTrip(c *gin.Context) {
	var trip database.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Server assigns identity; clients cannot overwrite another trip.
	trip.ID = ""
	trip.CreatedAt = h.Now().UTC()
	trip.Normalize()
	if err := trip.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Trips.SaveTrip(c.Request.Context(), &trip); err != nil {
		log.Errorf("%s Failed to save trip: %v", logcolors.LogTrips, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save trip"})
		return
	}

	log.Infof("%s Saved trip %s to %s", logcolors.LogTrips, trip.ID, trip.Destination)
	c.JSON(http.StatusCreated, trip)
}

func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.Trips.ListTrips(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		log.Errorf("%s Failed to list trips: %v", logcolors.LogTrips, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trips})
}

func (h *Handler) GetTrip(c *gin.Context) {
	trip, ok := h.loadTrip(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *Handler) DeleteTrip(c *gin.Context) {
	id := c.Param("id")
	err := h.Trips.DeleteTrip(c.Request.Context(), id)
	if errors.Is(err, database.ErrTripNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	if err != nil {
		log.Errorf("%s Failed to delete trip %s: %v", logcolors.LogTrips, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}
	c.Status(http.StatusNoContent)
}

// loadTrip writes the error response itself and reports whether to continue.
func (h *Handler) loadTrip(c *gin.Context) (*database.Trip, bool) {
	id := c.Param("id")
	trip, err := h.Trips.GetTrip(c.Request.Context(), id)
	if errors.Is(err, database.ErrTripNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return nil, false
	}
	if err != nil {
		log.Errorf("%s Failed to load trip %s: %v", logcolors.LogTrips, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip"})
		return nil, false
	}
	return trip, true
}
