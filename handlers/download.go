package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/services"
)

func (h *Handler) DownloadTripPDF(c *gin.Context) {
	trip, ok := h.loadTrip(c)
	if !ok {
		return
	}

	pdfBytes, err := services.GenerateTripPDF(trip, h.Now())
	if err != nil {
		log.Errorf("%s PDF generation failed for %s: %v", logcolors.LogTrips, trip.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=voyage-trip-%s.pdf", trip.ID))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if h.Trips == nil {
		dbStatus = "not initialized"
		status = "degraded"
	} else if err := h.Trips.Ping(ctx); err != nil {
		dbStatus = "error: " + err.Error()
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"service":  "Voyage AI API",
		"database": dbStatus,
		"hotels":   h.DirectoryConfigured(),
		"photos":   h.Photos != nil && h.Photos.Configured(),
	})
}
