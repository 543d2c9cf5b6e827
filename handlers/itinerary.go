package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/catalog"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/services"
)

func (h *Handler) GenerateItinerary(c *gin.Context) {
	var req services.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	itinerary, err := services.GenerateItinerary(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidItinerary) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate itinerary"})
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply, err := h.Assistant.Chat(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message must not be empty"})
			return
		}
		log.Errorf("%s chat failed: %v", logcolors.LogAssistant, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is unavailable"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) Destinations(c *gin.Context) {
	results := catalog.Search(c.Query("q"), queryInt(c, "limit", 20))
	c.JSON(http.StatusOK, gin.H{"data": results})
}
