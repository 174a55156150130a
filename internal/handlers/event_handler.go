package handlers

import (
	"net/http"
	"strconv"

	"market-ingest/internal/models"
	"market-ingest/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventHandler struct {
	db     *gorm.DB
	ingest *services.IngestService
}

func NewEventHandler(db *gorm.DB, ingest *services.IngestService) *EventHandler {
	return &EventHandler{db: db, ingest: ingest}
}

// GetTags returns all tags ordered for display
func (h *EventHandler) GetTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Order("display_order, name").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tags,
		"count":   len(tags),
	})
}

// GetEvents returns events, optionally filtered by tag slug
func (h *EventHandler) GetEvents(c *gin.Context) {
	tagSlug := c.Query("tag")
	status := c.DefaultQuery("status", "active")
	limit := c.DefaultQuery("limit", "50")
	offset := c.DefaultQuery("offset", "0")

	limitInt, _ := strconv.Atoi(limit)
	offsetInt, _ := strconv.Atoi(offset)

	query := h.db.Where("status = ?", status)

	if tagSlug != "" {
		query = query.
			Select("events.*").
			Joins("JOIN event_tags ON event_tags.event_id = events.id").
			Joins("JOIN tags ON tags.id = event_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}

	var events []models.Event
	if err := query.Limit(limitInt).Offset(offsetInt).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    events,
		"count":   len(events),
	})
}

// GetEventBySlug returns one event with its markets and outcomes
func (h *EventHandler) GetEventBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var event models.Event
	err := h.db.Where("slug = ?", slug).
		Preload("Markets").
		Preload("Markets.Condition").
		Preload("Markets.Condition.Outcomes").
		First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    event,
	})
}

// TriggerIngest runs the ingestion pipeline once and reports its stats
func (h *EventHandler) TriggerIngest(c *gin.Context) {
	stats := h.ingest.Run(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
