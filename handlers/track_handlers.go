package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitfunnel/site/attribution"
	"recruitfunnel/site/models"
	"recruitfunnel/site/utils"
	"recruitfunnel/site/visitor"
)

// VisitorStore persists landing-page visits and answers the visit statistics.
type VisitorStore interface {
	InsertVisits(ctx context.Context, visits []models.VisitorEvent) error
	GetVisitCountsOverTime(ctx context.Context, interval string, start, end time.Time) ([]models.CountByTime, error)
	GetUniqueSessionsOverTime(ctx context.Context, interval string, start, end time.Time) ([]models.CountByTime, error)
	GetTopSources(ctx context.Context, start, end time.Time, limit uint64) ([]models.SourceCount, error)
}

type VisitorHandlers struct {
	Store  VisitorStore
	logger *zap.Logger
	now    func() time.Time
}

func NewVisitorHandlers(s VisitorStore, logger *zap.Logger) *VisitorHandlers {
	return &VisitorHandlers{Store: s, logger: logger, now: time.Now}
}

// TrackVisitor handles POST /api/track-visitor.
func (h *VisitorHandlers) TrackVisitor(c *gin.Context) {
	var p visitor.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	utmSource, _ := attribution.Lookup(p.Search, "utm_source")
	utmMedium, _ := attribution.Lookup(p.Search, "utm_medium")
	utmCampaign, _ := attribution.Lookup(p.Search, "utm_campaign")

	visit := models.VisitorEvent{
		EventID:     uuid.New().String(),
		SessionID:   p.SessionID,
		FBP:         p.FBP,
		FBC:         p.FBC,
		PageURL:     p.PageURL,
		Referrer:    p.Referrer,
		UserAgent:   p.UserAgent,
		IPAddress:   c.ClientIP(),
		Search:      p.Search,
		Attribution: attribution.Extract(p.Search),
		UTMSource:   utmSource,
		UTMMedium:   utmMedium,
		UTMCampaign: utmCampaign,
		Timestamp:   h.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Store.InsertVisits(ctx, []models.VisitorEvent{visit}); err != nil {
		h.logger.Error("failed to record visit",
			zap.String("session_id", visitor.Value(p.SessionID)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record visit"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetVisitCounts handles GET /api/stats/visits.
func (h *VisitorHandlers) GetVisitCounts(c *gin.Context) {
	h.countsOverTime(c, h.Store.GetVisitCountsOverTime, "visit")
}

// GetUniqueSessions handles GET /api/stats/sessions.
func (h *VisitorHandlers) GetUniqueSessions(c *gin.Context) {
	h.countsOverTime(c, h.Store.GetUniqueSessionsOverTime, "session")
}

func (h *VisitorHandlers) countsOverTime(c *gin.Context, query func(context.Context, string, time.Time, time.Time) ([]models.CountByTime, error), what string) {
	interval := c.DefaultQuery("interval", "Day")
	if !utils.IsValidInterval(interval) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interval must be one of Minute, Hour, Day, Week, Month, Quarter, Year"})
		return
	}
	start, end, err := parseTimeRange(c, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := query(ctx, interval, start, end)
	if err != nil {
		h.logger.Error("failed to query stats", zap.String("stat", what), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve " + what + " statistics"})
		return
	}
	if results == nil {
		results = []models.CountByTime{}
	}
	c.JSON(http.StatusOK, results)
}

// GetTopSources handles GET /api/stats/top-sources.
func (h *VisitorHandlers) GetTopSources(c *gin.Context) {
	start, end, err := parseTimeRange(c, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimit(c, 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Store.GetTopSources(ctx, start, end, limit)
	if err != nil {
		h.logger.Error("failed to query top sources", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top sources statistics"})
		return
	}
	if results == nil {
		results = []models.SourceCount{}
	}
	c.JSON(http.StatusOK, results)
}
