package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitfunnel/site/attribution"
	"recruitfunnel/site/funnel"
	"recruitfunnel/site/models"
	"recruitfunnel/site/store"
	"recruitfunnel/site/tracking"
)

// ApplicationStore persists funnel submissions.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	CountByOutcome(ctx context.Context, start, end time.Time) ([]models.OutcomeCount, error)
}

type ApplicationHandlers struct {
	Store   ApplicationStore
	Tracker *tracking.Tracker
	logger  *zap.Logger
	now     func() time.Time
}

func NewApplicationHandlers(s ApplicationStore, tracker *tracking.Tracker, logger *zap.Logger) *ApplicationHandlers {
	return &ApplicationHandlers{Store: s, Tracker: tracker, logger: logger, now: time.Now}
}

// Submit handles POST /api/applications.
func (h *ApplicationHandlers) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Tracker.Track(ctx, tracking.ApplicationError, tracking.Detail{Reason: "invalid_body"})
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	h.Tracker.Track(ctx, tracking.ApplicationSubmit, tracking.Detail{Step: tracking.Int(len(funnel.Steps))})

	source := req.Attribution
	if source == "" {
		source = c.Request.URL.RawQuery
	}

	result := funnel.Qualify(req, h.now())
	app := &models.Application{
		ID:              uuid.New().String(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Role:            req.Role,
		ExperienceYears: req.ExperienceYears,
		HasLicense:      req.HasLicense,
		AvailableFrom:   req.AvailableFrom,
		Consent:         req.Consent,
		Score:           result.Score,
		Priority:        result.Priority,
		Outcome:         result.Outcome,
		Reason:          result.Reason,
		Attribution:     attribution.Extract(source),
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := h.Store.CreateApplication(dbCtx, app); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			h.Tracker.Track(ctx, tracking.ApplicationError, tracking.Detail{Reason: "duplicate"})
			c.JSON(http.StatusConflict, gin.H{"error": "You have already applied for this role"})
			return
		}
		h.logger.Error("failed to store application", zap.String("role", app.Role), zap.Error(err))
		h.Tracker.Track(ctx, tracking.ApplicationError, tracking.Detail{Reason: "storage"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	verdict := tracking.Qualified
	if result.Outcome == funnel.OutcomeDisqualified {
		verdict = tracking.Disqualified
	}
	h.Tracker.Track(ctx, verdict, tracking.Detail{
		Reason:   result.Reason,
		Score:    tracking.Int(result.Score),
		Priority: result.Priority,
		Outcome:  result.Outcome,
	})
	h.Tracker.Track(ctx, tracking.ApplicationSuccess, tracking.Detail{Outcome: result.Outcome})

	c.JSON(http.StatusCreated, gin.H{
		"id":       app.ID,
		"outcome":  result.Outcome,
		"priority": result.Priority,
	})
}

// GetOutcomeCounts handles GET /api/stats/applications.
func (h *ApplicationHandlers) GetOutcomeCounts(c *gin.Context) {
	start, end, err := parseTimeRange(c, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Store.CountByOutcome(ctx, start, end)
	if err != nil {
		h.logger.Error("failed to count applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application statistics"})
		return
	}
	if results == nil {
		results = []models.OutcomeCount{}
	}
	c.JSON(http.StatusOK, results)
}
