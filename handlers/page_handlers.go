package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitfunnel/site/attribution"
	"recruitfunnel/site/funnel"
	"recruitfunnel/site/landing"
	"recruitfunnel/site/tracking"
	"recruitfunnel/site/visitor"
)

type PageHandlers struct {
	Sender  visitor.Sender
	Tracker *tracking.Tracker
}

func NewPageHandlers(sender visitor.Sender, tracker *tracking.Tracker) *PageHandlers {
	return &PageHandlers{Sender: sender, Tracker: tracker}
}

// Landing renders one landing-page variant and records the visit.
func (h *PageHandlers) Landing(v landing.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := visitor.WithClientIP(c.Request.Context(), c.ClientIP())
		visitor.NewTracker(h.Sender).Track(c.Request.WithContext(ctx))
		h.Tracker.Track(c.Request.Context(), tracking.PageView, tracking.Detail{
			Extra: map[string]any{"variant": v.Slug},
		})

		c.HTML(http.StatusOK, "landing.tmpl", gin.H{
			"Variant": v,
			"Search":  c.Request.URL.RawQuery,
		})
	}
}

// Apply handles GET /apply.
func (h *PageHandlers) Apply(c *gin.Context) {
	step := funnel.StepFromQuery(c.Query("step"))
	if step.Number == 1 {
		h.Tracker.Track(c.Request.Context(), tracking.ApplyStart, tracking.Detail{Step: tracking.Int(1)})
	}

	c.HTML(http.StatusOK, "apply.tmpl", gin.H{
		"Step":        step,
		"Search":      c.Request.URL.RawQuery,
		"Attribution": attribution.FromRequest(c.Request),
		"Sticky":      landing.ApplySticky,
	})
}

// Thanks handles GET /apply/thanks.
func (h *PageHandlers) Thanks(c *gin.Context) {
	c.HTML(http.StatusOK, "thanks.tmpl", gin.H{
		"Search": c.Request.URL.RawQuery,
	})
}
