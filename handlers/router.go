package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recruitfunnel/site/landing"
	"recruitfunnel/site/middleware"
	"recruitfunnel/site/utils"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Logger        *zap.Logger
	Reporter      middleware.Reporter
	Templates     *template.Template
	FEOrigin      string
	SecureCookies bool
	Tokens        *utils.JWTManager

	// TrustedProxies may set X-Forwarded-For. Loopback covers the site's own visitor
	// sender; nil means loopback only.
	TrustedProxies []string

	Pages        *PageHandlers
	Visitors     *VisitorHandlers
	Events       *EventHandlers
	Applications *ApplicationHandlers
	Auth         *AuthHandlers
}

// NewRouter builds the site's gin engine.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	proxies := cfg.TrustedProxies
	if proxies == nil {
		proxies = []string{"127.0.0.1", "::1"}
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Reporter))
	r.SetHTMLTemplate(cfg.Templates)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.StaticFS("/static", landing.Static())

	pages := r.Group("/")
	pages.Use(middleware.SessionCookie(cfg.SecureCookies))
	{
		for _, v := range landing.Variants {
			pages.GET(v.Path, cfg.Pages.Landing(v))
		}
		pages.GET("/apply", cfg.Pages.Apply)
		pages.GET("/apply/thanks", cfg.Pages.Thanks)
	}

	api := r.Group("/api")
	api.Use(middleware.CORSMiddleware(cfg.FEOrigin))
	{
		api.POST("/track-visitor", cfg.Visitors.TrackVisitor)
		api.POST("/events", cfg.Events.TrackEvent)
		api.POST("/applications", cfg.Applications.Submit)

		api.POST("/login", cfg.Auth.Login)
		api.POST("/logout", cfg.Auth.Logout)

		stats := api.Group("/stats")
		stats.Use(middleware.AuthRequired(cfg.Tokens, cfg.Logger))
		{
			stats.GET("/visits", cfg.Visitors.GetVisitCounts)
			stats.GET("/sessions", cfg.Visitors.GetUniqueSessions)
			stats.GET("/top-sources", cfg.Visitors.GetTopSources)
			stats.GET("/applications", cfg.Applications.GetOutcomeCounts)
		}
	}

	return r, nil
}
