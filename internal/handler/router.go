package handler

import (
	"net/http"

	"cleaning-feedback-bot/internal/handler/api"
	"cleaning-feedback-bot/internal/handler/middleware"
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const WebhookPath = "/telegram/webhook"

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterDeps struct {
	Config        config.Config
	Logger        *middleware.Logger
	Metrics       *metrics.Metrics
	Webhook       *api.WebhookHandler
	WebhookSecret *middleware.WebhookSecret
}

func NewRouter(engine *gin.Engine, d RouterDeps) {
	setupMiddleware(engine, d.Logger)
	setupRoutes(engine, d)
}

func setupMiddleware(engine *gin.Engine, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, d RouterDeps) {
	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodGet, Path: "/health", Handler: healthCheck},
		{Method: http.MethodGet, Path: "/metrics", Handler: gin.WrapH(d.Metrics.Handler())},
	})

	if d.Config.Telegram.Mode == config.ModeWebhook {
		addRoutes(engine.Group(WebhookPath), []route{
			{
				Method:  http.MethodPost,
				Path:    "/:secret",
				Handler: d.Webhook.Receive,
				Mw:      []gin.HandlerFunc{d.WebhookSecret.Require()},
			},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
