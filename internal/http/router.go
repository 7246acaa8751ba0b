// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/config"
	"github.com/Nicolasb03/soumissiontoiture/internal/conversation"
	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
	"github.com/Nicolasb03/soumissiontoiture/internal/http/handlers"
	"github.com/Nicolasb03/soumissiontoiture/internal/http/middleware"
	"github.com/Nicolasb03/soumissiontoiture/internal/pricing"
	"github.com/Nicolasb03/soumissiontoiture/internal/repo"
	"github.com/Nicolasb03/soumissiontoiture/internal/services"
	"github.com/Nicolasb03/soumissiontoiture/internal/upstream"
)

// leadRepoShim adapts the repository free functions to the services.LeadRepo
// interface expected by the LeadService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type leadRepoShim struct{}

// CreateLead proxies repo.CreateLead.
func (leadRepoShim) CreateLead(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	return repo.CreateLead(ctx, db, lead)
}

// GetLead proxies repo.GetLead.
func (leadRepoShim) GetLead(ctx context.Context, db *gorm.DB, id uint) (*domain.Lead, error) {
	return repo.GetLead(ctx, db, id)
}

// ListLeads proxies repo.ListLeads.
func (leadRepoShim) ListLeads(ctx context.Context, db *gorm.DB) ([]domain.Lead, error) {
	return repo.ListLeads(ctx, db)
}

// CountLeads proxies repo.CountLeads (pagination support).
func (leadRepoShim) CountLeads(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountLeads(ctx, db)
}

// ListLeadsPage proxies repo.ListLeadsPage (pagination support).
func (leadRepoShim) ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error) {
	return repo.ListLeadsPage(ctx, db, offset, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS and Security headers
//  9. Gzip compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Gzip responses for API payloads (skip the metrics scrape path)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in, typically dev only)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/pricing
	sampler := pricing.RandomSampler{AreaMin: cfg.AreaMin, AreaMax: cfg.AreaMax}
	estSvc := &services.EstimateService{
		Estimator: pricing.Estimator{Sampler: sampler},
	}
	convSvc := &services.ConversationService{
		DB:      db,
		Seq:     conversation.Default(),
		Sampler: sampler,
	}
	leadSvc := services.NewLeadService(db, leadRepoShim{})
	google := upstream.NewGoogleClient(cfg.Google.APIKey, cfg.Google.Timeout)
	h := handlers.New(estSvc, convSvc, leadSvc, google)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api"
	api := groupWithPrefix(r, apiBase)
	{
		// One-shot estimates
		api.POST("/estimate", h.CreateEstimate)

		// Conversation flow
		api.POST("/conversation/start", h.StartConversation)
		api.POST("/conversation/answer", h.SubmitAnswer)
		api.GET("/conversation/session/:id", h.GetSession)
		api.GET("/conversation/sessions", h.ListSessions)

		// Leads
		api.POST("/leads", h.CreateLead)
		api.GET("/leads", h.ListLeads)
		api.GET("/leads/:id", h.GetLead)

		// Google proxies
		api.POST("/geocode", h.Geocode)
		api.POST("/solar-analysis", h.SolarAnalysis)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
