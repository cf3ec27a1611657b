// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, identity resolution, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Role gates declared per route group, not inside handlers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/config"
	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/http/handlers"
	"github.com/openbloodbank/go-bloodbank-backend/internal/http/middleware"
	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, identity resolution, health and metrics endpoints,
// and then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Identity: resolve X-User-ID into the request context
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
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
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
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
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
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

	// 9) Resolve the caller's account once per request
	r.Use(middleware.Identity(db))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← db
	userSvc := services.NewUserService(db)
	chatSvc := services.NewChatService(db)
	donSvc := services.NewDonationService(db)
	donSvc.EligibilityInterval = time.Duration(cfg.DonationIntervalDays) * 24 * time.Hour
	reqSvc := services.NewRequestService(db)
	apptSvc := services.NewAppointmentService(db)
	postSvc := services.NewPostService(db)
	postSvc.PageSize = cfg.PostsPerPage
	invSvc := services.NewInventoryService(db)
	dashSvc := services.NewDashboardService(db)

	h := handlers.New(userSvc, chatSvc, donSvc, reqSvc, apptSvc, postSvc, invSvc, dashSvc)

	staff := []string{domain.RoleDoctor, domain.RoleAdmin}

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Open: registration, board reads, stock levels, landing dashboard
		api.POST("/users", h.Register)
		api.GET("/posts", h.ListPosts)
		api.GET("/posts/:id", h.GetPost)
		api.GET("/inventory", h.ListInventory)
		api.GET("/dashboard/home", h.HomeDashboard)

		// Signed-in: everything keyed to the caller's account
		me := api.Group("", middleware.RequireUser())
		{
			me.GET("/users", h.ListUsers)
			me.GET("/users/me", h.Me)
			me.PUT("/users/me", h.UpdateMe)

			me.POST("/donations", h.RecordDonation)
			me.GET("/donations", h.DonationHistory)
			me.POST("/requests", h.CreateRequest)
			me.GET("/requests", h.RequestHistory)
			me.POST("/appointments", h.BookAppointment)
			me.GET("/appointments", h.MyAppointments)

			me.GET("/chat", h.ChatDashboard)
			me.POST("/chat/direct", h.StartDirect)
			me.POST("/chat/direct/:userID/messages", h.SendDirectMessage)
			me.GET("/chat/rooms/:id/messages", h.RoomHistory)
			me.POST("/chat/rooms/:id/messages", h.SendMessage)
		}

		// Staff: record processing, queues, board writes, inventory writes
		st := api.Group("", middleware.RequireRole(staff...))
		{
			st.POST("/users/:id/verify", h.VerifyUser)

			st.GET("/donations/queue", h.DonationQueue)
			st.POST("/donations/:id/process", h.ProcessDonation)
			st.GET("/requests/queue", h.RequestQueue)
			st.POST("/requests/:id/fulfill", h.FulfillRequest)
			st.GET("/appointments/queue", h.AppointmentsByStatus)
			st.PUT("/appointments/:id/status", h.SetAppointmentStatus)

			st.POST("/posts", h.CreatePost)
			st.PUT("/posts/:id", h.UpdatePost)
			st.DELETE("/posts/:id", h.DeletePost)

			st.PUT("/inventory", h.SetInventory)

			st.GET("/dashboard/doctor", h.DoctorDashboard)
		}
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
