package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/config"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/database"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/handler"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/matyldajandova/handyhands-calculator-sub001/docs" // swagger docs
)

type Router struct {
	cfg          *config.Config
	logger       *zap.Logger
	db           *gorm.DB
	rateLimiter  *middleware.RateLimiter
	formHandler  *handler.FormHandler
	quoteHandler *handler.QuoteHandler
	offerHandler *handler.OfferHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	formHandler *handler.FormHandler,
	quoteHandler *handler.QuoteHandler,
	offerHandler *handler.OfferHandler,
) *Router {
	return &Router{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		rateLimiter:  rateLimiter,
		formHandler:  formHandler,
		quoteHandler: quoteHandler,
		offerHandler: offerHandler,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Readiness probe
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		status := http.StatusOK

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		writeJSON(w, status, map[string]interface{}{
			"status": overall,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Catalogue
		r.Get("/forms", rt.formHandler.List)
		r.Get("/forms/{serviceType}", rt.formHandler.GetByServiceType)
		r.Get("/regions", rt.formHandler.Regions)
		r.Get("/start-date/{serviceType}", rt.formHandler.MinimumStartDate)

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.Hydrate)
			r.Put("/", rt.quoteHandler.Update)
			r.Post("/{serviceType}", rt.quoteHandler.Calculate)
		})

		// Offers
		r.Route("/offers", func(r chi.Router) {
			r.Get("/preview", rt.offerHandler.Preview)
			r.With(rt.rateLimiter.LimitSubmissions).Post("/", rt.offerHandler.Submit)
		})
	})

	return r
}
