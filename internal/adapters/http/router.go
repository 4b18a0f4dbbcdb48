// Package http wires the handlers, middleware and server together.
//
// Handlers expose declarative route tables; the router registers them and
// generates the public error catalog from the same declarations, so the
// documentation cannot drift from the behavior.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/adapters/http/handlers"
	"github.com/manganova/api/internal/adapters/http/middleware"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// ============================================
// Router Configuration
// ============================================

// RouterConfig configures the HTTP entry point.
type RouterConfig struct {
	// Logger for the request log and panic reports.
	Logger *slog.Logger
	// Pool backs the readiness probes.
	Pool *pgxpool.Pool
	// Translator resolves error messages.
	Translator *i18n.Translator
	// Tokens verifies bearer credentials on protected routes.
	Tokens ports.TokenIssuer
	// TokenHeader carrying the credential. Defaults to Authorization.
	TokenHeader string
	// Version and BuildTime reported by the health endpoints.
	Version   string
	BuildTime string
	// Environment (development, staging, production).
	Environment string
	// AllowedOrigins for CORS in production.
	AllowedOrigins []string
}

// ============================================
// Router
// ============================================

// Router is the configured Gin engine plus the declared route tables.
type Router struct {
	config *RouterConfig
	engine *gin.Engine
	auth   gin.HandlerFunc
	routes []common.Route
}

// NewRouter builds the engine with the global middleware chain and the
// operational endpoints. Domain routes are added with Register.
func NewRouter(config *RouterConfig) *Router {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	handlers.SetupValidator()

	// Recovery first so every later panic is caught.
	engine.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           config.Logger,
		Translator:       config.Translator,
		EnableStackTrace: config.Environment != "production",
	}))
	engine.Use(middleware.RequestID())

	corsConfig := middleware.DefaultCORSConfig()
	if config.Environment == "production" && len(config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AllowedOrigins
	}
	engine.Use(middleware.CORS(corsConfig))

	engine.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    config.Logger,
		SkipPaths: []string{"/health", "/health/detailed", "/live", "/ready", "/metrics"},
	}))
	engine.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.Language(config.Translator))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(config.Pool, config.Version, config.BuildTime)
	healthHandler.RegisterRoutes(engine)

	r := &Router{
		config: config,
		engine: engine,
		auth: middleware.Auth(&middleware.AuthConfig{
			Tokens:     config.Tokens,
			Translator: config.Translator,
			Header:     config.TokenHeader,
		}),
	}

	engine.GET("/api/errors", r.errorCatalog)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorBody{
			ClassName:  "NotFoundError",
			StatusCode: http.StatusNotFound,
			Message:    "Endpoint not found",
			Metadata: apierrors.Metadata{
				apierrors.F("method", c.Request.Method),
				apierrors.F("path", c.Request.URL.Path),
			},
		})
	})

	return r
}

// Register mounts the given route tables. Protected routes get the auth
// middleware; credential endpoints get the stricter per-endpoint limiter.
func (r *Router) Register(tables ...[]common.Route) {
	for _, table := range tables {
		for _, route := range table {
			chain := make([]gin.HandlerFunc, 0, 3)
			if strings.HasPrefix(route.Path, "/auth/") {
				chain = append(chain, middleware.SensitiveEndpointRateLimit())
			}
			if route.RequiresLogin {
				chain = append(chain, r.auth)
			}
			chain = append(chain, route.Handler)

			r.engine.Handle(route.Method, route.Path, chain...)
			r.routes = append(r.routes, route)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ============================================
// Error Catalog
// ============================================

// EndpointDoc describes one registered endpoint for the catalog.
type EndpointDoc struct {
	Method        string             `json:"method"`
	Path          string             `json:"path"`
	RequiresLogin bool               `json:"requiresLogin"`
	Status        int                `json:"status"`
	Errors        []common.ErrorBody `json:"errors"`
}

// ErrorCatalog is the /api/errors body: every failure variant the API can
// produce, plus the per-endpoint breakdown.
type ErrorCatalog struct {
	Variants  []common.ErrorBody `json:"variants"`
	Endpoints []EndpointDoc      `json:"endpoints"`
}

// errorCatalog renders the catalog in the request language. Protected
// endpoints implicitly document the token rejections.
func (r *Router) errorCatalog(c *gin.Context) {
	lang := common.GetLanguage(c)

	variants := apierrors.Variants()
	catalog := ErrorCatalog{
		Variants:  make([]common.ErrorBody, 0, len(variants)),
		Endpoints: make([]EndpointDoc, 0, len(r.routes)),
	}
	for _, variant := range variants {
		catalog.Variants = append(catalog.Variants, common.NewErrorBody(r.config.Translator, lang, variant))
	}

	for _, route := range r.routes {
		declared := route.Errors
		if route.RequiresLogin {
			declared = append(declared[:len(declared):len(declared)],
				apierrors.NewMissingToken(), apierrors.NewInvalidToken())
		}

		doc := EndpointDoc{
			Method:        route.Method,
			Path:          route.Path,
			RequiresLogin: route.RequiresLogin,
			Status:        route.Status,
			Errors:        make([]common.ErrorBody, 0, len(declared)),
		}
		for _, apiErr := range declared {
			doc.Errors = append(doc.Errors, common.NewErrorBody(r.config.Translator, lang, apiErr))
		}
		catalog.Endpoints = append(catalog.Endpoints, doc)
	}

	c.JSON(http.StatusOK, catalog)
}
