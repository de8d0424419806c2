package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"

	"github.com/midgard/midgard-core/internal/auth"
	"github.com/midgard/midgard-core/internal/config"
	"github.com/midgard/midgard-core/internal/logger"
	"github.com/midgard/midgard-core/internal/manga"
	"github.com/midgard/midgard-core/internal/metrics"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config       config.Config
	DB           *pgxpool.Pool
	ObjectStore  *minio.Client
	AuthService  *auth.Service
	Tokens       auth.TokenService
	MangaService *manga.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
// Auth endpoints are public; profile and favorites sit behind the guard.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())

	metrics.InitMetrics()
	router.Use(metrics.Middleware())
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	registerHealthRoutes(router, deps)

	api := router.Group("/api/v1")
	protected := api.Group("/")
	protected.Use(auth.Guard(deps.Tokens))

	if deps.AuthService != nil {
		auth.RegisterRoutes(api, protected, deps.AuthService)
	}
	if deps.MangaService != nil {
		manga.RegisterRoutes(api, protected, deps.MangaService)
	}

	return router
}
