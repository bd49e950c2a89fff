package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/archdesign/internal/api/http"
	"github.com/GoSim-25-26J-441/archdesign/internal/api/http/middleware"
	projecthttp "github.com/GoSim-25-26J-441/archdesign/internal/projects/http"
	"github.com/GoSim-25-26J-441/archdesign/internal/projects/store"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	BackendKind    string
	Backend        storage.Backend
	Store          *store.Store
	Logger         *zap.Logger
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))

	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
			ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	var pinger httpapi.Pinger
	if p, ok := dep.Backend.(httpapi.Pinger); ok {
		pinger = p
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.BackendKind, pinger)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projectHandler := projecthttp.New(dep.Store, dep.Logger)
	projectHandler.Register(api.Group("/project"), middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))

	return r
}
