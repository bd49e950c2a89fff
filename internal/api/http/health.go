package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Backend   string    `json:"backend"`
	Storage   string    `json:"storage"`
}

// Pinger is implemented by storage backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	backend     string
	pinger      Pinger
}

// NewHealthHandler reports on backend. pinger may be nil for backends with
// nothing to ping (memory, file, sqlite).
func NewHealthHandler(serviceName, version, backend string, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		backend:     backend,
		pinger:      pinger,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storageStatus := "local"
	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.pinger.Ping(pingCtx); err != nil {
			storageStatus = "down"
		} else {
			storageStatus = "up"
		}
	}

	status := "healthy"
	code := http.StatusOK
	if storageStatus == "down" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Backend:   h.backend,
		Storage:   storageStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
