package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/httpx"
)

// defaultHealthTimeout - сколько ждём ответа БД в /healthz, если таймаут не задан.
const defaultHealthTimeout = 2 * time.Second

// HealthChecker - источник готовности (пул Postgres).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler - служебные ручки пайплайна.
type Handler struct {
	health  HealthChecker
	log     ports.Logger
	timeout time.Duration
}

func NewHandler(health HealthChecker, log ports.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultHealthTimeout
	}
	return &Handler{health: health, log: log, timeout: timeout}
}

// NewRouter - /ping, /healthz, /metrics. Пустой otelServiceName отключает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/healthz", h.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		h.log.Warnf(ctx, "health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
