package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	// RateLimitRPS is the sustained per-IP request rate; 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", headerRequestID},
		ExposeHeaders:   []string{"Content-Length", headerRequestID},
		MaxAge:          12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/health", h.Health)

	limited := api.Group("")
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limited.Use(NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), burst).RateLimit())
	}
	limited.POST("/chat", h.Chat)
	limited.DELETE("/sessions/:id", h.EndSession)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Route not found"})
	})
	return router
}
