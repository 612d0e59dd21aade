package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/catalogscrape/api/handler"
	"github.com/use-agent/catalogscrape/api/middleware"
	"github.com/use-agent/catalogscrape/config"
	"github.com/use-agent/catalogscrape/models"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	Scrape:  RateLimit
//
// CORS is global so error responses (404, 405, 429, 500) carry the headers
// too. The health endpoint is not rate limited so monitoring probes always work.
func NewRouter(runner handler.Runner, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowOrigin))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed"})
	})

	r.GET("/healthz", handler.Health(startTime))

	scrape := r.Group("")
	scrape.Use(middleware.RateLimit(cfg.RateLimit))
	scrape.GET(cfg.Server.Route, handler.Scrape(runner))

	return r
}
