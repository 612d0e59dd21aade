package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/catalogscrape/models"
)

// Runner performs one extraction run. *scraper.Scraper satisfies it.
type Runner interface {
	Run(ctx context.Context, url string) ([]models.ContentBlock, error)
}

// errMissingURL is the body for a request without the url parameter.
const errMissingURL = "URL parameter is required."

// Scrape returns a handler for GET <route>?url=<target>.
//
// Orchestration flow:
//  1. Read & validate the url query parameter.
//  2. Runner.Run → content blocks (one browser per request).
//  3. Return 200 with the JSON array, or 500 with the error.
func Scrape(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Validate ─────────────────────────────────────────────
		target := strings.TrimSpace(c.Query("url"))
		if target == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errMissingURL})
			return
		}
		if !isHTTPURL(target) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "URL parameter must be an absolute http(s) URL.",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}

		// ── 2. Extract ──────────────────────────────────────────────
		blocks, err := runner.Run(c.Request.Context(), target)
		if err != nil {
			respondError(c, err)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		c.JSON(http.StatusOK, blocks)
	}
}

// respondError writes a failed run as a 500 with the error detail.
func respondError(c *gin.Context, err error) {
	scrapeErr := models.AsScrapeError(err, models.ErrCodeInternal, "unexpected error")
	_ = c.Error(scrapeErr)
	c.JSON(http.StatusInternalServerError, scrapeErr.ToResponse())
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
