package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/use-agent/catalogscrape/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/api/scraper", cfg.Server.Route)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 3, cfg.Browser.LaunchAttempts)
	assert.Equal(t, time.Second, cfg.Browser.LaunchDelay)
	assert.Equal(t, 30*time.Second, cfg.Scraper.NavigationTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Scraper.IdleWindow)
	assert.Equal(t, config.ModeSnapshot, cfg.Scraper.ExtractMode)
	assert.Empty(t, cfg.Scraper.BlockedResourceTypes)
	assert.Nil(t, cfg.Scraper.ExtraHeaders)
	assert.Equal(t, "*", cfg.CORS.AllowOrigin)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_PORT", "9090")
	t.Setenv("CATALOG_LAUNCH_ATTEMPTS", "5")
	t.Setenv("CATALOG_LAUNCH_DELAY", "250ms")
	t.Setenv("CATALOG_NAV_TIMEOUT", "10s")
	t.Setenv("CATALOG_EXTRACT_MODE", "live")
	t.Setenv("CATALOG_BLOCKED_RESOURCES", "Image, Font,,Media")
	t.Setenv("CATALOG_EXTRA_HEADERS", "Accept-Language=pt-BR, X-Debug = 1, broken")
	t.Setenv("CATALOG_HEADLESS", "false")

	cfg := config.Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Browser.LaunchAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Browser.LaunchDelay)
	assert.Equal(t, 10*time.Second, cfg.Scraper.NavigationTimeout)
	assert.Equal(t, config.ModeLive, cfg.Scraper.ExtractMode)
	assert.Equal(t, []string{"Image", "Font", "Media"}, cfg.Scraper.BlockedResourceTypes)
	assert.Equal(t, map[string]string{"Accept-Language": "pt-BR", "X-Debug": "1"}, cfg.Scraper.ExtraHeaders)
	assert.False(t, cfg.Browser.Headless)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CATALOG_PORT", "eighty")
	t.Setenv("CATALOG_NAV_TIMEOUT", "soon")
	t.Setenv("CATALOG_STEALTH", "maybe")

	cfg := config.Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Scraper.NavigationTimeout)
	assert.False(t, cfg.Browser.Stealth)
}
