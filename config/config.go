package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Extraction modes for ScraperConfig.ExtractMode.
const (
	ModeSnapshot = "snapshot"
	ModeLive     = "live"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host  string // default: "0.0.0.0"
	Port  int    // default: 8080
	Mode  string // "debug", "release", "test"; default: "release"
	Route string // default: "/api/scraper"
}

// BrowserConfig controls how each Rod browser process is started.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL used for all page traffic.
	Proxy string

	// LaunchAttempts is how many times a launch is tried before giving up.
	LaunchAttempts int // default: 3

	// LaunchDelay is the fixed wait between failed launch attempts.
	LaunchDelay time.Duration // default: 1s

	// Stealth injects anti-bot-detection evasions before navigation.
	Stealth bool // default: false
}

// ScraperConfig controls navigation and extraction.
type ScraperConfig struct {
	// NavigationTimeout caps navigation plus the network-idle wait.
	NavigationTimeout time.Duration // default: 30s

	// IdleWindow is how long the network must stay quiet before the page
	// is considered ready.
	IdleWindow time.Duration // default: 500ms

	// ExtractMode selects what the extractor walks: "snapshot" (parsed
	// rendered HTML) or "live" (browser elements).
	ExtractMode string // default: "snapshot"

	// BlockedResourceTypes lists resource types to block, e.g. "Image", "Font".
	BlockedResourceTypes []string // default: none

	// BlockAds blocks requests to well-known ad and tracking hosts.
	BlockAds bool // default: false

	// ExtraHeaders are sent with every page request.
	ExtraHeaders map[string]string
}

// CORSConfig controls the CORS headers written on every response.
type CORSConfig struct {
	AllowOrigin string // default: "*"
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client IP.
	Burst int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  envOr("CATALOG_HOST", "0.0.0.0"),
			Port:  envIntOr("CATALOG_PORT", 8080),
			Mode:  envOr("CATALOG_MODE", "release"),
			Route: envOr("CATALOG_ROUTE", "/api/scraper"),
		},
		Browser: BrowserConfig{
			Headless:       envBoolOr("CATALOG_HEADLESS", true),
			NoSandbox:      envBoolOr("CATALOG_NO_SANDBOX", false),
			BrowserBin:     os.Getenv("CATALOG_BROWSER_BIN"),
			Proxy:          os.Getenv("CATALOG_PROXY"),
			LaunchAttempts: envIntOr("CATALOG_LAUNCH_ATTEMPTS", 3),
			LaunchDelay:    envDurationOr("CATALOG_LAUNCH_DELAY", time.Second),
			Stealth:        envBoolOr("CATALOG_STEALTH", false),
		},
		Scraper: ScraperConfig{
			NavigationTimeout:    envDurationOr("CATALOG_NAV_TIMEOUT", 30*time.Second),
			IdleWindow:           envDurationOr("CATALOG_IDLE_WINDOW", 500*time.Millisecond),
			ExtractMode:          envOr("CATALOG_EXTRACT_MODE", ModeSnapshot),
			BlockedResourceTypes: envSliceOr("CATALOG_BLOCKED_RESOURCES", nil),
			BlockAds:             envBoolOr("CATALOG_BLOCK_ADS", false),
			ExtraHeaders:         envMapOr("CATALOG_EXTRA_HEADERS", nil),
		},
		CORS: CORSConfig{
			AllowOrigin: envOr("CATALOG_CORS_ORIGIN", "*"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("CATALOG_RATE_RPS", 2.0),
			Burst:             envIntOr("CATALOG_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  envOr("CATALOG_LOG_LEVEL", "info"),
			Format: envOr("CATALOG_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

// envMapOr parses "K1=V1,K2=V2". Entries without "=" are skipped.
func envMapOr(key string, fallback map[string]string) map[string]string {
	parts := envSliceOr(key, nil)
	if len(parts) == 0 {
		return fallback
	}
	result := make(map[string]string, len(parts))
	for _, p := range parts {
		k, v, ok := strings.Cut(p, "=")
		if k = strings.TrimSpace(k); ok && k != "" {
			result[k] = strings.TrimSpace(v)
		}
	}
	return result
}
