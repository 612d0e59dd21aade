package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/use-agent/catalogscrape/config"
)

// NewRodScraper creates a Scraper that launches a fresh headless Chrome for
// every run.
func NewRodScraper(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig, opts ...Option) *Scraper {
	base := []Option{
		WithLaunchAttempts(browserCfg.LaunchAttempts),
		WithLaunchDelay(browserCfg.LaunchDelay),
	}
	return New(RodLauncher(browserCfg, scraperCfg), append(base, opts...)...)
}

// RodLauncher returns a LaunchFunc that starts Chrome through Rod's launcher.
func RodLauncher(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) LaunchFunc {
	return func(ctx context.Context) (Browser, error) {
		l := newLauncher(browserCfg).Context(ctx)

		controlURL, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launching browser: %w", err)
		}
		slog.Debug("browser launched", "controlURL", controlURL, "pid", l.PID())

		browser := rod.New().ControlURL(controlURL)
		if err := browser.Connect(); err != nil {
			l.Kill() // Clean up launched process on connection failure
			return nil, fmt.Errorf("connecting to browser: %w", err)
		}

		return &rodBrowser{
			browser:    browser,
			launcher:   l,
			browserCfg: browserCfg,
			scraperCfg: scraperCfg,
		}, nil
	}
}

// newLauncher builds a launcher with the stability flags Chrome needs under
// constrained memory (containers, serverless hosts).
func newLauncher(cfg config.BrowserConfig) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Leakless(true)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-hang-monitor"))
	l.Set(flags.Flag("no-first-run"))

	return l
}

// rodBrowser is one Chrome process and its CDP connection.
type rodBrowser struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	browserCfg config.BrowserConfig
	scraperCfg config.ScraperConfig
}

// Close closes the CDP connection, kills the process and removes its
// temporary user-data directory. The process is killed even when the
// graceful close fails.
func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("closing browser: %w", err)
	}
	return nil
}
