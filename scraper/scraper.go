package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/catalogscrape/dom"
	"github.com/use-agent/catalogscrape/extractor"
	"github.com/use-agent/catalogscrape/models"
)

// Defaults for the launch retry loop.
const (
	DefaultLaunchAttempts = 3
	DefaultLaunchDelay    = time.Second
)

// Browser is a launched browser process. It is owned by exactly one
// extraction run and never reused.
type Browser interface {
	// Load opens a single page, navigates it to url and waits until the
	// page has settled. It returns the document root to extract from.
	Load(ctx context.Context, url string) (dom.Node, error)

	// Close terminates the browser process.
	Close() error
}

// LaunchFunc starts a new browser process.
type LaunchFunc func(ctx context.Context) (Browser, error)

// ExtractFunc turns a loaded document into content blocks.
type ExtractFunc func(root dom.Node) ([]models.ContentBlock, error)

// Scraper runs one extraction per call: launch a browser (with bounded
// retry), load the target page, extract, and always tear the browser down.
// Scraper holds no per-run state and is safe for concurrent use.
type Scraper struct {
	launch   LaunchFunc
	extract  ExtractFunc
	attempts int
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLaunchAttempts sets how many times a browser launch is tried.
// Defaults to 3.
func WithLaunchAttempts(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithLaunchDelay sets the fixed wait between failed launch attempts.
// Defaults to 1s.
func WithLaunchDelay(d time.Duration) Option {
	return func(s *Scraper) {
		s.delay = d
	}
}

// WithSleep replaces the function used to wait between launch attempts.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Scraper) {
		s.sleep = sleep
	}
}

// WithExtractFunc replaces the extraction step. Defaults to extractor.Extract.
func WithExtractFunc(fn ExtractFunc) Option {
	return func(s *Scraper) {
		s.extract = fn
	}
}

// New creates a Scraper that starts browsers with launch.
func New(launch LaunchFunc, opts ...Option) *Scraper {
	s := &Scraper{
		launch:   launch,
		extract:  extractor.Extract,
		attempts: DefaultLaunchAttempts,
		delay:    DefaultLaunchDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run extracts the content blocks of targetURL.
//
// Lifecycle:
//
//  1. Launch        – up to `attempts` tries, fixed delay in between
//  2. DEFER: close  – the browser is released on every return path
//  3. Load          – one page, one navigation, wait for network idle
//  4. Extract       – read-only traversal of the loaded document
//
// Failures are returned as *models.ScrapeError with code LAUNCH_FAILED,
// NAVIGATION_FAILED or EXTRACTION_FAILED. No partial result is returned.
func (s *Scraper) Run(ctx context.Context, targetURL string) ([]models.ContentBlock, error) {
	start := time.Now()

	// ── 1. Launch ─────────────────────────────────────────────────────
	b, err := s.launchWithRetry(ctx)
	if err != nil {
		return nil, err
	}

	// ── 2. Guaranteed teardown ────────────────────────────────────────
	defer s.release(b)

	// ── 3. Load ───────────────────────────────────────────────────────
	root, err := b.Load(ctx, targetURL)
	if err != nil {
		return nil, models.AsScrapeError(err, models.ErrCodeExtraction, "failed to prepare page")
	}
	loaded := time.Now()

	// ── 4. Extract ────────────────────────────────────────────────────
	blocks, err := s.safeExtract(root)
	if err != nil {
		return nil, models.AsScrapeError(err, models.ErrCodeExtraction, "failed to extract page content")
	}

	slog.Info("extraction complete",
		"url", targetURL,
		"blocks", len(blocks),
		"loadMs", loaded.Sub(start).Milliseconds(),
		"extractMs", time.Since(loaded).Milliseconds(),
	)
	return blocks, nil
}

// launchWithRetry tries to start a browser up to s.attempts times, waiting
// s.delay between failed attempts. The last launch error is wrapped in a
// LAUNCH_FAILED ScrapeError.
func (s *Scraper) launchWithRetry(ctx context.Context) (Browser, error) {
	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		b, err := s.launch(ctx)
		if err == nil {
			slog.Debug("browser launched", "attempt", attempt)
			return b, nil
		}
		lastErr = err
		slog.Warn("browser launch failed",
			"attempt", attempt,
			"maxAttempts", s.attempts,
			"error", err,
		)

		if attempt == s.attempts {
			break
		}
		if err := s.sleep(ctx, s.delay); err != nil {
			return nil, models.NewScrapeError(
				models.ErrCodeLaunch,
				fmt.Sprintf("browser launch aborted after %d attempts", attempt),
				lastErr,
			)
		}
	}

	return nil, models.NewScrapeError(
		models.ErrCodeLaunch,
		fmt.Sprintf("failed to launch browser after %d attempts", s.attempts),
		lastErr,
	)
}

// release closes the browser. A teardown failure is logged and never
// replaces the run's own result.
func (s *Scraper) release(b Browser) {
	if err := b.Close(); err != nil {
		slog.Warn("browser teardown failed", "error", err)
	}
}

// safeExtract runs the extraction step, turning a panic into an error.
func (s *Scraper) safeExtract(root dom.Node) (blocks []models.ContentBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("panic during extraction: %v", r)
		}
	}()
	return s.extract(root)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
