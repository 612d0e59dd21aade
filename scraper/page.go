package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/catalogscrape/config"
	"github.com/use-agent/catalogscrape/dom"
	"github.com/use-agent/catalogscrape/models"
	"github.com/ysmood/gson"
)

// domStableDiff is the share of the DOM allowed to change within one idle
// window while still counting as stable.
const domStableDiff = 0.1

// longLivedTypes never settle, so they are ignored by the idle wait.
var longLivedTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeWebSocket,
	proto.NetworkResourceTypeEventSource,
	proto.NetworkResourceTypeMedia,
}

// Load opens the run's single page and navigates it.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Open page              – one tab, closed with the browser
//  2. Stealth injection      – mask navigator.webdriver etc. (before navigation!)
//  3. Extra headers
//  4. Hijack mount           – optional resource blocking (before navigation!)
//  5. Navigation deadline    – caps navigate + idle wait
//  6. Idle listener setup    – MUST be registered before Navigate to capture all requests
//  7. Navigate
//  8. Wait                   – load event, then network idle (or DOM stable)
//  9. Document               – snapshot of the rendered HTML, or the live root element
//
// Errors from steps 5-8 are NAVIGATION_FAILED. Any other error is returned
// unclassified and reported by the caller as an extraction failure.
func (b *rodBrowser) Load(ctx context.Context, targetURL string) (dom.Node, error) {
	cfg := b.scraperCfg

	// ── 1. Open page ──────────────────────────────────────────────────
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	// ── 2. Stealth injection ──────────────────────────────────────────
	if b.browserCfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	// ── 3. Extra headers ──────────────────────────────────────────────
	if len(cfg.ExtraHeaders) > 0 {
		if err := (proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(cfg.ExtraHeaders),
		}).Call(page); err != nil {
			slog.Warn("failed to set extra headers", "error", err)
		}
	}

	// ── 4. Hijack mount ───────────────────────────────────────────────
	router := setupHijack(page, cfg.BlockedResourceTypes, cfg.BlockAds)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	// ── 5. Navigation deadline ────────────────────────────────────────
	navCtx, cancel := context.WithTimeout(ctx, cfg.NavigationTimeout)
	defer cancel()
	p := page.Context(navCtx)

	// ── 6. Idle listener ──────────────────────────────────────────────
	// WaitRequestIdle uses the Fetch domain, which the hijack router
	// already owns; with a router mounted fall back to DOM stability.
	var waitIdle func()
	if router == nil {
		waitIdle = p.WaitRequestIdle(cfg.IdleWindow, nil, nil, longLivedTypes)
	}

	// ── 7. Navigate ───────────────────────────────────────────────────
	if err := p.Navigate(targetURL); err != nil {
		return nil, navigationError(err)
	}

	// ── 8. Wait ───────────────────────────────────────────────────────
	if err := p.WaitLoad(); err != nil {
		return nil, navigationError(err)
	}
	if waitIdle != nil {
		waitIdle()
	} else if err := p.WaitDOMStable(cfg.IdleWindow, domStableDiff); err != nil {
		return nil, navigationError(err)
	}
	if err := navCtx.Err(); err != nil {
		return nil, navigationError(err)
	}

	// ── 9. Document ───────────────────────────────────────────────────
	return b.document(page.Context(ctx), targetURL)
}

// document returns the root the extractor walks, according to ExtractMode.
func (b *rodBrowser) document(p *rod.Page, targetURL string) (dom.Node, error) {
	if b.scraperCfg.ExtractMode == config.ModeLive {
		root, err := p.Element("html")
		if err != nil {
			return nil, fmt.Errorf("locating document root: %w", err)
		}
		return newElementNode(root), nil
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading page HTML: %w", err)
	}

	pageURL := targetURL
	if info, err := p.Info(); err == nil && info.URL != "" {
		pageURL = info.URL
	}

	doc, err := dom.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

// navigationError wraps a navigation or wait failure.
func navigationError(err error) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeNavigation, "navigation timed out", err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeNavigation, "navigation canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, "navigation to target URL failed", err)
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
