//go:build integration

package scraper

import (
	"context"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/catalogscrape/config"
)

func TestSetupHijack_MountFailureFallsBack(t *testing.T) {
	cfg := config.Load()
	cfg.Browser.NoSandbox = true

	b, err := RodLauncher(cfg.Browser, cfg.Scraper)(context.Background())
	require.NoError(t, err)
	rb := b.(*rodBrowser)
	t.Cleanup(func() { _ = rb.Close() })

	page, err := rb.browser.Page(proto.TargetCreateTarget{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, setupHijack(page.Context(ctx), []string{"Image"}, false))

	router := setupHijack(page, []string{"Image"}, false)
	require.NotNil(t, router)
	assert.NoError(t, router.Stop())
}
