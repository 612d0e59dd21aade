package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/use-agent/catalogscrape/models"
)

func TestIsAdDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want bool
	}{
		{"doubleclick.net", true},
		{"stats.g.doubleclick.net", true},
		{"WWW.Google-Analytics.com", true},
		{"shop.example", false},
		{"notdoubleclick.net", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isAdDomain(tt.host), tt.host)
	}
}

func TestBlockedTypes(t *testing.T) {
	t.Parallel()

	got := blockedTypes([]string{"Image", "Font", "Bogus"})

	assert.Len(t, got, 2)
	assert.Contains(t, got, proto.NetworkResourceTypeImage)
	assert.Contains(t, got, proto.NetworkResourceTypeFont)
	assert.Empty(t, blockedTypes(nil))
}

func TestNavigationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), "navigation timed out"},
		{"canceled", context.Canceled, "navigation canceled"},
		{"other", errors.New("net::ERR_NAME_NOT_RESOLVED"), "navigation to target URL failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := navigationError(tt.err)

			assert.Equal(t, models.ErrCodeNavigation, got.Code)
			assert.Equal(t, tt.message, got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestToHeadersMap(t *testing.T) {
	t.Parallel()

	got := toHeadersMap(map[string]string{"Accept-Language": "pt-BR"})

	assert.Len(t, got, 1)
	assert.Equal(t, "pt-BR", got["Accept-Language"].Str())
}
