package models_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/catalogscrape/models"
)

func TestContentBlock_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block models.ContentBlock
		want  string
	}{
		{
			name:  "title",
			block: models.NewTitle("Frutas"),
			want:  `{"type":"title","content":"Frutas"}`,
		},
		{
			name:  "paragraph",
			block: models.NewParagraph("Frescas\ntodos os dias"),
			want:  `{"type":"paragraph","content":"Frescas\ntodos os dias"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tt.block)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestContentBlock_CardCarriesAllKeys(t *testing.T) {
	t.Parallel()

	fields := models.ProductFields{Price: "R$ 4,99"}
	fields.Normalize()

	got, err := json.Marshal(models.NewCard(fields))
	require.NoError(t, err)

	var wire struct {
		Type    string            `json:"type"`
		Content map[string]string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(got, &wire))

	assert.Equal(t, "card", wire.Type)
	assert.Len(t, wire.Content, reflect.TypeOf(models.ProductFields{}).NumField())
	assert.Len(t, wire.Content, 21)
	assert.Equal(t, "R$ 4,99", wire.Content["Price"])
	assert.Equal(t, models.Hide, wire.Content["ShowDiscount"])
	assert.Equal(t, "", wire.Content["ImageSrc"])
}

func TestContentBlock_NilCardMarshalsDefaults(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(models.ContentBlock{Type: models.BlockCard})
	require.NoError(t, err)

	var back models.ContentBlock
	require.NoError(t, json.Unmarshal(got, &back))
	require.NotNil(t, back.Card)
	assert.Equal(t, models.Hide, back.Card.ShowBio)
}

func TestContentBlock_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(models.ContentBlock{Type: "table"})
	assert.Error(t, err)

	var b models.ContentBlock
	assert.Error(t, json.Unmarshal([]byte(`{"type":"table","content":"x"}`), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"title","content":{}}`), &b))
}

func TestContentBlock_RoundTrip(t *testing.T) {
	t.Parallel()

	card := models.ProductFields{
		Category:     "Hortifruti",
		NameLine1:    "Banana Prata",
		NameLine2:    "1kg",
		Bio:          "Orgânico",
		Price:        "R$ 6,49",
		OldPrice:     "R$ 7,99",
		ImageSrc1:    "https://cdn.example/banana.jpg",
		ProductURL:   "https://shop.example/p/banana",
		BadgeContent: "-20%",
	}
	card.Normalize()
	in := []models.ContentBlock{
		models.NewTitle("Frutas"),
		models.NewParagraph("Frescas"),
		models.NewCard(card),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []models.ContentBlock
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestProductFields_Normalize(t *testing.T) {
	t.Parallel()

	p := models.ProductFields{
		Bio:            "  ",
		BadgeContent:   "Novo",
		OldPrice:       "",
		UnitValue:      "R$ 1,00 / un",
		PricePerWeight: "\n",
		ImageSrc1:      "a.jpg",
		ImageSrc:       "stale.jpg",
	}
	p.Normalize()

	assert.Equal(t, models.Hide, p.ShowBio)
	assert.Equal(t, models.Show, p.ShowBadge)
	assert.Equal(t, models.Hide, p.ShowDiscount)
	assert.Equal(t, models.Show, p.ShowUnitValue)
	assert.Equal(t, models.Hide, p.ShowPricePerWeight)
	assert.Equal(t, "a.jpg", p.ImageSrc)
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	nav := models.NewScrapeError(models.ErrCodeNavigation, "navigation timed out", nil)

	assert.Equal(t, "", models.ErrorCode(nil))
	assert.Equal(t, models.ErrCodeNavigation, models.ErrorCode(nav))
	assert.Equal(t, models.ErrCodeNavigation, models.ErrorCode(fmt.Errorf("run: %w", nav)))
	assert.Equal(t, models.ErrCodeInternal, models.ErrorCode(errors.New("plain")))

	assert.True(t, models.IsCode(fmt.Errorf("run: %w", nav), models.ErrCodeNavigation))
	assert.False(t, models.IsCode(nav, models.ErrCodeLaunch))
	assert.False(t, models.IsCode(errors.New("plain"), models.ErrCodeInternal))
}

func TestAsScrapeError(t *testing.T) {
	t.Parallel()

	cause := errors.New("target closed")

	wrapped := models.AsScrapeError(cause, models.ErrCodeExtraction, "failed to extract page content")
	assert.Equal(t, models.ErrCodeExtraction, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)

	launch := models.NewScrapeError(models.ErrCodeLaunch, "failed to launch browser", cause)
	assert.Same(t, launch, models.AsScrapeError(fmt.Errorf("outer: %w", launch), models.ErrCodeExtraction, "ignored"))
}

func TestScrapeError_Formatting(t *testing.T) {
	t.Parallel()

	withCause := models.NewScrapeError(models.ErrCodeLaunch, "failed to launch browser after 3 attempts", errors.New("no chrome"))
	assert.Equal(t, "LAUNCH_FAILED: failed to launch browser after 3 attempts: no chrome", withCause.Error())
	assert.Equal(t, "failed to launch browser after 3 attempts: no chrome", withCause.Detail())

	bare := models.NewScrapeError(models.ErrCodeNavigation, "navigation to target URL failed", nil)
	assert.Equal(t, "NAVIGATION_FAILED: navigation to target URL failed", bare.Error())

	resp := withCause.ToResponse()
	assert.Equal(t, "Failed to scrape page: failed to launch browser after 3 attempts: no chrome", resp.Error)
	assert.Equal(t, models.ErrCodeLaunch, resp.Code)
}
