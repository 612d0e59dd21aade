// Package extractor turns a rendered catalog page into an ordered list of
// content blocks: section titles, section descriptions and product cards.
//
// The extractor only reads from the document. Any edit needed to isolate a
// piece of text happens on a detached clone of the relevant subtree.
package extractor

import (
	"strings"

	"github.com/use-agent/catalogscrape/dom"
	"github.com/use-agent/catalogscrape/models"
)

// Structural markers of the catalog markup.
const (
	SectionSelector     = ".subcategory__wrapper-main"
	HeaderSelector      = "h3.subcategory__header"
	DescriptionSelector = ".subcategory__description"
	TileSelector        = ".cs-product-tile"

	CategorySelector         = ".cs-product-tile__category"
	CategorySubtitleSelector = ".cs-product-tile__category-subtitle"
	NameLinkSelector         = ".cs-product-tile__name-link"
	BioSelector              = ".bio-product"
	BadgeSelector            = ".cs-product-tile__badge-item"
	PriceSelector            = ".price"
	ImageSelector            = "img.cs-product-tile__image"
)

// Extract walks every section wrapper under root in document order and
// returns its blocks: an optional title, an optional paragraph, then one card
// per product tile. A document without sections yields an empty, non-nil slice.
//
// Missing sub-elements degrade to empty fields. An error is returned only
// when the document itself cannot be read.
func Extract(root dom.Node) ([]models.ContentBlock, error) {
	r := &reader{}
	blocks := []models.ContentBlock{}

	for _, section := range r.all(root, SectionSelector) {
		if title := r.text(section, HeaderSelector); title != "" {
			blocks = append(blocks, models.NewTitle(title))
		}
		if paragraph := r.text(section, DescriptionSelector); paragraph != "" {
			blocks = append(blocks, models.NewParagraph(paragraph))
		}
		for _, tile := range r.all(section, TileSelector) {
			blocks = append(blocks, models.NewCard(r.card(tile)))
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return blocks, nil
}

// card reads one product tile.
func (r *reader) card(tile dom.Node) models.ProductFields {
	f := models.ProductFields{
		Category:         r.text(tile, CategorySelector),
		CategorySubtitle: r.text(tile, CategorySubtitleSelector),
		BadgeContent:     r.text(tile, BadgeSelector),
		Price:            r.text(tile, PriceSelector),
	}

	if link := r.first(tile, NameLinkSelector); link != nil {
		f.ProductURL = r.href(link)
		f.Bio = r.text(link, BioSelector)
		f.NameLine1, f.NameLine2 = r.nameLines(link)
	}

	if img := r.first(tile, ImageSelector); img != nil {
		f.ImageSrc1 = firstNonEmpty(r.attr(img, "data-src-1"), r.attr(img, "src"))
		f.ImageSrc2 = r.attr(img, "data-src-2")
		f.ImageSrc3 = r.attr(img, "data-src-3")
	}

	f.Normalize()
	return f
}

// nameLines splits the name link into its two display lines, after
// excising the embedded bio from a detached copy.
func (r *reader) nameLines(link dom.Node) (string, string) {
	if r.err != nil {
		return "", ""
	}
	frag, err := link.Clone()
	if err != nil {
		r.err = err
		return "", ""
	}
	if _, err := frag.Excise(BioSelector); err != nil {
		r.err = err
		return "", ""
	}

	lines := frag.Lines()
	line1 := strings.TrimSpace(lines[0])
	var line2 string
	if len(lines) > 1 {
		line2 = strings.TrimSpace(lines[1])
	}
	return line1, line2
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
