package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Values of the string-typed display flags.
const (
	Show = "show"
	Hide = "hide"
)

// BlockType discriminates the variants of ContentBlock.
type BlockType string

const (
	BlockTitle     BlockType = "title"
	BlockParagraph BlockType = "paragraph"
	BlockCard      BlockType = "card"
)

// ContentBlock is one normalized output unit: a title, a paragraph or a
// product card. Text is set for titles and paragraphs, Card for cards.
type ContentBlock struct {
	Type BlockType
	Text string
	Card *ProductFields
}

// NewTitle returns a title block.
func NewTitle(text string) ContentBlock {
	return ContentBlock{Type: BlockTitle, Text: text}
}

// NewParagraph returns a paragraph block.
func NewParagraph(text string) ContentBlock {
	return ContentBlock{Type: BlockParagraph, Text: text}
}

// NewCard returns a card block holding a copy of fields.
func NewCard(fields ProductFields) ContentBlock {
	return ContentBlock{Type: BlockCard, Card: &fields}
}

type wireBlock struct {
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the block as {"type": ..., "content": ...} where
// content is a string for titles and paragraphs and an object for cards.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	var (
		content []byte
		err     error
	)
	switch b.Type {
	case BlockTitle, BlockParagraph:
		content, err = json.Marshal(b.Text)
	case BlockCard:
		card := b.Card
		if card == nil {
			card = &ProductFields{}
			card.Normalize()
		}
		content, err = json.Marshal(card)
	default:
		return nil, fmt.Errorf("models: unknown block type %q", b.Type)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireBlock{Type: b.Type, Content: content})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case BlockTitle, BlockParagraph:
		var text string
		if err := json.Unmarshal(w.Content, &text); err != nil {
			return fmt.Errorf("models: %s content: %w", w.Type, err)
		}
		*b = ContentBlock{Type: w.Type, Text: text}
	case BlockCard:
		var card ProductFields
		if err := json.Unmarshal(w.Content, &card); err != nil {
			return fmt.Errorf("models: card content: %w", err)
		}
		*b = ContentBlock{Type: w.Type, Card: &card}
	default:
		return fmt.Errorf("models: unknown block type %q", w.Type)
	}
	return nil
}

// ProductFields is the flat record emitted for every product tile. Every key
// is always present in the JSON form; absent source data is "".
type ProductFields struct {
	Category           string `json:"Category"`
	CategorySubtitle   string `json:"CategorySubtitle"`
	NameLine1          string `json:"NameLine1"`
	NameLine2          string `json:"NameLine2"`
	Bio                string `json:"Bio"`
	ShowBio            string `json:"ShowBio"`
	BadgeContent       string `json:"BadgeContent"`
	ShowBadge          string `json:"ShowBadge"`
	Price              string `json:"Price"`
	OldPrice           string `json:"OldPrice"`
	ShowDiscount       string `json:"ShowDiscount"`
	ImageSrc           string `json:"ImageSrc"`
	ImageSrc1          string `json:"ImageSrc1"`
	ImageSrc2          string `json:"ImageSrc2"`
	ImageSrc3          string `json:"ImageSrc3"`
	UnitValue          string `json:"UnitValue"`
	ShowUnitValue      string `json:"ShowUnitValue"`
	Weight             string `json:"Weight"`
	PricePerWeight     string `json:"PricePerWeight"`
	ShowPricePerWeight string `json:"ShowPricePerWeight"`
	ProductURL         string `json:"ProductURL"`
}

// Normalize derives every Show* flag from its paired value field and
// mirrors ImageSrc1 into ImageSrc.
func (p *ProductFields) Normalize() {
	p.ImageSrc = p.ImageSrc1
	p.ShowBio = ShowHide(p.Bio)
	p.ShowBadge = ShowHide(p.BadgeContent)
	p.ShowDiscount = ShowHide(p.OldPrice)
	p.ShowUnitValue = ShowHide(p.UnitValue)
	p.ShowPricePerWeight = ShowHide(p.PricePerWeight)
}

// ShowHide returns Show when value carries non-whitespace content, Hide otherwise.
func ShowHide(value string) string {
	if strings.TrimSpace(value) != "" {
		return Show
	}
	return Hide
}
