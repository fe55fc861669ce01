// Package section defines the data model shared by the extraction layer and
// the chunking engine: input fragments, position tags, and finalized chunks.
package section

import (
	"image"
	"strings"
)

// Section is one unit of extracted text with an optional layout tag.
// Position metadata, when present, is embedded in Text as an encoded tag
// (see PositionTag). Sections are immutable once produced.
type Section struct {
	Text   string
	Layout string // e.g. "title", "text", "" when the extractor has no opinion
}

// Plain returns a section with no layout information.
func Plain(text string) Section {
	return Section{Text: text}
}

// WithLayout returns a section carrying the extractor's layout tag.
func WithLayout(text, layout string) Section {
	return Section{Text: text, Layout: layout}
}

// WithPosition returns a section whose text carries an encoded position tag.
func WithPosition(text string, pos PositionTag) Section {
	return Section{Text: text + pos.Encode()}
}

// Chunk is a finalized, token-bounded unit of output.
type Chunk struct {
	Text        string
	TokenCount  int
	LightTokens string // coarse token representation
	FineTokens  string // fine-grained token representation
	Positions   []PositionTag
	Image       image.Image
	DocType     string // "table", "image", or "" for plain text
	Parent      string // full text of the parent chunk when child-splitting
}

// VisibleText returns the part of s before any embedded position tag.
// Mergers filter and measure on this, never on the raw tagged text.
func VisibleText(s string) string {
	if i := strings.IndexByte(s, '@'); i >= 0 {
		return s[:i]
	}
	return s
}
