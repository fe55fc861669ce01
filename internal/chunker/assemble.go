package chunker

import (
	"image"
	"regexp"
	"strings"

	"github.com/dgallion1/chunkgest/internal/section"
	"github.com/dgallion1/chunkgest/internal/token"
)

var tableMarkupRe = regexp.MustCompile(`</?(table|td|caption|tr|th)( [^<>]{0,12})?>`)

// Assemble finalizes merger output into chunks: blank chunks are dropped,
// embedded position tags are parsed out and stripped, and the tokenizer
// fills the token-representation fields. A non-nil childPattern splits each
// chunk into child chunks that retain the full chunk text as Parent.
func Assemble(texts []string, tok token.Tokenizer, childPattern *regexp.Regexp) []section.Chunk {
	var res []section.Chunk
	for _, ck := range texts {
		if strings.TrimSpace(ck) == "" {
			continue
		}
		positions := section.ParseAll(ck)
		text := section.StripTags(ck)

		if childPattern != nil {
			for _, sub := range splitKeepEmpty(childPattern, text) {
				if sub == "" {
					continue
				}
				d := buildChunk(sub, tok)
				d.Parent = text
				d.Positions = positions
				res = append(res, d)
			}
			continue
		}

		d := buildChunk(text, tok)
		d.Positions = positions
		res = append(res, d)
	}
	return res
}

// AssembleWithImages finalizes paired merger output, attaching each chunk's
// image alongside the usual token and position handling.
func AssembleWithImages(texts []string, images []image.Image, tok token.Tokenizer, childPattern *regexp.Regexp) []section.Chunk {
	var res []section.Chunk
	for i, ck := range texts {
		if i >= len(images) || strings.TrimSpace(ck) == "" {
			continue
		}
		positions := section.ParseAll(ck)
		text := section.StripTags(ck)

		if childPattern != nil {
			for _, sub := range splitKeepEmpty(childPattern, text) {
				if sub == "" {
					continue
				}
				d := buildChunk(sub, tok)
				d.Parent = text
				d.Positions = positions
				d.Image = images[i]
				res = append(res, d)
			}
			continue
		}

		d := buildChunk(text, tok)
		d.Positions = positions
		d.Image = images[i]
		res = append(res, d)
	}
	return res
}

// AssembleTable turns extracted table rows into table chunks, batching rows
// under a shared image and position set. An image upgrades the doc type
// from "table" to "image".
func AssembleTable(rows []string, img image.Image, positions []section.PositionTag, english bool, batchSize int, tok token.Tokenizer) []section.Chunk {
	if len(rows) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	joiner := "； "
	if english {
		joiner = "; "
	}
	var res []section.Chunk
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		d := buildChunk(strings.Join(rows[i:end], joiner), tok)
		d.DocType = "table"
		if img != nil {
			d.Image = img
			d.DocType = "image"
		}
		d.Positions = positions
		res = append(res, d)
	}
	return res
}

func buildChunk(text string, tok token.Tokenizer) section.Chunk {
	stripped := tableMarkupRe.ReplaceAllString(text, " ")
	light := tok.Tokenize(stripped)
	return section.Chunk{
		Text:        text,
		TokenCount:  tok.Count(text),
		LightTokens: light,
		FineTokens:  tok.FineGrained(light),
	}
}

// ExtractBetween returns every substring of text enclosed by startTag and
// endTag, in order.
func ExtractBetween(text, startTag, endTag string) []string {
	re := regexp.MustCompile(regexp.QuoteMeta(startTag) + `((?s).*?)` + regexp.QuoteMeta(endTag))
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// DelimiterPattern compiles a delimiter spec into a split pattern: backtick
// quoted substrings are multi-character literals, every other rune is a
// single-character delimiter, longest first.
func DelimiterPattern(delimiters string) *regexp.Regexp {
	var dels []string
	s := 0
	for _, m := range customDelimRe.FindAllStringSubmatchIndex(delimiters, -1) {
		dels = append(dels, delimiters[m[2]:m[3]])
		for _, r := range delimiters[s:m[0]] {
			dels = append(dels, string(r))
		}
		s = m[1]
	}
	if s < len(delimiters) {
		for _, r := range delimiters[s:] {
			dels = append(dels, string(r))
		}
	}
	var nonEmpty []string
	for _, d := range dels {
		if d != "" {
			nonEmpty = append(nonEmpty, d)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}
	return customPattern(nonEmpty)
}
