package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/chunkgest/internal/lang"
	"github.com/dgallion1/chunkgest/internal/section"
)

// TextParser handles plain text files. The raw bytes go through charset
// detection before splitting, so GBK or Big5 exports survive ingestion.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]section.Section, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	codec := lang.FindCodec(blob)
	text := lang.Normalize(string(lang.Decode(blob, codec)))

	var secs []section.Section
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			secs = append(secs, section.Plain(current.String()))
			current.Reset()
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(strings.TrimRight(line, "\r"))
	}
	flush()
	return secs, nil
}
