package parser

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/chunkgest/internal/section"
)

// PDFParser handles PDF files. Each text row becomes a section carrying an
// embedded position tag, so downstream chunks keep page coordinates. Pages
// without positioned content fall back to plain-text extraction.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]section.Section, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "chunkgest-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var secs []section.Section
	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows := pageRows(page)
		if len(rows) == 0 {
			text, err := page.GetPlainText(nil)
			if err != nil || strings.TrimSpace(text) == "" {
				continue
			}
			for _, para := range strings.Split(text, "\n") {
				if strings.TrimSpace(para) != "" {
					secs = append(secs, section.Plain(para))
				}
			}
			continue
		}
		height := pageHeight(page)
		for _, row := range rows {
			tag := section.PositionTag{
				Pages:  []int{pageNum - 1},
				Left:   row.left,
				Right:  row.right,
				Top:    clampLow(height - row.y),
				Bottom: clampLow(height - row.y + row.size),
			}
			secs = append(secs, section.WithPosition(row.text, tag))
		}
	}
	return secs, nil
}

type pdfRow struct {
	text        string
	y           float64 // PDF user space, origin bottom-left
	left, right float64
	size        float64
}

// pageRows groups a page's positioned glyph runs into visual rows by their
// baseline, top to bottom, left to right within a row.
func pageRows(page pdflib.Page) (rows []pdfRow) {
	// Malformed content streams panic inside the decoder.
	defer func() {
		if recover() != nil {
			rows = nil
		}
	}()

	texts := page.Content().Text
	if len(texts) == 0 {
		return nil
	}
	sort.SliceStable(texts, func(a, b int) bool {
		if texts[a].Y != texts[b].Y {
			return texts[a].Y > texts[b].Y
		}
		return texts[a].X < texts[b].X
	})

	const baselineTolerance = 2.0
	var cur *pdfRow
	var buf strings.Builder
	flush := func() {
		if cur == nil {
			return
		}
		cur.text = strings.TrimSpace(buf.String())
		if cur.text != "" {
			rows = append(rows, *cur)
		}
		cur = nil
		buf.Reset()
	}
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if cur == nil || cur.y-t.Y > baselineTolerance {
			flush()
			cur = &pdfRow{y: t.Y, left: t.X, right: t.X + t.W, size: t.FontSize}
		}
		if t.X < cur.left {
			cur.left = t.X
		}
		if t.X+t.W > cur.right {
			cur.right = t.X + t.W
		}
		if t.FontSize > cur.size {
			cur.size = t.FontSize
		}
		buf.WriteString(t.S)
	}
	flush()
	return rows
}

func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return 792 // US Letter default
}

func clampLow(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
