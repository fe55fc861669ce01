package section

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PositionTag locates a span of text on one or more source pages.
// Pages are zero-based in memory and one-based in the encoded form.
type PositionTag struct {
	Pages  []int   `json:"pages"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

var tagRe = regexp.MustCompile(`@@[0-9-]+\t[0-9.\t]+##`)

// Encode renders the tag in its wire form:
// @@<p1>[-<p2>...]\t<left>\t<right>\t<top>\t<bottom>## with 1-based pages
// and one-decimal coordinates.
func (p PositionTag) Encode() string {
	pages := make([]string, len(p.Pages))
	for i, pn := range p.Pages {
		pages[i] = strconv.Itoa(pn + 1)
	}
	return fmt.Sprintf("@@%s\t%.1f\t%.1f\t%.1f\t%.1f##",
		strings.Join(pages, "-"), p.Left, p.Right, p.Top, p.Bottom)
}

// ParseAll extracts every position tag embedded in text, in order.
// Malformed tags are skipped; absence yields a nil slice.
func ParseAll(text string) []PositionTag {
	var out []PositionTag
	for _, tag := range tagRe.FindAllString(text, -1) {
		body := strings.Trim(strings.Trim(tag, "#"), "@")
		fields := strings.Split(body, "\t")
		if len(fields) != 5 {
			continue
		}
		var pages []int
		ok := true
		for _, p := range strings.Split(fields[0], "-") {
			n, err := strconv.Atoi(p)
			if err != nil {
				ok = false
				break
			}
			pages = append(pages, n-1)
		}
		if !ok || len(pages) == 0 {
			continue
		}
		coords := make([]float64, 4)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			coords[i] = v
		}
		if !ok {
			continue
		}
		out = append(out, PositionTag{
			Pages: pages,
			Left:  coords[0], Right: coords[1],
			Top: coords[2], Bottom: coords[3],
		})
	}
	return out
}

// StripTags removes every embedded position tag from text.
func StripTags(text string) string {
	return tagRe.ReplaceAllString(text, "")
}
