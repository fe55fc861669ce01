package bullet

import (
	"regexp"
	"strings"

	"github.com/dgallion1/chunkgest/internal/lang"
)

// Box is a laid-out fragment from the extraction layer, used when deciding
// whether a line opens a new FAQ question.
type Box struct {
	Text       string
	X0, Top    float64
	HasPos     bool
	LayoutType string
}

var askRe = regexp.MustCompile(`^(what|when|where|how|why|which|who|whose|为什么|为啥|哪)`)

// HasQBullet reports whether box starts a new question under the chosen Q&A
// rule. Geometry guards reject indented continuations; out-of-order indices
// are accepted only for interrogative or title-like lines. On acceptance the
// box's x0 is recorded in bullX0 and the parsed index is returned; otherwise
// lastIndex passes through.
func HasQBullet(rule *regexp.Regexp, box, lastBox *Box, lastIndex int, lastBull bool, bullX0 *[]float64) (bool, int) {
	full := regexp.MustCompile(rule.String() + `(?s).*?(?:？|\?|\n|$)+`)
	m := full.FindStringSubmatch(box.Text)
	if m == nil {
		return false, lastIndex
	}
	if !lastBox.HasPos {
		lastBox.X0, lastBox.Top, lastBox.HasPos = box.X0, box.Top, true
	}
	if lastBull && box.X0-lastBox.X0 > 10 {
		return false, lastIndex
	}
	if !lastBull && box.X0 >= lastBox.X0 && box.Top-lastBox.Top < 20 {
		return false, lastIndex
	}
	avg := box.X0
	if len(*bullX0) > 0 {
		sum := 0.0
		for _, x := range *bullX0 {
			sum += x
		}
		avg = sum / float64(len(*bullX0))
	}
	if box.X0-avg > 10 {
		return false, lastIndex
	}

	index := lang.ParseIndex(m[1])
	last := lastBox.Text
	if strings.HasSuffix(last, ":") || strings.HasSuffix(last, "：") {
		return false, lastIndex
	}
	accept := func() (bool, int) {
		*bullX0 = append(*bullX0, box.X0)
		return true, index
	}
	if lastIndex <= 0 || index >= lastIndex {
		return accept()
	}
	if strings.HasSuffix(box.Text, "?") || strings.HasSuffix(box.Text, "？") {
		return accept()
	}
	if box.LayoutType == "title" {
		return accept()
	}
	if prefix := rule.FindString(box.Text); prefix != "" {
		pure := strings.ToLower(strings.TrimLeft(box.Text, prefix))
		if askRe.MatchString(pure) {
			return accept()
		}
	}
	return false, lastIndex
}
