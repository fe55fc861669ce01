package bullet

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/chunkgest/internal/section"
)

// NoStyle is returned by the classifiers when no pattern matches anything.
const NoStyle = -1

// Classify scores each body style by how many samples match one of its rules
// and returns the index of the style with the strictly greatest count, or
// NoStyle when every count is zero. Ties go to the earliest style.
func Classify(samples []string) int {
	hits := make([]int, len(styles))
	for i, style := range styles {
		for _, sec := range samples {
			sec = strings.TrimSpace(sec)
			for _, p := range style {
				if p.MatchString(sec) && !notBullet(sec) {
					hits[i]++
					break
				}
			}
		}
	}
	best, max := NoStyle, 0
	for i, h := range hits {
		if h > max {
			best, max = i, h
		}
	}
	return best
}

// ClassifyQuestions scores the Q&A catalog the same way, counting at most
// one hit per rule, and returns the winning rule plus its compiled pattern.
func ClassifyQuestions(samples []string) (int, *regexp.Regexp) {
	hits := make([]int, len(questions))
	for i, p := range questions {
		for _, sec := range samples {
			if p.MatchString(sec) && !notBullet(sec) {
				hits[i]++
				break
			}
		}
	}
	best, max := NoStyle, 0
	for i, h := range hits {
		if h > max {
			best, max = i, h
		}
	}
	if best == NoStyle {
		return NoStyle, nil
	}
	return best, questions[best]
}

// Level maps a fragment to its hierarchy level under the given style:
// the first matching rule's index, PatternCount(style) for a layout-detected
// heading with no numbering prefix, PatternCount(style)+1 for plain body.
func Level(style int, text, layout string) int {
	n := PatternCount(style)
	trimmed := strings.TrimSpace(strings.ReplaceAll(text, "　", " "))
	if style >= 0 && style < len(styles) {
		for i, p := range styles[style] {
			if p.MatchString(trimmed) && !notBullet(trimmed) {
				return i
			}
		}
	}
	if layoutRe.MatchString(layout) && !NotTitle(section.VisibleText(text)) {
		return n
	}
	return n + 1
}

// NotTitle rejects fragments that look like headings by layout but read like
// body text: over-long, sentence punctuation, or a long unspaced run.
// Numbered legal articles are always accepted.
func NotTitle(txt string) bool {
	if articleRe.MatchString(txt) {
		return false
	}
	if len(strings.Fields(txt)) > 12 {
		return true
	}
	if !strings.Contains(txt, " ") && len([]rune(txt)) >= 32 {
		return true
	}
	return sentenceRe.MatchString(txt)
}

// TitleFrequency assigns every section a level under the given style and
// returns the most frequent heading level alongside the per-section levels.
// Sections that match no rule and carry no heading layout get the body
// sentinel PatternCount(style)+1.
func TitleFrequency(style int, sections []section.Section) (int, []int) {
	n := PatternCount(style)
	levels := make([]int, len(sections))
	for i := range levels {
		levels[i] = n + 1
	}
	if len(sections) == 0 || style < 0 {
		return n + 1, levels
	}
	for i, sec := range sections {
		trimmed := strings.TrimSpace(sec.Text)
		assigned := false
		for j, p := range styles[style] {
			if p.MatchString(trimmed) && !notBullet(sec.Text) {
				levels[i] = j
				assigned = true
				break
			}
		}
		if !assigned && layoutRe.MatchString(sec.Layout) && !NotTitle(section.VisibleText(sec.Text)) {
			levels[i] = n
		}
	}

	counts := map[int]int{}
	for _, l := range levels {
		counts[l]++
	}
	distinct := make([]int, 0, len(counts))
	for l := range counts {
		distinct = append(distinct, l)
	}
	sort.Slice(distinct, func(a, b int) bool {
		if counts[distinct[a]] != counts[distinct[b]] {
			return counts[distinct[a]] > counts[distinct[b]]
		}
		return distinct[a] < distinct[b]
	})
	most := n + 1
	for _, l := range distinct {
		if l <= n {
			most = l
			break
		}
	}
	return most, levels
}
