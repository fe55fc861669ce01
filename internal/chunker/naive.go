// Package chunker merges extracted sections into retrieval-sized chunks:
// a greedy token-budget merger with optional overlap, a hierarchical bucket
// merger, and a post-pass that stitches context around table/image chunks.
package chunker

import (
	"image"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/chunkgest/internal/section"
	"github.com/dgallion1/chunkgest/internal/token"
)

// Piece is one merger input: visible text plus its encoded position tag.
type Piece struct {
	Text string
	Tag  string
}

// PiecesFromSections splits embedded position tags out of section texts.
func PiecesFromSections(secs []section.Section) []Piece {
	out := make([]Piece, len(secs))
	for i, s := range secs {
		tags := section.ParseAll(s.Text)
		if len(tags) == 0 {
			out[i] = Piece{Text: s.Text}
			continue
		}
		var tag strings.Builder
		for _, t := range tags {
			tag.WriteString(t.Encode())
		}
		out[i] = Piece{Text: section.StripTags(s.Text), Tag: tag.String()}
	}
	return out
}

var customDelimRe = regexp.MustCompile("`([^`]+)`")

// customDelimiters extracts backtick-quoted literals from a delimiter spec.
func customDelimiters(delimiter string) []string {
	var out []string
	for _, m := range customDelimRe.FindAllStringSubmatch(delimiter, -1) {
		out = append(out, m[1])
	}
	return out
}

// customPattern builds the split pattern for a set of literal delimiters,
// longest first so longer literals win over their own prefixes. Duplicates
// collapse to their first occurrence, keeping the result deterministic.
func customPattern(dels []string) *regexp.Regexp {
	seen := make(map[string]bool, len(dels))
	uniq := dels[:0:0]
	for _, d := range dels {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}
	sort.SliceStable(uniq, func(i, j int) bool { return len(uniq[i]) > len(uniq[j]) })
	parts := make([]string, len(uniq))
	for i, d := range uniq {
		parts[i] = regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

// splitKeepEmpty cuts s at every delimiter match, keeping empty segments so
// that adjacent delimiters still yield a (blank) chunk.
func splitKeepEmpty(re *regexp.Regexp, s string) []string {
	var segs []string
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		segs = append(segs, s[last:loc[0]])
		last = loc[1]
	}
	return append(segs, s[last:])
}

// NaiveMerge greedily accumulates pieces into chunks under chunkTokenNum
// tokens, carrying overlappedPercent of each closed chunk's tail into the
// next one. When the delimiter spec contains backtick-quoted literals the
// budget is bypassed entirely: every split segment becomes its own chunk.
//
// The returned slice starts with the empty seed chunk; Assemble drops it.
func NaiveMerge(pieces []Piece, chunkTokenNum int, delimiter string, overlappedPercent int, count token.Counter) []string {
	if len(pieces) == 0 {
		return nil
	}

	if dels := customDelimiters(delimiter); len(dels) > 0 {
		pattern := customPattern(dels)
		var cks []string
		for _, pc := range pieces {
			for _, sub := range splitKeepEmpty(pattern, pc.Text) {
				text := "\n" + sub
				pos := pc.Tag
				if count(text) < 8 {
					pos = ""
				}
				if pos != "" && !strings.Contains(text, pos) {
					text += pos
				}
				cks = append(cks, text)
			}
		}
		return cks
	}

	cks := []string{""}
	tkNums := []int{0}
	limit := float64(chunkTokenNum) * float64(100-overlappedPercent) / 100

	for _, pc := range pieces {
		t := "\n" + pc.Text
		pos := pc.Tag
		tnum := count(t)
		if tnum < 8 {
			pos = ""
		}
		last := len(cks) - 1
		if cks[last] == "" || float64(tkNums[last]) > limit {
			// Close the running chunk; seed the new one with the tail
			// of the previous chunk's de-tagged text.
			overlapped := []rune(section.StripTags(cks[last]))
			t = string(overlapped[len(overlapped)*(100-overlappedPercent)/100:]) + t
			if !strings.Contains(t, pos) {
				t += pos
			}
			cks = append(cks, t)
			tkNums = append(tkNums, tnum)
		} else {
			if !strings.Contains(cks[last], pos) {
				t += pos
			}
			cks[last] += t
			tkNums[last] += tnum
		}
	}
	return cks
}

// NaiveMergeWithImages is NaiveMerge carrying one optional image per piece.
// Images of merged pieces stack vertically; identical images deduplicate.
func NaiveMergeWithImages(pieces []Piece, images []image.Image, chunkTokenNum int, delimiter string, overlappedPercent int, count token.Counter) ([]string, []image.Image) {
	if len(pieces) == 0 || len(pieces) != len(images) {
		return nil, nil
	}

	if dels := customDelimiters(delimiter); len(dels) > 0 {
		pattern := customPattern(dels)
		var cks []string
		var imgs []image.Image
		for i, pc := range pieces {
			for _, sub := range splitKeepEmpty(pattern, pc.Text) {
				text := "\n" + sub
				pos := pc.Tag
				if count(text) < 8 {
					pos = ""
				}
				if pos != "" && !strings.Contains(text, pos) {
					text += pos
				}
				cks = append(cks, text)
				imgs = append(imgs, images[i])
			}
		}
		return cks, imgs
	}

	cks := []string{""}
	imgs := []image.Image{nil}
	tkNums := []int{0}
	limit := float64(chunkTokenNum) * float64(100-overlappedPercent) / 100

	for i, pc := range pieces {
		t := "\n" + pc.Text
		pos := pc.Tag
		tnum := count(t)
		if tnum < 8 {
			pos = ""
		}
		last := len(cks) - 1
		if cks[last] == "" || float64(tkNums[last]) > limit {
			overlapped := []rune(section.StripTags(cks[last]))
			t = string(overlapped[len(overlapped)*(100-overlappedPercent)/100:]) + t
			if !strings.Contains(t, pos) {
				t += pos
			}
			cks = append(cks, t)
			imgs = append(imgs, images[i])
			tkNums = append(tkNums, tnum)
		} else {
			if !strings.Contains(cks[last], pos) {
				t += pos
			}
			cks[last] += t
			if imgs[last] == nil {
				imgs[last] = images[i]
			} else {
				imgs[last] = ConcatImages(imgs[last], images[i])
			}
			tkNums[last] += tnum
		}
	}
	return cks, imgs
}

// NaiveMergeDocx merges paragraph/image pairs from word documents. The
// close rule is the plain budget with no overlap, and there is no seed
// chunk: the first paragraph opens the first chunk directly.
func NaiveMergeDocx(texts []string, images []image.Image, chunkTokenNum int, delimiter string, count token.Counter) ([]string, []image.Image) {
	if len(texts) == 0 || len(texts) != len(images) {
		return nil, nil
	}

	if dels := customDelimiters(delimiter); len(dels) > 0 {
		pattern := customPattern(dels)
		var cks []string
		var imgs []image.Image
		for i, sec := range texts {
			for _, sub := range splitKeepEmpty(pattern, sec) {
				if sub == "" {
					continue
				}
				cks = append(cks, "\n"+sub)
				imgs = append(imgs, images[i])
			}
		}
		return cks, imgs
	}

	var cks []string
	var imgs []image.Image
	var tkNums []int
	for i, sec := range texts {
		t := "\n" + sec
		tnum := count(t)
		last := len(cks) - 1
		if len(cks) == 0 || tkNums[last] > chunkTokenNum {
			cks = append(cks, t)
			imgs = append(imgs, images[i])
			tkNums = append(tkNums, tnum)
		} else {
			cks[last] += t
			imgs[last] = ConcatImages(imgs[last], images[i])
			tkNums[last] += tnum
		}
	}
	return cks, imgs
}
