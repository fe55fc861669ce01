// Package token defines the tokenizer contract the chunking engine consumes
// and a default estimator for callers without a real tokenizer.
package token

import (
	"strings"
	"unicode"
)

// Counter reports a deterministic token count for a string.
type Counter func(text string) int

// Tokenizer is the full collaborator contract: a coarse token representation,
// a fine-grained refinement of it, and a token count.
type Tokenizer interface {
	Tokenize(text string) string
	FineGrained(tokens string) string
	Count(text string) int
}

// Estimator is a heuristic Tokenizer. Exact tokenization is not required for
// chunking; counts only need to be deterministic and roughly proportional.
type Estimator struct{}

// Count estimates tokens: CJK runes count one each, words roughly 1.33.
func (Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	cjk := 0
	var latin strings.Builder
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			cjk++
			latin.WriteByte(' ')
		} else {
			latin.WriteRune(r)
		}
	}
	words := len(strings.Fields(latin.String()))
	tokens := cjk + int(float64(words)*1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// Tokenize lowercases and splits on whitespace and punctuation, separating
// CJK runes, and joins the resulting tokens with single spaces.
func (Estimator) Tokenize(text string) string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r):
			flush()
			toks = append(toks, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return strings.Join(toks, " ")
}

// FineGrained further splits long alphanumeric tokens at digit/letter
// boundaries. The input is the output of Tokenize.
func (Estimator) FineGrained(tokens string) string {
	var out []string
	for _, tk := range strings.Fields(tokens) {
		out = append(out, splitAlnum(tk)...)
	}
	return strings.Join(out, " ")
}

func splitAlnum(tk string) []string {
	var parts []string
	var cur strings.Builder
	var curDigit bool
	for i, r := range tk {
		d := unicode.IsDigit(r)
		if i > 0 && d != curDigit {
			parts = append(parts, cur.String())
			cur.Reset()
		}
		curDigit = d
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
