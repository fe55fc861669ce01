// Package lang holds the narrow language helpers the chunking engine
// consumes: language classification, bullet-index numeral parsing, and
// charset detection for raw text ingestion.
package lang

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var englishCharRe = regexp.MustCompile(`^[` + "`" + `a-zA-Z0-9\s.,':;/"?<>!()\-]+$`)

// IsEnglish reports whether more than 80% of the non-blank samples consist
// entirely of basic Latin text and punctuation.
func IsEnglish(samples []string) bool {
	var total, eng int
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		total++
		if englishCharRe.MatchString(s) {
			eng++
		}
	}
	if total == 0 {
		return false
	}
	return float64(eng)/float64(total) > 0.8
}

// IsChinese reports whether more than 20% of the runes are Han characters.
func IsChinese(text string) bool {
	if text == "" {
		return false
	}
	var total, han int
	for _, r := range text {
		total++
		if unicode.Is(unicode.Han, r) {
			han++
		}
	}
	return float64(han)/float64(total) > 0.2
}

// Normalize applies NFC normalization to extracted text.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// ParseIndex converts a bullet index string to an integer: arabic digits,
// English number words, Chinese numerals, or roman numerals. Returns -1
// when no interpretation fits.
func ParseIndex(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if n, ok := englishNumber(strings.ToLower(s)); ok {
		return n
	}
	if n, ok := chineseNumber(s); ok {
		return n
	}
	if n, ok := romanNumber(strings.ToUpper(s)); ok {
		return n
	}
	return -1
}

var englishWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

func englishNumber(s string) (int, bool) {
	total := 0
	matched := false
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' }) {
		n, ok := englishWords[w]
		if !ok {
			if w == "hundred" && matched {
				total *= 100
				continue
			}
			return 0, false
		}
		total += n
		matched = true
	}
	return total, matched
}

var chineseDigits = map[rune]int{
	'零': 0, '一': 1, '二': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

func chineseNumber(s string) (int, bool) {
	total, cur := 0, 0
	matched := false
	for _, r := range s {
		switch r {
		case '十':
			if cur == 0 {
				cur = 1
			}
			total += cur * 10
			cur = 0
			matched = true
		case '百':
			if cur == 0 {
				cur = 1
			}
			total += cur * 100
			cur = 0
			matched = true
		default:
			d, ok := chineseDigits[r]
			if !ok {
				return 0, false
			}
			cur = cur*10 + d
			matched = true
		}
	}
	return total + cur, matched
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

func romanNumber(s string) (int, bool) {
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0, false
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	return total, total > 0
}
