// Package bullet infers document structure from numbering patterns: it
// classifies which numbering style a document uses and assigns each fragment
// a hierarchy level under that style.
package bullet

import "regexp"

// The five body styles. Rule position within a style is its level: earlier
// rules outrank later ones. Compiled once, read-only after init.
var styleSources = [][]string{
	{ // Chinese legal / administrative numbering
		`第[零一二三四五六七八九十百0-9]+(分?编|部分)`,
		`第[零一二三四五六七八九十百0-9]+章`,
		`第[零一二三四五六七八九十百0-9]+节`,
		`第[零一二三四五六七八九十百0-9]+条`,
		`[\(（][零一二三四五六七八九十百]+[\)）]`,
	},
	{ // generic numeric / decimal outline
		`第[0-9]+章`,
		`第[0-9]+节`,
		`[0-9]{0,2}[\. 、]`,
		`[0-9]{0,2}\.[0-9]{0,2}[^a-zA-Z/%~-]`,
		`[0-9]{0,2}\.[0-9]{0,2}\.[0-9]{0,2}`,
		`[0-9]{0,2}\.[0-9]{0,2}\.[0-9]{0,2}\.[0-9]{0,2}`,
	},
	{ // Chinese mixed numbering
		`第[零一二三四五六七八九十百0-9]+章`,
		`第[零一二三四五六七八九十百0-9]+节`,
		`[零一二三四五六七八九十百]+[ 、]`,
		`[\(（][零一二三四五六七八九十百]+[\)）]`,
		`[\(（][0-9]{0,2}[\)）]`,
	},
	{ // Western chapter/section keywords
		`PART (ONE|TWO|THREE|FOUR|FIVE|SIX|SEVEN|EIGHT|NINE|TEN)`,
		`Chapter (I+V?|VI*|XI|IX|X)`,
		`Section [0-9]+`,
		`Article [0-9]+`,
	},
	{ // Markdown heading markers
		`#[^#]`,
		`##[^#]`,
		`###.*`,
		`####.*`,
		`#####.*`,
		`######.*`,
	},
}

// Q&A bullet catalog; group 1 captures the question index.
var questionSources = []string{
	`第([零一二三四五六七八九十百0-9]+)问`,
	`第([零一二三四五六七八九十百0-9]+)条`,
	`[\(（]([零一二三四五六七八九十百]+)[\)）]`,
	`第([0-9]+)问`,
	`第([0-9]+)条`,
	`([0-9]{1,2})[\. 、]`,
	`([零一二三四五六七八九十百]+)[ 、]`,
	`[\(（]([0-9]{1,2})[\)）]`,
	`QUESTION (ONE|TWO|THREE|FOUR|FIVE|SIX|SEVEN|EIGHT|NINE|TEN)`,
	`QUESTION (I+V?|VI*|XI|IX|X)`,
	`QUESTION ([0-9]+)`,
}

var (
	styles    [][]*regexp.Regexp
	questions []*regexp.Regexp

	// Shared false-positive filter: bare zero prefixes, unit-counter forms
	// like "3 个", and repeated-dot leaders are never structural bullets.
	notBulletRes = []*regexp.Regexp{
		regexp.MustCompile(`^0`),
		regexp.MustCompile(`^[0-9]+ +[0-9~个只-]`),
		regexp.MustCompile(`^[0-9]+\.{2,}`),
	}

	articleRe  = regexp.MustCompile(`^第[零一二三四五六七八九十百0-9]+条`)
	sentenceRe = regexp.MustCompile(`[,;，。；！!]`)
	layoutRe   = regexp.MustCompile(`(title|head)`)
)

func init() {
	styles = make([][]*regexp.Regexp, len(styleSources))
	for i, src := range styleSources {
		styles[i] = make([]*regexp.Regexp, len(src))
		for j, p := range src {
			styles[i][j] = regexp.MustCompile(`^(?:` + p + `)`)
		}
	}
	questions = make([]*regexp.Regexp, len(questionSources))
	for i, p := range questionSources {
		questions[i] = regexp.MustCompile(`^(?:` + p + `)`)
	}
}

// StyleCount is the number of built-in body styles.
func StyleCount() int { return len(styles) }

// PatternCount returns the number of level rules in a style, 0 for
// out-of-range style indices.
func PatternCount(style int) int {
	if style < 0 || style >= len(styles) {
		return 0
	}
	return len(styles[style])
}

// QuestionPattern returns the compiled Q&A rule at index i.
func QuestionPattern(i int) *regexp.Regexp {
	if i < 0 || i >= len(questions) {
		return nil
	}
	return questions[i]
}

func notBullet(line string) bool {
	for _, re := range notBulletRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
