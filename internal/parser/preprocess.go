package parser

import (
	"regexp"
	"strings"

	"github.com/dgallion1/chunkgest/internal/section"
)

var (
	contentsHeaderRe = regexp.MustCompile(`(?i)^(contents|目录|目次|tableofcontents|致谢|acknowledge)$`)
	spaceRunRe       = regexp.MustCompile(`[ \x{00a0}\x{3000}]+`)
	colonSentenceRe  = regexp.MustCompile(`[。？！!?;；]|\. `)
)

// RemoveContentsTable drops a table-of-contents block: the header line, the
// entry lines after it, up to the section where the first listed entry
// reappears as real content. The prefix of the first entry (three runes, or
// two words for English text) marks that restart point.
func RemoveContentsTable(secs []section.Section, english bool) []section.Section {
	visible := func(i int) string {
		t := secs[i].Text
		if at := strings.Index(t, "@@"); at >= 0 {
			t = t[:at]
		}
		return strings.TrimSpace(t)
	}

	i := 0
	for i < len(secs) {
		head := spaceRunRe.ReplaceAllString(visible(i), "")
		if !contentsHeaderRe.MatchString(head) {
			i++
			continue
		}
		secs = append(secs[:i], secs[i+1:]...)
		if i >= len(secs) {
			break
		}
		prefix := entryPrefix(visible(i), english)
		for prefix == "" {
			secs = append(secs[:i], secs[i+1:]...)
			if i >= len(secs) {
				return secs
			}
			prefix = entryPrefix(visible(i), english)
		}
		secs = append(secs[:i], secs[i+1:]...)
		if i >= len(secs) {
			break
		}
		for j := i; j < i+128 && j < len(secs); j++ {
			if !strings.HasPrefix(visible(j), prefix) {
				continue
			}
			secs = append(secs[:i], secs[j:]...)
			break
		}
	}
	return secs
}

func entryPrefix(text string, english bool) string {
	if english {
		words := strings.Fields(text)
		if len(words) > 2 {
			words = words[:2]
		}
		return strings.Join(words, " ")
	}
	runes := []rune(text)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// MakeColonAsTitle promotes short colon-terminated lead-ins: when a section
// ends with a colon and its final sentence fragment is short, that fragment
// is inserted before the section as a synthetic title.
func MakeColonAsTitle(secs []section.Section) []section.Section {
	out := make([]section.Section, 0, len(secs))
	for _, sec := range secs {
		txt := sec.Text
		if at := strings.Index(txt, "@"); at >= 0 {
			txt = txt[:at]
		}
		txt = strings.TrimSpace(txt)
		if txt != "" && (strings.HasSuffix(txt, ":") || strings.HasSuffix(txt, "：")) {
			if lead := colonLeadIn(txt); lead != "" {
				out = append(out, section.WithLayout(lead, "title"))
			}
		}
		out = append(out, sec)
	}
	return out
}

// colonLeadIn returns the final sentence fragment of txt, colon included,
// when it is short enough to read as a heading.
func colonLeadIn(txt string) string {
	last := 0
	for _, loc := range colonSentenceRe.FindAllStringIndex(txt, -1) {
		if loc[1] < len(txt) {
			last = loc[1]
		}
	}
	lead := strings.TrimSpace(txt[last:])
	if lead == "" || len([]rune(lead)) >= 32 {
		return ""
	}
	return lead
}
