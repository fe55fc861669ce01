package bullet

import (
	"testing"

	"github.com/dgallion1/chunkgest/internal/section"
)

func TestClassifyMarkdown(t *testing.T) {
	samples := []string{
		"# Introduction",
		"## Background",
		"## Approach",
		"### Details",
		"Plain body line with no markers.",
	}
	// Deterministic regardless of sample order.
	for i := 0; i < 3; i++ {
		if got := Classify(samples); got != 4 {
			t.Fatalf("Classify = %d, want 4 (markdown)", got)
		}
		samples = append(samples[1:], samples[0])
	}
}

func TestClassifyChineseLegal(t *testing.T) {
	samples := []string{"第一章 总则", "第一条 目的", "第二条 适用范围", "正文内容。"}
	if got := Classify(samples); got != 0 {
		t.Errorf("Classify = %d, want 0", got)
	}
}

func TestClassifyWestern(t *testing.T) {
	samples := []string{"Chapter I", "Section 1", "Section 2", "Article 5", "body text"}
	if got := Classify(samples); got != 3 {
		t.Errorf("Classify = %d, want 3", got)
	}
}

func TestClassifyNoStructure(t *testing.T) {
	samples := []string{"just prose", "more prose", "and more"}
	if got := Classify(samples); got != NoStyle {
		t.Errorf("Classify = %d, want NoStyle", got)
	}
	if got := Classify(nil); got != NoStyle {
		t.Errorf("Classify(nil) = %d, want NoStyle", got)
	}
}

func TestClassifyFalsePositives(t *testing.T) {
	// Unit counters and dot leaders must not count as bullets.
	samples := []string{"3 个苹果", "5......10", "0. nothing"}
	if got := Classify(samples); got != NoStyle {
		t.Errorf("Classify = %d, want NoStyle for false positives", got)
	}
}

func TestClassifyQuestions(t *testing.T) {
	samples := []string{"第1问 什么是退货政策？", "第2问 如何申请售后？"}
	idx, re := ClassifyQuestions(samples)
	if idx == NoStyle || re == nil {
		t.Fatalf("ClassifyQuestions = %d, want a match", idx)
	}
	if m := re.FindStringSubmatch("第3问 其他"); m == nil || m[1] != "3" {
		t.Errorf("winning pattern failed to capture index: %v", m)
	}

	idx, re = ClassifyQuestions([]string{"no questions here"})
	if idx != NoStyle || re != nil {
		t.Errorf("expected NoStyle for unstructured samples, got %d", idx)
	}
}

func TestLevelPatternMatch(t *testing.T) {
	// Markdown style: "## x" is rule index 1.
	if got := Level(4, "## Background", ""); got != 1 {
		t.Errorf("Level = %d, want 1", got)
	}
	if got := Level(4, "# Top", ""); got != 0 {
		t.Errorf("Level = %d, want 0", got)
	}
}

func TestLevelLayoutHeadingFallback(t *testing.T) {
	n := PatternCount(4)
	if got := Level(4, "Short Heading", "title"); got != n {
		t.Errorf("Level = %d, want heading sentinel %d", got, n)
	}
	// A long sentence tagged as title is still body.
	long := "this heading has far too many words to plausibly be a real document heading at all"
	if got := Level(4, long, "title"); got != n+1 {
		t.Errorf("Level = %d, want body sentinel %d", got, n+1)
	}
	if got := Level(4, "plain body", ""); got != n+1 {
		t.Errorf("Level = %d, want body sentinel %d", got, n+1)
	}
}

func TestLevelFullWidthSpace(t *testing.T) {
	// Ideographic spaces are normalized before matching.
	if got := Level(0, "　第一章　总则", ""); got != 1 {
		t.Errorf("Level = %d, want 1", got)
	}
}

func TestNotTitle(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"第十二条", false},
		{"Short Title", false},
		{"one two three four five six seven eight nine ten eleven twelve thirteen", true},
		{"a sentence, with punctuation", true},
		{"句子。结尾", true},
	}
	for _, c := range cases {
		if got := NotTitle(c.in); got != c.want {
			t.Errorf("NotTitle(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTitleFrequency(t *testing.T) {
	secs := []section.Section{
		{Text: "# Doc"},
		{Text: "## A"},
		{Text: "## B"},
		{Text: "## C"},
		{Text: "body text"},
	}
	most, levels := TitleFrequency(4, secs)
	if most != 1 {
		t.Errorf("most = %d, want 1 (## is the most frequent heading level)", most)
	}
	want := []int{0, 1, 1, 1, PatternCount(4) + 1}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("levels[%d] = %d, want %d", i, levels[i], want[i])
		}
	}
}

func TestTitleFrequencyNoStyle(t *testing.T) {
	most, levels := TitleFrequency(NoStyle, []section.Section{{Text: "x"}})
	if most != 1 || len(levels) != 1 || levels[0] != 1 {
		t.Errorf("NoStyle: most=%d levels=%v (PatternCount(NoStyle)=0)", most, levels)
	}
}
