package doctree

import (
	"strings"
	"testing"

	"github.com/dgallion1/chunkgest/internal/bullet"
	"github.com/dgallion1/chunkgest/internal/section"
)

const markdownStyle = 4

func mdSections(texts ...string) []section.Section {
	out := make([]section.Section, 0, len(texts))
	for _, t := range texts {
		out = append(out, section.Plain(t))
	}
	return out
}

func TestMergeDepthOne(t *testing.T) {
	secs := mdSections(
		"# Alpha",
		"intro body text",
		"## Sub one",
		"body under sub one",
		"# Beta",
		"body under beta",
	)
	got := Merge(markdownStyle, secs, 1)
	if len(got) != 2 {
		t.Fatalf("got %d chunks: %q", len(got), got)
	}
	// Every chunk opens with its nearest top-level heading and carries
	// everything below it.
	if !strings.HasPrefix(got[0], "# Alpha\n") || !strings.Contains(got[0], "body under sub one") {
		t.Errorf("chunk 0 = %q", got[0])
	}
	if got[1] != "# Beta\nbody under beta" {
		t.Errorf("chunk 1 = %q", got[1])
	}
}

func TestMergeDepthTwo(t *testing.T) {
	secs := mdSections(
		"# Alpha",
		"intro body text",
		"## Sub one",
		"body under sub one",
		"# Beta",
		"body under beta",
	)
	got := Merge(markdownStyle, secs, 2)
	if len(got) != 2 {
		t.Fatalf("got %d chunks: %q", len(got), got)
	}
	want0 := "# Alpha\nintro body text\n## Sub one\nbody under sub one"
	if got[0] != want0 {
		t.Errorf("chunk 0 = %q, want %q", got[0], want0)
	}
	if got[1] != "# Beta\nbody under beta" {
		t.Errorf("chunk 1 = %q", got[1])
	}
}

func TestMergeBodyOnly(t *testing.T) {
	secs := mdSections("first fragment", "second fragment", "third fragment")
	got := Merge(markdownStyle, secs, 1)
	if len(got) != 3 {
		t.Fatalf("got %d chunks: %q", len(got), got)
	}
	for i, want := range []string{"first fragment", "second fragment", "third fragment"} {
		if got[i] != want {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestMergeDepthClamped(t *testing.T) {
	// Depth exceeds the distinct levels; the body level never becomes the
	// grouping target while a heading level exists.
	secs := mdSections("# Alpha", "body line here")
	got := Merge(markdownStyle, secs, 5)
	if len(got) != 1 || got[0] != "# Alpha\nbody line here" {
		t.Fatalf("got %q", got)
	}
}

func TestMergeHeaderOnly(t *testing.T) {
	secs := mdSections("# Alpha", "## Sub one")
	got := Merge(markdownStyle, secs, 2)
	if len(got) != 1 || got[0] != "# Alpha\n## Sub one" {
		t.Fatalf("got %q", got)
	}
}

func TestMergeFiltersNoise(t *testing.T) {
	secs := []section.Section{
		section.Plain("# Real"),
		section.Plain(""),
		section.Plain("x"),
		section.Plain("42"),
		section.Plain("　actual　body content　"),
	}
	got := Merge(markdownStyle, secs, 1)
	if len(got) != 1 {
		t.Fatalf("got %d chunks: %q", len(got), got)
	}
	if got[0] != "# Real\nactual body content" {
		t.Errorf("chunk 0 = %q", got[0])
	}
}

func TestMergeNoStyle(t *testing.T) {
	secs := mdSections("one", "", "three")
	got := Merge(bullet.NoStyle, secs, 1)
	if len(got) != 3 || got[0] != "one" || got[1] != "" || got[2] != "three" {
		t.Fatalf("got %q", got)
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(markdownStyle, nil, 1); len(got) != 0 {
		t.Fatalf("got %q", got)
	}
}

func TestTreeBuildFoldsDeepFragments(t *testing.T) {
	tr := NewTree(1)
	tr.Build([]Leveled{
		{Level: 1, Text: "title"},
		{Level: 3, Text: "deep one"},
		{Level: 2, Text: "deep two"},
	})
	got := tr.Flatten()
	if len(got) != 1 || got[0] != "title\ndeep one\ndeep two" {
		t.Fatalf("got %q", got)
	}
}
