package chunker

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/dgallion1/chunkgest/internal/section"
)

// wordCount is the deterministic counter used throughout these tests: one
// token per whitespace-separated field.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

func TestNaiveMergeBudget(t *testing.T) {
	pieces := []Piece{
		{Text: "w1 w2 w3"},
		{Text: "w4 w5"},
		{Text: "w6"},
		{Text: "w7"},
	}
	cks := NaiveMerge(pieces, 4, "\n。；！？", 0, wordCount)

	// Seed chunk plus two real chunks: the first closes after exceeding
	// the budget of 4 tokens, the rest accumulate into the second.
	want := []string{"", "\nw1 w2 w3\nw4 w5", "\nw6\nw7"}
	if len(cks) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(cks), cks, len(want))
	}
	for i := range want {
		if cks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, cks[i], want[i])
		}
	}
}

func TestNaiveMergeBudgetRespect(t *testing.T) {
	// With zero overlap, a chunk only closes after its accumulated count
	// exceeds the budget; each closure happens at most one input late.
	var pieces []Piece
	for i := 0; i < 20; i++ {
		pieces = append(pieces, Piece{Text: "aa bb"})
	}
	cks := NaiveMerge(pieces, 6, "\n", 0, wordCount)
	for i, ck := range cks[1:] {
		if n := wordCount(ck); n > 6+2 {
			t.Errorf("chunk %d has %d tokens, exceeds budget+one input", i, n)
		}
	}
}

func TestNaiveMergeOverlap(t *testing.T) {
	pieces := []Piece{
		{Text: "alpha bravo charlie delta"},
		{Text: "echo foxtrot golf hotel"},
		{Text: "india juliet"},
	}
	cks := NaiveMerge(pieces, 4, "\n", 20, wordCount)
	if len(cks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %q", cks)
	}
	// Each chunk after the first opens with the tail fraction of the
	// previous chunk's de-tagged text.
	prev := []rune(section.StripTags(cks[1]))
	carry := string(prev[len(prev)*80/100:])
	if carry == "" {
		t.Fatal("expected non-empty overlap carry")
	}
	if !strings.HasPrefix(cks[2], carry) {
		t.Errorf("chunk %q does not start with carry %q", cks[2], carry)
	}
}

func TestNaiveMergeCustomDelimiterHardSplit(t *testing.T) {
	pieces := []Piece{{Text: "a\n\nb\n\nc"}}
	for _, budget := range []int{1, 128, 10000} {
		cks := NaiveMerge(pieces, budget, "`\n\n`", 0, wordCount)
		want := []string{"\na", "\nb", "\nc"}
		if len(cks) != len(want) {
			t.Fatalf("budget %d: got %q, want %q", budget, cks, want)
		}
		for i := range want {
			if cks[i] != want[i] {
				t.Errorf("budget %d: chunk %d = %q, want %q", budget, i, cks[i], want[i])
			}
		}
	}
}

func TestNaiveMergeCustomDelimiterLongestFirst(t *testing.T) {
	pieces := []Piece{{Text: "x##y#z"}}
	cks := NaiveMerge(pieces, 128, "`##``#`", 0, wordCount)
	// "##" must win over "#": three segments, no stray "#" remnants.
	want := []string{"\nx", "\ny", "\nz"}
	if len(cks) != len(want) {
		t.Fatalf("got %q, want %q", cks, want)
	}
	for i := range want {
		if cks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, cks[i], want[i])
		}
	}
}

func TestNaiveMergePositionTags(t *testing.T) {
	tag := section.PositionTag{Pages: []int{0}, Left: 1, Right: 2, Top: 3, Bottom: 4}.Encode()
	long := strings.Repeat("word ", 10)
	pieces := []Piece{{Text: long, Tag: tag}}
	cks := NaiveMerge(pieces, 128, "\n", 0, wordCount)
	if len(cks) != 2 || !strings.Contains(cks[1], tag) {
		t.Errorf("expected tag retained on long text: %q", cks)
	}

	short := []Piece{{Text: "tiny", Tag: tag}}
	cks = NaiveMerge(short, 128, "\n", 0, wordCount)
	if strings.Contains(cks[1], tag) {
		t.Errorf("expected tag dropped below 8 tokens: %q", cks[1])
	}
}

func TestNaiveMergeEmpty(t *testing.T) {
	if got := NaiveMerge(nil, 128, "\n", 0, wordCount); got != nil {
		t.Errorf("expected nil for empty input, got %q", got)
	}
}

func TestPiecesFromSections(t *testing.T) {
	tag := section.PositionTag{Pages: []int{1}, Left: 0, Right: 1, Top: 2, Bottom: 3}
	secs := []section.Section{
		section.Plain("no tag"),
		section.WithPosition("tagged", tag),
	}
	pieces := PiecesFromSections(secs)
	if pieces[0].Text != "no tag" || pieces[0].Tag != "" {
		t.Errorf("piece 0: %+v", pieces[0])
	}
	if pieces[1].Text != "tagged" || pieces[1].Tag != tag.Encode() {
		t.Errorf("piece 1: %+v", pieces[1])
	}
}

func TestNaiveMergeWithImagesCarriesImages(t *testing.T) {
	pieces := []Piece{
		{Text: "w1 w2 w3"},
		{Text: "w4 w5"},
		{Text: "w6"},
	}
	imgA := solid(2, 2, color.White)
	imgB := solid(2, 3, color.Black)
	images := []image.Image{imgA, nil, imgB}

	cks, imgs := NaiveMergeWithImages(pieces, images, 4, "\n。；！？", 0, wordCount)

	wantTexts := []string{"", "\nw1 w2 w3\nw4 w5", "\nw6"}
	if len(cks) != len(wantTexts) {
		t.Fatalf("got %d chunks %q, want %d", len(cks), cks, len(wantTexts))
	}
	for i := range wantTexts {
		if cks[i] != wantTexts[i] {
			t.Errorf("chunk %d = %q, want %q", i, cks[i], wantTexts[i])
		}
	}
	if imgs[0] != nil {
		t.Error("seed chunk should carry no image")
	}
	if imgs[1] != imgA {
		t.Error("merging a nil image must keep the existing one")
	}
	if imgs[2] != imgB {
		t.Error("the chunk opened by w6 should carry its own image")
	}
}

func TestNaiveMergeWithImagesStacksMerged(t *testing.T) {
	pieces := []Piece{{Text: "a"}, {Text: "b"}}
	images := []image.Image{solid(2, 2, color.White), solid(2, 3, color.Black)}

	_, imgs := NaiveMergeWithImages(pieces, images, 100, "\n", 0, wordCount)

	if len(imgs) != 2 {
		t.Fatalf("expected seed plus one chunk, got %d", len(imgs))
	}
	b := imgs[1].Bounds()
	if b.Dx() != 2 || b.Dy() != 5 {
		t.Errorf("stacked image = %dx%d, want 2x5", b.Dx(), b.Dy())
	}
}

func TestNaiveMergeWithImagesMismatch(t *testing.T) {
	cks, imgs := NaiveMergeWithImages([]Piece{{Text: "x"}}, nil, 128, "\n", 0, wordCount)
	if cks != nil || imgs != nil {
		t.Errorf("length mismatch should yield nil, got %q / %v", cks, imgs)
	}
}

func TestNaiveMergeDocxNoSeed(t *testing.T) {
	texts := []string{"p1 one two", "p2 three", "p3 four"}
	images := make([]image.Image, len(texts))

	cks, imgs := NaiveMergeDocx(texts, images, 3, "\n。；！？", wordCount)

	want := []string{"\np1 one two\np2 three", "\np3 four"}
	if len(cks) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(cks), cks, len(want))
	}
	for i := range want {
		if cks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, cks[i], want[i])
		}
	}
	if len(imgs) != len(cks) {
		t.Errorf("images out of step with chunks: %d vs %d", len(imgs), len(cks))
	}
}

func TestNaiveMergeDocxCustomDelimiter(t *testing.T) {
	cks, _ := NaiveMergeDocx([]string{"a##b##"}, []image.Image{nil}, 128, "\n`##`", wordCount)

	want := []string{"\na", "\nb"}
	if len(cks) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(cks), cks, len(want))
	}
	for i := range want {
		if cks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, cks[i], want[i])
		}
	}
}
