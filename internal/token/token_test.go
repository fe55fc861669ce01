package token

import "testing"

func TestCountEmpty(t *testing.T) {
	if got := (Estimator{}).Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}
}

func TestCountEnglish(t *testing.T) {
	// 10 words -> ~13 tokens at 1.33 per word.
	got := (Estimator{}).Count("the quick brown fox jumps over the lazy dog again")
	if got < 10 || got > 16 {
		t.Errorf("Count = %d, expected roughly 13", got)
	}
}

func TestCountCJK(t *testing.T) {
	// Five Han runes count one token each.
	got := (Estimator{}).Count("第一章总则")
	if got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
}

func TestCountDeterministic(t *testing.T) {
	e := Estimator{}
	s := "mixed 文本 with 中文 and english"
	a, b := e.Count(s), e.Count(s)
	if a != b {
		t.Errorf("Count not deterministic: %d vs %d", a, b)
	}
}

func TestTokenize(t *testing.T) {
	got := (Estimator{}).Tokenize("Hello, World! 你好")
	want := "hello world 你 好"
	if got != want {
		t.Errorf("Tokenize = %q, want %q", got, want)
	}
}

func TestFineGrained(t *testing.T) {
	e := Estimator{}
	got := e.FineGrained(e.Tokenize("abc123def"))
	want := "abc 123 def"
	if got != want {
		t.Errorf("FineGrained = %q, want %q", got, want)
	}
}
