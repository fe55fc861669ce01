package lang

import (
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestIsEnglish(t *testing.T) {
	eng := []string{"Chapter One", "This is a sentence.", "Another line, here."}
	if !IsEnglish(eng) {
		t.Error("expected English samples to classify as English")
	}
	cn := []string{"第一章", "第二章", "总则"}
	if IsEnglish(cn) {
		t.Error("expected Chinese samples not to classify as English")
	}
	if IsEnglish(nil) {
		t.Error("expected empty input to be false")
	}
}

func TestIsChinese(t *testing.T) {
	if !IsChinese("第一章 总则") {
		t.Error("expected Chinese")
	}
	if IsChinese("plain english text") {
		t.Error("expected not Chinese")
	}
	if IsChinese("") {
		t.Error("expected empty to be false")
	}
}

func TestParseIndex(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"one", 1},
		{"TEN", 10},
		{"twenty-one", 21},
		{"一", 1},
		{"十", 10},
		{"十三", 13},
		{"二十", 20},
		{"三十五", 35},
		{"一百", 100},
		{"IV", 4},
		{"IX", 9},
		{"XII", 12},
		{"", -1},
		{"garbage", -1},
	}
	for _, c := range cases {
		if got := ParseIndex(c.in); got != c.want {
			t.Errorf("ParseIndex(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFindCodecUTF8(t *testing.T) {
	if got := FindCodec([]byte("plain ascii text")); got != "utf-8" {
		t.Errorf("FindCodec = %q, want utf-8", got)
	}
	if got := FindCodec([]byte("中文 utf-8 文本")); got != "utf-8" {
		t.Errorf("FindCodec = %q, want utf-8", got)
	}
}

func TestFindCodecGBK(t *testing.T) {
	raw, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("中文编码检测中文编码检测"))
	if err != nil {
		t.Fatal(err)
	}
	name := FindCodec(raw)
	if name == "utf-8" {
		t.Fatalf("FindCodec misdetected GB-encoded text as utf-8")
	}
	decoded := Decode(raw, name)
	if !IsChinese(string(decoded)) {
		t.Errorf("Decode(%q) did not round-trip Chinese text: %q", name, decoded)
	}
}

func TestNormalize(t *testing.T) {
	// Combining e + acute normalizes to the precomposed form.
	if got := Normalize("é"); got != "é" {
		t.Errorf("Normalize = %q", got)
	}
}
