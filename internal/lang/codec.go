package lang

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

type codec struct {
	name string
	enc  encoding.Encoding
}

// Candidate codecs in preference order. UTF-8 is handled up front; the
// single-byte charmaps come last because they never fail to decode.
var codecs = []codec{
	{"gb18030", simplifiedchinese.GB18030},
	{"gbk", simplifiedchinese.GBK},
	{"big5", traditionalchinese.Big5},
	{"shift_jis", japanese.ShiftJIS},
	{"euc-jp", japanese.EUCJP},
	{"euc-kr", korean.EUCKR},
	{"utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{"utf-16be", unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
	{"windows-1252", charmap.Windows1252},
	{"latin-1", charmap.ISO8859_1},
}

// FindCodec guesses the charset of a raw text blob by trial decoding of the
// first KiB, returning the name of the first codec that produces clean UTF-8.
// Falls back to "utf-8".
func FindCodec(blob []byte) string {
	sample := blob
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	if utf8.Valid(sample) {
		return "utf-8"
	}
	for _, c := range codecs {
		if decodesCleanly(c.enc, sample) {
			return c.name
		}
	}
	return "utf-8"
}

// Decode converts a raw blob to UTF-8 using the named codec. Unknown names
// and decode failures return the blob unchanged.
func Decode(blob []byte, name string) []byte {
	if name == "utf-8" {
		return blob
	}
	for _, c := range codecs {
		if c.name != name {
			continue
		}
		out, err := c.enc.NewDecoder().Bytes(blob)
		if err != nil {
			return blob
		}
		return out
	}
	return blob
}

func decodesCleanly(enc encoding.Encoding, sample []byte) bool {
	out, err := enc.NewDecoder().Bytes(sample)
	if err != nil {
		return false
	}
	return utf8.Valid(out) && !bytes.ContainsRune(out, utf8.RuneError)
}
