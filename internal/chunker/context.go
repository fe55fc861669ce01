package chunker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/chunkgest/internal/section"
	"github.com/dgallion1/chunkgest/internal/token"
)

var sentenceEndRe = regexp.MustCompile(`[.。！？!?；;：:\n]`)

// AttachMediaContext stitches neighboring text into table and image chunks.
// Chunks with position metadata are first stable-sorted by page, top, left
// and original index; unpositioned chunks trail in original order. For each
// table/image chunk the scan runs strictly backward then forward through
// text-only neighbors, stopping hard at the first non-text chunk, trimming
// the last contribution at sentence boundaries to fit the token budget.
// When any chunk carried position metadata, the returned slice is permuted
// into position order.
func AttachMediaContext(chunks []section.Chunk, tableContextSize, imageContextSize int, tok token.Tokenizer) []section.Chunk {
	if len(chunks) == 0 || (tableContextSize <= 0 && imageContextSize <= 0) {
		return chunks
	}

	type posKey struct {
		idx, page, top, left int
	}
	var positioned []posKey
	var unpositioned []int
	for i, ck := range chunks {
		if len(ck.Positions) > 0 && len(ck.Positions[0].Pages) > 0 {
			p := ck.Positions[0]
			positioned = append(positioned, posKey{i, p.Pages[0], int(p.Top), int(p.Left)})
		} else {
			unpositioned = append(unpositioned, i)
		}
	}

	order := make([]int, 0, len(chunks))
	if len(positioned) > 0 {
		sort.SliceStable(positioned, func(a, b int) bool {
			pa, pb := positioned[a], positioned[b]
			if pa.page != pb.page {
				return pa.page < pb.page
			}
			if pa.top != pb.top {
				return pa.top < pb.top
			}
			if pa.left != pb.left {
				return pa.left < pb.left
			}
			return pa.idx < pb.idx
		})
		for _, p := range positioned {
			order = append(order, p.idx)
		}
		order = append(order, unpositioned...)
	} else {
		for i := range chunks {
			order = append(order, i)
		}
	}

	for sortedPos, idx := range order {
		ck := &chunks[idx]
		var budget int
		switch {
		case isImageChunk(ck):
			budget = imageContextSize
		case isTableChunk(ck):
			budget = tableContextSize
		}
		if budget <= 0 {
			continue
		}

		var prevCtx []string
		remaining := budget
		for p := sortedPos - 1; p >= 0 && remaining > 0; p-- {
			neighbor := &chunks[order[p]]
			if !isTextChunk(neighbor) {
				break
			}
			txt := neighbor.Text
			if txt == "" {
				continue
			}
			tks := tok.Count(txt)
			if tks <= 0 {
				continue
			}
			if tks > remaining {
				txt = trimToTokens(txt, remaining, true, tok)
				tks = tok.Count(txt)
			}
			prevCtx = append(prevCtx, txt)
			remaining -= tks
		}
		reverse(prevCtx)

		var nextCtx []string
		remaining = budget
		for p := sortedPos + 1; p < len(order) && remaining > 0; p++ {
			neighbor := &chunks[order[p]]
			if !isTextChunk(neighbor) {
				break
			}
			txt := neighbor.Text
			if txt == "" {
				continue
			}
			tks := tok.Count(txt)
			if tks <= 0 {
				continue
			}
			if tks > remaining {
				txt = trimToTokens(txt, remaining, false, tok)
				tks = tok.Count(txt)
			}
			nextCtx = append(nextCtx, txt)
			remaining -= tks
		}

		if len(prevCtx) == 0 && len(nextCtx) == 0 {
			continue
		}

		pieces := append([]string{}, prevCtx...)
		if ck.Text != "" {
			pieces = append(pieces, ck.Text)
		}
		pieces = append(pieces, nextCtx...)
		combined := strings.Join(pieces, "\n")

		if combined != ck.Text {
			ck.Text = combined
			ck.TokenCount = tok.Count(combined)
			ck.LightTokens = tok.Tokenize(combined)
			ck.FineTokens = tok.FineGrained(ck.LightTokens)
		}
	}

	if len(positioned) > 0 {
		permuted := make([]section.Chunk, len(chunks))
		for i, idx := range order {
			permuted[i] = chunks[idx]
		}
		return permuted
	}
	return chunks
}

func isImageChunk(ck *section.Chunk) bool {
	if ck.DocType == "image" {
		return true
	}
	return ck.Image != nil && strings.TrimSpace(ck.Text) == ""
}

func isTableChunk(ck *section.Chunk) bool {
	return ck.DocType == "table"
}

func isTextChunk(ck *section.Chunk) bool {
	return !isImageChunk(ck) && !isTableChunk(ck)
}

// splitSentences cuts text after every sentence-ending mark, keeping the
// mark attached to its sentence.
func splitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		out = append(out, text[last:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, text[last:])
	}
	return out
}

// trimToTokens keeps whole sentences up to the token budget, from the tail
// when fromTail is set (context preceding a media chunk) or from the head
// otherwise. One sentence may exceed the budget so the result is never
// empty for non-empty input.
func trimToTokens(text string, budget int, fromTail bool, tok token.Tokenizer) string {
	if budget <= 0 || text == "" {
		return ""
	}
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if fromTail {
		reverse(sentences)
	}
	var collected []string
	remaining := budget
	for _, s := range sentences {
		if remaining <= 0 {
			break
		}
		tks := tok.Count(s)
		if tks <= 0 {
			continue
		}
		collected = append(collected, s)
		remaining -= tks
	}
	if fromTail {
		reverse(collected)
	}
	return strings.Join(collected, "")
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
