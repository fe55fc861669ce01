package chunker

import (
	"regexp"
	"strings"

	"github.com/dgallion1/chunkgest/internal/bullet"
	"github.com/dgallion1/chunkgest/internal/section"
	"github.com/dgallion1/chunkgest/internal/token"
)

// Token ceiling for coalescing lone body fragments into a shared group.
const singletonCeiling = 218

var (
	hierNumericRe = regexp.MustCompile(`^[0-9]+$`)
	tagSuffixRe   = regexp.MustCompile(`@@[0-9].*`)
)

// HierarchicalMerge groups sections without building an explicit tree: it
// buckets section indices by level, then walks the buckets from the least
// structurally significant upward, attaching to each started group the
// nearest preceding section of every other level via binary search over the
// sorted index lists. Groups come back in ascending document order.
// Lone body fragments are coalesced greedily under a fixed token ceiling so
// that unstructured stretches do not degenerate into one-line chunks.
func HierarchicalMerge(style int, sections []section.Section, depth int, count token.Counter) [][]string {
	if len(sections) == 0 || style < 0 {
		return nil
	}

	kept := sections[:0:0]
	for _, sec := range sections {
		visible := strings.TrimSpace(section.VisibleText(sec.Text))
		if sec.Text == "" || len([]rune(visible)) <= 1 || hierNumericRe.MatchString(visible) {
			continue
		}
		kept = append(kept, sec)
	}
	if len(kept) == 0 {
		return nil
	}

	size := bullet.PatternCount(style)
	buckets := make([][]int, size+2)
	for i, sec := range kept {
		lvl := bullet.Level(style, sec.Text, sec.Layout)
		buckets[lvl] = append(buckets[lvl], i)
	}
	texts := make([]string, len(kept))
	for i, sec := range kept {
		texts[i] = sec.Text
	}

	// Reverse so bucket 0 holds the least significant level; the ancestor
	// lookup below then walks toward more significant levels.
	rev := make([][]int, len(buckets))
	for i := range buckets {
		rev[i] = buckets[len(buckets)-1-i]
	}

	var groups [][]int
	read := make([]bool, len(texts))
	limit := depth
	if limit > len(rev) {
		limit = len(rev)
	}
	for i := 0; i < limit; i++ {
		for _, j := range rev[i] {
			if read[j] {
				continue
			}
			read[j] = true
			groups = append(groups, []int{j})
			if i+1 == len(rev)-1 {
				continue
			}
			last := groups[len(groups)-1]
			for ii := i + 1; ii < len(rev); ii++ {
				jj := nearestBelow(rev[ii], j)
				if jj < 0 {
					continue
				}
				// Replace the tail only when the found index moves
				// forward; keeps group indices descending.
				if rev[ii][jj] > last[len(last)-1] {
					last = last[:len(last)-1]
				}
				last = append(last, rev[ii][jj])
			}
			groups[len(groups)-1] = last
			for _, ii := range last {
				read[ii] = true
			}
		}
	}
	if len(groups) == 0 {
		return nil
	}

	// Descending index order back to document order.
	ordered := make([][]string, len(groups))
	for i, g := range groups {
		out := make([]string, len(g))
		for k := range g {
			out[k] = texts[g[len(g)-1-k]]
		}
		ordered[i] = out
	}

	res := [][]string{{}}
	num := []int{0}
	for _, ck := range ordered {
		if len(ck) == 1 {
			n := count(tagSuffixRe.ReplaceAllString(ck[0], ""))
			if n+num[len(num)-1] < singletonCeiling {
				res[len(res)-1] = append(res[len(res)-1], ck[0])
				num[len(num)-1] += n
				continue
			}
		}
		res = append(res, ck)
		if len(ck) == 1 {
			num = append(num, count(tagSuffixRe.ReplaceAllString(ck[0], "")))
		} else {
			num = append(num, singletonCeiling)
		}
	}
	return res
}

// nearestBelow returns the position of the largest element of arr that is
// at most target, or -1. arr is sorted ascending and never contains target.
func nearestBelow(arr []int, target int) int {
	if len(arr) == 0 {
		return -1
	}
	if target > arr[len(arr)-1] {
		return len(arr) - 1
	}
	if target < arr[0] {
		return -1
	}
	s, e := 0, len(arr)
	for e-s > 1 {
		i := (e + s) / 2
		if target > arr[i] {
			s = i
		} else {
			e = i
		}
	}
	return s
}
