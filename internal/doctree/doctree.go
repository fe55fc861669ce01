// Package doctree builds a depth-bounded hierarchy tree from leveled
// fragments and flattens it into chunks carrying their ancestor title path.
package doctree

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/chunkgest/internal/bullet"
	"github.com/dgallion1/chunkgest/internal/section"
)

// Leveled is a fragment annotated with its hierarchy level. Level 0 is
// reserved for the synthetic root; assigned fragment levels start at 1.
type Leveled struct {
	Level int
	Text  string
}

// Tree is an arena of nodes. Index 0 is the synthetic root at level 0;
// parents reference children by index, so the structure has no ownership
// cycles while the stack-based build stays unchanged.
type Tree struct {
	nodes []node
	depth int // deepest level that still forms its own node
}

type node struct {
	level    int
	texts    []string
	children []int
}

// NewTree returns a tree that groups at the given depth. Fragments deeper
// than depth fold into the nearest kept ancestor's text.
func NewTree(depth int) *Tree {
	return &Tree{nodes: []node{{level: 0}}, depth: depth}
}

// Build inserts the fragments in order using an explicit stack seeded with
// the root. A fragment beyond the depth limit appends to the current
// top-of-stack node; otherwise the stack pops to the nearest shallower node
// and a new child is attached there.
func (t *Tree) Build(lines []Leveled) {
	stack := []int{0}
	for _, ln := range lines {
		if ln.Level > t.depth {
			top := stack[len(stack)-1]
			t.nodes[top].texts = append(t.nodes[top].texts, ln.Text)
			continue
		}
		for len(stack) > 1 && ln.Level <= t.nodes[stack[len(stack)-1]].level {
			stack = stack[:len(stack)-1]
		}
		id := len(t.nodes)
		t.nodes = append(t.nodes, node{level: ln.Level, texts: []string{ln.Text}})
		parent := stack[len(stack)-1]
		t.nodes[parent].children = append(t.nodes[parent].children, id)
		stack = append(stack, id)
	}
}

// Flatten walks the tree depth-first in document order, accumulating the
// title path of ancestors within the depth limit. Each qualifying node
// contributes one chunk before its children are visited. Implemented with a
// work stack rather than recursion, so deeply nested input stays safe.
func (t *Tree) Flatten() []string {
	var out []string
	type frame struct {
		id     int
		titles []string
	}
	work := []frame{{0, nil}}
	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]
		n := t.nodes[f.id]

		if n.level == 0 && len(n.texts) > 0 {
			out = append(out, joinPath(f.titles, n.texts))
		}

		path := f.titles
		if n.level >= 1 && n.level <= t.depth {
			path = appendPath(f.titles, n.texts)
		}

		if n.level > t.depth && len(n.texts) > 0 {
			out = append(out, joinPath(path, n.texts))
		} else if len(n.children) == 0 && n.level >= 1 && n.level <= t.depth {
			// Header with no body: emit the title path so the heading
			// is not silently dropped.
			out = append(out, strings.Join(path, "\n"))
		}

		for i := len(n.children) - 1; i >= 0; i-- {
			work = append(work, frame{n.children[i], path})
		}
	}
	return out
}

func appendPath(titles, texts []string) []string {
	path := make([]string, 0, len(titles)+len(texts))
	path = append(path, titles...)
	return append(path, texts...)
}

func joinPath(titles, texts []string) string {
	return strings.Join(appendPath(titles, texts), "\n")
}

var pureNumericRe = regexp.MustCompile(`^[0-9]+$`)

// Merge assigns levels to the sections under the given style, builds the
// tree at the caller's depth, and returns the flattened chunks. A style of
// bullet.NoStyle degrades to the raw section texts.
func Merge(style int, sections []section.Section, depth int) []string {
	if len(sections) == 0 || style < 0 {
		out := make([]string, 0, len(sections))
		for _, s := range sections {
			out = append(out, s.Text)
		}
		return out
	}

	var lines []Leveled
	seen := map[int]bool{}
	for _, sec := range sections {
		visible := strings.TrimSpace(section.VisibleText(sec.Text))
		if sec.Text == "" || len([]rune(visible)) <= 1 || pureNumericRe.MatchString(visible) {
			continue
		}
		text := strings.TrimSpace(strings.ReplaceAll(sec.Text, "　", " "))
		if strings.Trim(text, "\n") == "" {
			continue
		}
		level := bullet.Level(style, text, sec.Layout) + 1
		lines = append(lines, Leveled{Level: level, Text: text})
		seen[level] = true
	}
	if len(lines) == 0 {
		return nil
	}

	distinct := make([]int, 0, len(seen))
	for l := range seen {
		distinct = append(distinct, l)
	}
	sort.Ints(distinct)

	target := distinct[len(distinct)-1]
	if depth <= len(distinct) {
		target = distinct[depth-1]
	}
	// Body fragments only become the grouping level when nothing else exists.
	if target == bullet.PatternCount(style)+2 && len(distinct) > 1 {
		target = distinct[len(distinct)-2]
	}

	tree := NewTree(target)
	tree.Build(lines)

	var out []string
	for _, ck := range tree.Flatten() {
		if ck != "" {
			out = append(out, ck)
		}
	}
	return out
}
