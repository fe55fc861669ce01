// Package pipeline wires the chunking stages together: parse, preprocess,
// classify, merge, assemble, attach media context. Everything runs
// synchronously in the caller's goroutine; the collaborating packages do
// the real work.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/chunkgest/internal/bullet"
	"github.com/dgallion1/chunkgest/internal/chunker"
	"github.com/dgallion1/chunkgest/internal/config"
	"github.com/dgallion1/chunkgest/internal/doctree"
	"github.com/dgallion1/chunkgest/internal/lang"
	"github.com/dgallion1/chunkgest/internal/parser"
	"github.com/dgallion1/chunkgest/internal/section"
	"github.com/dgallion1/chunkgest/internal/token"
)

// Engine runs the chunking pipeline under a fixed configuration.
type Engine struct {
	cfg config.Config
	tok token.Tokenizer
	log *slog.Logger
}

func New(cfg config.Config, tok token.Tokenizer, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: cfg, tok: tok, log: log}
}

// Result is the outcome of one document run.
type Result struct {
	Style    int             `json:"style"`
	English  bool            `json:"english"`
	Strategy string          `json:"strategy"`
	Chunks   []section.Chunk `json:"chunks"`
}

// ChunkFile runs the pipeline over a file on disk.
func (e *Engine) ChunkFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return e.Chunk(f, filepath.Base(path))
}

// Chunk parses the document, detects its numbering structure, merges the
// sections under the configured strategy and returns finalized chunks.
func (e *Engine) Chunk(r io.Reader, filename string) (*Result, error) {
	secs, err := e.parse(r, filename)
	if err != nil {
		return nil, err
	}

	english := lang.IsEnglish(sectionTexts(secs))
	secs = parser.RemoveContentsTable(secs, english)
	secs = parser.MakeColonAsTitle(secs)

	style := bullet.Classify(sectionTexts(secs))
	strategy := e.cfg.Chunking.Strategy
	if strategy == "auto" {
		if style == bullet.NoStyle {
			strategy = "flat"
		} else {
			strategy = "tree"
		}
	}
	e.log.Info("document classified",
		"file", filename, "sections", len(secs),
		"style", style, "english", english, "strategy", strategy)

	ck := e.cfg.Chunking
	var pieces []chunker.Piece
	switch strategy {
	case "tree":
		for _, t := range doctree.Merge(style, secs, ck.Depth) {
			pieces = append(pieces, chunker.Piece{Text: t})
		}
	case "hier":
		for _, group := range chunker.HierarchicalMerge(style, secs, ck.Depth, e.tok.Count) {
			if len(group) == 0 {
				continue
			}
			pieces = append(pieces, chunker.Piece{Text: strings.Join(group, "\n")})
		}
	default:
		pieces = chunker.PiecesFromSections(secs)
	}

	merged := chunker.NaiveMerge(pieces, ck.ChunkTokenNum, ck.Delimiter, ck.OverlappedPercent, e.tok.Count)
	chunks := chunker.Assemble(merged, e.tok, nil)
	chunks = chunker.AttachMediaContext(chunks,
		e.cfg.Context.TableContextSize, e.cfg.Context.ImageContextSize, e.tok)

	e.log.Info("document chunked", "file", filename, "chunks", len(chunks))
	return &Result{
		Style:    style,
		English:  english,
		Strategy: strategy,
		Chunks:   chunks,
	}, nil
}

// Classification reports the structure detected in a document without
// chunking it.
type Classification struct {
	Style         int  `json:"style"`
	QuestionStyle int  `json:"question_style"`
	English       bool `json:"english"`
	Sections      int  `json:"sections"`
}

// Classify parses the document and reports its numbering structure.
func (e *Engine) Classify(r io.Reader, filename string) (*Classification, error) {
	secs, err := e.parse(r, filename)
	if err != nil {
		return nil, err
	}
	texts := sectionTexts(secs)
	qStyle, _ := bullet.ClassifyQuestions(texts)
	return &Classification{
		Style:         bullet.Classify(texts),
		QuestionStyle: qStyle,
		English:       lang.IsEnglish(texts),
		Sections:      len(secs),
	}, nil
}

func (e *Engine) parse(r io.Reader, filename string) ([]section.Section, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	secs, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return secs, nil
}

func sectionTexts(secs []section.Section) []string {
	out := make([]string, 0, len(secs))
	for _, s := range secs {
		out = append(out, section.VisibleText(s.Text))
	}
	return out
}
