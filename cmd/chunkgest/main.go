package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/chunkgest/internal/config"
	"github.com/dgallion1/chunkgest/internal/pipeline"
	"github.com/dgallion1/chunkgest/internal/section"
	"github.com/dgallion1/chunkgest/internal/token"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chunkgest",
		Short: "Structure-aware document chunking",
		Long: `Chunkgest splits documents into retrieval-sized chunks along their
detected structure.

It classifies the document's numbering style (Chinese legal, numeric
outline, Western chapters, Markdown headings), merges sections under a
tree, bucket or flat strategy, and emits token-bounded chunks with page
positions preserved.`,
		Version: version,
	}

	rootCmd.AddCommand(chunkCmd())
	rootCmd.AddCommand(classifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEngine(cmd *cobra.Command) (*pipeline.Engine, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetInt("chunk-token-num"); v > 0 {
		cfg.Chunking.ChunkTokenNum = v
	}
	if v, _ := cmd.Flags().GetString("delimiter"); v != "" {
		cfg.Chunking.Delimiter = v
	}
	if cmd.Flags().Changed("overlapped-percent") {
		cfg.Chunking.OverlappedPercent, _ = cmd.Flags().GetInt("overlapped-percent")
	}
	if v, _ := cmd.Flags().GetInt("depth"); v > 0 {
		cfg.Chunking.Depth = v
	}
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		cfg.Chunking.Strategy = v
	}
	if cmd.Flags().Changed("table-context-size") {
		cfg.Context.TableContextSize, _ = cmd.Flags().GetInt("table-context-size")
	}
	if cmd.Flags().Changed("image-context-size") {
		cfg.Context.ImageContextSize, _ = cmd.Flags().GetInt("image-context-size")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logLevel := slog.LevelInfo
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		logLevel = slog.LevelError
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	return pipeline.New(cfg, token.Estimator{}, log), nil
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "TOML config file")
	cmd.Flags().Bool("quiet", false, "log errors only")
}

func chunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk <file>",
		Short: "Split a document into structure-aware chunks",
		Long: `Split a document into retrieval-sized chunks and print them as JSON.

Example:
  chunkgest chunk manual.pdf
  chunkgest chunk handbook.md --strategy tree --depth 2
  chunkgest chunk notes.txt --delimiter '` + "`\\n\\n`" + `'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(cmd)
			if err != nil {
				return err
			}
			res, err := eng.ChunkFile(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), chunkOutput{
				Style:    res.Style,
				English:  res.English,
				Strategy: res.Strategy,
				Chunks:   viewChunks(res.Chunks),
			})
		},
	}
	addConfigFlags(cmd)
	cmd.Flags().Int("chunk-token-num", 0, "token budget per chunk")
	cmd.Flags().String("delimiter", "", "delimiter spec; backtick-quoted literals hard-split")
	cmd.Flags().Int("overlapped-percent", 0, "tail fraction carried between chunks, 0-99")
	cmd.Flags().Int("depth", 0, "grouping depth for tree and hier strategies")
	cmd.Flags().String("strategy", "", "auto, flat, tree or hier")
	cmd.Flags().Int("table-context-size", 0, "token budget for context around table chunks")
	cmd.Flags().Int("image-context-size", 0, "token budget for context around image chunks")
	return cmd
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Report the numbering structure detected in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(cmd)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			cls, err := eng.Classify(f, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cls)
		},
	}
	addConfigFlags(cmd)
	return cmd
}

// chunkView is the JSON shape of one output chunk. Images are reported by
// presence, not pixel payload.
type chunkView struct {
	Text       string                `json:"text"`
	TokenCount int                   `json:"token_count"`
	Positions  []section.PositionTag `json:"positions,omitempty"`
	DocType    string                `json:"doc_type,omitempty"`
	Parent     string                `json:"parent,omitempty"`
	HasImage   bool                  `json:"has_image,omitempty"`
}

type chunkOutput struct {
	Style    int         `json:"style"`
	English  bool        `json:"english"`
	Strategy string      `json:"strategy"`
	Chunks   []chunkView `json:"chunks"`
}

func viewChunks(chunks []section.Chunk) []chunkView {
	out := make([]chunkView, 0, len(chunks))
	for _, ck := range chunks {
		out = append(out, chunkView{
			Text:       ck.Text,
			TokenCount: ck.TokenCount,
			Positions:  ck.Positions,
			DocType:    ck.DocType,
			Parent:     ck.Parent,
			HasImage:   ck.Image != nil,
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
