// Package config carries the caller-facing chunking configuration:
// defaults, then a TOML file, then environment overrides, env winning.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Chunking ChunkingConfig `toml:"chunking"`
	Context  ContextConfig  `toml:"context"`
}

type ChunkingConfig struct {
	// Token budget per chunk for the flat merger.
	ChunkTokenNum int `toml:"chunk_token_num"`
	// Delimiter spec; backtick-quoted substrings are literal hard-split
	// delimiters.
	Delimiter string `toml:"delimiter"`
	// Tail fraction carried into the next chunk, 0-99.
	OverlappedPercent int `toml:"overlapped_percent"`
	// Grouping depth for the tree and bucket mergers.
	Depth int `toml:"depth"`
	// flat, tree or hier; auto picks per detected structure.
	Strategy string `toml:"strategy"`
}

type ContextConfig struct {
	// Token budgets for neighbor context around tables and images,
	// 0 disables.
	TableContextSize int `toml:"table_context_size"`
	ImageContextSize int `toml:"image_context_size"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Chunking: ChunkingConfig{
			ChunkTokenNum:     128,
			Delimiter:         "\n。；！？",
			OverlappedPercent: 0,
			Depth:             1,
			Strategy:          "auto",
		},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Chunking.ChunkTokenNum = envInt("CHUNKGEST_CHUNK_TOKEN_NUM", cfg.Chunking.ChunkTokenNum)
	cfg.Chunking.Delimiter = envOr("CHUNKGEST_DELIMITER", cfg.Chunking.Delimiter)
	cfg.Chunking.OverlappedPercent = envInt("CHUNKGEST_OVERLAPPED_PERCENT", cfg.Chunking.OverlappedPercent)
	cfg.Chunking.Depth = envInt("CHUNKGEST_DEPTH", cfg.Chunking.Depth)
	cfg.Chunking.Strategy = envOr("CHUNKGEST_STRATEGY", cfg.Chunking.Strategy)
	cfg.Context.TableContextSize = envInt("CHUNKGEST_TABLE_CONTEXT_SIZE", cfg.Context.TableContextSize)
	cfg.Context.ImageContextSize = envInt("CHUNKGEST_IMAGE_CONTEXT_SIZE", cfg.Context.ImageContextSize)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Chunking.ChunkTokenNum <= 0 {
		return fmt.Errorf("chunk_token_num must be positive, got %d", c.Chunking.ChunkTokenNum)
	}
	if c.Chunking.OverlappedPercent < 0 || c.Chunking.OverlappedPercent >= 100 {
		return fmt.Errorf("overlapped_percent must be in [0,100), got %d", c.Chunking.OverlappedPercent)
	}
	if c.Chunking.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Chunking.Depth)
	}
	switch c.Chunking.Strategy {
	case "auto", "flat", "tree", "hier":
	default:
		return fmt.Errorf("unknown strategy %q", c.Chunking.Strategy)
	}
	if c.Context.TableContextSize < 0 || c.Context.ImageContextSize < 0 {
		return fmt.Errorf("context sizes must not be negative")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
