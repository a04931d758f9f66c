package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete actsum configuration
type Config struct {
	Thresholds  ThresholdConfig   `yaml:"thresholds" json:"thresholds"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// ThresholdConfig names the corpus-specific tuning parameters of the parser.
// These are heuristics fitted to the companion-paper corpus, not universal
// laws, which is why they are configurable rather than embedded literals.
type ThresholdConfig struct {
	// MaxStructuralLineLen is the line length under which a quarter or amount
	// token anywhere in the line marks the line as structural.
	MaxStructuralLineLen int `yaml:"max_structural_line_len" json:"max_structural_line_len"`

	// TokenPrefixWindow is how close to the line start a quarter or amount
	// token must begin for a long line to still count as structural.
	TokenPrefixWindow int `yaml:"token_prefix_window" json:"token_prefix_window"`

	// LookaheadLines bounds the forward scan that separates footnotes from
	// the start of narrative prose.
	LookaheadLines int `yaml:"lookahead_lines" json:"lookahead_lines"`

	// PageNumberMin and PageNumberMax bound the standalone numbers treated
	// as page-break artifacts inside act blocks.
	PageNumberMin int `yaml:"page_number_min" json:"page_number_min"`
	PageNumberMax int `yaml:"page_number_max" json:"page_number_max"`

	// FootnoteMarkerMax bounds the standalone numbers treated as footnote
	// markers in the header area.
	FootnoteMarkerMax int `yaml:"footnote_marker_max" json:"footnote_marker_max"`

	// MinQuoteLen is the minimum quotation length kept as a label.
	MinQuoteLen int `yaml:"min_quote_len" json:"min_quote_len"`

	// AttributionWindow, SourceWindow and DateWindow are the character spans
	// searched before a quotation for its source and date.
	AttributionWindow int `yaml:"attribution_window" json:"attribution_window"`
	SourceWindow      int `yaml:"source_window" json:"source_window"`
	DateWindow        int `yaml:"date_window" json:"date_window"`
}

// CacheConfig controls the parse-result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// LLMConfig controls the optional report summarizer
type LLMConfig struct {
	Provider          string  `yaml:"provider" json:"provider"` // "openai", "ollama", "" (disabled)
	Model             string  `yaml:"model" json:"model"`
	APIKey            string  `yaml:"-" json:"-"` // From environment only, never persisted
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	Timeout           int     `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// DefaultConfig returns the configuration tuned for the companion-paper corpus
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			MaxStructuralLineLen: 80,
			TokenPrefixWindow:    5,
			LookaheadLines:       30,
			PageNumberMin:        17,
			PageNumberMax:        95,
			FootnoteMarkerMax:    30,
			MinQuoteLen:          15,
			AttributionWindow:    300,
			SourceWindow:         200,
			DateWindow:           150,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:          "", // Disabled by default
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "actsum-cache")
	}
	return filepath.Join(home, ".actsum", "cache")
}
