// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// PartialFailurePolicy decides what a multi-call stage does when one of its
// calls fails: skip the failed unit and keep going, or abort the stage.
type PartialFailurePolicy string

const (
	PolicyContinue PartialFailurePolicy = "continue"
	PolicyAbort    PartialFailurePolicy = "abort"
)

// Validate reports whether p is a known policy.
func (p PartialFailurePolicy) Validate() error {
	switch p {
	case PolicyContinue, PolicyAbort:
		return nil
	default:
		return fmt.Errorf("unknown partial failure policy %q (want %q or %q)", p, PolicyContinue, PolicyAbort)
	}
}

// ExtractorKind selects how page text is pulled out of fetched HTML.
type ExtractorKind string

const (
	ExtractorText        ExtractorKind = "text"
	ExtractorReadability ExtractorKind = "readability"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero keeps the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with page requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxBodyBytes caps how much of a response body is read (default 10 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// LLMConfig holds settings for the generative text service.
type LLMConfig struct {
	// BaseURL is an OpenAI-compatible endpoint (e.g. "https://api.deepseek.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier sent with every request.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key. Usually supplied through the
	// environment or .secrets/llm-api-key instead of the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// RequestsPerMinute paces completion calls. Zero disables pacing.
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// Preset is a named site offered in the preset source menu.
type Preset struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	URL  string `json:"url" yaml:"url" mapstructure:"url"`
}

// CollectionConfig holds settings for source collection and aggregation.
type CollectionConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Extractor selects page text extraction: text or readability.
	Extractor ExtractorKind `json:"extractor" yaml:"extractor" mapstructure:"extractor"`

	// OnError is the policy applied when a single page fails to load.
	OnError PartialFailurePolicy `json:"on_error" yaml:"on_error" mapstructure:"on_error"`

	// Presets lists the sites offered by the preset menu.
	Presets []Preset `json:"presets" yaml:"presets" mapstructure:"presets"`
}

// WritingConfig holds settings for the suggestion and writing stages.
type WritingConfig struct {
	// Language is the language the article is written and refined in.
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// TopicCount, TitleCount and OutlineCount are the number of suggestions
	// requested from each suggestion stage.
	TopicCount   int `json:"topic_count" yaml:"topic_count" mapstructure:"topic_count"`
	TitleCount   int `json:"title_count" yaml:"title_count" mapstructure:"title_count"`
	OutlineCount int `json:"outline_count" yaml:"outline_count" mapstructure:"outline_count"`

	// OnError is the policy applied when a single section fails to generate.
	OnError PartialFailurePolicy `json:"on_error" yaml:"on_error" mapstructure:"on_error"`
}

// StoreConfig holds settings for the document store.
type StoreConfig struct {
	// OutputDir is the directory finished articles are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// FrontMatter writes a YAML front-matter block ahead of the article.
	FrontMatter bool `json:"front_matter" yaml:"front_matter" mapstructure:"front_matter"`

	// RenderHTML writes an HTML rendering next to the Markdown file.
	RenderHTML bool `json:"render_html" yaml:"render_html" mapstructure:"render_html"`

	// HistoryDB is the SQLite file that records stored documents. Empty disables it.
	HistoryDB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`
}

// PipelineOptions holds settings for the pipeline driver itself.
type PipelineOptions struct {
	// RefineFallback stores the unrefined draft when refinement fails
	// instead of aborting the run.
	RefineFallback bool `json:"refine_fallback" yaml:"refine_fallback" mapstructure:"refine_fallback"`

	// MaxRestarts bounds how many times "revise" may restart the pipeline.
	// Zero means unlimited.
	MaxRestarts int `json:"max_restarts" yaml:"max_restarts" mapstructure:"max_restarts"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// File, when set, receives a copy of every log line.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// Config groups every setting of the article pipeline. It is built once at
// startup and passed into constructors; nothing reads it globally.
type Config struct {
	LLM        LLMConfig        `json:"llm" yaml:"llm" mapstructure:"llm"`
	Collection CollectionConfig `json:"collection" yaml:"collection" mapstructure:"collection"`
	Writing    WritingConfig    `json:"writing" yaml:"writing" mapstructure:"writing"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Pipeline   PipelineOptions  `json:"pipeline" yaml:"pipeline" mapstructure:"pipeline"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultPresets is the preset site list offered when none is configured.
var DefaultPresets = []Preset{
	{Name: "36Kr", URL: "https://www.36kr.com"},
	{Name: "TechCrunch", URL: "https://www.techcrunch.com"},
	{Name: "The Verge", URL: "https://www.theverge.com"},
	{Name: "Engadget", URL: "https://www.engadget.com"},
	{Name: "Wired", URL: "https://www.wired.com"},
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			BaseURL:     "https://api.deepseek.com/v1",
			Model:       "deepseek-chat",
			Temperature: 0.7,
		},
		Collection: CollectionConfig{
			HTTPConfig: HTTPConfig{
				Timeout:      30 * time.Second,
				UserAgent:    "article-engine/0.1",
				MaxBodyBytes: 10 << 20,
			},
			Extractor: ExtractorText,
			OnError:   PolicyContinue,
			Presets:   append([]Preset(nil), DefaultPresets...),
		},
		Writing: WritingConfig{
			Language:     "English",
			TopicCount:   3,
			TitleCount:   5,
			OutlineCount: 5,
			OnError:      PolicyAbort,
		},
		Store: StoreConfig{
			OutputDir: "articles",
			HistoryDB: "articles/history.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings that would otherwise fail late in a run.
func (c Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if err := c.Collection.OnError.Validate(); err != nil {
		return fmt.Errorf("collection.on_error: %w", err)
	}
	if err := c.Writing.OnError.Validate(); err != nil {
		return fmt.Errorf("writing.on_error: %w", err)
	}
	switch c.Collection.Extractor {
	case ExtractorText, ExtractorReadability:
	default:
		return fmt.Errorf("collection.extractor: unknown extractor %q", c.Collection.Extractor)
	}
	if c.Store.OutputDir == "" {
		return fmt.Errorf("store.output_dir is required")
	}
	return nil
}
