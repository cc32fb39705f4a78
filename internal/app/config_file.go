package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/newsdigest/internal/extract"
	"github.com/hyperifyio/newsdigest/internal/feed"
)

// FileConfig is the yaml configuration schema. Nested sections map naturally
// to flags and environment variables.
type FileConfig struct {
	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		// Timeout is a Go duration string such as "15s".
		Timeout string `yaml:"timeout"`
	} `yaml:"fetch"`

	Feeds struct {
		MaxArticles int          `yaml:"maxArticles"`
		Concurrency int          `yaml:"concurrency"`
		Catalog     feed.Catalog `yaml:"catalog"`
	} `yaml:"feeds"`

	Content struct {
		MaxChars int `yaml:"maxChars"`
	} `yaml:"content"`

	Summary struct {
		Enable   *bool  `yaml:"enable"`
		MaxChars int    `yaml:"maxChars"`
		Method   string `yaml:"method"`
	} `yaml:"summary"`

	Extract struct {
		MinBlockChars      int                 `yaml:"minBlockChars"`
		MinBlocks          int                 `yaml:"minBlocks"`
		MinStructuredChars int                 `yaml:"minStructuredChars"`
		MaxBlockLinks      int                 `yaml:"maxBlockLinks"`
		SiteClasses        []extract.SiteClass `yaml:"siteClasses"`
	} `yaml:"extract"`

	Clean struct {
		DuplicateOverlap  float64 `yaml:"duplicateOverlap"`
		DuplicateMinChars int     `yaml:"duplicateMinChars"`
	} `yaml:"clean"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a yaml config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// ApplyFileConfig overlays file values onto cfg for fields still at their
// defaults, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	def := DefaultConfig()

	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.Timeout == def.Timeout && fc.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if cfg.MaxArticlesPerFeed == def.MaxArticlesPerFeed && fc.Feeds.MaxArticles > 0 {
		cfg.MaxArticlesPerFeed = fc.Feeds.MaxArticles
	}
	if cfg.Concurrency == def.Concurrency && fc.Feeds.Concurrency > 0 {
		cfg.Concurrency = fc.Feeds.Concurrency
	}
	if len(fc.Feeds.Catalog) > 0 {
		cfg.Catalog = fc.Feeds.Catalog
	}
	if cfg.ContentMaxChars == def.ContentMaxChars && fc.Content.MaxChars > 0 {
		cfg.ContentMaxChars = fc.Content.MaxChars
	}
	if fc.Summary.Enable != nil {
		cfg.Summarize = *fc.Summary.Enable
	}
	if cfg.SummaryMaxChars == def.SummaryMaxChars && fc.Summary.MaxChars > 0 {
		cfg.SummaryMaxChars = fc.Summary.MaxChars
	}
	if cfg.SummaryMethod == def.SummaryMethod && fc.Summary.Method != "" {
		cfg.SummaryMethod = fc.Summary.Method
	}

	if fc.Extract.MinBlockChars > 0 {
		cfg.Extract.MinBlockChars = fc.Extract.MinBlockChars
	}
	if fc.Extract.MinBlocks > 0 {
		cfg.Extract.MinBlocks = fc.Extract.MinBlocks
	}
	if fc.Extract.MinStructuredChars > 0 {
		cfg.Extract.MinStructuredChars = fc.Extract.MinStructuredChars
	}
	if fc.Extract.MaxBlockLinks > 0 {
		cfg.Extract.MaxBlockLinks = fc.Extract.MaxBlockLinks
	}
	if len(fc.Extract.SiteClasses) > 0 {
		cfg.Extract.SiteClasses = fc.Extract.SiteClasses
	}
	if fc.Clean.DuplicateOverlap > 0 {
		cfg.Sanitize.DuplicateOverlap = fc.Clean.DuplicateOverlap
	}
	if fc.Clean.DuplicateMinChars > 0 {
		cfg.Sanitize.DuplicateMinChars = fc.Clean.DuplicateMinChars
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
