package app

import (
	"time"

	"github.com/hyperifyio/newsdigest/internal/extract"
	"github.com/hyperifyio/newsdigest/internal/feed"
	"github.com/hyperifyio/newsdigest/internal/sanitize"
	"github.com/hyperifyio/newsdigest/internal/summarize"
)

// Config holds runtime configuration for one run. Precedence is config file
// < environment < flags; merging happens in main.
type Config struct {
	// URL processes a single article page instead of a feed category.
	URL string
	// Category selects a feed catalog entry.
	Category string
	// MaxArticlesPerFeed caps the fan-out per feed before the core runs.
	MaxArticlesPerFeed int
	// Concurrency bounds parallel article processing.
	Concurrency int

	// ContentMaxChars caps extracted content length. Zero means uncapped.
	ContentMaxChars int
	// Summarize toggles whether summaries are produced at all.
	Summarize bool
	// SummaryMaxChars caps summary length.
	SummaryMaxChars int
	// SummaryMethod selects auto, extractive, keyword or lead.
	SummaryMethod string

	UserAgent string
	Timeout   time.Duration
	Verbose   bool

	Catalog  feed.Catalog
	Extract  extract.Options
	Sanitize sanitize.Options
}

// DefaultConfig returns the runtime defaults used when neither file, env nor
// flags override them.
func DefaultConfig() Config {
	return Config{
		MaxArticlesPerFeed: 5,
		Concurrency:        4,
		ContentMaxChars:    5000,
		Summarize:          true,
		SummaryMaxChars:    500,
		SummaryMethod:      string(summarize.MethodAuto),
		Timeout:            15 * time.Second,
		Catalog:            feed.DefaultCatalog(),
		Extract:            extract.DefaultOptions(),
		Sanitize:           sanitize.DefaultOptions(),
	}
}

// SummarizeOptions maps the config surface onto the summarizer options.
func (c Config) SummarizeOptions() summarize.Options {
	opts := summarize.DefaultOptions()
	if c.SummaryMaxChars > 0 {
		opts.MaxLength = c.SummaryMaxChars
	}
	if c.SummaryMethod != "" {
		opts.Method = summarize.Method(c.SummaryMethod)
	}
	return opts
}
