package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/newsdigest/internal/extract"
	"github.com/hyperifyio/newsdigest/internal/feed"
	"github.com/hyperifyio/newsdigest/internal/fetch"
	"github.com/hyperifyio/newsdigest/internal/metrics"
	"github.com/hyperifyio/newsdigest/internal/sanitize"
	"github.com/hyperifyio/newsdigest/internal/summarize"
)

// ArticleRecord is the output contract: one processed article with its
// extraction and summarization metadata.
type ArticleRecord struct {
	Source      string    `json:"source,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published,omitempty"`

	Content         string           `json:"content"`
	ContentStrategy extract.Strategy `json:"content_strategy"`
	ContentSelector string           `json:"content_selector,omitempty"`

	Summary       string `json:"summary,omitempty"`
	SummaryMethod string `json:"summary_method,omitempty"`
}

// ErrUnknownCategory is returned when the requested category is not in the
// catalog.
var ErrUnknownCategory = errors.New("unknown feed category")

// App wires fetch, feeds, extraction and summarization for one run. It
// retains no state between articles; parallel processing needs no
// coordination beyond the fan-out bound.
type App struct {
	cfg     Config
	pages   *fetch.Client
	fetcher *feed.Fetcher
}

func New(cfg Config) *App {
	return &App{
		cfg: cfg,
		pages: &fetch.Client{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		},
		fetcher: feed.NewFetcher(cfg.UserAgent, cfg.Timeout),
	}
}

// Run processes either the single configured URL or every feed of the
// configured category. One article's failure never aborts its siblings.
func (a *App) Run(ctx context.Context) ([]ArticleRecord, error) {
	if a.cfg.URL != "" {
		rec, err := a.ProcessURL(ctx, a.cfg.URL)
		if err != nil {
			return nil, err
		}
		return []ArticleRecord{rec}, nil
	}
	return a.processCategory(ctx, a.cfg.Category)
}

func (a *App) processCategory(ctx context.Context, key string) ([]ArticleRecord, error) {
	category, ok := a.cfg.Catalog[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, key)
	}

	type job struct {
		source string
		item   feed.Item
	}
	var jobs []job
	for _, src := range category.Feeds {
		items, err := a.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			metrics.FetchErrors.WithLabelValues("feed").Inc()
			log.Warn().Err(err).Str("feed", src.Name).Msg("feed fetch failed; skipping")
			continue
		}
		if len(items) > a.cfg.MaxArticlesPerFeed {
			items = items[:a.cfg.MaxArticlesPerFeed]
		}
		for _, it := range items {
			jobs = append(jobs, job{source: src.Name, item: it})
		}
	}

	records := make([]ArticleRecord, len(jobs))
	sem := make(chan struct{}, a.concurrency())
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			records[i] = a.processItem(ctx, j.source, j.item)
		}(i, j)
	}
	wg.Wait()
	return records, nil
}

// processItem runs the core pipeline for one feed item. Fetch failures fall
// back to the content carried in the feed itself, so the batch stays useful.
func (a *App) processItem(ctx context.Context, source string, it feed.Item) ArticleRecord {
	rec := ArticleRecord{
		Source:      source,
		Title:       it.Title,
		Description: it.Description,
		Link:        it.Link,
		Published:   it.Published,
	}

	content, strategy, selector := a.articleContent(ctx, it)
	rec.Content = content
	rec.ContentStrategy = strategy
	rec.ContentSelector = selector

	if a.cfg.Summarize {
		res := summarize.Summarize(rec.Content, a.cfg.SummarizeOptions())
		rec.Summary = res.Text
		rec.SummaryMethod = string(res.Method)
		metrics.Summaries.WithLabelValues(string(res.Method)).Inc()
	}
	return rec
}

func (a *App) articleContent(ctx context.Context, it feed.Item) (string, extract.Strategy, string) {
	if it.Link == "" {
		if text := it.Content.String(); text != "" {
			return a.finishContent(text), extract.StrategyNone, ""
		}
		return extract.LimitedContent, extract.StrategyNone, ""
	}

	body, err := a.pages.Get(ctx, it.Link)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(fetchErrorKind(err)).Inc()
		log.Warn().Err(err).Str("url", it.Link).Msg("article fetch failed; using feed content")
		if text := it.Content.String(); text != "" {
			return a.finishContent(text), extract.StrategyNone, ""
		}
		return extract.LimitedContent, extract.StrategyNone, ""
	}

	art := extract.FromHTML(body, it.Link, a.cfg.Extract)
	metrics.Extractions.WithLabelValues(string(art.Strategy)).Inc()
	if art.Strategy == extract.StrategyNone {
		if text := it.Content.String(); text != "" {
			return a.finishContent(text), extract.StrategyNone, ""
		}
		return art.Content, art.Strategy, ""
	}
	return a.finishContent(art.Content), art.Strategy, art.Selector
}

// ProcessURL runs the pipeline for one page directly.
func (a *App) ProcessURL(ctx context.Context, url string) (ArticleRecord, error) {
	body, err := a.pages.Get(ctx, url)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(fetchErrorKind(err)).Inc()
		return ArticleRecord{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	art := extract.FromHTML(body, url, a.cfg.Extract)
	metrics.Extractions.WithLabelValues(string(art.Strategy)).Inc()

	rec := ArticleRecord{
		Title:           art.Title,
		Link:            url,
		Content:         art.Content,
		ContentStrategy: art.Strategy,
		ContentSelector: art.Selector,
	}
	if art.Strategy != extract.StrategyNone {
		rec.Content = a.finishContent(art.Content)
	}
	if a.cfg.Summarize {
		res := summarize.Summarize(rec.Content, a.cfg.SummarizeOptions())
		rec.Summary = res.Text
		rec.SummaryMethod = string(res.Method)
		metrics.Summaries.WithLabelValues(string(res.Method)).Inc()
	}
	return rec, nil
}

// SummarizeText runs the summarizer over caller-supplied raw text, skipping
// extraction entirely.
func (a *App) SummarizeText(text string) summarize.Result {
	res := summarize.Summarize(text, a.cfg.SummarizeOptions())
	metrics.Summaries.WithLabelValues(string(res.Method)).Inc()
	return res
}

// finishContent applies the post-extraction cleanup and the content cap.
func (a *App) finishContent(text string) string {
	out := sanitize.Clean(text, a.cfg.Sanitize)
	if a.cfg.ContentMaxChars > 0 {
		out = sanitize.Truncate(out, a.cfg.ContentMaxChars)
	}
	return out
}

func (a *App) concurrency() int {
	if a.cfg.Concurrency > 0 {
		return a.cfg.Concurrency
	}
	return 1
}

func fetchErrorKind(err error) string {
	var status *fetch.StatusError
	if errors.As(err, &status) {
		return "status"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "network"
}
