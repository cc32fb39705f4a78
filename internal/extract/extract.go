// Package extract pulls the main readable content of a news-article page out
// of noisy HTML. An ordered cascade of independent heuristics is tried until
// one yields a validated block of paragraphs; when every stage fails the
// result carries a sentinel instead of an error, since paywalled and
// JS-rendered pages are an expected outcome.
package extract

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/newsdigest/internal/sanitize"
	"github.com/hyperifyio/newsdigest/internal/summarize"
)

// Strategy identifies which stage of the cascade produced the content.
type Strategy string

const (
	StrategyNone            Strategy = "none"
	StrategyStructuredData  Strategy = "structured_data"
	StrategySelectorCascade Strategy = "selector_cascade"
	StrategyArticleTag      Strategy = "article_tag"
	StrategyCommonSelectors Strategy = "common_selectors"
	StrategyMainTag         Strategy = "main_tag"
	StrategyBodyFallback    Strategy = "body_fallback"
)

// LimitedContent is the sentinel content returned when no stage succeeds.
// Downstream consumers key on the "limited" prefix, so it must stay stable.
const LimitedContent = "limited content available - read the full article at the source website"

// IsSentinel reports whether content is a failure sentinel rather than
// extracted article text. The prefix contract is shared with the
// summarizer's pass-through check.
func IsSentinel(content string) bool {
	return summarize.IsFailureSentinel(content)
}

// Article is the immutable result of one extraction call.
type Article struct {
	Title    string
	Content  string
	Strategy Strategy
	// Selector is the winning selector when Strategy is selector_cascade.
	Selector string
	Chars    int
}

// Options expose the tuned cascade thresholds. The defaults are pinned by
// tests; overriding them must not require a rebuild.
type Options struct {
	// MinBlockChars drops shorter texts as noise (captions, bylines).
	MinBlockChars int
	// MinBlocks is the surviving-paragraph count a stage needs to win.
	MinBlocks int
	// MinStructuredChars is the acceptance floor for an embedded article body.
	MinStructuredChars int
	// MaxBlockLinks rejects body-scan paragraphs with more embedded links.
	MaxBlockLinks int
	// SiteClasses overrides the compiled-in per-site selector lists.
	SiteClasses []SiteClass
}

// DefaultOptions returns the tuned extraction thresholds.
func DefaultOptions() Options {
	return Options{
		MinBlockChars:      50,
		MinBlocks:          3,
		MinStructuredChars: 200,
		MaxBlockLinks:      3,
	}
}

// StageResult records one cascade attempt for diagnostics.
type StageResult struct {
	Strategy Strategy
	Selector string
	Blocks   int
	Accepted bool
}

// candidate is the ordered paragraph sequence harvested by one stage. It is
// only retained when the stage's minimum block count is met.
type candidate struct {
	blocks   []string
	selector string
}

func (c *candidate) text() string {
	return strings.Join(c.blocks, "\n\n")
}

type stage interface {
	name() Strategy
	run(doc *goquery.Document) (*candidate, []StageResult)
}

// FromHTML extracts the article content of one page. The input bytes and URL
// are owned by this call; the parsed tree is mutated in place and discarded.
func FromHTML(input []byte, pageURL string, opts Options) Article {
	opts = withDefaults(opts)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil || doc == nil {
		return sentinelArticle("")
	}

	title := pageTitle(doc)

	// Embedded JSON payloads must be captured before the normalizer strips
	// script nodes from the tree.
	payloads := structuredPayloads(doc)
	Normalize(doc)

	for _, s := range stages(pageURL, payloads, opts) {
		cand, _ := s.run(doc)
		if cand == nil {
			continue
		}
		content := cand.text()
		return Article{
			Title:    title,
			Content:  content,
			Strategy: s.name(),
			Selector: cand.selector,
			Chars:    utf8.RuneCountInString(content),
		}
	}
	return sentinelArticle(title)
}

// Explain runs the full cascade without short-circuiting and reports every
// stage decision. Used by the debugextract tool and the cascade tests.
func Explain(input []byte, pageURL string, opts Options) []StageResult {
	opts = withDefaults(opts)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil || doc == nil {
		return nil
	}
	payloads := structuredPayloads(doc)
	Normalize(doc)

	var out []StageResult
	for _, s := range stages(pageURL, payloads, opts) {
		_, trace := s.run(doc)
		out = append(out, trace...)
	}
	return out
}

func stages(pageURL string, payloads []string, opts Options) []stage {
	classes := opts.SiteClasses
	if classes == nil {
		classes = DefaultSiteClasses()
	}
	out := []stage{
		&structuredStage{payloads: payloads, minChars: opts.MinStructuredChars},
	}
	host := hostOf(pageURL)
	for _, class := range classes {
		if class.matches(host) {
			class := class
			// Config-supplied classes may omit minBlocks; zero would accept
			// empty candidates.
			if class.MinBlocks <= 0 {
				class.MinBlocks = opts.MinBlocks
			}
			out = append(out, &cascadeStage{class: class, minChars: opts.MinBlockChars})
		}
	}
	out = append(out,
		&cascadeStage{class: genericSiteClass(opts.MinBlocks), minChars: opts.MinBlockChars},
		&articleStage{minChars: opts.MinBlockChars, minBlocks: opts.MinBlocks},
		&commonStage{minChars: opts.MinBlockChars, minBlocks: opts.MinBlocks},
		&mainStage{minChars: opts.MinBlockChars, minBlocks: opts.MinBlocks},
		&bodyStage{minChars: opts.MinBlockChars, minBlocks: opts.MinBlocks, maxLinks: opts.MaxBlockLinks},
	)
	return out
}

func sentinelArticle(title string) Article {
	return Article{
		Title:    title,
		Content:  LimitedContent,
		Strategy: StrategyNone,
		Chars:    0,
	}
}

func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := sanitize.Title(og); t != "" {
			return t
		}
	}
	return sanitize.Title(doc.Find("title").First().Text())
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u == nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.MinBlockChars <= 0 {
		opts.MinBlockChars = def.MinBlockChars
	}
	if opts.MinBlocks <= 0 {
		opts.MinBlocks = def.MinBlocks
	}
	if opts.MinStructuredChars <= 0 {
		opts.MinStructuredChars = def.MinStructuredChars
	}
	if opts.MaxBlockLinks <= 0 {
		opts.MaxBlockLinks = def.MaxBlockLinks
	}
	return opts
}
