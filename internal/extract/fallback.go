package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/newsdigest/internal/sanitize"
)

// commonContentSelectors are generic content containers seen across many
// layouts, tried after the site-class cascades fail.
var commonContentSelectors = []string{
	"[itemprop='articleBody']",
	".articleBody",
	".article-body",
	".article__body",
	".article-content",
	".article-text",
	".post-content",
	".entry-content",
	".story-body",
	".content-body",
	".news-content",
	"#article-body",
	".td-post-content",
}

// navNoiseWords mark paragraphs that are navigation or legal chrome rather
// than article prose.
var navNoiseWords = []string{
	"cookie", "privacy", "terms", "login", "subscribe", "menu",
}

// articleStage scans the first article-tagged subtree, pruning nested asides
// and figures before counting paragraphs.
type articleStage struct {
	minChars  int
	minBlocks int
}

func (a *articleStage) name() Strategy { return StrategyArticleTag }

func (a *articleStage) run(doc *goquery.Document) (*candidate, []StageResult) {
	article := doc.Find("article").First()
	if article.Length() == 0 {
		return nil, []StageResult{{Strategy: a.name()}}
	}
	article.Find("aside, figure, figcaption").Remove()
	blocks := collectBlocks(article.Find("p"), a.minChars)
	accepted := len(blocks) >= a.minBlocks
	trace := []StageResult{{Strategy: a.name(), Blocks: len(blocks), Accepted: accepted}}
	if !accepted {
		return nil, trace
	}
	return &candidate{blocks: blocks}, trace
}

// commonStage tries the generic content-container selectors in order.
type commonStage struct {
	minChars  int
	minBlocks int
}

func (c *commonStage) name() Strategy { return StrategyCommonSelectors }

func (c *commonStage) run(doc *goquery.Document) (*candidate, []StageResult) {
	var trace []StageResult
	for _, sel := range commonContentSelectors {
		container := doc.Find(sel)
		if container.Length() == 0 {
			continue
		}
		blocks := collectBlocks(container.Find("p"), c.minChars)
		accepted := len(blocks) >= c.minBlocks
		trace = append(trace, StageResult{
			Strategy: c.name(),
			Selector: sel,
			Blocks:   len(blocks),
			Accepted: accepted,
		})
		if accepted {
			return &candidate{blocks: blocks, selector: sel}, trace
		}
	}
	if trace == nil {
		trace = []StageResult{{Strategy: c.name()}}
	}
	return nil, trace
}

// mainStage scans the first main-tagged subtree.
type mainStage struct {
	minChars  int
	minBlocks int
}

func (m *mainStage) name() Strategy { return StrategyMainTag }

func (m *mainStage) run(doc *goquery.Document) (*candidate, []StageResult) {
	main := doc.Find("main").First()
	if main.Length() == 0 {
		return nil, []StageResult{{Strategy: m.name()}}
	}
	blocks := collectBlocks(main.Find("p"), m.minChars)
	accepted := len(blocks) >= m.minBlocks
	trace := []StageResult{{Strategy: m.name(), Blocks: len(blocks), Accepted: accepted}}
	if !accepted {
		return nil, trace
	}
	return &candidate{blocks: blocks}, trace
}

// bodyStage is the unrestricted last resort: every paragraph in the document
// body, individually validated by length, the absence of navigational
// keywords, and a cap on embedded links that excludes link-farm blocks.
type bodyStage struct {
	minChars  int
	minBlocks int
	maxLinks  int
}

func (b *bodyStage) name() Strategy { return StrategyBodyFallback }

func (b *bodyStage) run(doc *goquery.Document) (*candidate, []StageResult) {
	var blocks []string
	doc.Find("body p").Each(func(_ int, s *goquery.Selection) {
		text := sanitize.Collapse(s.Text())
		if utf8.RuneCountInString(text) < b.minChars {
			return
		}
		lower := strings.ToLower(text)
		for _, w := range navNoiseWords {
			if strings.Contains(lower, w) {
				return
			}
		}
		if s.Find("a").Length() > b.maxLinks {
			return
		}
		blocks = append(blocks, text)
	})
	accepted := len(blocks) >= b.minBlocks
	trace := []StageResult{{Strategy: b.name(), Blocks: len(blocks), Accepted: accepted}}
	if !accepted {
		return nil, trace
	}
	return &candidate{blocks: blocks}, trace
}
