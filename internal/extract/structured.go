package extract

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"

	"github.com/hyperifyio/newsdigest/internal/sanitize"
)

// structuredPayloads collects the raw text of every embedded ld+json script
// block. Must run before Normalize strips script nodes.
func structuredPayloads(doc *goquery.Document) []string {
	var out []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// structuredStage reads machine-readable article bodies embedded in the page.
// This is the highest-trust source: it is authored for machine consumption
// and rarely polluted by boilerplate, so the first body long enough wins
// outright and short-circuits the rest of the cascade.
type structuredStage struct {
	payloads []string
	minChars int
}

func (s *structuredStage) name() Strategy { return StrategyStructuredData }

func (s *structuredStage) run(_ *goquery.Document) (*candidate, []StageResult) {
	for _, payload := range s.payloads {
		body := articleBody(payload)
		if body == "" {
			continue
		}
		body = sanitize.Collapse(body)
		if utf8.RuneCountInString(body) >= s.minChars {
			return &candidate{blocks: []string{body}},
				[]StageResult{{Strategy: s.name(), Blocks: 1, Accepted: true}}
		}
	}
	return nil, []StageResult{{Strategy: s.name()}}
}

// articleBody decodes one ld+json payload and searches it for an articleBody
// field. Malformed JSON is first run through repair; if it still does not
// decode the block is skipped silently.
func articleBody(payload string) string {
	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(payload)
		if rerr != nil {
			return ""
		}
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			return ""
		}
	}
	return findArticleBody(v)
}

func findArticleBody(v any) string {
	switch t := v.(type) {
	case map[string]any:
		if body, ok := t["articleBody"].(string); ok && body != "" {
			return body
		}
		for _, key := range []string{"@graph", "mainEntity", "itemListElement"} {
			if sub, ok := t[key]; ok {
				if body := findArticleBody(sub); body != "" {
					return body
				}
			}
		}
	case []any:
		for _, item := range t {
			if body := findArticleBody(item); body != "" {
				return body
			}
		}
	}
	return ""
}
