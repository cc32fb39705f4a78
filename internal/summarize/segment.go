package summarize

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/newsdigest/internal/sanitize"
)

// Abbreviations whose trailing period must not end a sentence. The period is
// masked before splitting and restored afterwards.
var (
	abbrevPattern   = regexp.MustCompile(`\b(Dr|Mr|Mrs|Ms|Prof|Sr|Jr)\.`)
	sentenceEndings = regexp.MustCompile(`[.!?]+\s+`)
)

const dotMask = "\x00DOT\x00"

// Sentences splits text into cleaned sentences, preserving order. Empty
// results are dropped; downstream scoring depends on the original indexes of
// the returned slice.
func Sentences(text string) []string {
	masked := abbrevPattern.ReplaceAllString(text, "${1}"+dotMask)
	parts := sentenceEndings.Split(masked, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := sanitize.Collapse(strings.ReplaceAll(p, dotMask, "."))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
