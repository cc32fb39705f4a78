package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
)

// Options tune the approximate cleanup heuristics. The defaults match the
// values the extraction tests pin; they are exposed so tuning does not
// require a rebuild.
type Options struct {
	// DuplicateOverlap is the word-overlap fraction above which the two
	// halves of a text are considered the same article emitted twice.
	DuplicateOverlap float64
	// DuplicateMinChars guards the duplicate check against short texts.
	DuplicateMinChars int
}

// DefaultOptions returns the tuned cleanup thresholds.
func DefaultOptions() Options {
	return Options{
		DuplicateOverlap:  0.8,
		DuplicateMinChars: 200,
	}
}

var (
	leadingDashPat  = regexp.MustCompile(`^\s*-\s*`)
	trailingDotsPat = regexp.MustCompile(`\s*\.\.\.\s*$`)
	wirePrefixPats  []*regexp.Regexp
)

func init() {
	// Italian wire-service datelines and agency markers that several feeds
	// prepend (or append) to the article body.
	for _, pat := range []string{
		`(?i)^\(ansa\)\s*[-–—]?\s*`,
		`(?i)^\(adnkronos\)\s*[-–—]?\s*`,
		`(?i)^agi\s*[-–—]\s*`,
		`^[A-ZÀÈÌÒÙ]{3,}(?:,)?\s+\d{1,2}\s+[A-Z]{3}\.?\s*[-–—]\s*`,
		`(?i)\s*\(ansa\)\.?\s*$`,
	} {
		wirePrefixPats = append(wirePrefixPats, regexp.MustCompile(pat))
	}
}

// Collapse reduces all whitespace runs to single spaces and trims the ends.
func Collapse(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}

// StripTags removes markup fragments and decodes HTML entities. Feed titles
// and descriptions routinely arrive with embedded tags, sometimes with
// attribute values that defeat a naive tag regexp.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(html.UnescapeString(s))
	}
	tok := xhtml.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tok.Next() {
		case xhtml.ErrorToken:
			return strings.TrimSpace(b.String())
		case xhtml.TextToken:
			b.Write(tok.Text())
		}
	}
}

// Title cleans a feed or page title: tags removed, whitespace collapsed,
// leading separator dashes dropped.
func Title(s string) string {
	if s == "" {
		return ""
	}
	clean := Collapse(StripTags(s))
	return strings.TrimSpace(leadingDashPat.ReplaceAllString(clean, ""))
}

// Description cleans a feed description and ensures it reads as a closed
// sentence: trailing ellipsis runs are normalized to "..." and a final
// period is added when no terminal punctuation is present.
func Description(s string) string {
	if s == "" {
		return ""
	}
	clean := Collapse(StripTags(s))
	clean = leadingDashPat.ReplaceAllString(clean, "")
	clean = trailingDotsPat.ReplaceAllString(clean, "...")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return ""
	}
	if !strings.HasSuffix(clean, ".") && !strings.HasSuffix(clean, "!") && !strings.HasSuffix(clean, "?") {
		clean += "."
	}
	return clean
}

// StripWirePrefixes removes agency datelines such as "(ANSA) - ROMA, 12 GEN -"
// from the start of an article body and the "(ANSA)." sign-off from its end.
func StripWirePrefixes(s string) string {
	out := strings.TrimSpace(s)
	for changed := true; changed; {
		changed = false
		for _, pat := range wirePrefixPats {
			next := pat.ReplaceAllString(out, "")
			if next != out {
				out = strings.TrimSpace(next)
				changed = true
			}
		}
	}
	return out
}

// CollapseDuplicate detects the common failure mode where a source renders
// the full article twice in one page. The text is split at its midpoint and
// the word sets of the first 200 characters of each half are compared; above
// the overlap threshold only the first half is kept. The check is approximate
// and only applied above DuplicateMinChars.
func CollapseDuplicate(s string, opts Options) string {
	runes := []rune(s)
	if len(runes) < opts.DuplicateMinChars {
		return s
	}
	mid := len(runes) / 2
	first := string(runes[:mid])
	second := string(runes[mid:])

	firstWords := wordSet(prefixRunes(first, 200))
	secondWords := wordSet(prefixRunes(second, 200))
	if len(firstWords) == 0 {
		return s
	}
	matched := 0
	for w := range firstWords {
		if _, ok := secondWords[w]; ok {
			matched++
		}
	}
	if float64(matched)/float64(len(firstWords)) > opts.DuplicateOverlap {
		return strings.TrimSpace(first)
	}
	return s
}

// Clean runs the full post-extraction pass in order: whitespace collapse,
// wire-service prefix stripping, duplicate-half detection.
func Clean(s string, opts Options) string {
	out := Collapse(s)
	out = StripWirePrefixes(out)
	return CollapseDuplicate(out, opts)
}

// Truncate bounds s to max characters, cutting at the last word boundary and
// appending an ellipsis marker. The result never exceeds max and never ends
// in a partial word.
func Truncate(s string, max int) string {
	const ellipsis = "..."
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= len(ellipsis) {
		return strings.TrimSpace(string(runes[:max]))
	}
	cut := string(runes[:max-len(ellipsis)])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:-") + ellipsis
}

func prefixRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range splitWords(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
