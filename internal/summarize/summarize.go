// Package summarize produces bounded-length extractive summaries of article
// text using lexical statistics only. No model calls, no external services.
package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperifyio/newsdigest/internal/sanitize"
)

// Method selects a summarization strategy.
type Method string

const (
	MethodAuto       Method = "auto"
	MethodExtractive Method = "extractive"
	MethodKeyword    Method = "keyword"
	MethodLead       Method = "lead"
)

// Options configure a summarization call.
type Options struct {
	// MaxLength caps the summary length in characters. The cap is strict:
	// truncation never splits a word.
	MaxLength int
	// Sentences is the number of sentences the extractive strategy selects.
	Sentences int
	// Method picks the strategy; MethodAuto delegates by input length.
	Method Method
	// MinInputChars is the floor below which input is returned unchanged.
	MinInputChars int
	// AutoExtractiveChars is the input length above which MethodAuto uses the
	// extractive strategy instead of the lead strategy.
	AutoExtractiveChars int
}

// DefaultOptions returns the tuned summarization parameters.
func DefaultOptions() Options {
	return Options{
		MaxLength:           500,
		Sentences:           3,
		Method:              MethodAuto,
		MinInputChars:       100,
		AutoExtractiveChars: 1500,
	}
}

// Result is the produced summary plus the strategy that produced it.
type Result struct {
	Text   string
	Method Method
}

// scored pairs a sentence with its original index for the double sort:
// first by score to select, then by index to restore reading order.
type scored struct {
	index int
	score float64
	text  string
}

// IsFailureSentinel reports whether text is an upstream extraction failure
// marker rather than article content. Such inputs pass through every
// strategy unmodified.
func IsFailureSentinel(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(t, "error") || strings.HasPrefix(t, "limited")
}

// Summarize runs the configured strategy over text. Degenerate inputs (too
// short, fewer sentences than requested, failure sentinels, already within
// the cap) are returned unchanged regardless of the chosen method. All
// length thresholds count characters, not bytes.
func Summarize(text string, opts Options) Result {
	opts = withDefaults(opts)
	method := opts.Method
	if method == "" {
		method = MethodAuto
	}
	if IsFailureSentinel(text) {
		return Result{Text: text, Method: method}
	}
	chars := utf8.RuneCountInString(text)
	if chars <= opts.MaxLength {
		return Result{Text: text, Method: method}
	}
	switch method {
	case MethodExtractive:
		return Result{Text: Extractive(text, opts.Sentences, opts.MaxLength, opts.MinInputChars), Method: MethodExtractive}
	case MethodKeyword:
		return Result{Text: Keyword(text, opts.MaxLength, opts.MinInputChars), Method: MethodKeyword}
	case MethodLead:
		return Result{Text: Lead(text, opts.MaxLength, opts.MinInputChars), Method: MethodLead}
	default:
		if chars > opts.AutoExtractiveChars {
			return Result{Text: Extractive(text, opts.Sentences, opts.MaxLength, opts.MinInputChars), Method: MethodExtractive}
		}
		return Result{Text: Lead(text, opts.MaxLength, opts.MinInputChars), Method: MethodLead}
	}
}

// Extractive selects the numSentences highest-scoring sentences by
// normalized word frequency with a position boost, restores their original
// order, and truncates at a word boundary.
func Extractive(text string, numSentences, maxLength, minInput int) string {
	if text == "" || utf8.RuneCountInString(text) < minInput {
		return text
	}
	sentences := Sentences(text)
	if len(sentences) <= numSentences {
		return text
	}
	freq := wordFrequencies(sentences)
	if len(freq) == 0 {
		return strings.Join(sentences[:numSentences], " ")
	}

	ranked := scoreSentences(sentences, freq)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > numSentences {
		ranked = ranked[:numSentences]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].index < ranked[j].index })

	parts := make([]string, 0, len(ranked))
	for _, s := range ranked {
		parts = append(parts, s.text)
	}
	return sanitize.Truncate(strings.Join(parts, " "), maxLength)
}

var (
	properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	numericPattern    = regexp.MustCompile(`\b\d+(?:[.,]\d+)?(?:\s*(?:%|€|\$|km/h|km|mila|milioni|miliardi))?`)
)

// Keyword scores sentences by the density of proper-noun sequences and
// numeric expressions, boosts the first two sentences, and keeps the top
// three in reading order.
func Keyword(text string, maxLength, minInput int) string {
	if text == "" || utf8.RuneCountInString(text) < minInput {
		return text
	}
	sentences := Sentences(text)
	if len(sentences) <= 2 {
		return text
	}

	keywords := map[string]struct{}{}
	for _, kw := range properNounPattern.FindAllString(text, -1) {
		keywords[kw] = struct{}{}
	}
	for _, kw := range numericPattern.FindAllString(text, -1) {
		keywords[kw] = struct{}{}
	}

	ranked := make([]scored, 0, len(sentences))
	for idx, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(words) < 5 {
			continue
		}
		hits := 0
		for kw := range keywords {
			if strings.Contains(sentence, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(words))
		if idx < 2 {
			score *= 1.3
		}
		ranked = append(ranked, scored{index: idx, score: score, text: sentence})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].index < ranked[j].index })

	parts := make([]string, 0, len(ranked))
	for _, s := range ranked {
		parts = append(parts, s.text)
	}
	return sanitize.Truncate(strings.Join(parts, " "), maxLength)
}

// Lead accumulates sentences from the start, examining at most the first
// four and stopping before the running total would exceed the cap. If even
// the first sentence is too long the raw text is cut at a word boundary.
func Lead(text string, maxLength, minInput int) string {
	if text == "" || utf8.RuneCountInString(text) < minInput {
		return text
	}
	sentences := Sentences(text)

	parts := make([]string, 0, 4)
	total := 0
	limit := len(sentences)
	if limit > 4 {
		limit = 4
	}
	for _, sentence := range sentences[:limit] {
		chars := utf8.RuneCountInString(sentence)
		if total+chars > maxLength {
			break
		}
		parts = append(parts, sentence)
		total += chars + 1
	}
	if len(parts) == 0 {
		return sanitize.Truncate(text, maxLength)
	}
	return strings.Join(parts, " ")
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.MaxLength <= 0 {
		opts.MaxLength = def.MaxLength
	}
	if opts.Sentences <= 0 {
		opts.Sentences = def.Sentences
	}
	if opts.MinInputChars <= 0 {
		opts.MinInputChars = def.MinInputChars
	}
	if opts.AutoExtractiveChars <= 0 {
		opts.AutoExtractiveChars = def.AutoExtractiveChars
	}
	return opts
}

// wordFrequencies derives the normalized [0,1] frequency table over all
// sentences, skipping stop words and tokens of two characters or fewer.
func wordFrequencies(sentences []string) map[string]float64 {
	counts := map[string]int{}
	max := 0
	for _, sentence := range sentences {
		for _, w := range tokenize(sentence) {
			if len([]rune(w)) <= 2 || isStopWord(w) {
				continue
			}
			counts[w]++
			if counts[w] > max {
				max = counts[w]
			}
		}
	}
	if max == 0 {
		return nil
	}
	freq := make(map[string]float64, len(counts))
	for w, c := range counts {
		freq[w] = float64(c) / float64(max)
	}
	return freq
}

// scoreSentences computes the mean frequency score per sentence with a
// position boost for the lead paragraphs. Sentences under five words are
// skipped as headline or caption fragments.
func scoreSentences(sentences []string, freq map[string]float64) []scored {
	out := make([]scored, 0, len(sentences))
	for idx, sentence := range sentences {
		words := tokenize(sentence)
		if len(words) < 5 {
			continue
		}
		total := 0.0
		for _, w := range words {
			total += freq[w]
		}
		score := total / float64(len(words))

		boost := 1.0
		switch {
		case idx < 3:
			boost = 1.3
		case idx < 5:
			boost = 1.15
		}
		out = append(out, scored{index: idx, score: score * boost, text: sentence})
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
