package summarize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSentencesHandlesAbbreviations(t *testing.T) {
	got := Sentences("Dr. Rossi met Mr. Smith yesterday. They agreed on a plan! Will it work?  ")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Dr. Rossi met Mr. Smith yesterday" {
		t.Fatalf("abbreviation split wrongly: %q", got[0])
	}
}

func TestSentencesDropsEmptyResults(t *testing.T) {
	got := Sentences("One sentence here.   ")
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %v", len(got), got)
	}
}

func TestSummarizePassesThroughFailureSentinels(t *testing.T) {
	for _, in := range []string{
		"limited content available - read the full article at the source website",
		"error: connection refused while fetching the page",
	} {
		for _, method := range []Method{MethodAuto, MethodExtractive, MethodKeyword, MethodLead} {
			res := Summarize(in, Options{Method: method, MaxLength: 50})
			if res.Text != in {
				t.Fatalf("method %s must pass sentinel through, got %q", method, res.Text)
			}
		}
	}
}

func TestSummarizeWithinCapBypassesEveryMethod(t *testing.T) {
	in := "Il consiglio comunale ha approvato il nuovo piano urbanistico dopo un lungo dibattito. " +
		"I residenti del quartiere hanno accolto la notizia con soddisfazione evidente. " +
		"I lavori di riqualificazione inizieranno entro la prossima primavera. " +
		"Il finanziamento proviene in parte da fondi europei dedicati. " +
		"L'opposizione ha chiesto maggiori garanzie sui tempi di consegna."
	if utf8.RuneCountInString(in) > 500 {
		t.Fatalf("fixture must fit the cap: %d", utf8.RuneCountInString(in))
	}
	for _, method := range []Method{MethodAuto, MethodExtractive, MethodKeyword, MethodLead} {
		res := Summarize(in, Options{Method: method, MaxLength: 500})
		if res.Text != in {
			t.Fatalf("method %s rewrote within-cap input: %q", method, res.Text)
		}
		if res.Method != method {
			t.Fatalf("expected %s method metadata, got %s", method, res.Method)
		}
	}
}

func TestSummarizeThresholdsCountRunes(t *testing.T) {
	phrase := "La città è già attività però perché più società civile. "
	text := strings.TrimSpace(strings.Repeat(phrase, 10))
	max := utf8.RuneCountInString(text)
	if len(text) <= max {
		t.Fatalf("fixture must contain multibyte runes")
	}
	res := Summarize(text, Options{Method: MethodAuto, MaxLength: max})
	if res.Text != text {
		t.Fatalf("input at the character cap must pass through unchanged")
	}
}

func TestLeadAccumulatesCharacterLengths(t *testing.T) {
	first := "Qualità e università sono già priorità della città per l'attività sportiva"
	second := "Seconda frase di controllo senza alcun accento particolare qui dentro."
	text := first + ". " + second
	max := utf8.RuneCountInString(first)
	if len(first) <= max {
		t.Fatalf("fixture must contain multibyte runes")
	}
	got := Lead(text, max, 50)
	if got != first {
		t.Fatalf("expected the first sentence to fit its character length, got %q", got)
	}
}

func TestShortInputUnchangedByEveryStrategy(t *testing.T) {
	in := "Troppo corto per un riassunto."
	if got := Extractive(in, 3, 500, 100); got != in {
		t.Fatalf("extractive changed short input: %q", got)
	}
	if got := Keyword(in, 500, 100); got != in {
		t.Fatalf("keyword changed short input: %q", got)
	}
	if got := Lead(in, 500, 100); got != in {
		t.Fatalf("lead changed short input: %q", got)
	}
}

func TestExtractiveFewSentencesUnchanged(t *testing.T) {
	in := "Il governo ha approvato la manovra economica dopo una lunga discussione. " +
		"Le opposizioni hanno annunciato battaglia in parlamento nelle prossime settimane."
	if got := Extractive(in, 3, 500, 100); got != in {
		t.Fatalf("text with fewer sentences than requested must pass through")
	}
}

func longArticle() string {
	sentences := []string{
		"The regional government approved the infrastructure spending plan after months of negotiation between coalition partners.",
		"Funding for the new railway corridor accounts for nearly half of the total budget allocation announced this week.",
		"Local mayors welcomed the decision and pressed for construction work to begin before the end of the year.",
		"Opposition parties criticized the plan as unbalanced and demanded additional resources for southern provinces.",
		"Economists noted the program could raise regional employment by two percent over the next three years.",
		"Environmental groups asked for an independent review of the corridor route through the protected valley.",
		"A final vote in the regional assembly is expected within weeks and approval is considered likely.",
		"Construction contracts would then be tendered in the spring under accelerated procurement rules.",
	}
	return strings.Join(sentences, " ")
}

func TestExtractiveSelectsAndPreservesOrder(t *testing.T) {
	text := longArticle()
	got := Extractive(text, 3, 500, 100)
	if got == text {
		t.Fatalf("expected a shortened summary")
	}
	if utf8.RuneCountInString(got) > 500 {
		t.Fatalf("summary exceeds cap: %d", utf8.RuneCountInString(got))
	}
	// Selected sentences must appear in their original reading order.
	found := 0
	last := -1
	for _, s := range Sentences(text) {
		idx := strings.Index(got, s)
		if idx < 0 {
			// truncation may shorten the final selected sentence
			continue
		}
		if idx < last {
			t.Fatalf("sentence order not preserved: %q", s)
		}
		last = idx
		found++
	}
	if found < 2 {
		t.Fatalf("expected at least 2 full sentences in the summary, found %d", found)
	}
}

func TestExtractiveLengthInvariant(t *testing.T) {
	text := longArticle()
	for _, max := range []int{80, 150, 300} {
		got := Extractive(text, 3, max, 100)
		if utf8.RuneCountInString(got) > max {
			t.Fatalf("max=%d: summary too long (%d)", max, utf8.RuneCountInString(got))
		}
	}
}

func TestKeywordSummary(t *testing.T) {
	text := "Mario Draghi announced a 240 milioni investment during the Rome summit on Tuesday morning. " +
		"The funds will support research centers across the country over the coming decade. " +
		"Several universities welcomed the announcement as long overdue recognition. " +
		"Critics argued the distribution formula favors the largest institutions again."
	got := Keyword(text, 200, 100)
	if got == "" {
		t.Fatalf("expected a keyword summary")
	}
	if utf8.RuneCountInString(got) > 200 {
		t.Fatalf("keyword summary exceeds cap: %d", utf8.RuneCountInString(got))
	}
}

func TestLeadStopsAtSentenceBoundary(t *testing.T) {
	// Five sentences, ~600 chars total, cap 200: the result must end at a
	// full sentence boundary at or under the cap.
	s := []string{
		"The city council voted on Monday evening to expand the tram network toward the eastern districts of the capital region.",
		"Construction is scheduled to start next autumn and will take roughly four years to complete in three phases.",
		"Residents of the affected neighborhoods have campaigned for better transit connections for more than a decade now.",
		"The projected cost has risen twice since the feasibility study was first published by the transport authority.",
		"Opponents say the money would be better spent on improving the existing bus corridors instead.",
	}
	text := strings.Join(s, " ")
	got := Lead(text, 200, 100)
	if utf8.RuneCountInString(got) > 200 {
		t.Fatalf("lead summary exceeds cap: %d", utf8.RuneCountInString(got))
	}
	if strings.HasSuffix(got, "...") {
		t.Fatalf("expected full sentences, not a hard cut: %q", got)
	}
	if !strings.HasPrefix(text, got+".") && !strings.HasPrefix(text, got) {
		t.Fatalf("lead summary is not a prefix of the text: %q", got)
	}
}

func TestLeadHardCutsOversizedFirstSentence(t *testing.T) {
	text := strings.Repeat("word ", 60) + "end of a single very long sentence without breaks"
	got := Lead(text, 100, 50)
	if utf8.RuneCountInString(got) > 100 {
		t.Fatalf("lead hard cut exceeds cap: %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis marker on hard cut, got %q", got)
	}
}

func TestAutoShortInputReturnedUnchanged(t *testing.T) {
	in := "Un articolo gia abbastanza corto da non richiedere alcun riassunto automatico oggi."
	res := Summarize(in, Options{Method: MethodAuto, MaxLength: 500})
	if res.Text != in {
		t.Fatalf("auto must return within-cap input unchanged")
	}
	if res.Method != MethodAuto {
		t.Fatalf("expected auto method metadata, got %s", res.Method)
	}
}

func TestAutoDelegatesByLength(t *testing.T) {
	long := strings.Repeat(longArticle()+" ", 3)
	if len(long) <= 1500 {
		t.Fatalf("fixture not long enough: %d", len(long))
	}
	res := Summarize(long, Options{Method: MethodAuto, MaxLength: 400})
	if res.Method != MethodExtractive {
		t.Fatalf("long input should use extractive, got %s", res.Method)
	}

	short := longArticle()
	if len(short) > 900 {
		short = short[:900]
	}
	if idx := strings.LastIndex(short, "."); idx > 0 {
		short = short[:idx+1]
	}
	res = Summarize(short, Options{Method: MethodAuto, MaxLength: 400})
	if res.Method != MethodLead {
		t.Fatalf("short input should use lead, got %s", res.Method)
	}
}

func TestWordFrequenciesSkipStopWordsAndShortTokens(t *testing.T) {
	freq := wordFrequencies([]string{
		"the council approved the plan",
		"council members debated the plan at length",
	})
	if _, ok := freq["the"]; ok {
		t.Fatalf("stop word must not be scored")
	}
	if _, ok := freq["at"]; ok {
		t.Fatalf("two-char token must not be scored")
	}
	if freq["council"] != 1.0 {
		t.Fatalf("most frequent word must normalize to 1.0, got %f", freq["council"])
	}
}
