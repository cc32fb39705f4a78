package summarize

// stopWords is the fixed bilingual (Italian/English) stop-word set used to
// filter the frequency table. Tokens of two characters or fewer are excluded
// separately by the tokenizer caller.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// italian
		"il", "lo", "la", "i", "gli", "le", "un", "uno", "una", "di", "a", "da", "in",
		"con", "su", "per", "tra", "fra", "del", "dello", "della", "dei", "degli", "delle",
		"al", "allo", "alla", "ai", "agli", "alle", "dal", "dallo", "dalla", "dai", "dagli",
		"dalle", "nel", "nello", "nella", "nei", "negli", "nelle", "sul", "sullo", "sulla",
		"sui", "sugli", "sulle", "che", "è", "sono", "hai", "ha", "hanno", "come", "più",
		"anche", "se", "non", "ma", "quando", "dove", "chi", "cosa", "quale", "questo",
		"questa", "questi", "queste", "quello", "quella", "quelli", "quelle", "ogni",
		"altro", "altra", "altri", "altre", "molto", "poco", "tanto", "troppo",
		// english
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
		"by", "from", "is", "are", "was", "were", "be", "been", "being", "have", "has",
		"had", "do", "does", "did", "will", "would", "should", "could", "may", "might",
		"can", "this", "that", "these", "those", "as", "if", "when", "where", "who",
		"which", "what", "how", "why", "all", "each", "every", "some", "any", "no",
		"not", "very", "more", "most", "much", "many", "few", "less", "least",
	} {
		stopWords[w] = struct{}{}
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
