package matching

import (
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to relevance
// matching between job text and candidate history.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "join": true, "years": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "strong": true,
	"good": true, "able": true, "such": true, "plus": true, "must": true,
}

// tokenize splits text into lowercase keywords longer than three
// characters, skipping stop words. + # . count as word characters so
// dotted names like "node.js" stay intact; short tokens like "c++"
// still fall to the length cutoff.
func tokenize(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) > 3 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// sharedKeywords counts tokens of a that loosely match a token of b.
// Loose means substring containment in either direction, so "kubernetes"
// matches "kubernete" and "postgres" matches "postgresql".
func sharedKeywords(a, b string) int {
	kwA := tokenize(a)
	kwB := tokenize(b)

	count := 0
	for tokenA := range kwA {
		for tokenB := range kwB {
			if strings.Contains(tokenA, tokenB) || strings.Contains(tokenB, tokenA) {
				count++
				break
			}
		}
	}
	return count
}
