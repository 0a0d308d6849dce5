package classify

import (
	"strings"
	"unicode"
)

// Analyzer is the text-analysis capability the classifier depends on:
// tokenization, stemming, topic extraction, and place detection. The
// built-in implementation covers the documented scoring behavior; a
// richer NLP backend can be swapped in without touching the classifier.
type Analyzer interface {
	Tokenize(text string) []string
	Stem(word string) string
	ExtractTopics(text string) []string
	HasPlace(text string) bool
}

// TextAnalyzer is the built-in Analyzer: case folding, light suffix
// stripping, stopword-filtered topic extraction, and a small place
// gazetteer.
type TextAnalyzer struct{}

func NewTextAnalyzer() TextAnalyzer { return TextAnalyzer{} }

// Tokenize splits lowercased text on non-alphanumeric runes.
func (TextAnalyzer) Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Stem reduces a word to a root form by stripping common English
// suffixes, e.g. "groceries" -> "groceri", "housing" -> "hous".
func (TextAnalyzer) Stem(word string) string {
	w := strings.ToLower(word)
	switch {
	case strings.HasSuffix(w, "sses"):
		w = strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "ies"):
		w = strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "ss"):
		// keep
	case strings.HasSuffix(w, "s") && len(w) > 3:
		w = strings.TrimSuffix(w, "s")
	}
	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		w = strings.TrimSuffix(w, "ing")
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		w = strings.TrimSuffix(w, "ed")
	}
	return w
}

// ExtractTopics returns noun-like tokens in order of appearance: stopwords,
// short tokens, and pure numbers are dropped.
func (a TextAnalyzer) ExtractTopics(text string) []string {
	var out []string
	for _, tok := range a.Tokenize(text) {
		if len(tok) < 3 || isNumeric(tok) {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// HasPlace reports whether the text mentions a recognizable location.
func (a TextAnalyzer) HasPlace(text string) bool {
	for _, tok := range a.Tokenize(text) {
		if _, ok := places[tok]; ok {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "have": {}, "had": {}, "was": {}, "were": {}, "are": {},
	"you": {}, "your": {}, "our": {}, "his": {}, "her": {}, "their": {},
	"add": {}, "spent": {}, "paid": {}, "buy": {}, "bought": {}, "got": {},
	"new": {}, "some": {}, "rupees": {}, "rupee": {}, "rupay": {},
	"rupaye": {}, "karo": {}, "kiya": {}, "liye": {}, "mein": {},
	"par": {}, "kharch": {}, "kharcha": {}, "aaj": {}, "kal": {},
}

// places covers common Indian cities and travel hubs; enough for the
// location bonus without a full gazetteer.
var places = map[string]struct{}{
	"delhi": {}, "mumbai": {}, "bangalore": {}, "bengaluru": {},
	"chennai": {}, "kolkata": {}, "hyderabad": {}, "pune": {},
	"jaipur": {}, "goa": {}, "agra": {}, "manali": {}, "shimla": {},
	"udaipur": {}, "varanasi": {}, "kochi": {}, "mysore": {},
	"ahmedabad": {}, "lucknow": {}, "rishikesh": {}, "darjeeling": {},
	"airport": {}, "station": {}, "city": {},
}
