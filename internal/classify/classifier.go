// Package classify assigns expense categories to free-text descriptions
// using lexical scoring over a keyword lexicon.
package classify

import (
	"strings"
	"sync/atomic"

	"github.com/sg-217/paisabuddy/internal/core"
)

// Score weights. Direct substring hits dominate; stemmed matches, place
// mentions, and amount heuristics break the remaining ambiguity.
const (
	keywordScore = 10
	stemScore    = 5
	placeScore   = 3
)

// placeCategories get the location bonus when the text names a place.
var placeCategories = map[core.Category]struct{}{
	core.Rent:     {},
	core.Travel:   {},
	core.Shopping: {},
}

// Classifier scores text against the lexicon. The lexicon is replaced
// wholesale by Learn; concurrent Categorize calls read a consistent
// snapshot.
type Classifier struct {
	analyzer Analyzer
	lexicon  atomic.Pointer[Lexicon]
}

// New builds a classifier over the given analyzer and lexicon. A nil
// lexicon falls back to the shipped one.
func New(an Analyzer, lx *Lexicon) *Classifier {
	if lx == nil {
		lx = DefaultLexicon(an)
	}
	c := &Classifier{analyzer: an}
	c.lexicon.Store(lx)
	return c
}

// Categorize scores the text against every category and returns the best
// match, or core.Other when nothing scores. Ties resolve to the earliest
// category in core.Taxonomy order. A zero amount skips the amount
// heuristics.
func (c *Classifier) Categorize(text string, amount core.Money) core.Category {
	if strings.TrimSpace(text) == "" {
		return core.Other
	}

	lx := c.lexicon.Load()
	normalized := strings.ToLower(strings.TrimSpace(text))
	hasPlace := c.analyzer.HasPlace(normalized)

	tokens := c.analyzer.Tokenize(normalized)
	stemmed := make([]string, len(tokens))
	for i, tok := range tokens {
		stemmed[i] = c.analyzer.Stem(tok)
	}

	rupees := amount.Rupees()
	best := core.Other
	bestScore := 0

	for _, cat := range lx.order {
		score := 0
		for _, kw := range lx.keywords[cat] {
			if strings.Contains(normalized, kw) {
				score += keywordScore
			}
		}
		stems := lx.stems[cat]
		for _, tok := range stemmed {
			if _, ok := stems[tok]; ok {
				score += stemScore
			}
		}
		if hasPlace {
			if _, ok := placeCategories[cat]; ok {
				score += placeScore
			}
		}
		if amount.Paise > 0 {
			switch cat {
			case core.Rent:
				if rupees > 5000 {
					score += 5
				}
			case core.Food:
				if rupees < 1000 {
					score += 2
				}
			case core.Utilities:
				if rupees < 5000 {
					score += 3
				}
			case core.Emergency:
				if rupees > 10000 {
					score += 4
				}
			}
		}
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}

	if bestScore == 0 {
		return core.Other
	}
	return best
}

// CategorizeVendor classifies a vendor name alone.
func (c *Classifier) CategorizeVendor(vendor string) core.Category {
	if strings.TrimSpace(vendor) == "" {
		return core.Other
	}
	return c.Categorize(vendor, core.Money{})
}

// SuggestTags extracts up to five deduplicated topic tags from the text.
func (c *Classifier) SuggestTags(text string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, topic := range c.analyzer.ExtractTopics(text) {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		tags = append(tags, topic)
		if len(tags) == 5 {
			break
		}
	}
	return tags
}

// Learn appends keywords (plus the corrected text itself) to a category's
// keyword set. The update builds a fresh lexicon and swaps it in; callers
// must serialize Learn behind a single writer, which the correction
// worker does.
func (c *Classifier) Learn(text string, cat core.Category, keywords ...string) bool {
	if !cat.Valid() {
		return false
	}
	extra := append([]string(nil), keywords...)
	if t := strings.ToLower(strings.TrimSpace(text)); t != "" {
		extra = append(extra, t)
	}
	if len(extra) == 0 {
		return false
	}
	c.lexicon.Store(c.lexicon.Load().withKeywords(c.analyzer, cat, extra))
	return true
}

// Lexicon returns the current lexicon snapshot.
func (c *Classifier) Lexicon() *Lexicon {
	return c.lexicon.Load()
}
