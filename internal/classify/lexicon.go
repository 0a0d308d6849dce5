package classify

import (
	"strings"

	"github.com/sg-217/paisabuddy/internal/core"
)

// Lexicon maps each category to its keyword set. Instances are immutable
// once built; Classifier.Learn swaps in a rebuilt copy instead of mutating
// in place, so readers never observe a half-applied update.
type Lexicon struct {
	order    []core.Category
	keywords map[core.Category][]string
	stems    map[core.Category]map[string]struct{}
}

// seedKeywords is the shipped lexicon. Every category carries at least one
// keyword; "other" is the sink when nothing scores.
var seedKeywords = map[core.Category][]string{
	core.Rent: {
		"rent", "apartment", "housing", "lease", "landlord", "accommodation",
		"flat", "house", "pg", "hostel",
	},
	core.Food: {
		"food", "restaurant", "meal", "breakfast", "lunch", "dinner",
		"grocery", "groceries", "vegetables", "fruits", "meat", "cafe",
		"bakery", "pizza", "burger", "swiggy", "zomato", "dominos",
		"mcdonald", "kfc", "dining",
	},
	core.Transport: {
		"transport", "uber", "ola", "taxi", "cab", "bus", "metro", "train",
		"fuel", "petrol", "diesel", "gas", "parking", "toll", "auto",
		"rickshaw", "rapido", "gasoline",
	},
	core.Utilities: {
		"electricity", "water", "gas", "internet", "wifi", "phone", "mobile",
		"broadband", "airtel", "jio", "vi", "bill", "recharge",
	},
	core.Entertainment: {
		"movie", "cinema", "netflix", "spotify", "amazon prime", "hotstar",
		"gaming", "game", "concert", "show", "entertainment", "subscription",
		"theatre",
	},
	core.Healthcare: {
		"hospital", "doctor", "medical", "medicine", "pharmacy", "clinic",
		"health", "emergency", "surgery", "checkup", "lab", "test",
		"dentist", "apollo", "max",
	},
	core.Shopping: {
		"shopping", "clothes", "jewelery", "shoes", "amazon", "flipkart",
		"myntra", "ajio", "mall", "store", "electronics", "gadget", "phone",
		"laptop",
	},
	core.Education: {
		"education", "school", "college", "university", "course", "book",
		"tuition", "fee", "coursera", "udemy", "study",
	},
	core.Travel: {
		"travel", "vacation", "holiday", "hotel", "flight", "booking",
		"makemytrip", "goibibo", "trip", "tourism",
	},
	core.Celebration: {
		"celebration", "birthday", "wedding", "anniversary", "party", "gift",
		"festival", "diwali", "holi", "christmas", "eid",
	},
	core.Emergency: {
		"emergency", "urgent", "accident", "repair", "fix", "breakdown",
	},
	core.Personal: {
		"personal", "care", "salon", "spa", "grooming", "haircut", "cosmetic",
	},
	core.Other: {
		"other", "miscellaneous", "misc",
	},
}

// DefaultLexicon builds the shipped lexicon.
func DefaultLexicon(an Analyzer) *Lexicon {
	return NewLexicon(an, seedKeywords)
}

// NewLexicon builds a lexicon from category keyword sets. Categories are
// scored in core.Taxonomy order regardless of map iteration.
func NewLexicon(an Analyzer, byCategory map[core.Category][]string) *Lexicon {
	lx := &Lexicon{
		order:    core.Taxonomy,
		keywords: make(map[core.Category][]string, len(byCategory)),
		stems:    make(map[core.Category]map[string]struct{}, len(byCategory)),
	}
	for cat, kws := range byCategory {
		lx.setKeywords(an, cat, kws)
	}
	return lx
}

// Keywords returns the keyword list for a category.
func (l *Lexicon) Keywords(cat core.Category) []string {
	return l.keywords[cat]
}

// withKeywords returns a copy of the lexicon with extra keywords appended
// to one category. Duplicates are dropped.
func (l *Lexicon) withKeywords(an Analyzer, cat core.Category, extra []string) *Lexicon {
	next := &Lexicon{
		order:    l.order,
		keywords: make(map[core.Category][]string, len(l.keywords)),
		stems:    make(map[core.Category]map[string]struct{}, len(l.stems)),
	}
	for c, kws := range l.keywords {
		next.keywords[c] = kws
		next.stems[c] = l.stems[c]
	}

	seen := make(map[string]struct{}, len(l.keywords[cat])+len(extra))
	merged := append([]string(nil), l.keywords[cat]...)
	for _, kw := range merged {
		seen[kw] = struct{}{}
	}
	for _, kw := range extra {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		merged = append(merged, kw)
	}
	next.setKeywords(an, cat, merged)
	return next
}

func (l *Lexicon) setKeywords(an Analyzer, cat core.Category, kws []string) {
	l.keywords[cat] = kws
	stems := make(map[string]struct{}, len(kws))
	for _, kw := range kws {
		stems[an.Stem(kw)] = struct{}{}
	}
	l.stems[cat] = stems
}
