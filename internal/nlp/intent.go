// Package nlp turns free-text utterances (English, Hindi, or mixed
// Hinglish) into structured financial intents.
package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// Action is the recognized user goal for one utterance.
type Action string

const (
	ActionAddExpense     Action = "add_expense"
	ActionQuerySpending  Action = "query_spending"
	ActionGetSummary     Action = "get_summary"
	ActionBiggestExpense Action = "biggest_expense"
	ActionTopCategories  Action = "top_categories"
	ActionSavings        Action = "savings"
	ActionLastExpenses   Action = "last_expenses"
	ActionComparePeriods Action = "compare_periods"
	ActionAvgSpending    Action = "avg_spending"
	ActionUnknown        Action = "unknown"
)

// Slots carries the values extracted while matching an intent pattern.
// Fields are meaningful per action; zero values mean "not present".
type Slots struct {
	Amount      int64 // paise, add_expense
	Description string
	Category    string // free text; "all" or empty bypasses the filter
	Period      timeperiod.Period
	Which       timeperiod.Which
	Limit       int

	// compare_periods only: the second period to compare against. No
	// utterance rule emits these today; structured callers set them.
	VsPeriod timeperiod.Period
	VsWhich  timeperiod.Which
}

// Intent is the parsed result for one utterance.
type Intent struct {
	Action Action
	Slots  Slots
}

// rule is one entry of the ordered intent table: first structural match
// wins, no backtracking across rules. extract returns ok=false to make a
// rule fall through, e.g. when an amount fails to parse.
type rule struct {
	name    string
	action  Action
	pattern *regexp.Regexp
	extract func(m []string, lower string) (Slots, bool)
}

// rules in precedence order. Add-expense phrasings come first, then the
// day-scoped and period-scoped query forms, then fixed phrases.
var rules = []rule{
	{
		name:    "add amount-first (en)",
		action:  ActionAddExpense,
		pattern: regexp.MustCompile(`add\s+(?:rs\.?|rupees?)?\s*(\d+(?:[.,]\d{1,2})?)\s*(?:rs\.?|rupees?)?\s+(?:for|to|in|on)\s+(.+)`),
		extract: amountThenDescription,
	},
	{
		name:    "add spent (en)",
		action:  ActionAddExpense,
		pattern: regexp.MustCompile(`spent\s+(?:rs\.?|rupees?)?\s*(\d+(?:[.,]\d{1,2})?)\s*(?:rs\.?|rupees?)?\s+(?:on|for)\s+(.+)`),
		extract: amountThenDescription,
	},
	{
		name:    "add amount-first (hi)",
		action:  ActionAddExpense,
		pattern: regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*(?:rs|rupees?|rupay|rupaye)?\s*(?:add\s*karo|kharch\s*kar\s*do|jod(?:o|do))\s*(?:for|on|ke\s*liye|mein|me|par|pe)?\s+(.+)`),
		extract: amountThenDescription,
	},
	{
		name:    "add amount-description-verb (hi)",
		action:  ActionAddExpense,
		pattern: regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*(?:rs|rupees?|rupay|rupaye)?\s+(.+?)\s+(?:ke\s*liye|mein|me|par|pe)\s+(?:add\s*karo|jod(?:o|\s*do)|kharch\s*kar\s*do)`),
		extract: amountThenDescription,
	},
	{
		name:    "add description-first (hi)",
		action:  ActionAddExpense,
		pattern: regexp.MustCompile(`(.+)\s+(?:ke\s*liye|mein|me|par|pe)\s*(\d+(?:[.,]\d{1,2})?)\s*(?:rs|rupees?|rupay|rupaye)?\s*(?:add\s*karo|jodo|kharch\s*kar\s*do)?$`),
		extract: descriptionThenAmount,
	},
	{
		name:    "day + category",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`(aaj|kal)\s+(.+?)\s+(?:par|pe|per)\s+kitna\s+(?:kharch|kharcha|spend)\s+(?:hua|kiya)`),
		extract: func(m []string, _ string) (Slots, bool) {
			period := timeperiod.Today
			if m[1] == "kal" {
				period = timeperiod.Yesterday
			}
			return Slots{Category: strings.TrimSpace(m[2]), Period: period, Which: timeperiod.This}, true
		},
	},
	{
		name:    "today total",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`aaj\s+(?:maine\s+)?kitna\s+(?:kharch|kharcha|spend)\s+kiya`),
		extract: allCategories(timeperiod.Today),
	},
	{
		name:    "yesterday total",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`kal\s+ka\s+kharcha|kal\s+(?:maine\s+)?kitna\s+(?:kharch|spend)\s+(?:hua|kiya)`),
		extract: allCategories(timeperiod.Yesterday),
	},
	{
		name:    "month total",
		action:  ActionGetSummary,
		pattern: regexp.MustCompile(`is\s+mahine\s+(?:mera\s+)?total\s+(?:kharcha|expense|spending)\s+kitna`),
		extract: func(_ []string, _ string) (Slots, bool) {
			return Slots{Period: timeperiod.Month, Which: timeperiod.This}, true
		},
	},
	{
		name:    "week total",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`is\s+hafte\s+kitna\s+(?:kharch|spend)`),
		extract: allCategories(timeperiod.Week),
	},
	{
		name:    "year total",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`is\s+saal\s+kitna\s+(?:kharch|spend)`),
		extract: allCategories(timeperiod.Year),
	},
	{
		name:    "category + period",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`(.+?)\s+(?:par|pe)\s+kitna\s+(?:kharcha|spend)\s+(?:hua|kiya)\s*(?:is|last|pichhle)?\s*(mahine|week|hafte|saal)?`),
		extract: func(m []string, lower string) (Slots, bool) {
			return Slots{
				Category: strings.TrimSpace(m[1]),
				Period:   NormalizePeriod(m[2]),
				Which:    whichFromText(lower),
			}, true
		},
	},
	{
		name:    "biggest expense",
		action:  ActionBiggestExpense,
		pattern: regexp.MustCompile(`sabse\s+bada\s+kharcha|biggest\s+expense`),
		extract: thisMonth,
	},
	{
		name:    "savings",
		action:  ActionSavings,
		pattern: regexp.MustCompile(`kitni\s+(?:saving|bachat)|maine\s+kitna\s+bacha|how\s+much\s+did\s+i\s+save`),
		extract: thisMonth,
	},
	{
		name:    "top categories",
		action:  ActionTopCategories,
		pattern: regexp.MustCompile(`top\s+(\d+)\s+categor(?:ies|y)`),
		extract: func(m []string, lower string) (Slots, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				return Slots{}, false
			}
			return Slots{Limit: n, Period: periodFromText(lower), Which: whichFromText(lower)}, true
		},
	},
	{
		name:    "last n expenses",
		action:  ActionLastExpenses,
		pattern: regexp.MustCompile(`(?:pichhle|last)\s+(\d+)\s+expenses?`),
		extract: func(m []string, _ string) (Slots, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				return Slots{}, false
			}
			return Slots{Limit: n}, true
		},
	},
	{
		name:    "spend query (en)",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`how\s+much\s+did\s+i\s+spend\s+(?:on\s+)?(.+?)\s+(this|last)\s+(week|month|year)`),
		extract: func(m []string, _ string) (Slots, bool) {
			return Slots{
				Category: strings.TrimSpace(m[1]),
				Period:   NormalizePeriod(m[3]),
				Which:    NormalizeWhich(m[2]),
			}, true
		},
	},
	{
		name:    "spend today/yesterday (en)",
		action:  ActionQuerySpending,
		pattern: regexp.MustCompile(`how\s+much\s+(?:did\s+i\s+spend\s+)?(today|yesterday)`),
		extract: func(m []string, _ string) (Slots, bool) {
			return Slots{Category: "all", Period: NormalizePeriod(m[1]), Which: timeperiod.This}, true
		},
	},
}

// Parse classifies the utterance against the ordered rule table.
func Parse(utterance string) Intent {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		slots, ok := r.extract(m, lower)
		if !ok {
			continue
		}
		return Intent{Action: r.action, Slots: slots}
	}
	return Intent{Action: ActionUnknown}
}

func amountThenDescription(m []string, _ string) (Slots, bool) {
	return addSlots(m[1], m[2])
}

func descriptionThenAmount(m []string, _ string) (Slots, bool) {
	return addSlots(m[2], m[1])
}

func addSlots(amountTok, desc string) (Slots, bool) {
	paise, err := core.ParseDecimalToPaise(amountTok)
	if err != nil {
		return Slots{}, false
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return Slots{}, false
	}
	return Slots{Amount: paise, Description: desc}, true
}

func allCategories(p timeperiod.Period) func([]string, string) (Slots, bool) {
	return func(_ []string, _ string) (Slots, bool) {
		return Slots{Category: "all", Period: p, Which: timeperiod.This}, true
	}
}

func thisMonth(_ []string, _ string) (Slots, bool) {
	return Slots{Period: timeperiod.Month, Which: timeperiod.This}, true
}

// periodFromText scans the utterance for a period word; month when none
// appears.
func periodFromText(lower string) timeperiod.Period {
	switch {
	case strings.Contains(lower, "week") || strings.Contains(lower, "hafte") || strings.Contains(lower, "hafta"):
		return timeperiod.Week
	case strings.Contains(lower, "year") || strings.Contains(lower, "saal"):
		return timeperiod.Year
	case strings.Contains(lower, "today") || strings.Contains(lower, "aaj"):
		return timeperiod.Today
	case strings.Contains(lower, "yesterday"):
		return timeperiod.Yesterday
	default:
		return timeperiod.Month
	}
}

func whichFromText(lower string) timeperiod.Which {
	if strings.Contains(lower, "pichhle") || strings.Contains(lower, "last") {
		return timeperiod.Last
	}
	return timeperiod.This
}

// NormalizePeriod maps a free-form period token onto the canonical enum.
// Unrecognized or empty tokens default to month.
func NormalizePeriod(token string) timeperiod.Period {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "today", "aaj":
		return timeperiod.Today
	case "yesterday", "kal":
		return timeperiod.Yesterday
	case "week", "hafta", "hafte":
		return timeperiod.Week
	case "year", "saal":
		return timeperiod.Year
	default:
		return timeperiod.Month
	}
}

// NormalizeWhich maps a free-form qualifier token onto this/last.
func NormalizeWhich(token string) timeperiod.Which {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "last", "pichhle":
		return timeperiod.Last
	default:
		return timeperiod.This
	}
}
