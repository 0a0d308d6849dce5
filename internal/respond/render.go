// Package respond renders query results as natural-language replies in
// English or Hindi/Hinglish. It is pure templating: no computation
// happens here beyond picking a template and interpolating values.
package respond

import (
	"fmt"
	"math"
	"strings"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/nlp"
	"github.com/sg-217/paisabuddy/internal/query"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// AddExpense confirms a newly recorded expense.
func AddExpense(e core.Expense, lang nlp.Language) string {
	if lang == nlp.Hindi {
		return fmt.Sprintf("₹%s %s ke liye jod diya gaya.", FormatMoney(e.Amount), e.Category)
	}
	return fmt.Sprintf("Added ₹%s for %s.", FormatMoney(e.Amount), e.Category)
}

// Spending renders a query_spending report.
func Spending(r query.SpendingReport, lang nlp.Language) string {
	cat := r.Category
	if cat == query.AllCategories {
		if lang == nlp.Hindi {
			cat = "kul"
		} else {
			cat = "total"
		}
	}

	if r.Count == 0 {
		if lang == nlp.Hindi {
			return fmt.Sprintf("%s %s par koi kharcha nahi mila.", TimePhrase(r.Range.Period, r.Range.Which, lang), cat)
		}
		return fmt.Sprintf("You haven't spent anything on %s %s.", cat, TimePhrase(r.Range.Period, r.Range.Which, lang))
	}

	if lang == nlp.Hindi {
		return fmt.Sprintf("%s aapne %s par ₹%s kharch kiye, kul %d transaction%s.",
			TimePhrase(r.Range.Period, r.Range.Which, lang), cat, FormatMoney(r.Total), r.Count, plural(r.Count))
	}
	return fmt.Sprintf("You spent ₹%s on %s %s across %d transaction%s.",
		FormatMoney(r.Total), cat, TimePhrase(r.Range.Period, r.Range.Which, lang), r.Count, plural(r.Count))
}

// Summary renders a get_summary report, including the highest category
// when one exists.
func Summary(s query.Summary, lang nlp.Language) string {
	phrase := capitalize(TimePhrase(s.Range.Period, s.Range.Which, lang))

	if lang == nlp.Hindi {
		msg := fmt.Sprintf("%s, aapne kul ₹%s kharch kiye, %d transaction%s.",
			phrase, FormatMoney(s.Total), s.Count, plural(s.Count))
		if s.TopCategory != nil {
			msg += fmt.Sprintf(" Sabse zyada kharcha: %s (₹%s).", s.TopCategory.Category, FormatMoney(s.TopCategory.Amount))
		}
		return msg
	}

	msg := fmt.Sprintf("%s, you've spent ₹%s across %d transaction%s.",
		phrase, FormatMoney(s.Total), s.Count, plural(s.Count))
	if s.TopCategory != nil {
		msg += fmt.Sprintf(" Highest category: %s (₹%s).", s.TopCategory.Category, FormatMoney(s.TopCategory.Amount))
	}
	return msg
}

// Biggest renders the biggest_expense result; e is nil when the range
// held no expenses.
func Biggest(e *core.Expense, rng timeperiod.Range, lang nlp.Language) string {
	phrase := TimePhrase(rng.Period, rng.Which, lang)
	if e == nil {
		if lang == nlp.Hindi {
			return fmt.Sprintf("%s koi kharcha nahi mila.", phrase)
		}
		return fmt.Sprintf("No expenses found %s.", phrase)
	}

	desc := ""
	if e.Description != "" {
		desc = fmt.Sprintf(" (%s)", e.Description)
	}
	if lang == nlp.Hindi {
		return fmt.Sprintf("%s aapka sabse bada kharcha ₹%s %s par hua%s.",
			phrase, FormatMoney(e.Amount), e.Category, desc)
	}
	return fmt.Sprintf("Your biggest expense %s is ₹%s on %s%s.",
		phrase, FormatMoney(e.Amount), e.Category, desc)
}

// TopCategories renders the ranked category list.
func TopCategories(list []core.CategoryAmount, rng timeperiod.Range, lang nlp.Language) string {
	phrase := TimePhrase(rng.Period, rng.Which, lang)
	if len(list) == 0 {
		if lang == nlp.Hindi {
			return fmt.Sprintf("%s koi spending nahi mili.", phrase)
		}
		return fmt.Sprintf("No spending found %s.", phrase)
	}

	items := make([]string, len(list))
	for i, ca := range list {
		items[i] = fmt.Sprintf("%d. %s ₹%s", i+1, ca.Category, FormatMoney(ca.Amount))
	}
	joined := strings.Join(items, ", ")

	if lang == nlp.Hindi {
		return fmt.Sprintf("%s top %d categories: %s.", phrase, len(list), joined)
	}
	return fmt.Sprintf("Top %d categories %s: %s.", len(list), phrase, joined)
}

// Savings renders a savings report; sv is nil when no baseline is
// configured.
func Savings(sv *query.SavingsReport, lang nlp.Language) string {
	if sv == nil {
		if lang == nlp.Hindi {
			return "Aapki income/budget settings nahi mili. Kripya monthly income set karein."
		}
		return "I couldn't find your income/budget settings. Please set your monthly income."
	}

	phrase := capitalize(TimePhrase(sv.Range.Period, sv.Range.Which, lang))
	saved := sv.Savings.Paise >= 0
	abs := FormatMoney(sv.Savings.Abs())

	if lang == nlp.Hindi {
		verb := "bachaaye"
		if !saved {
			verb = "zyada kharch kiye"
		}
		return fmt.Sprintf("%s, aapne ₹%s %s.\n(Baseline %s: ₹%s, Expenses: ₹%s.)",
			phrase, abs, verb, sv.BaselineType, FormatMoney(sv.EffectiveIncome), FormatMoney(sv.TotalExpenses))
	}

	verb := "saved"
	if !saved {
		verb = "overspent by"
	}
	return fmt.Sprintf("%s, you %s ₹%s.\n(Baseline %s: ₹%s, Expenses: ₹%s.)",
		phrase, verb, abs, sv.BaselineType, FormatMoney(sv.EffectiveIncome), FormatMoney(sv.TotalExpenses))
}

// LastExpenses renders the recent-expense listing.
func LastExpenses(list []core.Expense, lang nlp.Language) string {
	if len(list) == 0 {
		if lang == nlp.Hindi {
			return "Koi recent expense nahi mila."
		}
		return "No recent expenses found."
	}

	items := make([]string, len(list))
	for i, e := range list {
		items[i] = fmt.Sprintf("₹%s %s (%s)", FormatMoney(e.Amount), e.Category, shortDate(e.Date))
	}
	joined := strings.Join(items, ", ")

	if lang == nlp.Hindi {
		return fmt.Sprintf("Aakhri %d kharche: %s.", len(list), joined)
	}
	return fmt.Sprintf("Last %d expenses: %s.", len(list), joined)
}

// Compare renders a period comparison with trend word and rounded
// percentage.
func Compare(cmp query.Comparison, lang nlp.Language) string {
	pctStr := ""
	if cmp.Pct != nil {
		pctStr = fmt.Sprintf(" (~%d%%).", int(math.Round(math.Abs(*cmp.Pct))))
	}
	absDiff := FormatMoney(cmp.Diff.Abs())

	if lang == nlp.Hindi {
		a := capitalize(TimePhrase(cmp.Base.Range.Period, cmp.Base.Range.Which, lang))
		b := TimePhrase(cmp.Vs.Range.Period, cmp.Vs.Range.Which, lang)
		trend := "barabar"
		if cmp.Diff.Paise > 0 {
			trend = "zyada"
		} else if cmp.Diff.Paise < 0 {
			trend = "kam"
		}
		return fmt.Sprintf("%s (₹%s) %s (₹%s) se %s hai. Antar: ₹%s%s",
			a, FormatMoney(cmp.Base.Total), b, FormatMoney(cmp.Vs.Total), trend, absDiff, pctStr)
	}

	a := capitalize(TimePhrase(cmp.Base.Range.Period, cmp.Base.Range.Which, lang))
	b := TimePhrase(cmp.Vs.Range.Period, cmp.Vs.Range.Which, lang)
	trend := "the same as"
	if cmp.Diff.Paise > 0 {
		trend = "higher than"
	} else if cmp.Diff.Paise < 0 {
		trend = "lower than"
	}
	return fmt.Sprintf("%s (₹%s) is %s %s (₹%s). Difference: ₹%s%s",
		a, FormatMoney(cmp.Base.Total), trend, b, FormatMoney(cmp.Vs.Total), absDiff, pctStr)
}

// Average renders the avg_spending result.
func Average(avg query.Average, lang nlp.Language) string {
	if lang == nlp.Hindi {
		return fmt.Sprintf("%s ka aapka ausat kharcha ₹%s hai.", periodUnit(avg.Period, lang), FormatMoney(avg.Average))
	}
	return fmt.Sprintf("Your average %s spending is ₹%s.", periodUnit(avg.Period, lang), FormatMoney(avg.Average))
}

// Help lists example commands for unrecognized utterances.
func Help(lang nlp.Language) string {
	if lang == nlp.Hindi {
		return `Mujhe sahi samajh nahi aaya. Aise bolein:
- "200 rupay khane mein add karo"
- "Aaj maine kitna kharch kiya?"
- "Kal ka kharcha kitna tha?"
- "Is mahine ka sabse bada kharcha kya hai?"
- "Is hafte top 3 categories batao"
- "Is mahine kitni savings hui?"
- "Pichhle 5 expenses dikhao"`
	}
	return `I didn't catch that. Try:
- "Add 200 rupees for food"
- "How much did I spend today?"
- "How much yesterday?"
- "What's my biggest expense this month?"
- "Top 3 categories this week"
- "How much did I save this month?"
- "Show my last 5 expenses"`
}
