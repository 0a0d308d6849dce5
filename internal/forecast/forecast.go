// Package forecast predicts next-period spending from historical
// patterns: recurring categories, irregular event categories, and
// short-window per-category averages. Every call recomputes from the
// full trailing window; nothing is cached between requests.
package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// Confidence is the coarse trust label derived from sample size.
type Confidence string

const (
	Low    Confidence = "low"
	Medium Confidence = "medium"
	High   Confidence = "high"
)

// Trend labels the direction of a recurring category's amounts.
type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
)

// RegularForecast predicts a recurring (approximately monthly) category.
type RegularForecast struct {
	Predicted  core.Money
	Average    core.Money
	Trend      Trend
	Confidence Confidence
}

// IrregularForecast predicts an event-driven category from the fixed
// watch list.
type IrregularForecast struct {
	Probability     float64 // capped at 0.9
	PredictedAmount core.Money
	Frequency       string // "frequent" or "occasional"
	Confidence      Confidence
}

// CategoryForecast is the short-window (two month) per-category view.
type CategoryForecast struct {
	Predicted core.Money
	Min       core.Money
	Max       core.Money
	Count     int
}

// Insight is a human-readable observation derived from the predictions.
type Insight struct {
	Type    string // "warning" or "info"
	Message string
}

// Bundle is the complete prediction output for one user.
type Bundle struct {
	Regular    map[core.Category]RegularForecast
	Irregular  map[core.Category]IrregularForecast
	ByCategory map[core.Category]CategoryForecast
	Total      core.Money
	Confidence Confidence
	Insights   []Insight
	Message    string // set when history is too thin to predict
}

// irregularWatchlist holds the categories predicted by occurrence
// probability rather than cadence.
var irregularWatchlist = []core.Category{
	core.Emergency, core.Celebration, core.Healthcare, core.Travel,
}

// festivalMonths is the fixed Indian festival season set.
var festivalMonths = map[time.Month]struct{}{
	time.March: {}, time.April: {}, time.October: {}, time.November: {}, time.December: {},
}

const minHistory = 10

// Forecaster computes prediction bundles from the Expense Store.
type Forecaster struct {
	store store.ExpenseStore
	now   func() time.Time
}

func New(st store.ExpenseStore) *Forecaster {
	return &Forecaster{store: st, now: time.Now}
}

// NewWithClock builds a forecaster with a fixed clock, for tests.
func NewWithClock(st store.ExpenseStore, now func() time.Time) *Forecaster {
	return &Forecaster{store: st, now: now}
}

// Forecast predicts the next period's spending over the trailing six
// months of records. Fewer than ten records yields a low-confidence
// empty bundle rather than an error.
func (f *Forecaster) Forecast(ctx context.Context, userID string) (Bundle, error) {
	now := f.now()
	windowStart := time.Date(now.Year(), now.Month()-6, 1, 0, 0, 0, 0, now.Location())
	rng := timeperiod.Range{Start: windowStart, End: now}

	expenses, err := f.store.Find(ctx, userID, store.Filter{Range: &rng, Sort: store.ByDateAsc})
	if err != nil {
		return Bundle{}, fmt.Errorf("load forecast history: %w", err)
	}

	if len(expenses) < minHistory {
		return Bundle{
			Regular:    map[core.Category]RegularForecast{},
			Irregular:  map[core.Category]IrregularForecast{},
			ByCategory: map[core.Category]CategoryForecast{},
			Confidence: Low,
			Message:    "Need more historical data for accurate predictions",
		}, nil
	}

	regular := predictRegular(expenses)
	irregular := predictIrregular(expenses, now)
	byCategory := predictByCategory(expenses, now)
	total := totalPrediction(regular, irregular)

	return Bundle{
		Regular:    regular,
		Irregular:  irregular,
		ByCategory: byCategory,
		Total:      total,
		Confidence: confidenceTier(len(expenses)),
		Insights:   insights(expenses, regular, irregular, total, now),
	}, nil
}

// predictRegular finds categories with an approximately monthly cadence
// and projects their next amount from average and trend.
func predictRegular(expenses []core.Expense) map[core.Category]RegularForecast {
	out := make(map[core.Category]RegularForecast)
	for cat, group := range groupByCategory(expenses) {
		if !isRecurring(group) {
			continue
		}
		amounts := make([]float64, len(group))
		var sum float64
		for i, e := range group {
			amounts[i] = e.Amount.Rupees()
			sum += amounts[i]
		}
		average := sum / float64(len(amounts))
		trend := calculateTrend(amounts)

		label := Stable
		if trend > 0 {
			label = Increasing
		} else if trend < 0 {
			label = Decreasing
		}
		out[cat] = RegularForecast{
			Predicted:  core.RoundRupees(average * (1 + trend)),
			Average:    core.RoundRupees(average),
			Trend:      label,
			Confidence: High,
		}
	}
	return out
}

// isRecurring requires at least three records whose inter-arrival
// intervals all sit within seven days of their mean, with the mean
// between 20 and 40 days.
func isRecurring(group []core.Expense) bool {
	if len(group) < 3 {
		return false
	}
	dates := make([]time.Time, len(group))
	for i, e := range group {
		dates[i] = e.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	intervals := make([]float64, 0, len(dates)-1)
	var sum float64
	for i := 1; i < len(dates); i++ {
		days := dates[i].Sub(dates[i-1]).Hours() / 24
		intervals = append(intervals, days)
		sum += days
	}
	mean := sum / float64(len(intervals))
	for _, iv := range intervals {
		if diff := iv - mean; diff < -7 || diff > 7 {
			return false
		}
	}
	return mean > 20 && mean < 40
}

// calculateTrend compares the mean of the first half against the mean
// of the second half; halves overlap on the middle element for odd
// lengths.
func calculateTrend(amounts []float64) float64 {
	n := len(amounts)
	if n < 2 {
		return 0
	}
	firstLen := (n + 1) / 2
	secondStart := n / 2

	var first, second float64
	for _, a := range amounts[:firstLen] {
		first += a
	}
	first /= float64(firstLen)
	for _, a := range amounts[secondStart:] {
		second += a
	}
	second /= float64(n - secondStart)

	return (second - first) / first
}

// predictIrregular covers the fixed watch list of event-driven
// categories, scaled by the festival-season factor.
func predictIrregular(expenses []core.Expense, now time.Time) map[core.Category]IrregularForecast {
	out := make(map[core.Category]IrregularForecast)
	byCat := groupByCategory(expenses)

	for _, cat := range irregularWatchlist {
		group := byCat[cat]
		if len(group) == 0 {
			continue
		}

		months := make(map[string]struct{})
		var sum float64
		inFestival := false
		for _, e := range group {
			months[e.Date.Format("2006-01")] = struct{}{}
			sum += e.Amount.Rupees()
			if _, ok := festivalMonths[e.Date.Month()]; ok {
				inFestival = true
			}
		}
		frequency := float64(len(months)) / 6
		avg := sum / float64(len(group))

		factor := 1.0
		if _, festive := festivalMonths[now.Month()]; festive && inFestival {
			factor = 1.5
		}

		probability := frequency * factor
		if probability > 0.9 {
			probability = 0.9
		}
		freqLabel := "occasional"
		if frequency > 0.5 {
			freqLabel = "frequent"
		}
		conf := Low
		if len(group) > 3 {
			conf = Medium
		}
		out[cat] = IrregularForecast{
			Probability:     probability,
			PredictedAmount: core.RoundRupees(avg * factor),
			Frequency:       freqLabel,
			Confidence:      conf,
		}
	}
	return out
}

// predictByCategory averages the last two months per category.
func predictByCategory(expenses []core.Expense, now time.Time) map[core.Category]CategoryForecast {
	cutoff := time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())

	amounts := make(map[core.Category][]float64)
	for _, e := range expenses {
		if e.Date.Before(cutoff) {
			continue
		}
		amounts[e.Category] = append(amounts[e.Category], e.Amount.Rupees())
	}

	out := make(map[core.Category]CategoryForecast)
	for cat, vals := range amounts {
		var sum float64
		min, max := vals[0], vals[0]
		for _, v := range vals {
			sum += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		out[cat] = CategoryForecast{
			Predicted: core.RoundRupees(sum / float64(len(vals))),
			Min:       core.RoundRupees(min),
			Max:       core.RoundRupees(max),
			Count:     len(vals),
		}
	}
	return out
}

// totalPrediction sums recurring predictions plus probability-weighted
// irregular predictions.
func totalPrediction(regular map[core.Category]RegularForecast, irregular map[core.Category]IrregularForecast) core.Money {
	var total float64
	for _, r := range regular {
		total += r.Predicted.Rupees()
	}
	for _, ir := range irregular {
		total += ir.PredictedAmount.Rupees() * ir.Probability
	}
	return core.RoundRupees(total)
}

func confidenceTier(count int) Confidence {
	switch {
	case count < 20:
		return Low
	case count < 50:
		return Medium
	default:
		return High
	}
}

// insights derives warnings and notes from the predictions. Categories
// iterate in taxonomy order so output is deterministic.
func insights(expenses []core.Expense, regular map[core.Category]RegularForecast, irregular map[core.Category]IrregularForecast, total core.Money, now time.Time) []Insight {
	var out []Insight

	for _, cat := range core.Taxonomy {
		if r, ok := regular[cat]; ok && r.Trend == Increasing {
			out = append(out, Insight{
				Type:    "warning",
				Message: fmt.Sprintf("Your %s expenses are trending upward. Consider reviewing this category.", cat),
			})
		}
	}

	for _, cat := range irregularWatchlist {
		if ir, ok := irregular[cat]; ok && ir.Probability > 0.6 {
			out = append(out, Insight{
				Type:    "info",
				Message: fmt.Sprintf("High probability of %s expenses next month. Consider setting aside ₹%.0f.", cat, ir.PredictedAmount.Rupees()),
			})
		}
	}

	lastMonth := timeperiod.Resolve(timeperiod.Month, timeperiod.Last, now)
	var lastMonthTotal float64
	for _, e := range expenses {
		if lastMonth.Contains(e.Date) {
			lastMonthTotal += e.Amount.Rupees()
		}
	}
	if total.Rupees() > lastMonthTotal*1.1 {
		out = append(out, Insight{
			Type:    "warning",
			Message: "Predicted expenses are 10% higher than last month. Plan accordingly.",
		})
	}

	return out
}

func groupByCategory(expenses []core.Expense) map[core.Category][]core.Expense {
	out := make(map[core.Category][]core.Expense)
	for _, e := range expenses {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}
