package query

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// SavingsReport compares spending in a range against the prorated
// monthly baseline.
type SavingsReport struct {
	Range           timeperiod.Range
	BaselineType    string // "income" or "budget"
	EffectiveIncome core.Money
	TotalExpenses   core.Money
	Savings         core.Money
}

// CompareSide is one half of a period comparison.
type CompareSide struct {
	Range timeperiod.Range
	Total core.Money
	Count int
}

// Comparison is the compare_periods result. Pct is nil when the vs-side
// total is zero.
type Comparison struct {
	Base CompareSide
	Vs   CompareSide
	Diff core.Money
	Pct  *float64
}

// Average is the avg_spending result.
type Average struct {
	Period  timeperiod.Period
	Average core.Money
}

// Savings prorates the monthly baseline to the range and subtracts the
// range's spending. Returns (nil, nil) when no baseline is configured:
// that is a valid state, not an error.
//
// Proration factors: day-scoped and week-scoped ranges use
// rangeDays/daysInCurrentMonth, year uses 12, month uses 1.
func (ex *Executor) Savings(ctx context.Context, userID string, rng timeperiod.Range) (*SavingsReport, error) {
	baseline, err := ex.baselines.Baseline(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	if !baseline.Configured() {
		return nil, nil
	}

	expenses, err := ex.store.Find(ctx, userID, store.Filter{Range: &rng})
	if err != nil {
		return nil, fmt.Errorf("savings query: %w", err)
	}
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	baselineType := "income"
	amount := baseline.MonthlyIncome
	if amount.Paise <= 0 {
		baselineType = "budget"
		amount = baseline.MonthlyBudget
	}

	factor := 1.0
	switch rng.Period {
	case timeperiod.Today, timeperiod.Yesterday, timeperiod.Week:
		factor = float64(rng.Days()) / float64(timeperiod.DaysInMonth(ex.now()))
	case timeperiod.Year:
		factor = 12
	}

	effective := core.RoundRupees(amount.Rupees() * factor)
	return &SavingsReport{
		Range:           rng,
		BaselineType:    baselineType,
		EffectiveIncome: effective,
		TotalExpenses:   total,
		Savings:         effective.Sub(total),
	}, nil
}

// ComparePeriods totals two independent ranges. The two reads are
// range-disjoint and read-only, so they run concurrently.
func (ex *Executor) ComparePeriods(ctx context.Context, userID string, base, vs timeperiod.Range) (Comparison, error) {
	sides := [2]CompareSide{{Range: base}, {Range: vs}}

	g, gctx := errgroup.WithContext(ctx)
	for i := range sides {
		g.Go(func() error {
			rng := sides[i].Range
			expenses, err := ex.store.Find(gctx, userID, store.Filter{Range: &rng})
			if err != nil {
				return fmt.Errorf("compare period %s/%s: %w", rng.Which, rng.Period, err)
			}
			sides[i].Count = len(expenses)
			for _, e := range expenses {
				sides[i].Total = sides[i].Total.Add(e.Amount)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{Base: sides[0], Vs: sides[1], Diff: sides[0].Total.Sub(sides[1].Total)}
	if sides[1].Total.Paise != 0 {
		pct := cmp.Diff.Rupees() / sides[1].Total.Rupees() * 100
		cmp.Pct = &pct
	}
	return cmp, nil
}

// AvgSpending averages spending per period unit:
//
//	day:   month-to-date total / days elapsed in the month
//	week:  last 8 weeks' total / 8
//	year:  year-to-date total / months elapsed
//	month: month-to-date total, not divided (kept as-is deliberately)
func (ex *Executor) AvgSpending(ctx context.Context, userID string, period timeperiod.Period) (Average, error) {
	now := ex.now()

	switch period {
	case timeperiod.Today, timeperiod.Yesterday:
		// treated as "per day"
		total, err := ex.totalSince(ctx, userID, timeperiod.Resolve(timeperiod.Month, timeperiod.This, now).Start, now)
		if err != nil {
			return Average{}, err
		}
		return Average{Period: period, Average: core.RoundRupees(total.Rupees() / float64(now.Day()))}, nil
	case timeperiod.Week:
		total, err := ex.totalSince(ctx, userID, now.AddDate(0, 0, -56), now)
		if err != nil {
			return Average{}, err
		}
		return Average{Period: period, Average: core.RoundRupees(total.Rupees() / 8)}, nil
	case timeperiod.Year:
		total, err := ex.totalSince(ctx, userID, timeperiod.Resolve(timeperiod.Year, timeperiod.This, now).Start, now)
		if err != nil {
			return Average{}, err
		}
		return Average{Period: period, Average: core.RoundRupees(total.Rupees() / float64(now.Month()))}, nil
	default:
		total, err := ex.totalSince(ctx, userID, timeperiod.Resolve(timeperiod.Month, timeperiod.This, now).Start, now)
		if err != nil {
			return Average{}, err
		}
		return Average{Period: timeperiod.Month, Average: total}, nil
	}
}

// totalSince sums the user's spending in the ad-hoc window [start, end].
func (ex *Executor) totalSince(ctx context.Context, userID string, start, end time.Time) (core.Money, error) {
	rng := timeperiod.Range{Start: start, End: end}
	expenses, err := ex.store.Find(ctx, userID, store.Filter{Range: &rng})
	if err != nil {
		return core.Money{}, fmt.Errorf("average query: %w", err)
	}
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}
