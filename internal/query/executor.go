// Package query executes per-intent read and aggregate operations
// against the Expense Store, scoped to a user and a resolved period.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sg-217/paisabuddy/internal/classify"
	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// AllCategories is the spending-report label when no category filter
// applies.
const AllCategories = "all"

// Baseline is the monthly income/budget figure savings is computed
// against. Zero values mean "not configured".
type Baseline struct {
	MonthlyIncome core.Money
	MonthlyBudget core.Money
}

// Configured reports whether any baseline figure is set.
func (b Baseline) Configured() bool {
	return b.MonthlyIncome.Paise > 0 || b.MonthlyBudget.Paise > 0
}

// BaselineProvider is the optional budget/income collaborator.
type BaselineProvider interface {
	Baseline(ctx context.Context, userID string) (Baseline, error)
}

// StaticBaseline is a BaselineProvider serving one fixed baseline for
// every user, typically from configuration.
type StaticBaseline Baseline

func (s StaticBaseline) Baseline(context.Context, string) (Baseline, error) {
	return Baseline(s), nil
}

// Executor runs the per-intent operations. All operations except
// AddExpense are read-only.
type Executor struct {
	store      store.ExpenseStore
	classifier *classify.Classifier
	baselines  BaselineProvider
	now        func() time.Time
}

func NewExecutor(st store.ExpenseStore, cl *classify.Classifier, bl BaselineProvider, opts ...Option) *Executor {
	ex := &Executor{store: st, classifier: cl, baselines: bl, now: time.Now}
	for _, opt := range opts {
		opt(ex)
	}
	return ex
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock fixes the executor's clock; tests use this to anchor ranges.
func WithClock(now func() time.Time) Option {
	return func(ex *Executor) { ex.now = now }
}

// SpendingReport is the query_spending result.
type SpendingReport struct {
	Category string // canonical category, or "all"
	Range    timeperiod.Range
	Total    core.Money
	Count    int
	Recent   []core.Expense // up to five most recent in range
}

// Summary is the get_summary result.
type Summary struct {
	Range       timeperiod.Range
	Total       core.Money
	Count       int
	TopCategory *core.CategoryAmount
	ByCategory  []core.CategoryAmount // sorted by amount descending
}

// AddExpense classifies the description, stamps the record with now, and
// appends it to the store.
func (ex *Executor) AddExpense(ctx context.Context, userID string, amount core.Money, description string) (core.Expense, error) {
	category := ex.classifier.Categorize(description, amount)
	expense := core.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Tags:        ex.classifier.SuggestTags(description),
		Date:        ex.now(),
	}
	created, err := ex.store.Create(ctx, expense)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	return created, nil
}

// QuerySpending totals the user's spending over the range, optionally
// filtered by category. A raw category of "all" (or empty, or one the
// classifier cannot map) bypasses the filter.
func (ex *Executor) QuerySpending(ctx context.Context, userID, rawCategory string, rng timeperiod.Range) (SpendingReport, error) {
	raw := strings.ToLower(strings.TrimSpace(rawCategory))
	label := AllCategories
	filter := store.Filter{Range: &rng, Sort: store.ByDateDesc}

	if raw != "" && raw != AllCategories {
		label = raw
		if mapped := ex.classifier.Categorize(raw, core.Money{}); mapped != core.Other {
			filter.Category = mapped
			label = string(mapped)
		}
	}

	expenses, err := ex.store.Find(ctx, userID, filter)
	if err != nil {
		return SpendingReport{}, fmt.Errorf("query spending: %w", err)
	}

	report := SpendingReport{Category: label, Range: rng, Count: len(expenses)}
	for _, e := range expenses {
		report.Total = report.Total.Add(e.Amount)
	}
	if len(expenses) > 5 {
		expenses = expenses[:5]
	}
	report.Recent = expenses
	return report, nil
}

// GetSummary totals the range with a per-category breakdown and the
// single highest-summed category.
func (ex *Executor) GetSummary(ctx context.Context, userID string, rng timeperiod.Range) (Summary, error) {
	expenses, err := ex.store.Find(ctx, userID, store.Filter{Range: &rng})
	if err != nil {
		return Summary{}, fmt.Errorf("get summary: %w", err)
	}

	summary := Summary{Range: rng, Count: len(expenses)}
	sums := make(map[core.Category]core.Money)
	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.Amount)
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	summary.ByCategory = sortedCategorySums(sums)
	if len(summary.ByCategory) > 0 {
		top := summary.ByCategory[0]
		summary.TopCategory = &top
	}
	return summary, nil
}

// BiggestExpense returns the single largest expense in range, or nil if
// the range is empty.
func (ex *Executor) BiggestExpense(ctx context.Context, userID string, rng timeperiod.Range) (*core.Expense, error) {
	expenses, err := ex.store.Find(ctx, userID, store.Filter{Range: &rng, Sort: store.ByAmountDesc, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("biggest expense: %w", err)
	}
	if len(expenses) == 0 {
		return nil, nil
	}
	return &expenses[0], nil
}

// TopCategories returns the category sums over the range, descending,
// truncated to limit.
func (ex *Executor) TopCategories(ctx context.Context, userID string, rng timeperiod.Range, limit int) ([]core.CategoryAmount, error) {
	expenses, err := ex.store.Find(ctx, userID, store.Filter{Range: &rng})
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}

	sums := make(map[core.Category]core.Money)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	out := sortedCategorySums(sums)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LastExpenses returns the user's n most recent expenses across all time.
func (ex *Executor) LastExpenses(ctx context.Context, userID string, n int) ([]core.Expense, error) {
	expenses, err := ex.store.Find(ctx, userID, store.Filter{Sort: store.ByDateDesc, Limit: n})
	if err != nil {
		return nil, fmt.Errorf("last expenses: %w", err)
	}
	return expenses, nil
}

func sortedCategorySums(sums map[core.Category]core.Money) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(sums))
	for cat, amt := range sums {
		out = append(out, core.CategoryAmount{Category: cat, Amount: amt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount.Paise != out[j].Amount.Paise {
			return out[i].Amount.Paise > out[j].Amount.Paise
		}
		return out[i].Category < out[j].Category
	})
	return out
}
