package query

import (
	"context"
	"testing"
	"time"

	"github.com/sg-217/paisabuddy/internal/classify"
	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store"
	"github.com/sg-217/paisabuddy/internal/store/memory"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// clock is a Wednesday in a 30-day month.
var clock = time.Date(2025, time.June, 18, 15, 0, 0, 0, time.UTC)

func newTestExecutor(baseline Baseline) (*Executor, *memory.Store) {
	st := memory.New()
	an := classify.NewTextAnalyzer()
	cl := classify.New(an, classify.DefaultLexicon(an))
	ex := NewExecutor(st, cl, StaticBaseline(baseline), WithClock(func() time.Time { return clock }))
	return ex, st
}

func seed(t *testing.T, st *memory.Store, day int, rupees int64, cat core.Category) {
	t.Helper()
	_, err := st.Create(context.Background(), core.Expense{
		UserID:   "u1",
		Amount:   core.FromRupees(rupees),
		Category: cat,
		Date:     time.Date(2025, time.June, day, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestAddExpense(t *testing.T) {
	ex, st := newTestExecutor(Baseline{})
	ctx := context.Background()

	e, err := ex.AddExpense(ctx, "u1", core.FromRupees(200), "food")
	if err != nil {
		t.Fatal(err)
	}
	if e.Category != core.Food {
		t.Errorf("category = %q, want food", e.Category)
	}
	if !e.Date.Equal(clock) {
		t.Errorf("date = %v, want the executor clock %v", e.Date, clock)
	}
	if e.ID == "" {
		t.Error("expense should carry a store-assigned id")
	}

	stored, _ := st.Find(ctx, "u1", store.Filter{})
	if len(stored) != 1 {
		t.Fatalf("store holds %d expenses, want 1", len(stored))
	}
}

func TestAddExpenseSuggestsTags(t *testing.T) {
	ex, _ := newTestExecutor(Baseline{})
	e, err := ex.AddExpense(context.Background(), "u1", core.FromRupees(450), "dinner with friends at taj restaurant")
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Tags) == 0 {
		t.Error("descriptive text should yield suggested tags")
	}
}

func TestQuerySpending(t *testing.T) {
	ex, st := newTestExecutor(Baseline{})
	seed(t, st, 10, 100, core.Food)
	seed(t, st, 12, 50, core.Food)
	seed(t, st, 14, 80, core.Travel)
	rng := timeperiod.Resolve(timeperiod.Month, timeperiod.This, clock)
	ctx := context.Background()

	t.Run("all categories", func(t *testing.T) {
		got, err := ex.QuerySpending(ctx, "u1", "all", rng)
		if err != nil {
			t.Fatal(err)
		}
		if got.Category != AllCategories {
			t.Errorf("category label = %q, want all", got.Category)
		}
		if got.Total.Paise != 23000 || got.Count != 3 {
			t.Errorf("total/count = %d/%d, want 23000/3", got.Total.Paise, got.Count)
		}
	})

	t.Run("mapped category", func(t *testing.T) {
		got, err := ex.QuerySpending(ctx, "u1", "food", rng)
		if err != nil {
			t.Fatal(err)
		}
		if got.Category != "food" {
			t.Errorf("category label = %q, want food", got.Category)
		}
		if got.Total.Paise != 15000 || got.Count != 2 {
			t.Errorf("total/count = %d/%d, want 15000/2", got.Total.Paise, got.Count)
		}
	})

	t.Run("unmappable category bypasses filter", func(t *testing.T) {
		got, err := ex.QuerySpending(ctx, "u1", "zzz", rng)
		if err != nil {
			t.Fatal(err)
		}
		if got.Category != "zzz" {
			t.Errorf("label should echo the raw token, got %q", got.Category)
		}
		if got.Count != 3 {
			t.Errorf("unmappable token should bypass the filter, count = %d", got.Count)
		}
	})

	t.Run("empty range", func(t *testing.T) {
		last := timeperiod.Resolve(timeperiod.Month, timeperiod.Last, clock)
		got, err := ex.QuerySpending(ctx, "u1", "all", last)
		if err != nil {
			t.Fatal(err)
		}
		if got.Count != 0 || got.Total.Paise != 0 {
			t.Errorf("last month should be empty, got %+v", got)
		}
	})
}

func TestGetSummary(t *testing.T) {
	ex, st := newTestExecutor(Baseline{})
	seed(t, st, 10, 100, core.Food)
	seed(t, st, 12, 50, core.Food)
	seed(t, st, 14, 80, core.Travel)
	rng := timeperiod.Resolve(timeperiod.Month, timeperiod.This, clock)

	got, err := ex.GetSummary(context.Background(), "u1", rng)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total.Paise != 23000 || got.Count != 3 {
		t.Errorf("total/count = %d/%d, want 23000/3", got.Total.Paise, got.Count)
	}
	if got.TopCategory == nil || got.TopCategory.Category != core.Food || got.TopCategory.Amount.Paise != 15000 {
		t.Errorf("top category = %+v, want food 15000", got.TopCategory)
	}
	if len(got.ByCategory) != 2 || got.ByCategory[0].Category != core.Food {
		t.Errorf("breakdown = %+v, want food first", got.ByCategory)
	}
}

func TestBiggestExpense(t *testing.T) {
	ex, st := newTestExecutor(Baseline{})
	rng := timeperiod.Resolve(timeperiod.Month, timeperiod.This, clock)
	ctx := context.Background()

	got, err := ex.BiggestExpense(ctx, "u1", rng)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("empty range should return nil, got %+v", got)
	}

	seed(t, st, 10, 100, core.Food)
	seed(t, st, 12, 900, core.Rent)
	got, err = ex.BiggestExpense(ctx, "u1", rng)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Amount.Paise != 90000 {
		t.Errorf("biggest = %+v, want the 900-rupee rent", got)
	}
}

func TestTopCategories(t *testing.T) {
	ex, st := newTestExecutor(Baseline{})
	seed(t, st, 10, 100, core.Food)
	seed(t, st, 12, 50, core.Food)
	seed(t, st, 14, 80, core.Travel)
	rng := timeperiod.Resolve(timeperiod.Month, timeperiod.This, clock)

	got, err := ex.TopCategories(context.Background(), "u1", rng, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	if got[0].Category != core.Food || got[0].Amount.Paise != 15000 {
		t.Errorf("first = %+v, want food 150", got[0])
	}
	if got[1].Category != core.Travel || got[1].Amount.Paise != 8000 {
		t.Errorf("second = %+v, want travel 80", got[1])
	}
}

func TestLastExpenses(t *testing.T) {
	ex, st := newTestExecutor(Baseline{})
	seed(t, st, 5, 10, core.Food)
	seed(t, st, 10, 20, core.Food)
	seed(t, st, 15, 30, core.Food)

	got, err := ex.LastExpenses(context.Background(), "u1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d expenses, want 2", len(got))
	}
	if got[0].Date.Day() != 15 || got[1].Date.Day() != 10 {
		t.Errorf("want newest first, got days %d,%d", got[0].Date.Day(), got[1].Date.Day())
	}
}
