package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/sg-217/paisabuddy/internal/classify"
	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/log"
	"github.com/sg-217/paisabuddy/internal/nlp"
	"github.com/sg-217/paisabuddy/internal/query"
	"github.com/sg-217/paisabuddy/internal/store/memory"
)

var clock = time.Date(2025, time.June, 18, 15, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *memory.Store) {
	t.Helper()
	st := memory.New()
	an := classify.NewTextAnalyzer()
	cl := classify.New(an, classify.DefaultLexicon(an))
	ex := query.NewExecutor(st, cl, query.StaticBaseline{MonthlyIncome: core.FromRupees(30000)},
		query.WithClock(func() time.Time { return clock }))

	logger := log.New(log.Config{
		Component: log.ComponentEngine,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
	opts = append([]Option{WithClock(func() time.Time { return clock })}, opts...)
	return New(ex, logger, opts...), st
}

func TestExecuteEmptyTranscript(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.Execute(context.Background(), "u1", "   ")
	if !errors.Is(err, core.ErrEmptyTranscript) {
		t.Errorf("err = %v, want ErrEmptyTranscript", err)
	}
}

func TestExecuteAddThenQuery(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	add, err := eng.Execute(ctx, "u1", "add 200 rupees for food")
	if err != nil {
		t.Fatal(err)
	}
	if !add.Success || add.Action != nlp.ActionAddExpense {
		t.Fatalf("add result = %+v", add)
	}
	if add.Lang != nlp.English {
		t.Errorf("lang = %q, want en", add.Lang)
	}
	if !strings.Contains(add.Response, "₹200") {
		t.Errorf("response = %q", add.Response)
	}
	e, ok := add.Data.(core.Expense)
	if !ok || e.Category != core.Food {
		t.Errorf("data = %#v, want a food expense", add.Data)
	}

	q, err := eng.Execute(ctx, "u1", "aaj maine kitna kharch kiya")
	if err != nil {
		t.Fatal(err)
	}
	if q.Action != nlp.ActionQuerySpending || q.Lang != nlp.Hindi {
		t.Fatalf("query result = %+v", q)
	}
	report, ok := q.Data.(query.SpendingReport)
	if !ok {
		t.Fatalf("data = %#v", q.Data)
	}
	if report.Total.Paise != 20000 || report.Count != 1 {
		t.Errorf("report = %+v, want the one 200-rupee expense", report)
	}
	if !strings.Contains(q.Response, "aaj") {
		t.Errorf("hindi response = %q", q.Response)
	}
}

func TestExecuteSummaryDefaultsToThisMonth(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.Execute(ctx, "u1", "add 500 rupees for rent"); err != nil {
		t.Fatal(err)
	}

	got, err := eng.Execute(ctx, "u1", "is mahine mera total kharcha kitna hai")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != nlp.ActionGetSummary {
		t.Fatalf("action = %q", got.Action)
	}
	s := got.Data.(query.Summary)
	if s.Total.Paise != 50000 {
		t.Errorf("summary total = %d, want 50000", s.Total.Paise)
	}
}

func TestExecuteSavings(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.Execute(ctx, "u1", "add 22000 rupees for rent"); err != nil {
		t.Fatal(err)
	}

	got, err := eng.Execute(ctx, "u1", "is mahine kitni savings hui")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != nlp.ActionSavings {
		t.Fatalf("action = %q", got.Action)
	}
	sv := got.Data.(*query.SavingsReport)
	if sv == nil || sv.Savings.Paise != 800000 {
		t.Errorf("savings = %+v, want ₹8000", sv)
	}
}

func TestExecuteUnknownFallsBackToHelp(t *testing.T) {
	eng, _ := newTestEngine(t)

	got, err := eng.Execute(context.Background(), "u1", "what is the weather")
	if err != nil {
		t.Fatal(err)
	}
	if got.Success {
		t.Error("unknown intent should not be a success")
	}
	if got.Action != nlp.ActionUnknown {
		t.Errorf("action = %q", got.Action)
	}
	if !strings.Contains(got.Response, "Try:") {
		t.Errorf("response should be the help text, got %q", got.Response)
	}
}

func TestExecuteIntentComparePeriods(t *testing.T) {
	eng, st := newTestEngine(t)
	ctx := context.Background()

	mustSeed(t, st, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), 1000)
	mustSeed(t, st, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC), 800)

	intent := nlp.Intent{
		Action: nlp.ActionComparePeriods,
		Slots: nlp.Slots{
			Period: "month", Which: "this",
			VsPeriod: "month", VsWhich: "last",
		},
	}
	got, err := eng.ExecuteIntent(ctx, "u1", intent, nlp.English)
	if err != nil {
		t.Fatal(err)
	}
	cmp := got.Data.(query.Comparison)
	if cmp.Diff.Paise != 20000 {
		t.Errorf("diff = %d, want 20000", cmp.Diff.Paise)
	}
	if !strings.Contains(got.Response, "higher than") {
		t.Errorf("response = %q", got.Response)
	}
}

type captureCorrections struct {
	userID   string
	text     string
	category core.Category
}

func (c *captureCorrections) PublishCorrection(_ context.Context, userID, text string, cat core.Category, _ []string) error {
	c.userID, c.text, c.category = userID, text, cat
	return nil
}

func TestCorrect(t *testing.T) {
	pub := &captureCorrections{}
	eng, _ := newTestEngine(t, WithCorrections(pub))
	ctx := context.Background()

	if err := eng.Correct(ctx, "u1", "chai tapri", core.Food, nil); err != nil {
		t.Fatal(err)
	}
	if pub.category != core.Food || pub.text != "chai tapri" || pub.userID != "u1" {
		t.Errorf("published = %+v", pub)
	}

	if err := eng.Correct(ctx, "u1", "x", "snacks", nil); !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("invalid category err = %v", err)
	}
}

func TestCorrectWithoutPublisherIsNoop(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.Correct(context.Background(), "u1", "chai", core.Food, nil); err != nil {
		t.Errorf("nil publisher should drop silently, got %v", err)
	}
}

func mustSeed(t *testing.T, st *memory.Store, date time.Time, rupees int64) {
	t.Helper()
	_, err := st.Create(context.Background(), core.Expense{
		UserID:   "u1",
		Amount:   core.FromRupees(rupees),
		Category: core.Food,
		Date:     date,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}
