package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store/memory"
)

var clock = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func newForecaster(st *memory.Store) *Forecaster {
	return NewWithClock(st, func() time.Time { return clock })
}

func add(t *testing.T, st *memory.Store, date time.Time, rupees int64, cat core.Category) {
	t.Helper()
	_, err := st.Create(context.Background(), core.Expense{
		UserID:   "u1",
		Amount:   core.FromRupees(rupees),
		Category: cat,
		Date:     date,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestForecastNeedsHistory(t *testing.T) {
	st := memory.New()
	for i := 0; i < 9; i++ {
		add(t, st, clock.AddDate(0, 0, -i-1), 100, core.Food)
	}

	got, err := newForecaster(st).Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Confidence != Low {
		t.Errorf("confidence = %q, want low", got.Confidence)
	}
	if len(got.Regular) != 0 || len(got.Irregular) != 0 {
		t.Errorf("thin history should yield empty forecasts, got %d regular, %d irregular",
			len(got.Regular), len(got.Irregular))
	}
	if got.Message == "" {
		t.Error("thin history should carry an explanatory message")
	}
}

func seedRecurringRent(t *testing.T, st *memory.Store, amounts []int64) {
	t.Helper()
	months := []time.Month{time.January, time.February, time.March, time.April, time.May, time.June}
	for i, m := range months {
		add(t, st, time.Date(2025, m, 1, 9, 0, 0, 0, time.UTC), amounts[i], core.Rent)
	}
}

func seedFillerFood(t *testing.T, st *memory.Store) {
	t.Helper()
	// Short, irregular cadence: never mistaken for a recurring pattern.
	for _, day := range []int{2, 5, 8, 11} {
		add(t, st, time.Date(2025, time.June, day, 13, 0, 0, 0, time.UTC), 250, core.Food)
	}
}

func TestForecastRecurringStable(t *testing.T) {
	st := memory.New()
	seedRecurringRent(t, st, []int64{10000, 10000, 10000, 10000, 10000, 10000})
	seedFillerFood(t, st)

	got, err := newForecaster(st).Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	r, ok := got.Regular[core.Rent]
	if !ok {
		t.Fatal("monthly rent should be detected as recurring")
	}
	if r.Trend != Stable {
		t.Errorf("trend = %q, want stable", r.Trend)
	}
	if r.Predicted.Paise != 1000000 {
		t.Errorf("predicted = %d paise, want 1000000 (₹10000)", r.Predicted.Paise)
	}
	if r.Confidence != High {
		t.Errorf("recurring confidence = %q, want high", r.Confidence)
	}

	if _, ok := got.Regular[core.Food]; ok {
		t.Error("short-cadence food spending should not be recurring")
	}

	if got.Total.Paise != 1000000 {
		t.Errorf("total = %d paise, want just the rent prediction", got.Total.Paise)
	}
	if got.Confidence != Low {
		t.Errorf("bundle confidence = %q, want low for 10 records", got.Confidence)
	}
}

func TestForecastRecurringIncreasingTrend(t *testing.T) {
	st := memory.New()
	seedRecurringRent(t, st, []int64{8000, 9000, 10000, 11000, 12000, 13000})
	seedFillerFood(t, st)

	got, err := newForecaster(st).Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	r, ok := got.Regular[core.Rent]
	if !ok {
		t.Fatal("rent should be recurring")
	}
	if r.Trend != Increasing {
		t.Errorf("trend = %q, want increasing", r.Trend)
	}
	// avg 10500, halves 9000 vs 12000, trend 1/3: predicted 10500*4/3 = 14000.
	if r.Predicted.Paise != 1400000 {
		t.Errorf("predicted = %d paise, want 1400000", r.Predicted.Paise)
	}

	foundWarning := false
	for _, ins := range got.Insights {
		if ins.Type == "warning" {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Error("an increasing recurring category should produce a warning insight")
	}
}

func TestForecastIrregularWatchlist(t *testing.T) {
	st := memory.New()
	seedRecurringRent(t, st, []int64{10000, 10000, 10000, 10000, 10000, 10000})
	seedFillerFood(t, st)
	// Healthcare in three distinct months out of six.
	add(t, st, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), 1000, core.Healthcare)
	add(t, st, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 1000, core.Healthcare)
	add(t, st, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC), 1000, core.Healthcare)

	got, err := newForecaster(st).Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	ir, ok := got.Irregular[core.Healthcare]
	if !ok {
		t.Fatal("healthcare should appear on the irregular watch list")
	}
	// June is not a festival month, so no seasonal factor.
	if ir.Probability != 0.5 {
		t.Errorf("probability = %v, want 0.5 (3 of 6 months)", ir.Probability)
	}
	if ir.Frequency != "occasional" {
		t.Errorf("frequency = %q, want occasional at 0.5", ir.Frequency)
	}
	if ir.PredictedAmount.Paise != 100000 {
		t.Errorf("predicted = %d paise, want the plain average", ir.PredictedAmount.Paise)
	}
	if ir.Confidence != Low {
		t.Errorf("confidence = %q, want low for 3 records", ir.Confidence)
	}

	if _, ok := got.Irregular[core.Food]; ok {
		t.Error("food is not on the irregular watch list")
	}
}

func TestForecastFestivalFactorAndCap(t *testing.T) {
	october := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	st := memory.New()
	fc := NewWithClock(st, func() time.Time { return october })

	// Celebration spending in every month of the window, some in festival
	// months: frequency 1.0 scaled by 1.5 must cap at 0.9.
	for i := 0; i < 6; i++ {
		add(t, st, october.AddDate(0, -i, 0), 2000, core.Celebration)
	}
	for i := 0; i < 6; i++ {
		add(t, st, october.AddDate(0, 0, -i-1), 300, core.Food)
	}

	got, err := fc.Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	ir, ok := got.Irregular[core.Celebration]
	if !ok {
		t.Fatal("celebration should be forecast")
	}
	if ir.Probability != 0.9 {
		t.Errorf("probability = %v, want the 0.9 cap", ir.Probability)
	}
	if ir.PredictedAmount.Paise != 300000 {
		t.Errorf("predicted = %d paise, want 2000*1.5 = 300000", ir.PredictedAmount.Paise)
	}
	if ir.Frequency != "frequent" {
		t.Errorf("frequency = %q, want frequent above 0.5", ir.Frequency)
	}
	if ir.Confidence != Medium {
		t.Errorf("confidence = %q, want medium for more than 3 records", ir.Confidence)
	}
}

func TestForecastByCategoryWindow(t *testing.T) {
	st := memory.New()
	seedRecurringRent(t, st, []int64{10000, 10000, 10000, 10000, 10000, 10000})
	seedFillerFood(t, st)

	got, err := newForecaster(st).Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	// The two-month window starts Apr 1: three rent payments inside it.
	rent, ok := got.ByCategory[core.Rent]
	if !ok {
		t.Fatal("rent should appear in the by-category view")
	}
	if rent.Count != 3 {
		t.Errorf("rent count = %d, want 3 (Apr, May, Jun)", rent.Count)
	}
	if rent.Predicted.Paise != 1000000 || rent.Min.Paise != 1000000 || rent.Max.Paise != 1000000 {
		t.Errorf("rent by-category = %+v, want flat 10000", rent)
	}

	food := got.ByCategory[core.Food]
	if food.Count != 4 {
		t.Errorf("food count = %d, want 4", food.Count)
	}
}

func TestIsRecurring(t *testing.T) {
	day := func(m time.Month, d int) core.Expense {
		return core.Expense{Date: time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)}
	}
	tests := []struct {
		name  string
		group []core.Expense
		want  bool
	}{
		{
			"monthly cadence",
			[]core.Expense{day(time.January, 1), day(time.February, 1), day(time.March, 1), day(time.April, 1)},
			true,
		},
		{
			"too few records",
			[]core.Expense{day(time.January, 1), day(time.February, 1)},
			false,
		},
		{
			"one interval far from mean",
			[]core.Expense{day(time.January, 1), day(time.February, 1), day(time.February, 20), day(time.April, 1)},
			false,
		},
		{
			"cadence too short",
			[]core.Expense{day(time.June, 1), day(time.June, 4), day(time.June, 7), day(time.June, 10)},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRecurring(tt.group); got != tt.want {
				t.Errorf("isRecurring = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    float64
	}{
		{"flat", []float64{100, 100, 100, 100}, 0},
		{"rising", []float64{100, 100, 200, 200}, 1},
		{"falling", []float64{200, 200, 100, 100}, -0.5},
		{"single", []float64{100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateTrend(tt.amounts); got != tt.want {
				t.Errorf("calculateTrend = %v, want %v", got, tt.want)
			}
		})
	}
}
