// Package engine wires the conversational pipeline: parse the utterance,
// resolve the period, run the query, and render the bilingual reply.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/log"
	"github.com/sg-217/paisabuddy/internal/nlp"
	"github.com/sg-217/paisabuddy/internal/query"
	"github.com/sg-217/paisabuddy/internal/respond"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// Result is the command endpoint contract. Success=false with a
// populated Response means the utterance was not understood; transport
// failures surface as errors instead.
type Result struct {
	Success  bool
	Action   nlp.Action
	Data     any
	Response string
	Lang     nlp.Language
}

// CorrectionPublisher emits category-correction events for the learning
// pipeline. Optional; a nil publisher disables corrections.
type CorrectionPublisher interface {
	PublishCorrection(ctx context.Context, userID, text string, cat core.Category, keywords []string) error
}

// Engine executes one command synchronously end to end. It is safe for
// concurrent use; the only shared state is the classifier lexicon, which
// updates through its own single-writer path.
type Engine struct {
	executor    *query.Executor
	corrections CorrectionPublisher
	logger      *log.Logger
	now         func() time.Time
}

func New(executor *query.Executor, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{executor: executor, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Engine.
type Option func(*Engine)

// WithCorrections enables publishing correction events.
func WithCorrections(p CorrectionPublisher) Option {
	return func(e *Engine) { e.corrections = p }
}

// WithClock fixes the engine's clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Execute runs one transcript through the full pipeline. An empty or
// whitespace transcript is invalid input, distinct from "could not
// understand".
func (e *Engine) Execute(ctx context.Context, userID, transcript string) (Result, error) {
	t := strings.TrimSpace(transcript)
	if t == "" {
		return Result{}, core.ErrEmptyTranscript
	}

	lang := nlp.DetectLanguage(t)
	intent := nlp.Parse(t)
	e.logger.DebugContext(ctx, "Command parsed", "action", intent.Action, "lang", lang)

	return e.ExecuteIntent(ctx, userID, intent, lang)
}

// ExecuteIntent dispatches an already-parsed intent. Callers holding
// structured intents (dashboards, tests) enter here directly.
func (e *Engine) ExecuteIntent(ctx context.Context, userID string, intent nlp.Intent, lang nlp.Language) (Result, error) {
	slots := intent.Slots
	rng := e.resolve(slots.Period, slots.Which)

	switch intent.Action {
	case nlp.ActionAddExpense:
		expense, err := e.executor.AddExpense(ctx, userID, core.Money{Paise: slots.Amount}, slots.Description)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, expense, respond.AddExpense(expense, lang), lang), nil

	case nlp.ActionQuerySpending:
		report, err := e.executor.QuerySpending(ctx, userID, slots.Category, rng)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, report, respond.Spending(report, lang), lang), nil

	case nlp.ActionGetSummary:
		summary, err := e.executor.GetSummary(ctx, userID, rng)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, summary, respond.Summary(summary, lang), lang), nil

	case nlp.ActionBiggestExpense:
		biggest, err := e.executor.BiggestExpense(ctx, userID, rng)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, biggest, respond.Biggest(biggest, rng, lang), lang), nil

	case nlp.ActionTopCategories:
		limit := slots.Limit
		if limit <= 0 {
			limit = 3
		}
		top, err := e.executor.TopCategories(ctx, userID, rng, limit)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, top, respond.TopCategories(top, rng, lang), lang), nil

	case nlp.ActionSavings:
		sv, err := e.executor.Savings(ctx, userID, rng)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, sv, respond.Savings(sv, lang), lang), nil

	case nlp.ActionLastExpenses:
		limit := slots.Limit
		if limit <= 0 {
			limit = 5
		}
		list, err := e.executor.LastExpenses(ctx, userID, limit)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, list, respond.LastExpenses(list, lang), lang), nil

	case nlp.ActionComparePeriods:
		vs := e.resolve(slots.VsPeriod, slots.VsWhich)
		cmp, err := e.executor.ComparePeriods(ctx, userID, rng, vs)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, cmp, respond.Compare(cmp, lang), lang), nil

	case nlp.ActionAvgSpending:
		period := slots.Period
		if period == "" {
			period = timeperiod.Month
		}
		avg, err := e.executor.AvgSpending(ctx, userID, period)
		if err != nil {
			return Result{}, err
		}
		return e.ok(intent.Action, avg, respond.Average(avg, lang), lang), nil

	default:
		return Result{
			Success:  false,
			Action:   nlp.ActionUnknown,
			Response: respond.Help(lang),
			Lang:     lang,
		}, nil
	}
}

// Correct records a category correction for the learning pipeline. The
// lexicon itself only changes when the learn worker consumes the event.
func (e *Engine) Correct(ctx context.Context, userID, text string, cat core.Category, keywords []string) error {
	if !cat.Valid() {
		return core.ErrInvalidCategory
	}
	if e.corrections == nil {
		e.logger.WarnContext(ctx, "Correction publisher not configured, dropping correction", "category", cat)
		return nil
	}
	if err := e.corrections.PublishCorrection(ctx, userID, text, cat, keywords); err != nil {
		return fmt.Errorf("publish correction: %w", err)
	}
	return nil
}

func (e *Engine) resolve(period timeperiod.Period, which timeperiod.Which) timeperiod.Range {
	if period == "" {
		period = timeperiod.Month
	}
	if which == "" {
		which = timeperiod.This
	}
	return timeperiod.Resolve(period, which, e.now())
}

func (e *Engine) ok(action nlp.Action, data any, response string, lang nlp.Language) Result {
	return Result{Success: true, Action: action, Data: data, Response: response, Lang: lang}
}
