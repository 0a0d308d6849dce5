// Package store defines the Expense Store port consumed by the engine,
// plus the filter vocabulary shared by its backends.
package store

import (
	"context"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// Sort orders for Find.
type Sort int

const (
	ByDateDesc Sort = iota
	ByDateAsc
	ByAmountDesc
)

// Filter scopes a Find call. A nil Range means all time; an empty
// Category means no category filter; Limit 0 means no limit.
type Filter struct {
	Range    *timeperiod.Range
	Category core.Category
	Sort     Sort
	Limit    int
}

// Ports for the engine's outbound dependencies.
type (
	// ExpenseStore is the minimal contract the engine consumes: it
	// creates single records and runs scoped read queries. Existing
	// records are never updated or deleted through this port.
	ExpenseStore interface {
		Create(ctx context.Context, e core.Expense) (core.Expense, error)
		Find(ctx context.Context, userID string, f Filter) ([]core.Expense, error)
	}

	// LexiconStore persists learned classifier keywords so corrections
	// survive restarts.
	LexiconStore interface {
		AddKeywords(ctx context.Context, cat core.Category, keywords []string) error
		LoadKeywords(ctx context.Context) (map[core.Category][]string, error)
	}
)
