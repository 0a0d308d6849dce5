// Package memory provides the in-memory Expense Store backend, used as
// the default backend and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store"
)

type Store struct {
	mu       sync.Mutex
	items    []core.Expense
	keywords map[core.Category][]string
}

func New() *Store {
	return &Store{keywords: make(map[core.Category][]string)}
}

// Create validates and stores the expense, assigning an id.
func (s *Store) Create(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return e, nil
}

// Find returns the user's expenses matching the filter, sorted and
// truncated per the filter.
func (s *Store) Find(_ context.Context, userID string, f store.Filter) ([]core.Expense, error) {
	s.mu.Lock()
	var out []core.Expense
	for _, e := range s.items {
		if e.UserID != userID {
			continue
		}
		if f.Range != nil && !f.Range.Contains(e.Date) {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, e)
	}
	s.mu.Unlock()

	switch f.Sort {
	case store.ByAmountDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Paise > out[j].Amount.Paise })
	case store.ByDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// AddKeywords implements store.LexiconStore.
func (s *Store) AddKeywords(_ context.Context, cat core.Category, keywords []string) error {
	if !cat.Valid() {
		return core.ErrInvalidCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.keywords[cat]
	seen := make(map[string]struct{}, len(existing))
	for _, kw := range existing {
		seen[kw] = struct{}{}
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		existing = append(existing, kw)
	}
	s.keywords[cat] = existing
	return nil
}

// LoadKeywords implements store.LexiconStore.
func (s *Store) LoadKeywords(_ context.Context) (map[core.Category][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[core.Category][]string, len(s.keywords))
	for cat, kws := range s.keywords {
		out[cat] = append([]string(nil), kws...)
	}
	return out, nil
}
