package core

import (
	"errors"
	"strings"
	"time"
)

// Category is one of the fixed expense categories.
type Category string

const (
	Food          Category = "food"
	Transport     Category = "transport"
	Utilities     Category = "utilities"
	Rent          Category = "rent"
	Entertainment Category = "entertainment"
	Healthcare    Category = "healthcare"
	Shopping      Category = "shopping"
	Education     Category = "education"
	Travel        Category = "travel"
	Personal      Category = "personal"
	Celebration   Category = "celebration"
	Emergency     Category = "emergency"
	Other         Category = "other"

	// Legacy aliases still accepted on stored records.
	Gasoline  Category = "gasoline"
	Groceries Category = "groceries"
)

// Taxonomy is the classifier's output set, in declared order. Score ties
// resolve to the earliest entry, so the order is part of the contract.
var Taxonomy = []Category{
	Rent, Food, Transport, Utilities, Entertainment, Healthcare,
	Shopping, Education, Travel, Celebration, Emergency, Personal, Other,
}

var validCategories = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Taxonomy)+2)
	for _, c := range Taxonomy {
		m[c] = struct{}{}
	}
	m[Gasoline] = struct{}{}
	m[Groceries] = struct{}{}
	return m
}()

// Valid reports whether c is a known category, including legacy aliases.
func (c Category) Valid() bool {
	_, ok := validCategories[c]
	return ok
}

// ParseCategory matches a free-form token against the known categories.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// Expense is a single stored expense record.
type Expense struct {
	ID          string
	UserID      string
	Amount      Money
	Category    Category
	Description string
	Vendor      string
	Date        time.Time
	Tags        []string
}

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyUser       = errors.New("empty user id")
	ErrEmptyTranscript = errors.New("empty transcript")
)

func (e Expense) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEmptyUser
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
