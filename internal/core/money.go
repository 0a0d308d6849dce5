// Package core provides the expense domain types and money handling.
//
// Money is stored in integer paise to keep arithmetic exact; float values
// only appear at display and statistics boundaries.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in paise.
type Money struct {
	Paise int64
}

// FromRupees builds a Money from a whole-rupee amount.
func FromRupees(r int64) Money {
	return Money{Paise: r * 100}
}

// RoundRupees builds a Money from a fractional rupee amount, half-up.
func RoundRupees(r float64) Money {
	if r < 0 {
		return Money{Paise: -int64(-r*100 + 0.5)}
	}
	return Money{Paise: int64(r*100 + 0.5)}
}

// Rupees returns the rupee value as a float64 for display and statistics.
// Use paise for anything that must stay exact.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m.Paise < 0 {
		return Money{Paise: -m.Paise}
	}
	return m
}

// Add returns m + n.
func (m Money) Add(n Money) Money {
	return Money{Paise: m.Paise + n.Paise}
}

// Sub returns m - n.
func (m Money) Sub(n Money) Money {
	return Money{Paise: m.Paise - n.Paise}
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseDecimalToPaise converts a decimal rupee string to paise with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Only positive amounts are valid.
//
// Examples:
//
//	ParseDecimalToPaise("12.34") -> 1234, nil
//	ParseDecimalToPaise("12,34") -> 1234, nil
//	ParseDecimalToPaise("12.346") -> 1235, nil (rounds up)
func ParseDecimalToPaise(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracPaise int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracPaise = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracPaise += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracPaise++
			}
		}
	}
	paise := iv*100 + fracPaise
	if paise <= 0 {
		return 0, ErrInvalidAmount
	}
	return paise, nil
}
