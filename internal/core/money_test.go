package core

import (
	"errors"
	"testing"
)

func TestFromRupees(t *testing.T) {
	if got := FromRupees(200); got.Paise != 20000 {
		t.Errorf("FromRupees(200) = %d paise, want 20000", got.Paise)
	}
}

func TestRoundRupees(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		paise int64
	}{
		{"whole", 150, 15000},
		{"half up", 10.005, 1001},
		{"half down", 10.004, 1000},
		{"negative", -33.335, -3334},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundRupees(tt.in); got.Paise != tt.paise {
				t.Errorf("RoundRupees(%v) = %d, want %d", tt.in, got.Paise, tt.paise)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Paise: 1500}
	b := Money{Paise: 700}
	if got := a.Add(b); got.Paise != 2200 {
		t.Errorf("Add = %d, want 2200", got.Paise)
	}
	if got := b.Sub(a); got.Paise != -800 {
		t.Errorf("Sub = %d, want -800", got.Paise)
	}
	if got := b.Sub(a).Abs(); got.Paise != 800 {
		t.Errorf("Abs = %d, want 800", got.Paise)
	}
}

func TestParseDecimalToPaise(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"simple decimal", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"whole number", "100", 10000, false},
		{"single decimal digit", "5.5", 550, false},
		{"rounds third digit up", "12.346", 1235, false},
		{"rounds third digit down", "12.344", 1234, false},
		{"empty", "", 0, true},
		{"negative", "-5.00", 0, true},
		{"plus sign", "+5.00", 0, true},
		{"zero", "0", 0, true},
		{"letters", "12a.30", 0, true},
		{"two separators", "1.2.3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToPaise(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToPaise(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToPaise(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToPaise(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Paise: 100}).Validate(); err != nil {
		t.Errorf("positive amount should validate, got %v", err)
	}
	if err := (Money{}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount should fail with ErrInvalidAmount, got %v", err)
	}
	if err := (Money{Paise: -1}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount should fail with ErrInvalidAmount, got %v", err)
	}
}
