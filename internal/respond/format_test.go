package respond

import (
	"testing"

	"github.com/sg-217/paisabuddy/internal/core"
)

func TestFormatMoneyIndianGrouping(t *testing.T) {
	tests := []struct {
		name  string
		paise int64
		want  string
	}{
		{"under a thousand", 50000, "500"},
		{"thousand", 150000, "1,500"},
		{"lakh", 12345600, "1,23,456"},
		{"ten lakh", 123456700, "12,34,567"},
		{"crore", 1234567800, "1,23,45,678"},
		{"with paise", 12345650, "1,23,456.50"},
		{"single paise digit pads", 100005, "1,000.05"},
		{"whole amount hides paise", 20000, "200"},
		{"negative", -150050, "-1,500.50"},
		{"zero", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(core.Money{Paise: tt.paise}); got != tt.want {
				t.Errorf("FormatMoney(%d) = %q, want %q", tt.paise, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"this week", "This week"},
		{"", ""},
		{"a", "A"},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Error("plural(1) should be empty")
	}
	if plural(0) != "s" || plural(2) != "s" {
		t.Error("plural(n != 1) should be \"s\"")
	}
}
