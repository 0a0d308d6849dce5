package nlp

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"plain english", "add 200 rupees for food", English},
		{"devanagari", "मैंने आज कितना खर्च किया", Hindi},
		{"hinglish cue word", "aaj maine kitna kharch kiya", Hindi},
		{"single cue", "kitna spent on food", Hindi},
		{"cue only as substring", "this is a test", English},
		{"paris is not pichhle", "flight to paris this month", English},
		{"mixed script", "spent 500 on खाना", Hindi},
		{"cue at end", "top 3 categories batao", Hindi},
		{"empty", "", English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
