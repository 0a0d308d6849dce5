package nlp

import "regexp"

// Language is the detected utterance language.
type Language string

const (
	Hindi   Language = "hi"
	English Language = "en"
)

// hindiCues lists common Hindi/Hinglish words, matched as whole words so
// that English text containing them as substrings ("this", "paris") does
// not trip detection.
var hindiCues = regexp.MustCompile(`(?i)\b(aaj|kal|kitna|kitni|kharch|kharcha|maine|rupay|rupaye|bacha|bachat|mahina|mahine|hafta|hafte|saal|pichhle|sabse|bada|jodo|jod|karo|batao|dikhao|hua|kiya|liye)\b`)

// DetectLanguage returns Hindi when the text contains any Devanagari
// codepoint or a Hindi/Hinglish cue word, English otherwise.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return Hindi
		}
	}
	if hindiCues.MatchString(text) {
		return Hindi
	}
	return English
}
