package respond

import (
	"time"

	"github.com/sg-217/paisabuddy/internal/nlp"
	"github.com/sg-217/paisabuddy/internal/timeperiod"
)

// TimePhrase renders (period, which) as a natural phrase in the given
// language: "this week"/"is hafte", with today/aaj and yesterday/kal as
// irreducible special cases.
func TimePhrase(period timeperiod.Period, which timeperiod.Which, lang nlp.Language) string {
	if lang == nlp.Hindi {
		return timePhraseHi(period, which)
	}
	return timePhraseEn(period, which)
}

func timePhraseEn(period timeperiod.Period, which timeperiod.Which) string {
	switch period {
	case timeperiod.Today:
		if which == timeperiod.Last {
			return "yesterday"
		}
		return "today"
	case timeperiod.Yesterday:
		return "yesterday"
	}
	return string(which) + " " + string(period)
}

func timePhraseHi(period timeperiod.Period, which timeperiod.Which) string {
	switch period {
	case timeperiod.Today:
		if which == timeperiod.Last {
			return "kal"
		}
		return "aaj"
	case timeperiod.Yesterday:
		return "kal"
	}
	whichHi := "is"
	if which == timeperiod.Last {
		whichHi = "pichhle"
	}
	switch period {
	case timeperiod.Week:
		return whichHi + " hafte"
	case timeperiod.Year:
		return whichHi + " saal"
	default:
		return whichHi + " mahine"
	}
}

// periodUnit names the period as a unit word ("day"/"din") for the
// average-spending phrasing.
func periodUnit(period timeperiod.Period, lang nlp.Language) string {
	if lang == nlp.Hindi {
		switch period {
		case timeperiod.Today, timeperiod.Yesterday:
			return "din"
		case timeperiod.Week:
			return "hafte"
		case timeperiod.Year:
			return "saal"
		default:
			return "mahine"
		}
	}
	switch period {
	case timeperiod.Today, timeperiod.Yesterday:
		return "day"
	default:
		return string(period)
	}
}

// shortDate renders a date as "02 Jan".
func shortDate(t time.Time) string {
	return t.Format("02 Jan")
}
