package respond

import (
	"strconv"
	"strings"

	"github.com/sg-217/paisabuddy/internal/core"
)

// FormatMoney renders an amount with Indian digit grouping (the last
// three digits, then pairs): 1234567.50 -> "12,34,567.50". Paise render
// only when non-zero, with at most two fraction digits.
func FormatMoney(m core.Money) string {
	paise := m.Paise
	negative := paise < 0
	if negative {
		paise = -paise
	}

	whole := paise / 100
	frac := paise % 100

	s := groupIndian(strconv.FormatInt(whole, 10))
	if frac != 0 {
		s += "." + twoDigits(frac)
	}
	if negative {
		s = "-" + s
	}
	return s
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// capitalize upper-cases the first letter of a phrase.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// plural appends "s" when n is not one.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
