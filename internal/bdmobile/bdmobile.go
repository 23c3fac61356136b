// Package bdmobile normalizes and validates Bangladeshi mobile numbers.
package bdmobile

import (
	"regexp"
	"strings"
)

var mobileRe = regexp.MustCompile(`^01[3-9]\d{8}$`)

const (
	bnZero = '০'
	bnNine = '৯'
)

// ConvertDigits maps Bengali digit glyphs to their ASCII equivalents,
// leaving all other runes untouched.
func ConvertDigits(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= bnZero && r <= bnNine {
			b.WriteRune('0' + (r - bnZero))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize converts Bengali digits and strips all whitespace.
func Normalize(s string) string {
	s = ConvertDigits(s)
	return strings.Join(strings.Fields(s), "")
}

// IsValid reports whether number is an 11-digit Bangladeshi mobile number
// (01 followed by an operator digit 3-9 and eight more digits).
func IsValid(number string) bool {
	return mobileRe.MatchString(number)
}

// LastEleven trims a number down to its last 11 digits, dropping any
// country-code prefix such as +88. Shorter inputs come back unchanged.
func LastEleven(number string) string {
	if len(number) <= 11 {
		return number
	}
	return number[len(number)-11:]
}
