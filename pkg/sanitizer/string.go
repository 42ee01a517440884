package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims surrounding whitespace and collapses interior runs
// of whitespace to single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeCity keeps the original casing; city matching is exact, so the
// stored value must be what search requests send.
func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

// NormalizeRoomNumber uppercases so "101a" and "101A" cannot coexist as
// distinct rooms in one hotel.
func NormalizeRoomNumber(roomNumber string) string {
	return strings.ToUpper(TrimAndNormalize(roomNumber))
}
