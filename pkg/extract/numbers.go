package extract

import "strings"

// ordinalDigits maps Spanish ordinal-word prefixes to digits. Prefix
// matching covers masculine, feminine and apocopated forms (PRIMER,
// PRIMERO, PRIMERA all map to "1").
var ordinalDigits = []struct {
	prefix string
	digit  string
}{
	{"PRIMER", "1"},
	{"SEGUND", "2"},
	{"TERCER", "3"},
	{"CUART", "4"},
	{"QUINT", "5"},
	{"SEXT", "6"},
	{"SÉPTIM", "7"},
	{"SEPTIM", "7"},
	{"OCTAV", "8"},
	{"NOVEN", "9"},
	{"DÉCIM", "10"},
	{"DECIM", "10"},
}

// OrdinalToDigits converts an ordinal-word numbering token to digits.
// Digit tokens pass through unchanged. The second result is false when the
// token is not recognized; callers keep the verbatim token in that case,
// since stored numbering is never rewritten.
func OrdinalToDigits(token string) (string, bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return token, false
	}
	if isDigits(trimmed) {
		return trimmed, true
	}
	upper := strings.ToUpper(trimmed)
	for _, m := range ordinalDigits {
		if strings.HasPrefix(upper, m.prefix) {
			return m.digit, true
		}
	}
	return token, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
