package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date expressions come in two families: Spanish long form
// ("15 de enero de 2024") and numeric day-first ("15/01/2024",
// "15-01-2024"), plus the already-ISO form some gazette pages carry.
// Two-digit years are ambiguous and always rejected — the field stays
// absent rather than guessing a century.
var (
	longFormDate = regexp.MustCompile(`(?i)\b(\d{1,2})\s+DE\s+([A-ZÁÉÍÓÚÑÜa-záéíóúñü]+)\s+DE\s+(\d{2,4})\b`)
	numericDate  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	isoDate      = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
)

// dateScanner finds and normalizes date expressions.
type dateScanner struct {
	months map[string]string
}

func newDateScanner(months map[string]string) *dateScanner {
	return &dateScanner{months: months}
}

// scan returns the ISO-8601 form of the valid date expression nearest the
// start of the buffer. Candidates with two-digit years or impossible
// calendar values are not candidates at all.
func (ds *dateScanner) scan(buffer string) (string, bool) {
	bestOffset := -1
	bestISO := ""

	consider := func(offset int, iso string, ok bool) {
		if !ok {
			return
		}
		if bestOffset == -1 || offset < bestOffset {
			bestOffset = offset
			bestISO = iso
		}
	}

	for _, m := range longFormDate.FindAllStringSubmatchIndex(buffer, -1) {
		day := buffer[m[2]:m[3]]
		month := buffer[m[4]:m[5]]
		year := buffer[m[6]:m[7]]
		iso, ok := ds.normalizeLongForm(day, month, year)
		consider(m[0], iso, ok)
	}
	for _, m := range numericDate.FindAllStringSubmatchIndex(buffer, -1) {
		iso, ok := normalizeParts(buffer[m[2]:m[3]], buffer[m[4]:m[5]], buffer[m[6]:m[7]])
		consider(m[0], iso, ok)
	}
	for _, m := range isoDate.FindAllStringSubmatchIndex(buffer, -1) {
		iso, ok := normalizeParts(buffer[m[6]:m[7]], buffer[m[4]:m[5]], buffer[m[2]:m[3]])
		consider(m[0], iso, ok)
	}

	if bestOffset == -1 {
		return "", false
	}
	return bestISO, true
}

// normalizeLongForm maps a Spanish long-form date through the configured
// month table.
func (ds *dateScanner) normalizeLongForm(day, monthName, year string) (string, bool) {
	month, ok := ds.months[lowerSpanish(monthName)]
	if !ok {
		return "", false
	}
	return normalizeParts(day, month, year)
}

// normalizeParts validates day-month-year and renders ISO-8601. Two-digit
// years are rejected; impossible dates (31/02) are rejected via a
// time.Date round trip.
func normalizeParts(day, month, year string) (string, bool) {
	if len(year) != 4 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return "", false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return "", false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d), true
}

// lowerSpanish lowercases a month name, including the accented vowels that
// appear in Spanish month spellings so "Énero" still resolves.
func lowerSpanish(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case r == 'Á':
			r = 'á'
		case r == 'É':
			r = 'é'
		case r == 'Í':
			r = 'í'
		case r == 'Ó':
			r = 'ó'
		case r == 'Ú':
			r = 'ú'
		case r == 'Ñ':
			r = 'ñ'
		}
		out = append(out, r)
	}
	return string(out)
}
