package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	signatureZone = regexp.MustCompile(`(?is)(?:REG[IÍ]STRESE|COMUN[IÍ]QUESE)(.+)$`)
	// Runs never cross line breaks: each signature sits on its own line.
	uppercaseRun = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ. ]{10,}`)
)

// Signatories collects signatory names from the closing zone of the
// document — the text after the first REGÍSTRESE or COMUNÍQUESE formula,
// where signatures appear as runs of uppercase letters.
func Signatories(text string) []string {
	m := signatureZone.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var out []string
	for _, run := range uppercaseRun.FindAllString(m[1], -1) {
		name := innerSpace.ReplaceAllString(strings.TrimSpace(run), " ")
		name = strings.Trim(name, ". ")
		if utf8.RuneCountInString(name) > 10 {
			out = append(out, name)
		}
	}
	return out
}
