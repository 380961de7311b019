package extract

import (
	"regexp"
	"strings"
)

var (
	considerandoPrefix = regexp.MustCompile(`(?i)^\s*CONSIDERANDO\s*[:.]?\s*`)
	recitalSplit       = regexp.MustCompile(`(?i)\n\s*QUE\s+`)
)

// Considerandos splits the CONSIDERANDO span into individual recitals.
// Bolivian drafting opens each recital with "Que ..."; the split keeps the
// opening word on every recital so each reads as a complete clause.
func Considerandos(span string) []string {
	body := considerandoPrefix.ReplaceAllString(span, "")
	if strings.TrimSpace(body) == "" {
		return nil
	}

	parts := recitalSplit.Split(body, -1)
	var recitals []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(p), "que ") {
			p = "Que " + p
		}
		recitals = append(recitals, p)
	}
	return recitals
}
