package metadata

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gaceta/pkg/document"
)

var sectionHeaderPrefix = regexp.MustCompile(`(?i)^\s*(?:CONSIDERANDO|POR\s+TANTO)\s*[:.,]?\s*`)

// Summary derives the resumen field: a bounded-length prefix of the
// CONSIDERANDO section when present, else of POR TANTO, else the opening
// sentences of the raw text.
func (e *Extractor) Summary(sections []document.SectionSpan, text string) string {
	var source string
	for _, label := range []document.SectionLabel{document.SectionConsiderando, document.SectionPorTanto} {
		for _, span := range sections {
			if span.Label == label {
				source = sectionHeaderPrefix.ReplaceAllString(span.Text, "")
				break
			}
		}
		if strings.TrimSpace(source) != "" {
			break
		}
	}
	if strings.TrimSpace(source) == "" {
		source = firstSentences(text, 3)
	}
	return truncateWords(collapseSpace(source), e.cfg.SummaryMaxLength)
}

// firstSentences returns up to n sentences from the start of the text.
func firstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	end := 0
	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		count++
		end = i + 1
		if count == n {
			break
		}
	}
	if end == 0 {
		return text
	}
	return text[:end]
}

// truncateWords bounds s at max runes, cutting at a word boundary and
// marking the cut with an ellipsis.
func truncateWords(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
