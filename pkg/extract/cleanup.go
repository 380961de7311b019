package extract

import (
	"regexp"
	"strings"
)

var (
	ruleLinePattern   = regexp.MustCompile(`[-_=]{10,}`)
	spaceRunPattern   = regexp.MustCompile(`[ \t]+`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
	hyphenBreak       = regexp.MustCompile(`([a-záéíóúñ])-[ \t]*\n[ \t]*([a-záéíóúñ])`)
	trailingLineSpace = regexp.MustCompile(`[ \t]+\n`)
)

// Clean normalizes PDF- or OCR-extracted text before segmentation: CRLF
// normalization, removal of horizontal-rule junk, rejoining of words
// hyphenated across line breaks, and whitespace collapsing. Cleaning is
// deterministic, so cleaning the same input twice is a no-op.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = ruleLinePattern.ReplaceAllString(text, "")

	// Rejoin word breaks like "ad-\njuntó" before collapsing whitespace.
	// Only lowercase continuations are joined; an uppercase follow-up line
	// is a heading, not a split word.
	text = hyphenBreak.ReplaceAllString(text, "$1$2")

	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = trailingLineSpace.ReplaceAllString(text, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
