// Package quality implements the text quality gate: a pure decision over
// already-extracted text that tells the caller whether the text is usable or
// whether a secondary (OCR) extraction should be attempted. The gate is
// advisory — it performs no I/O and never invokes OCR itself.
package quality

import (
	"strings"
	"unicode/utf8"
)

// Verdict is the gate's recommendation for a piece of extracted text.
type Verdict string

const (
	// VerdictDigital means the text is usable as-is.
	VerdictDigital Verdict = "DIGITAL"
	// VerdictOCRRequired means the text is almost certainly an extraction
	// failure and the caller should substitute an OCR extraction.
	VerdictOCRRequired Verdict = "OCR_REQUIRED"
)

// Gate decides text usability against a configured minimum length.
type Gate struct {
	minLength int
}

// NewGate returns a gate with the given minimum rune count. Documents
// shorter than a few dozen characters are extraction failures, not genuinely
// short laws.
func NewGate(minLength int) Gate {
	if minLength < 0 {
		minLength = 0
	}
	return Gate{minLength: minLength}
}

// Evaluate reports whether the text is usable. Length is measured in runes
// after trimming surrounding whitespace, so a page of newlines does not pass.
func (g Gate) Evaluate(text string) Verdict {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < g.minLength {
		return VerdictOCRRequired
	}
	return VerdictDigital
}

// MinLength returns the configured threshold.
func (g Gate) MinLength() int { return g.minLength }
