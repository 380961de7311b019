package extract

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gaceta/pkg/document"
)

// dispositionMarker matches the looser numbering used in disposition
// blocks: feminine ordinal words ("PRIMERA.-"), ÚNICA, or plain numbers,
// anchored at line starts since drafting puts each disposition on its own
// line.
var dispositionMarker = regexp.MustCompile(`(?im)^[ \t]*(PRIMERA?|SEGUNDA?|TERCERA?|CUARTA?|QUINTA?|SEXTA?|S[EÉ]PTIMA?|OCTAVA?|NOVENA?|D[EÉ]CIMA?|[UÚ]NICA|\d+)[°º]?\s*[.\-:]`)

// dispositionHeaderLine matches the span's own header line so it is not
// mistaken for content.
var dispositionHeaderLine = regexp.MustCompile(`(?i)^\s*DISPOSICI[OÓ]N(?:ES)?[^\n]*\n?`)

// Dispositions extracts the ordered dispositions of one kind from its
// section span. When the span has text but no recognizable marker, the whole
// span becomes a single disposition with an absent number — missing
// sub-structure must not cause data loss.
func Dispositions(kind document.DispositionKind, span string) []document.Disposition {
	body := dispositionHeaderLine.ReplaceAllString(span, "")

	markers := dispositionMarker.FindAllStringSubmatchIndex(body, -1)
	if len(markers) == 0 {
		text := strings.TrimSpace(body)
		if text == "" {
			return nil
		}
		return []document.Disposition{{Kind: kind, Body: text, OrderIndex: 0}}
	}

	var out []document.Disposition
	for i, m := range markers {
		end := len(body)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		text := strings.TrimSpace(body[m[1]:end])
		if text == "" {
			continue
		}
		out = append(out, document.Disposition{
			Kind:       kind,
			Number:     strings.TrimSpace(body[m[2]:m[3]]),
			Body:       text,
			OrderIndex: len(out),
		})
	}
	return out
}
