// Package extract pulls articles, dispositions, recitals and signatories
// out of segmented gazette section spans, and cleans raw extracted text.
package extract

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gaceta/pkg/document"
)

// numberingToken matches the unit after ARTÍCULO: digits (optionally with a
// BIS suffix), Spanish ordinal words, ÚNICO, or roman numerals.
const numberingToken = `(?:\d+(?:\s+BIS)?|PRIMER[OA]?|SEGUND[OA]?|TERCER[OA]?|CUART[OA]?|QUINT[OA]?|SEXT[OA]?|S[EÉ]PTIM[OA]?|OCTAV[OA]?|NOVEN[OA]?|D[EÉ]CIM[OA]?|[UÚ]NIC[OA]|[IVXLCDM]+)`

// articleMarker matches an article header such as "ARTÍCULO 5.-" or
// "Artículo ÚNICO." The terminator after the token distinguishes headers
// from in-text references ("... el artículo 5 de la Ley ...").
var articleMarker = regexp.MustCompile(`(?i)\bART[IÍ]CULOS?\s+(` + numberingToken + `)\s*[°º]?\s*[.\-:]`)

var innerSpace = regexp.MustCompile(`\s+`)

// Articles extracts the ordered article sequence from the ARTÍCULOS span
// text. Each marker starts an article whose body runs to the next marker or
// the end of the span. Numbering tokens are stored verbatim — duplicates and
// gaps are source facts to surface, not fix. Markers with empty bodies are
// dropped. An empty span yields zero articles, which is not an error.
func Articles(span string) []document.Article {
	markers := articleMarker.FindAllStringSubmatchIndex(span, -1)
	if len(markers) == 0 {
		return nil
	}

	var articles []document.Article
	for i, m := range markers {
		end := len(span)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := strings.TrimSpace(span[m[1]:end])
		if body == "" {
			continue
		}
		number := innerSpace.ReplaceAllString(strings.TrimSpace(span[m[2]:m[3]]), " ")
		articles = append(articles, document.Article{
			Number:     number,
			Body:       body,
			OrderIndex: len(articles),
		})
	}
	return articles
}
