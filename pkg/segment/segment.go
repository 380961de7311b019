// Package segment splits raw gazette text into an ordered list of labeled
// juridical section spans. Header detection is driven by an ordered table of
// (label, pattern, disposition sub-pattern) rows, so new section types are a
// table row, not new control flow.
package segment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/gaceta/pkg/document"
)

// dispositionLookahead is how far past a DISPOSICIONES header start the
// qualifying sub-keyword (FINALES, TRANSITORIAS, ...) may appear, in bytes.
// Headers whose sub-keyword falls outside the window are left UNRECOGNIZED.
const dispositionLookahead = 64

// headerRule is one row of the dispatch table. Rules earlier in the table
// are more specific: when two rules match at the same offset, the earlier
// row wins.
type headerRule struct {
	label document.SectionLabel

	// pattern locates the header itself.
	pattern *regexp.Regexp

	// subPattern, when non-nil, must additionally match within
	// dispositionLookahead bytes of the header start.
	subPattern *regexp.Regexp

	// repeated collects every match instead of only the first. Used for
	// headers that legitimately recur (unqualified disposition blocks).
	repeated bool
}

// Numbering tokens accepted after ARTÍCULO: digits (with an optional BIS
// suffix), ordinal words, ÚNICO, or roman numerals. The trailing terminator
// distinguishes a real article header from an in-text reference such as
// "el artículo 15 de la Ley ...".
const articleToken = `(?:\d+(?:\s+BIS)?|PRIMER[OA]?|SEGUND[OA]?|TERCER[OA]?|CUART[OA]?|QUINT[OA]?|SEXT[OA]?|S[EÉ]PTIM[OA]?|OCTAV[OA]?|NOVEN[OA]?|D[EÉ]CIM[OA]?|[UÚ]NIC[OA]|[IVXLCDM]+)`

var (
	dispositionHeader = regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\b`)
	vistosHeader      = regexp.MustCompile(`(?i)\bVISTOS?\s*[:.\n]`)
	considerandoHdr   = regexp.MustCompile(`(?i)\bCONSIDERANDO\b`)
	porTantoHeader    = regexp.MustCompile(`(?i)\bPOR\s+TANTO\b`)
	articulosHeader   = regexp.MustCompile(`(?i)\bART[IÍ]CULOS?\s+` + articleToken + `\s*[°º]?\s*[.\-:]`)
	closingFormula    = regexp.MustCompile(`(?i)\bREG[IÍ]STRESE\b|\bCOMUN[IÍ]QUESE\b`)

	subFinales      = regexp.MustCompile(`(?i)\bFINAL(?:ES)?\b`)
	subTransitorias = regexp.MustCompile(`(?i)\bTRANSITORIAS?\b`)
	subAdicionales  = regexp.MustCompile(`(?i)\bADICIONAL(?:ES)?\b`)
	subAbrogatorias = regexp.MustCompile(`(?i)\bABROGATORIAS?\b`)
)

// headerTable is consulted in order. Disposition sub-types precede the
// generic disposition row so the more specific label wins a shared offset.
var headerTable = []headerRule{
	{label: document.SectionDisposicionesFinales, pattern: dispositionHeader, subPattern: subFinales},
	{label: document.SectionDisposicionesTransitorias, pattern: dispositionHeader, subPattern: subTransitorias},
	{label: document.SectionDisposicionesAdicionales, pattern: dispositionHeader, subPattern: subAdicionales},
	{label: document.SectionDisposicionesAbrogatorias, pattern: dispositionHeader, subPattern: subAbrogatorias},
	{label: document.SectionUnrecognized, pattern: dispositionHeader, repeated: true},
	{label: document.SectionVistos, pattern: vistosHeader},
	{label: document.SectionConsiderando, pattern: considerandoHdr},
	{label: document.SectionPorTanto, pattern: porTantoHeader},
	{label: document.SectionArticulos, pattern: articulosHeader},
	{label: document.SectionUnrecognized, pattern: closingFormula},
}

// candidate is a header occurrence found during the scan.
type candidate struct {
	label      document.SectionLabel
	offset     int
	tableIndex int
}

// Segmenter locates section boundaries in gazette text.
type Segmenter struct {
	rules []headerRule
}

// New returns a segmenter using the standard Bolivian drafting header table.
func New() *Segmenter {
	return &Segmenter{rules: headerTable}
}

// Segment splits text into ordered, non-overlapping spans that cover the
// whole input. Text before the first header, unqualified disposition blocks,
// and the closing-formula zone are labeled UNRECOGNIZED. A document missing
// a given header simply has no span of that label. Empty input yields no
// spans.
func (s *Segmenter) Segment(text string) []document.SectionSpan {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	candidates := s.collect(text)
	if len(candidates) == 0 {
		return []document.SectionSpan{{
			Label:       document.SectionUnrecognized,
			StartOffset: 0,
			EndOffset:   len(text),
			Text:        text,
		}}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].offset != candidates[j].offset {
			return candidates[i].offset < candidates[j].offset
		}
		// Same offset: the more specific (earlier) table row first.
		return candidates[i].tableIndex < candidates[j].tableIndex
	})

	// Drop later rows that matched at an offset already claimed.
	deduped := candidates[:1]
	for _, c := range candidates[1:] {
		if c.offset != deduped[len(deduped)-1].offset {
			deduped = append(deduped, c)
		}
	}

	var spans []document.SectionSpan
	if deduped[0].offset > 0 && strings.TrimSpace(text[:deduped[0].offset]) != "" {
		spans = append(spans, document.SectionSpan{
			Label:       document.SectionUnrecognized,
			StartOffset: 0,
			EndOffset:   deduped[0].offset,
			Text:        text[:deduped[0].offset],
		})
	}
	for i, c := range deduped {
		end := len(text)
		if i+1 < len(deduped) {
			end = deduped[i+1].offset
		}
		spans = append(spans, document.SectionSpan{
			Label:       c.label,
			StartOffset: c.offset,
			EndOffset:   end,
			Text:        text[c.offset:end],
		})
	}
	return spans
}

// collect walks the header table and gathers one candidate per
// non-repeating label (its first qualifying occurrence) plus every
// occurrence for repeating rows not already claimed by a more specific row.
func (s *Segmenter) collect(text string) []candidate {
	var out []candidate
	claimed := make(map[int]bool)

	for idx, rule := range s.rules {
		for _, loc := range rule.pattern.FindAllStringIndex(text, -1) {
			if claimed[loc[0]] {
				continue
			}
			if rule.subPattern != nil && !qualifies(text, loc[0], loc[1], rule.subPattern) {
				continue
			}
			out = append(out, candidate{label: rule.label, offset: loc[0], tableIndex: idx})
			claimed[loc[0]] = true
			if !rule.repeated {
				break
			}
		}
	}
	return out
}

// qualifies reports whether the disposition sub-keyword appears within the
// lookahead window after the header match.
func qualifies(text string, start, matchEnd int, sub *regexp.Regexp) bool {
	end := start + dispositionLookahead
	if end > len(text) {
		end = len(text)
	}
	if matchEnd > end {
		end = matchEnd
	}
	return sub.MatchString(text[start:end])
}
