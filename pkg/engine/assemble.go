package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coolbeans/gaceta/pkg/document"
	"github.com/coolbeans/gaceta/pkg/extract"
	"github.com/coolbeans/gaceta/pkg/quality"
)

// Structure runs the full pipeline over one raw document. The result is
// deterministic: the same input always assembles the same record. Absent
// sections, zero articles and unextractable metadata are reportable outcomes,
// not errors; the only error case is a document with nothing in it at all.
func (e *Engine) Structure(raw document.RawDocument) (*document.StructuredDocument, error) {
	if raw.Title == "" && strings.TrimSpace(raw.RawText) == "" && raw.URLPDF == "" {
		return nil, ErrEmptyDocument
	}

	cleaned := extract.Clean(raw.RawText)

	if e.gate.Evaluate(cleaned) == quality.VerdictOCRRequired {
		// Too little text to structure. Emit an empty low-confidence record
		// so the document still appears in the catalog; metadata stays fully
		// absent rather than guessed from the title.
		doc := &document.StructuredDocument{
			Title:         raw.Title,
			URLPDF:        raw.URLPDF,
			RawText:       cleaned,
			TextSource:    raw.TextSource,
			LowConfidence: true,
		}
		doc.ID = document.DeriveID(doc.Metadata, raw.Title, cleaned)
		e.logger.Debug("document below quality threshold",
			"title", raw.Title, "runes", len([]rune(cleaned)), "min", e.gate.MinLength())
		return doc, nil
	}

	sections := e.segmenter.Segment(cleaned)

	doc := &document.StructuredDocument{
		Title:      raw.Title,
		URLPDF:     raw.URLPDF,
		RawText:    cleaned,
		TextSource: raw.TextSource,
		Sections:   sections,
	}

	for _, span := range sections {
		switch {
		case span.Label == document.SectionArticulos:
			if doc.Articles == nil {
				doc.Articles = extract.Articles(span.Text)
			}
		case span.Label == document.SectionConsiderando:
			if doc.Considerandos == nil {
				doc.Considerandos = extract.Considerandos(span.Text)
			}
		default:
			if kind, ok := document.DispositionKindFor(span.Label); ok {
				doc.Dispositions = append(doc.Dispositions, extract.Dispositions(kind, span.Text)...)
			}
		}
	}

	doc.Signatories = extract.Signatories(cleaned)
	doc.Metadata = e.meta.Extract(raw.Title, cleaned)
	doc.Flags = assembleFlags(doc)
	doc.Warnings = append(validateSpans(sections), numberingWarnings(doc.Articles)...)
	doc.ID = document.DeriveID(doc.Metadata, raw.Title, cleaned)

	e.logger.Debug("document structured",
		"id", doc.ID,
		"tipo", doc.Metadata.TipoNorma,
		"sections", len(doc.Sections),
		"articles", len(doc.Articles),
		"warnings", len(doc.Warnings))
	return doc, nil
}

func assembleFlags(doc *document.StructuredDocument) document.Flags {
	has := func(label document.SectionLabel) bool {
		span := doc.Section(label)
		return span != nil && strings.TrimSpace(span.Text) != ""
	}
	return document.Flags{
		TieneVistos:                    has(document.SectionVistos),
		TienePorTanto:                  has(document.SectionPorTanto),
		TieneDisposicionesFinales:      has(document.SectionDisposicionesFinales),
		TieneDisposicionesTransitorias: has(document.SectionDisposicionesTransitorias),
		TieneDisposicionesAdicionales:  has(document.SectionDisposicionesAdicionales),
		TieneDisposicionesAbrogatorias: has(document.SectionDisposicionesAbrogatorias),
	}
}

// numberingWarnings flags article numbering that repeats or goes backwards.
// The articles themselves are kept exactly as written; the warning only
// surfaces the source fact for a downstream reviewer.
func numberingWarnings(articles []document.Article) []string {
	var warnings []string
	prev := 0
	for _, a := range articles {
		token, ok := extract.OrdinalToDigits(a.Number)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if n <= prev {
			warnings = append(warnings, fmt.Sprintf("article numbering regresses at %q (position %d)", a.Number, a.OrderIndex))
		}
		prev = n
	}
	return warnings
}

// validateSpans checks the ordering invariants the segmenter is supposed to
// uphold. A violation is recorded as a warning on the document, never a
// rejection.
func validateSpans(spans []document.SectionSpan) []string {
	var warnings []string
	for i, s := range spans {
		if s.EndOffset < s.StartOffset {
			warnings = append(warnings, fmt.Sprintf("section %s has inverted offsets [%d, %d)", s.Label, s.StartOffset, s.EndOffset))
		}
		if i == 0 {
			continue
		}
		prev := spans[i-1]
		if s.StartOffset < prev.EndOffset {
			warnings = append(warnings, fmt.Sprintf("section %s at %d overlaps %s ending at %d", s.Label, s.StartOffset, prev.Label, prev.EndOffset))
		}
	}
	return warnings
}
