// Package document defines the canonical structured record produced by the
// gazette structuring engine, along with its identifiers and export row.
package document

// TextSource indicates how the raw text of a document was obtained.
type TextSource string

const (
	// SourceDigital means the text came from the digital text layer of a PDF.
	SourceDigital TextSource = "DIGITAL"
	// SourceOCR means the text was produced by optical character recognition.
	SourceOCR TextSource = "OCR"
	// SourceNone means no text could be obtained for the document.
	SourceNone TextSource = "NONE"
)

// RawDocument is the input contract handed to the engine by the extraction
// collaborator. It is never mutated by the engine.
type RawDocument struct {
	Title      string     `json:"titulo"`
	URLPDF     string     `json:"url_pdf"`
	RawText    string     `json:"raw_text"`
	TextSource TextSource `json:"text_source"`
}

// SectionLabel identifies a juridical section of a Bolivian legal norm.
type SectionLabel string

const (
	SectionVistos                    SectionLabel = "VISTOS"
	SectionConsiderando              SectionLabel = "CONSIDERANDO"
	SectionPorTanto                  SectionLabel = "POR_TANTO"
	SectionArticulos                 SectionLabel = "ARTICULOS"
	SectionDisposicionesFinales      SectionLabel = "DISPOSICIONES_FINALES"
	SectionDisposicionesTransitorias SectionLabel = "DISPOSICIONES_TRANSITORIAS"
	SectionDisposicionesAdicionales  SectionLabel = "DISPOSICIONES_ADICIONALES"
	SectionDisposicionesAbrogatorias SectionLabel = "DISPOSICIONES_ABROGATORIAS"
	SectionUnrecognized              SectionLabel = "UNRECOGNIZED"
)

// SectionSpan is a labeled, contiguous region of the document text.
// Offsets are byte offsets into the text that was segmented. Spans within a
// document never overlap and are sorted by StartOffset.
type SectionSpan struct {
	Label       SectionLabel `json:"label"`
	StartOffset int          `json:"start_offset"`
	EndOffset   int          `json:"end_offset"`
	Text        string       `json:"text"`
}

// Article is a numbered article of a norm. Number preserves the numbering
// token exactly as written (digits, roman numerals, ordinal words, or
// "ÚNICO"); legal texts renumber and use BIS suffixes, so numbering is never
// assumed monotonic or gap-free. OrderIndex is the article's position as
// encountered, starting at 0.
type Article struct {
	Number     string `json:"numero"`
	Body       string `json:"contenido"`
	OrderIndex int    `json:"order_index"`
}

// DispositionKind categorizes a closing clause of a norm.
type DispositionKind string

const (
	DispositionFinal       DispositionKind = "FINAL"
	DispositionTransitoria DispositionKind = "TRANSITORIA"
	DispositionAdicional   DispositionKind = "ADICIONAL"
	DispositionAbrogatoria DispositionKind = "ABROGATORIA"
)

// Disposition is a closing clause. Number is the marker token as written
// ("PRIMERA", "2", ...) or empty when the span carried no recognizable
// marker and was kept whole. OrderIndex is per kind, starting at 0.
type Disposition struct {
	Kind       DispositionKind `json:"kind"`
	Number     string          `json:"numero,omitempty"`
	Body       string          `json:"contenido"`
	OrderIndex int             `json:"order_index"`
}

// NormMetadata holds the normalized identification of a norm. Every field is
// optional: the empty string (or empty slice) means the value could not be
// determined, which is a reportable outcome rather than an error.
type NormMetadata struct {
	TipoNorma      string   `json:"tipo_norma,omitempty"`
	NumeroNorma    string   `json:"numero_norma,omitempty"`
	FechaISO       string   `json:"fecha,omitempty"`
	EntidadEmisora string   `json:"entidad_emisora,omitempty"`
	Temas          []string `json:"temas,omitempty"`
}

// Flags summarizes which structural parts a document carries.
type Flags struct {
	TieneVistos                    bool `json:"tiene_vistos"`
	TienePorTanto                  bool `json:"tiene_por_tanto"`
	TieneDisposicionesFinales      bool `json:"tiene_disposiciones_finales"`
	TieneDisposicionesTransitorias bool `json:"tiene_disposiciones_transitorias"`
	TieneDisposicionesAdicionales  bool `json:"tiene_disposiciones_adicionales"`
	TieneDisposicionesAbrogatorias bool `json:"tiene_disposiciones_abrogatorias"`
}

// StructuredDocument is the assembled, immutable output record for one
// gazette document. Re-processing the same input yields an identical value.
type StructuredDocument struct {
	ID         string     `json:"id"`
	Title      string     `json:"titulo"`
	URLPDF     string     `json:"url_pdf"`
	RawText    string     `json:"texto_completo"`
	TextSource TextSource `json:"text_source"`

	Sections      []SectionSpan `json:"sections"`
	Articles      []Article     `json:"articulos"`
	Dispositions  []Disposition `json:"disposiciones"`
	Considerandos []string      `json:"considerandos,omitempty"`
	Signatories   []string      `json:"firmantes,omitempty"`

	Metadata NormMetadata `json:"metadata"`
	Flags    Flags        `json:"flags"`

	// Warnings records data-quality findings (overlapping spans,
	// non-monotonic offsets). A warned document is still usable.
	Warnings []string `json:"warnings,omitempty"`

	// LowConfidence is set when the raw text failed the quality gate and
	// the structure was not extracted.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// Section returns the first span with the given label, or nil.
func (d *StructuredDocument) Section(label SectionLabel) *SectionSpan {
	for i := range d.Sections {
		if d.Sections[i].Label == label {
			return &d.Sections[i]
		}
	}
	return nil
}

// DispositionsOfKind returns the dispositions of one kind, in order.
func (d *StructuredDocument) DispositionsOfKind(kind DispositionKind) []Disposition {
	var out []Disposition
	for _, disp := range d.Dispositions {
		if disp.Kind == kind {
			out = append(out, disp)
		}
	}
	return out
}

// NumArticulos returns the article count.
func (d *StructuredDocument) NumArticulos() int { return len(d.Articles) }

// NumConsiderandos returns the recital count.
func (d *StructuredDocument) NumConsiderandos() int { return len(d.Considerandos) }
