package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/coolbeans/gaceta/pkg/config"
	"github.com/coolbeans/gaceta/pkg/document"
)

const supremeDecree = `DECRETO SUPREMO N° 4567

EVO MORALES AYMA
PRESIDENTE CONSTITUCIONAL DEL ESTADO PLURINACIONAL DE BOLIVIA

VISTOS: Los informes legales correspondientes.

CONSIDERANDO: Que el numeral 1 del artículo 175 de la Constitución Política del Estado establece las atribuciones ministeriales.

Que mediante Ley N° 1178 de 20 de julio de 1990 se regula la administración gubernamental.

POR TANTO: El Presidente Constitucional del Estado Plurinacional de Bolivia, en Consejo de Ministros, decreta:

ARTÍCULO 1.- Se aprueba el reglamento de la ley del medio ambiente.

ARTÍCULO 2.- Los ministerios del ramo quedan encargados de la ejecución del presente decreto.

DISPOSICIONES FINALES

PRIMERA.- El presente decreto entra en vigencia el 1 de junio de 2021.

REGÍSTRESE, comuníquese y archívese.

LUIS ALBERTO ARCE CATACORA`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(config.Default())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return eng
}

func TestStructure_SupremeDecree(t *testing.T) {
	eng := newTestEngine(t)

	doc, err := eng.Structure(document.RawDocument{
		Title:      "DECRETO SUPREMO N° 4567 DE 1 DE JUNIO DE 2021",
		URLPDF:     "https://gacetaoficialdebolivia.gob.bo/normas/4567.pdf",
		RawText:    supremeDecree,
		TextSource: document.SourceDigital,
	})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}

	if doc.Metadata.TipoNorma != "DECRETO SUPREMO" {
		t.Errorf("Expected tipo DECRETO SUPREMO, got %q", doc.Metadata.TipoNorma)
	}
	if doc.Metadata.NumeroNorma != "4567" {
		t.Errorf("Expected numero 4567, got %q", doc.Metadata.NumeroNorma)
	}
	if doc.Metadata.FechaISO != "2021-06-01" {
		t.Errorf("Expected fecha 2021-06-01, got %q", doc.Metadata.FechaISO)
	}
	if doc.ID != "decreto_supremo_4567_2021-06-01" {
		t.Errorf("Expected slug ID, got %q", doc.ID)
	}

	if len(doc.Articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(doc.Articles))
	}
	if doc.Articles[0].Number != "1" || doc.Articles[1].Number != "2" {
		t.Errorf("Unexpected article numbers: %q, %q", doc.Articles[0].Number, doc.Articles[1].Number)
	}

	if len(doc.Considerandos) != 2 {
		t.Errorf("Expected 2 recitals, got %d", len(doc.Considerandos))
	}

	finales := doc.DispositionsOfKind(document.DispositionFinal)
	if len(finales) != 1 || finales[0].Number != "PRIMERA" {
		t.Errorf("Unexpected final dispositions: %+v", finales)
	}

	if !doc.Flags.TieneVistos || !doc.Flags.TienePorTanto || !doc.Flags.TieneDisposicionesFinales {
		t.Errorf("Unexpected flags: %+v", doc.Flags)
	}
	if doc.Flags.TieneDisposicionesTransitorias {
		t.Error("Expected no transitional dispositions flag")
	}

	if len(doc.Signatories) == 0 || doc.Signatories[len(doc.Signatories)-1] != "LUIS ALBERTO ARCE CATACORA" {
		t.Errorf("Unexpected signatories: %v", doc.Signatories)
	}

	if doc.LowConfidence {
		t.Error("Expected a confident document")
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", doc.Warnings)
	}
}

func TestStructure_SectionsOrderedAndNonOverlapping(t *testing.T) {
	eng := newTestEngine(t)

	doc, err := eng.Structure(document.RawDocument{Title: "DS 4567", RawText: supremeDecree})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	for i := 1; i < len(doc.Sections); i++ {
		prev, cur := doc.Sections[i-1], doc.Sections[i]
		if cur.StartOffset < prev.EndOffset {
			t.Errorf("section %s overlaps %s", cur.Label, prev.Label)
		}
	}
	for _, s := range doc.Sections {
		if s.Text != doc.RawText[s.StartOffset:s.EndOffset] {
			t.Errorf("section %s offsets do not index the stored text", s.Label)
		}
	}
}

func TestStructure_MissingSectionsAreAbsent(t *testing.T) {
	eng := newTestEngine(t)

	text := `RESOLUCIÓN MINISTERIAL N° 100 de la gestión en curso, emitida para los fines consiguientes de administración interna del ministerio.

CONSIDERANDO: Que corresponde emitir la presente resolución conforme a las atribuciones conferidas por la normativa vigente en la materia.`

	doc, err := eng.Structure(document.RawDocument{Title: "RM 100", RawText: text})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	if doc.Section(document.SectionVistos) != nil {
		t.Error("Expected no VISTOS span")
	}
	if len(doc.Articles) != 0 {
		t.Errorf("Expected zero articles, got %d", len(doc.Articles))
	}
	if doc.Flags.TieneVistos {
		t.Error("Expected tiene_vistos false")
	}
	if doc.LowConfidence {
		t.Error("Absent sections must not mark the document low confidence")
	}
}

func TestStructure_ShortTextIsLowConfidence(t *testing.T) {
	eng := newTestEngine(t)

	doc, err := eng.Structure(document.RawDocument{
		Title:   "DECRETO SUPREMO N° 99 DE 1 DE ENERO DE 2020",
		RawText: "ilegible",
	})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	if !doc.LowConfidence {
		t.Fatal("Expected a low-confidence document")
	}
	if len(doc.Sections) != 0 || len(doc.Articles) != 0 {
		t.Errorf("Expected no extracted structure, got %d sections, %d articles",
			len(doc.Sections), len(doc.Articles))
	}
	// Metadata stays absent even though the title alone would yield values.
	if !reflect.DeepEqual(doc.Metadata, document.NormMetadata{}) {
		t.Errorf("Expected absent metadata, got %+v", doc.Metadata)
	}
	if !strings.HasPrefix(doc.ID, "doc_") {
		t.Errorf("Expected a content-hash ID, got %q", doc.ID)
	}
}

func TestStructure_EmptyDocumentIsAnError(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Structure(document.RawDocument{})
	if err != ErrEmptyDocument {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}

	// A URL alone is enough to produce a (low-confidence) record.
	doc, err := eng.Structure(document.RawDocument{URLPDF: "https://example.org/doc.pdf"})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	if !doc.LowConfidence {
		t.Error("Expected a low-confidence record for a URL-only document")
	}
}

func TestStructure_Idempotent(t *testing.T) {
	eng := newTestEngine(t)

	raw := document.RawDocument{Title: "DS 4567", RawText: supremeDecree}
	first, err := eng.Structure(raw)
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	second, err := eng.Structure(raw)
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("Expected byte-identical output for identical input")
	}
}

func TestStructure_CleansTextBeforeSegmenting(t *testing.T) {
	eng := newTestEngine(t)

	raw := document.RawDocument{
		Title:   "DS",
		RawText: strings.ReplaceAll(supremeDecree, "\n", "\r\n"),
	}
	doc, err := eng.Structure(raw)
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	if strings.Contains(doc.RawText, "\r") {
		t.Error("Expected stored text to be cleaned")
	}
	if len(doc.Articles) != 2 {
		t.Errorf("Expected segmentation over cleaned text, got %d articles", len(doc.Articles))
	}
}

func TestRecord_IncludesSummary(t *testing.T) {
	eng := newTestEngine(t)

	doc, err := eng.Structure(document.RawDocument{Title: "DS 4567", RawText: supremeDecree})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	r := eng.Record(doc)
	if !strings.HasPrefix(r.Resumen, "Que el numeral 1") {
		t.Errorf("Expected the resumen to open with the first recital, got %q", r.Resumen)
	}
	if r.NumArticulos != 2 {
		t.Errorf("Expected 2 articles in the record, got %d", r.NumArticulos)
	}
}

func TestStructure_LawWithTransitionalDisposition(t *testing.T) {
	eng := newTestEngine(t)

	body := `VISTOS: En sesión del pleno, los proyectos remitidos por la comisión.

ARTÍCULO 1. Se declara de prioridad nacional la protección del medio ambiente.

ARTÍCULO 2. Los recursos provendrán del tesoro general.

ARTÍCULO ÚNICO. Apruébase el texto ordenado adjunto.

DISPOSICIONES TRANSITORIAS

PRIMERA. Los procesos en curso se adecúan en noventa días.`

	doc, err := eng.Structure(document.RawDocument{
		Title:   "LEY N° 1333 DE 15 DE ENERO DE 2024",
		RawText: body,
	})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}

	if doc.Metadata.TipoNorma != "LEY" {
		t.Errorf("Expected tipo LEY, got %q", doc.Metadata.TipoNorma)
	}
	if doc.Metadata.NumeroNorma != "1333" {
		t.Errorf("Expected numero 1333, got %q", doc.Metadata.NumeroNorma)
	}
	if doc.Metadata.FechaISO != "2024-01-15" {
		t.Errorf("Expected fecha 2024-01-15, got %q", doc.Metadata.FechaISO)
	}
	if doc.NumArticulos() != 3 {
		t.Errorf("Expected 3 articles, got %d", doc.NumArticulos())
	}
	if !doc.Flags.TieneVistos {
		t.Error("Expected tiene_vistos true")
	}
	transitorias := doc.DispositionsOfKind(document.DispositionTransitoria)
	if len(transitorias) != 1 || transitorias[0].Number != "PRIMERA" {
		t.Errorf("Expected one TRANSITORIA numbered PRIMERA, got %+v", transitorias)
	}
}

func TestStructure_DuplicateNumberingWarnsButKeepsArticles(t *testing.T) {
	eng := newTestEngine(t)

	body := `POR TANTO: Se decreta lo siguiente para su cumplimiento obligatorio:

ARTÍCULO 1. Primera medida aprobada.

ARTÍCULO 1. Medida repetida por error de imprenta.

ARTÍCULO 2. Segunda medida aprobada.`

	doc, err := eng.Structure(document.RawDocument{Title: "DS 1", RawText: body})
	if err != nil {
		t.Fatalf("Structure returned error: %v", err)
	}
	if len(doc.Articles) != 3 {
		t.Fatalf("Expected duplicates preserved, got %d articles", len(doc.Articles))
	}
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "numbering regresses") {
		t.Errorf("Expected a numbering warning, got %v", doc.Warnings)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.NormTypes = nil
	if _, err := New(cfg); err == nil {
		t.Error("Expected an error for a config without norm types")
	}
}
