package segment

import (
	"strings"
	"testing"

	"github.com/coolbeans/gaceta/pkg/document"
)

const decreeText = `DECRETO SUPREMO N° 4567

VISTOS: Los informes legales correspondientes.

CONSIDERANDO: Que es necesario reglamentar la materia.

POR TANTO: El Presidente Constitucional del Estado decreta:

ARTÍCULO 1.- Se aprueba el presente reglamento.

ARTÍCULO 2.- Quedan encargados de su ejecución los ministros del ramo.

DISPOSICIONES FINALES

PRIMERA.- El presente decreto entra en vigencia a partir de su publicación.

REGÍSTRESE, comuníquese y archívese.

JUAN CARLOS MAMANI QUISPE`

func labels(spans []document.SectionSpan) []document.SectionLabel {
	out := make([]document.SectionLabel, len(spans))
	for i, s := range spans {
		out[i] = s.Label
	}
	return out
}

func TestSegment_StandardDecree(t *testing.T) {
	spans := New().Segment(decreeText)

	want := []document.SectionLabel{
		document.SectionUnrecognized, // header block before VISTOS
		document.SectionVistos,
		document.SectionConsiderando,
		document.SectionPorTanto,
		document.SectionArticulos,
		document.SectionDisposicionesFinales,
		document.SectionUnrecognized, // closing formula and signatures
	}
	got := labels(spans)
	if len(got) != len(want) {
		t.Fatalf("Expected %d spans %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if !strings.Contains(spans[4].Text, "ARTÍCULO 2") {
		t.Errorf("Expected ARTICULOS span to run through the second article, got %q", spans[4].Text)
	}
	if !strings.Contains(spans[6].Text, "REGÍSTRESE") {
		t.Errorf("Expected trailing span to start at the closing formula, got %q", spans[6].Text)
	}
}

func TestSegment_SpansAreOrderedAndCoverText(t *testing.T) {
	spans := New().Segment(decreeText)

	if spans[0].StartOffset != 0 {
		t.Errorf("Expected first span to start at 0, got %d", spans[0].StartOffset)
	}
	if spans[len(spans)-1].EndOffset != len(decreeText) {
		t.Errorf("Expected last span to end at %d, got %d", len(decreeText), spans[len(spans)-1].EndOffset)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].StartOffset != spans[i-1].EndOffset {
			t.Errorf("span %d starts at %d but previous ends at %d", i, spans[i].StartOffset, spans[i-1].EndOffset)
		}
	}
	for _, s := range spans {
		if s.Text != decreeText[s.StartOffset:s.EndOffset] {
			t.Errorf("span %s text does not match its offsets", s.Label)
		}
	}
}

func TestSegment_MissingHeaderYieldsNoSpan(t *testing.T) {
	text := `CONSIDERANDO: Que corresponde.

POR TANTO: Se resuelve:

ARTÍCULO 1.- Apruébase.`

	spans := New().Segment(text)
	for _, s := range spans {
		if s.Label == document.SectionVistos {
			t.Errorf("Expected no VISTOS span, got one at %d", s.StartOffset)
		}
	}
	if spans[0].Label != document.SectionConsiderando {
		t.Errorf("Expected first span CONSIDERANDO, got %s", spans[0].Label)
	}
}

func TestSegment_DispositionSubTypes(t *testing.T) {
	text := `POR TANTO: Se decreta:

ARTÍCULO 1.- Apruébase.

DISPOSICIONES TRANSITORIAS

PRIMERA.- Régimen transitorio.

DISPOSICIONES ABROGATORIAS

ÚNICA.- Se abrogan las normas contrarias.`

	spans := New().Segment(text)
	got := labels(spans)
	want := []document.SectionLabel{
		document.SectionPorTanto,
		document.SectionArticulos,
		document.SectionDisposicionesTransitorias,
		document.SectionDisposicionesAbrogatorias,
	}
	if len(got) != len(want) {
		t.Fatalf("Expected spans %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSegment_UnqualifiedDispositionIsUnrecognized(t *testing.T) {
	// The sub-keyword sits far past the lookahead window.
	text := `ARTÍCULO 1.- Apruébase.

DISPOSICIONES
` + strings.Repeat("texto intermedio sin clasificar ", 5) + `
FINALES aparecen demasiado tarde para clasificar el bloque.`

	spans := New().Segment(text)
	for _, s := range spans {
		if s.Label == document.SectionDisposicionesFinales {
			t.Fatalf("Expected unqualified disposition block to stay UNRECOGNIZED, got %s", s.Label)
		}
	}
	if spans[len(spans)-1].Label != document.SectionUnrecognized {
		t.Errorf("Expected trailing UNRECOGNIZED span, got %s", spans[len(spans)-1].Label)
	}
}

func TestSegment_InTextArticleReferenceIsNotAHeader(t *testing.T) {
	text := `CONSIDERANDO: Que el artículo 15 de la Ley N° 2341 establece el procedimiento aplicable.`

	spans := New().Segment(text)
	for _, s := range spans {
		if s.Label == document.SectionArticulos {
			t.Errorf("Expected no ARTICULOS span for an in-text reference, got one at %d", s.StartOffset)
		}
	}
}

func TestSegment_NoHeadersAtAll(t *testing.T) {
	text := "Comunicado sin estructura juridica reconocible."
	spans := New().Segment(text)
	if len(spans) != 1 {
		t.Fatalf("Expected a single span, got %d", len(spans))
	}
	if spans[0].Label != document.SectionUnrecognized {
		t.Errorf("Expected UNRECOGNIZED, got %s", spans[0].Label)
	}
	if spans[0].StartOffset != 0 || spans[0].EndOffset != len(text) {
		t.Errorf("Expected span to cover [0, %d), got [%d, %d)", len(text), spans[0].StartOffset, spans[0].EndOffset)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	if spans := New().Segment(""); spans != nil {
		t.Errorf("Expected nil spans for empty input, got %v", spans)
	}
	if spans := New().Segment("   \n\n  "); spans != nil {
		t.Errorf("Expected nil spans for blank input, got %v", spans)
	}
}

func TestSegment_ArticuloUnico(t *testing.T) {
	text := `POR TANTO: Se promulga:

ARTÍCULO ÚNICO.- Apruébase el convenio suscrito.`

	spans := New().Segment(text)
	var found bool
	for _, s := range spans {
		if s.Label == document.SectionArticulos {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected ARTÍCULO ÚNICO to open an ARTICULOS span, got %v", labels(spans))
	}
}
