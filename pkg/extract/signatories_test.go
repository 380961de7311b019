package extract

import (
	"testing"
)

func TestSignatories_AfterClosingFormula(t *testing.T) {
	text := `ARTÍCULO 2.- El presente decreto entra en vigencia.

REGÍSTRESE, comuníquese y archívese.

Es dado en el Palacio de Gobierno de la ciudad de La Paz.

LUIS ALBERTO ARCE CATACORA

MARÍA NELA PRADA TEJADA`

	got := Signatories(text)
	want := []string{"LUIS ALBERTO ARCE CATACORA", "MARÍA NELA PRADA TEJADA"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d signatories %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signatory %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSignatories_NoClosingFormula(t *testing.T) {
	text := `ARTÍCULO 1.- Sin fórmula de cierre.

JUAN PÉREZ GARCÍA`
	if got := Signatories(text); got != nil {
		t.Errorf("Expected nil without a closing formula, got %v", got)
	}
}

func TestSignatories_ShortRunsIgnored(t *testing.T) {
	text := `COMUNÍQUESE a quien corresponda.

YPFB

CARLOS EDUARDO ROMERO BONIFAZ`

	got := Signatories(text)
	if len(got) != 1 {
		t.Fatalf("Expected the short acronym filtered out, got %v", got)
	}
	if got[0] != "CARLOS EDUARDO ROMERO BONIFAZ" {
		t.Errorf("Expected the full name kept, got %q", got[0])
	}
}
