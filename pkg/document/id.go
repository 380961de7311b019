package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"
)

var idSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveID computes the deterministic identifier for a document.
//
// When tipo_norma, numero_norma and fecha are all known the id is a readable
// slug of the three ("ley_1333_2024-01-15"), which is unique per norm by
// construction. Otherwise the id is derived from a content hash of the title
// and raw text, so two distinct documents never collide and re-processing
// the same input reproduces the same id without external coordination.
func DeriveID(meta NormMetadata, title, rawText string) string {
	if meta.TipoNorma != "" && meta.NumeroNorma != "" && meta.FechaISO != "" {
		tipo := idSlugPattern.ReplaceAllString(strings.ToLower(meta.TipoNorma), "_")
		tipo = strings.Trim(tipo, "_")
		return fmt.Sprintf("%s_%s_%s", tipo, meta.NumeroNorma, meta.FechaISO)
	}
	return "doc_" + ContentHash(title, rawText)
}

// ContentHash returns a short hex digest of title plus raw text.
func ContentHash(title, rawText string) string {
	h := blake3.New()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(rawText))
	sum := h.Sum(nil)
	return fmt.Sprintf("%x", sum[:8])
}
