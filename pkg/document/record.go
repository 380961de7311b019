package document

import (
	"encoding/json"
	"strings"
)

// Record is the canonical flat field set handed to export collaborators.
// Field names and ordering match the published contract; optional fields are
// empty strings when absent.
type Record struct {
	ID                        string `json:"id"`
	Titulo                    string `json:"titulo"`
	TipoNorma                 string `json:"tipo_norma"`
	NumeroNorma               string `json:"numero_norma"`
	Fecha                     string `json:"fecha"`
	Seccion                   string `json:"seccion"`
	EntidadEmisora            string `json:"entidad_emisora"`
	URLPDF                    string `json:"url_pdf"`
	Resumen                   string `json:"resumen"`
	Temas                     string `json:"temas"`
	NumArticulos              int    `json:"num_articulos"`
	NumConsiderandos          int    `json:"num_considerandos"`
	TextoCompleto             string `json:"texto_completo"`
	ArticulosJSON             string `json:"articulos_json"`
	TieneVistos               bool   `json:"tiene_vistos"`
	TieneDisposicionesFinales bool   `json:"tiene_disposiciones_finales"`
}

// articleRow is the per-article shape serialized into articulos_json.
type articleRow struct {
	Numero    string `json:"numero"`
	Contenido string `json:"contenido"`
}

// Record flattens the structured document into the export contract.
// The resumen must already be present on the document's metadata path; it is
// passed in because summary derivation is a metadata concern, not a record
// concern.
func (d *StructuredDocument) Record(resumen string) Record {
	return Record{
		ID:                        d.ID,
		Titulo:                    d.Title,
		TipoNorma:                 d.Metadata.TipoNorma,
		NumeroNorma:               d.Metadata.NumeroNorma,
		Fecha:                     d.Metadata.FechaISO,
		Seccion:                   d.Metadata.TipoNorma,
		EntidadEmisora:            d.Metadata.EntidadEmisora,
		URLPDF:                    d.URLPDF,
		Resumen:                   resumen,
		Temas:                     strings.Join(d.Metadata.Temas, ","),
		NumArticulos:              len(d.Articles),
		NumConsiderandos:          len(d.Considerandos),
		TextoCompleto:             d.RawText,
		ArticulosJSON:             marshalArticles(d.Articles),
		TieneVistos:               d.Flags.TieneVistos,
		TieneDisposicionesFinales: d.Flags.TieneDisposicionesFinales,
	}
}

func marshalArticles(articles []Article) string {
	if len(articles) == 0 {
		return ""
	}
	rows := make([]articleRow, len(articles))
	for i, a := range articles {
		rows[i] = articleRow{Numero: a.Number, Contenido: a.Body}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		// Plain strings cannot fail to marshal.
		return ""
	}
	return string(b)
}
