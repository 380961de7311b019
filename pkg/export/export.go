// Package export renders canonical document records as JSON, CSV and XLSX.
// All writers take the flat Record row set so every format carries the same
// fields in the same order.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/coolbeans/gaceta/pkg/document"
)

// header is the column order shared by CSV and XLSX output. It matches the
// Record field order.
var header = []string{
	"id",
	"titulo",
	"tipo_norma",
	"numero_norma",
	"fecha",
	"seccion",
	"entidad_emisora",
	"url_pdf",
	"resumen",
	"temas",
	"num_articulos",
	"num_considerandos",
	"texto_completo",
	"articulos_json",
	"tiene_vistos",
	"tiene_disposiciones_finales",
}

// row flattens a record into strings following the header order.
func row(r document.Record) []string {
	return []string{
		r.ID,
		r.Titulo,
		r.TipoNorma,
		r.NumeroNorma,
		r.Fecha,
		r.Seccion,
		r.EntidadEmisora,
		r.URLPDF,
		r.Resumen,
		r.Temas,
		strconv.Itoa(r.NumArticulos),
		strconv.Itoa(r.NumConsiderandos),
		r.TextoCompleto,
		r.ArticulosJSON,
		strconv.FormatBool(r.TieneVistos),
		strconv.FormatBool(r.TieneDisposicionesFinales),
	}
}

// WriteJSON writes the records as an indented JSON array. HTML escaping is
// disabled so gazette URLs stay readable.
func WriteJSON(w io.Writer, records []document.Record) error {
	if records == nil {
		records = []document.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	return nil
}

// WriteCSV writes the records as CSV with a header row.
func WriteCSV(w io.Writer, records []document.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV export: %w", err)
	}
	return nil
}
