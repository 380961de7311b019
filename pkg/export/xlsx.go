package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/coolbeans/gaceta/pkg/document"
)

const sheetName = "Documentos"

// xlsxCellLimit is the hard cap Excel places on a cell's character count.
// texto_completo can exceed it on long norms, so it is truncated for XLSX
// only; JSON and CSV always carry the full text.
const xlsxCellLimit = 32767

// WriteXLSX writes the records as an XLSX workbook with one sheet.
func WriteXLSX(w io.Writer, records []document.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("naming header cell %d: %w", i, err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}

	for rowIdx, r := range records {
		values := row(r)
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("naming cell %d,%d: %w", colIdx, rowIdx, err)
			}
			if err := f.SetCellValue(sheetName, cell, clipCell(v)); err != nil {
				return fmt.Errorf("writing row %s: %w", r.ID, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 30) // id
	_ = f.SetColWidth(sheetName, "B", "B", 48) // titulo
	_ = f.SetColWidth(sheetName, "C", "E", 18) // tipo, numero, fecha
	_ = f.SetColWidth(sheetName, "G", "G", 28) // entidad
	_ = f.SetColWidth(sheetName, "H", "I", 48) // url, resumen
	_ = f.SetColWidth(sheetName, "M", "N", 60) // texto, articulos

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("rendering workbook: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func clipCell(s string) string {
	runes := []rune(s)
	if len(runes) <= xlsxCellLimit {
		return s
	}
	return string(runes[:xlsxCellLimit-1]) + "…"
}
