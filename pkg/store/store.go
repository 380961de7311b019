// Package store persists canonical document records in a SQLite catalog.
// The catalog is keyed by document ID, so re-processing a gazette page
// upserts rather than duplicates.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coolbeans/gaceta/pkg/document"
)

const schema = `
CREATE TABLE IF NOT EXISTS documentos (
	id TEXT PRIMARY KEY,
	titulo TEXT NOT NULL DEFAULT '',
	tipo_norma TEXT NOT NULL DEFAULT '',
	numero_norma TEXT NOT NULL DEFAULT '',
	fecha TEXT NOT NULL DEFAULT '',
	seccion TEXT NOT NULL DEFAULT '',
	entidad_emisora TEXT NOT NULL DEFAULT '',
	url_pdf TEXT NOT NULL DEFAULT '',
	resumen TEXT NOT NULL DEFAULT '',
	temas TEXT NOT NULL DEFAULT '',
	num_articulos INTEGER NOT NULL DEFAULT 0,
	num_considerandos INTEGER NOT NULL DEFAULT 0,
	texto_completo TEXT NOT NULL DEFAULT '',
	articulos_json TEXT NOT NULL DEFAULT '',
	tiene_vistos INTEGER NOT NULL DEFAULT 0,
	tiene_disposiciones_finales INTEGER NOT NULL DEFAULT 0,
	run_id TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documentos_tipo ON documentos (tipo_norma);
CREATE INDEX IF NOT EXISTS idx_documentos_fecha ON documentos (fecha);
`

// Catalog is a SQLite-backed record store.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Save upserts one record. runID tags the batch run that produced it.
func (c *Catalog) Save(ctx context.Context, r document.Record, runID string) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO documentos (
	id, titulo, tipo_norma, numero_norma, fecha, seccion, entidad_emisora,
	url_pdf, resumen, temas, num_articulos, num_considerandos,
	texto_completo, articulos_json, tiene_vistos, tiene_disposiciones_finales,
	run_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	titulo = excluded.titulo,
	tipo_norma = excluded.tipo_norma,
	numero_norma = excluded.numero_norma,
	fecha = excluded.fecha,
	seccion = excluded.seccion,
	entidad_emisora = excluded.entidad_emisora,
	url_pdf = excluded.url_pdf,
	resumen = excluded.resumen,
	temas = excluded.temas,
	num_articulos = excluded.num_articulos,
	num_considerandos = excluded.num_considerandos,
	texto_completo = excluded.texto_completo,
	articulos_json = excluded.articulos_json,
	tiene_vistos = excluded.tiene_vistos,
	tiene_disposiciones_finales = excluded.tiene_disposiciones_finales,
	run_id = excluded.run_id`,
		r.ID, r.Titulo, r.TipoNorma, r.NumeroNorma, r.Fecha, r.Seccion,
		r.EntidadEmisora, r.URLPDF, r.Resumen, r.Temas,
		r.NumArticulos, r.NumConsiderandos, r.TextoCompleto, r.ArticulosJSON,
		boolInt(r.TieneVistos), boolInt(r.TieneDisposicionesFinales),
		runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving record %s: %w", r.ID, err)
	}
	return nil
}

// Get fetches one record by ID. The second result is false when absent.
func (c *Catalog) Get(ctx context.Context, id string) (document.Record, bool, error) {
	row := c.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return document.Record{}, false, nil
	}
	if err != nil {
		return document.Record{}, false, fmt.Errorf("loading record %s: %w", id, err)
	}
	return r, true, nil
}

// List returns all records ordered by fecha then id.
func (c *Catalog) List(ctx context.Context) ([]document.Record, error) {
	rows, err := c.db.QueryContext(ctx, selectColumns+` ORDER BY fecha, id`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var out []document.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

// Count returns the number of catalogued documents.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documentos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

const selectColumns = `
SELECT id, titulo, tipo_norma, numero_norma, fecha, seccion, entidad_emisora,
	url_pdf, resumen, temas, num_articulos, num_considerandos,
	texto_completo, articulos_json, tiene_vistos, tiene_disposiciones_finales
FROM documentos`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (document.Record, error) {
	var r document.Record
	var vistos, finales int
	err := s.Scan(
		&r.ID, &r.Titulo, &r.TipoNorma, &r.NumeroNorma, &r.Fecha, &r.Seccion,
		&r.EntidadEmisora, &r.URLPDF, &r.Resumen, &r.Temas,
		&r.NumArticulos, &r.NumConsiderandos, &r.TextoCompleto, &r.ArticulosJSON,
		&vistos, &finales)
	if err != nil {
		return document.Record{}, err
	}
	r.TieneVistos = vistos != 0
	r.TieneDisposicionesFinales = finales != 0
	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
