package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/coolbeans/gaceta/internal/logging"
	"github.com/coolbeans/gaceta/pkg/config"
	"github.com/coolbeans/gaceta/pkg/document"
	"github.com/coolbeans/gaceta/pkg/engine"
	"github.com/coolbeans/gaceta/pkg/export"
	"github.com/coolbeans/gaceta/pkg/store"
)

var version = "0.1.0"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "gaceta",
		Short: "Structuring engine for Gaceta Oficial de Bolivia documents",
		Long: `Gaceta turns raw legal text extracted from Bolivian official gazette
PDFs into structured records: labeled juridical sections, numbered
articles, dispositions, recitals, signatories and normalized metadata.

Structured output can be exported as JSON, CSV or XLSX and catalogued
in a local SQLite database.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logging.ParseLevel(logLevel), logging.FormatText)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(structureCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEngine builds an engine from the optional config file.
func loadEngine(configPath string) (*engine.Engine, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return engine.New(cfg)
}

// readRaw loads one raw document from a text file. The title defaults to the
// file's first non-empty line, matching how gazette listings caption each PDF.
func readRaw(path, title, url string) (document.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.RawDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)
	if title == "" {
		title = firstLine(text)
	}
	return document.RawDocument{
		Title:      title,
		URLPDF:     url,
		RawText:    text,
		TextSource: document.SourceDigital,
	}, nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

func structureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure <file>",
		Short: "Structure a single document and print its JSON record",
		Long: `Structure one raw text file and write the structured record as JSON
to stdout or to --output.

Example:
  gaceta structure ds-4567.txt
  gaceta structure ley-1333.txt --title "LEY N° 1333" --output ley-1333.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			url, _ := cmd.Flags().GetString("url")
			output, _ := cmd.Flags().GetString("output")
			configPath, _ := cmd.Flags().GetString("config")

			eng, err := loadEngine(configPath)
			if err != nil {
				return err
			}
			raw, err := readRaw(args[0], title, url)
			if err != nil {
				return err
			}
			doc, err := eng.Structure(raw)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}
			return export.WriteJSON(out, []document.Record{eng.Record(doc)})
		},
	}
	cmd.Flags().String("title", "", "document title (default: first non-empty line)")
	cmd.Flags().String("url", "", "source PDF URL")
	cmd.Flags().String("output", "", "output file (default: stdout)")
	cmd.Flags().String("config", "", "YAML config file")
	return cmd
}

// batchResult carries one worker outcome back to the collector.
type batchResult struct {
	path   string
	record document.Record
	err    error
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Structure every text file in a directory",
		Long: `Structure all .txt files under a directory and write the combined
results as JSON, CSV and XLSX into --output-dir. With --db the records
are also upserted into a SQLite catalog; each batch run is tagged with
a fresh run ID.

Example:
  gaceta batch ./gaceta-2024-01 --output-dir ./out --db catalog.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output-dir")
			dbPath, _ := cmd.Flags().GetString("db")
			configPath, _ := cmd.Flags().GetString("config")
			workers, _ := cmd.Flags().GetInt("workers")
			if workers < 1 {
				workers = 1
			}

			eng, err := loadEngine(configPath)
			if err != nil {
				return err
			}
			paths, err := collectTextFiles(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no .txt files under %s", args[0])
			}

			runID := uuid.NewString()
			fmt.Printf("Structuring %d documents (run %s)\n", len(paths), runID)
			start := time.Now()

			records, failures := runBatch(eng, paths, workers)

			fmt.Printf("  structured: %d\n", len(records))
			for _, f := range failures {
				fmt.Printf("  failed: %s: %v\n", f.path, f.err)
			}

			if outputDir != "" {
				if err := writeExports(outputDir, records); err != nil {
					return err
				}
			}
			if dbPath != "" {
				if err := saveCatalog(cmd.Context(), dbPath, records, runID); err != nil {
					return err
				}
				fmt.Printf("  catalogued into %s\n", dbPath)
			}

			fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d documents failed", len(failures), len(paths))
			}
			return nil
		},
	}
	cmd.Flags().String("output-dir", "", "directory for documentos.{json,csv,xlsx}")
	cmd.Flags().String("db", "", "SQLite catalog path")
	cmd.Flags().String("config", "", "YAML config file")
	cmd.Flags().Int("workers", 4, "concurrent structuring workers")
	return cmd
}

func collectTextFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// runBatch structures the files on a bounded worker pool. Output ordering
// follows the sorted input paths regardless of completion order.
func runBatch(eng *engine.Engine, paths []string, workers int) ([]document.Record, []batchResult) {
	jobs := make(chan string)
	results := make(chan batchResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				raw, err := readRaw(path, "", "")
				if err != nil {
					results <- batchResult{path: path, err: err}
					continue
				}
				doc, err := eng.Structure(raw)
				if err != nil {
					results <- batchResult{path: path, err: err}
					continue
				}
				results <- batchResult{path: path, record: eng.Record(doc)}
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	byPath := make(map[string]batchResult, len(paths))
	for r := range results {
		byPath[r.path] = r
	}

	var records []document.Record
	var failures []batchResult
	for _, p := range paths {
		r := byPath[p]
		if r.err != nil {
			failures = append(failures, r)
			continue
		}
		records = append(records, r.record)
	}
	return records, failures
}

func writeExports(dir string, records []document.Record) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	writers := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"documentos.json", func(f *os.File) error { return export.WriteJSON(f, records) }},
		{"documentos.csv", func(f *os.File) error { return export.WriteCSV(f, records) }},
		{"documentos.xlsx", func(f *os.File) error { return export.WriteXLSX(f, records) }},
	}
	for _, w := range writers {
		path := filepath.Join(dir, w.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := w.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		fmt.Printf("  wrote %s\n", path)
	}
	return nil
}

func saveCatalog(ctx context.Context, dbPath string, records []document.Record, runID string) error {
	catalog, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer catalog.Close()
	for _, r := range records {
		if err := catalog.Save(ctx, r, runID); err != nil {
			return err
		}
	}
	return nil
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <catalog.db>",
		Short: "Export catalogued records to JSON, CSV or XLSX",
		Long: `Read all records from a SQLite catalog and render them in the chosen
format.

Example:
  gaceta export catalog.db --format csv --output documentos.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			catalog, err := store.Open(args[0])
			if err != nil {
				return err
			}
			defer catalog.Close()

			records, err := catalog.List(cmd.Context())
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "json":
				return export.WriteJSON(out, records)
			case "csv":
				return export.WriteCSV(out, records)
			case "xlsx":
				if output == "" {
					return fmt.Errorf("--output is required for xlsx")
				}
				return export.WriteXLSX(out, records)
			default:
				return fmt.Errorf("unknown format %q (want json, csv or xlsx)", format)
			}
		},
	}
	cmd.Flags().String("format", "json", "output format (json, csv, xlsx)")
	cmd.Flags().String("output", "", "output file (default: stdout)")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage engine configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the baseline configuration as a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "gaceta.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Printf("Wrote baseline configuration to %s\n", path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if len(args) > 0 {
				loaded, err := config.Load(args[0])
				if err != nil {
					return err
				}
				cfg = loaded
			}
			fmt.Printf("norm types: %d\nentities: %d\ntopics: %d\nmin text length: %d\nsummary max length: %d\n",
				len(cfg.NormTypes), len(cfg.Entities), len(cfg.Topics), cfg.MinTextLength, cfg.SummaryMaxLength)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	cmd.AddCommand(showCmd)
	return cmd
}
