// Package metadata derives the normalized identification of a norm — type,
// number, issuance date, issuing entity, topics — from its title and text.
// Each field is produced by an explicit priority chain of pure functions
// over (title, text); the first link to match wins and every field is
// allowed to stay absent.
package metadata

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/gaceta/pkg/config"
	"github.com/coolbeans/gaceta/pkg/document"
)

// Search windows into the body text, in runes. Titles are curated and
// searched whole; bodies are noisy, so only their opening is consulted.
const (
	normTypeBodyWindow = 500
	entityBodyWindow   = 1000
	topicBodyWindow    = 1000
	numberLinesWindow  = 5
)

// fieldFunc is one link of a priority chain: a pure function over
// (title, text) returning an optional value.
type fieldFunc func(title, text string) (string, bool)

// chain composes links left to right; the first match wins.
func chain(links ...fieldFunc) fieldFunc {
	return func(title, text string) (string, bool) {
		for _, link := range links {
			if v, ok := link(title, text); ok {
				return v, true
			}
		}
		return "", false
	}
}

// normTypeRule is a compiled norm-type phrase.
type normTypeRule struct {
	phrase  string
	pattern *regexp.Regexp
}

// entityRule is a compiled issuing-entity matcher.
type entityRule struct {
	name     string
	useMatch bool
	pattern  *regexp.Regexp
}

// Extractor holds the compiled configuration tables. It is immutable after
// construction and safe for concurrent use.
type Extractor struct {
	cfg       config.Config
	normTypes []normTypeRule // longest phrase first
	entities  []entityRule
	dates     *dateScanner
}

// New compiles the configuration into an extractor.
func New(cfg config.Config) (*Extractor, error) {
	e := &Extractor{cfg: cfg}

	// Longest phrase first so "DECRETO SUPREMO" beats "DECRETO"; ties keep
	// configured order.
	phrases := make([]string, len(cfg.NormTypes))
	copy(phrases, cfg.NormTypes)
	sort.SliceStable(phrases, func(i, j int) bool {
		return len([]rune(phrases[i])) > len([]rune(phrases[j]))
	})
	for _, phrase := range phrases {
		p, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling norm type %q: %w", phrase, err)
		}
		e.normTypes = append(e.normTypes, normTypeRule{phrase: phrase, pattern: p})
	}

	for _, rule := range cfg.Entities {
		p, err := regexp.Compile(`(?i)` + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling entity %q: %w", rule.Name, err)
		}
		e.entities = append(e.entities, entityRule{name: rule.Name, useMatch: rule.UseMatch, pattern: p})
	}

	e.dates = newDateScanner(cfg.Months)
	return e, nil
}

// Extract derives all metadata fields. Absent fields are empty; absence is
// a reportable outcome, not an error.
func (e *Extractor) Extract(title, text string) document.NormMetadata {
	meta := document.NormMetadata{}

	if tipo, ok := e.NormType(title, text); ok {
		meta.TipoNorma = tipo
	}
	if numero, ok := e.NormNumber(meta.TipoNorma, title, text); ok {
		meta.NumeroNorma = numero
	}
	if fecha, ok := e.Date(title, text); ok {
		meta.FechaISO = fecha
	}
	if entidad, ok := e.Entity(title, text); ok {
		meta.EntidadEmisora = entidad
	}
	meta.Temas = e.Topics(title, text)

	return meta
}

// NormType identifies the norm type. A match in the title takes priority
// over a match in the body opening, because titles are curated; within each
// scope the longest configured phrase wins.
func (e *Extractor) NormType(title, text string) (string, bool) {
	inTitle := func(title, _ string) (string, bool) { return e.matchNormType(title) }
	inBody := func(_, text string) (string, bool) { return e.matchNormType(head(text, normTypeBodyWindow)) }
	return chain(inTitle, inBody)(title, text)
}

func (e *Extractor) matchNormType(scope string) (string, bool) {
	for _, rule := range e.normTypes {
		if rule.pattern.MatchString(scope) {
			return rule.phrase, true
		}
	}
	return "", false
}

var (
	numberAffix      = `(?:N[°º]?|NRO\.?|NO\.?)\s*(\d+)`
	genericNumberPat = regexp.MustCompile(`(?i)\b(?:LEY|DECRETO|RESOLUCI[OÓ]N)\s+` + numberAffix)
	dsNumberPat      = regexp.MustCompile(`(?i)\bD\.S\.\s*(?:N[°º]?|NRO\.?|NO\.?)?\s*(\d+)`)
	standaloneNumPat = regexp.MustCompile(`N[°º]\s*(\d+)`)
)

// NormNumber extracts the norm's sequential number. The chain anchors on
// the identified norm-type phrase first, then on generic type keywords,
// then on the "D.S." abbreviation, and finally falls back to the first
// standalone N° in the document's opening lines.
func (e *Extractor) NormNumber(tipoNorma, title, text string) (string, bool) {
	anchored := func(title, text string) (string, bool) {
		if tipoNorma == "" {
			return "", false
		}
		p, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(tipoNorma) + `\s+` + numberAffix)
		if err != nil {
			return "", false
		}
		return firstGroup(p, title+" "+head(text, normTypeBodyWindow))
	}
	generic := func(title, text string) (string, bool) {
		return firstGroup(genericNumberPat, title+" "+head(text, normTypeBodyWindow))
	}
	abbreviated := func(title, text string) (string, bool) {
		return firstGroup(dsNumberPat, title+" "+head(text, normTypeBodyWindow))
	}
	standalone := func(title, text string) (string, bool) {
		return firstGroup(standaloneNumPat, title+" "+headLines(text, numberLinesWindow))
	}
	return chain(anchored, generic, abbreviated, standalone)(title, text)
}

// Date finds the issuance date and normalizes it to ISO-8601. The candidate
// nearest the document opening wins; the title counts as the opening line.
func (e *Extractor) Date(title, text string) (string, bool) {
	return e.dates.scan(title + "\n" + text)
}

// Entity identifies the issuing body from the configured rule list; the
// first rule to match wins.
func (e *Extractor) Entity(title, text string) (string, bool) {
	scope := title + " " + head(text, entityBodyWindow)
	for _, rule := range e.entities {
		m := rule.pattern.FindString(scope)
		if m == "" {
			continue
		}
		if rule.useMatch {
			return strings.ToUpper(collapseSpace(m)), true
		}
		return rule.name, true
	}
	return "", false
}

// Topics scans title and body opening for configured topic keywords and
// returns the matched topic tags, deduplicated, in configured rule order.
func (e *Extractor) Topics(title, text string) []string {
	scope := strings.ToLower(title + " " + head(text, topicBodyWindow))
	var temas []string
	for _, rule := range e.cfg.Topics {
		for _, kw := range rule.Keywords {
			if strings.Contains(scope, kw) {
				temas = append(temas, rule.Name)
				break
			}
		}
	}
	return temas
}

func firstGroup(p *regexp.Regexp, scope string) (string, bool) {
	m := p.FindStringSubmatch(scope)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// head returns the first n runes of s without splitting a rune.
func head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// headLines returns the first n lines of s.
func headLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
