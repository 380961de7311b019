// Package config holds the data-driven configuration consumed by the
// structuring engine: recognized norm-type phrases, issuing entities, topic
// keywords, the Spanish month table, and the OCR-fallback threshold. All of
// it is data, not code — the engine receives a Config value at construction
// time and never reaches for process-wide state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EntityRule matches one known issuing body. When UseMatch is set the
// matched text itself becomes the entity name (used for the generic
// ministry rule, which captures the full ministry name).
type EntityRule struct {
	Name     string `yaml:"name" json:"name"`
	Pattern  string `yaml:"pattern" json:"pattern"`
	UseMatch bool   `yaml:"use_match,omitempty" json:"use_match,omitempty"`
}

// TopicRule maps a topic tag to the keywords that imply it.
type TopicRule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Config is the full configuration surface of the engine.
type Config struct {
	// NormTypes is consulted in order; longer phrases must precede their
	// substrings so that "DECRETO SUPREMO" wins over "DECRETO".
	NormTypes []string `yaml:"norm_types" json:"norm_types"`

	// Entities is consulted in order; first match wins.
	Entities []EntityRule `yaml:"entities" json:"entities"`

	// Topics are collected as a set; rule order fixes output order.
	Topics []TopicRule `yaml:"topics" json:"topics"`

	// Months maps lowercase Spanish month names to two-digit numbers.
	Months map[string]string `yaml:"months" json:"months"`

	// MinTextLength is the quality-gate threshold in runes. Texts shorter
	// than this are treated as extraction failures, not short laws.
	MinTextLength int `yaml:"min_text_length" json:"min_text_length"`

	// SummaryMaxLength bounds the resumen field, in runes.
	SummaryMaxLength int `yaml:"summary_max_length" json:"summary_max_length"`
}

// Default returns the documented baseline configuration for the Gaceta
// Oficial de Bolivia. Callers needing deterministic tests should inject
// their own Config instead of mutating this one.
func Default() Config {
	return Config{
		NormTypes: []string{
			"DECRETO SUPREMO",
			"DECRETO LEY",
			"LEY MUNICIPAL",
			"RESOLUCIÓN SUPREMA",
			"RESOLUCIÓN MINISTERIAL",
			"RESOLUCIÓN BI-MINISTERIAL",
			"RESOLUCIÓN ADMINISTRATIVA",
			"AUTO SUPREMO",
			"SENTENCIA CONSTITUCIONAL",
			"ORDENANZA MUNICIPAL",
			"LEY",
		},
		Entities: []EntityRule{
			{Name: "ASAMBLEA LEGISLATIVA", Pattern: `\bASAMBLEA\s+LEGISLATIVA\b`},
			{Name: "CONGRESO", Pattern: `\bCONGRESO\b`},
			{Name: "MINISTERIO DE ECONOMÍA", Pattern: `\bMINISTERIO\s+DE\s+ECONOM[IÍ]A\b`},
			{Name: "MINISTERIO DE SALUD", Pattern: `\bMINISTERIO\s+DE\s+SALUD\b`},
			{Name: "MINISTERIO DE EDUCACIÓN", Pattern: `\bMINISTERIO\s+DE\s+EDUCACI[OÓ]N\b`},
			{Name: "MINISTERIO DE JUSTICIA", Pattern: `\bMINISTERIO\s+DE\s+JUSTICIA\b`},
			{Name: "MINISTERIO DE TRABAJO", Pattern: `\bMINISTERIO\s+DE\s+TRABAJO\b`},
			{Name: "MINISTERIO", Pattern: `\bMINISTERIO\s+DE\s+[A-ZÁÉÍÓÚÑ]+(?:\s+[A-ZÁÉÍÓÚÑ]+)*`, UseMatch: true},
			{Name: "TRIBUNAL CONSTITUCIONAL", Pattern: `\bTRIBUNAL\s+CONSTITUCIONAL\b`},
			{Name: "CORTE SUPREMA", Pattern: `\bCORTE\s+SUPREMA\b`},
			{Name: "PRESIDENCIA", Pattern: `\bPRESIDEN(?:CIA|TE)\b`},
		},
		Topics: []TopicRule{
			{Name: "EDUCACIÓN", Keywords: []string{"educación", "educativo", "escuela", "universidad", "estudiante", "maestro"}},
			{Name: "SALUD", Keywords: []string{"salud", "medicina", "hospital", "médico", "sanitario", "enfermedad"}},
			{Name: "ECONOMÍA", Keywords: []string{"económico", "economía", "comercio", "impuesto", "tributario", "financiero"}},
			{Name: "MEDIO AMBIENTE", Keywords: []string{"medio ambiente", "ambiental", "ecológico", "contaminación", "recursos naturales"}},
			{Name: "JUSTICIA", Keywords: []string{"justicia", "judicial", "penal", "delito", "tribunal", "sentencia"}},
			{Name: "TRABAJO", Keywords: []string{"laboral", "trabajo", "empleado", "sindicato", "salario"}},
			{Name: "MINERÍA", Keywords: []string{"minería", "minero", "explotación minera", "cooperativa minera"}},
			{Name: "HIDROCARBUROS", Keywords: []string{"hidrocarburos", "petróleo", "gas", "ypfb"}},
			{Name: "DEFENSA", Keywords: []string{"defensa", "militar", "fuerzas armadas"}},
			{Name: "SEGURIDAD", Keywords: []string{"seguridad", "policía", "orden público"}},
			{Name: "AGRICULTURA", Keywords: []string{"agricultura", "agrícola", "agropecuario", "rural", "campesino"}},
			{Name: "VIVIENDA", Keywords: []string{"vivienda", "construcción", "urbanismo"}},
			{Name: "TRANSPORTE", Keywords: []string{"transporte", "vial", "tránsito", "carretera"}},
			{Name: "TELECOMUNICACIONES", Keywords: []string{"telecomunicaciones", "comunicación", "internet", "telefonía"}},
			{Name: "TURISMO", Keywords: []string{"turismo", "turístico", "patrimonio"}},
		},
		Months: map[string]string{
			"enero": "01", "febrero": "02", "marzo": "03", "abril": "04",
			"mayo": "05", "junio": "06", "julio": "07", "agosto": "08",
			"septiembre": "09", "octubre": "10", "noviembre": "11", "diciembre": "12",
		},
		MinTextLength:    50,
		SummaryMaxLength: 300,
	}
}

// Load reads a YAML configuration file over the baseline defaults: fields
// present in the file replace the default value wholesale, fields absent
// keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, for `gaceta config init`.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the invariants the engine relies on.
func (c Config) Validate() error {
	if len(c.NormTypes) == 0 {
		return fmt.Errorf("config: at least one norm type is required")
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("config: min_text_length cannot be negative")
	}
	if c.SummaryMaxLength <= 0 {
		return fmt.Errorf("config: summary_max_length must be positive")
	}
	for i, e := range c.Entities {
		if e.Pattern == "" {
			return fmt.Errorf("config: entity %d (%q) has no pattern", i, e.Name)
		}
	}
	return nil
}
