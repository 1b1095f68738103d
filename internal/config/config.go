package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"phenio-toolkit/internal/assemble"
	"phenio-toolkit/internal/clique"
	"phenio-toolkit/internal/curie"
	"phenio-toolkit/internal/lexical"
	"phenio-toolkit/internal/mapping"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default output file names.
const (
	DefaultSSSOMFile       = "upheno_custom_mapping.sssom.tsv"
	DefaultLexicalFile     = "mapping_lexical.csv"
	DefaultTemplateFile    = "upheno_lexical_mapping.robot.template.tsv"
	DefaultProblematicFile = "mapping_problematic.csv"
	DefaultLicense         = "https://w3id.org/sssom/license/unspecified"
	DefaultLogLevel        = "warn"
)

// Config is the full run configuration.
type Config struct {
	StopPhrases       []string       `yaml:"stop_phrases,omitempty"`
	LexicalPredicates []string       `yaml:"lexical_predicates,omitempty"`
	PairStrategy      string         `yaml:"pair_strategy,omitempty"`
	Closure           string         `yaml:"closure,omitempty"`
	Match             string         `yaml:"match,omitempty"`
	PrefixMap         string         `yaml:"prefix_map,omitempty"`
	CustomPrefixes    []curie.Record `yaml:"custom_prefixes,omitempty"`
	Output            Output         `yaml:"output"`
	SSSOM             SSSOM          `yaml:"sssom"`
	Database          string         `yaml:"database,omitempty"`
	MetricsFile       string         `yaml:"metrics_file,omitempty"`
	LogLevel          string         `yaml:"log_level,omitempty"`
}

// Output names the output directory and files.
type Output struct {
	Dir         string `yaml:"dir,omitempty"`
	SSSOM       string `yaml:"sssom,omitempty"`
	Lexical     string `yaml:"lexical,omitempty"`
	Template    string `yaml:"template,omitempty"`
	Problematic string `yaml:"problematic,omitempty"`
}

// SSSOM controls the mapping set metadata header.
type SSSOM struct {
	// Metadata enables the "#" YAML header; nil means enabled.
	Metadata *bool  `yaml:"metadata,omitempty"`
	License  string `yaml:"license,omitempty"`
}

// MetadataEnabled reports whether the SSSOM metadata header is written.
func (s SSSOM) MetadataEnabled() bool {
	return s.Metadata == nil || *s.Metadata
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if len(cfg.StopPhrases) == 0 {
		cfg.StopPhrases = lexical.DefaultStopPhrases()
	}

	if len(cfg.LexicalPredicates) == 0 {
		cfg.LexicalPredicates = []string{mapping.RDFSLabel}
	}

	if cfg.PairStrategy == "" {
		cfg.PairStrategy = clique.PairWindowed.String()
	}

	if cfg.Closure == "" {
		cfg.Closure = clique.ClosureOneHop.String()
	}

	if cfg.Match == "" {
		cfg.Match = clique.MatchSharedReferent.String()
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	if cfg.Output.SSSOM == "" {
		cfg.Output.SSSOM = DefaultSSSOMFile
	}

	if cfg.Output.Lexical == "" {
		cfg.Output.Lexical = DefaultLexicalFile
	}

	if cfg.Output.Template == "" {
		cfg.Output.Template = DefaultTemplateFile
	}

	if cfg.Output.Problematic == "" {
		cfg.Output.Problematic = DefaultProblematicFile
	}

	if cfg.SSSOM.License == "" {
		cfg.SSSOM.License = DefaultLicense
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration and returns every problem found, each
// wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	for i, phrase := range c.StopPhrases {
		if strings.TrimSpace(phrase) == "" {
			invalid("stop_phrases[%d] is empty", i)
		}
	}

	if _, err := clique.ParsePairStrategy(c.PairStrategy); err != nil {
		invalid("pair_strategy: %v", err)
	}

	if _, err := clique.ParseClosure(c.Closure); err != nil {
		invalid("closure: %v", err)
	}

	if _, err := clique.ParseMatchMode(c.Match); err != nil {
		invalid("match: %v", err)
	}

	for i, rec := range c.CustomPrefixes {
		if rec.Prefix == "" || rec.URIPrefix == "" {
			invalid("custom_prefixes[%d] needs both prefix and uri_prefix", i)
		}
	}

	if _, err := c.SlogLevel(); err != nil {
		invalid("log_level: %v", err)
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return level, nil
}

// AssembleConfig converts the configuration into the core run settings.
func (c *Config) AssembleConfig() (assemble.Config, error) {
	strategy, err := clique.ParsePairStrategy(c.PairStrategy)
	if err != nil {
		return assemble.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	closure, err := clique.ParseClosure(c.Closure)
	if err != nil {
		return assemble.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	match, err := clique.ParseMatchMode(c.Match)
	if err != nil {
		return assemble.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	ac := assemble.DefaultConfig()
	ac.StopPhrases = append([]string(nil), c.StopPhrases...)
	ac.LexicalPredicates = append([]string(nil), c.LexicalPredicates...)
	ac.Clique = clique.Config{Strategy: strategy, Closure: closure, Match: match}

	return ac, nil
}

// Converter builds the identifier converter: the prefix map file when set,
// the embedded OBO map otherwise, extended with the custom prefixes and MGPO.
func (c *Config) Converter() (*curie.PrefixMap, error) {
	if c.PrefixMap == "" {
		return curie.Default(c.CustomPrefixes...)
	}

	base, err := curie.LoadFile(c.PrefixMap)
	if err != nil {
		return nil, err
	}

	return curie.Extend(base, c.CustomPrefixes...)
}
