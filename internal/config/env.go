package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PHENIO_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from a .env file into the process
// environment without overriding variables already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to load %s: %w", path, err)
}

// ApplyEnv overrides fields from PHENIO_* variables. List values are comma
// separated.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	list := func(name string, dst *[]string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = splitList(v)
		}
	}

	list("STOP_PHRASES", &c.StopPhrases)
	list("LEXICAL_PREDICATES", &c.LexicalPredicates)
	str("PAIR_STRATEGY", &c.PairStrategy)
	str("CLOSURE", &c.Closure)
	str("MATCH", &c.Match)
	str("PREFIX_MAP", &c.PrefixMap)
	str("OUTPUT_DIR", &c.Output.Dir)
	str("SSSOM_LICENSE", &c.SSSOM.License)
	str("DB", &c.Database)
	str("METRICS_FILE", &c.MetricsFile)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup(EnvPrefix + "SSSOM_METADATA"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sSSSOM_METADATA: %w", ErrInvalidConfig, EnvPrefix, err)
		}

		c.SSSOM.Metadata = &enabled
	}

	return nil
}

func splitList(v string) []string {
	var out []string

	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
