package curie

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed obo_prefixes.yaml
var oboPrefixesYAML []byte

// MGPORecord is the prefix record chained after every other map.
var MGPORecord = Record{
	Prefix:    "MGPO",
	URIPrefix: "http://purl.obolibrary.org/obo/MGPO_",
}

// prefixFile is the YAML shape of a prefix map file.
type prefixFile struct {
	Records []Record `yaml:"records"`
}

// ParseRecords parses a YAML prefix map document.
func ParseRecords(data []byte) ([]Record, error) {
	var pf prefixFile

	err := yaml.Unmarshal(data, &pf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prefix map YAML: %w", err)
	}

	return pf.Records, nil
}

// LoadFile loads a prefix map from a YAML file.
func LoadFile(path string) (*PrefixMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prefix map %s: %w", path, err)
	}

	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}

	return NewPrefixMap(records)
}

// OBO returns the embedded OBO Foundry prefix map.
func OBO() (*PrefixMap, error) {
	records, err := ParseRecords(oboPrefixesYAML)
	if err != nil {
		return nil, err
	}

	return NewPrefixMap(records)
}

// Default returns the OBO prefix map extended with the given custom records.
func Default(custom ...Record) (*PrefixMap, error) {
	obo, err := OBO()
	if err != nil {
		return nil, fmt.Errorf("loading OBO prefix map: %w", err)
	}

	return Extend(obo, custom...)
}

// Extend chains base with the custom records and then MGPORecord. Earlier
// maps win, so a custom MGPO record replaces the built-in one.
func Extend(base *PrefixMap, custom ...Record) (*PrefixMap, error) {
	extra, err := NewPrefixMap(custom)
	if err != nil {
		return nil, fmt.Errorf("loading custom prefixes: %w", err)
	}

	mgpo, err := NewPrefixMap([]Record{MGPORecord})
	if err != nil {
		return nil, err
	}

	return Chain(base, extra, mgpo)
}
