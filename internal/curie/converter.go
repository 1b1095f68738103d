package curie

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Converter is the capability the mapping pipeline needs from an identifier
// resolution service.
type Converter interface {
	// Compress turns a full IRI into a CURIE. ok is false when no prefix
	// matches.
	Compress(iri string) (curie string, ok bool)
	// Standardize rewrites a CURIE to its canonical prefix. ok is false when
	// the prefix is unknown.
	Standardize(curie string) (standard string, ok bool)
}

// Record maps one CURIE prefix to one URI prefix, with optional synonyms.
type Record struct {
	Prefix            string   `yaml:"prefix"`
	URIPrefix         string   `yaml:"uri_prefix"`
	PrefixSynonyms    []string `yaml:"prefix_synonyms,omitempty"`
	URIPrefixSynonyms []string `yaml:"uri_prefix_synonyms,omitempty"`
}

// ErrDuplicatePrefix is returned when two records claim the same prefix or
// URI prefix.
var ErrDuplicatePrefix = errors.New("duplicate prefix")

// uriEntry is one URI prefix (canonical or synonym) pointing at a record.
type uriEntry struct {
	uriPrefix string
	record    int
}

// PrefixMap is a Converter backed by a list of Records.
type PrefixMap struct {
	records  []Record
	byPrefix map[string]int
	byURI    []uriEntry // longest URI prefix first
}

// NewPrefixMap validates records and builds the lookup tables.
func NewPrefixMap(records []Record) (*PrefixMap, error) {
	m := &PrefixMap{
		records:  make([]Record, 0, len(records)),
		byPrefix: make(map[string]int),
	}

	seenURI := make(map[string]struct{})

	for _, rec := range records {
		if rec.Prefix == "" || rec.URIPrefix == "" {
			return nil, fmt.Errorf("record %+v: prefix and uri_prefix are required", rec)
		}

		idx := len(m.records)

		for _, p := range append([]string{rec.Prefix}, rec.PrefixSynonyms...) {
			if _, ok := m.byPrefix[p]; ok {
				return nil, fmt.Errorf("%w: %q", ErrDuplicatePrefix, p)
			}

			m.byPrefix[p] = idx
		}

		for _, u := range append([]string{rec.URIPrefix}, rec.URIPrefixSynonyms...) {
			if _, ok := seenURI[u]; ok {
				return nil, fmt.Errorf("%w: uri prefix %q", ErrDuplicatePrefix, u)
			}

			seenURI[u] = struct{}{}
			m.byURI = append(m.byURI, uriEntry{uriPrefix: u, record: idx})
		}

		m.records = append(m.records, rec)
	}

	sort.SliceStable(m.byURI, func(i, j int) bool {
		return len(m.byURI[i].uriPrefix) > len(m.byURI[j].uriPrefix)
	})

	return m, nil
}

// Compress implements Converter.
func (m *PrefixMap) Compress(iri string) (string, bool) {
	for _, e := range m.byURI {
		if !strings.HasPrefix(iri, e.uriPrefix) {
			continue
		}

		local := iri[len(e.uriPrefix):]
		if local == "" {
			continue
		}

		return m.records[e.record].Prefix + ":" + local, true
	}

	return "", false
}

// Standardize implements Converter.
func (m *PrefixMap) Standardize(curie string) (string, bool) {
	prefix, local, found := strings.Cut(curie, ":")
	if !found || prefix == "" || local == "" {
		return "", false
	}

	idx, ok := m.byPrefix[prefix]
	if !ok {
		return "", false
	}

	return m.records[idx].Prefix + ":" + local, true
}

// Expand turns a CURIE back into a full IRI.
func (m *PrefixMap) Expand(curie string) (string, bool) {
	prefix, local, found := strings.Cut(curie, ":")
	if !found {
		return "", false
	}

	idx, ok := m.byPrefix[prefix]
	if !ok {
		return "", false
	}

	return m.records[idx].URIPrefix + local, true
}

// URIPrefix returns the canonical URI prefix registered for a prefix.
func (m *PrefixMap) URIPrefix(prefix string) (string, bool) {
	idx, ok := m.byPrefix[prefix]
	if !ok {
		return "", false
	}

	return m.records[idx].URIPrefix, true
}

// Len returns the number of records.
func (m *PrefixMap) Len() int {
	return len(m.records)
}

// Chain merges prefix maps into one. When records from different maps share
// a prefix or URI prefix, the earlier map wins; the later record keeps only
// its non-conflicting synonyms, or is skipped when its canonical prefix or
// URI prefix is taken.
func Chain(maps ...*PrefixMap) (*PrefixMap, error) {
	var merged []Record

	takenPrefix := make(map[string]struct{})
	takenURI := make(map[string]struct{})

	for _, pm := range maps {
		if pm == nil {
			continue
		}

		for _, rec := range pm.records {
			if _, ok := takenPrefix[rec.Prefix]; ok {
				continue
			}

			if _, ok := takenURI[rec.URIPrefix]; ok {
				continue
			}

			out := Record{Prefix: rec.Prefix, URIPrefix: rec.URIPrefix}

			for _, s := range rec.PrefixSynonyms {
				if _, ok := takenPrefix[s]; !ok && s != rec.Prefix {
					out.PrefixSynonyms = append(out.PrefixSynonyms, s)
				}
			}

			for _, s := range rec.URIPrefixSynonyms {
				if _, ok := takenURI[s]; !ok && s != rec.URIPrefix {
					out.URIPrefixSynonyms = append(out.URIPrefixSynonyms, s)
				}
			}

			for _, p := range append([]string{out.Prefix}, out.PrefixSynonyms...) {
				takenPrefix[p] = struct{}{}
			}

			for _, u := range append([]string{out.URIPrefix}, out.URIPrefixSynonyms...) {
				takenURI[u] = struct{}{}
			}

			merged = append(merged, out)
		}
	}

	return NewPrefixMap(merged)
}

// CompressOrStandardize compresses an IRI, or standardizes it when it is
// already a CURIE. When neither applies the input is returned unchanged with
// ok false; callers treat that as a soft failure.
func CompressOrStandardize(c Converter, s string) (string, bool) {
	if v, ok := c.Compress(s); ok {
		return v, true
	}

	if v, ok := c.Standardize(s); ok {
		return v, true
	}

	return s, false
}

// PrefixOf returns the prefix segment of a CURIE-like string: everything
// before the first colon, or the whole string when there is none.
func PrefixOf(s string) string {
	prefix, _, _ := strings.Cut(s, ":")
	return prefix
}
