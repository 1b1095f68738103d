package mapping

import (
	"fmt"
	"sort"
	"strings"

	"phenio-toolkit/internal/curie"
	"phenio-toolkit/internal/diagnostic"
)

// SourceTag derives the SSSOM source of a compacted identifier:
// "obo:" followed by its lowercased prefix segment.
func SourceTag(id string) string {
	return "obo:" + strings.ToLower(curie.PrefixOf(id))
}

// Finalizer turns merged pairs into display-ready SSSOM records.
type Finalizer struct {
	converter curie.Converter
	diags     *diagnostic.Diagnostics
	// compacted caches IRI → identifier; fallbacks are reported once.
	compacted map[string]string
}

// NewFinalizer creates a Finalizer using the given identifier converter.
// diags may be nil.
func NewFinalizer(converter curie.Converter, diags *diagnostic.Diagnostics) *Finalizer {
	return &Finalizer{
		converter: converter,
		diags:     diags,
		compacted: make(map[string]string),
	}
}

// Compact returns the compact identifier of an IRI, or the IRI itself when
// no prefix matches.
func (f *Finalizer) Compact(iri string) string {
	if id, ok := f.compacted[iri]; ok {
		return id
	}

	id, ok := curie.CompressOrStandardize(f.converter, iri)
	if !ok && f.diags != nil {
		f.diags.AddWarning(diagnostic.CodeCompactionFallback,
			"no prefix matched, keeping the full IRI", iri, "")
	}

	f.compacted[iri] = id

	return id
}

// Finalize builds one record per merged pair. An unexpected category aborts
// with an error wrapping ErrUnexpectedCategory. Records are sorted by
// subject_id, object_id.
func (f *Finalizer) Finalize(merged []MergedPair) ([]FinalMappingRecord, error) {
	records := make([]FinalMappingRecord, 0, len(merged))

	for _, mp := range merged {
		justification, err := Justification(mp.Category)
		if err != nil {
			return nil, fmt.Errorf("pair %s -> %s: %w", mp.Subject, mp.Object, err)
		}

		subjectID := f.Compact(mp.Subject)
		objectID := f.Compact(mp.Object)

		records = append(records, FinalMappingRecord{
			SubjectID:            subjectID,
			SubjectLabel:         mp.SubjectLabel,
			SubjectSource:        SourceTag(subjectID),
			SubjectCategory:      CategoryPhenotypicFeature,
			PredicateID:          PredicateCrossSpeciesExactMatch,
			ObjectID:             objectID,
			ObjectLabel:          mp.ObjectLabel,
			ObjectSource:         SourceTag(objectID),
			ObjectCategory:       CategoryPhenotypicFeature,
			MappingJustification: justification,
			Category:             mp.Category,
		})
	}

	SortRecords(records)

	return records, nil
}

// SortRecords orders records by subject_id, then object_id.
func SortRecords(records []FinalMappingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SubjectID != records[j].SubjectID {
			return records[i].SubjectID < records[j].SubjectID
		}

		return records[i].ObjectID < records[j].ObjectID
	})
}
