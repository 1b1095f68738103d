package mapping

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"phenio-toolkit/internal/diagnostic"
)

// LabelIndex resolves term IRIs to their display label.
type LabelIndex struct {
	labels map[string]string
}

// NewLabelIndex indexes the rdfs:label rows of records. IRIs starting with
// one of excludePrefixes get no label. When a term has several labels the
// first one in input order is kept and a diagnostic is recorded.
func NewLabelIndex(
	records []LabelRecord,
	diags *diagnostic.Diagnostics,
	excludePrefixes ...string,
) *LabelIndex {
	idx := &LabelIndex{labels: make(map[string]string)}

	reported := make(map[string]bool)

	for _, rec := range records {
		if !IsLabelPredicate(rec.Predicate) || hasAnyPrefix(rec.IRI, excludePrefixes) {
			continue
		}

		existing, ok := idx.labels[rec.IRI]
		if !ok {
			idx.labels[rec.IRI] = rec.Label
			continue
		}

		if existing != rec.Label && !reported[rec.IRI] && diags != nil {
			reported[rec.IRI] = true
			diags.AddWarning(diagnostic.CodeMultipleLabels,
				fmt.Sprintf("term has more than one rdfs:label, keeping %q", existing), rec.IRI, "")
		}
	}

	return idx
}

// Label returns the display label of an IRI.
func (l *LabelIndex) Label(iri string) (string, bool) {
	v, ok := l.labels[iri]
	return v, ok
}

// Len returns the number of labelled terms.
func (l *LabelIndex) Len() int {
	return len(l.labels)
}

var localIDPattern = regexp.MustCompile(`_\d+`)

// OntologyTag returns the ontology a term belongs to, derived from its IRI:
// the OBO namespace is stripped and numeric local-identifier suffixes are
// removed, so ".../obo/MP_0001262" becomes "MP".
func OntologyTag(iri string) string {
	return localIDPattern.ReplaceAllString(strings.ReplaceAll(iri, OBOPrefix, ""), "")
}

// JoinLexical attaches labels and ontology tags to lexical pairs.
func JoinLexical(pairs []MappingPair, labels *LabelIndex) []LexicalRow {
	rows := make([]LexicalRow, 0, len(pairs))

	for _, p := range pairs {
		row := LexicalRow{
			Subject:         p.Subject,
			Object:          p.Object,
			Category:        p.Category,
			SubjectOntology: OntologyTag(p.Subject),
			ObjectOntology:  OntologyTag(p.Object),
		}

		if label, ok := labels.Label(p.Subject); ok {
			row.SubjectIRI = p.Subject
			row.SubjectLabel = label
		}

		if label, ok := labels.Label(p.Object); ok {
			row.ObjectIRI = p.Object
			row.ObjectLabel = label
		}

		rows = append(rows, row)
	}

	return rows
}

// Partition splits joined lexical rows into cross-ontology candidates and
// same-ontology ("problematic") rows. Same-ontology matches usually mean two
// terms of one ontology collapsed onto the same normalized label.
func Partition(rows []LexicalRow, diags *diagnostic.Diagnostics) (cross, problematic []LexicalRow) {
	for _, row := range rows {
		if row.SameOntology() {
			problematic = append(problematic, row)

			if diags != nil {
				diags.AddWarning(diagnostic.CodeProblematicPair,
					"lexical match within ontology "+row.SubjectOntology, row.Subject, row.Object)
			}

			continue
		}

		cross = append(cross, row)
	}

	return cross, problematic
}

// Merge outer-joins the cross-ontology lexical rows with the logical pairs
// on (subject, object) and attaches display labels. The category of each
// result is the ordered combination of the sources that produced the pair.
// Logical self pairs are dropped. The result is sorted by subject, object.
func Merge(
	lexical []LexicalRow,
	logical []MappingPair,
	labels *LabelIndex,
	diags *diagnostic.Diagnostics,
) []MergedPair {
	type provenance struct {
		lexical bool
		logical bool
	}

	found := make(map[Pair]*provenance)

	get := func(p Pair) *provenance {
		if pv, ok := found[p]; ok {
			return pv
		}

		pv := &provenance{}
		found[p] = pv

		return pv
	}

	for _, row := range lexical {
		get(Pair{Subject: row.Subject, Object: row.Object}).lexical = true
	}

	for _, lp := range logical {
		key := lp.Key()
		if key.IsSelf() {
			if diags != nil {
				diags.AddWarning(diagnostic.CodeLogicalSelfPair,
					"logical mapping of a term onto itself dropped", key.Subject, key.Object)
			}

			continue
		}

		get(key).logical = true
	}

	keys := make([]Pair, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Subject != keys[j].Subject {
			return keys[i].Subject < keys[j].Subject
		}

		return keys[i].Object < keys[j].Object
	})

	merged := make([]MergedPair, 0, len(keys))

	for _, k := range keys {
		pv := found[k]

		var lexTag, logTag Category
		if pv.lexical {
			lexTag = CategoryLexical
		}

		if pv.logical {
			logTag = CategoryLogical
		}

		mp := MergedPair{
			Subject:  k.Subject,
			Object:   k.Object,
			Category: CombineCategories(lexTag, logTag),
		}
		mp.SubjectLabel, _ = labels.Label(k.Subject)
		mp.ObjectLabel, _ = labels.Label(k.Object)

		merged = append(merged, mp)
	}

	return merged
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
