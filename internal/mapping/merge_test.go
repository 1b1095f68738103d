package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phenio-toolkit/internal/diagnostic"
)

const (
	mp1 = OBOPrefix + "MP_0000001"
	mp2 = OBOPrefix + "MP_0000002"
	hp1 = OBOPrefix + "HP_0000001"
	zp1 = OBOPrefix + "ZP_0000001"
	up1 = MergedClassPrefix + "0000001"
)

func testLabels(t *testing.T, diags *diagnostic.Diagnostics) *LabelIndex {
	t.Helper()

	return NewLabelIndex([]LabelRecord{
		{IRI: mp1, Predicate: RDFSLabelIRI, Label: "abnormal heart"},
		{IRI: mp1, Predicate: RDFSLabel, Label: "heart anomaly"},
		{IRI: mp2, Predicate: RDFSLabel, Label: "heart abnormality"},
		{IRI: hp1, Predicate: RDFSLabel, Label: "Abnormal heart morphology"},
		{IRI: hp1, Predicate: ExactSynonymIRI, Label: "cardiac anomaly"},
		{IRI: up1, Predicate: RDFSLabel, Label: "abnormal heart"},
	}, diags, MergedClassPrefix)
}

func TestLabelIndex(t *testing.T) {
	var diags diagnostic.Diagnostics

	idx := testLabels(t, &diags)

	assert.Equal(t, 3, idx.Len())

	label, ok := idx.Label(mp1)
	assert.True(t, ok)
	assert.Equal(t, "abnormal heart", label, "first label wins")

	_, ok = idx.Label(up1)
	assert.False(t, ok, "merged-class terms carry no label")

	label, _ = idx.Label(hp1)
	assert.Equal(t, "Abnormal heart morphology", label, "synonyms are not labels")

	assert.Equal(t, 1, diags.Counts()[diagnostic.CodeMultipleLabels])
}

func TestOntologyTag(t *testing.T) {
	tests := map[string]string{
		OBOPrefix + "MP_0001262":           "MP",
		OBOPrefix + "WBPhenotype_0000001":  "WBPhenotype",
		OBOPrefix + "NCBITaxon_10090":      "NCBITaxon",
		"http://example.org/thing":         "http://example.org/thing",
		OBOPrefix + "FOO_12_34":            "FOO",
		"http://www.ebi.ac.uk/efo/EFO_0001": "http://www.ebi.ac.uk/efo/EFO",
	}

	for iri, expected := range tests {
		assert.Equal(t, expected, OntologyTag(iri), iri)
	}
}

func TestJoinAndPartition(t *testing.T) {
	var diags diagnostic.Diagnostics

	labels := testLabels(t, nil)
	pairs := []MappingPair{
		{Subject: mp1, Object: hp1, Category: CategoryLexical},
		{Subject: hp1, Object: mp1, Category: CategoryLexical},
		{Subject: mp1, Object: mp2, Category: CategoryLexical},
		{Subject: mp2, Object: mp1, Category: CategoryLexical},
		{Subject: zp1, Object: hp1, Category: CategoryLexical},
	}

	rows := JoinLexical(pairs, labels)
	require.Len(t, rows, 5)

	assert.Equal(t, LexicalRow{
		Subject:         mp1,
		Object:          hp1,
		Category:        CategoryLexical,
		SubjectIRI:      mp1,
		SubjectLabel:    "abnormal heart",
		ObjectIRI:       hp1,
		ObjectLabel:     "Abnormal heart morphology",
		SubjectOntology: "MP",
		ObjectOntology:  "HP",
	}, rows[0])
	assert.Empty(t, rows[4].SubjectIRI, "unlabelled terms have no joined IRI")
	assert.Empty(t, rows[4].SubjectLabel)

	cross, problematic := Partition(rows, &diags)

	assert.Len(t, cross, 3)
	require.Len(t, problematic, 2)
	assert.Equal(t, mp2, problematic[0].Object)
	assert.Equal(t, 2, diags.Counts()[diagnostic.CodeProblematicPair])
}

func TestMergeCategories(t *testing.T) {
	var diags diagnostic.Diagnostics

	labels := testLabels(t, nil)

	lexical := JoinLexical([]MappingPair{
		{Subject: mp1, Object: hp1, Category: CategoryLexical},
		{Subject: hp1, Object: mp1, Category: CategoryLexical},
		{Subject: zp1, Object: hp1, Category: CategoryLexical},
	}, labels)

	logical := []MappingPair{
		{Subject: mp1, Object: hp1, Category: CategoryLogical},
		{Subject: hp1, Object: mp1, Category: CategoryLogical},
		{Subject: mp2, Object: zp1, Category: CategoryLogical},
		{Subject: mp2, Object: mp2, Category: CategoryLogical},
	}

	merged := Merge(lexical, logical, labels, &diags)

	assert.Equal(t, []MergedPair{
		{Subject: hp1, Object: mp1, SubjectLabel: "Abnormal heart morphology", ObjectLabel: "abnormal heart", Category: CategoryLexicalLogical},
		{Subject: mp1, Object: hp1, SubjectLabel: "abnormal heart", ObjectLabel: "Abnormal heart morphology", Category: CategoryLexicalLogical},
		{Subject: mp2, Object: zp1, SubjectLabel: "heart abnormality", Category: CategoryLogical},
		{Subject: zp1, Object: hp1, ObjectLabel: "Abnormal heart morphology", Category: CategoryLexical},
	}, merged)
	assert.Equal(t, 1, diags.Counts()[diagnostic.CodeLogicalSelfPair])
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil, NewLabelIndex(nil, nil), nil))
}
