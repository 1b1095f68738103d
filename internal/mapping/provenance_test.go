package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phenio-toolkit/internal/curie"
	"phenio-toolkit/internal/diagnostic"
)

// stubConverter compresses only the IRIs it was given.
type stubConverter map[string]string

func (s stubConverter) Compress(iri string) (string, bool) {
	v, ok := s[iri]
	return v, ok
}

func (s stubConverter) Standardize(string) (string, bool) {
	return "", false
}

func TestSourceTag(t *testing.T) {
	assert.Equal(t, "obo:mp", SourceTag("MP:0000001"))
	assert.Equal(t, "obo:wbphenotype", SourceTag("WBPhenotype:0000001"))
	assert.Equal(t, "obo:http", SourceTag("http://example.org/x"))
}

func TestFinalize(t *testing.T) {
	var diags diagnostic.Diagnostics

	conv := stubConverter{mp1: "MP:0000001", hp1: "HP:0000001"}
	f := NewFinalizer(conv, &diags)

	records, err := f.Finalize([]MergedPair{
		{Subject: mp1, Object: hp1, SubjectLabel: "a", ObjectLabel: "b", Category: CategoryLexicalLogical},
		{Subject: hp1, Object: mp1, SubjectLabel: "b", ObjectLabel: "a", Category: CategoryLogical},
		{Subject: hp1, Object: zp1, SubjectLabel: "b", Category: CategoryLexical},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, FinalMappingRecord{
		SubjectID:            "HP:0000001",
		SubjectLabel:         "b",
		SubjectSource:        "obo:hp",
		SubjectCategory:      CategoryPhenotypicFeature,
		PredicateID:          PredicateCrossSpeciesExactMatch,
		ObjectID:             "MP:0000001",
		ObjectLabel:          "a",
		ObjectSource:         "obo:mp",
		ObjectCategory:       CategoryPhenotypicFeature,
		MappingJustification: JustificationLogical,
		Category:             CategoryLogical,
	}, records[0])

	assert.Equal(t, zp1, records[1].ObjectID, "unmatched IRIs pass through")
	assert.Equal(t, "obo:http", records[1].ObjectSource)
	assert.Equal(t, JustificationLexical, records[1].MappingJustification)

	assert.Equal(t, "MP:0000001", records[2].SubjectID)
	assert.Equal(t, JustificationLexicalLogical, records[2].MappingJustification)

	assert.Equal(t, 1, diags.Counts()[diagnostic.CodeCompactionFallback], "fallbacks are reported once per IRI")
}

func TestFinalizeUnexpectedCategory(t *testing.T) {
	f := NewFinalizer(stubConverter{}, nil)

	_, err := f.Finalize([]MergedPair{{Subject: mp1, Object: hp1, Category: "logical-lexical"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedCategory)
}

func TestFinalizeWithDefaultConverter(t *testing.T) {
	conv, err := curie.Default()
	require.NoError(t, err)

	records, err := NewFinalizer(conv, nil).Finalize([]MergedPair{
		{Subject: OBOPrefix + "MGPO_0000123", Object: zp1, Category: CategoryLexical},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "MGPO:0000123", records[0].SubjectID)
	assert.Equal(t, "obo:mgpo", records[0].SubjectSource)
	assert.Equal(t, "ZP:0000001", records[0].ObjectID)
	assert.Equal(t, "obo:zp", records[0].ObjectSource)
}
