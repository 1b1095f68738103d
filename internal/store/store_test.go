package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phenio-toolkit/internal/mapping"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db
}

func record(subject, object string, category mapping.Category) mapping.FinalMappingRecord {
	justification, _ := mapping.Justification(category)

	return mapping.FinalMappingRecord{
		SubjectID:            subject,
		SubjectSource:        "obo:hp",
		PredicateID:          mapping.PredicateCrossSpeciesExactMatch,
		ObjectID:             object,
		ObjectSource:         "obo:mp",
		MappingJustification: justification,
		SubjectCategory:      mapping.CategoryPhenotypicFeature,
		ObjectCategory:       mapping.CategoryPhenotypicFeature,
		Category:             category,
	}
}

func TestSaveAndListMappings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	set := MappingSet{
		ID:      "urn:uuid:set-1",
		License: "https://w3id.org/sssom/license/unspecified",
		Records: []mapping.FinalMappingRecord{
			record("MP:0000002", "HP:0000002", mapping.CategoryLogical),
			record("HP:0000001", "MP:0000001", mapping.CategoryLexicalLogical),
		},
	}

	runID, err := SaveMappingSet(ctx, db, set)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	got, err := ListMappings(ctx, db, set.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, set.Records[1], got[0])
	assert.Equal(t, set.Records[0], got[1])

	sets, err := ListSets(ctx, db)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, 2, sets[0].MappingCount)
	assert.Equal(t, set.License, sets[0].License)
}

func TestSaveMappingSetReplaces(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	set := MappingSet{ID: "urn:uuid:set-1", Records: []mapping.FinalMappingRecord{
		record("HP:0000001", "MP:0000001", mapping.CategoryLexical),
		record("MP:0000001", "HP:0000001", mapping.CategoryLexical),
	}}

	first, err := SaveMappingSet(ctx, db, set)
	require.NoError(t, err)

	set.Records = set.Records[:1]

	second, err := SaveMappingSet(ctx, db, set)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	got, err := ListMappings(ctx, db, set.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs WHERE set_id = ?`, set.ID).Scan(&runs))
	assert.Equal(t, 2, runs)
}

func TestSaveMappingSetKeepsSharedCompactIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// GO_0000001 and identifiers.org GO:0000001 both compact to GO:0000001.
	purl := record("GO:0000001", "MP:0000001", mapping.CategoryLogical)
	purl.SubjectSource = "obo:go"
	identifiers := record("GO:0000001", "MP:0000001", mapping.CategoryLogical)
	identifiers.SubjectSource = "obo:http"

	set := MappingSet{ID: "urn:uuid:shared", Records: []mapping.FinalMappingRecord{purl, identifiers}}

	_, err := SaveMappingSet(ctx, db, set)
	require.NoError(t, err)

	got, err := ListMappings(ctx, db, set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.Records, got)

	_, err = SaveMappingSet(ctx, db, set)
	require.NoError(t, err, "saving the same set again replaces it")

	got, err = ListMappings(ctx, db, set.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSaveMappingSetRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bad := record("HP:0000002", "MP:0000002", mapping.CategoryLexical)
	bad.MappingJustification = ""

	_, err := SaveMappingSet(ctx, db, MappingSet{ID: "urn:uuid:bad", Records: []mapping.FinalMappingRecord{
		record("HP:0000001", "MP:0000001", mapping.CategoryLexical),
		bad,
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert mapping HP:0000002 -> MP:0000002")

	_, err = ListMappings(ctx, db, "urn:uuid:bad")
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestSaveMappingSetRequiresID(t *testing.T) {
	_, err := SaveMappingSet(context.Background(), setupTestDB(t), MappingSet{})
	assert.Error(t, err)
}

func TestListMappingsUnknownSet(t *testing.T) {
	_, err := ListMappings(context.Background(), setupTestDB(t), "urn:uuid:missing")
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err, "migrations are idempotent")
	require.NoError(t, db.Close())
}
