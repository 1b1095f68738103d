package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"phenio-toolkit/internal/curie"
	"phenio-toolkit/internal/mapping"
)

func testRecords() []mapping.FinalMappingRecord {
	return []mapping.FinalMappingRecord{
		{
			SubjectID:            "HP:0000001",
			SubjectLabel:         "aberrant heart",
			SubjectSource:        "obo:hp",
			PredicateID:          mapping.PredicateCrossSpeciesExactMatch,
			ObjectID:             "MP:0000001",
			ObjectLabel:          "abnormal heart",
			ObjectSource:         "obo:mp",
			MappingJustification: mapping.JustificationLexical,
		},
	}
}

func TestWriteSSSOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSSSOM(&buf, testRecords(), nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(SSSOMColumns, "\t"), lines[0])
	assert.Equal(t,
		"HP:0000001\taberrant heart\tobo:hp\tsemapv:crossSpeciesExactMatch\tMP:0000001\tabnormal heart\tobo:mp\tsemapv:LexicalMatching",
		lines[1])
}

func TestNewMetadata(t *testing.T) {
	conv, err := curie.Default()
	require.NoError(t, err)

	meta, err := NewMetadata(testRecords(), conv, "https://creativecommons.org/publicdomain/zero/1.0/")
	require.NoError(t, err)

	assert.Equal(t, "http://purl.obolibrary.org/obo/HP_", meta.CurieMap["HP"])
	assert.Equal(t, "http://purl.obolibrary.org/obo/MP_", meta.CurieMap["MP"])
	assert.Contains(t, meta.CurieMap, "semapv")
	assert.NotContains(t, meta.CurieMap, "ZP")
	assert.True(t, strings.HasPrefix(meta.MappingSetID, "urn:uuid:"))

	again, err := NewMetadata(testRecords(), conv, "")
	require.NoError(t, err)
	assert.Equal(t, meta.MappingSetID, again.MappingSetID)

	other, err := NewMetadata(nil, conv, "")
	require.NoError(t, err)
	assert.NotEqual(t, meta.MappingSetID, other.MappingSetID)
}

func TestWriteSSSOMWithMetadata(t *testing.T) {
	meta := &Metadata{
		MappingSetID: "urn:uuid:test",
		License:      "https://w3id.org/sssom/license/unspecified",
		CurieMap:     map[string]string{"HP": "http://purl.obolibrary.org/obo/HP_"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSSSOM(&buf, testRecords(), meta))

	var header, body []string

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.HasPrefix(line, "#") {
			header = append(header, strings.TrimPrefix(line, "#"))
			continue
		}

		body = append(body, line)
	}

	var parsed Metadata
	require.NoError(t, yaml.Unmarshal([]byte(strings.Join(header, "\n")), &parsed))
	assert.Equal(t, *meta, parsed)
	assert.Len(t, body, 2)
}

func TestWriteLexical(t *testing.T) {
	rows := []mapping.LexicalRow{{
		Subject:         "http://purl.obolibrary.org/obo/MP_0000002",
		Object:          "http://purl.obolibrary.org/obo/MP_0000003",
		Category:        mapping.CategoryLexical,
		SubjectIRI:      "http://purl.obolibrary.org/obo/MP_0000002",
		SubjectLabel:    "tail, kinked",
		SubjectOntology: "MP",
		ObjectOntology:  "MP",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteLexical(&buf, rows))

	assert.Equal(t,
		"p1,p2,cat,iri_x,label_x,iri_y,label_y,o1,o2\n"+
			"http://purl.obolibrary.org/obo/MP_0000002,http://purl.obolibrary.org/obo/MP_0000003,lexical,"+
			"http://purl.obolibrary.org/obo/MP_0000002,\"tail, kinked\",,,MP,MP\n",
		buf.String())
}

func TestWriteTemplate(t *testing.T) {
	rows := []mapping.TemplateRow{
		{OntologyID: mapping.TemplateIDDirective, EquivalentClasses: mapping.TemplateEquivalentClassAI},
		{OntologyID: "a", EquivalentClasses: "b"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, rows))

	assert.Equal(t, "Ontology ID\tEquivalentClasses\nID\tAI obo:UPHENO_0000002\na\tb\n", buf.String())
}

func TestRenderAllAndWriteFiles(t *testing.T) {
	names := Names{SSSOM: "m.sssom.tsv", Lexical: "l.csv", Template: "t.tsv", Problematic: "p.csv"}

	files, err := RenderAll(Outputs{Mappings: testRecords()}, names)
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, "m.sssom.tsv", files[0].Name)

	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, WriteFiles(files, dir))

	for _, name := range []string{"m.sssom.tsv", "l.csv", "t.tsv", "p.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	_, err = RenderAll(Outputs{}, Names{})
	assert.Error(t, err)
}
