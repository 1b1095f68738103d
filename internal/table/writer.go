package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"phenio-toolkit/internal/curie"
	"phenio-toolkit/internal/mapping"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// SSSOMColumns are the columns of the mapping set TSV.
var SSSOMColumns = []string{
	"subject_id",
	"subject_label",
	"subject_source",
	"predicate_id",
	"object_id",
	"object_label",
	"object_source",
	"mapping_justification",
}

// LexicalColumns are the columns of the lexical join and problematic CSVs.
var LexicalColumns = []string{"p1", "p2", "cat", "iri_x", "label_x", "iri_y", "label_y", "o1", "o2"}

// Vocabulary prefixes always declared in the metadata curie map.
var metadataPrefixes = map[string]string{
	"obo":     mapping.OBOPrefix,
	"semapv":  "https://w3id.org/semapv/vocab/",
	"biolink": "https://w3id.org/biolink/vocab/",
}

// PrefixResolver resolves a CURIE prefix to its URI prefix.
type PrefixResolver interface {
	URIPrefix(prefix string) (string, bool)
}

var _ PrefixResolver = (*curie.PrefixMap)(nil)

// Metadata is the SSSOM mapping set header.
type Metadata struct {
	MappingSetID string            `yaml:"mapping_set_id"`
	License      string            `yaml:"license"`
	CurieMap     map[string]string `yaml:"curie_map"`
}

// File is a rendered output file.
type File struct {
	Name    string
	Content []byte
}

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return cw
}

func sssomRow(r mapping.FinalMappingRecord) []string {
	return []string{
		r.SubjectID,
		r.SubjectLabel,
		r.SubjectSource,
		r.PredicateID,
		r.ObjectID,
		r.ObjectLabel,
		r.ObjectSource,
		r.MappingJustification,
	}
}

// WriteSSSOM writes the mapping set TSV. When meta is non-nil it is written
// first as "#"-prefixed YAML.
func WriteSSSOM(w io.Writer, records []mapping.FinalMappingRecord, meta *Metadata) error {
	if meta != nil {
		err := writeMetadata(w, meta)
		if err != nil {
			return err
		}
	}

	cw := newTSVWriter(w)

	err := cw.Write(SSSOMColumns)
	if err != nil {
		return fmt.Errorf("writing SSSOM header: %w", err)
	}

	for _, r := range records {
		err := cw.Write(sssomRow(r))
		if err != nil {
			return fmt.Errorf("writing SSSOM row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func writeMetadata(w io.Writer, meta *Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal SSSOM metadata: %w", err)
	}

	var b strings.Builder

	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		b.WriteString("#")
		b.WriteString(line)
		b.WriteString("\n")
	}

	_, err = io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("writing SSSOM metadata: %w", err)
	}

	return nil
}

// NewMetadata builds the mapping set header. The curie map declares every
// prefix used by a subject or object identifier that resolver knows, plus
// the vocabularies of the fixed columns. The mapping set id is a name-based
// UUID over the rendered records, so identical record sets share an id.
func NewMetadata(records []mapping.FinalMappingRecord, resolver PrefixResolver, license string) (*Metadata, error) {
	curieMap := make(map[string]string, len(metadataPrefixes))
	for k, v := range metadataPrefixes {
		curieMap[k] = v
	}

	for _, r := range records {
		for _, id := range []string{r.SubjectID, r.ObjectID} {
			prefix := curie.PrefixOf(id)
			if _, ok := curieMap[prefix]; ok || resolver == nil {
				continue
			}

			if uri, ok := resolver.URIPrefix(prefix); ok {
				curieMap[prefix] = uri
			}
		}
	}

	var body bytes.Buffer

	err := WriteSSSOM(&body, records, nil)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		MappingSetID: MappingSetID(body.Bytes()),
		License:      license,
		CurieMap:     curieMap,
	}, nil
}

// MappingSetID returns the deterministic URN of a rendered mapping set.
func MappingSetID(content []byte) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, content).URN()
}

func lexicalRow(r mapping.LexicalRow) []string {
	return []string{
		r.Subject,
		r.Object,
		string(r.Category),
		r.SubjectIRI,
		r.SubjectLabel,
		r.ObjectIRI,
		r.ObjectLabel,
		r.SubjectOntology,
		r.ObjectOntology,
	}
}

// WriteLexical writes lexical join rows as CSV.
func WriteLexical(w io.Writer, rows []mapping.LexicalRow) error {
	cw := csv.NewWriter(w)

	err := cw.Write(LexicalColumns)
	if err != nil {
		return fmt.Errorf("writing lexical header: %w", err)
	}

	for _, r := range rows {
		err := cw.Write(lexicalRow(r))
		if err != nil {
			return fmt.Errorf("writing lexical row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteTemplate writes the edit template TSV.
func WriteTemplate(w io.Writer, rows []mapping.TemplateRow) error {
	cw := newTSVWriter(w)

	err := cw.Write([]string{mapping.TemplateIDColumn, mapping.TemplateEquivalentColumn})
	if err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}

	for _, r := range rows {
		err := cw.Write([]string{r.OntologyID, r.EquivalentClasses})
		if err != nil {
			return fmt.Errorf("writing template row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Render renders content into a named File.
func Render(name string, write func(io.Writer) error) (File, error) {
	var buf bytes.Buffer

	err := write(&buf)
	if err != nil {
		return File{}, fmt.Errorf("rendering %s: %w", name, err)
	}

	return File{Name: name, Content: buf.Bytes()}, nil
}

// WriteFiles writes all files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []File, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Name)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Name, err)
		}
	}

	return nil
}

// Names lists the output file names.
type Names struct {
	SSSOM       string
	Lexical     string
	Template    string
	Problematic string
}

// Outputs is everything a run writes.
type Outputs struct {
	Mappings    []mapping.FinalMappingRecord
	Lexical     []mapping.LexicalRow
	Problematic []mapping.LexicalRow
	Template    []mapping.TemplateRow
	// Metadata is written as the SSSOM header when non-nil.
	Metadata *Metadata
}

// RenderAll renders the four output files in a fixed order.
func RenderAll(out Outputs, names Names) ([]File, error) {
	renderers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{names.SSSOM, func(w io.Writer) error { return WriteSSSOM(w, out.Mappings, out.Metadata) }},
		{names.Lexical, func(w io.Writer) error { return WriteLexical(w, out.Lexical) }},
		{names.Template, func(w io.Writer) error { return WriteTemplate(w, out.Template) }},
		{names.Problematic, func(w io.Writer) error { return WriteLexical(w, out.Problematic) }},
	}

	files := make([]File, 0, len(renderers))

	for _, r := range renderers {
		if r.name == "" {
			return nil, errors.New("output file name is empty")
		}

		f, err := Render(r.name, r.write)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}
