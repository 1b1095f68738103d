package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"phenio-toolkit/internal/mapping"
)

// ErrMissingColumn is returned when an input lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ErrNoMatch is returned when a pattern matches no file.
var ErrNoMatch = errors.New("no files match pattern")

// Logical table column names.
const (
	ColumnSubject = "p1"
	ColumnObject  = "p2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rawTable is a parsed CSV document.
type rawTable struct {
	headers []string
	rows    [][]string
}

func readCSV(r io.Reader) (rawTable, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return rawTable{}, err
	}

	b = bytes.TrimPrefix(b, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return rawTable{}, nil
	}

	if err != nil {
		return rawTable{}, err
	}

	t := rawTable{headers: headers}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return rawTable{}, err
		}

		t.rows = append(t.rows, rec)
	}

	return t, nil
}

// field returns column i of rec, or "" when the row is short.
func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}

	return ""
}

// ReadLabels reads a label table. The first three columns are taken as iri,
// predicate and label regardless of their header names.
func ReadLabels(r io.Reader) ([]mapping.LabelRecord, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read label table: %w", err)
	}

	if len(t.headers) < 3 {
		return nil, fmt.Errorf("%w: label table needs iri, predicate and label columns, got %d",
			ErrMissingColumn, len(t.headers))
	}

	records := make([]mapping.LabelRecord, 0, len(t.rows))
	for _, rec := range t.rows {
		records = append(records, mapping.LabelRecord{
			IRI:       field(rec, 0),
			Predicate: field(rec, 1),
			Label:     field(rec, 2),
		})
	}

	return records, nil
}

// LoadLabels reads the label table at path.
func LoadLabels(path string) ([]mapping.LabelRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label table %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadLabels(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

// ReadLogical reads the p1/p2 columns of a logical mapping table. Other
// columns are ignored. Pairs are returned as read, without symmetrization.
func ReadLogical(r io.Reader) ([]mapping.Pair, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read logical table: %w", err)
	}

	subj := slices.Index(t.headers, ColumnSubject)
	obj := slices.Index(t.headers, ColumnObject)

	if subj < 0 || obj < 0 {
		return nil, fmt.Errorf("%w: logical table needs %s and %s columns, got %v",
			ErrMissingColumn, ColumnSubject, ColumnObject, t.headers)
	}

	pairs := make([]mapping.Pair, 0, len(t.rows))
	for _, rec := range t.rows {
		pairs = append(pairs, mapping.Pair{Subject: field(rec, subj), Object: field(rec, obj)})
	}

	return pairs, nil
}

// Symmetrize adds the reverse of every pair, drops duplicates and tags the
// result as logical. Order is the input pairs followed by their reverses.
func Symmetrize(pairs []mapping.Pair) []mapping.MappingPair {
	seen := make(map[mapping.Pair]struct{}, 2*len(pairs))
	out := make([]mapping.MappingPair, 0, 2*len(pairs))

	add := func(p mapping.Pair) {
		if _, ok := seen[p]; ok {
			return
		}

		seen[p] = struct{}{}
		out = append(out, mapping.MappingPair{Subject: p.Subject, Object: p.Object, Category: mapping.CategoryLogical})
	}

	for _, p := range pairs {
		add(p)
	}

	for _, p := range pairs {
		add(p.Reverse())
	}

	return out
}

// ExpandPatterns resolves file paths and doublestar glob patterns into a
// sorted, distinct list of files. A plain path is returned as is; a pattern
// matching nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	var files []string

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			files = append(files, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(filepath.Clean(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}

		files = append(files, matches...)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// LoadLogical reads every logical table matched by patterns and returns the
// symmetrized, deduplicated union of their pairs.
func LoadLogical(ctx context.Context, patterns ...string) ([]mapping.MappingPair, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	var pairs []mapping.Pair

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open logical table %s: %w", path, err)
		}

		got, err := ReadLogical(f)
		f.Close()

		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		pairs = append(pairs, got...)
	}

	return Symmetrize(pairs), nil
}
