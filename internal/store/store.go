package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"phenio-toolkit/internal/mapping"
)

// ErrSetNotFound is returned when a mapping set id is unknown.
var ErrSetNotFound = errors.New("mapping set not found")

// MappingSet is a persisted set of final mapping records.
type MappingSet struct {
	ID      string
	License string
	Records []mapping.FinalMappingRecord
}

// SetInfo summarizes a stored mapping set.
type SetInfo struct {
	ID           string
	License      string
	MappingCount int
	UpdatedAt    time.Time
}

// SaveMappingSet replaces the stored records of set.ID with set.Records in a
// single transaction and records a run against it. It returns the run id.
//
// Rows are keyed by their position in set.Records: distinct IRI pairs may
// compact to the same CURIE pair and are stored as separate rows.
func SaveMappingSet(ctx context.Context, db *sql.DB, set MappingSet) (string, error) {
	if set.ID == "" {
		return "", errors.New("mapping set id must be non-empty")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO mapping_sets (id, license, mapping_count, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   license = excluded.license,
		   mapping_count = excluded.mapping_count,
		   updated_at = excluded.updated_at`,
		set.ID, set.License, len(set.Records), now)
	if err != nil {
		return "", fmt.Errorf("upsert mapping set: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM mappings WHERE set_id = ?`, set.ID)
	if err != nil {
		return "", fmt.Errorf("clear mappings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mappings (set_id, row_no, subject_id, subject_label, subject_source, predicate_id,
		   object_id, object_label, object_source, mapping_justification, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range set.Records {
		_, err := stmt.ExecContext(ctx, set.ID, i,
			r.SubjectID, r.SubjectLabel, r.SubjectSource, r.PredicateID,
			r.ObjectID, r.ObjectLabel, r.ObjectSource, r.MappingJustification, string(r.Category))
		if err != nil {
			return "", fmt.Errorf("insert mapping %s -> %s: %w", r.SubjectID, r.ObjectID, err)
		}
	}

	runID := uuid.NewString()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id, set_id, started_at) VALUES (?, ?, ?)`,
		runID, set.ID, now)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return runID, nil
}

// ListMappings returns the records of a set ordered by subject, object and
// then by the order they were saved in.
func ListMappings(ctx context.Context, db *sql.DB, setID string) ([]mapping.FinalMappingRecord, error) {
	var exists int

	err := db.QueryRowContext(ctx, `SELECT 1 FROM mapping_sets WHERE id = ?`, setID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, setID)
	}

	if err != nil {
		return nil, fmt.Errorf("lookup mapping set: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT subject_id, subject_label, subject_source, predicate_id, object_id,
		        object_label, object_source, mapping_justification, category
		 FROM mappings WHERE set_id = ? ORDER BY subject_id, object_id, row_no`, setID)
	if err != nil {
		return nil, fmt.Errorf("query mappings: %w", err)
	}
	defer rows.Close()

	records := []mapping.FinalMappingRecord{}

	for rows.Next() {
		var (
			r        mapping.FinalMappingRecord
			category string
		)

		err := rows.Scan(&r.SubjectID, &r.SubjectLabel, &r.SubjectSource, &r.PredicateID,
			&r.ObjectID, &r.ObjectLabel, &r.ObjectSource, &r.MappingJustification, &category)
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}

		r.Category = mapping.Category(category)
		r.SubjectCategory = mapping.CategoryPhenotypicFeature
		r.ObjectCategory = mapping.CategoryPhenotypicFeature
		records = append(records, r)
	}

	return records, rows.Err()
}

// ListSets returns every stored mapping set, most recently updated first.
func ListSets(ctx context.Context, db *sql.DB) ([]SetInfo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, license, mapping_count, updated_at FROM mapping_sets ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query mapping sets: %w", err)
	}
	defer rows.Close()

	var sets []SetInfo

	for rows.Next() {
		var s SetInfo

		err := rows.Scan(&s.ID, &s.License, &s.MappingCount, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan mapping set: %w", err)
		}

		sets = append(sets, s)
	}

	return sets, rows.Err()
}
