// Package table reads the tabular inputs of a mapping run and renders its
// output files.
//
// Inputs are comma separated with a header row. The label table is read by
// position (iri, predicate, label); the logical table by the column names
// p1 and p2. Outputs are the SSSOM mapping set (TSV with an optional "#"
// YAML metadata block), the lexical join and problematic rows (CSV) and the
// edit template (TSV).
package table
