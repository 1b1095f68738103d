// Package assemble runs the mapping pipeline end to end and partitions the
// results into the output tables.
//
// Pipeline:
//  1. Select lexical rows and normalize labels
//  2. Group, resolve cliques and emit lexical pairs
//  3. Join labels and split off same-ontology ("problematic") pairs
//  4. Outer-merge with logical pairs and attach provenance
//  5. Compact identifiers and assign justifications
//
// A run is single-pass and synchronous; all intermediate state belongs to
// the call.
package assemble
