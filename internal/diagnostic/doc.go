// Package diagnostic provides structured warnings, errors, and infos
// collected while a mapping run executes.
//
// Key capabilities:
//   - Dropped label reports (empty after normalization, merged-class namespace)
//   - Identifier compaction fallbacks
//   - Same-ontology ("problematic") pair reports
//   - Per-code counts for run summaries
package diagnostic
