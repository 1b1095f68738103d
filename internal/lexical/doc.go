// Package lexical turns raw term labels into canonical comparison keys.
//
// The normalization pipeline, applied in order:
//  1. Strip parenthesized all-uppercase source tags, e.g. "(MGI)".
//  2. Case-fold to lower.
//  3. Keep only a-z, 0-9, apostrophe and space.
//  4. Canonicalize abnormality phrasing with the first matching stop phrase.
//  5. Trim and collapse whitespace.
//
// Records whose key ends up empty, or whose IRI lives in the merged-class
// namespace, are dropped.
package lexical
