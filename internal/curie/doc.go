// Package curie converts between full IRIs and compact identifiers
// (CURIEs) using prefix maps.
//
// A PrefixMap is built from Records. Compression picks the longest matching
// URI prefix; standardization rewrites prefix synonyms to the canonical
// prefix. Maps are composed with Chain, where earlier maps win conflicts.
//
// The OBO Foundry prefix map ships embedded in the package (see OBO).
package curie
