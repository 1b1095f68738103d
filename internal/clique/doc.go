// Package clique resolves groups of interchangeable normalized labels and
// turns each resolved group into directed lexical mapping pairs.
//
// Resolution pipeline:
//  1. Group normalized records by label → LabelGroups.
//  2. Invert by referent: which labels point at the same term(s).
//  3. Build the merge map: labels that must be unioned with each other.
//  4. Fold merge partners into one IRI set per group (one hop by default,
//     full transitive closure when configured).
//  5. Emit pairs per group using the configured PairStrategy.
//
// Labels are visited in sorted order and IRI sets are sorted before pairing
// so the output does not depend on map iteration order.
package clique
