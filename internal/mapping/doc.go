// Package mapping holds the record types of a mapping run and the stages
// that turn lexical and logical pairs into final mapping records.
//
// # Pipeline
//
//   - JoinLexical attaches display labels and ontology tags to lexical pairs
//   - Partition separates same-ontology ("problematic") pairs
//   - Merge outer-joins the remaining lexical pairs with logical pairs and
//     combines their categories
//   - Finalizer compacts identifiers, derives sources and maps each category
//     to its mapping justification
//
// # Categories
//
// A pair found by label matching is "lexical", one asserted by the logical
// table is "logical", and one found by both is "lexical-logical". Any other
// category is an error (ErrUnexpectedCategory).
//
// # Ontology tags
//
// The ontology of a term is derived from its IRI by dropping the OBO
// namespace and the numeric local identifier:
//
//	http://purl.obolibrary.org/obo/MP_0001262 -> MP
package mapping
