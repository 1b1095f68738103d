package mapping

// IRI namespaces.
const (
	// OBOPrefix is the shared namespace of OBO Foundry term IRIs.
	OBOPrefix = "http://purl.obolibrary.org/obo/"
	// MergedClassPrefix is the namespace of the cross-species merged classes.
	// Terms in it are never grouped: they would map onto themselves.
	MergedClassPrefix = OBOPrefix + "UPHENO_"
)

// Label predicates accepted in the label table.
const (
	RDFSLabel        = "rdfs:label"
	RDFSLabelIRI     = "http://www.w3.org/2000/01/rdf-schema#label"
	ExactSynonymIRI  = "http://www.geneontology.org/formats/oboInOwl#hasExactSynonym"
	ExactSynonymCURI = "oboInOwl:hasExactSynonym"
)

// Fixed SSSOM values.
const (
	PredicateCrossSpeciesExactMatch = "semapv:crossSpeciesExactMatch"
	CategoryPhenotypicFeature       = "biolink:PhenotypicFeature"

	JustificationLexical        = "semapv:LexicalMatching"
	JustificationLogical        = "semapv:LogicalMatching"
	JustificationLexicalLogical = "semapv:LexicalAndLogicalMatching"
)

// Edit template directive row.
const (
	TemplateIDColumn          = "Ontology ID"
	TemplateEquivalentColumn  = "EquivalentClasses"
	TemplateIDDirective       = "ID"
	TemplateEquivalentClassAI = "AI obo:UPHENO_0000002"
)

// CanonicalPredicate returns the full IRI of a known compact predicate, and
// p unchanged otherwise.
func CanonicalPredicate(p string) string {
	switch p {
	case RDFSLabel:
		return RDFSLabelIRI
	case ExactSynonymCURI:
		return ExactSynonymIRI
	default:
		return p
	}
}

// IsLabelPredicate reports whether p names rdfs:label in compact or full form.
func IsLabelPredicate(p string) bool {
	return CanonicalPredicate(p) == RDFSLabelIRI
}
