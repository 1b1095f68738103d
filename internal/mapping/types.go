package mapping

// LabelRecord is one row of the term-label table.
type LabelRecord struct {
	IRI       string
	Predicate string
	Label     string
}

// NormalizedLabel is a term IRI with its comparison key.
type NormalizedLabel struct {
	IRI   string
	Label string
}

// Pair identifies a directed (subject, object) IRI pair.
type Pair struct {
	Subject string
	Object  string
}

// Reverse returns the pair with subject and object swapped.
func (p Pair) Reverse() Pair {
	return Pair{Subject: p.Object, Object: p.Subject}
}

// IsSelf reports whether subject and object are the same IRI.
func (p Pair) IsSelf() bool {
	return p.Subject == p.Object
}

// MappingPair is a directed term-to-term mapping with its evidence source.
type MappingPair struct {
	Subject  string
	Object   string
	Category Category
}

// Key returns the IRI pair of the mapping.
func (m MappingPair) Key() Pair {
	return Pair{Subject: m.Subject, Object: m.Object}
}

// LexicalRow is a lexical pair joined with its label metadata and ontology
// tags. It is the row shape of the lexical and problematic review tables.
type LexicalRow struct {
	Subject         string
	Object          string
	Category        Category
	SubjectIRI      string
	SubjectLabel    string
	ObjectIRI       string
	ObjectLabel     string
	SubjectOntology string
	ObjectOntology  string
}

// SameOntology reports whether both ends come from the same ontology.
func (r LexicalRow) SameOntology() bool {
	return r.SubjectOntology == r.ObjectOntology
}

// MergedPair is a pair after the lexical/logical outer union, before
// identifier compaction.
type MergedPair struct {
	Subject      string
	Object       string
	SubjectLabel string
	ObjectLabel  string
	Category     Category
}

// FinalMappingRecord is one row of the SSSOM output.
type FinalMappingRecord struct {
	SubjectID            string
	SubjectLabel         string
	SubjectSource        string
	SubjectCategory      string
	PredicateID          string
	ObjectID             string
	ObjectLabel          string
	ObjectSource         string
	ObjectCategory       string
	MappingJustification string
	Category             Category
}

// TemplateRow is one row of the ontology edit template.
type TemplateRow struct {
	OntologyID        string
	EquivalentClasses string
}
