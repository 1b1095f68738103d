package assemble

import (
	"errors"
	"log/slog"
	"time"

	"phenio-toolkit/internal/clique"
	"phenio-toolkit/internal/curie"
	"phenio-toolkit/internal/diagnostic"
	"phenio-toolkit/internal/lexical"
	"phenio-toolkit/internal/mapping"
)

// Config holds configuration for a mapping run.
type Config struct {
	// StopPhrases are checked in order; the first contained phrase wins.
	StopPhrases []string
	// LexicalPredicates selects the label-table rows used for matching.
	LexicalPredicates []string
	// ExcludePrefixes lists IRI namespaces never grouped nor labelled.
	ExcludePrefixes []string
	// Clique configures resolution and pair generation.
	Clique clique.Config
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		StopPhrases:       lexical.DefaultStopPhrases(),
		LexicalPredicates: []string{mapping.RDFSLabel},
		ExcludePrefixes:   []string{mapping.MergedClassPrefix},
		Clique:            clique.DefaultConfig(),
	}
}

// Input is the already-parsed tabular input of a run.
type Input struct {
	// Labels are rows of (iri, predicate, label).
	Labels []mapping.LabelRecord
	// Logical holds equivalence pairs with both directions present.
	Logical []mapping.MappingPair
}

// Stats summarizes a run.
type Stats struct {
	LabelRows        int
	LexicalRows      int
	NormalizedLabels int
	Groups           int
	LexicalPairs     int
	LogicalPairs     int
	Problematic      int
	CrossSpecies     int
	Mappings         int
	ByJustification  map[string]int
	Duration         time.Duration
}

// Result holds every output stream of a run.
type Result struct {
	// Mappings is the cross-ontology SSSOM record set.
	Mappings []mapping.FinalMappingRecord
	// Lexical is the full lexical join, problematic rows included.
	Lexical []mapping.LexicalRow
	// Problematic holds the same-ontology lexical rows.
	Problematic []mapping.LexicalRow
	// Template is the edit template, directive row first.
	Template []mapping.TemplateRow
	// Diagnostics collects non-fatal findings.
	Diagnostics diagnostic.Diagnostics
	Stats       Stats
}

// ErrNoConverter is returned when an Assembler has no identifier converter.
var ErrNoConverter = errors.New("identifier converter is required")

// Assembler performs the mapping pipeline.
type Assembler struct {
	config    Config
	converter curie.Converter
	logger    *slog.Logger
}

// New creates a new Assembler. A nil logger uses slog.Default().
func New(config Config, converter curie.Converter, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Assembler{
		config:    config,
		converter: converter,
		logger:    logger,
	}
}

// Run executes the pipeline over in. An invalid clique option, an unexpected
// provenance category or a missing converter abort the run. Everything else
// is reported through Result.Diagnostics.
func (a *Assembler) Run(in Input) (*Result, error) {
	if a.converter == nil {
		return nil, ErrNoConverter
	}

	start := time.Now()
	res := &Result{}

	// Normalize
	rows := selectPredicates(in.Labels, a.config.LexicalPredicates)
	normalizer := lexical.NewNormalizer(a.config.StopPhrases, a.config.ExcludePrefixes...)
	normalized := normalizer.NormalizeRecords(rows, &res.Diagnostics)

	a.logger.Debug("labels normalized",
		"label_rows", len(in.Labels),
		"lexical_rows", len(rows),
		"normalized", len(normalized))

	// Resolve and pair
	groups, err := clique.Resolve(clique.GroupByLabel(normalized), a.config.Clique)
	if err != nil {
		return nil, err
	}

	pairs, err := clique.Pairs(groups, a.config.Clique.Strategy)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("lexical pairs generated",
		"groups", len(groups),
		"pairs", len(pairs),
		"strategy", a.config.Clique.Strategy.String(),
		"closure", a.config.Clique.Closure.String())

	// Join and partition
	labels := mapping.NewLabelIndex(in.Labels, &res.Diagnostics, a.config.ExcludePrefixes...)
	res.Lexical = mapping.JoinLexical(pairs, labels)
	res.Template = Template(pairs)

	cross, problematic := mapping.Partition(res.Lexical, &res.Diagnostics)
	res.Problematic = problematic

	// Merge and finalize
	merged := mapping.Merge(cross, in.Logical, labels, &res.Diagnostics)

	records, err := mapping.NewFinalizer(a.converter, &res.Diagnostics).Finalize(merged)
	if err != nil {
		return nil, err
	}

	res.Mappings = records

	res.Stats = Stats{
		LabelRows:        len(in.Labels),
		LexicalRows:      len(rows),
		NormalizedLabels: len(normalized),
		Groups:           len(groups),
		LexicalPairs:     len(pairs),
		LogicalPairs:     len(in.Logical),
		Problematic:      len(problematic),
		CrossSpecies:     len(cross),
		Mappings:         len(records),
		ByJustification:  countJustifications(records),
		Duration:         time.Since(start),
	}

	a.logger.Info("mapping run complete",
		"mappings", res.Stats.Mappings,
		"lexical_pairs", res.Stats.LexicalPairs,
		"problematic", res.Stats.Problematic,
		"warnings", len(res.Diagnostics.Warnings))

	return res, nil
}

// Template builds the ontology edit template: the directive row followed by
// one row per lexical pair.
func Template(pairs []mapping.MappingPair) []mapping.TemplateRow {
	rows := make([]mapping.TemplateRow, 0, len(pairs)+1)
	rows = append(rows, mapping.TemplateRow{
		OntologyID:        mapping.TemplateIDDirective,
		EquivalentClasses: mapping.TemplateEquivalentClassAI,
	})

	for _, p := range pairs {
		rows = append(rows, mapping.TemplateRow{OntologyID: p.Subject, EquivalentClasses: p.Object})
	}

	return rows
}

// selectPredicates keeps the rows whose predicate is in predicates. Compact
// and full spellings of a known predicate are interchangeable.
func selectPredicates(records []mapping.LabelRecord, predicates []string) []mapping.LabelRecord {
	wanted := make(map[string]struct{}, len(predicates))
	for _, p := range predicates {
		wanted[mapping.CanonicalPredicate(p)] = struct{}{}
	}

	out := make([]mapping.LabelRecord, 0, len(records))

	for _, rec := range records {
		if _, ok := wanted[mapping.CanonicalPredicate(rec.Predicate)]; ok {
			out = append(out, rec)
		}
	}

	return out
}

func countJustifications(records []mapping.FinalMappingRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.MappingJustification]++
	}

	return counts
}
