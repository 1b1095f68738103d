package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"phenio-toolkit/internal/assemble"
	"phenio-toolkit/internal/config"
	"phenio-toolkit/internal/lexical"
	"phenio-toolkit/internal/mapping"
	"phenio-toolkit/internal/metrics"
	"phenio-toolkit/internal/store"
	"phenio-toolkit/internal/table"
)

type lexicalOptions struct {
	speciesLexical  string
	mappingLogical  []string
	stopPhrases     []string
	output          string
	database        string
	metricsFile     string
	pairStrategy    string
	closure         string
	match           string
	noSSSOMMetadata bool
}

func lexicalMappingCmd(global *globalOptions) *cobra.Command {
	opts := &lexicalOptions{}

	cmd := &cobra.Command{
		Use:   "lexical-mapping",
		Short: "Build cross-species lexical and logical mappings",
		Long: `Normalizes term labels, pairs terms that share a normalized label,
merges the pairs with the logical equivalences and writes:

  upheno_custom_mapping.sssom.tsv            final mapping set
  mapping_lexical.csv                        every lexical pair with labels
  upheno_lexical_mapping.robot.template.tsv  edit template
  mapping_problematic.csv                    lexical pairs within one ontology`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			resolveLogLevel(cfg, global)

			err = opts.apply(cmd, cfg)
			if err != nil {
				return err
			}

			summary, err := runLexicalMapping(cmd.Context(), cfg, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.speciesLexical, "species-lexical", "s", "", "Species lexical file (iri, predicate, label)")
	flags.StringArrayVarP(&opts.mappingLogical, "mapping-logical", "m", nil,
		"Mapping logical file or glob pattern with p1, p2 columns (repeatable)")
	flags.StringArrayVarP(&opts.stopPhrases, "phenotypic-effect-terms", "p", nil,
		fmt.Sprintf("Stop phrase, in precedence order (repeatable; choices: %s)",
			strings.Join(lexical.DefaultStopPhrases(), ", ")))
	flags.StringVarP(&opts.output, "output", "o", "", "Output folder (default output.dir, then the working directory)")
	flags.StringVar(&opts.database, "db", "", "SQLite database the mapping set is saved to")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Prometheus textfile the run metrics are written to")
	flags.StringVar(&opts.pairStrategy, "pair-strategy", "", "Pairing of grouped terms (windowed, all-pairs)")
	flags.StringVar(&opts.closure, "closure", "", "Label merge closure (one-hop, transitive)")
	flags.StringVar(&opts.match, "match", "", "Label merge criterion (shared-referent, identical-referents)")
	flags.BoolVar(&opts.noSSSOMMetadata, "no-sssom-metadata", false, "Omit the SSSOM metadata header")

	_ = cmd.MarkFlagRequired("species-lexical")
	_ = cmd.MarkFlagRequired("mapping-logical")

	return cmd
}

// apply copies the flags that were set onto cfg and validates the result.
func (o *lexicalOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("phenotypic-effect-terms") {
		phrases, err := parseStopPhrases(o.stopPhrases)
		if err != nil {
			return err
		}

		cfg.StopPhrases = phrases
	}

	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}

	set("output", &cfg.Output.Dir, o.output)
	set("db", &cfg.Database, o.database)
	set("metrics-file", &cfg.MetricsFile, o.metricsFile)
	set("pair-strategy", &cfg.PairStrategy, o.pairStrategy)
	set("closure", &cfg.Closure, o.closure)
	set("match", &cfg.Match, o.match)

	if o.noSSSOMMetadata {
		disabled := false
		cfg.SSSOM.Metadata = &disabled
	}

	return cfg.Validate()
}

// parseStopPhrases restricts phrases to the known phenotypic-effect terms,
// case-insensitively, keeping the given order.
func parseStopPhrases(values []string) ([]string, error) {
	choices := lexical.DefaultStopPhrases()

	var phrases []string

	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if !slices.Contains(choices, v) {
			return nil, fmt.Errorf("%w: invalid phenotypic effect term %q (choose from %s)",
				config.ErrInvalidConfig, v, strings.Join(choices, ", "))
		}

		if !slices.Contains(phrases, v) {
			phrases = append(phrases, v)
		}
	}

	return phrases, nil
}

// loadInputs reads the label table and the logical tables concurrently.
func loadInputs(ctx context.Context, labelsPath string, logicalPatterns []string) (assemble.Input, error) {
	var in assemble.Input

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		labels, err := table.LoadLabels(labelsPath)
		if err != nil {
			return err
		}

		in.Labels = labels

		return nil
	})

	g.Go(func() error {
		logical, err := table.LoadLogical(ctx, logicalPatterns...)
		if err != nil {
			return err
		}

		in.Logical = logical

		return nil
	})

	err := g.Wait()
	if err != nil {
		return assemble.Input{}, err
	}

	return in, nil
}

// runLexicalMapping runs one mapping pass and returns a one-line summary.
func runLexicalMapping(ctx context.Context, cfg *config.Config, opts *lexicalOptions, logOut io.Writer) (string, error) {
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return "", err
	}

	logger.Debug("effective configuration", "config", spew.Sdump(cfg))

	converter, err := cfg.Converter()
	if err != nil {
		return "", err
	}

	assembleCfg, err := cfg.AssembleConfig()
	if err != nil {
		return "", err
	}

	in, err := loadInputs(ctx, opts.speciesLexical, opts.mappingLogical)
	if err != nil {
		return "", err
	}

	logger.Info("inputs loaded", "label_rows", len(in.Labels), "logical_pairs", len(in.Logical))

	res, err := assemble.New(assembleCfg, converter, logger).Run(in)
	if err != nil {
		return "", err
	}

	for _, d := range res.Diagnostics.Warnings {
		logger.Debug("diagnostic", "code", d.Code, "detail", d.String())
	}

	meta, err := table.NewMetadata(res.Mappings, converter, cfg.SSSOM.License)
	if err != nil {
		return "", err
	}

	out := table.Outputs{
		Mappings:    res.Mappings,
		Lexical:     res.Lexical,
		Problematic: res.Problematic,
		Template:    res.Template,
	}

	if cfg.SSSOM.MetadataEnabled() {
		out.Metadata = meta
	}

	files, err := table.RenderAll(out, table.Names{
		SSSOM:       cfg.Output.SSSOM,
		Lexical:     cfg.Output.Lexical,
		Template:    cfg.Output.Template,
		Problematic: cfg.Output.Problematic,
	})
	if err != nil {
		return "", err
	}

	err = table.WriteFiles(files, cfg.Output.Dir)
	if err != nil {
		return "", err
	}

	if cfg.Database != "" {
		err := saveMappingSet(ctx, cfg, meta.MappingSetID, res.Mappings)
		if err != nil {
			return "", err
		}

		logger.Info("mapping set saved", "db", cfg.Database, "set_id", meta.MappingSetID)
	}

	if cfg.MetricsFile != "" {
		m := metrics.New()
		m.Observe(res)

		err := m.WriteTextfile(cfg.MetricsFile)
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("Wrote %d mappings (%d lexical pairs, %d problematic) to %s",
		len(res.Mappings), res.Stats.LexicalPairs, res.Stats.Problematic, cfg.Output.Dir), nil
}

func saveMappingSet(ctx context.Context, cfg *config.Config, setID string, records []mapping.FinalMappingRecord) error {
	db, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = store.SaveMappingSet(ctx, db, store.MappingSet{
		ID:      setID,
		License: cfg.SSSOM.License,
		Records: records,
	})

	return err
}
