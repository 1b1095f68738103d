package clique

import (
	"fmt"

	"phenio-toolkit/internal/mapping"
)

// Pairs turns resolved groups into deduplicated lexical mapping pairs. For
// every pair (a,b) the reverse (b,a) is emitted right after it. Groups with
// fewer than two IRIs contribute nothing.
func Pairs(groups [][]string, strategy PairStrategy) ([]mapping.MappingPair, error) {
	switch strategy {
	case PairWindowed, PairAll:
	default:
		return nil, fmt.Errorf("%w: pair strategy %s", ErrInvalidOption, strategy)
	}

	var out []mapping.MappingPair

	seen := make(map[mapping.Pair]struct{})

	emit := func(a, b string) {
		if a == b {
			return
		}

		for _, p := range []mapping.Pair{{Subject: a, Object: b}, {Subject: b, Object: a}} {
			if _, ok := seen[p]; ok {
				continue
			}

			seen[p] = struct{}{}
			out = append(out, mapping.MappingPair{
				Subject:  p.Subject,
				Object:   p.Object,
				Category: mapping.CategoryLexical,
			})
		}
	}

	for _, iris := range groups {
		if len(iris) < 2 {
			continue
		}

		switch strategy {
		case PairAll:
			for i := range iris {
				for j := i + 1; j < len(iris); j++ {
					emit(iris[i], iris[j])
				}
			}
		case PairWindowed:
			for i := 0; i+1 < len(iris); i += 2 {
				emit(iris[i], iris[i+1])
			}
		}
	}

	return out, nil
}

// Generate runs grouping, resolution and pairing over normalized records.
func Generate(records []mapping.NormalizedLabel, cfg Config) ([]mapping.MappingPair, error) {
	groups, err := Resolve(GroupByLabel(records), cfg)
	if err != nil {
		return nil, err
	}

	return Pairs(groups, cfg.Strategy)
}
