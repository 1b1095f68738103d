package clique

import (
	"fmt"
	"slices"
	"strings"

	"phenio-toolkit/internal/common"
	"phenio-toolkit/internal/mapping"
)

// Config holds configuration for clique resolution and pair generation.
type Config struct {
	// Strategy controls how a resolved group is turned into pairs.
	Strategy PairStrategy
	// Closure controls how far merge partners are followed.
	Closure Closure
	// Match controls when two labels are merge partners.
	Match MatchMode
}

// DefaultConfig returns the configuration that reproduces the reference
// mapping outputs: windowed pairs, one-hop merges on shared referents.
func DefaultConfig() Config {
	return Config{
		Strategy: PairWindowed,
		Closure:  ClosureOneHop,
		Match:    MatchSharedReferent,
	}
}

// LabelGroups maps a normalized label to the IRIs carrying it, in
// first-seen order. A label may denote many terms.
type LabelGroups map[string][]string

// GroupByLabel groups normalized records by label.
func GroupByLabel(records []mapping.NormalizedLabel) LabelGroups {
	groups := make(LabelGroups)

	for _, rec := range records {
		if slices.Contains(groups[rec.Label], rec.IRI) {
			continue
		}

		groups[rec.Label] = append(groups[rec.Label], rec.IRI)
	}

	return groups
}

// referentKeySep cannot occur in an IRI.
const referentKeySep = "\x1f"

// Invert maps each referent key to the sorted labels sharing it. With
// MatchSharedReferent the key is a single IRI; with MatchIdenticalReferents
// it is the canonical sorted IRI set of a label. Any other mode yields no keys.
func Invert(groups LabelGroups, mode MatchMode) map[string][]string {
	inverted := make(map[string][]string)

	for _, label := range common.SortedKeys(groups) {
		iris := groups[label]

		switch mode {
		case MatchIdenticalReferents:
			key := strings.Join(common.SortedUnique(iris), referentKeySep)
			inverted[key] = append(inverted[key], label)
		case MatchSharedReferent:
			for _, iri := range common.Dedupe(iris) {
				inverted[iri] = append(inverted[iri], label)
			}
		}
	}

	return inverted
}

// MergeMap returns, for every label that shares a referent key with at least
// one other label, the sorted list of those other labels. The relation is
// symmetric but not transitively closed.
func MergeMap(inverted map[string][]string) map[string][]string {
	partners := make(map[string]map[string]struct{})

	for _, labels := range inverted {
		if len(labels) < 2 {
			continue
		}

		for _, a := range labels {
			if partners[a] == nil {
				partners[a] = make(map[string]struct{})
			}

			for _, b := range labels {
				if a != b {
					partners[a][b] = struct{}{}
				}
			}
		}
	}

	merge := make(map[string][]string, len(partners))
	for label, set := range partners {
		merge[label] = common.SortedKeys(set)
	}

	return merge
}

// Resolve folds merge partners together and returns one sorted, distinct
// IRI list per resolved group. An undefined Closure or MatchMode in cfg
// fails with ErrInvalidOption.
func Resolve(groups LabelGroups, cfg Config) ([][]string, error) {
	switch cfg.Match {
	case MatchSharedReferent, MatchIdenticalReferents:
	default:
		return nil, fmt.Errorf("%w: match mode %s", ErrInvalidOption, cfg.Match)
	}

	merge := MergeMap(Invert(groups, cfg.Match))

	switch cfg.Closure {
	case ClosureOneHop:
		return resolveOneHop(groups, merge), nil
	case ClosureTransitive:
		return resolveTransitive(groups, merge), nil
	default:
		return nil, fmt.Errorf("%w: closure %s", ErrInvalidOption, cfg.Closure)
	}
}

// resolveOneHop unions each unprocessed label with its direct partners only.
// A partner that was already folded elsewhere still contributes its IRIs.
func resolveOneHop(groups LabelGroups, merge map[string][]string) [][]string {
	var resolved [][]string

	done := make(map[string]bool, len(groups))

	for _, label := range common.SortedKeys(groups) {
		if done[label] {
			continue
		}

		done[label] = true

		iris := slices.Clone(groups[label])
		for _, partner := range merge[label] {
			iris = append(iris, groups[partner]...)
			done[partner] = true
		}

		resolved = append(resolved, common.SortedUnique(iris))
	}

	return resolved
}

// resolveTransitive unions every connected component of the merge relation.
func resolveTransitive(groups LabelGroups, merge map[string][]string) [][]string {
	uf := newUnionFind()

	labels := common.SortedKeys(groups)
	for _, label := range labels {
		uf.add(label)

		for _, partner := range merge[label] {
			uf.union(label, partner)
		}
	}

	var order []string

	members := make(map[string][]string)

	for _, label := range labels {
		root := uf.find(label)
		if _, ok := members[root]; !ok {
			order = append(order, root)
		}

		members[root] = append(members[root], groups[label]...)
	}

	resolved := make([][]string, 0, len(order))
	for _, root := range order {
		resolved = append(resolved, common.SortedUnique(members[root]))
	}

	return resolved
}

// unionFind is a disjoint-set forest over labels with path compression.
// The lexicographically smaller root wins a union so roots are stable.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) add(x string) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
}

func (u *unionFind) find(x string) string {
	u.add(x)

	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}

	for x != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}

	return root
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}

	if rb < ra {
		ra, rb = rb, ra
	}

	u.parent[rb] = ra
}
