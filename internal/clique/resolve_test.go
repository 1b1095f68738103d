package clique

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phenio-toolkit/internal/mapping"
)

func TestGroupByLabel(t *testing.T) {
	groups := GroupByLabel([]mapping.NormalizedLabel{
		{IRI: "a", Label: "x"},
		{IRI: "b", Label: "x"},
		{IRI: "a", Label: "x"},
		{IRI: "c", Label: "y"},
	})

	assert.Equal(t, LabelGroups{"x": {"a", "b"}, "y": {"c"}}, groups)
}

func TestInvertSharedReferent(t *testing.T) {
	groups := LabelGroups{"x": {"A", "B"}, "y": {"B", "C"}, "z": {"D"}}

	inverted := Invert(groups, MatchSharedReferent)

	assert.Equal(t, map[string][]string{
		"A": {"x"},
		"B": {"x", "y"},
		"C": {"y"},
		"D": {"z"},
	}, inverted)
	assert.Equal(t, map[string][]string{"x": {"y"}, "y": {"x"}}, MergeMap(inverted))
}

func TestInvertIdenticalReferents(t *testing.T) {
	groups := LabelGroups{"x": {"A", "B"}, "y": {"B", "A"}, "z": {"B"}}

	inverted := Invert(groups, MatchIdenticalReferents)

	assert.Equal(t, map[string][]string{
		"A" + referentKeySep + "B": {"x", "y"},
		"B":                        {"z"},
	}, inverted)
	assert.Equal(t, map[string][]string{"x": {"y"}, "y": {"x"}}, MergeMap(inverted))
}

func mustResolve(t *testing.T, groups LabelGroups, cfg Config) [][]string {
	t.Helper()

	resolved, err := Resolve(groups, cfg)
	require.NoError(t, err)

	return resolved
}

func TestResolveOneHop(t *testing.T) {
	groups := LabelGroups{"x": {"A", "B"}, "y": {"B", "C"}, "z": {"D"}}

	assert.Equal(t, [][]string{{"A", "B", "C"}, {"D"}}, mustResolve(t, groups, DefaultConfig()))
}

func TestResolveChain(t *testing.T) {
	// a~b share i2, b~c share i3; a and c share nothing directly.
	groups := LabelGroups{
		"a": {"i1", "i2"},
		"b": {"i2", "i3"},
		"c": {"i3", "i4"},
	}

	t.Run("one hop leaves c in its own group", func(t *testing.T) {
		got := mustResolve(t, groups, DefaultConfig())
		assert.Equal(t, [][]string{{"i1", "i2", "i3"}, {"i2", "i3", "i4"}}, got)
	})

	t.Run("transitive closure folds the chain", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Closure = ClosureTransitive

		assert.Equal(t, [][]string{{"i1", "i2", "i3", "i4"}}, mustResolve(t, groups, cfg))
	})
}

func TestResolveMatchModes(t *testing.T) {
	groups := LabelGroups{"x": {"A", "B"}, "y": {"B", "A"}, "z": {"B"}}

	shared := mustResolve(t, groups, DefaultConfig())
	assert.Equal(t, [][]string{{"A", "B"}}, shared)

	cfg := DefaultConfig()
	cfg.Match = MatchIdenticalReferents
	assert.Equal(t, [][]string{{"A", "B"}, {"B"}}, mustResolve(t, groups, cfg))
}

func TestResolveDoesNotMutateGroups(t *testing.T) {
	groups := LabelGroups{"x": {"A", "B"}, "y": {"B", "C"}}

	_ = mustResolve(t, groups, DefaultConfig())

	assert.Equal(t, LabelGroups{"x": {"A", "B"}, "y": {"B", "C"}}, groups)
}

func TestResolveRejectsUndefinedOptions(t *testing.T) {
	groups := LabelGroups{"x": {"A", "B"}}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero closure", func(c *Config) { c.Closure = 0 }, "closure"},
		{"closure out of range", func(c *Config) { c.Closure = ClosureTransitive + 1 }, "closure"},
		{"zero match mode", func(c *Config) { c.Match = 0 }, "match mode"},
		{"match mode out of range", func(c *Config) { c.Match = MatchIdenticalReferents + 1 }, "match mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			resolved, err := Resolve(groups, cfg)
			require.ErrorIs(t, err, ErrInvalidOption)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, resolved)
		})
	}
}

func TestInvertUndefinedMode(t *testing.T) {
	assert.Empty(t, Invert(LabelGroups{"x": {"A", "B"}}, 0))
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind()
	uf.union("c", "b")
	uf.union("b", "a")
	uf.add("z")

	assert.Equal(t, "a", uf.find("c"))
	assert.Equal(t, "a", uf.find("b"))
	assert.Equal(t, "z", uf.find("z"))
}

func TestEnumParsing(t *testing.T) {
	s, err := ParsePairStrategy("All-Pairs")
	assert.NoError(t, err)
	assert.Equal(t, PairAll, s)

	c, err := ParseClosure("transitive")
	assert.NoError(t, err)
	assert.Equal(t, ClosureTransitive, c)

	m, err := ParseMatchMode("identical-referents")
	assert.NoError(t, err)
	assert.Equal(t, MatchIdenticalReferents, m)

	_, err = ParsePairStrategy("exhaustive")
	assert.Error(t, err)
	_, err = ParseClosure("")
	assert.Error(t, err)
	_, err = ParseMatchMode("fuzzy")
	assert.Error(t, err)

	assert.Equal(t, "windowed", PairWindowed.String())
	assert.Equal(t, "one-hop", ClosureOneHop.String())
	assert.Equal(t, "PairStrategy(0)", PairStrategy(0).String())
}
