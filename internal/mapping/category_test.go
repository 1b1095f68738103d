package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineCategories(t *testing.T) {
	tests := []struct {
		name     string
		tags     []Category
		expected Category
	}{
		{"both", []Category{CategoryLexical, CategoryLogical}, CategoryLexicalLogical},
		{"lexical only", []Category{CategoryLexical, ""}, CategoryLexical},
		{"logical only", []Category{"", CategoryLogical}, CategoryLogical},
		{"none", []Category{"", ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CombineCategories(tt.tags...))
		})
	}
}

func TestJustification(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{CategoryLexical, "semapv:LexicalMatching"},
		{CategoryLogical, "semapv:LogicalMatching"},
		{CategoryLexicalLogical, "semapv:LexicalAndLogicalMatching"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got, err := Justification(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestJustificationUnexpected(t *testing.T) {
	for _, c := range []Category{"", "logical-lexical", "nan", "lexical-nan"} {
		_, err := Justification(c)
		require.Error(t, err, "category %q", c)
		assert.ErrorIs(t, err, ErrUnexpectedCategory)
	}
}
