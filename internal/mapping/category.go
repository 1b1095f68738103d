package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the provenance of a mapping: which evidence paths produced it.
type Category string

const (
	CategoryLexical        Category = "lexical"
	CategoryLogical        Category = "logical"
	CategoryLexicalLogical Category = "lexical-logical"
)

// ErrUnexpectedCategory is returned for a provenance combination that has no
// justification code.
var ErrUnexpectedCategory = errors.New("unexpected mapping category")

// CombineCategories concatenates the present tags in order, skipping empty
// ones. Lexical evidence is always passed before logical evidence, so both
// present yields "lexical-logical".
func CombineCategories(tags ...Category) Category {
	parts := make([]string, 0, len(tags))

	for _, t := range tags {
		if t == "" {
			continue
		}

		parts = append(parts, string(t))
	}

	return Category(strings.Join(parts, "-"))
}

// Justification returns the SEMAPV justification code for a category.
func Justification(c Category) (string, error) {
	switch c {
	case CategoryLexical:
		return JustificationLexical, nil
	case CategoryLogical:
		return JustificationLogical, nil
	case CategoryLexicalLogical:
		return JustificationLexicalLogical, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnexpectedCategory, string(c))
}
