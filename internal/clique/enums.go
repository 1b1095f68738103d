package clique

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOption is returned when an enum value is outside its defined range.
var ErrInvalidOption = errors.New("invalid clique option")

//go:generate go tool stringer -type=PairStrategy,Closure,MatchMode -linecomment -output=enums_string.go

// PairStrategy selects how a resolved group is turned into pairs.
type PairStrategy int

const (
	_ PairStrategy = iota // zero value is invalid

	// PairWindowed pairs consecutive elements two at a time: (a,b),(c,d),...
	// An odd trailing element contributes nothing.
	PairWindowed // windowed
	// PairAll pairs every element with every other element.
	PairAll // all-pairs
)

// Closure selects how far merge partners are followed.
type Closure int

const (
	_ Closure = iota // zero value is invalid

	// ClosureOneHop folds only the direct partners of a label into its group.
	ClosureOneHop // one-hop
	// ClosureTransitive folds every label reachable through partners.
	ClosureTransitive // transitive
)

// MatchMode selects when two labels are merge partners.
type MatchMode int

const (
	_ MatchMode = iota // zero value is invalid

	// MatchSharedReferent merges labels that share at least one IRI.
	MatchSharedReferent // shared-referent
	// MatchIdenticalReferents merges labels whose IRI sets are equal.
	MatchIdenticalReferents // identical-referents
)

// ParsePairStrategy parses the String form of a PairStrategy.
func ParsePairStrategy(s string) (PairStrategy, error) {
	for v := PairWindowed; v <= PairAll; v++ {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("unknown pair strategy %q (want %s or %s)", s, PairWindowed, PairAll)
}

// ParseClosure parses the String form of a Closure.
func ParseClosure(s string) (Closure, error) {
	for v := ClosureOneHop; v <= ClosureTransitive; v++ {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("unknown closure %q (want %s or %s)", s, ClosureOneHop, ClosureTransitive)
}

// ParseMatchMode parses the String form of a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	for v := MatchSharedReferent; v <= MatchIdenticalReferents; v++ {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("unknown match mode %q (want %s or %s)", s, MatchSharedReferent, MatchIdenticalReferents)
}
