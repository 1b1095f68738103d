package lexical

import (
	"fmt"
	"regexp"
	"strings"

	"phenio-toolkit/internal/diagnostic"
	"phenio-toolkit/internal/mapping"
)

// AbnormalPrefix is prepended to every label a stop phrase was removed from.
const AbnormalPrefix = "abnormal "

// DefaultStopPhrases returns the phenotypic-effect terms in their default
// precedence. "abnormally" precedes "abnormal" so the longer form wins.
func DefaultStopPhrases() []string {
	return []string{"abnormally", "abnormal", "aberrant", "variant"}
}

var sourceTagPattern = regexp.MustCompile(`\([A-Z]+\)`)

// Normalizer builds comparison keys from raw labels.
type Normalizer struct {
	stopPhrases     []string
	excludePrefixes []string
}

// NewNormalizer creates a Normalizer. Stop phrases are checked in the given
// order and the first one contained in a label wins. IRIs starting with any
// of excludePrefixes are dropped by NormalizeRecords.
func NewNormalizer(stopPhrases []string, excludePrefixes ...string) *Normalizer {
	return &Normalizer{
		stopPhrases:     append([]string(nil), stopPhrases...),
		excludePrefixes: append([]string(nil), excludePrefixes...),
	}
}

// Normalize returns the comparison key for a raw label. An empty result
// means the label carries no usable key.
func (n *Normalizer) Normalize(raw string) string {
	s := sourceTagPattern.ReplaceAllString(raw, "")
	s = strings.ToLower(s)
	s = keepLabelRunes(s)
	s = n.applyStopPhrase(s)

	return strings.Join(strings.Fields(s), " ")
}

// applyStopPhrase removes the first contained stop phrase and prefixes the
// result with "abnormal ". Later phrases are not consulted.
func (n *Normalizer) applyStopPhrase(s string) string {
	if s == "" {
		return s
	}

	for _, phrase := range n.stopPhrases {
		if phrase == "" || !strings.Contains(s, phrase) {
			continue
		}

		return AbnormalPrefix + strings.ReplaceAll(s, phrase, "")
	}

	return s
}

// keepLabelRunes drops everything except lowercase ASCII letters, digits,
// apostrophes and spaces.
func keepLabelRunes(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isLabelRune(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isLabelRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\'' || r == ' '
}

// Excluded reports whether an IRI lies in one of the excluded namespaces.
func (n *Normalizer) Excluded(iri string) bool {
	for _, prefix := range n.excludePrefixes {
		if strings.HasPrefix(iri, prefix) {
			return true
		}
	}

	return false
}

// NormalizeRecords normalizes every record and returns the distinct
// (iri, key) pairs in first-seen order. Dropped records are reported to
// diags when it is non-nil.
func (n *Normalizer) NormalizeRecords(
	records []mapping.LabelRecord,
	diags *diagnostic.Diagnostics,
) []mapping.NormalizedLabel {
	seen := make(map[mapping.NormalizedLabel]struct{}, len(records))
	out := make([]mapping.NormalizedLabel, 0, len(records))

	for _, rec := range records {
		if n.Excluded(rec.IRI) {
			if diags != nil {
				diags.AddInfo(diagnostic.CodeMergedNamespace,
					"term is in the merged-class namespace", rec.IRI, "")
			}

			continue
		}

		key := n.Normalize(rec.Label)
		if key == "" {
			if diags != nil {
				diags.AddInfo(diagnostic.CodeEmptyLabel,
					fmt.Sprintf("label %q is empty after normalization", rec.Label), rec.IRI, "")
			}

			continue
		}

		nl := mapping.NormalizedLabel{IRI: rec.IRI, Label: key}
		if _, ok := seen[nl]; ok {
			continue
		}

		seen[nl] = struct{}{}
		out = append(out, nl)
	}

	return out
}
