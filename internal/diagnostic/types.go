package diagnostic

import (
	"fmt"
	"strings"

	"phenio-toolkit/internal/common"
)

// Diagnostics holds the non-fatal findings of a run. Fatal conditions are
// returned as errors by the stage that hits them.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Subject identifies the term (IRI or label) this relates to (if any).
	Subject string
	// Object identifies the second term of a pair (if any).
	Object string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
)

// Well-known diagnostic codes.
const (
	CodeEmptyLabel         = "empty_label"
	CodeMergedNamespace    = "merged_namespace"
	CodeMultipleLabels     = "multiple_labels"
	CodeProblematicPair    = "problematic_pair"
	CodeLogicalSelfPair    = "logical_self_pair"
	CodeCompactionFallback = "compaction_fallback"
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject, object string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Object:   object,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, subject, object string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Object:   object,
	})
}

// Counts returns the number of diagnostics per code across all severities.
func (d *Diagnostics) Counts() map[string]int {
	counts := make(map[string]int)

	for _, group := range [][]Diagnostic{d.Warnings, d.Infos} {
		for _, diag := range group {
			counts[diag.Code]++
		}
	}

	return counts
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string

	switch {
	case d.Subject != "" && d.Object != "":
		prefix = append(prefix, "["+d.Subject+" -> "+d.Object+"]")
	case d.Subject != "":
		prefix = append(prefix, d.Subject)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
