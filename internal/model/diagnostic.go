package model

import "fmt"

// DiagnosticKind classifies a recovered (or fatal) problem seen during a run.
type DiagnosticKind string

const (
	UnresolvedQuestion  DiagnosticKind = "UNRESOLVED_QUESTION"
	MalformedVendorItem DiagnosticKind = "MALFORMED_VENDOR_ITEM"
	UnreadableSource    DiagnosticKind = "UNREADABLE_SOURCE"
	EmptyTaxonomy       DiagnosticKind = "EMPTY_TAXONOMY"
	NoVendorData        DiagnosticKind = "NO_VENDOR_DATA"
)

type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Vendor   string         `json:"vendor,omitempty"`
	Source   string         `json:"source,omitempty"`
	Question string         `json:"question,omitempty"`
	Item     string         `json:"item,omitempty"`
	Message  string         `json:"message"`
}

func (d Diagnostic) String() string {
	s := string(d.Kind)
	if d.Vendor != "" {
		s += fmt.Sprintf(" vendor=%q", d.Vendor)
	}
	if d.Source != "" {
		s += fmt.Sprintf(" source=%q", d.Source)
	}
	if d.Question != "" {
		s += fmt.Sprintf(" question=%q", d.Question)
	}
	if d.Item != "" {
		s += fmt.Sprintf(" item=%s", d.Item)
	}
	return s + ": " + d.Message
}
