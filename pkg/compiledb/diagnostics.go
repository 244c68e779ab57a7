package compiledb

import "fmt"

// DiagnosticKind classifies per-record processing diagnostics.
type DiagnosticKind int

const (
	// DiagStructural marks a record missing one of the required file,
	// command or directory fields. The record is skipped.
	DiagStructural DiagnosticKind = iota
	// DiagUnrecognizedTool marks a record whose command matched no
	// registered tool. The record is skipped.
	DiagUnrecognizedTool
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagStructural:
		return "structural-error"
	case DiagUnrecognizedTool:
		return "unrecognized-tool"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a structured per-record message. Diagnostics are data
// handed back to the caller; no record problem is fatal to a run, and
// nothing unwinds past the per-record boundary.
type Diagnostic struct {
	Kind   DiagnosticKind
	File   string
	Detail string
}

func (d Diagnostic) String() string {
	file := d.File
	if file == "" {
		file = "<unknown file>"
	}
	return fmt.Sprintf("%s: %s: %s", file, d.Kind, d.Detail)
}
