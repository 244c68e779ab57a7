package compiledb

import (
	"fmt"

	"buildscan/pkg/arglets"
	"buildscan/pkg/cmdline"
	"buildscan/pkg/detect"
)

// Result is everything extracted from one accepted record: the detected
// tool identity and the decomposed argument facts. Command is the
// de-quoted command token, kept so a collaborator can invoke the same
// compiler binary when querying its built-in macros and include paths, and
// BuiltinArgs are the verbatim argument substrings to replay in that query.
type Result struct {
	File        string
	Tool        string
	Command     string
	Strategy    detect.DetectionStrategy
	Language    string
	Builtins    arglets.BuiltinsKind
	Entries     []arglets.SettingsEntry
	BuiltinArgs []string
}

// Processor runs the detection engine over build log records. Like the
// engine it owns, a processor serves one sequential caller; use one
// processor per worker for parallel traversals.
type Processor struct {
	engine *detect.Engine
}

// NewProcessor creates a processor around a detection engine.
func NewProcessor(engine *detect.Engine) *Processor {
	return &Processor{engine: engine}
}

// ProcessRecord validates and processes one record. Exactly one of the
// returned values is non-nil: a Result for an accepted record, or a
// Diagnostic for a rejected one.
func (p *Processor) ProcessRecord(rec CompileCommand) (*Result, *Diagnostic) {
	if rec.File == "" || rec.Command == "" || rec.Directory == "" {
		return nil, &Diagnostic{
			Kind:   DiagStructural,
			File:   rec.File,
			Detail: "record must carry non-empty file, command and directory fields",
		}
	}

	outcome := p.engine.Detect(rec.Command)
	if outcome == nil {
		return nil, &Diagnostic{
			Kind:   DiagUnrecognizedTool,
			File:   rec.File,
			Detail: fmt.Sprintf("no registered tool matches command %q", rec.Command),
		}
	}

	parser := outcome.Detector.Parser()
	parsed := parser.ProcessArgs(rec.Directory, cmdline.TrimLeadingWS(outcome.Match.Arguments))

	return &Result{
		File:        rec.File,
		Tool:        outcome.Detector.Name(),
		Command:     outcome.Match.Command,
		Strategy:    outcome.Strategy,
		Language:    parser.Language(),
		Builtins:    parser.Builtins(),
		Entries:     parsed.Entries,
		BuiltinArgs: parsed.BuiltinArgs,
	}, nil
}

// ProcessAll processes every record in order and collects results and
// diagnostics. One bad record never aborts the remaining ones.
func (p *Processor) ProcessAll(records []CompileCommand) ([]Result, []Diagnostic) {
	var results []Result
	var diags []Diagnostic
	for _, rec := range records {
		res, diag := p.ProcessRecord(rec)
		if diag != nil {
			diags = append(diags, *diag)
			continue
		}
		results = append(results, *res)
	}
	return results, diags
}
