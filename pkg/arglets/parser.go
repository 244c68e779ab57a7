package arglets

import (
	"buildscan/pkg/cmdline"
)

// BuiltinsKind identifies how a detected tool must be queried for its
// built-in macros and include paths. Running that query is a collaborator's
// job; this layer only decides which style of query applies.
type BuiltinsKind string

const (
	// BuiltinsNone marks tools that cannot be queried for built-ins.
	BuiltinsNone BuiltinsKind = "none"
	// BuiltinsGcc marks tools that answer `-E -P -dM` style queries.
	BuiltinsGcc BuiltinsKind = "gcc"
	// BuiltinsClang marks clang-family tools.
	BuiltinsClang BuiltinsKind = "clang"
	// BuiltinsNvcc marks the CUDA compiler driver.
	BuiltinsNvcc BuiltinsKind = "nvcc"
)

// ParseResult holds everything extracted from one argument string.
type ParseResult struct {
	Entries     []SettingsEntry
	BuiltinArgs []string
}

// ToolArgsParser drains an argument string through an ordered chain of
// arglets. Parsers are built once per tool at registry-initialization time
// and are safe for shared read-only use; all per-call state lives in the
// cursor and the ParseContext.
type ToolArgsParser struct {
	language string
	builtins BuiltinsKind
	arglets  []Arglet
}

// NewToolArgsParser creates a parser for one tool's argument syntax. The
// arglets are tried in the given order at every cursor position, so more
// specific option spellings must precede prefixes of themselves (-isystem
// before -I).
func NewToolArgsParser(language string, builtins BuiltinsKind, arglets ...Arglet) *ToolArgsParser {
	return &ToolArgsParser{
		language: language,
		builtins: builtins,
		arglets:  arglets,
	}
}

// Language returns the source language the tool compiles ("c" or "c++").
func (p *ToolArgsParser) Language() string {
	return p.language
}

// Builtins returns the built-ins query style of the tool.
func (p *ToolArgsParser) Builtins() BuiltinsKind {
	return p.builtins
}

// ProcessArgs parses an argument string and returns the extracted settings.
// At each position the remaining suffix is offered to every arglet in chain
// order until one claims a positive span; fragments no arglet claims are
// skipped to the next quote-aware token boundary and dropped silently.
// Parsing the same (cwd, argsLine) twice yields identical results.
func (p *ToolArgsParser) ProcessArgs(cwd, argsLine string) ParseResult {
	ctx := &ParseContext{}
	args := cmdline.TrimLeadingWS(argsLine)
	for args != "" {
		consumed := 0
		for _, arglet := range p.arglets {
			if n := safeProcess(arglet, ctx, cwd, args); n > 0 {
				consumed = n
				break
			}
		}
		if consumed == 0 {
			// unrecognized fragment, drop one token
			consumed = cmdline.SkipToken(args)
		}
		if consumed > len(args) {
			consumed = len(args)
		}
		args = cmdline.TrimLeadingWS(args[consumed:])
	}
	return ParseResult{Entries: ctx.Entries(), BuiltinArgs: ctx.BuiltinArgs()}
}

// safeProcess offers the input to one arglet. An arglet that panics on
// malformed input counts as having declined, so one bad flag cannot abort
// extraction of the rest of the line. Entries an arglet emitted before
// panicking or declining are rolled back; only an arglet that claims a
// positive span may leave settings behind.
func safeProcess(a Arglet, ctx *ParseContext, cwd, args string) (consumed int) {
	entries, builtinArgs := len(ctx.entries), len(ctx.builtinArgs)
	defer func() {
		if recover() != nil {
			consumed = 0
		}
		if consumed <= 0 {
			ctx.entries = ctx.entries[:entries]
			ctx.builtinArgs = ctx.builtinArgs[:builtinArgs]
		}
	}()
	return a.Process(ctx, cwd, args)
}
