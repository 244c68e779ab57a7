package detect

import (
	"fmt"
	"strings"

	"buildscan/pkg/arglets"
	"buildscan/pkg/utils"
)

// DefaultVersionPattern is the version-suffix regex used when no custom
// pattern is configured: a dot-separated numeric suffix, optionally
// prefixed with a dash (gcc-4.8, clang-14, icc.19.0).
const DefaultVersionPattern = `-?\d+(\.\d+)*`

// Options control one detection pass.
type Options struct {
	// VersionMatching enables the expensive basename+version strategies.
	VersionMatching bool
	// VersionPattern overrides DefaultVersionPattern; empty means unset.
	VersionPattern string
	// MatchBackslash enables matching backslash-separated command paths,
	// for build logs produced on platforms where \ separates path
	// components.
	MatchBackslash bool
	// ShortPathExpander, when non-nil, expands an NTFS 8.3 short path to
	// its long form, returning the input unchanged if it cannot. The
	// expansion source (Windows API, a recorded mapping, ...) is the
	// caller's concern; detection itself performs no I/O.
	ShortPathExpander func(path string) string
}

// EffectiveVersionPattern returns the configured version pattern, falling
// back to DefaultVersionPattern when unset.
func (o Options) EffectiveVersionPattern() string {
	if o.VersionPattern == "" {
		return DefaultVersionPattern
	}
	return o.VersionPattern
}

// DetectionOutcome is the result of a successful detection: the matched
// detector, the strategy that matched, and the decomposed command line. It
// is produced per call and not retained.
type DetectionOutcome struct {
	Detector *ToolDetector
	Strategy DetectionStrategy
	Match    MatchResult
}

// Registry is an ordered collection of tool detectors. It is built once
// and treated as read-only configuration afterwards; a registry may be
// shared across engine instances.
type Registry struct {
	detectors []*ToolDetector
}

// NewRegistry creates a registry holding the given detectors in order.
func NewRegistry(detectors ...*ToolDetector) *Registry {
	return &Registry{detectors: detectors}
}

// Add appends a detector. Registration order is scan order within each
// strategy pass.
func (r *Registry) Add(d *ToolDetector) {
	r.detectors = append(r.detectors, d)
}

// Detectors returns the registered detectors in registration order.
func (r *Registry) Detectors() []*ToolDetector {
	return r.detectors
}

// Determine scans the whole registry for a detector matching the command
// line. All cheap exact-name probes run across every detector before any
// expensive version probe is attempted. When the literal line matches
// nothing and a short-path expander is configured, the scan is repeated on
// the line with 8.3 segments expanded, restricted to detectors that opted
// into NTFS path handling. A nil result means no tool was recognized; that
// is a first-class outcome, not an error.
func (r *Registry) Determine(line string, opts Options) *DetectionOutcome {
	if out := r.scan(line, opts, nil); out != nil {
		return out
	}
	if opts.ShortPathExpander == nil {
		return nil
	}
	expanded, changed := expandCommandPath(line, opts.ShortPathExpander)
	if !changed {
		return nil
	}
	return r.scan(expanded, opts, (*ToolDetector).HandlesNtfsPaths)
}

func (r *Registry) scan(line string, opts Options, eligible func(*ToolDetector) bool) *DetectionOutcome {
	type probe struct {
		strategy DetectionStrategy
		match    func(*ToolDetector) *MatchResult
	}

	probes := []probe{
		{StrategyBasename, func(d *ToolDetector) *MatchResult {
			return d.BasenameMatches(line, opts.MatchBackslash)
		}},
		{StrategyWithExtension, func(d *ToolDetector) *MatchResult {
			return d.BasenameWithExtensionMatches(line, opts.MatchBackslash)
		}},
	}
	if opts.VersionMatching {
		pattern := opts.EffectiveVersionPattern()
		probes = append(probes,
			probe{StrategyWithVersion, func(d *ToolDetector) *MatchResult {
				return d.BasenameWithVersionMatches(line, opts.MatchBackslash, pattern)
			}},
			probe{StrategyWithVersionExtension, func(d *ToolDetector) *MatchResult {
				return d.BasenameWithVersionAndExtensionMatches(line, opts.MatchBackslash, pattern)
			}},
		)
	}

	for _, p := range probes {
		for _, d := range r.detectors {
			if eligible != nil && !eligible(d) {
				continue
			}
			if m := p.match(d); m != nil {
				return &DetectionOutcome{Detector: d, Strategy: p.strategy, Match: *m}
			}
		}
	}
	return nil
}

// DocString returns a human readable description of the registered tools.
func (r *Registry) DocString() string {
	lines := utils.Map(r.detectors, func(d *ToolDetector) string {
		ntfs := ""
		if d.HandlesNtfsPaths() {
			ntfs = ", ntfs paths"
		}
		return fmt.Sprintf("  %-10s language=%s builtins=%s%s",
			d.Name(), d.Parser().Language(), d.Parser().Builtins(), ntfs)
	})

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Registered tools (%d, in scan order):\n", len(r.detectors)))
	builder.WriteString(utils.FormatSlice(lines, "\n"))
	return builder.String()
}

// DefaultRegistry returns the built-in tool set. Argument parsers are
// shared between the detectors of one tool family; both parsers and
// detectors are immutable after this call.
func DefaultRegistry() *Registry {
	gnuC := arglets.NewToolArgsParser("c", arglets.BuiltinsGcc, arglets.GnuArglets()...)
	gnuCxx := arglets.NewToolArgsParser("c++", arglets.BuiltinsGcc, arglets.GnuArglets()...)
	clangC := arglets.NewToolArgsParser("c", arglets.BuiltinsClang, arglets.GnuArglets()...)
	clangCxx := arglets.NewToolArgsParser("c++", arglets.BuiltinsClang, arglets.GnuArglets()...)
	nvcc := arglets.NewToolArgsParser("c++", arglets.BuiltinsNvcc, arglets.GnuArglets()...)
	msvc := arglets.NewToolArgsParser("c++", arglets.BuiltinsNone, arglets.MsvcArglets()...)

	return NewRegistry(
		NewToolDetector("cc", gnuC, false),
		NewToolDetector("gcc", gnuC, false),
		NewToolDetector("c++", gnuCxx, false),
		NewToolDetector("g++", gnuCxx, false),
		NewToolDetector("clang", clangC, false),
		NewToolDetector("clang++", clangCxx, false),
		NewToolDetector("icc", gnuC, false),
		NewToolDetector("icpc", gnuCxx, false),
		NewToolDetector("nvcc", nvcc, false),
		NewToolDetector("cl", msvc, true),
	)
}
