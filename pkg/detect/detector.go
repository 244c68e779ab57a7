// Package detect identifies which compiler or tool produced a raw build
// command line and hands the remaining argument text to the tool's
// argument parser. Detection is pure in-memory string processing; nothing
// here touches the filesystem or runs a process.
package detect

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"buildscan/pkg/arglets"
	"buildscan/pkg/cmdline"
)

// DetectionStrategy is one of the naming conventions a tool's basename is
// tested under.
type DetectionStrategy int

const (
	// StrategyBasename matches the exact tool name.
	StrategyBasename DetectionStrategy = iota
	// StrategyWithExtension matches the tool name with an optional
	// executable extension.
	StrategyWithExtension
	// StrategyWithVersion matches the tool name followed by a version
	// suffix.
	StrategyWithVersion
	// StrategyWithVersionExtension matches the tool name followed by a
	// version suffix and an optional executable extension.
	StrategyWithVersionExtension
)

func (s DetectionStrategy) String() string {
	switch s {
	case StrategyBasename:
		return "basename"
	case StrategyWithExtension:
		return "basename+extension"
	case StrategyWithVersion:
		return "basename+version"
	case StrategyWithVersionExtension:
		return "basename+version+extension"
	}
	return fmt.Sprintf("DetectionStrategy(%d)", int(s))
}

// MarshalText renders the strategy name, for JSON reports.
func (s DetectionStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MatchResult is the decomposition of a successfully matched command line:
// the de-quoted leading command token and the unparsed remainder. Arguments
// starts right after the command token (path prefix included), so
// re-concatenating Command and Arguments reproduces the input modulo the
// command's original quoting.
type MatchResult struct {
	Command   string
	Arguments string
}

// ToolDetector describes how to recognize one tool's invocation name in a
// command line under the four naming conventions, and which argument parser
// applies once the tool is recognized. Detectors are built once at
// registry-initialization time and are read-only afterwards.
type ToolDetector struct {
	name      string
	parser    *arglets.ToolArgsParser
	ntfsPaths bool
}

// NewToolDetector creates a detector for the given exact tool name.
// handlesNtfsPaths enables the additional matching attempt on a command
// path with NTFS 8.3 short segments expanded.
func NewToolDetector(name string, parser *arglets.ToolArgsParser, handlesNtfsPaths bool) *ToolDetector {
	return &ToolDetector{name: name, parser: parser, ntfsPaths: handlesNtfsPaths}
}

// Name returns the exact tool name the detector matches.
func (d *ToolDetector) Name() string { return d.name }

// Parser returns the argument parser for the detected tool.
func (d *ToolDetector) Parser() *arglets.ToolArgsParser { return d.parser }

// HandlesNtfsPaths reports whether the detection logic may retry this
// detector on a command path with 8.3 short segments expanded.
func (d *ToolDetector) HandlesNtfsPaths() bool { return d.ntfsPaths }

// BasenameMatches tests the command line's trailing path component against
// the exact tool name. Name comparison is exact on forward-slash paths and
// case-insensitive when backslash matching is enabled, since NTFS file
// names are case-insensitive.
func (d *ToolDetector) BasenameMatches(line string, matchBackslash bool) *MatchResult {
	return d.probe(line, matchBackslash, func(bn string) bool {
		return equalName(bn, d.name, matchBackslash)
	})
}

// BasenameWithExtensionMatches tests like BasenameMatches but also accepts
// an executable extension after the name. The extension comparison is
// always case-insensitive.
func (d *ToolDetector) BasenameWithExtensionMatches(line string, matchBackslash bool) *MatchResult {
	return d.probe(line, matchBackslash, func(bn string) bool {
		return d.nameWithOptionalExt(bn, matchBackslash)
	})
}

// BasenameWithVersionMatches tests the trailing path component against the
// tool name immediately followed by the given version regex fragment,
// anchored so the whole basename is consumed. This is the expensive probe:
// the combined pattern is compiled on first use and memoized afterwards.
// An invalid version regex never matches.
func (d *ToolDetector) BasenameWithVersionMatches(line string, matchBackslash bool, versionRegex string) *MatchResult {
	re := versionedNamePattern(d.name, versionRegex, false, matchBackslash)
	if re == nil {
		return nil
	}
	return d.probe(line, matchBackslash, re.MatchString)
}

// BasenameWithVersionAndExtensionMatches tests like
// BasenameWithVersionMatches but also accepts an executable extension after
// the version suffix.
func (d *ToolDetector) BasenameWithVersionAndExtensionMatches(line string, matchBackslash bool, versionRegex string) *MatchResult {
	re := versionedNamePattern(d.name, versionRegex, true, matchBackslash)
	if re == nil {
		return nil
	}
	return d.probe(line, matchBackslash, re.MatchString)
}

// MatchUsing re-runs one specific strategy, as the engine does when it
// retries its cached detection.
func (d *ToolDetector) MatchUsing(strategy DetectionStrategy, line string, matchBackslash bool, versionRegex string) *MatchResult {
	switch strategy {
	case StrategyBasename:
		return d.BasenameMatches(line, matchBackslash)
	case StrategyWithExtension:
		return d.BasenameWithExtensionMatches(line, matchBackslash)
	case StrategyWithVersion:
		return d.BasenameWithVersionMatches(line, matchBackslash, versionRegex)
	case StrategyWithVersionExtension:
		return d.BasenameWithVersionAndExtensionMatches(line, matchBackslash, versionRegex)
	}
	return nil
}

// probe splits the command line and tests its basename. On success the
// returned Arguments is everything after the whole path token; the path
// prefix is discarded together with the tool name.
func (d *ToolDetector) probe(line string, matchBackslash bool, match func(basename string) bool) *MatchResult {
	command, rest, ok := cmdline.SplitCommand(line)
	if !ok {
		return nil
	}
	if !match(basename(command, matchBackslash)) {
		return nil
	}
	return &MatchResult{Command: command, Arguments: rest}
}

func (d *ToolDetector) nameWithOptionalExt(bn string, matchBackslash bool) bool {
	if equalName(bn, d.name, matchBackslash) {
		return true
	}
	if len(bn) <= len(d.name) {
		return false
	}
	return equalName(bn[:len(d.name)], d.name, matchBackslash) &&
		strings.EqualFold(bn[len(d.name):], ".exe")
}

func equalName(basename, name string, matchBackslash bool) bool {
	if matchBackslash {
		return strings.EqualFold(basename, name)
	}
	return basename == name
}

// basename returns the trailing path component of a command token, split
// on forward slashes and, when matchBackslash is set, also on backslashes.
func basename(command string, matchBackslash bool) string {
	if i := strings.LastIndexByte(command, '/'); i >= 0 {
		command = command[i+1:]
	}
	if matchBackslash {
		if i := strings.LastIndexByte(command, '\\'); i >= 0 {
			command = command[i+1:]
		}
	}
	return command
}

// versionedNamePatterns memoizes the compiled name+version matchers so the
// expensive detection path does not recompile a pattern per call. The
// registry holding the detectors may be shared read-only across engines,
// hence the lock. Entries that failed to compile are cached as nil.
var versionedNamePatterns = struct {
	sync.Mutex
	compiled map[string]*regexp.Regexp
}{compiled: map[string]*regexp.Regexp{}}

func versionedNamePattern(name, versionRegex string, withExtension, caseInsensitive bool) *regexp.Regexp {
	expr := `^` + regexp.QuoteMeta(name) + `(?:` + versionRegex + `)`
	if withExtension {
		expr += `(?i:\.exe)?`
	}
	expr += `$`
	if caseInsensitive {
		expr = `(?i)` + expr
	}

	c := &versionedNamePatterns
	c.Lock()
	defer c.Unlock()
	if re, seen := c.compiled[expr]; seen {
		return re
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		re = nil
	}
	c.compiled[expr] = re
	return re
}
