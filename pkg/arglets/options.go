package arglets

import (
	"path"
	"regexp"
	"strings"
)

// optionMatcher couples a compiled option pattern with the capture groups
// that hold the option's values. All patterns are anchored at the start of
// the unconsumed argument text; the full-match length is what the owning
// arglet reports as consumed.
type optionMatcher struct {
	re *regexp.Regexp
	// nameGroup and valueGroup index into the submatches; a zero index
	// means the pattern has no such group.
	nameGroup  int
	valueGroup int
}

// pathValueMatchers builds the matchers for an option that takes one path
// value, given the option's spelling (e.g. "-I" or "-isystem"). The value
// may be joined to the option or follow as a separate token, and may be
// wrapped in double quotes to allow embedded whitespace.
func pathValueMatchers(spelling string) []optionMatcher {
	opt := regexp.QuoteMeta(spelling)
	return []optionMatcher{
		{re: regexp.MustCompile(`^` + opt + `\s*"([^"]+)"`), valueGroup: 1},
		{re: regexp.MustCompile(`^` + opt + `\s*([^\s"]+)`), valueGroup: 1},
	}
}

// macroName matches a C preprocessor macro name, optionally function-like.
const macroName = `([A-Za-z_]\w*(?:\([^)]*\))?)`

// resolveAgainstCWD resolves a relative path against the compiler's working
// directory. Build logs record the working directory in forward-slash
// notation regardless of host OS, so joining uses the slash-separated path
// rules. Absolute paths, including Windows drive paths and UNC paths, are
// returned unchanged; no filesystem access happens here.
func resolveAgainstCWD(cwd, p string) string {
	if p == "" || cwd == "" || isAbsPath(p) {
		return p
	}
	return path.Join(cwd, p)
}

func isAbsPath(p string) bool {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return true
	}
	return len(p) >= 3 && isDriveLetter(p[0]) && p[1] == ':' && (p[2] == '/' || p[2] == '\\')
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IncludePathArglet recognizes options that add one include search
// directory, such as -I, -isystem, -iquote or MSVC /I. Relative directories
// are resolved against the compiler's working directory.
type IncludePathArglet struct {
	matchers []optionMatcher
}

// NewIncludePathArglet creates an include path arglet for the given option
// spellings.
func NewIncludePathArglet(spellings ...string) *IncludePathArglet {
	a := &IncludePathArglet{}
	for _, s := range spellings {
		a.matchers = append(a.matchers, pathValueMatchers(s)...)
	}
	return a
}

func (a *IncludePathArglet) Process(ctx *ParseContext, cwd, args string) int {
	for _, m := range a.matchers {
		if sub := m.re.FindStringSubmatch(args); sub != nil {
			ctx.AddSettingEntry(IncludePathEntry(resolveAgainstCWD(cwd, sub[m.valueGroup])))
			return len(sub[0])
		}
	}
	return 0
}

// MacroDefineArglet recognizes macro definition options such as -D and
// MSVC /D: a bare name, name=value, or name="quoted value". A bare name
// defines the macro with the value 1, matching the preprocessor convention.
type MacroDefineArglet struct {
	matchers []optionMatcher
}

// NewMacroDefineArglet creates a macro definition arglet for the given
// option spellings.
func NewMacroDefineArglet(spellings ...string) *MacroDefineArglet {
	a := &MacroDefineArglet{}
	for _, s := range spellings {
		opt := regexp.QuoteMeta(s)
		a.matchers = append(a.matchers,
			optionMatcher{re: regexp.MustCompile(`^` + opt + `\s*` + macroName + `="([^"]*)"`), nameGroup: 1, valueGroup: 2},
			optionMatcher{re: regexp.MustCompile(`^` + opt + `\s*` + macroName + `=([^\s"]*)`), nameGroup: 1, valueGroup: 2},
			optionMatcher{re: regexp.MustCompile(`^` + opt + `\s*` + macroName), nameGroup: 1, valueGroup: 0},
		)
	}
	return a
}

func (a *MacroDefineArglet) Process(ctx *ParseContext, cwd, args string) int {
	for _, m := range a.matchers {
		sub := m.re.FindStringSubmatch(args)
		if sub == nil {
			continue
		}
		value := "1"
		if m.valueGroup != 0 {
			value = sub[m.valueGroup]
		}
		ctx.AddSettingEntry(MacroEntry(sub[m.nameGroup], value))
		return len(sub[0])
	}
	return 0
}

// MacroUndefArglet recognizes macro removal options such as -U and MSVC /U.
type MacroUndefArglet struct {
	matchers []optionMatcher
}

// NewMacroUndefArglet creates a macro removal arglet for the given option
// spellings.
func NewMacroUndefArglet(spellings ...string) *MacroUndefArglet {
	a := &MacroUndefArglet{}
	for _, s := range spellings {
		opt := regexp.QuoteMeta(s)
		a.matchers = append(a.matchers,
			optionMatcher{re: regexp.MustCompile(`^` + opt + `\s*` + macroName), nameGroup: 1},
		)
	}
	return a
}

func (a *MacroUndefArglet) Process(ctx *ParseContext, cwd, args string) int {
	for _, m := range a.matchers {
		if sub := m.re.FindStringSubmatch(args); sub != nil {
			ctx.AddSettingEntry(MacroUndefEntry(sub[m.nameGroup]))
			return len(sub[0])
		}
	}
	return 0
}

// BuiltinFlagArglet recognizes arguments that affect which macros and
// include paths the compiler reports as built-in. The matched text is
// recorded verbatim so the collaborator that queries the compiler can
// replay it exactly as it appeared.
type BuiltinFlagArglet struct {
	res []*regexp.Regexp
}

// NewBuiltinFlagArglet creates a built-ins flag arglet from anchored
// pattern fragments; each fragment must match one whole argument.
func NewBuiltinFlagArglet(patterns ...string) *BuiltinFlagArglet {
	a := &BuiltinFlagArglet{}
	for _, p := range patterns {
		a.res = append(a.res, regexp.MustCompile(`^`+p))
	}
	return a
}

func (a *BuiltinFlagArglet) Process(ctx *ParseContext, cwd, args string) int {
	for _, re := range a.res {
		if m := re.FindString(args); m != "" {
			ctx.AddBuiltinDetectionArg(m)
			return len(m)
		}
	}
	return 0
}
