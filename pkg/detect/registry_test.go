package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildscan/pkg/arglets"
)

func TestDetermine_FindsToolByBasename(t *testing.T) {
	out := DefaultRegistry().Determine("/usr/bin/g++ -std=c++17 main.cpp", Options{})

	require.NotNil(t, out)
	assert.Equal(t, "g++", out.Detector.Name())
	assert.Equal(t, StrategyBasename, out.Strategy)
	assert.Equal(t, "/usr/bin/g++", out.Match.Command)
	assert.Equal(t, " -std=c++17 main.cpp", out.Match.Arguments)
}

func TestDetermine_NoMatchIsNil(t *testing.T) {
	reg := DefaultRegistry()

	assert.Nil(t, reg.Determine("not-a-compiler main.c", Options{}))
	assert.Nil(t, reg.Determine("", Options{}))
	assert.Nil(t, reg.Determine(`"unterminated quote`, Options{}))
}

func TestDetermine_VersionedNamesNeedVersionMatching(t *testing.T) {
	reg := DefaultRegistry()

	assert.Nil(t, reg.Determine("gcc-4.8 -c main.c", Options{}))

	out := reg.Determine("gcc-4.8 -c main.c", Options{VersionMatching: true})
	require.NotNil(t, out)
	assert.Equal(t, "gcc", out.Detector.Name())
	assert.Equal(t, StrategyWithVersion, out.Strategy)
}

func TestDetermine_ExactNameBeatsVersionSuffix(t *testing.T) {
	// every cheap exact probe runs across the whole registry before any
	// version probe, so a later detector named gcc-4 wins over gcc+version
	parser := arglets.NewToolArgsParser("c", arglets.BuiltinsGcc, arglets.GnuArglets()...)
	reg := NewRegistry(
		NewToolDetector("gcc", parser, false),
		NewToolDetector("gcc-4", parser, false),
	)

	out := reg.Determine("gcc-4 -c main.c", Options{VersionMatching: true})
	require.NotNil(t, out)
	assert.Equal(t, "gcc-4", out.Detector.Name())
	assert.Equal(t, StrategyBasename, out.Strategy)
}

func TestDetermine_ExtensionBeatsVersionSuffix(t *testing.T) {
	out := DefaultRegistry().Determine("gcc.exe -c main.c", Options{VersionMatching: true})

	require.NotNil(t, out)
	assert.Equal(t, StrategyWithExtension, out.Strategy)
}

func TestDetermine_RegistrationOrderBreaksTies(t *testing.T) {
	parser := arglets.NewToolArgsParser("c", arglets.BuiltinsGcc, arglets.GnuArglets()...)
	first := NewToolDetector("gcc", parser, false)
	second := NewToolDetector("gcc", parser, false)
	reg := NewRegistry(first, second)

	out := reg.Determine("gcc -c main.c", Options{})
	require.NotNil(t, out)
	assert.Same(t, first, out.Detector)
}

func TestDetermine_ShortPathExpansion(t *testing.T) {
	shortPath := `C:\PROGRA~1\MICROS~1\CL3F2A~1.EXE`
	longPath := `C:\Program Files\Microsoft Visual Studio\cl.exe`
	opts := Options{
		MatchBackslash: true,
		ShortPathExpander: func(p string) string {
			if p == shortPath {
				return longPath
			}
			return p
		},
	}

	out := DefaultRegistry().Determine(shortPath+" /DUNICODE main.cpp", opts)
	require.NotNil(t, out)
	assert.Equal(t, "cl", out.Detector.Name())
	assert.Equal(t, StrategyWithExtension, out.Strategy)
	assert.Equal(t, longPath, out.Match.Command)
	assert.Equal(t, " /DUNICODE main.cpp", out.Match.Arguments)
}

func TestDetermine_ShortPathRetryOnlyCoversOptedInDetectors(t *testing.T) {
	// gcc did not opt into NTFS path handling, so the expanded retry
	// must not consider it
	opts := Options{
		MatchBackslash: true,
		ShortPathExpander: func(string) string {
			return `C:\MinGW Tools\gcc.exe`
		},
	}

	assert.Nil(t, DefaultRegistry().Determine(`C:\MINGW~1\GCC~1.EXE -c main.c`, opts))
}

func TestDetermine_NoExpanderMeansNoRetry(t *testing.T) {
	opts := Options{MatchBackslash: true}

	assert.Nil(t, DefaultRegistry().Determine(`C:\PROGRA~1\CL3F2A~1.EXE main.cpp`, opts))
}

func TestDetermine_ExpanderNotConsultedWithoutShortSegments(t *testing.T) {
	calls := 0
	opts := Options{
		ShortPathExpander: func(p string) string {
			calls++
			return p
		},
	}

	assert.Nil(t, DefaultRegistry().Determine("not-a-compiler main.c", opts))
	assert.Equal(t, 0, calls)
}

func TestExpandCommandPath_RequotesPathsWithWhitespace(t *testing.T) {
	expander := func(string) string { return `C:\Program Files\cl.exe` }

	expanded, changed := expandCommandPath(`C:\PROGRA~1\cl.exe /DX main.cpp`, expander)
	assert.True(t, changed)
	assert.Equal(t, `"C:\Program Files\cl.exe" /DX main.cpp`, expanded)
}

func TestExpandCommandPath_UnchangedWhenExpansionFails(t *testing.T) {
	identity := func(p string) string { return p }

	_, changed := expandCommandPath(`C:\PROGRA~1\cl.exe main.cpp`, identity)
	assert.False(t, changed)
}

func TestEffectiveVersionPattern(t *testing.T) {
	assert.Equal(t, DefaultVersionPattern, Options{}.EffectiveVersionPattern())
	assert.Equal(t, `_v\d+`, Options{VersionPattern: `_v\d+`}.EffectiveVersionPattern())
}

func TestDefaultRegistry_CoversCommonToolchains(t *testing.T) {
	reg := DefaultRegistry()

	for line, tool := range map[string]string{
		"cc -c main.c":          "cc",
		"gcc -c main.c":         "gcc",
		"c++ -c main.cpp":       "c++",
		"g++ -c main.cpp":       "g++",
		"clang -c main.c":       "clang",
		"clang++ -c main.cpp":   "clang++",
		"icc -c main.c":         "icc",
		"icpc -c main.cpp":      "icpc",
		"nvcc -c kernel.cu":     "nvcc",
		"cl /DUNICODE main.cpp": "cl",
	} {
		out := reg.Determine(line, Options{})
		require.NotNil(t, out, line)
		assert.Equal(t, tool, out.Detector.Name(), line)
	}
}

func TestDefaultRegistry_DocStringListsEveryTool(t *testing.T) {
	reg := DefaultRegistry()
	doc := reg.DocString()

	for _, d := range reg.Detectors() {
		assert.Contains(t, doc, d.Name())
	}
}
