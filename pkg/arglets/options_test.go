package arglets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludePathArglet_JoinedValue(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewIncludePathArglet("-I").Process(ctx, "/build", "-I/usr/include rest")

	assert.Equal(t, len("-I/usr/include"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, IncludePathEntry("/usr/include"), ctx.Entries()[0])
}

func TestIncludePathArglet_SeparateValue(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewIncludePathArglet("-I").Process(ctx, "", "-I /usr/include rest")

	assert.Equal(t, len("-I /usr/include"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, "/usr/include", ctx.Entries()[0].Path)
}

func TestIncludePathArglet_QuotedValueWithSpaces(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewIncludePathArglet("-I").Process(ctx, "", `-I"/opt/my sdk/include" rest`)

	assert.Equal(t, len(`-I"/opt/my sdk/include"`), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, "/opt/my sdk/include", ctx.Entries()[0].Path)
}

func TestIncludePathArglet_RelativePathResolvesAgainstCWD(t *testing.T) {
	ctx := &ParseContext{}
	NewIncludePathArglet("-I").Process(ctx, "/build", "-I../inc main.cpp")

	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, "/inc", ctx.Entries()[0].Path)
}

func TestIncludePathArglet_AbsolutePathsAreKeptVerbatim(t *testing.T) {
	for _, p := range []string{"/usr/include", `C:\sdk\include`, `\\server\share`} {
		ctx := &ParseContext{}
		NewIncludePathArglet("-I").Process(ctx, "/build", "-I"+p)

		require.Len(t, ctx.Entries(), 1)
		assert.Equal(t, p, ctx.Entries()[0].Path)
	}
}

func TestIncludePathArglet_RelativePathWithoutCWDIsKeptVerbatim(t *testing.T) {
	ctx := &ParseContext{}
	NewIncludePathArglet("-I").Process(ctx, "", "-I../inc")

	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, "../inc", ctx.Entries()[0].Path)
}

func TestIncludePathArglet_DeclinesForeignOptions(t *testing.T) {
	ctx := &ParseContext{}
	assert.Equal(t, 0, NewIncludePathArglet("-I").Process(ctx, "", "-DFOO=1"))
	assert.Empty(t, ctx.Entries())
}

func TestIncludePathArglet_MsvcSlashSpelling(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewIncludePathArglet("/I", "-I").Process(ctx, "", `/IC:\sdk\include rest`)

	assert.Equal(t, len(`/IC:\sdk\include`), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, `C:\sdk\include`, ctx.Entries()[0].Path)
}

func TestMacroDefineArglet_NameAndValue(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewMacroDefineArglet("-D").Process(ctx, "", "-DFOO=1 rest")

	assert.Equal(t, len("-DFOO=1"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, MacroEntry("FOO", "1"), ctx.Entries()[0])
}

func TestMacroDefineArglet_BareNameDefaultsToOne(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewMacroDefineArglet("-D").Process(ctx, "", "-DNDEBUG rest")

	assert.Equal(t, len("-DNDEBUG"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, MacroEntry("NDEBUG", "1"), ctx.Entries()[0])
}

func TestMacroDefineArglet_QuotedValue(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewMacroDefineArglet("-D").Process(ctx, "", `-DGREETING="hello world" rest`)

	assert.Equal(t, len(`-DGREETING="hello world"`), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, MacroEntry("GREETING", "hello world"), ctx.Entries()[0])
}

func TestMacroDefineArglet_SeparateNameToken(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewMacroDefineArglet("-D").Process(ctx, "", "-D NDEBUG rest")

	assert.Equal(t, len("-D NDEBUG"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, MacroEntry("NDEBUG", "1"), ctx.Entries()[0])
}

func TestMacroDefineArglet_FunctionLikeMacro(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewMacroDefineArglet("-D").Process(ctx, "", "-DMIN(a,b)=a rest")

	assert.Equal(t, len("-DMIN(a,b)=a"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, MacroEntry("MIN(a,b)", "a"), ctx.Entries()[0])
}

func TestMacroDefineArglet_DeclinesOptionWithoutName(t *testing.T) {
	ctx := &ParseContext{}
	// the next token is another option, not a macro name
	assert.Equal(t, 0, NewMacroDefineArglet("-D").Process(ctx, "", "-D -I/x"))
	assert.Empty(t, ctx.Entries())
}

func TestMacroUndefArglet(t *testing.T) {
	ctx := &ParseContext{}
	consumed := NewMacroUndefArglet("-U").Process(ctx, "", "-UFOO rest")

	assert.Equal(t, len("-UFOO"), consumed)
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, MacroUndefEntry("FOO"), ctx.Entries()[0])
}

func TestBuiltinFlagArglet_RecordsMatchVerbatim(t *testing.T) {
	ctx := &ParseContext{}
	consumed := LangStdArglet().Process(ctx, "", "-std=c++17 main.cpp")

	assert.Equal(t, len("-std=c++17"), consumed)
	assert.Equal(t, []string{"-std=c++17"}, ctx.BuiltinArgs())
	require.Len(t, ctx.Entries(), 1)
	assert.Equal(t, BuiltinFlagEntry("-std=c++17"), ctx.Entries()[0])
}

func TestSysrootArglet_AllSpellings(t *testing.T) {
	wanted := []string{
		`--sysroot=/opt/sdk`,
		`--sysroot /opt/sdk`,
		`--sysroot="/opt/my sdk"`,
		`-isysroot /Applications`,
		`-isysroot/Applications`,
		`-isysroot "/opt/my sdk"`,
	}
	for _, want := range wanted {
		ctx := &ParseContext{}
		consumed := SysrootArglet().Process(ctx, "", want+" -c")

		assert.Equal(t, len(want), consumed, want)
		assert.Equal(t, []string{want}, ctx.BuiltinArgs(), want)
	}
}

func TestLangStdArglet_AnsiNeedsWordBoundary(t *testing.T) {
	ctx := &ParseContext{}
	assert.Equal(t, len("-ansi"), LangStdArglet().Process(ctx, "", "-ansi main.c"))
	assert.Equal(t, 0, LangStdArglet().Process(ctx, "", "-ansify main.c"))
}

func TestLangStdArglet_DeclinesEmptyStandard(t *testing.T) {
	ctx := &ParseContext{}
	assert.Equal(t, 0, LangStdArglet().Process(ctx, "", "-std= main.c"))
}

func TestMsvcLangStdArglet_BothSpellings(t *testing.T) {
	for _, input := range []string{"/std:c++17 main.cpp", "-std:c++17 main.cpp"} {
		ctx := &ParseContext{}
		consumed := MsvcLangStdArglet().Process(ctx, "", input)

		assert.Equal(t, len("/std:c++17"), consumed, input)
		require.Len(t, ctx.BuiltinArgs(), 1, input)
	}
}
