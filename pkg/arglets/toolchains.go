package arglets

// GnuArglets returns the arglet chain for GNU-style compiler drivers (gcc,
// g++, clang, icc, nvcc and friends). Spellings that are prefixes of other
// spellings come after the longer ones: -isystem, -iquote and -isysroot
// must all be tried before -I.
func GnuArglets() []Arglet {
	return []Arglet{
		SysrootArglet(),
		LangStdArglet(),
		NewIncludePathArglet("-isystem", "-iquote"),
		NewIncludePathArglet("-I"),
		NewMacroDefineArglet("-D"),
		NewMacroUndefArglet("-U"),
	}
}

// MsvcArglets returns the arglet chain for the Microsoft C/C++ compiler,
// which accepts its options with either a slash or a dash.
func MsvcArglets() []Arglet {
	return []Arglet{
		MsvcLangStdArglet(),
		NewIncludePathArglet("/I", "-I"),
		NewMacroDefineArglet("/D", "-D"),
		NewMacroUndefArglet("/U", "-U"),
	}
}

// SysrootArglet recognizes the GNU sysroot options: --sysroot=dir,
// --sysroot dir and -isysroot dir. Sysroot changes the compiler's built-in
// include paths, so the whole argument is handed off verbatim.
func SysrootArglet() *BuiltinFlagArglet {
	return NewBuiltinFlagArglet(
		`--sysroot=(?:"[^"]+"|[^\s]+)`,
		`--sysroot\s+(?:"[^"]+"|[^\s]+)`,
		`-isysroot\s*(?:"[^"]+"|[^\s]+)`,
	)
}

// LangStdArglet recognizes the GNU language standard options -std=<std> and
// -ansi, which change the compiler's built-in macros.
func LangStdArglet() *BuiltinFlagArglet {
	return NewBuiltinFlagArglet(
		`-std=[^\s]+`,
		`-ansi\b`,
	)
}

// MsvcLangStdArglet recognizes the MSVC language standard option /std:<std>
// in both of its accepted spellings.
func MsvcLangStdArglet() *BuiltinFlagArglet {
	return NewBuiltinFlagArglet(
		`[-/]std:[^\s]+`,
	)
}
