package arglets

import "fmt"

// SettingsEntryKind discriminates the variants of a SettingsEntry.
type SettingsEntryKind int

const (
	// EntryIncludePath is a preprocessor include search directory.
	EntryIncludePath SettingsEntryKind = iota
	// EntryMacro is a preprocessor macro definition.
	EntryMacro
	// EntryMacroUndef is a preprocessor macro removal.
	EntryMacroUndef
	// EntryBuiltinFlag is the verbatim text of an argument that changes
	// which macros and include paths the compiler reports as built-in.
	EntryBuiltinFlag
)

func (k SettingsEntryKind) String() string {
	switch k {
	case EntryIncludePath:
		return "include-path"
	case EntryMacro:
		return "macro"
	case EntryMacroUndef:
		return "macro-undef"
	case EntryBuiltinFlag:
		return "builtin-flag"
	}
	return fmt.Sprintf("SettingsEntryKind(%d)", int(k))
}

// MarshalText renders the kind name, for JSON reports.
func (k SettingsEntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SettingsEntry is one structured fact extracted from a command line.
// Which of the value fields is meaningful depends on Kind. Entries keep the
// order in which they were extracted and duplicates are permitted;
// de-duplication is the consumer's responsibility.
type SettingsEntry struct {
	Kind  SettingsEntryKind
	Path  string // EntryIncludePath
	Name  string // EntryMacro, EntryMacroUndef
	Value string // EntryMacro
	Flag  string // EntryBuiltinFlag, verbatim argument text
}

// IncludePathEntry creates an include search path entry.
func IncludePathEntry(path string) SettingsEntry {
	return SettingsEntry{Kind: EntryIncludePath, Path: path}
}

// MacroEntry creates a macro definition entry.
func MacroEntry(name, value string) SettingsEntry {
	return SettingsEntry{Kind: EntryMacro, Name: name, Value: value}
}

// MacroUndefEntry creates a macro removal entry.
func MacroUndefEntry(name string) SettingsEntry {
	return SettingsEntry{Kind: EntryMacroUndef, Name: name}
}

// BuiltinFlagEntry creates an entry holding the verbatim text of an
// argument that affects compiler built-ins detection.
func BuiltinFlagEntry(raw string) SettingsEntry {
	return SettingsEntry{Kind: EntryBuiltinFlag, Flag: raw}
}

func (e SettingsEntry) String() string {
	switch e.Kind {
	case EntryIncludePath:
		return fmt.Sprintf("include-path %s", e.Path)
	case EntryMacro:
		return fmt.Sprintf("macro %s=%s", e.Name, e.Value)
	case EntryMacroUndef:
		return fmt.Sprintf("macro-undef %s", e.Name)
	case EntryBuiltinFlag:
		return fmt.Sprintf("builtin-flag %s", e.Flag)
	}
	return fmt.Sprintf("settings-entry(%d)", int(e.Kind))
}
