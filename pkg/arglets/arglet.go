// Package arglets decomposes compiler argument strings into structured
// settings entries. Each Arglet is a stateless recognizer for one category
// of compiler option; a ToolArgsParser chains arglets together and drains
// an argument string through them left to right.
package arglets

// Arglet recognizes one category of compiler option and emits structured
// settings for it.
//
// Process is offered the unconsumed suffix of an argument string, which
// never has leading whitespace but may have trailing whitespace, together
// with the compiler's working directory at its invocation. It returns the
// number of characters it consumed, including any whitespace between the
// option and its value. A return value of zero or less means the arglet
// cannot process the first argument of the input; anything it added to the
// context on such a call is rolled back by the parser.
//
// Implementations carry no state across calls.
type Arglet interface {
	Process(ctx *ParseContext, cwd string, argsLine string) int
}

// ParseContext accumulates the settings extracted from one command line.
type ParseContext struct {
	entries     []SettingsEntry
	builtinArgs []string
}

// AddSettingEntry appends a settings entry to the result, keeping
// extraction order.
func (c *ParseContext) AddSettingEntry(entry SettingsEntry) {
	c.entries = append(c.entries, entry)
}

// AddBuiltinDetectionArg records the verbatim text of an argument that
// affects compiler built-ins detection, such as --sysroot=/x or -std=c++17.
// The text is kept exactly as it appeared so it can later be replayed
// against the real compiler.
func (c *ParseContext) AddBuiltinDetectionArg(argument string) {
	c.builtinArgs = append(c.builtinArgs, argument)
	c.entries = append(c.entries, BuiltinFlagEntry(argument))
}

// Entries returns the accumulated settings entries in extraction order.
func (c *ParseContext) Entries() []SettingsEntry {
	return c.entries
}

// BuiltinArgs returns the verbatim argument substrings that affect
// built-ins detection, in extraction order.
func (c *ParseContext) BuiltinArgs() []string {
	return c.builtinArgs
}
