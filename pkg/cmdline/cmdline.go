// Package cmdline implements shell-style tokenization of compiler command
// lines as they appear in build logs. The grammar is POSIX-like token
// splitting with support for one level of double-quote grouping; the input
// is assumed to be already expanded by whatever produced the build log, so
// there is no backslash-escape or variable-expansion handling.
package cmdline

import (
	"strings"
	"unicode"
)

// SplitCommand splits a raw command line into its leading command token and
// the remaining argument text. The command token may be unquoted and
// delimited by whitespace, or wrapped in a single pair of double quotes
// allowing embedded whitespace; quotes are stripped from the returned
// command. The returned rest begins at the first character after the
// command token and is not trimmed.
//
// Returns ok == false if the line is empty, blank, holds an unterminated
// quote, or the quoted command is empty.
func SplitCommand(line string) (command, rest string, ok bool) {
	line = TrimLeadingWS(line)
	if line == "" {
		return "", "", false
	}

	if line[0] == '"' {
		end := strings.IndexByte(line[1:], '"')
		if end < 0 {
			// unterminated quote
			return "", "", false
		}
		if end == 0 {
			// "" names no command
			return "", "", false
		}
		return line[1 : end+1], line[end+2:], true
	}

	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return line, "", true
	}
	return line[:end], line[end:], true
}

// TrimLeadingWS removes all leading whitespace characters and leaves the
// rest of the string unmodified.
func TrimLeadingWS(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// SkipToken returns the number of characters occupied by the first token of
// s, where s has no leading whitespace. A token that starts with a double
// quote extends to the matching closing quote, so that quoted arguments
// containing embedded option-like text are skipped whole; an unterminated
// quote extends to the end of the string. Any other token ends at the next
// whitespace character.
func SkipToken(s string) int {
	if s == "" {
		return 0
	}
	if s[0] == '"' {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return len(s)
		}
		return end + 2
	}
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return len(s)
	}
	return end
}
