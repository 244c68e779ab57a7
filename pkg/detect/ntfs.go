package detect

import (
	"strings"

	"buildscan/pkg/cmdline"
)

// expandCommandPath rebuilds the command line with the leading command
// token run through the short-path expander. NTFS 8.3 short segments
// contain a tilde (PROGRA~1), so lines without one are returned untouched.
// When the expanded path contains whitespace it is re-quoted, keeping the
// rebuilt line splittable.
func expandCommandPath(line string, expander func(string) string) (expanded string, changed bool) {
	command, rest, ok := cmdline.SplitCommand(line)
	if !ok {
		return line, false
	}
	if !strings.Contains(command, "~") {
		return line, false
	}
	long := expander(command)
	if long == "" || long == command {
		return line, false
	}
	if strings.ContainsAny(long, " \t") {
		long = `"` + long + `"`
	}
	return long + rest, true
}
