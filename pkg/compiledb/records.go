// Package compiledb reads compile_commands.json build logs and runs the
// detection engine over their records, turning each compiler invocation
// into structured settings plus the information needed to query the
// compiler for its built-ins later.
package compiledb

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"buildscan/pkg/utils"
)

// ErrLogFormat indicates a build log that is not a well-formed
// compile_commands.json document.
var ErrLogFormat = errors.New("build log format error")

// CompileCommand is one record of a compile_commands.json file: the
// compilation of one source file. Directory is the compiler's absolute
// working directory in forward-slash notation regardless of host OS.
type CompileCommand struct {
	File      string `json:"file"`
	Command   string `json:"command"`
	Directory string `json:"directory"`
	Output    string `json:"output,omitempty"`
}

// Load reads a compile_commands.json document. Records with missing fields
// are returned as-is; validation happens per record during processing so
// one malformed entry never hides the others.
func Load(r io.Reader) ([]CompileCommand, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, utils.MakeError(ErrLogFormat, "reading build log: %v", err)
	}

	var records []CompileCommand
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, utils.MakeError(ErrLogFormat, "not a compile_commands.json document: %v", err)
	}
	return records, nil
}

// LoadFile reads a compile_commands.json file from disk.
func LoadFile(path string) ([]CompileCommand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.MakeError(ErrLogFormat, "opening %s: %v", path, err)
	}
	defer f.Close()
	return Load(f)
}
