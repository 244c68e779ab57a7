package compiledb

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"buildscan/pkg/arglets"
	"buildscan/pkg/detect"
	"buildscan/pkg/utils"
)

// ErrToolsFile indicates an unusable user-defined tools file.
var ErrToolsFile = errors.New("tools file error")

// ToolSpec declares one user-defined tool signature, for cross toolchains
// and vendor compilers the built-in registry does not know.
type ToolSpec struct {
	// Name is the exact tool basename to match, e.g. arm-none-eabi-gcc.
	Name string `yaml:"name"`
	// Language is the source language, "c" or "c++". Defaults to "c".
	Language string `yaml:"language"`
	// Builtins is the built-ins query style: gcc, clang, nvcc or none.
	// Defaults to none.
	Builtins string `yaml:"builtins"`
	// Style selects the argument syntax, "gnu" or "msvc". Defaults to gnu.
	Style string `yaml:"style"`
	// Ntfs enables NTFS short-path handling for this tool.
	Ntfs bool `yaml:"ntfs"`
}

// ToolsFile is the YAML document listing extra tool signatures.
type ToolsFile struct {
	Tools []ToolSpec `yaml:"tools"`
}

// LoadToolsFile reads and validates a user-defined tools file.
func LoadToolsFile(path string) (*ToolsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.MakeError(ErrToolsFile, "reading %s: %v", path, err)
	}
	var f ToolsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, utils.MakeError(ErrToolsFile, "parsing %s: %v", path, err)
	}
	return &f, nil
}

// AddTo appends the declared tools to a registry in file order.
func (f *ToolsFile) AddTo(registry *detect.Registry) error {
	for i, spec := range f.Tools {
		detector, err := spec.detector()
		if err != nil {
			return utils.MakeError(ErrToolsFile, "tool %d: %v", i, err)
		}
		registry.Add(detector)
	}
	return nil
}

// NewDefaultEngine builds a detection engine over the built-in registry,
// extended with the tools file at toolsFilePath when non-empty.
func NewDefaultEngine(toolsFilePath string, opts detect.Options) (*detect.Engine, error) {
	registry := detect.DefaultRegistry()
	if toolsFilePath != "" {
		f, err := LoadToolsFile(toolsFilePath)
		if err != nil {
			return nil, err
		}
		if err := f.AddTo(registry); err != nil {
			return nil, err
		}
	}
	return detect.NewEngine(registry, opts), nil
}

func (spec ToolSpec) detector() (*detect.ToolDetector, error) {
	if spec.Name == "" {
		return nil, errors.New("missing tool name")
	}

	language := spec.Language
	switch language {
	case "":
		language = "c"
	case "c", "c++":
	default:
		return nil, utils.MakeError(ErrToolsFile, "unknown language %q", spec.Language)
	}

	var builtins arglets.BuiltinsKind
	switch spec.Builtins {
	case "", "none":
		builtins = arglets.BuiltinsNone
	case "gcc":
		builtins = arglets.BuiltinsGcc
	case "clang":
		builtins = arglets.BuiltinsClang
	case "nvcc":
		builtins = arglets.BuiltinsNvcc
	default:
		return nil, utils.MakeError(ErrToolsFile, "unknown builtins kind %q", spec.Builtins)
	}

	var chain []arglets.Arglet
	switch spec.Style {
	case "", "gnu":
		chain = arglets.GnuArglets()
	case "msvc":
		chain = arglets.MsvcArglets()
	default:
		return nil, utils.MakeError(ErrToolsFile, "unknown argument style %q", spec.Style)
	}

	parser := arglets.NewToolArgsParser(language, builtins, chain...)
	return detect.NewToolDetector(spec.Name, parser, spec.Ntfs), nil
}
