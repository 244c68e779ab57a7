// Package scan implements the command that processes a whole
// compile_commands.json build log.
package scan

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"buildscan/pkg/arglets"
	"buildscan/pkg/compiledb"
	"buildscan/pkg/detect"
	"buildscan/pkg/utils"
)

// Colors for the report output
var (
	colorFile    = color.New(color.FgWhite, color.Bold)
	colorTool    = color.New(color.FgYellow)
	colorInclude = color.New(color.FgCyan)
	colorMacro   = color.New(color.FgGreen)
	colorFlag    = color.New(color.FgMagenta)
	colorDiag    = color.New(color.FgRed, color.Bold)
	colorSummary = color.New(color.FgWhite, color.Bold, color.Underline)
)

var ScanCmd = &cobra.Command{
	Use:   "scan compile_commands.json",
	Short: "Extract build settings from a compile_commands.json build log",
	Long: `Processes every record of a compile_commands.json file: detects the
compiler that produced each command line, extracts include paths and macro
definitions, and collects the arguments that must be replayed when querying
the compiler for its built-in settings.

Records with missing fields or an unrecognized tool are reported and
skipped; they never abort the scan.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	ScanCmd.Flags().Bool("json", false, "print results as JSON instead of a report")
}

// EngineOptions derives the detection options from the effective
// configuration. A --version-pattern equal to the built-in default counts
// as unset. On Windows the options carry the GetLongPathName-backed
// short-path expander, so detectors that opted into NTFS path handling can
// match 8.3 command paths; elsewhere the expander is nil.
func EngineOptions() detect.Options {
	pattern := viper.GetString("version-pattern")
	if pattern == detect.DefaultVersionPattern {
		pattern = ""
	}
	return detect.Options{
		VersionMatching:   viper.GetBool("version-matching"),
		VersionPattern:    pattern,
		MatchBackslash:    runtime.GOOS == "windows",
		ShortPathExpander: shortPathExpander(),
	}
}

func run(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	engine, err := compiledb.NewDefaultEngine(viper.GetString("tools-file"), EngineOptions())
	if err != nil {
		return err
	}

	records, err := compiledb.LoadFile(args[0])
	if err != nil {
		return err
	}
	slog.Debug("build log loaded", "path", args[0], "records", len(records))

	results, diags := compiledb.NewProcessor(engine).ProcessAll(records)
	for _, d := range diags {
		slog.Warn("record skipped", "file", d.File, "kind", d.Kind.String(), "detail", d.Detail)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(results, diags)
	}
	printReport(results, diags)
	return nil
}

func printJSON(results []compiledb.Result, diags []compiledb.Diagnostic) error {
	report := struct {
		Results     []compiledb.Result     `json:"results"`
		Diagnostics []compiledb.Diagnostic `json:"diagnostics,omitempty"`
	}{results, diags}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printReport(results []compiledb.Result, diags []compiledb.Diagnostic) {
	for _, res := range results {
		colorFile.Println(res.File)
		fmt.Printf("  tool: %s (%s, matched by %s)\n",
			colorTool.Sprint(res.Tool), res.Language, res.Strategy)
		for _, entry := range res.Entries {
			fmt.Printf("    %s\n", colorizeEntry(entry))
		}
		if len(res.BuiltinArgs) > 0 {
			fmt.Printf("  builtins query (%s): %s\n",
				res.Builtins, colorFlag.Sprint(utils.FormatSlice(res.BuiltinArgs, " ")))
		}
	}

	for _, d := range diags {
		colorDiag.Println(d.String())
	}

	colorSummary.Printf("\n%d records, %d parsed, %d skipped\n",
		len(results)+len(diags), len(results), len(diags))
	perTool := map[string]int{}
	for _, res := range results {
		perTool[res.Tool]++
	}
	tools := utils.Keys(perTool)
	sort.Strings(tools)
	for _, tool := range tools {
		fmt.Printf("  %s: %d\n", colorTool.Sprint(tool), perTool[tool])
	}
}

func colorizeEntry(entry arglets.SettingsEntry) string {
	switch entry.Kind {
	case arglets.EntryIncludePath:
		return colorInclude.Sprint(entry.String())
	case arglets.EntryMacro, arglets.EntryMacroUndef:
		return colorMacro.Sprint(entry.String())
	case arglets.EntryBuiltinFlag:
		return colorFlag.Sprint(entry.String())
	}
	return entry.String()
}
