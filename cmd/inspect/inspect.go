// Package inspect implements an interactive prompt for examining single
// command lines.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildscan/cmd/scan"
	"buildscan/pkg/cmdline"
	"buildscan/pkg/compiledb"
	"buildscan/pkg/detect"
	"buildscan/pkg/utils"
)

var (
	colorTool   = color.New(color.FgYellow, color.Bold)
	colorDetail = color.New(color.FgHiBlack)
	colorEntry  = color.New(color.FgCyan)
	colorNoHit  = color.New(color.FgRed)
)

var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Interactively detect and decompose command lines",
	Long: `Reads compiler command lines typed or pasted one at a time and shows,
for each, the detected tool and the extracted settings. Exit with Ctrl-D.`,
	RunE: run,
}

func init() {
	InspectCmd.Flags().StringP("directory", "C", "", "working directory used to resolve relative include paths")
}

func run(cmd *cobra.Command, args []string) error {
	engine, err := compiledb.NewDefaultEngine(viper.GetString("tools-file"), scan.EngineOptions())
	if err != nil {
		return err
	}
	cwd, _ := cmd.Flags().GetString("directory")

	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)

	for {
		input, err := prompt.Prompt("buildscan> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		prompt.AppendHistory(input)
		report(engine, cwd, input)
	}
}

func report(engine *detect.Engine, cwd, line string) {
	outcome := engine.Detect(line)
	if outcome == nil {
		colorNoHit.Println("no registered tool matches this command")
		return
	}

	parser := outcome.Detector.Parser()
	fmt.Printf("%s %s\n",
		colorTool.Sprint(outcome.Detector.Name()),
		colorDetail.Sprintf("(%s, matched by %s)", parser.Language(), outcome.Strategy))

	parsed := parser.ProcessArgs(cwd, cmdline.TrimLeadingWS(outcome.Match.Arguments))
	if len(parsed.Entries) == 0 {
		colorDetail.Println("  no settings recognized")
		return
	}
	for _, entry := range parsed.Entries {
		colorEntry.Printf("  %s\n", entry)
	}
	if len(parsed.BuiltinArgs) > 0 {
		fmt.Printf("  builtins query (%s): %s\n",
			parser.Builtins(), utils.FormatSlice(parsed.BuiltinArgs, " "))
	}
}
