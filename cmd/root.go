package cmd

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildscan/cmd/inspect"
	"buildscan/cmd/scan"
	"buildscan/cmd/tools"
	"buildscan/pkg/detect"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "buildscan",
	Short: "Extract compiler settings from build command logs",
	Long: `Buildscan identifies, for every record of a build command log, which
compiler produced the invocation and decomposes its arguments into include
search paths, preprocessor macro definitions and the flags that affect the
compiler's built-in macros and include paths.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(scan.ScanCmd, inspect.InspectCmd, tools.ToolsCmd)
	cobra.OnInitialize(initConfig, initLogging)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.buildscan.yaml)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().String("log-file", "", "also append JSON logs to this file")
	RootCmd.PersistentFlags().Bool("version-matching", false, "also match tool names carrying a version suffix, like gcc-4.8 or gcc-4.8.exe")
	RootCmd.PersistentFlags().String("version-pattern", detect.DefaultVersionPattern, "regex fragment matching the version suffix in tool names")
	RootCmd.PersistentFlags().String("tools-file", "", "YAML file declaring extra tool signatures")

	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-file", RootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("version-matching", RootCmd.PersistentFlags().Lookup("version-matching"))
	viper.BindPFlag("version-pattern", RootCmd.PersistentFlags().Lookup("version-pattern"))
	viper.BindPFlag("tools-file", RootCmd.PersistentFlags().Lookup("tools-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".buildscan" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".buildscan")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initLogging wires the default slog logger: human readable output on
// stderr, plus an optional JSON stream appended to --log-file.
func initLogging() {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	if logFile := viper.GetString("log-file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Cannot open log file:", err)
		} else {
			// held open for the process lifetime
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
}
