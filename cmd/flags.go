package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/webpulse/internal/report"
)

// logFlags are shared by every command.
func logFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("log", pflag.ContinueOnError)
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("log-file", "", "also write JSON logs to this file, rotated")
	return flags
}

// analysisFlags tune the analyzer.
func analysisFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("analysis", pflag.ContinueOnError)
	flags.Int("workers", 0, "number of concurrent file scanners (0 = one per CPU)")
	flags.Bool("salesforce", false, "check XML files for Salesforce CustomObject metadata")
	flags.StringSlice("skip-dir", nil, "additional directory names to skip")
	return flags
}

// outputFlags select the report format.
func outputFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("output", pflag.ContinueOnError)
	flags.StringP("format", "f", "", "output format ("+formatNames()+")")
	flags.Bool("no-color", false, "disable styled text output")
	return flags
}

// flagKeys maps flag names to the configuration keys they override.
// Subcommands share flag names, so binding happens once the executing
// command is known.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"workers":    "analysis.workers",
	"salesforce": "analysis.salesforce",
	"skip-dir":   "analysis.extra_skip_dirs",
	"format":     "output.format",
	"serve":      "watch.serve",
	"debounce":   "watch.debounce",
	"origin":     "watch.open_origin",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func formatNames() string {
	names := make([]string, 0, len(report.Formats))
	for _, format := range report.Formats {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}

// outputOptions resolves the configured format and whether text output may
// be styled for w.
func (a *app) outputOptions(cmd *cobra.Command, w io.Writer) (report.Format, report.Options, error) {
	format, err := report.ParseFormat(a.config.Output.Format)
	if err != nil {
		return "", report.Options{}, err
	}

	color := a.config.Output.Color
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color = false
	}
	if os.Getenv("NO_COLOR") != "" || !isTerminal(w) {
		color = false
	}

	return format, report.Options{Color: color}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}

// openOutput returns the writer for --output, or the command's stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, file.Close, nil
}
