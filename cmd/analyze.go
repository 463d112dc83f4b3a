package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/webpulse/internal/report"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		only       string
		outputPath string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project tree and print the report",
		Long: `Analyze walks the project tree at path (default: the current directory)
and prints file statistics, detected frameworks, dependencies, monorepo
topology, estimated resource usage and potential issues.

Use --only to print a single block of the report:
  resources          Estimated heap, transfer and timing values
  issues             Potential issues found during the analysis
  impact             Performance impact score
  value:<name>       One value: ` + valueNames() + `

Examples:
  webpulse analyze
  webpulse analyze ./site --format json --output report.json
  webpulse analyze --only value:largest_contentful_paint`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args, only, outputPath)
		},
	}

	analyzeCmd.Flags().AddFlagSet(analysisFlags())
	analyzeCmd.Flags().AddFlagSet(outputFlags())
	analyzeCmd.Flags().StringVar(&only, "only", "", "print one block: resources, issues, impact or value:<name>")
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")

	return analyzeCmd
}

func (a *app) runAnalyze(cmd *cobra.Command, args []string, only, outputPath string) error {
	ctx := cmd.Context()

	// Reject a bad --only before doing any work.
	if err := validateOnly(only); err != nil {
		return err
	}

	root, err := projectRoot(args)
	if err != nil {
		return err
	}

	project, err := a.analyzer().AnalyzeProjectType(ctx, root)
	if err != nil {
		return err
	}
	r := report.New(project)

	w, closeOutput, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}

	format, opts, err := a.outputOptions(cmd, w)
	if err != nil {
		_ = closeOutput()
		return err
	}

	if only != "" {
		err = writeOnly(w, r, only)
	} else {
		err = report.Write(ctx, w, r, format, opts)
	}
	if closeErr := closeOutput(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if outputPath != "" {
		a.logger.Info(ctx, "Report written", "path", outputPath, "format", string(format))
	}
	return nil
}

func validateOnly(only string) error {
	switch {
	case only == "", only == "resources", only == "issues", only == "impact":
		return nil
	case strings.HasPrefix(only, "value:"):
		if _, ok := report.Lookup(strings.TrimPrefix(only, "value:")); !ok {
			return fmt.Errorf("unknown value %q (available: %s)", strings.TrimPrefix(only, "value:"), valueNames())
		}
		return nil
	default:
		return fmt.Errorf("invalid --only %q: expected resources, issues, impact or value:<name>", only)
	}
}

func writeOnly(w io.Writer, r *report.Report, only string) error {
	switch only {
	case "resources":
		return report.DisplayResourceUsage(w, r.Estimation)
	case "issues":
		return report.DisplayPotentialIssues(w, r.Project.Issues)
	case "impact":
		return report.DisplayValue(w, r, "performance_impact")
	default:
		return report.DisplayValue(w, r, strings.TrimPrefix(only, "value:"))
	}
}

func valueNames() string {
	names := make([]string, 0, len(report.Values))
	for _, v := range report.Values {
		names = append(names, v.Key)
	}
	return strings.Join(names, ", ")
}
