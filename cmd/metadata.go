package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/webpulse/internal/analyzer"
	pulseerrors "github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/report"
	"github.com/conneroisu/webpulse/internal/types"
)

// MetadataResult lists which of the checked files hold CustomObject
// metadata.
type MetadataResult struct {
	Checked int      `json:"checked" yaml:"checked"`
	Matches []string `json:"matches" yaml:"matches"`
}

func newMetadataCommand(a *app) *cobra.Command {
	metadataCmd := &cobra.Command{
		Use:   "metadata <file>...",
		Short: "Check files for Salesforce CustomObject metadata",
		Long: `Metadata checks each file for a line containing a CustomObject element
and prints the files that match.

Examples:
  webpulse metadata objects/Account.object
  webpulse metadata force-app/**/*.object-meta.xml --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				info, err := a.fs.Stat(path)
				if err != nil {
					return pulseerrors.WrapValidation(err, pulseerrors.ErrCodeFileNotFound, "cannot read file").
						WithPath(path)
				}
				if info.IsDir() {
					return pulseerrors.ErrInvalidPath(path, "is a directory")
				}
			}

			project := types.NewProjectRecord("")
			for _, path := range args {
				analyzer.AnalyzeSalesforceMetadata(a.fs, path, project)
			}
			result := MetadataResult{Checked: len(args), Matches: project.SalesforceMetadata}
			if result.Matches == nil {
				result.Matches = []string{}
			}
			a.logger.Debug(cmd.Context(), "Metadata check complete", "checked", result.Checked, "matches", len(result.Matches))

			w := cmd.OutOrStdout()
			format, _, err := a.outputOptions(cmd, w)
			if err != nil {
				return err
			}

			switch format {
			case report.FormatJSON:
				return report.WriteJSON(w, result)
			case report.FormatYAML:
				return report.WriteYAML(w, result)
			case report.FormatText:
			default:
				return fmt.Errorf("format %q is not supported for metadata output", format)
			}

			if len(result.Matches) == 0 {
				_, err = fmt.Fprintf(w, "No Salesforce metadata found in %d file(s)\n", result.Checked)
				return err
			}
			for _, path := range result.Matches {
				if _, err := fmt.Fprintln(w, path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	metadataCmd.Flags().AddFlagSet(outputFlags())

	return metadataCmd
}
