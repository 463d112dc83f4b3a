package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/webpulse/internal/report"
	"github.com/conneroisu/webpulse/internal/version"
)

func newVersionCommand() *cobra.Command {
	var (
		format string
		short  bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for webpulse including:

- Semantic version number
- Git commit hash
- Build timestamp
- Go version used for compilation
- Target platform (OS/architecture)

Examples:
  webpulse version                # Show version details
  webpulse version --short        # Show short version only
  webpulse version --format json  # Output as JSON`,
		Args: cobra.NoArgs,
		// Version information does not depend on configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			w := cmd.OutOrStdout()

			switch format {
			case "json":
				return report.WriteJSON(w, info)
			case "text":
				if short {
					_, err := fmt.Fprintln(w, info.Short())
					return err
				}
				_, err := fmt.Fprint(w, info.String())
				return err
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
			}
		},
	}

	versionCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&short, "short", false, "Show short version only")

	return versionCmd
}
