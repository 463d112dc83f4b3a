package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/webpulse/internal/analyzer"
	"github.com/conneroisu/webpulse/internal/config"
	pulseerrors "github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/logging"
)

// app holds the state shared by one command tree.
type app struct {
	v       *viper.Viper
	fs      afero.Fs
	cfgFile string
	config  *config.Config
	logger  logging.Logger
	closers []io.Closer
}

// NewRootCommand builds the webpulse command tree with its own viper
// instance.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:      viper.New(),
		fs:     afero.NewOsFs(),
		logger: logging.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "webpulse",
		Short: "Static analysis of web project trees",
		Long: `webpulse walks a web project tree and reports what it is built with and
what it will cost to load.

Key Features:
  • File statistics for HTML, CSS, JavaScript, TypeScript, JSX, Vue, XML and JSON
  • Framework and build tool detection from sources and package.json
  • Monorepo topology for npm, Yarn, pnpm, Lerna, Nx and Rush workspaces
  • Estimated heap size, transfer size and load timings
  • Live dashboard that refreshes on every change

Quick Start:
  webpulse analyze                 Analyze the current directory
  webpulse workspace               Show monorepo packages
  webpulse watch --serve :7070     Re-analyze on change with a dashboard`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .webpulse.yml, can also use WEBPULSE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().AddFlagSet(logFlags())

	rootCmd.AddCommand(
		newAnalyzeCommand(a),
		newWorkspaceCommand(a),
		newMetadataCommand(a),
		newWatchCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the command tree until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError writes err for the user, including the configuration field it
// refers to.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", pulseerrors.FormatError(err))
}

// setup loads the configuration and builds the logger. Sources, highest
// priority first:
//
//  1. Command-line flags (--log-level, --workers, --format, ...)
//  2. Individual environment variables (WEBPULSE_ANALYSIS_WORKERS, ...)
//  3. The configuration file: --config, else WEBPULSE_CONFIG_FILE, else
//     .webpulse.yml in the working directory
//  4. Built-in defaults
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(a.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}

	used, err := config.Init(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}
	a.config = cfg

	loggerConfig, err := cfg.LoggerConfig()
	if err != nil {
		return err
	}
	loggerConfig.Output = cmd.ErrOrStderr()
	console := logging.NewLogger(loggerConfig)

	rotation := cfg.Rotation()
	if rotation.Path == "" {
		a.logger = console
	} else {
		fileLogger, err := logging.NewFileLogger(loggerConfig, rotation)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, fileLogger)
		a.logger = logging.NewMultiLogger(console, fileLogger)
	}

	if used != "" {
		a.logger.Info(cmd.Context(), "Using config file", "path", used)
	}

	return nil
}

func (a *app) teardown() error {
	var firstErr error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *app) analyzer() *analyzer.Analyzer {
	return analyzer.New(a.fs, a.config.AnalyzerOptions(), a.logger)
}

// projectRoot resolves the optional path argument to an absolute directory.
func projectRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	return abs, nil
}
