package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	pulseerrors "github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/report"
	"github.com/conneroisu/webpulse/internal/server"
	"github.com/conneroisu/webpulse/internal/walker"
	"github.com/conneroisu/webpulse/internal/watcher"
)

func newWatchCommand(a *app) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-analyze the project whenever it changes",
		Long: `Watch analyzes the project at path, then watches the tree and runs the
analysis again after each burst of changes. A one-line summary is printed
after every run.

With --serve the latest report is also served as a live dashboard. Open
the address in a browser and the page refreshes after every run.

Examples:
  webpulse watch
  webpulse watch ./site --debounce 1s
  webpulse watch --serve localhost:7070 --origin https://dev.example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runWatch,
	}

	watchCmd.Flags().AddFlagSet(analysisFlags())
	watchCmd.Flags().String("serve", "", "also serve a live dashboard on this address")
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "quiet period before re-analyzing")
	watchCmd.Flags().StringSlice("origin", nil, "additional websocket origins allowed by the dashboard")

	return watchCmd
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	root, err := projectRoot(args)
	if err != nil {
		return err
	}
	if !walker.IsDir(a.fs, root) {
		return pulseerrors.ErrInvalidPath(root, "is not a directory")
	}

	az := a.analyzer()
	var dashboard *server.Server
	if a.config.Watch.Serve != "" {
		dashboard = server.New(server.Options{
			Addr:           a.config.Watch.Serve,
			AllowedOrigins: a.config.Watch.OpenOrigin,
			Logger:         a.logger,
		})
	}

	analyze := func() error {
		project, err := az.AnalyzeProjectType(ctx, root)
		if err != nil {
			return err
		}
		r := report.New(project)
		if err := writeSummary(out, r); err != nil {
			return err
		}
		if dashboard != nil {
			return dashboard.Publish(r)
		}
		return nil
	}

	if err := analyze(); err != nil {
		return err
	}

	skip := walker.New(nil, walker.WithSkipDirs(a.config.Analysis.ExtraSkipDirs...)).ShouldSkipDir
	fileWatcher, err := watcher.NewFileWatcher(a.config.Watch.Debounce, skip, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.AnalyzableFilter)
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		a.logger.Debug(ctx, "Files changed", "count", len(events), "first", events[0].Path)
		if err := analyze(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("re-analysis failed: %w", err)
		}
		return nil
	})

	if err := fileWatcher.AddRecursive(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	a.logger.Info(ctx, "Watching for changes", "root", root, "directories", len(fileWatcher.WatchedPaths()))

	serveErr := make(chan error, 1)
	if dashboard != nil {
		go func() {
			serveErr <- dashboard.Start(ctx)
		}()
		fmt.Fprintf(out, "Dashboard: http://%s\n", displayAddr(a.config.Watch.Serve))
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-serveErr:
		return err
	}
}

// writeSummary prints one line describing r.
func writeSummary(w io.Writer, r *report.Report) error {
	framework := r.Project.Framework
	if framework == "" {
		framework = "no framework"
	}
	files := r.Project.HTMLFileCount + r.Project.CSSFileCount + r.Project.JSFileCount +
		r.Project.JSONFileCount + r.Project.TSFileCount + r.Project.JSXFileCount +
		r.Project.VueFileCount + r.Project.XMLFileCount

	_, err := fmt.Fprintf(w, "[%s] %s, %d files, %d issues, DOMContentLoaded %d ms, impact %.2f out of 5.0\n",
		r.GeneratedAt.Local().Format("15:04:05"),
		framework,
		files,
		len(r.Project.Issues),
		r.Estimation.DOMContentLoaded,
		r.Impact)
	return err
}

// displayAddr turns a listen address into something a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
