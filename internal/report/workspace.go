package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"

	"github.com/conneroisu/webpulse/internal/types"
)

var workspaceHeaders = []string{"Package", "Version", "Path", "Deps", "Framework", "Internal"}

// WriteWorkspaceTable writes one row per workspace package.
func WriteWorkspaceTable(w io.Writer, ws types.WorkspaceInfo, color bool) error {
	rows := make([][]string, 0, len(ws.Packages))
	for _, pkg := range ws.Packages {
		var internal []string
		for _, ref := range pkg.Config.References {
			internal = append(internal, ref.Target)
		}
		framework := pkg.FrameworkInfo.PrimaryFramework()
		if framework == "" {
			framework = "-"
		}
		rows = append(rows, []string{
			pkg.Name,
			pkg.Version,
			pkg.Path,
			strconv.Itoa(len(pkg.Dependencies)),
			framework,
			strings.Join(internal, ", "),
		})
	}

	re := lipgloss.NewRenderer(w)
	baseStyle := re.NewStyle().Padding(0, 1)
	headerStyle := baseStyle.Bold(color)
	if color {
		headerStyle = headerStyle.Foreground(lipgloss.Color("252"))
	}

	headers := make([]string, len(workspaceHeaders))
	for i, h := range workspaceHeaders {
		headers[i] = strings.ToUpper(h)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return baseStyle
		})
	if color {
		tbl = tbl.BorderStyle(re.NewStyle().Foreground(lipgloss.Color("238")))
	}
	if width := terminalWidth(w); width > 0 {
		tbl = tbl.Width(width)
	}

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// WriteWorkspace writes the monorepo topology of project in format. HTML is
// not supported here.
func WriteWorkspace(w io.Writer, project *types.ProjectRecord, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, project.Workspace)
	case FormatYAML:
		return WriteYAML(w, project.Workspace)
	case FormatText, "":
	default:
		return fmt.Errorf("format %q is not supported for workspace output", format)
	}

	if !project.IsMonorepo {
		_, err := fmt.Fprintf(w, "%s is not a monorepo\n", project.Root)
		return err
	}

	t := &textWriter{w: w, styles: newStyles(w, opts.Color)}
	writeMonorepo(t, project.Workspace)
	return t.err
}

// terminalWidth returns the width of the terminal behind w, or 0.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := xterm.GetSize(f.Fd()); err == nil && cols > 0 {
			return cols
		}
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
