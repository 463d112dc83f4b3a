package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/conneroisu/webpulse/internal/types"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2933;background:#f8fafc}
h1{color:#1d4ed8}h2{border-bottom:1px solid #cbd5e1;padding-bottom:.25rem}
table{border-collapse:collapse;margin:.5rem 0}td,th{border:1px solid #cbd5e1;padding:.25rem .75rem;text-align:left}
.warn{color:#b91c1c}.muted{color:#64748b}`

// numbers groups digits in figures shown on the HTML report.
var numbers = message.NewPrinter(language.English)

// Page renders r as a standalone HTML document.
func Page(r *Report) templ.Component {
	return Document("webpulse: "+r.Project.Root, Body(r), "")
}

// Document wraps body in an HTML page. script, when not empty, is
// embedded verbatim at the end of the body.
func Document(title string, body templ.Component, script string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n",
			templ.EscapeString(title), pageStyle); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if script != "" {
			if _, err := fmt.Fprintf(w, "<script>%s</script>\n", script); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// Body renders the report sections without the surrounding document.
func Body(r *Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		p := r.Project

		h.raw(`<main id="report">`)
		h.el("h1", "Project Analysis Summary")
		h.table([][2]string{
			{"Root", p.Root},
			{"Run", p.RunID},
			{"Primary Framework", orNone(p.Framework)},
			{"Required Libraries", p.RequiredLibraries},
			{"Monorepo", yesNo(p.IsMonorepo)},
		})

		h.el("h2", "File Statistics")
		h.table([][2]string{
			{"HTML", numbers.Sprint(p.HTMLFileCount)},
			{"CSS", numbers.Sprint(p.CSSFileCount)},
			{"JavaScript", numbers.Sprint(p.JSFileCount)},
			{"TypeScript", numbers.Sprint(p.TSFileCount)},
			{"JSX", numbers.Sprint(p.JSXFileCount)},
			{"Vue", numbers.Sprint(p.VueFileCount)},
			{"XML", numbers.Sprint(p.XMLFileCount)},
			{"JSON", numbers.Sprint(p.JSONFileCount)},
			{"Images", numbers.Sprint(p.ImageFileCount)},
			{"Skipped", numbers.Sprint(p.SkippedFiles)},
		})

		h.el("h2", "Estimated Resource Usage")
		h.table([][2]string{
			{"Total JS Heap Size", numbers.Sprintf("%.2f MB (%d bytes)", float64(r.Estimation.JSHeapSize)/1000000.0, r.Estimation.JSHeapSize)},
			{"Transferred Data", numbers.Sprintf("%.2f KB (%d bytes)", float64(r.Estimation.TransferredData)/1000.0, r.Estimation.TransferredData)},
			{"Resource Size", numbers.Sprintf("%.2f KB (%d bytes)", float64(r.Estimation.ResourceSize)/1000.0, r.Estimation.ResourceSize)},
			{"DOMContentLoaded", numbers.Sprintf("%d ms", r.Estimation.DOMContentLoaded)},
			{"Largest Contentful Paint (LCP)", numbers.Sprintf("%d ms", r.Estimation.LargestContentfulPaint)},
			{"Performance Impact Score", fmt.Sprintf("%.2f", r.Impact)},
		})

		if p.IsMonorepo {
			writeWorkspaceHTML(h, p.Workspace)
		}

		if len(p.Dependencies) > 0 {
			h.el("h2", "Dependencies")
			h.raw("<ul>")
			for _, dep := range p.Dependencies {
				h.el("li", dep.Name+"@"+dep.Version)
			}
			h.raw("</ul>")
		}

		h.el("h2", "Potential Issues")
		if len(p.Issues) == 0 {
			h.raw(`<p class="muted">None</p>`)
		} else {
			h.raw("<ol>")
			for _, issue := range p.Issues {
				text := issue.Description
				if issue.Location != "" {
					text += " (" + issue.Location + ")"
				}
				h.el("li", text)
			}
			h.raw("</ol>")
		}
		h.raw("</main>\n")

		return h.err
	})
}

func writeWorkspaceHTML(h *htmlWriter, ws types.WorkspaceInfo) {
	h.el("h2", "Workspace")
	h.el("p", strings.Join(Flavors(ws), ", "))
	h.raw("<table><tr>")
	for _, header := range workspaceHeaders[:4] {
		h.el("th", header)
	}
	h.raw("</tr>")
	for _, pkg := range ws.Packages {
		h.raw("<tr>")
		h.el("td", pkg.Name)
		h.el("td", pkg.Version)
		h.el("td", pkg.Path)
		h.el("td", fmt.Sprint(len(pkg.Dependencies)))
		h.raw("</tr>")
	}
	h.raw("</table>")
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// el writes text, escaped, inside a tag.
func (h *htmlWriter) el(tag, text string) {
	h.raw("<" + tag + ">" + templ.EscapeString(text) + "</" + tag + ">")
}

func (h *htmlWriter) table(rows [][2]string) {
	h.raw("<table>")
	for _, row := range rows {
		h.raw("<tr>")
		h.el("th", row[0])
		h.el("td", row[1])
		h.raw("</tr>")
	}
	h.raw("</table>")
}
