package analyzer

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/parsers"
	"github.com/conneroisu/webpulse/internal/types"
	"github.com/conneroisu/webpulse/internal/walker"
)

// fileResult is everything a worker extracts from one file. Exactly one of
// the metric pointers is set for a scanned file.
type fileResult struct {
	err error

	html    *types.HTMLInfo
	css     *types.CSSInfo
	js      *types.JSInfo
	json    *types.JSONInfo
	ts      *types.TSInfo
	jsx     *types.JSXInfo
	vue     *types.VueInfo
	xml     *types.XMLInfo
	imports Imports

	// manifest holds the content of a package.json small enough for
	// project-level manifest analysis.
	manifest   string
	salesforce bool
}

// scanFile reads and scans one entry. It runs on pool workers and must not
// touch the project record.
func (r *run) scanFile(entry walker.Entry) fileResult {
	if !entry.Kind.Scanned() {
		return fileResult{}
	}

	content, err := manifest.ReadFile(r.fs, entry.Path, r.options.MaxFileSize)
	if err != nil {
		return fileResult{err: err}
	}

	var res fileResult
	switch entry.Kind {
	case walker.KindHTML:
		info := parsers.ParseHTML(content)
		res.html = &info
	case walker.KindCSS:
		info := parsers.ParseCSS(content)
		res.css = &info
	case walker.KindJS:
		info := parsers.ParseJavaScript(content)
		res.js = &info
		res.imports = ExtractImports(content)
	case walker.KindTS:
		info := parsers.ParseTypeScript(content)
		res.ts = &info
		res.imports = ExtractImports(content)
	case walker.KindJSX:
		info := parsers.ParseJSX(content)
		res.jsx = &info
	case walker.KindVue:
		info := parsers.ParseVue(content)
		res.vue = &info
	case walker.KindXML:
		info := parsers.ParseXML(content)
		res.xml = &info
		res.salesforce = r.options.Salesforce && containsCustomObject(content)
	case walker.KindJSON:
		info := parsers.ParseJSON(content)
		res.json = &info
		if entry.Name == manifest.PackageJSON && entry.Size <= r.options.MaxManifestSize {
			res.manifest = content
		}
	}
	return res
}

func containsCustomObject(content string) bool {
	return strings.Contains(content, customObjectMarker)
}
