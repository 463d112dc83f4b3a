package analyzer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
	"github.com/conneroisu/webpulse/internal/walker"
)

// fold merges the result of one file into the project record. It runs on
// the traversal goroutine in walk order.
func (r *run) fold(ctx context.Context, entry walker.Entry, res fileResult) {
	p := r.project

	switch entry.Kind {
	case walker.KindImage:
		p.ImageFileCount++
		return
	case walker.KindMarker:
		r.addWorkspaceCandidate(entry.RelPath)
		return
	}

	if res.err != nil {
		p.SkippedFiles++
		if ae, ok := res.err.(*errors.AnalysisError); ok {
			ae.WithComponent("analyzer")
		}
		r.collector.Add(res.err)
		r.handler.Handle(ctx, res.err)
		return
	}

	r.logger.Debug(ctx, "Folding file", "path", entry.RelPath, "kind", entry.Kind.String())

	var issues []types.Issue
	switch {
	case res.html != nil:
		p.HTMLFileCount++
		r.foldHTML(*res.html)
		issues = res.html.Issues
	case res.css != nil:
		p.CSSFileCount++
		p.TotalCSSInfo.Accumulate(*res.css)
		issues = res.css.Issues
	case res.js != nil:
		p.JSFileCount++
		p.TotalJSInfo.Accumulate(*res.js)
		p.ReactComponentCount += res.js.ReactComponentCount
		p.FrameworkInfo.MergeCore(res.js.Framework)
		r.foldImports(res.imports)
		issues = res.js.Issues
	case res.ts != nil:
		p.TSFileCount++
		p.TotalTSInfo = *res.ts
		p.FrameworkInfo.MergeCore(res.ts.Framework)
		p.HasTypeScript = true
		r.foldImports(res.imports)
		issues = res.ts.Issues
	case res.jsx != nil:
		p.JSXFileCount++
		p.TotalJSXInfo = *res.jsx
		p.FrameworkInfo.HasReact = true
		p.ReactComponentCount += res.jsx.CustomComponentCount
		p.FrameworkInfo.ReactHooksCount += res.jsx.HookCount
		issues = res.jsx.Issues
	case res.vue != nil:
		p.VueFileCount++
		p.TotalVueInfo = *res.vue
		p.FrameworkInfo.HasVue = true
		p.FrameworkInfo.VueCompositionAPI = p.FrameworkInfo.VueCompositionAPI || res.vue.UsesScriptSetup
		issues = res.vue.Issues
	case res.xml != nil:
		p.XMLFileCount++
		p.TotalXMLInfo = *res.xml
		if res.salesforce {
			p.SalesforceMetadata = types.AppendCapped(p.SalesforceMetadata, types.MaxSalesforceMetadata, entry.Path)
		}
		issues = res.xml.Issues
	case res.json != nil:
		p.JSONFileCount++
		p.TotalJSONInfo.Accumulate(*res.json)
		issues = res.json.Issues
		if res.manifest != "" {
			r.foldPackageJSON(ctx, entry, res.manifest)
		}
	}

	for _, issue := range issues {
		if !p.AddIssue(issue.Description, entry.RelPath) {
			break
		}
	}

	if entry.Name == manifest.LernaJSON || entry.Name == manifest.NxJSON ||
		entry.Name == manifest.RushJSON || entry.Name == manifest.PackageJSON {
		r.addWorkspaceCandidate(entry.RelPath)
	}
}

func (r *run) foldHTML(info types.HTMLInfo) {
	p := r.project
	p.TotalHTMLInfo.Accumulate(info)

	p.FrameworkInfo.HasReact = p.FrameworkInfo.HasReact || info.IsReact
	p.FrameworkInfo.HasVue = p.FrameworkInfo.HasVue || info.IsVue
	p.FrameworkInfo.HasAngular = p.FrameworkInfo.HasAngular || info.IsAngular
	p.FrameworkInfo.HasSvelte = p.FrameworkInfo.HasSvelte || info.IsSvelte

	p.CustomElements = types.MergeCustomElements(p.CustomElements, info.CustomElements...)
	p.ExternalResources = types.AppendCapped(p.ExternalResources, types.MaxExternalResources, info.ExternalResources...)
	p.FrameworkComponents = types.AppendCapped(p.FrameworkComponents, types.MaxFrameworkComponents, info.FrameworkComponents...)
}

func (r *run) foldImports(imports Imports) {
	p := r.project
	p.UsesCommonJS = p.UsesCommonJS || imports.CommonJS
	p.UsesESModules = p.UsesESModules || imports.ESModules
	for _, path := range imports.Paths {
		p.AddModulePath(path)
	}
}

// foldPackageJSON applies a package.json to the project: module type,
// tooling flags, dependencies and the manifest framework fingerprint.
func (r *run) foldPackageJSON(ctx context.Context, entry walker.Entry, content string) {
	p := r.project

	pkg, err := manifest.ParsePackage(content, r.cache)
	if err != nil {
		merr := errors.NewManifestError(entry.RelPath, err).WithComponent("analyzer")
		r.collector.Add(merr)
		r.handler.Handle(ctx, merr)
		return
	}
	r.manifests[filepath.Clean(entry.Path)] = struct{}{}

	if pkg.IsESM() {
		p.UsesESModules = true
	}

	if strings.Contains(content, `"react"`) || strings.Contains(content, `"react-dom"`) {
		p.FrameworkInfo.HasReact = true
	}
	if strings.Contains(content, `"@angular/core"`) {
		p.FrameworkInfo.HasAngular = true
	}
	if strings.Contains(content, `"vue"`) {
		p.FrameworkInfo.HasVue = true
	}
	if strings.Contains(content, `"svelte"`) {
		p.FrameworkInfo.HasSvelte = true
	}
	if strings.Contains(content, `"webpack"`) {
		p.HasWebpack = true
	}
	if strings.Contains(content, `"vite"`) {
		p.HasVite = true
	}
	if strings.Contains(content, `"babel"`) || strings.Contains(content, `"@babel/core"`) {
		p.HasBabel = true
	}
	if strings.Contains(content, `"typescript"`) || pkg.UsesTypeScript {
		p.HasTypeScript = true
	}

	for _, dep := range pkg.Dependencies {
		p.Dependencies = p.Dependencies.Add(dep)
	}

	p.FrameworkInfo.Merge(detect.Detect(content))

	r.logger.Debug(ctx, "Analysed package manifest",
		"path", entry.RelPath,
		"name", pkg.Name,
		"dependencies", len(pkg.Dependencies))
}
