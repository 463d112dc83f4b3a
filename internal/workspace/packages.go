package workspace

import (
	"path/filepath"
	"strings"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
)

// addPackage records the package in dir, relative to the workspace root.
// Directories without a readable package.json are ignored unless a
// fallback name is known. Packages are unique by path.
func (r *resolution) addPackage(dir, fallbackName string) {
	dir = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(dir)), "/")
	if dir == "" || dir == "." || strings.HasPrefix(dir, "../") {
		return
	}
	for _, existing := range r.ws.Packages {
		if existing.Path == dir {
			return
		}
	}
	if len(r.ws.Packages) >= types.MaxPackages {
		return
	}

	path := filepath.Join(r.root, filepath.FromSlash(dir), manifest.PackageJSON)
	content, err := manifest.ReadFile(r.fs, path, r.limits.Manifest)
	if err != nil {
		if fallbackName == "" {
			return
		}
		content = ""
	}

	record := types.PackageRecord{Name: fallbackName, Path: dir}
	if content != "" {
		cache := r.cache
		if r.recorded != nil && r.recorded(path) {
			cache = nil
		}
		pkg, err := manifest.ParsePackage(content, cache)
		if err != nil {
			r.logger.Debug(r.ctx, "Invalid package manifest", "path", path, "error", err)
			if fallbackName == "" {
				return
			}
		} else {
			fillPackage(&record, pkg, content)
			record.Config.HasSharedConfigs = r.extendsSharedConfig(dir)
		}
	}
	if record.Name == "" {
		record.Name = filepath.Base(filepath.FromSlash(dir))
	}

	r.ws.Packages = append(r.ws.Packages, record)
}

// fillPackage copies manifest fields into record and derives the package
// framework fingerprint.
func fillPackage(record *types.PackageRecord, pkg *manifest.Package, content string) {
	if pkg.Name != "" {
		record.Name = pkg.Name
	}
	record.Version = pkg.Version
	record.Dependencies = pkg.Dependencies

	record.Config.Scripts = pkg.Scripts
	record.Config.BuildOutputPath = pkg.BuildOutputPath
	record.Config.TestOutputPath = pkg.TestOutputPath
	record.Config.UsesTypeScript = pkg.UsesTypeScript
	record.Config.UsesJest = pkg.UsesJest
	record.Config.UsesESLint = pkg.UsesESLint
	record.Config.UsesPrettier = pkg.UsesPrettier

	info := PackageFramework(pkg.Dependencies, content)
	record.FrameworkInfo = info
	record.Config.NodeVersion = info.NodeVersion
}

// PackageFramework derives a package fingerprint from exact dependency
// names and merges the manifest-level detection of content.
func PackageFramework(deps types.DependencyList, content string) types.FrameworkInfo {
	var info types.FrameworkInfo
	for _, dep := range deps {
		switch {
		case dep.Name == "react" || dep.Name == "react-dom":
			info.HasReact = true
		case dep.Name == "vue":
			info.HasVue = true
			if strings.Contains(content, "@vue/composition-api") || strings.Contains(content, "vue@3") {
				info.VueCompositionAPI = true
			}
		case strings.HasPrefix(dep.Name, "@angular/"):
			info.HasAngular = true
		case dep.Name == "svelte":
			info.HasSvelte = true
		case dep.Name == "express" || dep.Name == "koa" || dep.Name == "fastify":
			info.HasNodeJS = true
		}
	}
	info.Merge(detect.Detect(content))
	return info
}

// extendsSharedConfig reports whether the package tsconfig extends another
// configuration.
func (r *resolution) extendsSharedConfig(dir string) bool {
	content, err := manifest.ReadFile(r.fs, filepath.Join(r.root, filepath.FromSlash(dir), "tsconfig.json"), r.limits.Manifest)
	return err == nil && strings.Contains(content, `"extends"`)
}
