// Package detect builds framework fingerprints from manifest or source text.
//
// Matching is deliberately permissive substring matching. The one place a
// match is validated is React hook counting in Detect, which requires the
// hook name to stand on its own as a word.
package detect

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

// ManifestHooks are the hook names Detect counts.
var ManifestHooks = []string{
	"useState", "useEffect", "useContext", "useReducer",
	"useCallback", "useMemo", "useRef", "useLayoutEffect",
}

// SourceHooks are the hook names DetectSource counts.
var SourceHooks = []string{
	"useState", "useEffect", "useContext", "useReducer",
	"useCallback", "useMemo",
}

func containsAny(content string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(content, needle) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// CountHooks counts occurrences of each hook name that are not part of a
// longer identifier.
func CountHooks(content string, hooks []string) int {
	count := 0
	for _, hook := range hooks {
		for offset := 0; ; {
			idx := strings.Index(content[offset:], hook)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(hook)
			prevOK := start == 0 || !isWordByte(content[start-1])
			nextOK := end >= len(content) || !isWordByte(content[end])
			if prevOK && nextOK {
				count++
			}
			offset = start + 1
		}
	}
	return count
}

// countHookPrefixes counts positions where one of the hook names starts,
// without any boundary check.
func countHookPrefixes(content string, hooks []string) int {
	count := 0
	for offset := 0; ; {
		idx := strings.Index(content[offset:], "use")
		if idx < 0 {
			return count
		}
		pos := offset + idx
		for _, hook := range hooks {
			if strings.HasPrefix(content[pos:], hook) {
				count++
				break
			}
		}
		offset = pos + 1
	}
}

// Detect fingerprints manifest or source text.
func Detect(content string) types.FrameworkInfo {
	var info types.FrameworkInfo
	if content == "" {
		return info
	}

	if containsAny(content, `"react"`, `"react-dom"`) {
		info.HasReact = true
		info.ReactHooksCount = CountHooks(content, ManifestHooks)
		info.HasNextJS = containsAny(content, `"next"`, `"next.config.js"`, "pages/_app", "pages/api/")
	}

	if strings.Contains(content, `"vue"`) {
		info.HasVue = true
		info.VueCompositionAPI = containsAny(content, "setup()", "<script setup>", "@vue/composition-api", "vue@3")
		info.HasNuxtJS = containsAny(content, `"nuxt"`, `"@nuxt/`, "nuxt.config.js")
	}

	info.HasAngular = containsAny(content, `"@angular/core"`, "@Component", "@Injectable")
	info.HasSvelte = containsAny(content, `"svelte"`, `<script context="module">`, "export let")
	info.HasNodeJS = containsAny(content,
		"require(", "module.exports", "process.env",
		`"express"`, `"koa"`, `"fastify"`, `"nest"`)

	info.UsesTypeScript = containsAny(content, `"typescript"`, "tsconfig.json", `.ts"`, `.tsx"`)

	info.HasTesting = containsAny(content,
		`"jest"`, `"@testing-library/react"`, `"@vue/test-utils"`, `"@angular/testing"`)
	info.HasBundler = containsAny(content, `"webpack"`, `"vite"`, `"rollup"`, `"parcel"`)
	info.HasStateManagement = containsAny(content,
		`"redux"`, `"@reduxjs/toolkit"`, `"vuex"`, `"pinia"`, `"mobx"`, `"recoil"`)
	info.HasCSSFramework = containsAny(content,
		`"styled-components"`, `"@emotion/`, `"tailwindcss"`, `"sass"`, `"less"`)
	info.HasRouting = containsAny(content, `"react-router"`, `"vue-router"`, `"@angular/router"`)
	info.HasFormLibrary = containsAny(content,
		`"formik"`, `"react-hook-form"`, `"@angular/forms"`, `"vee-validate"`)
	info.HasUILibrary = containsAny(content,
		`"@mui/`, `"antd"`, `"@chakra-ui/`, `"vuetify"`, `"@angular/material"`)

	detectUILibrary(content, &info)
	detectStyling(content, &info)

	if strings.Contains(content, `"jest"`) {
		info.HasTesting = true
		info.HasUnitTesting = true
	}
	if containsAny(content, `"cypress"`, `"playwright"`) {
		info.HasTesting = true
		info.HasE2ETesting = true
	}
	if strings.Contains(content, `"@testing-library/`) {
		info.HasTesting = true
		info.HasComponentTesting = true
	}

	if containsAny(content, `"webpack-dev-server"`, `"vite"`) {
		info.HasDevServer = true
		info.HasHotReload = true
	}
	info.HasDebugConfig = containsAny(content, "launch.json", `"--inspect`)

	switch {
	case strings.Contains(content, "package-lock.json"):
		info.UsesNPM = true
	case strings.Contains(content, "yarn.lock"):
		info.UsesYarn = true
	case strings.Contains(content, "pnpm-lock.yaml"):
		info.UsesPnpm = true
	}

	info.HasCICD = containsAny(content, ".github/workflows", ".travis.yml")
	info.HasDocker = containsAny(content, "Dockerfile", "docker-compose")
	info.HasDeploymentConfig = containsAny(content, "vercel.json", "netlify.toml")
	info.HasLinting = strings.Contains(content, `"eslint"`)
	info.HasFormatting = strings.Contains(content, `"prettier"`)

	if info.UsesTypeScript {
		info.TypeScriptVersion = ExtractVersion(content, "typescript")
	}
	info.NodeVersion = ExtractVersion(content, "node")

	switch {
	case strings.Contains(content, `"webpack"`):
		info.PrimaryBundler = bundlerLabel("webpack", ExtractVersion(content, "webpack"))
	case strings.Contains(content, `"vite"`):
		info.PrimaryBundler = bundlerLabel("vite", ExtractVersion(content, "vite"))
	}

	return info
}

func bundlerLabel(name, version string) string {
	if version == "" {
		return name
	}
	return name + " " + version
}

func detectStyling(content string, info *types.FrameworkInfo) {
	switch {
	case strings.Contains(content, `"styled-components"`):
		info.HasCSSFramework = true
		info.UsesCSSInJS = true
		info.CSSSolution = "styled-components"
	case strings.Contains(content, `"tailwindcss"`):
		info.HasCSSFramework = true
		info.UsesTailwind = true
		info.CSSSolution = "tailwind"
	case strings.Contains(content, `"sass"`):
		info.UsesSass = true
		info.CSSSolution = "sass"
	}
	if strings.Contains(content, `"less"`) {
		info.UsesLess = true
	}
	if strings.Contains(content, ".module.css") {
		info.UsesCSSModules = true
	}
}

func detectUILibrary(content string, info *types.FrameworkInfo) {
	libraries := []struct{ needle, name string }{
		{`"@mui/`, "material-ui"},
		{`"antd"`, "antd"},
		{`"@chakra-ui/`, "chakra-ui"},
		{`"vuetify"`, "vuetify"},
		{`"@angular/material"`, "angular-material"},
	}
	for _, lib := range libraries {
		if strings.Contains(content, lib.needle) {
			info.PrimaryUILibrary = lib.name
			return
		}
	}
}

// DetectSource is the lightweight fingerprint the TS, JSX, Vue and JS
// scanners attach to their metrics. It keys on API usage in source code.
func DetectSource(content string) types.FrameworkInfo {
	var info types.FrameworkInfo

	if containsAny(content, "import React", "React.Component", "useState", "useEffect") {
		info.HasReact = true
		info.ReactHooksCount = countHookPrefixes(content, SourceHooks)
	}

	if containsAny(content, "createApp", "defineComponent", "setup()", "<template>") {
		info.HasVue = true
		info.VueCompositionAPI = strings.Contains(content, "setup()")
	}

	info.HasAngular = containsAny(content, "@Component", "@Injectable", "ngOnInit")
	info.HasSvelte = containsAny(content, `<script context="module">`, "$:", "export let")
	info.HasNodeJS = containsAny(content, "require(", "module.exports", "process.env")

	return info
}
