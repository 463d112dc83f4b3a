package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/types"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func analyze(t *testing.T, fs afero.Fs, root string, options Options) *types.ProjectRecord {
	t.Helper()
	project, err := New(fs, options, nil).AnalyzeProjectType(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, project)
	return project
}

const flatHTML = `<html>
<head>
  <script src="app.js"></script>
  <script src="https://cdn.example.com/lib.js"></script>
  <script>window.ready = true;</script>
</head>
<body><my-widget></my-widget></body>
</html>`

func TestAnalyzeFlatProject(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/proj/index.html":   flatHTML,
		"/proj/package.json": `{"name":"flat","dependencies":{"react":"^18.2.0"}}`,
	})

	project := analyze(t, fs, "/proj", Options{Workers: 1})

	assert.NotEmpty(t, project.RunID)
	assert.Equal(t, "/proj", project.Root)
	assert.Equal(t, 1, project.HTMLFileCount)
	assert.Equal(t, 1, project.JSONFileCount)
	assert.Equal(t, 3, project.TotalHTMLInfo.ScriptCount)
	assert.Equal(t, []types.CustomElement{{Name: "my-widget", Count: 1}}, project.CustomElements)
	assert.Equal(t, []types.ExternalResource{{URL: "https://cdn.example.com/lib.js", Type: types.ResourceJS}},
		project.ExternalResources)

	assert.True(t, project.FrameworkInfo.HasReact)
	assert.Equal(t, types.FrameworkReact, project.Framework)
	assert.Equal(t, "React", project.RequiredLibraries)

	assert.Equal(t, types.DependencyList{{Name: "react", Version: "18.2.0"}}, project.Dependencies)
	assert.Equal(t, 1, project.TotalDependencies)
	assert.Equal(t, 1, project.ProdDependencies)
	assert.Equal(t, 0, project.DevDependencies)
	assert.Equal(t, 1, project.FrameworkDependencies)

	assert.False(t, project.IsMonorepo)
	assert.Zero(t, project.SkippedFiles)
	assert.Empty(t, project.Issues)
}

func TestAnalyzeLernaMonorepo(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/lerna.json":              `{"version":"1.2.0","packages":["packages/*"]}`,
		"/repo/package.json":            `{"name":"root","private":true,"devDependencies":{"lerna":"^7.0.0"}}`,
		"/repo/packages/a/package.json": `{"name":"a","dependencies":{"b":"^1.0.0","react":"^18.2.0"}}`,
		"/repo/packages/a/src/index.js": `import b from 'b';`,
		"/repo/packages/b/package.json": `{"name":"b","version":"1.0.0"}`,
	})

	project := analyze(t, fs, "/repo", Options{Workers: 2})

	assert.True(t, project.IsMonorepo)
	assert.True(t, project.Workspace.IsLerna)
	assert.Equal(t, types.VersionFixed, project.Workspace.VersionStrategy)
	require.Len(t, project.Workspace.Packages, 2)
	assert.Equal(t, "a", project.Workspace.Packages[0].Name)
	assert.Equal(t, "b", project.Workspace.Packages[1].Name)

	assert.Equal(t, 4, project.JSONFileCount)
	assert.Equal(t, 1, project.JSFileCount)
	assert.Equal(t, []string{"b"}, project.ModulePaths)
	assert.True(t, project.UsesESModules)

	assert.Equal(t, types.DependencyList{
		{Name: "lerna", Version: "7.0.0", Dev: true},
		{Name: "b", Version: "1.0.0"},
		{Name: "react", Version: "18.2.0"},
	}, project.Dependencies)
	assert.Equal(t, 3, project.TotalDependencies)
	assert.Equal(t, 1, project.DevDependencies)
	assert.Equal(t, 2, project.ProdDependencies)
}

func TestAnalyzeNestedWorkspace(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/outer/index.html":                  `<p>hi</p>`,
		"/outer/mono/package.json":           `{"name":"mono","workspaces":["libs/*"]}`,
		"/outer/mono/libs/core/package.json": `{"name":"core"}`,
	})

	project := analyze(t, fs, "/outer", Options{Workers: 1})

	assert.True(t, project.IsMonorepo)
	assert.True(t, project.Workspace.IsYarnWorkspace)
	assert.Equal(t, "mono", project.Workspace.Name)
	require.Len(t, project.Workspace.Packages, 1)
	assert.Equal(t, "core", project.Workspace.Packages[0].Name)
}

func TestAnalyzeNestedPnpmWorkspace(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/index.html":                  `<p>hi</p>`,
		"/repo/web/pnpm-workspace.yaml":     "packages:\n  - 'packages/*'\n",
		"/repo/web/packages/a/package.json": `{"name":"a"}`,
		"/repo/web/packages/b/package.json": `{"name":"b"}`,
	})

	project := analyze(t, fs, "/repo", Options{Workers: 1})

	assert.True(t, project.IsMonorepo)
	assert.True(t, project.Workspace.IsPnpmWorkspace)
	assert.Len(t, project.Workspace.Packages, 2)
	assert.Equal(t, 2, project.JSONFileCount)
	assert.Zero(t, project.SkippedFiles)
}

func TestAnalyzeJavaScriptSvelteFingerprint(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/app/store.js": "export let count = 0;\n$: doubled = count * 2;",
	})

	project := analyze(t, fs, "/app", Options{Workers: 1})

	assert.Equal(t, 1, project.JSFileCount)
	assert.True(t, project.FrameworkInfo.HasSvelte)
}

func TestAnalyzeFolding(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/app/src/App.jsx": `function App() {
  const [a, setA] = useState(0);
  useEffect(() => {}, []);
  return <Layout><Header /></Layout>;
}`,
		"/app/src/Widget.vue":   "<template><div v-if=\"x\"></div></template>\n<script setup>\nconst x = 1\n</script>",
		"/app/src/types.ts":     "export interface User { id: number }\nimport { api } from './api';",
		"/app/styles/site.css":  `body { color: red; } .a { margin: 0; }`,
		"/app/config.xml":       `<?xml version="1.0"?><root><item/></root>`,
		"/app/public/logo.png":  "not really a png",
		"/app/public/hero.webp": "",
	})

	project := analyze(t, fs, "/app", Options{Workers: 1})

	assert.Equal(t, 1, project.JSXFileCount)
	assert.Equal(t, 1, project.VueFileCount)
	assert.Equal(t, 1, project.TSFileCount)
	assert.Equal(t, 1, project.CSSFileCount)
	assert.Equal(t, 1, project.XMLFileCount)
	assert.Equal(t, 2, project.ImageFileCount)

	assert.True(t, project.FrameworkInfo.HasReact)
	assert.True(t, project.FrameworkInfo.HasVue)
	assert.True(t, project.FrameworkInfo.VueCompositionAPI)
	assert.Equal(t, 2, project.FrameworkInfo.ReactHooksCount)
	assert.Equal(t, 2, project.ReactComponentCount)
	assert.Equal(t, 1, project.TotalTSInfo.InterfaceCount)
	assert.True(t, project.HasTypeScript)
	assert.Equal(t, []string{"./api"}, project.ModulePaths)

	assert.Equal(t, types.FrameworkReact, project.Framework)
	assert.Equal(t, "React, Vue.js", project.RequiredLibraries)
}

func TestAnalyzeCopiesFileIssues(t *testing.T) {
	scripts := ""
	for i := 0; i < 16; i++ {
		scripts += "<script></script>"
	}
	fs := writeFiles(t, map[string]string{"/site/pages/index.html": scripts})

	project := analyze(t, fs, "/site", Options{Workers: 1})

	require.Len(t, project.Issues, 1)
	assert.Equal(t, types.Issue{
		Description: "High number of script tags (16) may impact performance",
		Location:    "pages/index.html",
	}, project.Issues[0])
}

func TestAnalyzeSkipsLargeFiles(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/p/small.js": "var a;",
		"/p/big.js":   "var a = 1; var b = 2; var c = 3;",
	})

	project := analyze(t, fs, "/p", Options{Workers: 1, MaxFileSize: 10})

	assert.Equal(t, 1, project.JSFileCount)
	assert.Equal(t, 1, project.SkippedFiles)
}

func TestAnalyzeSalesforceOption(t *testing.T) {
	files := map[string]string{
		"/sf/objects/Account.object": "<?xml version=\"1.0\"?>\n<CustomObject xmlns=\"http://soap.sforce.com/2006/04/metadata\">\n</CustomObject>",
		"/sf/layout.xml":             "<Layout></Layout>",
	}

	disabled := analyze(t, writeFiles(t, files), "/sf", Options{Workers: 1})
	assert.Empty(t, disabled.SalesforceMetadata)

	enabled := analyze(t, writeFiles(t, files), "/sf", Options{Workers: 1, Salesforce: true})
	assert.Equal(t, []string{"/sf/objects/Account.object"}, enabled.SalesforceMetadata)
	assert.Equal(t, 2, enabled.XMLFileCount)
}

func TestAnalyzeRootUnreadable(t *testing.T) {
	project, err := New(afero.NewMemMapFs(), Options{}, nil).AnalyzeProjectType(context.Background(), "/missing")

	assert.Nil(t, project)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRootUnreadable))
}

func TestAnalyzeCancelled(t *testing.T) {
	fs := writeFiles(t, map[string]string{"/p/a.js": "var a;"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fs, Options{}, nil).AnalyzeProjectType(ctx, "/p")
	assert.Error(t, err)
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 30; i++ {
		files[fmt.Sprintf("/big/src/m%02d/index.js", i)] = fmt.Sprintf("import x from './dep%d';\nfunction f%d() { return %d; }", i, i, i)
		files[fmt.Sprintf("/big/src/m%02d/page.html", i)] = fmt.Sprintf("<div><el-%d></el-%d></div>", i, i)
	}
	fs := writeFiles(t, files)

	sequential := analyze(t, fs, "/big", Options{Workers: 1})
	parallel := analyze(t, fs, "/big", Options{Workers: 4})
	parallel.RunID = sequential.RunID

	assert.Equal(t, sequential, parallel)
	assert.Len(t, sequential.ModulePaths, 30)
	assert.Len(t, sequential.CustomElements, 30)
}

func TestTraverseDirectory(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/t/a.css":                  "a { color: red; }",
		"/t/node_modules/x/x.css":   "b { color: blue; }",
		"/t/b.json":                 `{"k": [1, 2]}`,
		"/t/.git/config.json":       `{}`,
		"/t/nested/deeper/c.css":    "c { margin: 0; }",
		"/t/nested/deeper/notes.md": "ignored",
	})
	project := types.NewProjectRecord("/t")

	err := New(fs, Options{Workers: 1}, nil).TraverseDirectory(context.Background(), "/t", project)
	require.NoError(t, err)

	assert.Equal(t, 2, project.CSSFileCount)
	assert.Equal(t, 2, project.TotalCSSInfo.RuleCount)
	assert.Equal(t, 1, project.JSONFileCount)
	assert.Equal(t, 1, project.TotalJSONInfo.ArrayCount)
	assert.NotEmpty(t, project.RunID)
}

func TestNewAppliesDefaults(t *testing.T) {
	a := New(afero.NewMemMapFs(), Options{Salesforce: true}, nil)
	options := a.Options()

	assert.GreaterOrEqual(t, options.Workers, 1)
	assert.Equal(t, int64(10<<20), options.MaxFileSize)
	assert.Equal(t, int64(1<<20), options.MaxManifestSize)
	assert.Equal(t, int64(10<<20), options.MaxRushSize)
	assert.True(t, options.Salesforce)
}
