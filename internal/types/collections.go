package types

// Capacities of the bounded collections. Once a collection is full further
// inserts are dropped; the first N entries in insertion order are kept.
const (
	MaxCustomElements      = 50
	MaxExternalResources   = 50
	MaxFrameworkComponents = 50
	MaxScannerIssues       = 20
	MaxProjectIssues       = 100
	MaxDependencies        = 1000
	MaxCachedDependencies  = 1000
	MaxImportPaths         = 50
	MaxWorkspaceGlobs      = 50
	MaxPackages            = 100
	MaxScripts             = 50
	MaxTaskGroups          = 20
	MaxNamespaces          = 100
	MaxComponentStack      = 100
	MaxSalesforceMetadata  = 9999
	DirStackSize           = 1024
)

// AppendCapped appends items to list until it holds limit entries. Items
// beyond the limit are silently dropped.
func AppendCapped[T any](list []T, limit int, items ...T) []T {
	for _, item := range items {
		if len(list) >= limit {
			break
		}
		list = append(list, item)
	}
	return list
}

// AppendUnique appends value unless it is already present or the list is
// full.
func AppendUnique(list []string, limit int, value string) []string {
	if len(list) >= limit {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// Issue is a heuristic warning attached to analysis output. It is advisory,
// never an error.
type Issue struct {
	Description string `json:"description" yaml:"description"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
}

// CustomElement is a hyphenated HTML tag and how often it occurred.
type CustomElement struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// MergeCustomElements folds src into dst by name, summing counts. New names
// are appended while dst holds fewer than MaxCustomElements entries.
func MergeCustomElements(dst []CustomElement, src ...CustomElement) []CustomElement {
	for _, element := range src {
		found := false
		for i := range dst {
			if dst[i].Name == element.Name {
				dst[i].Count += element.Count
				found = true
				break
			}
		}
		if !found && len(dst) < MaxCustomElements {
			dst = append(dst, element)
		}
	}
	return dst
}

// Resource type tags.
const (
	ResourceJS  = "JS"
	ResourceCSS = "CSS"
)

// ExternalResource is a script or stylesheet loaded from an absolute URL.
type ExternalResource struct {
	URL  string `json:"url" yaml:"url"`
	Type string `json:"type" yaml:"type"`
	// Size in bytes. Remote sizes are not fetched, so this stays zero unless
	// a caller fills it in.
	Size int64 `json:"size" yaml:"size"`
}
