package walker

import (
	"path/filepath"
	"strings"
)

// Kind is the content type of a file, derived from its extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindHTML
	KindCSS
	KindJS
	KindTS
	KindJSX
	KindVue
	KindXML
	KindJSON
	KindImage
	// KindMarker is a file recognised by name rather than extension, such
	// as a workspace manifest. It is visited but never scanned.
	KindMarker
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindHTML:    "html",
	KindCSS:     "css",
	KindJS:      "js",
	KindTS:      "ts",
	KindJSX:     "jsx",
	KindVue:     "vue",
	KindXML:     "xml",
	KindJSON:    "json",
	KindImage:   "image",
	KindMarker:  "marker",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Scanned reports whether files of this kind have their content read.
func (k Kind) Scanned() bool {
	return k != KindUnknown && k != KindImage && k != KindMarker
}

var extensionKinds = map[string]Kind{
	".html":   KindHTML,
	".htm":    KindHTML,
	".css":    KindCSS,
	".js":     KindJS,
	".mjs":    KindJS,
	".cjs":    KindJS,
	".ts":     KindTS,
	".tsx":    KindTS,
	".jsx":    KindJSX,
	".vue":    KindVue,
	".xml":    KindXML,
	".object": KindXML,
	".json":   KindJSON,
	".jpg":    KindImage,
	".jpeg":   KindImage,
	".png":    KindImage,
	".gif":    KindImage,
	".webp":   KindImage,
	".svg":    KindImage,
	".bmp":    KindImage,
	".ico":    KindImage,
}

// Classify maps a file name to its Kind. Matching is case-insensitive.
func Classify(name string) Kind {
	return extensionKinds[strings.ToLower(filepath.Ext(name))]
}
