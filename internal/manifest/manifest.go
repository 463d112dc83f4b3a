// Package manifest extracts the fields the analyzer needs from package.json
// and from the configuration files of the supported monorepo tools.
//
// Each file format gets its own narrow extractor. JSON-like files are
// decoded into a yaml.v3 node tree (JSON is a subset of YAML flow syntax)
// after comments are stripped, and each extractor walks only the keys it
// knows about. Extractors return an error when the text cannot be decoded;
// callers treat that as "no information available".
package manifest

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/conneroisu/webpulse/internal/errors"
)

// Size limits applied when reading files.
const (
	MaxManifestSize int64 = 1 << 20
	MaxRushSize     int64 = 10 << 20
	MaxFileSize     int64 = 10 << 20
)

// Well known file names.
const (
	PackageJSON   = "package.json"
	LernaJSON     = "lerna.json"
	NxJSON        = "nx.json"
	WorkspaceJSON = "workspace.json"
	RushJSON      = "rush.json"
	PnpmWorkspace = "pnpm-workspace.yaml"
	TurboJSON     = "turbo.json"
)

// ReadFile reads path from fsys. Files larger than limit, missing files and
// directories yield a recoverable AnalysisError.
func ReadFile(fsys afero.Fs, path string, limit int64) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileError(errors.ErrCodeFileNotFound, path, err)
		}
		return "", errors.NewFileError(errors.ErrCodeFileUnreadable, path, err)
	}
	if info.IsDir() {
		return "", errors.NewFileError(errors.ErrCodeFileUnreadable, path, fmt.Errorf("is a directory"))
	}
	if info.Size() > limit {
		return "", errors.NewFileError(errors.ErrCodeFileTooLarge, path,
			fmt.Errorf("%d bytes exceeds the %d byte limit", info.Size(), limit)).
			WithContext("size", info.Size())
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", errors.NewFileError(errors.ErrCodeFileUnreadable, path, err)
	}
	return string(data), nil
}

// Exists reports whether path exists in fsys.
func Exists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}
