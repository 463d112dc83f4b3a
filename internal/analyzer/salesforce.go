package analyzer

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"

	"github.com/conneroisu/webpulse/internal/types"
)

const customObjectMarker = "<CustomObject"

// maxMetadataLine bounds the line length read from metadata files.
const maxMetadataLine = 1 << 20

// AnalyzeSalesforceMetadata reports whether the file at path contains a
// line with a CustomObject element. Matching paths are appended to the
// project's metadata list. Unreadable files never match.
func AnalyzeSalesforceMetadata(fs afero.Fs, path string, project *types.ProjectRecord) bool {
	file, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMetadataLine)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), customObjectMarker) {
			if project != nil {
				project.SalesforceMetadata = types.AppendCapped(project.SalesforceMetadata, types.MaxSalesforceMetadata, path)
			}
			return true
		}
	}
	return false
}
