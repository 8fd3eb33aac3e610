package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/filesystem"
)

// FindFileInSourceDirs locates a file named in a coverage report. The path is tried
// as is, then below each source directory with ever shorter suffixes of the path, so
// "C:\build\App\Calc.cs" is found as "<dir>/App/Calc.cs" or "<dir>/Calc.cs" on a
// machine where the report was not produced. Both '/' and '\' separate path parts.
func FindFileInSourceDirs(reportPath string, sourceDirs []string, fsys filesystem.Filesystem) (string, error) {
	if isFile(fsys, reportPath) {
		return reportPath, nil
	}

	parts := splitPath(reportPath)
	for _, dir := range sourceDirs {
		dir = filepath.Clean(dir)
		for i := range parts {
			candidate := filepath.Join(append([]string{dir}, parts[i:]...)...)
			if isFile(fsys, candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("file %q not found in any source directory (%v) or as absolute path", reportPath, sourceDirs)
}

func isFile(fsys filesystem.Filesystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// splitPath splits on both separators and drops a Windows volume name.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if len(parts) == 0 && len(p) == 2 && p[1] == ':' {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}
