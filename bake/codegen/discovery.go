package codegen

import (
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"strings"
)

// PackageInfo is a directory holding a Go package.
type PackageInfo struct {
	Dir   string
	Name  string
	Files []string
}

// DiscoverPackages discovers Go packages in the given directory.
// If recursive is true, it scans subdirectories recursively.
func DiscoverPackages(dir string, recursive bool) ([]*PackageInfo, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}

	var packages []*PackageInfo

	err = filepath.Walk(absDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		// Skip hidden directories, vendor and testdata
		base := filepath.Base(path)
		if path != absDir && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
			return filepath.SkipDir
		}
		if !recursive && path != absDir {
			return filepath.SkipDir
		}

		pkg, err := build.ImportDir(path, 0)
		if err != nil || len(pkg.GoFiles) == 0 {
			// Not a Go package
			return nil
		}

		files := make([]string, 0, len(pkg.GoFiles))
		for _, f := range pkg.GoFiles {
			files = append(files, filepath.Join(path, f))
		}
		packages = append(packages, &PackageInfo{
			Dir:   path,
			Name:  pkg.Name,
			Files: files,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}

	return packages, nil
}
