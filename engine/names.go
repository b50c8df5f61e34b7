package engine

import (
	"path/filepath"
	"runtime"
)

// Library discovery locations, probed in order. The working directory comes
// first so a bundled library beats whatever the system ships.
var searchDirs = []string{
	".",
	"/usr/lib",
	"/usr/local/lib",
}

// libraryName returns the platform file name of the PDFium shared library.
func libraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libpdfium.dylib"
	case "windows":
		return "pdfium.dll"
	default:
		return "libpdfium.so"
	}
}

// candidatePaths returns the ordered list of paths to try. dirs overrides the
// built-in search directories when non-empty. The bare library name is always
// appended last so the system loader's own search path gets a chance.
func candidatePaths(dirs []string) []string {
	if len(dirs) == 0 {
		dirs = searchDirs
	}
	name := libraryName()
	paths := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		paths = append(paths, filepath.Join(d, name))
	}
	return append(paths, name)
}
