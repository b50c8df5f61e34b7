package engine

import (
	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	pdfservice "github.com/shelfwise/pdf-service"
	"github.com/shelfwise/pdf-service/errors"
)

// Config holds configuration for binding the native library.
type Config struct {
	// Dirs overrides the default search directories. Each entry is probed
	// for the platform library name, in order; the system loader's default
	// search path is always tried last.
	Dirs []string
}

// loadLibrary opens one shared-library path. Swappable in tests.
var loadLibrary = func(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// Bind locates the PDFium shared library, loads it, resolves its symbols and
// initializes it. The returned Engine is bound to the calling thread: every
// later call, including Close, must come from that same thread.
//
// Each candidate location is tried in order and the first successful load
// wins. If no candidate works, the error lists every attempt.
func Bind(cfg *Config) (pdfservice.Engine, error) {
	var dirs []string
	if cfg != nil {
		dirs = cfg.Dirs
	}

	var attempts []errors.BindAttempt
	for _, path := range candidatePaths(dirs) {
		handle, err := loadLibrary(path)
		if err != nil {
			attempts = append(attempts, errors.BindAttempt{Location: path, Err: err})
			continue
		}

		lib, err := bindSymbols(handle)
		if err != nil {
			// Loaded but unusable: a wrong or truncated build. Keep probing.
			attempts = append(attempts, errors.BindAttempt{Location: path, Err: err})
			continue
		}

		lib.initLibrary()
		Logger().Info("pdfium bound", zap.String("path", path))
		return &nativeEngine{lib: lib}, nil
	}

	return nil, errors.NewBindError(attempts)
}
