package engine

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	pdfservice "github.com/shelfwise/pdf-service"
)

func errOpen(detail string) error {
	return fmt.Errorf("open document: %s", detail)
}

// nativeEngine implements pdfservice.Engine over a loaded PDFium library.
type nativeEngine struct {
	lib    *pdfium
	closed bool
}

func (e *nativeEngine) OpenBytes(data []byte) (pdfservice.Document, error) {
	if len(data) == 0 {
		return nil, errOpen("empty document data")
	}

	handle := e.lib.loadMemDocument(unsafe.Pointer(&data[0]), int32(len(data)), nil)
	if handle == 0 {
		return nil, errOpen(e.lib.lastErrorString())
	}

	// The library reads from data lazily; the document pins the slice so the
	// GC cannot collect it while pages are still being loaded.
	return e.newDocument(handle, data), nil
}

func (e *nativeEngine) OpenPath(path string) (pdfservice.Document, error) {
	handle := e.lib.loadDocument(path, nil)
	if handle == 0 {
		return nil, errOpen(e.lib.lastErrorString())
	}
	return e.newDocument(handle, nil), nil
}

func (e *nativeEngine) newDocument(handle uintptr, pinned []byte) *document {
	return &document{
		lib:    e.lib,
		handle: handle,
		pinned: pinned,
		pages:  int(e.lib.getPageCount(handle)),
	}
}

func (e *nativeEngine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.lib.destroyLibrary()
	Logger().Info("pdfium released", zap.String("component", "engine"))
	return nil
}
