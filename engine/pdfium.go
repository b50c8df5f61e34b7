package engine

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// pdfium holds the resolved FPDF_* entry points of one loaded library. All
// calls must stay on the thread the library was initialized on; the service
// actor guarantees that.
type pdfium struct {
	initLibrary    func()
	destroyLibrary func()
	getLastError   func() uint64

	loadMemDocument func(data unsafe.Pointer, size int32, password unsafe.Pointer) uintptr
	loadDocument    func(path string, password unsafe.Pointer) uintptr
	closeDocument   func(doc uintptr)
	getPageCount    func(doc uintptr) int32
	getMetaText     func(doc uintptr, tag string, buffer unsafe.Pointer, buflen uint32) uint32

	loadPage   func(doc uintptr, index int32) uintptr
	closePage  func(page uintptr)
	pageWidth  func(page uintptr) float32
	pageHeight func(page uintptr) float32

	bitmapCreate    func(width, height, alpha int32) uintptr
	bitmapFillRect  func(bitmap uintptr, left, top, width, height int32, color uint64)
	renderPage      func(bitmap, page uintptr, startX, startY, sizeX, sizeY, rotate, flags int32)
	bitmapGetBuffer func(bitmap uintptr) uintptr
	bitmapGetStride func(bitmap uintptr) int32
	bitmapDestroy   func(bitmap uintptr)

	textLoadPage     func(page uintptr) uintptr
	textClosePage    func(textPage uintptr)
	textCountChars   func(textPage uintptr) int32
	textGetText      func(textPage uintptr, start, count int32, result unsafe.Pointer) int32
	textGetUnicode   func(textPage uintptr, index int32) uint32
	textGetCharBox   func(textPage uintptr, index int32, left, right, bottom, top *float64) int32
	textGetFontSize  func(textPage uintptr, index int32) float64
	findStart        func(textPage uintptr, findWhat unsafe.Pointer, flags uint64, startIndex int32) uintptr
	findNext         func(handle uintptr) int32
	findResultIndex  func(handle uintptr) int32
	findResultCount  func(handle uintptr) int32
	findClose        func(handle uintptr)
}

// bindSymbols resolves every FPDF symbol the engine uses. A library that is
// missing any of them is rejected so discovery can try the next candidate.
func bindSymbols(handle uintptr) (lib *pdfium, err error) {
	defer func() {
		// purego panics on a missing symbol; turn that into an error.
		if r := recover(); r != nil {
			lib, err = nil, fmt.Errorf("resolve symbols: %v", r)
		}
	}()

	lib = &pdfium{}
	purego.RegisterLibFunc(&lib.initLibrary, handle, "FPDF_InitLibrary")
	purego.RegisterLibFunc(&lib.destroyLibrary, handle, "FPDF_DestroyLibrary")
	purego.RegisterLibFunc(&lib.getLastError, handle, "FPDF_GetLastError")

	purego.RegisterLibFunc(&lib.loadMemDocument, handle, "FPDF_LoadMemDocument")
	purego.RegisterLibFunc(&lib.loadDocument, handle, "FPDF_LoadDocument")
	purego.RegisterLibFunc(&lib.closeDocument, handle, "FPDF_CloseDocument")
	purego.RegisterLibFunc(&lib.getPageCount, handle, "FPDF_GetPageCount")
	purego.RegisterLibFunc(&lib.getMetaText, handle, "FPDF_GetMetaText")

	purego.RegisterLibFunc(&lib.loadPage, handle, "FPDF_LoadPage")
	purego.RegisterLibFunc(&lib.closePage, handle, "FPDF_ClosePage")
	purego.RegisterLibFunc(&lib.pageWidth, handle, "FPDF_GetPageWidthF")
	purego.RegisterLibFunc(&lib.pageHeight, handle, "FPDF_GetPageHeightF")

	purego.RegisterLibFunc(&lib.bitmapCreate, handle, "FPDFBitmap_Create")
	purego.RegisterLibFunc(&lib.bitmapFillRect, handle, "FPDFBitmap_FillRect")
	purego.RegisterLibFunc(&lib.renderPage, handle, "FPDF_RenderPageBitmap")
	purego.RegisterLibFunc(&lib.bitmapGetBuffer, handle, "FPDFBitmap_GetBuffer")
	purego.RegisterLibFunc(&lib.bitmapGetStride, handle, "FPDFBitmap_GetStride")
	purego.RegisterLibFunc(&lib.bitmapDestroy, handle, "FPDFBitmap_Destroy")

	purego.RegisterLibFunc(&lib.textLoadPage, handle, "FPDFText_LoadPage")
	purego.RegisterLibFunc(&lib.textClosePage, handle, "FPDFText_ClosePage")
	purego.RegisterLibFunc(&lib.textCountChars, handle, "FPDFText_CountChars")
	purego.RegisterLibFunc(&lib.textGetText, handle, "FPDFText_GetText")
	purego.RegisterLibFunc(&lib.textGetUnicode, handle, "FPDFText_GetUnicode")
	purego.RegisterLibFunc(&lib.textGetCharBox, handle, "FPDFText_GetCharBox")
	purego.RegisterLibFunc(&lib.textGetFontSize, handle, "FPDFText_GetFontSize")
	purego.RegisterLibFunc(&lib.findStart, handle, "FPDFText_FindStart")
	purego.RegisterLibFunc(&lib.findNext, handle, "FPDFText_FindNext")
	purego.RegisterLibFunc(&lib.findResultIndex, handle, "FPDFText_GetSchResultIndex")
	purego.RegisterLibFunc(&lib.findResultCount, handle, "FPDFText_GetSchCount")
	purego.RegisterLibFunc(&lib.findClose, handle, "FPDFText_FindClose")
	return lib, nil
}

// FPDF_GetLastError codes, from fpdfview.h.
const (
	errSuccess  = 0
	errUnknown  = 1
	errFile     = 2
	errFormat   = 3
	errPassword = 4
	errSecurity = 5
	errPage     = 6
)

// lastErrorString renders the library's last-error code for open failures.
func (lib *pdfium) lastErrorString() string {
	switch lib.getLastError() {
	case errSuccess:
		return "no error reported"
	case errFile:
		return "file not found or could not be read"
	case errFormat:
		return "file is not a PDF or is corrupted"
	case errPassword:
		return "document is password protected"
	case errSecurity:
		return "unsupported security scheme"
	case errPage:
		return "page not found or content error"
	default:
		return "unknown error"
	}
}
