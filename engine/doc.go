// Package engine binds the native PDFium shared library and exposes it
// behind the Engine and Document interfaces of the root package.
//
// # Discovery
//
// Bind probes an ordered list of locations for the platform library name
// (libpdfium.so, libpdfium.dylib or pdfium.dll): the working directory
// first, then /usr/lib and /usr/local/lib, and finally the bare name so
// the system loader's own search path applies. The first location that
// both loads and resolves every required FPDF symbol wins. A location
// that loads but is missing symbols counts as a failed candidate and the
// chain continues. When every candidate fails, the returned error lists
// each location with its individual failure.
//
// # Thread affinity
//
// PDFium keeps global state and is not thread-safe. Bind initializes the
// library on the calling thread and everything returned from it inherits
// that affinity: all Engine and Document calls, through to the final
// Close, must happen on the thread Bind ran on. The service package
// enforces this by running Bind and all later calls on one locked OS
// thread; code using this package directly must do the same.
//
// # Coordinates
//
// PDF page space puts the origin at the bottom-left with y growing up.
// Everything this package returns is converted to a top-left origin with
// y growing down, which is what raster images and SVG overlays expect.
package engine
