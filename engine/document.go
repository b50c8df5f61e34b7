package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"unsafe"

	pdfservice "github.com/shelfwise/pdf-service"
)

// document implements pdfservice.Document over one FPDF document handle.
type document struct {
	lib    *pdfium
	handle uintptr
	pinned []byte
	pages  int
	closed bool
}

func (d *document) PageCount() int { return d.pages }

func (d *document) Info() (pdfservice.DocumentInfo, error) {
	return pdfservice.DocumentInfo{
		PageCount: d.pages,
		Title:     d.metaText("Title"),
		Author:    d.metaText("Author"),
	}, nil
}

// metaText reads one entry of the document info dictionary. Missing entries
// come back empty.
func (d *document) metaText(tag string) string {
	// First call with no buffer returns the byte length including the NUL.
	n := d.lib.getMetaText(d.handle, tag, nil, 0)
	if n <= 2 {
		return ""
	}
	buf := make([]byte, n)
	d.lib.getMetaText(d.handle, tag, unsafe.Pointer(&buf[0]), n)
	return decodeUTF16(buf)
}

// withPage loads a page, runs fn against it and closes it again. Pages are
// not cached: PDFium keeps per-page state cheap to reload, and holding pages
// open multiplies native memory by the document size.
func (d *document) withPage(page int, fn func(h uintptr) error) error {
	h := d.lib.loadPage(d.handle, int32(page))
	if h == 0 {
		return fmt.Errorf("load page %d", page)
	}
	defer d.lib.closePage(h)
	return fn(h)
}

// withTextPage loads both the page and its text layer.
func (d *document) withTextPage(page int, fn func(page, text uintptr) error) error {
	return d.withPage(page, func(h uintptr) error {
		t := d.lib.textLoadPage(h)
		if t == 0 {
			return fmt.Errorf("load text layer of page %d", page)
		}
		defer d.lib.textClosePage(t)
		return fn(h, t)
	})
}

func (d *document) PageDimensions(page int) (pdfservice.PageDimensions, error) {
	var dims pdfservice.PageDimensions
	err := d.withPage(page, func(h uintptr) error {
		dims.Width = float64(d.lib.pageWidth(h))
		dims.Height = float64(d.lib.pageHeight(h))
		return nil
	})
	return dims, err
}

// Rendering flags from fpdfview.h.
const (
	renderAnnots   = 0x01
	renderLCDText  = 0x02
	whiteARGB      = 0xFFFFFFFF
	bitmapHasAlpha = 1
)

func (d *document) RenderPage(req pdfservice.RenderRequest) ([]byte, error) {
	scale := req.Scale
	if scale <= 0 {
		scale = 1.0
	}
	var out []byte
	err := d.withPage(req.Page, func(h uintptr) error {
		w := int(float64(d.lib.pageWidth(h))*scale + 0.5)
		ht := int(float64(d.lib.pageHeight(h))*scale + 0.5)
		var err error
		out, err = d.renderBitmap(h, w, ht)
		return err
	})
	return out, err
}

func (d *document) RenderThumbnail(page, maxSize int) ([]byte, error) {
	var out []byte
	err := d.withPage(page, func(h uintptr) error {
		pw := float64(d.lib.pageWidth(h))
		ph := float64(d.lib.pageHeight(h))
		if pw <= 0 || ph <= 0 {
			return fmt.Errorf("page %d has degenerate size %.2fx%.2f", page, pw, ph)
		}

		// Scale so the longer edge lands on maxSize, never upscaling.
		longer := pw
		if ph > longer {
			longer = ph
		}
		scale := float64(maxSize) / longer
		if scale > 1.0 {
			scale = 1.0
		}

		var err error
		out, err = d.renderBitmap(h, int(pw*scale+0.5), int(ph*scale+0.5))
		return err
	})
	return out, err
}

// renderBitmap rasterizes one loaded page into a w x h PNG.
func (d *document) renderBitmap(page uintptr, w, h int) ([]byte, error) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	bmp := d.lib.bitmapCreate(int32(w), int32(h), bitmapHasAlpha)
	if bmp == 0 {
		return nil, fmt.Errorf("create %dx%d bitmap", w, h)
	}
	defer d.lib.bitmapDestroy(bmp)

	d.lib.bitmapFillRect(bmp, 0, 0, int32(w), int32(h), whiteARGB)
	d.lib.renderPage(bmp, page, 0, 0, int32(w), int32(h), 0, renderAnnots|renderLCDText)

	buf := d.lib.bitmapGetBuffer(bmp)
	if buf == 0 {
		return nil, fmt.Errorf("bitmap has no buffer")
	}
	stride := int(d.lib.bitmapGetStride(bmp))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(buf)), stride*h)

	// The bitmap is BGRA with a native stride; swizzle into NRGBA row by row
	// before the native buffer is destroyed.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := raw[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			dst[x*4+0] = src[x*4+2]
			dst[x*4+1] = src[x*4+1]
			dst[x*4+2] = src[x*4+0]
			dst[x*4+3] = src[x*4+3]
		}
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

func (d *document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.lib.closeDocument(d.handle)
	d.handle = 0
	d.pinned = nil
	return nil
}
