package pdfservice

// Engine is a bound instance of the native PDF library. Exactly one Engine
// exists per process and it is owned by the service actor: every method must
// be called from the thread the Engine was created on, for the Engine's
// whole lifetime.
type Engine interface {
	// OpenBytes parses a document from an in-memory buffer. The Engine keeps
	// a reference to data until the returned Document is closed.
	OpenBytes(data []byte) (Document, error)

	// OpenPath parses a document from a file on disk.
	OpenPath(path string) (Document, error)

	// Close tears the native library down. All Documents opened through this
	// Engine must be closed first.
	Close() error
}

// Document is one opened PDF. Not safe for concurrent use; the actor is the
// only caller.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Info returns document-level metadata.
	Info() (DocumentInfo, error)

	// RenderPage rasterizes one page and returns encoded PNG bytes.
	RenderPage(req RenderRequest) ([]byte, error)

	// RenderThumbnail rasterizes one page scaled so that its longer edge is
	// at most maxSize pixels.
	RenderThumbnail(page, maxSize int) ([]byte, error)

	// TextLayer returns the positioned text spans of one page, with
	// per-character sub-positions where the engine reports them.
	TextLayer(page int) (*TextLayer, error)

	// PageText returns the plain text of one page.
	PageText(page int) (string, error)

	// PageDimensions returns the size of one page in points.
	PageDimensions(page int) (PageDimensions, error)

	// Search scans the whole document for query and returns up to limit
	// matches in page order.
	Search(query string, limit int) ([]SearchResult, error)

	// Close releases the native document.
	Close() error
}

// DocumentInfo is the derived metadata computed once when a document is
// opened and cached alongside it.
type DocumentInfo struct {
	Key       string           `json:"key"`
	PageCount int              `json:"page_count"`
	Title     string           `json:"title,omitempty"`
	Author    string           `json:"author,omitempty"`
	Pages     []PageDimensions `json:"pages"`
}

// PageDimensions is a page size in PDF points (1/72 inch).
type PageDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderRequest describes one page rasterization.
type RenderRequest struct {
	// Page is the zero-based page index.
	Page int `json:"page"`

	// Scale multiplies the page's point size to produce pixel dimensions.
	// 1.0 renders at 72 dpi; 0 means 1.0.
	Scale float64 `json:"scale,omitempty"`
}

// TextLayer is the recovered text of one page, positioned in page space with
// a top-left origin.
type TextLayer struct {
	Page   int        `json:"page"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Spans  []TextSpan `json:"spans"`
}

// TextSpan is one run of text. X and Y locate the span's top-left corner.
type TextSpan struct {
	Text     string         `json:"text"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	FontSize float64        `json:"font_size"`
	Chars    []CharPosition `json:"chars,omitempty"`
}

// CharPosition is a character-level sub-position within a span.
type CharPosition struct {
	Char  rune    `json:"char"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// SearchResult is one match location.
type SearchResult struct {
	// Page is the zero-based page the match was found on.
	Page int `json:"page"`

	// CharIndex and CharCount locate the match within the page's text.
	CharIndex int `json:"char_index"`
	CharCount int `json:"char_count"`

	// Snippet is the surrounding text, for result lists.
	Snippet string `json:"snippet"`

	// X, Y, Width and Height bound the first matched character in page
	// space with a top-left origin.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
