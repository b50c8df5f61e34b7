package engine

import (
	"math"
	"runtime"
	"strings"
	"unsafe"

	pdfservice "github.com/shelfwise/pdf-service"
)

func (d *document) PageText(page int) (string, error) {
	var text string
	err := d.withTextPage(page, func(_, t uintptr) error {
		count := d.lib.textCountChars(t)
		if count <= 0 {
			return nil
		}
		text = d.textRange(t, 0, int(count))
		return nil
	})
	return text, err
}

// textRange extracts count characters starting at index start.
func (d *document) textRange(t uintptr, start, count int) string {
	buf := make([]uint16, count+1)
	n := d.lib.textGetText(t, int32(start), int32(count), unsafe.Pointer(&buf[0]))
	if n <= 0 {
		return ""
	}
	raw := make([]byte, 0, int(n)*2)
	for _, u := range buf[:n] {
		raw = append(raw, byte(u), byte(u>>8))
	}
	return decodeUTF16(raw)
}

// charBox is one character's geometry in PDF page space, origin bottom-left.
type charBox struct {
	r        rune
	left     float64
	right    float64
	bottom   float64
	top      float64
	fontSize float64
}

func (d *document) TextLayer(page int) (*pdfservice.TextLayer, error) {
	layer := &pdfservice.TextLayer{Page: page}
	err := d.withTextPage(page, func(h, t uintptr) error {
		layer.Width = float64(d.lib.pageWidth(h))
		layer.Height = float64(d.lib.pageHeight(h))

		count := int(d.lib.textCountChars(t))
		boxes := make([]charBox, 0, count)
		for i := 0; i < count; i++ {
			var b charBox
			b.r = rune(d.lib.textGetUnicode(t, int32(i)))
			if d.lib.textGetCharBox(t, int32(i), &b.left, &b.right, &b.bottom, &b.top) == 0 {
				continue
			}
			b.fontSize = d.lib.textGetFontSize(t, int32(i))
			boxes = append(boxes, b)
		}
		layer.Spans = buildSpans(boxes, layer.Height)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// Span segmentation thresholds, in points relative to the current font size.
const (
	baselineTolerance = 1.0
	gapFactor         = 1.5
)

// buildSpans groups per-character boxes into text runs. A new run starts on a
// line break character, a baseline shift, a font size change, or a horizontal
// gap wider than the glyph advance would explain. Output coordinates use a
// top-left origin.
func buildSpans(boxes []charBox, pageHeight float64) []pdfservice.TextSpan {
	var spans []pdfservice.TextSpan
	var run []charBox

	flush := func() {
		if s, ok := finishSpan(run, pageHeight); ok {
			spans = append(spans, s)
		}
		run = run[:0]
	}

	for _, b := range boxes {
		if b.r == '\n' || b.r == '\r' {
			flush()
			continue
		}
		if len(run) > 0 {
			prev := run[len(run)-1]
			sameLine := math.Abs(b.bottom-prev.bottom) <= baselineTolerance
			sameFont := b.fontSize == prev.fontSize
			gap := b.left - prev.right
			if !sameLine || !sameFont || gap > b.fontSize*gapFactor {
				flush()
			}
		}
		run = append(run, b)
	}
	flush()
	return spans
}

// finishSpan folds one run of boxes into a span. Runs whose text is entirely
// whitespace produce nothing.
func finishSpan(run []charBox, pageHeight float64) (pdfservice.TextSpan, bool) {
	if len(run) == 0 {
		return pdfservice.TextSpan{}, false
	}

	var sb strings.Builder
	left, right := run[0].left, run[0].right
	bottom, top := run[0].bottom, run[0].top
	chars := make([]pdfservice.CharPosition, 0, len(run))
	for _, b := range run {
		sb.WriteRune(b.r)
		left = math.Min(left, b.left)
		right = math.Max(right, b.right)
		bottom = math.Min(bottom, b.bottom)
		top = math.Max(top, b.top)
		chars = append(chars, pdfservice.CharPosition{
			Char:  b.r,
			X:     b.left,
			Width: b.right - b.left,
		})
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return pdfservice.TextSpan{}, false
	}

	return pdfservice.TextSpan{
		Text:     text,
		X:        left,
		Y:        pageHeight - top,
		Width:    right - left,
		Height:   top - bottom,
		FontSize: run[0].fontSize,
		Chars:    chars,
	}, true
}

// snippetRadius is how many characters of context surround a search match.
const snippetRadius = 30

func (d *document) Search(query string, limit int) ([]pdfservice.SearchResult, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	encoded := encodeUTF16(query)

	var results []pdfservice.SearchResult
	for page := 0; page < d.pages && len(results) < limit; page++ {
		err := d.withTextPage(page, func(h, t uintptr) error {
			pageHeight := float64(d.lib.pageHeight(h))
			total := int(d.lib.textCountChars(t))

			find := d.lib.findStart(t, unsafe.Pointer(&encoded[0]), 0, 0)
			if find == 0 {
				return nil
			}
			defer d.lib.findClose(find)

			for len(results) < limit && d.lib.findNext(find) != 0 {
				idx := int(d.lib.findResultIndex(find))
				cnt := int(d.lib.findResultCount(find))

				start := idx - snippetRadius
				if start < 0 {
					start = 0
				}
				end := idx + cnt + snippetRadius
				if end > total {
					end = total
				}

				r := pdfservice.SearchResult{
					Page:      page,
					CharIndex: idx,
					CharCount: cnt,
					Snippet:   strings.TrimSpace(d.textRange(t, start, end-start)),
				}

				// Bound the first matched character for highlighting.
				var left, right, bottom, top float64
				if d.lib.textGetCharBox(t, int32(idx), &left, &right, &bottom, &top) != 0 {
					r.X = left
					r.Y = pageHeight - top
					r.Width = right - left
					r.Height = top - bottom
				}
				results = append(results, r)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	runtime.KeepAlive(encoded)
	return results, nil
}
