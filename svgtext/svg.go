package svgtext

import (
	"html"
	"strconv"
	"strings"

	pdfservice "github.com/shelfwise/pdf-service"
)

const (
	styleText     = `<style>text { fill: transparent; user-select: text; cursor: text; }</style>`
	styleTextSpan = `<style>text { fill: transparent; user-select: text; cursor: text; } tspan { white-space: pre; }</style>`

	// SVG text anchors at the baseline while span positions are top-left;
	// this factor of the font size approximates the baseline offset.
	baselineFactor = 0.85
)

// sanitizeXML strips the control characters XML 1.0 forbids. Tab, newline
// and carriage return stay; everything else below space is dropped.
func sanitizeXML(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' || r >= ' ' {
			return r
		}
		return -1
	}, s)
}

// dim formats a page dimension the shortest way, so integral point sizes
// come out without a decimal part.
func dim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pos formats a coordinate with two decimals.
func pos(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeHeader(b *strings.Builder, layer *pdfservice.TextLayer, style string) {
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)
	b.WriteString(dim(layer.Width))
	b.WriteByte(' ')
	b.WriteString(dim(layer.Height))
	b.WriteString(`" preserveAspectRatio="none">`)
	b.WriteString(style)
}

func writeTextElement(b *strings.Builder, span pdfservice.TextSpan, baseline float64) {
	b.WriteString(`<text x="`)
	b.WriteString(pos(span.X))
	b.WriteString(`" y="`)
	b.WriteString(pos(baseline))
	b.WriteString(`" font-size="`)
	b.WriteString(pos(span.FontSize))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(sanitizeXML(span.Text)))
	b.WriteString(`</text>`)
}

// Generate renders a text layer as an SVG overlay. The markup mirrors the
// page geometry: a viewBox in PDF points and one transparent text element
// per span, positioned at the span's coordinates. Layered over the page
// raster it makes the text selectable without being visible.
func Generate(layer *pdfservice.TextLayer) string {
	var b strings.Builder
	b.Grow(len(layer.Spans)*200 + 256)
	writeHeader(&b, layer, styleText)

	for _, span := range layer.Spans {
		if strings.TrimSpace(span.Text) == "" {
			continue
		}
		writeTextElement(&b, span, span.Y+span.FontSize*baselineFactor)
	}

	b.WriteString("</svg>")
	return b.String()
}

// GenerateWithChars is like Generate but emits one tspan per character for
// spans that carry character positions, giving selection that tracks the
// exact glyph placement. Spans without character positions fall back to a
// plain text element.
func GenerateWithChars(layer *pdfservice.TextLayer) string {
	var b strings.Builder
	b.Grow(len(layer.Spans)*400 + 256)
	writeHeader(&b, layer, styleTextSpan)

	for _, span := range layer.Spans {
		if strings.TrimSpace(span.Text) == "" {
			continue
		}
		baseline := span.Y + span.FontSize*baselineFactor

		if len(span.Chars) == 0 {
			writeTextElement(&b, span, baseline)
			continue
		}

		b.WriteString(`<text y="`)
		b.WriteString(pos(baseline))
		b.WriteString(`" font-size="`)
		b.WriteString(pos(span.FontSize))
		b.WriteString(`">`)
		for _, cp := range span.Chars {
			c := sanitizeXML(string(cp.Char))
			if c == "" {
				continue
			}
			b.WriteString(`<tspan x="`)
			b.WriteString(pos(cp.X))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(c))
			b.WriteString(`</tspan>`)
		}
		b.WriteString(`</text>`)
	}

	b.WriteString("</svg>")
	return b.String()
}
