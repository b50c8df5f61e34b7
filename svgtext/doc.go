// Package svgtext turns a page's text layer into an SVG overlay.
//
// A PDF viewer that shows rasterized pages loses text selection. The fix is
// a second layer: the raster provides the pixels, and an SVG with the same
// viewBox carries invisible text elements at the original glyph positions.
// Selecting in the SVG selects the real text.
//
// Generate emits one text element per span. GenerateWithChars emits one
// tspan per character where character positions are available, which makes
// selection track glyph placement exactly at the cost of larger markup.
package svgtext
