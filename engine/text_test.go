package engine

import (
	"math"
	"testing"
)

// box builds a charBox on a given baseline. Page space: origin bottom-left.
func box(r rune, left, bottom, width, fontSize float64) charBox {
	return charBox{
		r:        r,
		left:     left,
		right:    left + width,
		bottom:   bottom,
		top:      bottom + fontSize,
		fontSize: fontSize,
	}
}

func line(text string, left, bottom, charWidth, fontSize float64) []charBox {
	boxes := make([]charBox, 0, len(text))
	for i, r := range text {
		boxes = append(boxes, box(r, left+float64(i)*charWidth, bottom, charWidth, fontSize))
	}
	return boxes
}

func TestBuildSpans_SingleRun(t *testing.T) {
	spans := buildSpans(line("Hello", 72, 700, 6, 12), 792)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Text != "Hello" {
		t.Errorf("Text = %q", s.Text)
	}
	if s.X != 72 {
		t.Errorf("X = %v, want 72", s.X)
	}
	// Top of the run is at 700+12 = 712 in PDF space, so 792-712 = 80 from
	// the top edge.
	if s.Y != 80 {
		t.Errorf("Y = %v, want 80", s.Y)
	}
	if s.Width != 30 {
		t.Errorf("Width = %v, want 30", s.Width)
	}
	if s.Height != 12 {
		t.Errorf("Height = %v, want 12", s.Height)
	}
	if s.FontSize != 12 {
		t.Errorf("FontSize = %v", s.FontSize)
	}
	if len(s.Chars) != 5 {
		t.Fatalf("Chars = %d, want 5", len(s.Chars))
	}
	if s.Chars[1].Char != 'e' || s.Chars[1].X != 78 || s.Chars[1].Width != 6 {
		t.Errorf("Chars[1] = %+v", s.Chars[1])
	}
}

func TestBuildSpans_NewlineSplits(t *testing.T) {
	boxes := line("ab", 72, 700, 6, 12)
	boxes = append(boxes, box('\n', 84, 700, 0, 12))
	boxes = append(boxes, line("cd", 72, 680, 6, 12)...)

	spans := buildSpans(boxes, 792)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Text != "ab" || spans[1].Text != "cd" {
		t.Errorf("texts = %q, %q", spans[0].Text, spans[1].Text)
	}
	if spans[1].Y <= spans[0].Y {
		t.Errorf("second line must be below the first: %v vs %v", spans[1].Y, spans[0].Y)
	}
}

func TestBuildSpans_BaselineShiftSplits(t *testing.T) {
	boxes := append(line("up", 72, 700, 6, 12), line("dn", 90, 650, 6, 12)...)
	spans := buildSpans(boxes, 792)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %+v", len(spans), spans)
	}
}

func TestBuildSpans_FontSizeChangeSplits(t *testing.T) {
	boxes := append(line("big", 72, 700, 12, 24), line("sm", 110, 700, 6, 12)...)
	spans := buildSpans(boxes, 792)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].FontSize != 24 || spans[1].FontSize != 12 {
		t.Errorf("font sizes = %v, %v", spans[0].FontSize, spans[1].FontSize)
	}
}

func TestBuildSpans_WideGapSplits(t *testing.T) {
	// Two columns on the same baseline, 100pt apart.
	boxes := append(line("left", 72, 700, 6, 12), line("right", 200, 700, 6, 12)...)
	spans := buildSpans(boxes, 792)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
}

func TestBuildSpans_WhitespaceOnlyDropped(t *testing.T) {
	boxes := []charBox{
		box(' ', 72, 700, 3, 12),
		box('\t', 75, 700, 3, 12),
	}
	if spans := buildSpans(boxes, 792); len(spans) != 0 {
		t.Errorf("whitespace-only run should produce no spans, got %+v", spans)
	}
}

func TestBuildSpans_SmallBaselineJitterTolerated(t *testing.T) {
	boxes := []charBox{
		box('a', 72, 700, 6, 12),
		box('b', 78, 700.5, 6, 12), // sub-point jitter, same visual line
	}
	spans := buildSpans(boxes, 792)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Text != "ab" {
		t.Errorf("Text = %q", spans[0].Text)
	}
	// Union box spans the jitter.
	if math.Abs(spans[0].Height-12.5) > 1e-9 {
		t.Errorf("Height = %v, want 12.5", spans[0].Height)
	}
}

func TestBuildSpans_Empty(t *testing.T) {
	if spans := buildSpans(nil, 792); len(spans) != 0 {
		t.Errorf("got %+v", spans)
	}
}
