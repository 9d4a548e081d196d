package plot

import (
	"bytes"
	"strings"
	"testing"
)

func TestScatter_NoPoints(t *testing.T) {
	var buf bytes.Buffer
	if err := Scatter(&buf, "empty", nil, nil, 40, 10); err != ErrNoPoints {
		t.Fatalf("Scatter on empty set = %v, want ErrNoPoints", err)
	}
}

func TestScatter_RendersTitleAxesAndLegend(t *testing.T) {
	pts := []Point{{1, 1}, {2, 2}, {3, 2}, {4, 3}}
	lines := []Line{{Name: "Y-hat", Intercept: 0.9, Slope: 0.6}}
	var buf bytes.Buffer
	if err := Scatter(&buf, "Scatter plot", pts, lines, 40, 10); err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Scatter plot\n") {
		t.Errorf("missing title line:\n%s", out)
	}
	if !strings.Contains(out, "x: 1 .. 4") {
		t.Errorf("missing x axis range:\n%s", out)
	}
	if !strings.Contains(out, "Legend:") || !strings.Contains(out, "Y-hat (solid)") {
		t.Errorf("missing legend entries:\n%s", out)
	}
	// Not a terminal, so no escape sequences.
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color codes written to a plain buffer:\n%q", out)
	}
	// title + height rows + x axis + legend
	if got := strings.Count(out, "\n"); got != 1+10+1+1 {
		t.Errorf("line count = %d, want 13:\n%s", got, out)
	}
}

func TestScatter_YLabelsOnFirstAndLastRow(t *testing.T) {
	pts := []Point{{0, -5}, {10, 25}}
	var buf bytes.Buffer
	if err := Scatter(&buf, "", pts, nil, 30, 8); err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	rows := strings.Split(buf.String(), "\n")
	if !strings.Contains(rows[0], "25 | ") {
		t.Errorf("top row lacks max-y label: %q", rows[0])
	}
	if !strings.Contains(rows[7], "-5 | ") {
		t.Errorf("bottom row lacks min-y label: %q", rows[7])
	}
}

func TestScatter_SinglePointWidensBounds(t *testing.T) {
	var buf bytes.Buffer
	if err := Scatter(&buf, "", []Point{{3, 3}}, nil, 20, 6); err != nil {
		t.Fatalf("Scatter on a single point: %v", err)
	}
	if !strings.Contains(buf.String(), "x: 2 .. 4") {
		t.Errorf("flat x range not widened:\n%s", buf.String())
	}
}

func TestScatter_SwappedLineStaysInBounds(t *testing.T) {
	pts := []Point{{1, 1}, {4, 3}}
	lines := []Line{{Name: "X-hat", Intercept: -0.5, Slope: 1.5, Swapped: true}}
	var buf bytes.Buffer
	if err := Scatter(&buf, "", pts, lines, 30, 8); err != nil {
		t.Fatalf("Scatter with swapped line: %v", err)
	}
	if !strings.Contains(buf.String(), "X-hat") {
		t.Errorf("swapped line missing from legend:\n%s", buf.String())
	}
}

func TestLineStyle(t *testing.T) {
	solid := lineStyles[0]
	for i := 0; i < 10; i++ {
		if !solid.shouldPlot(i) {
			t.Fatalf("solid style skipped dot %d", i)
		}
	}
	dashed := lineStyles[1]
	on := 0
	for i := 0; i < 12; i++ {
		if dashed.shouldPlot(i) {
			on++
		}
	}
	if on != 6 {
		t.Errorf("dashed style plotted %d of 12 dots, want 6", on)
	}
}

func TestBrailleDotMask_AllDotsDistinct(t *testing.T) {
	seen := map[uint8]bool{}
	for x := 0; x < 2; x++ {
		for y := 0; y < 4; y++ {
			m := brailleDotMask(x, y)
			if m == 0 || seen[m] {
				t.Fatalf("mask for (%d,%d) = %#x invalid or duplicated", x, y, m)
			}
			seen[m] = true
		}
	}
}
