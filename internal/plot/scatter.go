// Package plot renders braille-cell scatter plots of a point set with the
// fitted regression lines overlaid, sized to the terminal.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Point is one observation to scatter.
type Point struct {
	X float64
	Y float64
}

// Line is a fitted line drawn across the plot. A Swapped line predicts x
// from y (the reverse regression line) and is traced along the y axis.
type Line struct {
	Name      string
	Intercept float64
	Slope     float64
	Swapped   bool
}

// ErrNoPoints is returned when there is nothing to plot.
var ErrNoPoints = errors.New("no points to plot")

const (
	defaultHeight = 12
	minWidth      = 10
	widthFallback = 80
	colorReset    = "\x1b[0m"
)

type lineStyle struct {
	name   string
	period int
	on     int
}

func (ls lineStyle) shouldPlot(i int) bool {
	if ls.period <= 1 {
		return true
	}
	if i < 0 {
		i = -i
	}
	return i%ls.period < ls.on
}

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var palette = []string{
	"\x1b[36m", // cyan: the scatter itself
	"\x1b[31m", // red: forward line
	"\x1b[32m", // green: reverse line
	"\x1b[33m", // yellow
}

// Scatter renders the points and lines to w. A non-positive width or height
// selects an automatic size from the terminal.
func Scatter(w io.Writer, title string, pts []Point, lines []Line, width, height int) error {
	if len(pts) == 0 {
		return ErrNoPoints
	}
	if height <= 0 {
		height = defaultHeight
	}
	if width <= 0 {
		width = autoWidth()
	}
	if width < minWidth {
		width = minWidth
	}

	minX, maxX, minY, maxY := bounds(pts)

	dotsW := width * 2
	dotsH := height * 4

	// One braille layer per drawable: points first, then each line.
	layers := make([][][]uint8, 1+len(lines))
	for i := range layers {
		layers[i] = makeCells(height, width)
	}

	for _, p := range pts {
		dx := scaleTo(p.X, minX, maxX, dotsW)
		dy := scaleTo(p.Y, minY, maxY, dotsH)
		setBrailleDot(layers[0], dx, dotsH-1-dy)
	}

	for li, l := range lines {
		style := lineStyles[li%len(lineStyles)]
		if l.Swapped {
			for dy := 0; dy < dotsH; dy++ {
				y := unscale(dy, minY, maxY, dotsH)
				x := l.Intercept + l.Slope*y
				if x < minX || x > maxX {
					continue
				}
				if style.shouldPlot(dy) {
					dx := scaleTo(x, minX, maxX, dotsW)
					setBrailleDot(layers[1+li], dx, dotsH-1-dy)
				}
			}
			continue
		}
		for dx := 0; dx < dotsW; dx++ {
			x := unscale(dx, minX, maxX, dotsW)
			y := l.Intercept + l.Slope*x
			if y < minY || y > maxY {
				continue
			}
			if style.shouldPlot(dx) {
				dy := scaleTo(y, minY, maxY, dotsH)
				setBrailleDot(layers[1+li], dx, dotsH-1-dy)
			}
		}
	}

	useColor := shouldUseColor(w)

	topLabel := formatVal(maxY)
	bottomLabel := formatVal(minY)
	labelWidth := len(topLabel)
	if len(bottomLabel) > labelWidth {
		labelWidth = len(bottomLabel)
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = topLabel
		case height - 1:
			label = bottomLabel
		}
		var row strings.Builder
		fmt.Fprintf(&row, "%*s | ", labelWidth, label)
		for x := 0; x < width; x++ {
			mask, layerIdx := composeCell(layers, x, y)
			ch := brailleFromMask(mask)
			if useColor && layerIdx >= 0 {
				row.WriteString(palette[layerIdx%len(palette)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	xAxis := fmt.Sprintf("%*s + x: %s .. %s", labelWidth, "", formatVal(minX), formatVal(maxX))
	if _, err := fmt.Fprintln(w, xAxis); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, legend(lines, useColor)); err != nil {
		return err
	}
	return nil
}

func bounds(pts []Point) (minX, maxX, minY, maxY float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	// Widen flat ranges so every point maps inside the grid.
	if maxX-minX < 1e-9 {
		minX--
		maxX++
	}
	if maxY-minY < 1e-9 {
		minY--
		maxY++
	}
	return minX, maxX, minY, maxY
}

func scaleTo(v, minV, maxV float64, dots int) int {
	pos := (v - minV) / (maxV - minV)
	d := int(math.Round(pos * float64(dots-1)))
	if d < 0 {
		d = 0
	}
	if d >= dots {
		d = dots - 1
	}
	return d
}

func unscale(d int, minV, maxV float64, dots int) float64 {
	return minV + float64(d)*(maxV-minV)/float64(dots-1)
}

func formatVal(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func autoWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = widthFallback
	}
	// Leave room for the y-axis label column.
	w := width - 12
	if w < minWidth {
		w = minWidth
	}
	return w
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func legend(lines []Line, useColor bool) string {
	marker := brailleFromMask(0x01)
	parts := []string{colorize(fmt.Sprintf("%c points", marker), 0, useColor)}
	for i, l := range lines {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("line %d", i+1)
		}
		styleName := lineStyles[i%len(lineStyles)].name
		parts = append(parts, colorize(fmt.Sprintf("%c %s (%s)", marker, name, styleName), 1+i, useColor))
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func colorize(s string, layerIdx int, useColor bool) string {
	if !useColor {
		return s
	}
	return palette[layerIdx%len(palette)] + s + colorReset
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	layerIdx := -1
	for i, cells := range layers {
		if y >= len(cells) || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if layerIdx == -1 {
			layerIdx = i
		}
		mask |= cellMask
	}
	return mask, layerIdx
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
