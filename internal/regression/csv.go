package regression

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SkipReport describes one input line rejected during import.
type SkipReport struct {
	// Line is the 1-based line number in the source.
	Line int
	// Reason explains why the line was skipped.
	Reason string
}

// ImportCSV appends points from comma-separated x,y lines. A first line whose
// leading field contains the token "x" is treated as a header and skipped.
// Lines without a field separator and lines with unparsable numbers are
// reported and skipped; they never abort the import.
func (e *Engine) ImportCSV(r io.Reader) (added int, skipped []SkipReport, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	line := 0
	for {
		record, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		line++
		if readErr != nil {
			var parseErr *csv.ParseError
			if errors.As(readErr, &parseErr) {
				skipped = append(skipped, SkipReport{Line: line, Reason: readErr.Error()})
				continue
			}
			return added, skipped, fmt.Errorf("read csv: %w", readErr)
		}
		if line == 1 && len(record) > 0 && strings.Contains(strings.ToLower(record[0]), "x") {
			// Header line.
			continue
		}
		if len(record) < 2 {
			skipped = append(skipped, SkipReport{Line: line, Reason: "no ',' separator; expected x,y"})
			continue
		}
		x, xErr := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if xErr != nil {
			skipped = append(skipped, SkipReport{Line: line, Reason: fmt.Sprintf("bad x value %q", record[0])})
			continue
		}
		y, yErr := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if yErr != nil {
			skipped = append(skipped, SkipReport{Line: line, Reason: fmt.Sprintf("bad y value %q", record[1])})
			continue
		}
		e.AddPoint(x, y)
		added++
	}
	return added, skipped, nil
}

// ExportCSV writes the point set as a quoted header line followed by one x,y
// line per point in entry order.
func (e *Engine) ExportCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, `"x","y"`); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	cw := csv.NewWriter(w)
	for _, p := range e.points {
		record := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write point: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
