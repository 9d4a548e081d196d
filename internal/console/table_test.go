package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatTable_PadsColumns(t *testing.T) {
	lines := formatTable(
		[]string{"Entry", "x", "P(x)"},
		[][]string{
			{"#1", "1.5", "0.25"},
			{"#10", "-20", "0.75"},
		},
		map[int]bool{1: true, 2: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// Right-aligned numeric columns line up on their last character.
	if !strings.HasSuffix(lines[1], "0.25") || !strings.HasSuffix(lines[2], "0.75") {
		t.Fatalf("numeric column not right-aligned: %q / %q", lines[1], lines[2])
	}
	if strings.Index(lines[1], "0.25") != strings.Index(lines[2], "0.75") {
		t.Fatalf("columns not aligned: %q / %q", lines[1], lines[2])
	}
}

func TestFormatTable_NoTrailingSpaces(t *testing.T) {
	lines := formatTable([]string{"a", "b"}, [][]string{{"1", "2"}}, nil)
	for _, line := range lines {
		if line != strings.TrimRight(line, " ") {
			t.Fatalf("line has trailing spaces: %q", line)
		}
	}
}

func TestPrinter_PlainOutputWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Resultf("answer = %v", 42)
	if got := buf.String(); got != "answer = 42\n" {
		t.Fatalf("expected unstyled output, got %q", got)
	}
}
