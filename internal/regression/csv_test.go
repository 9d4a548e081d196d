package regression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV_HeaderAndMalformedLine(t *testing.T) {
	input := "x,y\n1,2\nnot a point\n3,4\n5,6\n"

	e := NewEngine()
	added, skipped, err := e.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, added)
	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Line)
	assert.Equal(t, []Point{{1, 2}, {3, 4}, {5, 6}}, e.Points())
}

func TestImportCSV_BadNumbers(t *testing.T) {
	input := "1,2\nfoo,3\n4,bar\n5,6\n"

	e := NewEngine()
	added, skipped, err := e.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, added)
	assert.Len(t, skipped, 2)
}

func TestImportCSV_AppendsToExistingPoints(t *testing.T) {
	e := NewEngine()
	e.AddPoint(0, 0)

	added, _, err := e.ImportCSV(strings.NewReader("1,1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, e.Len())
}

func TestExportCSV_RoundTrip(t *testing.T) {
	e := NewEngine()
	e.AddPoint(1.5, -2.25)
	e.AddPoint(0, 3)
	e.AddPoint(100.125, 0.0001)

	var buf bytes.Buffer
	require.NoError(t, e.ExportCSV(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "\"x\",\"y\"\n"))

	back := NewEngine()
	added, skipped, err := back.ImportCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 3, added)
	assert.Equal(t, e.Points(), back.Points())
}
