package session_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/helper"
	"github.com/calev/stathelper/internal/session"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want session.Kind
		ok   bool
	}{
		{"normal", session.KindNormal, true},
		{"chi2", session.KindChiSquare, true},
		{"linear", session.KindLinear, true},
		{"binomial", session.KindBinomial, true},
		{"table", session.KindTable, true},
		{"proportion", session.KindProportion, true},
		{"diff of proportions", session.KindDiffProp, true},
		{"regression", session.KindRegression, true},
		{"helper types", session.KindHelperTypes, true},
		{"exit", session.KindExit, true},
		{"n", session.KindNormal, true},
		{"c", session.KindChiSquare, true},
		{"l", session.KindLinear, true},
		{"b", session.KindBinomial, true},
		{"t", session.KindTable, true},
		{"p", session.KindProportion, true},
		{"d", session.KindDiffProp, true},
		{"r", session.KindRegression, true},
		{"h", session.KindHelperTypes, true},
		{"e", session.KindExit, true},
		{"  Normal  ", session.KindNormal, true},
		{"EXIT", session.KindExit, true},
		{"poisson", session.KindUnknown, false},
		{"", session.KindUnknown, false},
	}
	for _, tt := range tests {
		got, ok := session.ParseKind(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseKind(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "ParseKind(%q)", tt.in)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "diff of proportions", session.KindDiffProp.String())
	assert.Equal(t, "unknown", session.KindUnknown.String())
}

func run(t *testing.T, input, defaultHelper string) string {
	t.Helper()
	var buf bytes.Buffer
	out := console.NewPrinter(&buf)
	in := console.NewReader(strings.NewReader(input), out)
	env := helper.Env{In: in, Out: out}
	c := session.New(in, out, env, defaultHelper)
	require.NoError(t, c.Run())
	return buf.String()
}

func TestRun_ExitImmediately(t *testing.T) {
	got := run(t, "e\n", "")
	assert.Contains(t, got, "These helper types are available:")
	assert.Contains(t, got, "Ending the helper session.")
}

func TestRun_HelperTypesThenExit(t *testing.T) {
	got := run(t, "h\nexit\n", "")
	// once at startup, once for the explicit request
	assert.Equal(t, 2, strings.Count(got, "These helper types are available:"))
}

func TestRun_InvalidKindRepromptsWithList(t *testing.T) {
	got := run(t, "poisson\ne\n", "")
	assert.Contains(t, got, `Invalid helper type "poisson".`)
	assert.Equal(t, 2, strings.Count(got, "These helper types are available:"))
}

func TestRun_EmptySecondPromptListsHelperTypes(t *testing.T) {
	// enter a helper, quit it with 0, send an empty line at the next prompt
	got := run(t, "normal\n0\n\ne\n", "")
	assert.Equal(t, 2, strings.Count(got, "These helper types are available:"))
}

func TestRun_ExhaustedInputEnds(t *testing.T) {
	got := run(t, "", "")
	assert.Contains(t, got, "Ending the helper session.")
}

func TestRun_DefaultHelperSelectedOnEmptyLine(t *testing.T) {
	// empty first line selects the configured default helper; 0 leaves it
	got := run(t, "\n0\ne\n", "normal")
	assert.Contains(t, got, "Normal distribution helper")
}
