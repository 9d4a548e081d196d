package helper_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/helper"
)

// runScript feeds a scripted command-loop session to the helper built by
// build and returns everything it printed.
func runScript(t *testing.T, build func(helper.Env) *dispatch.Dispatcher, input string) string {
	t.Helper()
	var buf bytes.Buffer
	out := console.NewPrinter(&buf)
	in := console.NewReader(strings.NewReader(input), out)
	d := build(helper.Env{In: in, Out: out})
	require.NoError(t, d.Run())
	return buf.String()
}

func TestNormal_GuardedCommandDefersToSetupAndResumes(t *testing.T) {
	// 6 without parameters jumps to setup 2 (mean 10, sdev 2), then the
	// deferred P(X < 12) request runs by itself.
	got := runScript(t, helper.NewNormal, "6\n10\n2\n12\n0\n")
	assert.Contains(t, got, "You must first use command code 2")
	assert.Contains(t, got, "Normal distribution N(10, 2)")
	assert.Contains(t, got, "Prob for X <= 12 = 0.8413")
}

func TestNormal_ZCommandsNeedNoParameters(t *testing.T) {
	got := runScript(t, helper.NewNormal, "4\n1\n0\n")
	assert.NotContains(t, got, "You must first use command code 2")
	assert.Contains(t, got, "Probability (everything < 1) = 0.8413")
}

func TestNormal_StandardizedHint(t *testing.T) {
	got := runScript(t, helper.NewNormal, "2\n0\n1\n0\n")
	assert.Contains(t, got, "standardized normal distribution N(0,1)")
}

func TestNormal_RoundingChangeAffectsAnswers(t *testing.T) {
	got := runScript(t, helper.NewNormal, "1\n2\n4\n1\n0\n")
	assert.Contains(t, got, "Will use 2 decimal places")
	assert.Contains(t, got, "Probability (everything < 1) = 0.84 ")
}

func TestDiffProp_DeferredTestRunsAfterSetup(t *testing.T) {
	// 1 without parameters jumps to setup 3; samples of 50 with p-hats of
	// 0.5 and 0.4 give d-hat 0.1 and SE 0.099. Testing d=0.2 at alpha=0.05
	// leaves a 0.1562 chance, which is not significant.
	got := runScript(t, helper.NewDiffProp, "1\n50\n0.5\n50\n0.4\n0.2\n0.05\n0\n")
	assert.Contains(t, got, "You must first use command code 3 or 4")
	assert.Contains(t, got, "The point estimate (d-hat) is 0.1 and the standard error SE = 0.099.")
	assert.Contains(t, got, "The chance of getting a sample with a difference of 0.2 is 0.1562.")
	assert.Contains(t, got, "NOT significant")
}

func TestTable_SolvesUnknownProbability(t *testing.T) {
	script := strings.Join([]string{
		"1",    // enter the table
		"3",    // three rows
		"y",    // one unknown probability
		"3",    // at entry #3
		"1", "0.25",
		"2", "0.25",
		"3", // entry #3 has no P prompt
		"4", // solve and summarize
		"0",
	}, "\n") + "\n"
	got := runScript(t, helper.NewTable, script)
	assert.Contains(t, got, "The unknown probability has a value of 0.5.")
	assert.Contains(t, got, "The mean is 2.25")
	assert.Contains(t, got, "The variance is 0.6875 and the standard deviation = 0.8292.")
}

func TestTable_RejectsBadTotal(t *testing.T) {
	got := runScript(t, helper.NewTable, "1\n2\nn\n1\n0.5\n2\n0.3\n4\n0\n")
	assert.Contains(t, got, "do not add up to 1 but to 0.8")
}

func TestBinomial_ExactRangeProbability(t *testing.T) {
	got := runScript(t, helper.NewBinomial, "1\n4\n0.5\n3\n2\n2\n0\n")
	assert.Contains(t, got, "Mean = 2  Variance = 1  Standard deviation = 1")
	assert.Contains(t, got, "The probability of having between 2 and 2 successes, inclusive, is 0.375.")
}

func TestBinomial_ApproximationWarnsOnSmallN(t *testing.T) {
	// P(0 <= X <= 2) for n=10, p=0.5 with continuity correction
	got := runScript(t, helper.NewBinomial, "1\n10\n0.5\n4\n0\ny\n2\ny\n0\n")
	assert.Contains(t, got, "N is too small (10)")
	assert.Contains(t, got, "adjusted range -0.5 to 2.5")
}

func TestProportion_RejectsSkewedDistribution(t *testing.T) {
	// np = 20 * 0.1 = 2 < 10, so the setup must refuse without committing
	got := runScript(t, helper.NewProportion, "3\n20\ny\n0.1\n0\n")
	assert.Contains(t, got, "skewed to the right")
	assert.Contains(t, got, "can NOT be used")
}

func TestChiSquare_EqualExpectedWithYates(t *testing.T) {
	// observed 30/20 against equal expected 25/25: chi-square 2, Yates 1.62
	got := runScript(t, helper.NewChiSquare, "1\n2\n30\n20\nn\n2\n0\n")
	assert.Contains(t, got, "expected frequency of 25")
	assert.Contains(t, got, "The test statistic chi-square = 2 and the probability p of this (or more) is 0.1573.")
	assert.Contains(t, got, "the continuity-corrected (Yates) chi-square is 1.62.")
}

func TestChiSquare_NestedDeferral(t *testing.T) {
	// Analysis (6) with no data defers to the table command (5), which
	// itself defers to data entry (1). Only the most recent request is
	// remembered, so after entry the table prints but the analysis does not.
	script := strings.Join([]string{
		"6",        // wants a complete data set
		"2",        // two categories
		"30", "20", // observed counts
		"n",        // no stated total
		"0",
	}, "\n") + "\n"
	got := runScript(t, helper.NewChiSquare, script)
	assert.Contains(t, got, "You do not have a complete set of data yet")
	assert.Contains(t, got, "You have not entered any observations.")
	// the resumed table command, not the analysis
	assert.Contains(t, got, "degrees of freedom = 1")
	assert.NotContains(t, got, "What is the significance level (alpha)")
}
