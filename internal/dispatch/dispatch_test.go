package dispatch_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
)

func newHarness(input string) (*console.Reader, *console.Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	out := console.NewPrinter(&buf)
	in := console.NewReader(strings.NewReader(input), out)
	return in, out, &buf
}

func TestRun_DeferredOperationResumesOnce(t *testing.T) {
	in, out, _ := newHarness("2\n0\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 2, FirstDefault: 1, NextDefault: 0}, in, out)

	var setupRuns, opRuns int
	ready := false
	d.Register(dispatch.Op{Code: 1, Help: "setup", Resumes: true, Run: func() error {
		setupRuns++
		ready = true
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "needs setup", Run: func() error {
		if !ready {
			return dispatch.NeedSetup(1, "run setup first")
		}
		opRuns++
		return nil
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 1, setupRuns)
	assert.Equal(t, 1, opRuns, "the deferred operation must run exactly once")
	assert.Equal(t, 0, d.Deferred())
}

func TestRun_NestedDeferralOverwrites(t *testing.T) {
	// Op 3 defers to op 2, which itself defers to op 1: the second deferral
	// overwrites the first, so op 3 is forgotten (last request wins).
	in, out, _ := newHarness("3\n0\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 3, FirstDefault: 1, NextDefault: 0}, in, out)

	var runs1, runs2, runs3 int
	ready1 := false
	d.Register(dispatch.Op{Code: 1, Help: "base setup", Resumes: true, Run: func() error {
		runs1++
		ready1 = true
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "mid", Run: func() error {
		if !ready1 {
			return dispatch.NeedSetup(1, "need base setup")
		}
		runs2++
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "top", Run: func() error {
		runs3++
		return dispatch.NeedSetup(2, "need mid")
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 1, runs1)
	assert.Equal(t, 1, runs2)
	assert.Equal(t, 1, runs3, "op 3 must not be resumed after its slot was overwritten")
}

func TestRun_SlotClearedBeforeResumption(t *testing.T) {
	// The resumed op defers again; it must land back in an empty slot.
	in, out, _ := newHarness("2\n0\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 3, FirstDefault: 1, NextDefault: 0}, in, out)

	setupRuns := 0
	opAttempts := 0
	d.Register(dispatch.Op{Code: 1, Help: "setup", Resumes: true, Run: func() error {
		setupRuns++
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "always blocked", Run: func() error {
		opAttempts++
		if opAttempts < 3 {
			return dispatch.NeedSetup(1, "still not ready")
		}
		return nil
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 3, opAttempts)
	assert.Equal(t, 2, setupRuns)
}

func TestRun_UnknownCodeRepromptsWithHelp(t *testing.T) {
	in, out, buf := newHarness("4\n1\n0\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 5, FirstDefault: 1, NextDefault: 0}, in, out)

	runs := 0
	d.Register(dispatch.Op{Code: 1, Help: "do the thing", Run: func() error {
		runs++
		return nil
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 1, runs)
	assert.Contains(t, buf.String(), "Invalid code 4")
	// The help list is printed once up front and again after the bad code.
	assert.Equal(t, 2, strings.Count(buf.String(), "do the thing"))
}

func TestRun_ZeroExitsImmediately(t *testing.T) {
	in, out, _ := newHarness("0\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 1, FirstDefault: 1, NextDefault: 0}, in, out)

	runs := 0
	d.Register(dispatch.Op{Code: 1, Help: "never", Run: func() error {
		runs++
		return nil
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 0, runs)
}

func TestRun_OperationErrorIsReportedAndLoopContinues(t *testing.T) {
	in, out, buf := newHarness("1\n1\n0\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 1, FirstDefault: 1, NextDefault: 0}, in, out)

	runs := 0
	d.Register(dispatch.Op{Code: 1, Help: "flaky", Run: func() error {
		runs++
		if runs == 1 {
			return assert.AnError
		}
		return nil
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 2, runs)
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestRun_ExhaustedInputTerminates(t *testing.T) {
	// With NextDefault pointing at a real op, an exhausted input stream must
	// still end the loop instead of repeating the default forever.
	in, out, _ := newHarness("1\n")
	d := dispatch.New(dispatch.Config{Name: "test", MaxCode: 1, FirstDefault: 1, NextDefault: 1}, in, out)

	runs := 0
	d.Register(dispatch.Op{Code: 1, Help: "op", Run: func() error {
		runs++
		return nil
	}})

	require.NoError(t, d.Run())
	assert.Equal(t, 1, runs)
}
