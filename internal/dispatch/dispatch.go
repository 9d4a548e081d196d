// Package dispatch implements the command loop shared by every helper: a
// declarative code-to-operation table with a single-slot deferred
// continuation. An operation whose prerequisite parameters are missing
// redirects the user to the setup command and is re-invoked automatically
// once setup completes.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/calev/stathelper/internal/console"
)

// Precondition is returned by an operation whose prerequisites are unmet. The
// dispatcher records the operation in the deferred slot and runs the
// prerequisite command instead.
type Precondition struct {
	// Prereq is the command code to run first.
	Prereq int
	// Reason explains the redirect to the user.
	Reason string
}

func (p *Precondition) Error() string {
	return p.Reason
}

// NeedSetup builds the common "run the setup command first" precondition.
func NeedSetup(prereq int, reason string) error {
	return &Precondition{Prereq: prereq, Reason: reason}
}

// Op is one entry in a helper's command table.
type Op struct {
	// Code is the integer the user types to invoke the operation.
	Code int
	// Help is the one-line description shown in the command list.
	Help string
	// Resumes marks setup-family operations: after one completes
	// successfully, a pending deferred command is re-invoked.
	Resumes bool
	// Run executes the operation. A *Precondition error triggers deferral;
	// any other error is reported and the loop continues.
	Run func() error
}

// Config carries the per-helper loop constants.
type Config struct {
	// Name labels the command list header.
	Name string
	// Intro lines are printed once when the loop starts.
	Intro []string
	// MaxCode is the highest valid command code.
	MaxCode int
	// FirstDefault is the default code offered at the first prompt.
	FirstDefault int
	// NextDefault is the default code offered on subsequent prompts.
	NextDefault int
}

// Dispatcher runs one helper's command loop.
type Dispatcher struct {
	cfg      Config
	ops      map[int]Op
	order    []int
	in       *console.Reader
	out      *console.Printer
	deferred int
}

// New creates a Dispatcher with an empty command table.
func New(cfg Config, in *console.Reader, out *console.Printer) *Dispatcher {
	return &Dispatcher{
		cfg: cfg,
		ops: make(map[int]Op),
		in:  in,
		out: out,
	}
}

// Register adds an operation to the command table. Registering a duplicate
// code replaces the earlier entry.
func (d *Dispatcher) Register(op Op) {
	if _, exists := d.ops[op.Code]; !exists {
		d.order = append(d.order, op.Code)
	}
	d.ops[op.Code] = op
}

// Deferred returns the pending deferred command code, 0 when none.
func (d *Dispatcher) Deferred() int {
	return d.deferred
}

// PrintHelp writes the command list.
func (d *Dispatcher) PrintHelp() {
	d.out.Headerf("Available command codes for the %s helper:", d.cfg.Name)
	for _, code := range d.order {
		d.out.Printf("%d = %s", code, d.ops[code].Help)
	}
	d.out.Printf("0 = stop and exit this helper loop")
}

func (d *Dispatcher) promptCode(def int) int {
	if d.in.EOF() {
		return 0
	}
	prompt := fmt.Sprintf("Enter the command code (0, or 1-%d): ", d.cfg.MaxCode)
	code := d.in.Int(prompt,
		console.Default(float64(def)),
		console.Min(0),
		console.Max(float64(d.cfg.MaxCode)))
	// EOF surfaces only when the read fails, handing back the default; that
	// must end the loop, not run the default command once more.
	if d.in.EOF() {
		return 0
	}
	return code
}

// Run executes the command loop until the user enters 0 or input ends.
func (d *Dispatcher) Run() error {
	for _, line := range d.cfg.Intro {
		d.out.Printf("%s", line)
	}
	d.PrintHelp()
	code := d.promptCode(d.cfg.FirstDefault)
	for {
		if code == 0 {
			return nil
		}
		op, ok := d.ops[code]
		if !ok {
			d.out.Warnf("Invalid code %d. It should be 0 (to exit) or 1 to %d.", code, d.cfg.MaxCode)
			d.PrintHelp()
			code = d.promptCode(d.cfg.NextDefault)
			continue
		}

		err := op.Run()
		var pre *Precondition
		if errors.As(err, &pre) {
			d.out.Warnf("%s", pre.Reason)
			// Last request wins: a newer deferral overwrites any pending one.
			d.deferred = code
			code = pre.Prereq
			continue
		}
		if err != nil {
			d.out.Errorf("%v", err)
		}
		if err == nil && op.Resumes && d.deferred != 0 {
			// Clear the slot before resuming so the resumed operation can
			// itself defer again.
			code, d.deferred = d.deferred, 0
			continue
		}
		code = d.promptCode(d.cfg.NextDefault)
	}
}
