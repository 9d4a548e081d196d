// Package helper binds the command dispatcher, the parameter store, and the
// statistics routines into the eight interactive helpers.
package helper

import (
	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/params"
)

// Env carries the shared session environment into each helper constructor.
type Env struct {
	In  *console.Reader
	Out *console.Printer
	// Rounding is the initial display digit count for new helper sessions.
	Rounding int
	// PlotWidth and PlotHeight size scatter plots; 0 selects automatic
	// terminal sizing.
	PlotWidth  int
	PlotHeight int
}

func newStore(env Env) *params.Store {
	st := params.New()
	if env.Rounding >= 1 && env.Rounding <= 9 {
		st.SetRounding(env.Rounding)
	}
	return st
}

func promptRounding(in *console.Reader, out *console.Printer, st *params.Store) {
	r := in.Int("Round to how many decimal places? : ",
		console.Default(4), console.Min(1), console.Max(9))
	st.SetRounding(r)
	out.Printf("Will use %d decimal places in all final answers from now on.", r)
}

// categoryLetter labels category i (0-based) as A, B, ... for the chi-square
// table.
func categoryLetter(i int) string {
	return string(rune('A' + i%26))
}
