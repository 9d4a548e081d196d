package helper

import (
	"fmt"
	"math"
	"strconv"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
)

// NewTable builds the discrete probability table helper: pairs of x and P(x)
// values summing to 1, with at most one unknown probability that the helper
// solves for.
func NewTable(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	var (
		xs []float64
		ps []float64
		// unknown is the 0-based position of the one missing probability,
		// -1 when every probability is known.
		unknown = -1
	)

	d := dispatch.New(dispatch.Config{
		Name: "discrete value table",
		Intro: []string{
			"Table of discrete values helper: x and P(x) pairs, n = number of rows.",
			"All the probabilities must add up to exactly 1.",
			"You may mark at most one probability as unknown and the helper will solve for it.",
		},
		MaxCode:      6,
		FirstDefault: 1,
		NextDefault:  0,
	}, in, out)

	needData := func() error {
		if st.Ready() {
			return nil
		}
		return dispatch.NeedSetup(1, "You must first use command code 1 to enter the table rows.")
	}
	printTable := func() {
		rows := make([][]string, len(xs))
		for i := range xs {
			p := strconv.FormatFloat(ps[i], 'g', -1, 64)
			if i == unknown {
				p = "? (unknown, to be calculated)"
			}
			rows[i] = []string{
				fmt.Sprintf("#%d", i+1),
				strconv.FormatFloat(xs[i], 'g', -1, 64),
				p,
			}
		}
		out.Table([]string{"Entry", "x", "P(x)"}, rows, map[int]bool{1: true, 2: true})
	}

	d.Register(dispatch.Op{Code: 1, Help: "enter the table rows (x and P(x) pairs, at most one unknown P)", Resumes: true, Run: func() error {
		n := in.Int("How many different x values (table rows) are there? : ", console.Min(2))
		newUnknown := -1
		if in.YesNo("Do you have one unknown or missing probability that you want me to calculate? (Y/N, default N): ",
			console.DefaultAnswer(false)) {
			pos := in.Int("Which entry (position) in the table has the missing value (counting from the top as #1)? : ",
				console.Min(1), console.Max(float64(n)))
			newUnknown = pos - 1
		}
		newXs := make([]float64, 0, n)
		newPs := make([]float64, 0, n)
		for k := 0; k < n; k++ {
			out.Printf("Entry #%d", k+1)
			x := in.Float("What is the value of x? : ")
			var p float64
			if k == newUnknown {
				out.Printf("This probability entry, #%d, is missing and will be calculated.", k+1)
			} else {
				p = in.Float("Enter the value of P(x) for this x: ", console.Min(0), console.Max(0.999999))
			}
			newXs = append(newXs, x)
			newPs = append(newPs, p)
		}
		xs, ps, unknown = newXs, newPs, newUnknown
		st.MarkReady()
		out.Printf("Check the table below for any typos (command code 3 corrects entries):")
		printTable()
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "display the current table", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		printTable()
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "correct table entries (including moving or resolving the unknown)", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		for {
			k := in.Int("Which entry do you want to correct? : ", console.Min(1), console.Max(float64(len(xs))))
			i := k - 1
			if i == unknown {
				out.Printf("Currently entry %d has x=%v, P=? (missing value).", k, xs[i])
				xs[i] = in.Float("Enter the correct x value for this entry: ")
				if in.YesNo("Do you want to enter a probability, so this is no longer an unknown value? (Y/N, default N): ",
					console.DefaultAnswer(false)) {
					ps[i] = in.Float("Enter the correct P value for this previously missing entry: ",
						console.Min(0), console.Max(0.999999))
					if in.YesNo("Is some other value now unknown (Y) or are all values known (N)? (default Y): ",
						console.DefaultAnswer(true)) {
						pos := in.Int("Which entry has the unknown probability now? : ",
							console.Min(1), console.Max(float64(len(xs))))
						unknown = pos - 1
						ps[unknown] = 0
					} else {
						unknown = -1
					}
				}
			} else {
				out.Printf("Currently entry %d has x=%v, P=%v.", k, xs[i], ps[i])
				xs[i] = in.Float("Enter the correct x value for this entry: ")
				ps[i] = in.Float("Enter the correct P value for this entry: ", console.Min(0), console.Max(0.999999))
			}
			if !in.YesNo("Do you wish to correct any other values in the table? (Y/N, default N): ",
				console.DefaultAnswer(false)) {
				break
			}
		}
		out.Printf("After your changes here is the final table:")
		printTable()
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "solve the unknown probability, verify the total, and compute mean/variance/sdev", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		if unknown >= 0 {
			var total float64
			for i, p := range ps {
				if i != unknown {
					total += p
				}
			}
			if total > 1 {
				return fmt.Errorf("the other probabilities add up to %v, which is more than 1", total)
			}
			ps[unknown] = 1 - total
			out.Resultf("The unknown probability has a value of %v.", st.Round(ps[unknown]))
			unknown = -1
		} else {
			var total float64
			for _, p := range ps {
				total += p
			}
			if total > 1.0001 || total < 0.999 {
				return fmt.Errorf("the probabilities do not add up to 1 but to %v; something is wrong", total)
			}
		}
		var mean float64
		for i := range xs {
			mean += xs[i] * ps[i]
		}
		out.Resultf("The mean is %v, rounded to %d decimal places.", st.Round(mean), st.Rounding())
		var variance float64
		for i := range xs {
			variance += (xs[i] - mean) * (xs[i] - mean) * ps[i]
		}
		out.Resultf("The variance is %v and the standard deviation = %v.",
			st.Round(variance), st.Round(math.Sqrt(variance)))
		return nil
	}})
	d.Register(dispatch.Op{Code: 5, Help: "enter a new number of decimal places for rounding answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
