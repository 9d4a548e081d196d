package helper

import (
	"fmt"
	"math"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
)

// NewLinear builds the linear-distribution helper: a density that is a
// straight line from (left, pl) to (right, pr) with unit area under it. The
// flat case pl == pr is the continuous uniform distribution.
func NewLinear(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	d := dispatch.New(dispatch.Config{
		Name: "linear distribution",
		Intro: []string{
			"Linear distribution helper (includes continuous uniform distributions).",
			"left = first X value on the left with non-zero probability, right = last X value on the right.",
			"pl = probability density at the left boundary, pr = density at the right boundary.",
			"It is OK for pl or pr to be 0 (but not both) if the density starts from 0 at that point.",
			"For a flat (uniform) distribution pl = pr, the same constant density for all X in between.",
			"The density is a straight line between (left, pl) and (right, pr); the area under it is 1.",
		},
		MaxCode:      6,
		FirstDefault: 2,
		NextDefault:  0,
	}, in, out)

	needParams := func() error {
		if st.Ready() {
			return nil
		}
		return dispatch.NeedSetup(2,
			"You must first use command code 2 to enter the distribution boundaries (left, pl, right, pr).")
	}
	// Height of the density line at x.
	density := func(x float64) float64 {
		return st.Get("slope")*x + st.Get("pl") - st.Get("slope")*st.Get("left")
	}

	d.Register(dispatch.Op{Code: 1, Help: "enter a new number of decimal places for rounding answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "enter new distribution parameters (left, pl and right, pr)", Resumes: true, Run: func() error {
		left := in.Float("What is the leftmost starting point of the distribution (X value)? : ")
		pl := in.Float("What is the probability density pl at that starting point? : ", console.Min(0))
		right := in.Float("What is the rightmost ending point of the distribution? : ", console.Min(left+0.0000001))
		pr := in.Float("What is the probability density pr at that ending point? : ", console.Min(0))

		area := (right - left) * (pr + pl) / 2
		if area > 1.0001 || area < 0.9999 {
			return fmt.Errorf("the probability (area) under the line should add up to 1, not %v; check your values and enter them again", area)
		}
		st.Set("left", left)
		st.Set("pl", pl)
		st.Set("right", right)
		st.Set("pr", pr)
		out.Printf("A linear distribution from %v to %v.", left, right)
		if pl != pr {
			slope := (pr - pl) / (right - left)
			st.Set("slope", slope)
			// The mean is the x where half the area lies to the left; that
			// makes it a root of a quadratic in x.
			a := slope
			b := 2*pl - 2*slope*left
			c := -2*left*pl + slope*left*left - 1
			disc := b*b - 4*a*c
			if disc < 0 {
				return fmt.Errorf("no real solution for the mean (discriminant %v); check the boundary values", disc)
			}
			r1 := (-b + math.Sqrt(disc)) / (2 * a)
			r2 := (-b - math.Sqrt(disc)) / (2 * a)
			mean := r2
			if r1 > left && r1 < right {
				mean = r1
			}
			out.Printf("Density slope = %v", st.Round(slope))
			out.Resultf("The mean is %v", st.Round(mean))
		} else {
			st.Set("slope", 0)
			mean := (left + right) / 2
			variance := (right - left) * (right - left) / 12
			out.Resultf("Mean (expected value) = %v  Median = %v  Variance = %v",
				st.Round(mean), st.Round(mean), st.Round(variance))
			q1 := left + (right-left)/4
			q3 := left + 3*(right-left)/4
			out.Resultf("Q1 = %v  Q3 = %v  IQR = %v  (rounded to %d decimal places)",
				st.Round(q1), st.Round(q3), st.Round(q3-q1), st.Rounding())
		}
		st.MarkReady()
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "calculate the cumulative probability P(X < upper)", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("P(X < upper), left tail")
		upper := in.Float("Enter the upper value (everything up to that): ")
		left, right := st.Get("left"), st.Get("right")
		var v float64
		switch {
		case upper < left:
			v = 0
		case upper > right:
			v = 1
		case st.Get("pl") == st.Get("pr"):
			v = (upper - left) / (right - left)
		default:
			// Trapezoid area: base times the average of the two heights.
			y := density(upper)
			v = (st.Get("pl") + y) * (upper - left) / 2
		}
		out.Resultf("Prob for X < %v = %v", upper, st.Round(v))
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "calculate the cumulative probability P(X > lower)", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("P(X > lower), right tail")
		left, right := st.Get("left"), st.Get("right")
		lower := in.Float("Enter the lower value (everything above that): ",
			console.Min(left), console.Max(right))
		var v float64
		if st.Get("pl") == st.Get("pr") {
			v = (right - lower) / (right - left)
		} else {
			y := density(lower)
			v = (st.Get("pr") + y) * (right - lower) / 2
		}
		out.Resultf("Prob for X > %v = %v", lower, st.Round(v))
		return nil
	}})
	d.Register(dispatch.Op{Code: 5, Help: "calculate P(lower < X < upper), the slice between two limits", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("P(lower < X < upper)")
		left, right := st.Get("left"), st.Get("right")
		lower := in.Float("Enter the lower value (X bigger than that): ",
			console.Min(left), console.Max(right))
		upper := in.Float("Enter the upper value (X less than that): ",
			console.Min(lower), console.Max(right))
		var v float64
		if st.Get("pl") == st.Get("pr") {
			v = (upper - lower) / (right - left)
		} else {
			v = (upper - lower) * (density(lower) + density(upper)) / 2
		}
		out.Resultf("Prob for %v < X < %v = %v", lower, upper, st.Round(v))
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
