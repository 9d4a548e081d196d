package helper

import (
	"math"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/statfn"
)

// NewBinomial builds the binomial (Bernoulli trials) helper: exact
// probabilities for success counts and the normal approximation with
// continuity correction.
func NewBinomial(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	d := dispatch.New(dispatch.Config{
		Name: "binomial distribution",
		Intro: []string{
			"Binomial helper: k = number of successes out of N = total number of trials, p = chance of success.",
		},
		MaxCode:      6,
		FirstDefault: 1,
		NextDefault:  0,
	}, in, out)

	needParams := func() error {
		if st.Ready() {
			return nil
		}
		return dispatch.NeedSetup(1,
			"You must first use command code 1 to enter N (trials) and p (success probability).")
	}

	d.Register(dispatch.Op{Code: 1, Help: "enter a new set of N (trials) and p (success probability)", Resumes: true, Run: func() error {
		n := in.Int("N (number of trials)? : ", console.Min(2))
		p := in.Float("p (the probability of success for each trial): ",
			console.Min(0.000001), console.Max(0.99999))
		st.Set("n", float64(n))
		st.Set("p", p)
		st.MarkReady()
		out.Printf("Binomial distribution for %d trials with %v probability of success, answers rounded to %d decimal places.",
			n, p, st.Rounding())
		mean := float64(n) * p
		variance := mean * (1 - p)
		out.Resultf("Mean = %v  Variance = %v  Standard deviation = %v",
			st.Round(mean), st.Round(variance), st.Round(math.Sqrt(variance)))
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "print a table of the probability of every possible success count", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		n := int(st.Get("n"))
		p := st.Get("p")
		for k := 0; k <= n; k++ {
			out.Printf("Prob of %d successes out of %d trials = %v", k, n, st.Round(statfn.BinomialPMF(k, n, p)))
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "exact probability P(lower <= X <= upper) for a range of success counts", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		n := int(st.Get("n"))
		p := st.Get("p")
		out.Printf("Enter a range of successes: a lower and a higher (or equal, for a single count) number of successes.")
		out.Printf("You will get the probability of all those possibilities together, P(lower <= X <= upper).")
		lower := in.Int("Lower bound of successes (0 or higher), inclusive (X >=): ",
			console.Min(0), console.Max(float64(n)))
		upper := in.Int("Upper bound of successes (N or less, may equal the lower bound), inclusive (X <=): ",
			console.Min(float64(lower)), console.Max(float64(n)))
		var total float64
		for k := lower; k <= upper; k++ {
			total += statfn.BinomialPMF(k, n, p)
		}
		out.Resultf("The probability of having between %d and %d successes, inclusive, is %v.", lower, upper, st.Round(total))
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "normal approximation of a success-count range, with continuity correction", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		n := int(st.Get("n"))
		p := st.Get("p")
		out.Printf("Using the normal distribution approximation for this binomial distribution.")
		inaccurate := false
		if n < 20 {
			out.Warnf("N is too small (%d) for an accurate approximation. N should be at least 20.", n)
			inaccurate = true
		}
		if p < 0.05 {
			out.Warnf("p, the chance of success, is too close to 0 (%v) for an accurate approximation.", p)
			inaccurate = true
		}
		if p > 0.95 {
			out.Warnf("p, the chance of success, is too close to 1 (%v) for an accurate approximation.", p)
			inaccurate = true
		}
		out.Printf("Enter a range of successes as in P(lower <= X <= upper). For each limit you will be asked")
		out.Printf("whether it is inclusive (<=) or exclusive (<); the continuity correction (+/- 0.5) is applied for you.")
		out.Hintf("Example: for P(4 < X <= 8), 4 is the exclusive lower limit and 8 the inclusive upper limit.")
		out.Hintf("For P(X <= 4) enter P(0 <= X <= 4); for P(X > 6) enter P(6 < X <= N).")

		lower := in.Float("Enter the lower bound of successes (0 or higher): ",
			console.Min(0), console.Max(float64(n)))
		if in.YesNo("Is this bound inclusive (< and =)? If so enter Yes: ") {
			lower -= 0.5
		} else {
			lower += 0.5
		}
		upper := in.Float("Enter the upper bound of successes (N or less, may equal the lower bound): ",
			console.Min(lower), console.Max(float64(n)))
		if in.YesNo("Is this bound inclusive (< and =)? If so enter Yes: ") {
			upper += 0.5
		} else {
			upper -= 0.5
		}
		out.Printf("Performing a normal approximation for the adjusted range %v to %v.", lower, upper)
		if inaccurate {
			out.Warnf("Remember that the normal approximation may be inaccurate in this case.")
		}
		mean := float64(n) * p
		sdev := math.Sqrt(mean * (1 - p))
		prob := statfn.NormalCDF((upper-mean)/sdev) - statfn.NormalCDF((lower-mean)/sdev)
		out.Resultf("The estimated probability is %v.", st.Round(prob))
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
