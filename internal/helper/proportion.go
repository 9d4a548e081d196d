package helper

import (
	"fmt"
	"math"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/statfn"
)

// NewProportion builds the single-proportion sampling helper: the sampling
// distribution of p-hat for N observations with success probability p.
func NewProportion(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	d := dispatch.New(dispatch.Config{
		Name: "proportion sampling",
		Intro: []string{
			"Proportion sampling and significance helper: N = observations in a sample, p = chance of success.",
			"p-hat is the sample point estimate of the population proportion.",
		},
		MaxCode:      9,
		FirstDefault: 1,
		NextDefault:  0,
	}, in, out)

	needParams := func() error {
		if st.Ready() {
			return nil
		}
		return dispatch.NeedSetup(3,
			"You must first use command code 3 or 4 to enter the N and p values.")
	}
	// Validates the sampling distribution shape and stores n, p, and the
	// standard error. A skewed distribution is rejected without mutating.
	commitParams := func(n int, p float64) error {
		fail := 1 - p
		if fail*float64(n) < 10 {
			out.Warnf("%v chance of failure * %d sample size gives %v which is < 10, so this is skewed to the left.",
				st.Round(fail), n, st.Round(fail*float64(n)))
			return fmt.Errorf("the normal distribution can NOT be used to analyze the distribution of p-hat; enter different values")
		}
		if p*float64(n) < 10 {
			out.Warnf("%v chance of success * %d sample size gives %v which is < 10, so this is skewed to the right.",
				p, n, st.Round(p*float64(n)))
			return fmt.Errorf("the normal distribution can NOT be used to analyze the distribution of p-hat; enter different values")
		}
		out.Printf("The distribution is symmetric so we CAN use the normal distribution tests for sample statistics.")
		sdev := math.Sqrt(p * fail / float64(n))
		st.Set("n", float64(n))
		st.Set("p", p)
		st.Set("sdev", sdev)
		st.MarkReady()
		out.Resultf("The standard error (deviation) = %v", st.Round(sdev))
		return nil
	}

	d.Register(dispatch.Op{Code: 1, Help: "one-tail significance test for a number of successes at level alpha", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("Calculate the one-sided (1-tail) chance for a certain number of successes, given a significance level.")
		n := int(st.Get("n"))
		p := st.Get("p")
		sdev := st.Get("sdev")
		successes := in.Int("Number of successes to test for: ", console.Min(0), console.Max(st.Get("n")))
		ratio := float64(successes) / float64(n)
		out.Printf("%d successes out of %d tries is a p-hat value of %v.", successes, n, ratio)
		z := (ratio - p) / sdev
		out.Printf("The Z-score for this p-hat of %v is %v.", st.Round(ratio), st.Round(z))
		var chance float64
		if ratio > p {
			out.Printf("Since this is more than the average of %v we test on the right; anything too far right is significant.", p)
			chance = 1 - statfn.NormalCDF(z)
		} else {
			out.Printf("Since this p-hat is less than the average of %v we test on the left; anything too far left is significant.", p)
			chance = statfn.NormalCDF(z)
		}
		alpha := in.Float("Enter the significance level for your test (alpha): ",
			console.Min(0.00001), console.Max(0.5))
		out.Resultf("The chance of getting a sample with %d successes out of %d is %v.", successes, n, st.Round(chance))
		if alpha > chance {
			out.Resultf("SIGNIFICANT: the chance of %v is smaller than the alpha limit of %v.", st.Round(chance), alpha)
		} else {
			out.Resultf("NOT significant: the chance of %v is >= the alpha limit of %v.", st.Round(chance), alpha)
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "confidence interval for p at a given confidence level", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("Calculate the confidence interval for a given confidence level, such as .98 (98%%).")
		confidence := in.Float("Enter the confidence level as a decimal (not %): ",
			console.Min(0.01), console.Max(0.99999))
		tail := (1 - confidence) / 2
		out.Printf("Only things with a chance of less than %v on the right or left will be outside the interval.", tail)
		zstar := math.Abs(statfn.NormalQuantile(tail))
		me := zstar * st.Get("sdev")
		p := st.Get("p")
		out.Printf("For a %v%% confidence interval the Z* is %v and the margin of error is %v.",
			confidence*100, st.Round(zstar), st.Round(me))
		out.Resultf("The interval can be given as (%v, %v).", st.Round(p-me), st.Round(p+me))
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "enter a new set of N and p values", Resumes: true, Run: func() error {
		n := in.Int("N (number of observations in each sample): ", console.Min(2))
		var p float64
		if in.YesNo("Do you have the proportion p (Y) or do you want it calculated from a number of successes (N)? (default Y): ",
			console.DefaultAnswer(true)) {
			p = in.Float("Enter p, the probability of success for each observation: ",
				console.Min(0), console.Max(1))
		} else {
			k := in.Int("Enter the number of successes in the sample: ", console.Min(1), console.Max(float64(n)))
			p = float64(k) / float64(n)
			out.Printf("For %d successes out of %d observations the proportion is %v.", k, n, st.Round(p))
		}
		out.Printf("Sampling distribution for %d trials with %v probability of success, answers rounded to %d decimal places.",
			n, p, st.Rounding())
		return commitParams(n, p)
	}})
	d.Register(dispatch.Op{Code: 4, Help: "enter a new set of N trials and K successes (p = K/N)", Resumes: true, Run: func() error {
		n := in.Int("N (number of observations in each sample): ", console.Min(2))
		k := in.Int("K (number of successes in each sample): ", console.Min(1), console.Max(float64(n-1)))
		p := float64(k) / float64(n)
		out.Printf("Sampling distribution for %d trials with %v probability of success (=K/N), answers rounded to %d decimal places.",
			n, st.Round(p), st.Rounding())
		return commitParams(n, p)
	}})
	d.Register(dispatch.Op{Code: 5, Help: "calculate a p-hat value given a Z value", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		z := in.Float("Enter the value of Z (normalized): ", console.Min(-5), console.Max(5))
		phat := z*st.Get("sdev") + st.Get("p")
		out.Resultf("A Z value of %v gives a p-hat value = %v for the parameters p=%v and N=%v.",
			z, st.Round(phat), st.Get("p"), int(st.Get("n")))
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "point estimate and margin of error from a confidence interval", Run: func() error {
		out.Printf("Given a confidence interval (lower, upper), find the point estimate and margin of error.")
		lower := in.Float("What is the lower limit of the p-hat interval? : ",
			console.Min(0.0001), console.Max(0.9998))
		upper := in.Float("What is the upper limit of the p-hat interval? : ",
			console.Min(lower), console.Max(0.9999))
		mid := (upper + lower) / 2
		me := upper - mid
		out.Resultf("For the interval (%v, %v) the point estimate is %v and the margin of error is %v.",
			lower, upper, st.Round(mid), st.Round(me))
		return nil
	}})
	d.Register(dispatch.Op{Code: 7, Help: "calculate a Z value given a p-hat value", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		phat := in.Float("Enter the p-hat value: ", console.Min(0.00001), console.Max(0.99999))
		z := (phat - st.Get("p")) / st.Get("sdev")
		out.Resultf("A p-hat value of %v corresponds to a Z value = %v for the current parameters p=%v and N=%v.",
			phat, st.Round(z), st.Get("p"), int(st.Get("n")))
		return nil
	}})
	d.Register(dispatch.Op{Code: 8, Help: "enter a new number of decimal places for rounding answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 9, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
