package helper

import (
	"math"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/statfn"
)

// NewDiffProp builds the difference-of-two-proportions helper: the sampling
// distribution of d-hat = p1 - p2 across two independent samples.
func NewDiffProp(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	d := dispatch.New(dispatch.Config{
		Name: "difference of proportions",
		Intro: []string{
			"Difference of proportions helper. Standard symbols:",
			"N1 = observations in sample #1, p1 = proportion of successes in sample #1 (p-hat 1).",
			"N2 = observations in sample #2, p2 = proportion of successes in sample #2 (p-hat 2).",
			"d-hat = p1 - p2, the point estimate of the difference between the population proportions.",
			"SEd = standard error of d-hat (the standard deviation of the sampling distribution of d-hat).",
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
			"You must first use command code 3 or 4 to enter either n1,p1 n2,p2 or n1,k1 n2,k2 values.")
	}
	// Derives and stores d-hat, the standard error, and the pooled test
	// statistic from the two sample descriptions.
	commitParams := func(n1, k1 int, p1 float64, n2, k2 int, p2 float64) {
		dhat := p1 - p2
		sdev := math.Sqrt(p1*(1-p1)/float64(n1) + p2*(1-p2)/float64(n2))
		st.Set("d", dhat)
		st.Set("sdev", sdev)
		st.MarkReady()
		out.Resultf("The point estimate (d-hat) is %v and the standard error SE = %v.", st.Round(dhat), st.Round(sdev))
		pbar := float64(k1+k2) / float64(n1+n2)
		pooledSE := math.Sqrt(pbar * (1 - pbar) * (1/float64(n1) + 1/float64(n2)))
		out.Resultf("pbar = %v and the pooled test statistic is z = %v.", st.Round(pbar), st.Round(dhat/pooledSE))
		out.Printf("The alternate (pooled) standard error is %v.", st.Round(pooledSE))
	}

	d.Register(dispatch.Op{Code: 1, Help: "one-tail significance test for a difference value at level alpha", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("Calculate the one-sided (1-tail) chance for a certain difference, given a significance level.")
		dhat := st.Get("d")
		sdev := st.Get("sdev")
		newD := in.Float("Enter the desired difference (d) to test for: ")
		z := (newD - dhat) / sdev
		out.Printf("The Z-score for this difference of %v is %v.", newD, st.Round(z))
		var chance float64
		if z > 0 {
			out.Printf("Since this is more than the average of %v we test on the right; anything too far right is significant.", dhat)
			chance = 1 - statfn.NormalCDF(z)
		} else {
			out.Printf("Since this is less than the average of %v we test on the left; anything too far left is significant.", dhat)
			chance = statfn.NormalCDF(z)
		}
		alpha := in.Float("Enter the significance level for your test (alpha): ",
			console.Min(0.00001), console.Max(0.5))
		out.Resultf("The chance of getting a sample with a difference of %v is %v.", newD, st.Round(chance))
		if alpha > chance {
			out.Resultf("SIGNIFICANT: the chance of %v is smaller than the alpha limit of %v.", st.Round(chance), alpha)
		} else {
			out.Resultf("NOT significant: the chance of %v is >= the alpha limit of %v.", st.Round(chance), alpha)
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "confidence interval for p1 - p2 at a given confidence level", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("Calculate the confidence interval for a given confidence level, such as .98 (98%%).")
		confidence := in.Float("Enter the confidence level as a decimal (not %): ",
			console.Min(0.01), console.Max(0.99999))
		tail := (1 - confidence) / 2
		out.Printf("Only things with a chance of less than %v on the left (or right) will be outside the interval.", tail)
		zstar := math.Abs(statfn.NormalQuantile(tail))
		me := math.Abs(zstar * st.Get("sdev"))
		dhat := st.Get("d")
		out.Printf("For a %v (or %v%%) confidence interval the Z* is %v and the margin of error is %v.",
			confidence, confidence*100, st.Round(zstar), st.Round(me))
		out.Resultf("The interval can be given as %v < p1 - p2 < %v.", st.Round(dhat-me), st.Round(dhat+me))
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "enter a new set of N1, p1 and N2, p2 values", Resumes: true, Run: func() error {
		out.Printf("Rounding final answers to %d decimal places (code 7 to change this).", st.Rounding())
		n1 := in.Int("N1 (number of observations in sample #1): ", console.Min(2))
		p1 := in.Float("p1 (proportion of successes in sample #1, p-hat 1): ",
			console.Min(0.000001), console.Max(0.999999))
		k1 := int(p1 * float64(n1))
		out.Printf("We have N1=%d trials with a success proportion of p1=%v (%d/%d).", n1, st.Round(p1), k1, n1)
		n2 := in.Int("N2 (number of observations in sample #2): ", console.Min(2))
		p2 := in.Float("p2 (proportion of successes in sample #2, p-hat 2): ",
			console.Min(0.000001), console.Max(0.999999))
		k2 := int(p2 * float64(n2))
		out.Printf("We have N2=%d trials with a success proportion of p2=%v (%d/%d).", n2, st.Round(p2), k2, n2)
		commitParams(n1, k1, p1, n2, k2, p2)
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "enter a new set of N1, K1 and N2, K2 values (p = K/N)", Resumes: true, Run: func() error {
		out.Printf("Rounding final answers to %d decimal places (code 7 to change this).", st.Rounding())
		n1 := in.Int("N1 (number of observations in sample #1): ", console.Min(2))
		k1 := in.Int("K1 (number of successes in sample #1): ", console.Min(1), console.Max(float64(n1)))
		p1 := float64(k1) / float64(n1)
		out.Printf("We have N1=%d trials with p1=%v probability of success (=%d/%d).", n1, st.Round(p1), k1, n1)
		n2 := in.Int("N2 (number of observations in sample #2): ", console.Min(2))
		k2 := in.Int("K2 (number of successes in sample #2): ", console.Min(1), console.Max(float64(n2)))
		p2 := float64(k2) / float64(n2)
		out.Printf("We have N2=%d trials with p2=%v probability of success (=%d/%d).", n2, st.Round(p2), k2, n2)
		commitParams(n1, k1, p1, n2, k2, p2)
		return nil
	}})
	d.Register(dispatch.Op{Code: 5, Help: "calculate a d-hat value given a Z value", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		z := in.Float("Enter the value of Z (normalized): ", console.Min(-5), console.Max(5))
		x := z*st.Get("sdev") + st.Get("d")
		out.Resultf("A Z value of %v gives a d-hat value = %v for the current parameters d=%v and SE=%v.",
			z, st.Round(x), st.Get("d"), st.Get("sdev"))
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "point estimate and margin of error from a confidence interval", Run: func() error {
		out.Printf("Given a confidence interval (lower, upper), find the point estimate and margin of error.")
		lower := in.Float("What is the lower limit of the d-hat interval? : ",
			console.Min(0.0001), console.Max(0.9998))
		upper := in.Float("What is the upper limit of the d-hat interval? : ",
			console.Min(lower), console.Max(0.9999))
		mid := (upper + lower) / 2
		me := upper - mid
		out.Resultf("For the interval (%v, %v) the point estimate is %v and the margin of error is %v.",
			lower, upper, st.Round(mid), st.Round(me))
		return nil
	}})
	d.Register(dispatch.Op{Code: 7, Help: "enter a new number of decimal places for rounding answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 8, Help: "calculate a Z value given a d-hat value", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		dhat := in.Float("What is the desired d-hat value? : ")
		z := (dhat - st.Get("d")) / st.Get("sdev")
		out.Resultf("A d-hat value of %v corresponds to a Z value of %v.", dhat, st.Round(z))
		return nil
	}})
	d.Register(dispatch.Op{Code: 9, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
