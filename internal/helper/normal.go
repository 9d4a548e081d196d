package helper

import (
	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/statfn"
)

// NewNormal builds the normal-distribution helper. Commands that transform X
// values require the mean and standard deviation to be set first.
func NewNormal(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	d := dispatch.New(dispatch.Config{
		Name: "normal distribution",
		Intro: []string{
			"Normal distribution helper: u = mean (mu, average, expected value), s = standard deviation (sigma).",
			"You can select multiple tests and operations in a loop; type 0 in the loop to end.",
			"Some commands require that a mean and standard deviation be defined first.",
			"Use command code 1 for the number of decimals and 2 for setting the mean and standard deviation.",
		},
		MaxCode:      17,
		FirstDefault: 1,
		NextDefault:  2,
	}, in, out)

	needParams := func() error {
		if st.Ready() {
			return nil
		}
		return dispatch.NeedSetup(2,
			"You must first use command code 2 to set the mean and standard deviation for this distribution.")
	}

	d.Register(dispatch.Op{Code: 1, Help: "enter a new number of decimal places for rounding final answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "enter a new set of u (mean) and s (standard deviation)", Resumes: true, Run: func() error {
		u := in.Float("What is u (mu, the mean)? : ")
		s := in.Float("What is s (the standard deviation)? : ", console.Min(0.0000001))
		st.Set("mean", u)
		st.Set("sdev", s)
		st.MarkReady()
		out.Printf("Normal distribution N(%v, %v) with answers rounded to %d decimal places.", u, s, st.Rounding())
		if u == 0 && s == 1 {
			out.Hintf("This is the standardized normal distribution N(0,1).")
		}
		out.Resultf("Mean = %v  Variance = %v  Standard deviation = %v",
			st.Round(u), st.Round(s*s), st.Round(s))
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "show the current mean, standard deviation, and rounding", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		out.Printf("The current distribution has mean %v and standard deviation %v.", st.Get("mean"), st.Get("sdev"))
		out.Printf("Every answer is rounded to %d decimal places.", st.Rounding())
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "for a given Z value show the cumulative probability P(Z <= z) [left tail]", Run: func() error {
		z := in.Float("Enter the desired maximum Z value (Z-code): ")
		out.Resultf("Probability (everything < %v) = %v [left tail test]", z, st.Round(statfn.NormalCDF(z)))
		return nil
	}})
	d.Register(dispatch.Op{Code: 5, Help: "for a given Z value show the cumulative probability P(Z >= z) [right tail]", Run: func() error {
		z := in.Float("Enter the desired minimum Z value (Z-code): ")
		out.Resultf("Probability (everything > %v) = %v [right tail test]", z, st.Round(1-statfn.NormalCDF(z)))
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "calculate the cumulative probability P(X < upper)", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		upper := in.Float("Enter the upper value (everything up to that): ")
		z := (upper - st.Get("mean")) / st.Get("sdev")
		out.Resultf("Prob for X <= %v = %v", upper, st.Round(statfn.NormalCDF(z)))
		return nil
	}})
	d.Register(dispatch.Op{Code: 7, Help: "calculate the cumulative probability P(X > lower) [right tail]", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		lower := in.Float("Enter the lower value (everything above that): ")
		z := (lower - st.Get("mean")) / st.Get("sdev")
		out.Resultf("Prob for X > %v = %v", lower, st.Round(1-statfn.NormalCDF(z)))
		return nil
	}})
	d.Register(dispatch.Op{Code: 8, Help: "calculate P(lower < X < upper), the slice between two limits", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		lower := in.Float("Enter the lower value (lower limit of the interval): ")
		upper := in.Float("Enter the upper value (upper limit of the interval): ", console.Min(lower))
		mean, sdev := st.Get("mean"), st.Get("sdev")
		prob := statfn.NormalCDF((upper-mean)/sdev) - statfn.NormalCDF((lower-mean)/sdev)
		out.Resultf("Prob for %v < X < %v = %v", lower, upper, st.Round(prob))
		return nil
	}})
	d.Register(dispatch.Op{Code: 9, Help: "calculate a Z value given an X value", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		x := in.Float("Enter the value of X: ")
		mean, sdev := st.Get("mean"), st.Get("sdev")
		z := (x - mean) / sdev
		out.Resultf("For u=%v and s=%v, an X value of %v corresponds to a Z value (normalized) = %v",
			mean, sdev, x, st.Round(z))
		return nil
	}})
	d.Register(dispatch.Op{Code: 10, Help: "calculate an X value given a Z value", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		z := in.Float("Enter the value of Z (normalized): ")
		x := z*st.Get("sdev") + st.Get("mean")
		out.Resultf("A Z value of %v gives an X value = %v", z, st.Round(x))
		return nil
	}})
	d.Register(dispatch.Op{Code: 11, Help: "find the X value such that P(X < value) = p for a given probability p", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		p := in.Float("Enter the probability for which you want X (between 0 and 1): ",
			console.Min(0.000001), console.Max(0.999999))
		z := statfn.NormalQuantile(p)
		x := z*st.Get("sdev") + st.Get("mean")
		out.Resultf("For a probability of %v (or %v%%) the Z value is %v and the corresponding X value = %v",
			p, 100*p, st.Round(z), st.Round(x))
		return nil
	}})
	d.Register(dispatch.Op{Code: 12, Help: "one-tail significance test for an X value at level alpha", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		alpha := in.Float("Enter the significance level alpha: ", console.Min(0.00001), console.Max(0.4))
		x := in.Float("Enter the X value to be tested for significance: ")
		mean, sdev := st.Get("mean"), st.Get("sdev")
		z := (x - mean) / sdev
		prob := statfn.NormalCDF(z)
		if x > mean {
			out.Printf("This is a right-tail test.")
			p := 1 - prob
			if p < alpha {
				out.Resultf("Chance of this value, %v, or greater, by chance is %v which is less than alpha=%v.", x, st.Round(p), alpha)
				out.Resultf("At this significance level the deviation is SIGNIFICANT.")
				out.Printf("We reject the null hypothesis and accept the alternative that it is greater than expected.")
			} else {
				out.Resultf("Chance of this value, %v, or greater, by chance is %v which is greater than alpha=%v.", x, st.Round(p), alpha)
				out.Resultf("At this significance level this is NOT significant; it could be a chance deviation.")
				out.Printf("We can NOT reject the null hypothesis.")
			}
		} else {
			out.Printf("This is a left-tail test.")
			p := prob
			if p < alpha {
				out.Resultf("Chance of this value, %v, or smaller, by chance is %v which is less than alpha=%v.", x, st.Round(p), alpha)
				out.Resultf("At this significance level the deviation is SIGNIFICANT.")
				out.Printf("We reject the null hypothesis and accept the alternative that it is smaller than expected.")
			} else {
				out.Resultf("Chance of this value, %v, or smaller, by chance is %v which is greater than alpha=%v.", x, st.Round(p), alpha)
				out.Resultf("At this significance level this is NOT significant; it could be a chance deviation.")
				out.Printf("We can NOT reject the null hypothesis.")
			}
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 13, Help: "two-tail significance test for an X value at level alpha", Run: func() error {
		if err := needParams(); err != nil {
			return err
		}
		alpha := in.Float("Enter the significance level alpha: ", console.Min(0), console.Max(0.4))
		x := in.Float("Enter the X value to be tested: ")
		zlow := statfn.NormalQuantile(alpha / 2)
		zhigh := -zlow
		z := (x - st.Get("mean")) / st.Get("sdev")
		out.Printf("The confidence interval is %v <= Z <= %v, and our X value has a Z-code of %v.",
			st.Round(zlow), st.Round(zhigh), st.Round(z))
		if z < zlow || z > zhigh {
			out.Resultf("This value of X=%v is outside the bounds for our significance level, so this is SIGNIFICANT.", x)
			out.Printf("We reject the null hypothesis and accept the alternative hypothesis.")
		} else {
			out.Resultf("This value of X=%v is within the bounds for our significance level, so this is NOT significant.", x)
			out.Printf("We can NOT reject the null hypothesis.")
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 14, Help: "probability of being between two Z values, or outside the interval", Run: func() error {
		zlow := in.Float("Enter the lower (left) Z-value limit: ")
		zhigh := in.Float("Enter the upper (right) Z-value limit: ", console.Min(zlow))
		between := statfn.NormalCDF(zhigh) - statfn.NormalCDF(zlow)
		out.Resultf("Between %v and %v we find a probability of %v.", zlow, zhigh, st.Round(between))
		out.Resultf("Outside of that interval (both tails together) we have %v of the probability.", st.Round(1-between))
		return nil
	}})
	d.Register(dispatch.Op{Code: 15, Help: "find the Z values giving a probability to the left and to the right", Run: func() error {
		prob := in.Float("Enter the desired probability (as a decimal < 1.0): ",
			console.Min(0.00001), console.Max(0.99999))
		zlow := statfn.NormalQuantile(prob)
		zhigh := statfn.NormalQuantile(1 - prob)
		out.Resultf("P(Z < %v) = %v and also P(Z > %v) = %v", st.Round(zlow), prob, st.Round(zhigh), prob)
		return nil
	}})
	d.Register(dispatch.Op{Code: 16, Help: "find the symmetric Z interval giving (or excluding) a probability", Run: func() error {
		prob := in.Float("Enter the desired probability (as a decimal < 1.0): ",
			console.Min(0.00001), console.Max(0.99999))
		z := st.Round(statfn.NormalQuantile((1 - prob) / 2))
		out.Resultf("For a probability of %v INSIDE we need an interval of (%v, %v).", prob, z, -z)
		z = st.Round(statfn.NormalQuantile(prob / 2))
		out.Resultf("For a probability of %v OUTSIDE the interval (excluded) we need (%v, %v).", prob, z, -z)
		return nil
	}})
	d.Register(dispatch.Op{Code: 17, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
