package helper

import (
	"fmt"
	"math"
	"strconv"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/statfn"
)

// NewChiSquare builds the chi-square goodness-of-fit helper. Observed
// frequencies are entered with command 1; one of commands 2, 3, or 4 supplies
// the expected frequencies, after which the null hypothesis can be tested.
func NewChiSquare(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)

	var (
		observed []int
		chance   []float64
		expected []float64
		z2       []float64
		total    int
		chiSq    float64
		yates    float64
		// complete marks that a full (observed + expected) data set exists.
		complete bool
		hasProbs bool
	)

	d := dispatch.New(dispatch.Config{
		Name: "chi-square goodness of fit",
		Intro: []string{
			"Chi-square and goodness of fit helper. Standard symbols:",
			"N = number of categories, v = degrees of freedom (N-1), n = total number of observations.",
			"O_k = observed frequency for category k, E_k = expected frequency for k.",
			"x2 = (O_k-E_k)^2/E_k for one category; chi-square = the sum of all x2 values, the test statistic.",
			"alpha = significance level, p = probability of this chi-square value (or less) for v degrees of freedom.",
		},
		MaxCode:      8,
		FirstDefault: 1,
		NextDefault:  0,
	}, in, out)

	needObserved := func() error {
		if total > 0 {
			return nil
		}
		return dispatch.NeedSetup(1,
			"You have not entered any observations. You must first enter them with command code 1.")
	}
	warnLowExpected := func(e float64) {
		if e < 5 {
			out.Warnf("*** Warning! The expected frequency %v is less than 5; the chi-square test is UNRELIABLE for so few expected results.", st.Round(e))
		}
	}
	reportStatistic := func() {
		v := len(observed) - 1
		p := statfn.ChiSquareCDF(chiSq, v)
		out.Resultf("The test statistic chi-square = %v and the probability p of this (or more) is %v.",
			st.Round(chiSq), st.Round(1-p))
		out.Printf("The chance of being up to this value (or less) is %v.", st.Round(p))
		out.Printf("*** If the problem requires it, the continuity-corrected (Yates) chi-square is %v.", st.Round(yates))
	}

	d.Register(dispatch.Op{Code: 1, Help: "enter the number of categories and the observed frequency for each", Resumes: true, Run: func() error {
		out.Printf("We must know how many different categories there are; we will call them #1 (A), #2 (B), ...")
		n := in.Int("How many different categories of data? : ", console.Min(2), console.Max(26))
		observed = make([]int, 0, n)
		chance = make([]float64, n)
		expected = make([]float64, n)
		z2 = make([]float64, n)
		total = 0
		chiSq, yates = 0, 0
		complete = false
		hasProbs = false
		for i := 0; i < n; i++ {
			value := in.Int(fmt.Sprintf("Enter the observed frequency for category #%d (%s): ", i+1, categoryLetter(i)),
				console.Min(0))
			observed = append(observed, value)
			total += value
		}
		if in.YesNo("Do you have a stated total for the number of observations (optional)? (Y/N, default N): ",
			console.DefaultAnswer(false)) {
			stated := in.Int("Enter the total number of observations that was given to you: ", console.Min(1))
			if stated != total {
				out.Warnf("Your total value %d does not match the entered frequencies, which sum to %d.", stated, total)
				out.Warnf("Check that you have not made a mistake entering the data (code 5 will list it).")
			}
		}
		out.Printf("The total number of observations is %d.", total)
		out.Printf("There are %d categories and %d degrees of freedom.", n, n-1)
		st.MarkReady()
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "calculate expected frequencies assuming they are all equal", Run: func() error {
		if err := needObserved(); err != nil {
			return err
		}
		out.Printf("Calculating expected frequencies on the assumption they are all the same.")
		n := len(observed)
		e := float64(total) / float64(n)
		out.Printf("Each category has the same expected frequency of %v.", st.Round(e))
		warnLowExpected(e)
		chiSq, yates = 0, 0
		hasProbs = false
		for i := range observed {
			expected[i] = e
			chance[i] = 0
			diff := float64(observed[i]) - e
			z2[i] = diff * diff / e
			chiSq += z2[i]
			corrected := math.Abs(diff) - 0.5
			yates += corrected * corrected / e
		}
		reportStatistic()
		complete = true
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "enter an expected probability for each category (decimals or fractions)", Run: func() error {
		if err := needObserved(); err != nil {
			return err
		}
		n := len(observed)
		out.Printf("Enter the expected probability for each of the %d categories. They must add up to 1.", n)
		asFractions := in.YesNo("Do you want to enter fractions (numerator/denominator)? (Y), or decimals 0.x? (N, default): ",
			console.DefaultAnswer(false))
		newChance := make([]float64, n)
		newExpected := make([]float64, n)
		newZ2 := make([]float64, n)
		var newChi, newYates, totalP float64
		for i := 0; i < n; i++ {
			var p float64
			if asFractions {
				num := in.Int(fmt.Sprintf("Enter the probability fraction numerator for category #%d (%s): ", i+1, categoryLetter(i)),
					console.Min(1))
				denom := in.Int(fmt.Sprintf("Enter the probability fraction denominator for category #%d (%s): ", i+1, categoryLetter(i)),
					console.Min(float64(num+1)))
				p = float64(num) / float64(denom)
			} else {
				p = in.Float(fmt.Sprintf("Enter the probability decimal for category #%d (%s): ", i+1, categoryLetter(i)),
					console.Min(0.000001), console.Max(0.999999))
			}
			totalP += p
			newChance[i] = p
			newExpected[i] = p * float64(total)
			out.Printf("For category #%d the expected value is %v.", i+1, st.Round(newExpected[i]))
			warnLowExpected(newExpected[i])
			diff := float64(observed[i]) - newExpected[i]
			newZ2[i] = diff * diff / newExpected[i]
			newChi += newZ2[i]
			corrected := math.Abs(diff) - 0.5
			newYates += corrected * corrected / newExpected[i]
		}
		if totalP > 1.001 || totalP < 0.999 {
			return fmt.Errorf("the total probability for all categories is %v but it should add up to 1; use code 5 to check the table or code 3 to re-enter the probabilities", totalP)
		}
		chance, expected, z2 = newChance, newExpected, newZ2
		chiSq, yates = newChi, newYates
		hasProbs = true
		reportStatistic()
		complete = true
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "enter a specific expected frequency for each category", Run: func() error {
		if err := needObserved(); err != nil {
			return err
		}
		n := len(observed)
		out.Printf("Enter the expected frequency for each of the %d categories. They must add up to the %d observations.", n, total)
		newExpected := make([]float64, n)
		newZ2 := make([]float64, n)
		var newChi, newYates, totalE float64
		for i := 0; i < n; i++ {
			f := in.Float(fmt.Sprintf("Enter the expected frequency for category #%d (%s): ", i+1, categoryLetter(i)),
				console.Min(0.000001), console.Max(float64(total)))
			totalE += f
			newExpected[i] = f
			warnLowExpected(f)
			diff := float64(observed[i]) - f
			newZ2[i] = diff * diff / f
			newChi += newZ2[i]
			corrected := math.Abs(diff) - 0.5
			newYates += corrected * corrected / f
		}
		if math.Abs(totalE-float64(total)) > 0.001 {
			return fmt.Errorf("the total of the expected frequencies is %v but it should add up to %d; use code 5 to check the table or code 4 to re-enter them", totalE, total)
		}
		expected, z2 = newExpected, newZ2
		chiSq, yates = newChi, newYates
		for i := range chance {
			chance[i] = 0
		}
		hasProbs = false
		reportStatistic()
		complete = true
		return nil
	}})
	d.Register(dispatch.Op{Code: 5, Help: "print the table of observed, expected, and x2 values with the test statistic", Run: func() error {
		if err := needObserved(); err != nil {
			return err
		}
		n := len(observed)
		var totE, totP, totX float64
		var rows [][]string
		for i := 0; i < n; i++ {
			row := []string{
				fmt.Sprintf("#%d (%s)", i+1, categoryLetter(i)),
				strconv.Itoa(observed[i]),
			}
			if hasProbs {
				row = append(row, strconv.FormatFloat(chance[i], 'g', -1, 64))
				totP += chance[i]
			}
			row = append(row,
				strconv.FormatFloat(st.Round(expected[i]), 'g', -1, 64),
				strconv.FormatFloat(st.Round(z2[i]), 'g', -1, 64))
			rows = append(rows, row)
			totE += expected[i]
			totX += z2[i]
		}
		totals := []string{"Totals", strconv.Itoa(total)}
		headers := []string{"Cat #", "Observed"}
		if hasProbs {
			headers = append(headers, "Prob.")
			totals = append(totals, strconv.FormatFloat(st.Round(totP), 'g', -1, 64))
		}
		headers = append(headers, "Expected", "X-squared")
		totals = append(totals,
			strconv.FormatFloat(st.Round(totE), 'g', -1, 64),
			strconv.FormatFloat(st.Round(totX), 'g', -1, 64))
		rows = append(rows, totals)
		right := map[int]bool{1: true, 2: true, 3: true}
		if hasProbs {
			right[4] = true
		}
		out.Table(headers, rows, right)
		out.Printf("The number of categories is %d, the degrees of freedom = %d.", n, n-1)
		out.Printf("The total number of observations is %d.", total)
		reportStatistic()
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "test the null hypothesis (observed = expected) at a significance level", Run: func() error {
		out.Printf("Given a significance level we will test the null hypothesis for the current data.")
		if !complete {
			// Redirect through the table print so the user can see what is
			// missing before re-entering data.
			return dispatch.NeedSetup(5,
				"You do not have a complete set of data yet. Enter observations with code 1, then expected values with code 2, 3, or 4.")
		}
		v := len(observed) - 1
		alpha := in.Float("What is the significance level (alpha) to be used? : ",
			console.Default(0.05), console.Min(0.00001), console.Max(0.4999))
		upper := 1 - alpha
		pLeft := statfn.ChiSquareCDF(chiSq, v)
		p := 1 - pLeft
		out.Resultf("The probability p for a chi-square of %v (or more) is %v.", st.Round(chiSq), st.Round(p))
		if p < alpha {
			out.Resultf("%v is less than alpha %v (too small a chance to be this far), so we MUST reject the null hypothesis.", st.Round(p), alpha)
		} else {
			out.Resultf("%v is greater than %v, so we CAN NOT reject the null hypothesis.", st.Round(p), alpha)
		}
		if pLeft > upper {
			out.Printf("The cumulative probability %v is greater than the maximum we can tolerate, %v, so we MUST reject the null hypothesis.", st.Round(pLeft), upper)
		} else {
			out.Printf("The cumulative probability %v is less than the maximum we can tolerate, %v, so we CAN NOT reject the null hypothesis.", st.Round(pLeft), upper)
		}
		critical := statfn.ChiSquareQuantile(upper, v)
		out.Printf("Another approach: the critical chi-square value for alpha of %v is %v.", alpha, st.Round(critical))
		if critical < chiSq {
			out.Printf("Since the critical value is less than our actual value of %v we MUST reject the null hypothesis.", st.Round(chiSq))
		} else {
			out.Printf("Because the critical value is more than our actual value of %v we CAN NOT reject the null hypothesis.", st.Round(chiSq))
		}
		out.Printf("*** Using the Yates continuity-corrected value of %v instead of the regular chi-square gives", st.Round(yates))
		out.Printf("a right-tail probability of %v; compare the critical value %v against %v as well.",
			st.Round(1-statfn.ChiSquareCDF(yates, v)), st.Round(critical), st.Round(yates))
		return nil
	}})
	d.Register(dispatch.Op{Code: 7, Help: "enter a new number of decimal places for rounding answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 8, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
