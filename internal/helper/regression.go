package helper

import (
	"fmt"
	"math"
	"os"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/plot"
	"github.com/calev/stathelper/internal/regression"
	"github.com/calev/stathelper/internal/statfn"
)

// NewRegression builds the regression, least-squares, and correlation helper
// around a regression.Engine.
func NewRegression(env Env) *dispatch.Dispatcher {
	in, out := env.In, env.Out
	st := newStore(env)
	eng := regression.NewEngine()

	var (
		// dataFromFile records that the point set came unmodified from a
		// CSV file; manual entry or correction clears it.
		dataFromFile bool
		sourceFile   string
	)

	d := dispatch.New(dispatch.Config{
		Name: "regression and correlation",
		Intro: []string{
			"Helper for regression, least-squares, and correlation problems.",
		},
		MaxCode:      11,
		FirstDefault: 1,
		NextDefault:  0,
	}, in, out)

	needData := func() error {
		if eng.Len() > 0 {
			return nil
		}
		return dispatch.NeedSetup(1, "There is no data entered yet. Enter some points first.")
	}
	lineEquation := func(kind, dep string, l regression.Line) string {
		if l.Slope >= 0 {
			return fmt.Sprintf("%s = %v + %v*%s", kind, st.Round(l.Intercept), st.Round(l.Slope), dep)
		}
		return fmt.Sprintf("%s = %v - %v*%s", kind, st.Round(l.Intercept), st.Round(math.Abs(l.Slope)), dep)
	}
	plotPoints := func() []plot.Point {
		pts := eng.Points()
		out2 := make([]plot.Point, len(pts))
		for i, p := range pts {
			out2[i] = plot.Point{X: p.X, Y: p.Y}
		}
		return out2
	}
	renderPlot := func(lines []plot.Line) {
		if err := plot.Scatter(out.Writer(), "x,y scatter", plotPoints(), lines, env.PlotWidth, env.PlotHeight); err != nil {
			out.Errorf("plot: %v", err)
		}
	}

	d.Register(dispatch.Op{Code: 1, Help: "enter a new set of x,y points (typed in, or read from a CSV file)", Resumes: true, Run: func() error {
		out.Printf("You will now enter a new set of x,y data points to be analyzed.")
		if in.YesNo("Do you have a CSV file of data you want read (Y) or will you type in the data (N, default)? : ",
			console.DefaultAnswer(false)) {
			name := in.Filename("What is the name of the file (include path info if needed)? : ", console.ModeRead)
			if name == "" {
				out.Warnf("Terminating the operation; use command code 1 if you want to try again.")
				return nil
			}
			f, err := os.Open(name)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			defer f.Close()
			eng.Reset()
			added, skipped, err := eng.ImportCSV(f)
			if err != nil {
				return fmt.Errorf("import %s: %w", name, err)
			}
			for _, s := range skipped {
				out.Warnf("** line #%d of the file was skipped: %s", s.Line, s.Reason)
			}
			out.Printf("Have read %d points (pairs of actual data).", added)
			dataFromFile = true
			sourceFile = name
			return nil
		}
		n := in.Int("How many different points (x and y pairs) do you have to enter? : ", console.Min(2))
		eng.Reset()
		for k := 1; k <= n; k++ {
			out.Printf("Point #%d", k)
			x := in.Float("What is the value of x? : ")
			y := in.Float("Enter the value of y for this x: ")
			eng.AddPoint(x, y)
		}
		dataFromFile = false
		sourceFile = ""
		return nil
	}})
	d.Register(dispatch.Op{Code: 2, Help: "display the x,y points; optionally save them to a CSV file or scatter plot them", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		n := eng.Len()
		out.Printf("You have entered %d x,y pairs (points).", n)
		pts := eng.Points()
		if in.YesNo("Do you want to see all of them (Y, default) or only a subset (N)? : ",
			console.DefaultAnswer(true)) {
			for i, p := range pts {
				out.Printf(" X[%d]=%v, Y[%d]=%v", i+1, p.X, i+1, p.Y)
			}
		} else {
			start := in.Int("What is the first point you want to see (default 1)? : ",
				console.Default(1), console.Min(1), console.Max(float64(n)))
			stop := in.Int(fmt.Sprintf("What is the last point you want to see (default %d)? : ", n),
				console.Default(float64(n)), console.Min(float64(start)), console.Max(float64(n)))
			out.Printf("Here are the values in the %d to %d range:", start, stop)
			for i := start; i <= stop; i++ {
				out.Printf(" X[%d]=%v, Y[%d]=%v", i, pts[i-1].X, i, pts[i-1].Y)
			}
		}
		if !dataFromFile {
			if in.YesNo("Do you want to save this data into a CSV file? (Y/N, default N): ",
				console.DefaultAnswer(false)) {
				name := in.Filename("What is the file name to use (the data is appended if it exists)? : ", console.ModeWrite)
				if name != "" {
					f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
					if err != nil {
						return fmt.Errorf("open %s: %w", name, err)
					}
					defer f.Close()
					if err := eng.ExportCSV(f); err != nil {
						return fmt.Errorf("export to %s: %w", name, err)
					}
					out.Printf("Saved %d points to %s.", n, name)
				}
			}
		}
		if in.YesNo("Do you want to see a plot of this data? (Y/N, default N): ",
			console.DefaultAnswer(false)) {
			var lines []plot.Line
			if eng.Cached() {
				if fwd, err := eng.ForwardLine(); err == nil {
					lines = append(lines, plot.Line{Name: "y on x", Intercept: fwd.Intercept, Slope: fwd.Slope})
				}
			}
			renderPlot(lines)
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 3, Help: "correct the set of x,y points if there are any typos", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		count := 0
		for {
			k := in.Int("Which point (#) do you want to correct? : ",
				console.Min(1), console.Max(float64(eng.Len())))
			p, err := eng.PointAt(k)
			if err != nil {
				return err
			}
			out.Printf("Currently point #%d has values X[%d]=%v, Y[%d]=%v.", k, k, p.X, k, p.Y)
			x := in.Float("Enter the correct X value for this point: ")
			y := in.Float("Enter the correct Y value for this point: ")
			if x != p.X || y != p.Y {
				if err := eng.CorrectPoint(k, x, y); err != nil {
					return err
				}
				dataFromFile = false
				count++
			}
			if !in.YesNo("Do you wish to correct any other points? (Y/N, default N): ",
				console.DefaultAnswer(false)) {
				break
			}
		}
		out.Printf("You have made %d changes to points. Use command code 2 to check the data again.", count)
		return nil
	}})
	d.Register(dispatch.Op{Code: 4, Help: "calculate R with the first formula (no means needed)", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		cached := eng.Cached()
		stats, err := eng.Stats()
		if err != nil {
			return err
		}
		if cached {
			out.Resultf("For the current data (%d points, already analyzed) the R value is %v (raw %v).",
				stats.N, st.Round(stats.R), stats.R)
		} else {
			out.Resultf("The first formula gives an R value of %v (unrounded %v).", st.Round(stats.R), stats.R)
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 5, Help: "calculate R with the second formula (means and standard deviations)", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		stats, err := eng.Stats()
		if err != nil {
			return err
		}
		out.Printf("X-mean is %v and Y-mean is %v, while Sx=%v and Sy=%v.",
			stats.MeanX, stats.MeanY, st.Round(stats.SX), st.Round(stats.SY))
		out.Printf("Sum of (x-mx)(y-my) products = %v, divided by (n-1)*Sx*Sy = %d*%v*%v.",
			stats.SumDXDY, stats.N-1, stats.SX, stats.SY)
		r, err := eng.CorrelationAlt()
		if err != nil {
			return err
		}
		out.Resultf("The second formula gives an R value of %v (unrounded %v).", st.Round(r), r)
		return nil
	}})
	d.Register(dispatch.Op{Code: 6, Help: "calculate the best fitting (least-squares) regression line", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		out.Printf("Calculating the linear least-squares line from the current data.")
		fwd, err := eng.ForwardLine()
		if err != nil {
			return err
		}
		out.Resultf("The best least-squares line has intercept=%v and slope=%v.", fwd.Intercept, fwd.Slope)
		out.Resultf("You can write it as %s.", lineEquation("Y-hat", "X", fwd))
		return nil
	}})
	d.Register(dispatch.Op{Code: 7, Help: "print all the statistics (R, best fit line, standard error, ...) for the data", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		stats, err := eng.Stats()
		if err != nil {
			return err
		}
		out.Printf("We have a total of %d points (pairs of x,y values) entered.", stats.N)
		if dataFromFile {
			out.Printf("This data was read from a file named %s.", sourceFile)
		}
		out.Resultf("The coefficient of linear correlation, R, is %v (or %v).", st.Round(stats.R), stats.R)
		out.Resultf("The best fitting line (least-squares) has intercept=%v and slope=%v.",
			st.Round(stats.Forward.Intercept), st.Round(stats.Forward.Slope))
		out.Printf("You can write it (without rounding) as Y_hat = %v %+v*X.", stats.Forward.Intercept, stats.Forward.Slope)
		if stats.HasStudentT {
			out.Printf("The Student t value for the rho=0 hypothesis is %v (or %v) with %d degrees of freedom.",
				st.Round(stats.StudentT), stats.StudentT, stats.N-2)
		}
		out.Printf("The standard error of estimation SE (of Y on X) is %v (or %v).", st.Round(stats.SE), stats.SE)
		out.Printf("(the alternate formula gives an SE of %v)", st.Round(math.Sqrt(stats.VarUnexplained/float64(stats.N))))
		if stats.HasSampleSE {
			out.Printf("The modified SE (SE-hat, sample SE) is %v.", st.Round(stats.SampleSE))
		}
		out.Printf("meanX=%v sx=%v; meanY=%v sy=%v",
			st.Round(stats.MeanX), st.Round(stats.SX), st.Round(stats.MeanY), st.Round(stats.SY))
		out.Printf("The coefficient of covariance, Sxy, is %v (or %v).", st.Round(stats.SXY), stats.SXY)
		out.Printf("Total variation=%v, unexplained variation=%v, explained variation=%v.",
			st.Round(stats.VarTotal), st.Round(stats.VarUnexplained), st.Round(stats.VarExplained))
		if stats.HasFisherZ {
			out.Printf("Fisher's Z statistic for this R value is %v.", st.Round(stats.FisherZ))
		}
		out.Rule()
		out.Printf("The regression line above treats Y as the dependent variable and X as the independent one.")
		out.Printf("The reverse line treats X as a function of Y; the correlation is the same but the line differs.")
		if stats.HasReverse {
			out.Resultf("The best fitting X on Y line has intercept=%v and slope=%v.",
				st.Round(stats.Reverse.Intercept), st.Round(stats.Reverse.Slope))
			out.Printf("You can write it as %s.", lineEquation("X-hat", "Y", stats.Reverse))
			out.Printf("The reverse SE (standard error of estimate of X on Y) is %v (or %v).",
				st.Round(stats.ReverseSE), stats.ReverseSE)
		} else {
			out.Warnf("The reverse-line denominator is 0, so the X on Y line can not be computed.")
		}
		if in.YesNo("Do you want to see a plot of the data? (Y/N, default N): ",
			console.DefaultAnswer(false)) {
			lines := []plot.Line{
				{Name: "y on x", Intercept: stats.Forward.Intercept, Slope: stats.Forward.Slope},
			}
			if stats.HasReverse {
				lines = append(lines, plot.Line{
					Name:      "x on y",
					Intercept: stats.Reverse.Intercept,
					Slope:     stats.Reverse.Slope,
					Swapped:   true,
				})
			}
			renderPlot(lines)
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 8, Help: "compare actual Y values against the ones a regression line predicts (residuals)", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		usingData := in.YesNo("Do you want to use the calculated regression line for the current data? (Y, default), or enter a line equation (N)? : ",
			console.DefaultAnswer(true))
		var line regression.Line
		if usingData {
			fwd, err := eng.ForwardLine()
			if err != nil {
				return err
			}
			line = fwd
		} else {
			line.Intercept = in.Float("Enter the intercept value a for the equation y-hat = A + b*x: ")
			line.Slope = in.Float("Enter the slope value b for the equation y-hat = a + B*x: ")
		}
		for {
			y := in.Float("Enter the Y value you want to compare to the predicted value: ")
			x := in.Float("Enter the X value for this Y value: ")
			if usingData {
				yhat, residual, deviations, err := eng.Residual(x, y)
				if err != nil {
					return err
				}
				out.Resultf("The predicted y-hat for this x is %v and the residual (deviation) is %v.",
					st.Round(yhat), st.Round(residual))
				out.Printf("This Y value is %v standard errors away from the predicted y-hat.", st.Round(deviations))
			} else {
				yhat := line.At(x)
				out.Resultf("The predicted y-hat for this x is %v and the residual (deviation) is %v.",
					st.Round(yhat), st.Round(yhat-y))
			}
			if !in.YesNo("Want to test another Y,X point? (Y/N, default Y): ", console.DefaultAnswer(true)) {
				break
			}
		}
		return nil
	}})
	d.Register(dispatch.Op{Code: 9, Help: "run the reference least-squares routine and compare it with our values", Run: func() error {
		if err := needData(); err != nil {
			return err
		}
		stats, err := eng.Stats()
		if err != nil {
			return err
		}
		out.Printf("Our function calculated slope=%v intercept=%v, R=%v, SE=%v.",
			stats.Forward.Slope, stats.Forward.Intercept, stats.R, stats.SE)
		pts := eng.Points()
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for i, p := range pts {
			xs[i] = p.X
			ys[i] = p.Y
		}
		ref := statfn.LinearFit(xs, ys)
		out.Rule()
		out.Printf("The reference routine says: slope=%v intercept=%v, R=%v.", ref.Slope, ref.Intercept, ref.R)
		out.Resultf("Rounded to %d digits: slope=%v intercept=%v, R=%v.",
			st.Rounding(), st.Round(ref.Slope), st.Round(ref.Intercept), st.Round(ref.R))
		return nil
	}})
	d.Register(dispatch.Op{Code: 10, Help: "enter a new number of decimal places for rounding answers", Run: func() error {
		promptRounding(in, out, st)
		return nil
	}})
	d.Register(dispatch.Op{Code: 11, Help: "print the command codes list again", Run: func() error {
		d.PrintHelp()
		return nil
	}})

	return d
}
