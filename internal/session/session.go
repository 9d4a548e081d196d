// Package session implements the top-level loop: the user picks a helper
// type, the helper's command loop runs, and the selection prompt repeats
// until the user exits.
package session

import (
	"strings"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/dispatch"
	"github.com/calev/stathelper/internal/helper"
)

// Kind identifies one of the selectable helpers, or a meta action.
type Kind int

const (
	KindUnknown Kind = iota
	KindNormal
	KindChiSquare
	KindLinear
	KindBinomial
	KindTable
	KindProportion
	KindDiffProp
	KindRegression
	KindHelperTypes
	KindExit
)

var kindNames = map[Kind]string{
	KindNormal:      "normal",
	KindChiSquare:   "chi2",
	KindLinear:      "linear",
	KindBinomial:    "binomial",
	KindTable:       "table",
	KindProportion:  "proportion",
	KindDiffProp:    "diff of proportions",
	KindRegression:  "regression",
	KindHelperTypes: "helper types",
	KindExit:        "exit",
}

var abbreviations = map[string]Kind{
	"n": KindNormal,
	"c": KindChiSquare,
	"l": KindLinear,
	"b": KindBinomial,
	"t": KindTable,
	"p": KindProportion,
	"d": KindDiffProp,
	"r": KindRegression,
	"h": KindHelperTypes,
	"e": KindExit,
}

// String returns the full helper-type name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a helper-type name or its single-letter abbreviation.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if s == name {
			return k, true
		}
	}
	if k, ok := abbreviations[s]; ok {
		return k, true
	}
	return KindUnknown, false
}

// Controller runs the helper selection loop.
type Controller struct {
	in  *console.Reader
	out *console.Printer
	env helper.Env
	// defaultKind is offered when the selection prompt gets an empty line.
	defaultKind Kind
}

// New creates a Controller. The defaultHelper name falls back to the
// difference-of-proportions helper when it does not parse.
func New(in *console.Reader, out *console.Printer, env helper.Env, defaultHelper string) *Controller {
	k, ok := ParseKind(defaultHelper)
	if !ok || k == KindUnknown || k == KindExit {
		k = KindDiffProp
	}
	return &Controller{in: in, out: out, env: env, defaultKind: k}
}

// PrintHelperTypes lists the available helper types.
func (c *Controller) PrintHelperTypes() {
	c.out.Headerf("These helper types are available:")
	c.out.Printf("chi2 = chi-square test helper (goodness of fit tests)")
	c.out.Printf("normal = normal distribution helper (continuous): bell curve problems")
	c.out.Printf("linear = linear or flat distribution (continuous: a straight line density)")
	c.out.Printf("binomial = binomial (discrete) distribution (success/fail trials) and its normal approximation")
	c.out.Printf("table = problems involving a table of discrete values")
	c.out.Printf("proportion = problems involving a single sample proportion (N trials, K successes)")
	c.out.Printf("diff of proportions = problems with a difference of proportions from two samples")
	c.out.Printf("regression = problems with linear regression, least-squares fit, and correlation")
	c.out.Printf("helper types = choose (or switch) which type of helper you want to use")
	c.out.Printf("exit = you are done and want to exit the program")
	c.out.Hintf("Abbreviations: [n, c, l, b, t, p, d, r, h, e]")
}

func (c *Controller) build(k Kind) *dispatch.Dispatcher {
	switch k {
	case KindNormal:
		return helper.NewNormal(c.env)
	case KindChiSquare:
		return helper.NewChiSquare(c.env)
	case KindLinear:
		return helper.NewLinear(c.env)
	case KindBinomial:
		return helper.NewBinomial(c.env)
	case KindTable:
		return helper.NewTable(c.env)
	case KindProportion:
		return helper.NewProportion(c.env)
	case KindDiffProp:
		return helper.NewDiffProp(c.env)
	case KindRegression:
		return helper.NewRegression(c.env)
	}
	return nil
}

func (c *Controller) promptKind(prompt string, def Kind) Kind {
	for {
		if c.in.EOF() {
			return KindExit
		}
		s := c.in.Line(prompt)
		if s == "" {
			return def
		}
		k, ok := ParseKind(s)
		if !ok {
			c.out.Warnf("Invalid helper type %q. Here are the acceptable values:", s)
			c.PrintHelperTypes()
			continue
		}
		return k
	}
}

// Run executes the selection loop until the user exits or input ends.
func (c *Controller) Run() error {
	c.out.Headerf("Statistics helper")
	c.out.Printf("First choose which helper you want to use; you can switch to a different one later.")
	c.out.Printf("Select the option  exit  when you want to stop and leave the program.")
	c.PrintHelperTypes()

	k := c.promptKind("What helper do you want to use? (type exit to get out): ", c.defaultKind)
	for k != KindExit {
		if k == KindHelperTypes {
			c.PrintHelperTypes()
		} else if d := c.build(k); d != nil {
			if err := d.Run(); err != nil {
				return err
			}
		}
		k = c.promptKind("Enter the next helper type to run, exit to end, or  helper types  to list them: ", KindHelperTypes)
	}
	c.out.Printf("Ending the helper session.")
	return nil
}
