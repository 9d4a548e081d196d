package console

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// FileMode states how a prompted filename will be used.
type FileMode int

const (
	// ModeRead requires the file to already exist.
	ModeRead FileMode = iota
	// ModeWrite accepts any name; the file is created if missing.
	ModeWrite
	// ModeReadWrite requires the file to exist; it will be read then written.
	ModeReadWrite
)

type options struct {
	def     *float64
	min     *float64
	max     *float64
	defYes  *bool
	defName *string
}

// Option configures a single prompt.
type Option func(*options)

// Default supplies the numeric value returned on an empty line.
func Default(v float64) Option {
	return func(o *options) { o.def = &v }
}

// Min sets the inclusive lower bound for a numeric prompt.
func Min(v float64) Option {
	return func(o *options) { o.min = &v }
}

// Max sets the inclusive upper bound for a numeric prompt.
func Max(v float64) Option {
	return func(o *options) { o.max = &v }
}

// DefaultAnswer supplies the yes/no answer returned on an empty line.
func DefaultAnswer(yes bool) Option {
	return func(o *options) { o.defYes = &yes }
}

// DefaultName supplies the filename returned on an empty line.
func DefaultName(name string) Option {
	return func(o *options) { o.defName = &name }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Reader prompts for typed values and retries until the input is valid. A
// caller never receives an unparsable or out-of-range value. Once the input
// stream is exhausted every prompt returns its default (or the zero value),
// so scripted sessions terminate instead of spinning.
type Reader struct {
	sc  *bufio.Scanner
	out *Printer
	eof bool
}

// NewReader creates a Reader over in, echoing prompts through out.
func NewReader(in io.Reader, out *Printer) *Reader {
	return &Reader{sc: bufio.NewScanner(in), out: out}
}

// EOF reports whether the input stream has been exhausted.
func (r *Reader) EOF() bool {
	return r.eof
}

func (r *Reader) line(prompt string) (string, bool) {
	if r.eof {
		return "", false
	}
	r.out.Promptf("%s", prompt)
	if !r.sc.Scan() {
		r.eof = true
		r.out.Blank()
		return "", false
	}
	return strings.TrimSpace(r.sc.Text()), true
}

// Line prompts for a raw line of text, trimmed of surrounding whitespace. It
// returns "" at end of input.
func (r *Reader) Line(prompt string) string {
	s, _ := r.line(prompt)
	return s
}

// Float prompts for a floating point value.
func (r *Reader) Float(prompt string, opts ...Option) float64 {
	o := applyOptions(opts)
	for {
		s, ok := r.line(prompt)
		if !ok {
			if o.def != nil {
				return *o.def
			}
			return 0
		}
		if s == "" {
			if o.def != nil {
				return *o.def
			}
			r.out.Warnf("There is no default value, you must enter a number. Try again.")
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			r.out.Warnf("Invalid input %q. Please enter a floating point value.", s)
			continue
		}
		if o.min != nil && v < *o.min {
			r.out.Warnf("The value %v is below the minimum acceptable value of %v. Please try again.", v, *o.min)
			continue
		}
		if o.max != nil && v > *o.max {
			r.out.Warnf("The value %v is more than the maximum acceptable value of %v. Please try again.", v, *o.max)
			continue
		}
		return v
	}
}

// Int prompts for an integer value.
func (r *Reader) Int(prompt string, opts ...Option) int {
	o := applyOptions(opts)
	for {
		s, ok := r.line(prompt)
		if !ok {
			if o.def != nil {
				return int(*o.def)
			}
			return 0
		}
		if s == "" {
			if o.def != nil {
				return int(*o.def)
			}
			r.out.Warnf("There is no default value, you must enter an integer. Try again.")
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			r.out.Warnf("Invalid input %q. Please enter an integer.", s)
			continue
		}
		if o.min != nil && v < int(*o.min) {
			r.out.Warnf("The value %d is below the minimum acceptable value of %d. Please try again.", v, int(*o.min))
			continue
		}
		if o.max != nil && v > int(*o.max) {
			r.out.Warnf("The value %d is more than the maximum acceptable value of %d. Please try again.", v, int(*o.max))
			continue
		}
		return v
	}
}

// YesNo prompts for a yes/no answer, accepting y/yes/n/no in any case.
func (r *Reader) YesNo(prompt string, opts ...Option) bool {
	o := applyOptions(opts)
	for {
		s, ok := r.line(prompt)
		if !ok {
			if o.defYes != nil {
				return *o.defYes
			}
			return false
		}
		switch strings.ToLower(s) {
		case "":
			if o.defYes != nil {
				return *o.defYes
			}
			r.out.Warnf("There is no default answer. Please enter Y or N.")
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			r.out.Warnf("Invalid input %q. Please enter either Y or N.", s)
		}
	}
}

// Filename prompts for a file path. For ModeRead and ModeReadWrite the file
// must exist; on a missing file the user may try another name or abandon the
// operation, in which case Filename returns "".
func (r *Reader) Filename(prompt string, mode FileMode, opts ...Option) string {
	o := applyOptions(opts)
	for {
		name, ok := r.line(prompt)
		if !ok {
			if o.defName != nil {
				name = *o.defName
			} else {
				return ""
			}
		}
		if name == "" {
			if o.defName != nil {
				name = *o.defName
			} else {
				r.out.Warnf("There is no default file name, you must supply one.")
				continue
			}
		}
		if mode == ModeWrite {
			return name
		}
		if _, err := os.Stat(name); err != nil {
			r.out.Warnf("The file %s does not exist or cannot be read.", name)
			if r.EOF() {
				return ""
			}
			if r.YesNo("Do you want to try a different file name? (Y/N, default Y): ", DefaultAnswer(true)) {
				continue
			}
			return ""
		}
		return name
	}
}
