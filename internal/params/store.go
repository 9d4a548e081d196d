// Package params holds the mutable per-helper session parameters.
package params

import "math"

// DefaultRounding is the initial number of display decimal places.
const DefaultRounding = 4

// Store keeps a helper's named parameter values, a readiness flag
// distinguishing configured from unconfigured sessions, and the display
// rounding digit count. Rounding affects display only, never stored
// precision.
type Store struct {
	values   map[string]float64
	ready    bool
	rounding int
}

// New creates an empty, unconfigured Store with the default rounding.
func New() *Store {
	return &Store{
		values:   make(map[string]float64),
		rounding: DefaultRounding,
	}
}

// Set stores a named parameter value.
func (s *Store) Set(name string, v float64) {
	s.values[name] = v
}

// Get returns the named parameter, or 0 when unset. Operations must not call
// Get before Ready reports true; the dispatcher enforces this by redirecting
// to the setup command.
func (s *Store) Get(name string) float64 {
	return s.values[name]
}

// Lookup returns the named parameter and whether it has been set.
func (s *Store) Lookup(name string) (float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// MarkReady records that the minimum parameter set is populated.
func (s *Store) MarkReady() {
	s.ready = true
}

// Ready reports whether the minimum parameter set is populated.
func (s *Store) Ready() bool {
	return s.ready
}

// Reset clears all values and the readiness flag, keeping the rounding.
func (s *Store) Reset() {
	s.values = make(map[string]float64)
	s.ready = false
}

// Rounding returns the display digit count.
func (s *Store) Rounding() int {
	return s.rounding
}

// SetRounding sets the display digit count.
func (s *Store) SetRounding(digits int) {
	s.rounding = digits
}

// Round rounds v to the display digit count.
func (s *Store) Round(v float64) float64 {
	shift := math.Pow(10, float64(s.rounding))
	return math.Round(v*shift) / shift
}
