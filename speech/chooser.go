package speech

import "math/rand/v2"

// Chooser picks one of n alternatives. Implementations used by a shared
// Composer must be safe for concurrent use.
type Chooser interface {
	Choose(n int) int
}

// ChooserFunc adapts a function to the Chooser interface
type ChooserFunc func(n int) int

// Choose calls f(n)
func (f ChooserFunc) Choose(n int) int {
	return f(n)
}

type systemChooser struct{}

func (systemChooser) Choose(n int) int {
	return rand.IntN(n)
}

// SystemChooser picks uniformly at random using the runtime's random source
func SystemChooser() Chooser {
	return systemChooser{}
}
