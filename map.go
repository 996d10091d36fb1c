package stepz

// MapOutput transforms every output of an inner process. Create it with NewMapOutput.
type MapOutput[I, O, T any] struct {
	inner Process[I, T]
	f     func(I) O
}

// NewMapOutput wraps p so that each output is passed through f.
//
// f is called exactly once per output p produces and never on the terminal path.
// The terminal passes through unchanged, as does the number of steps: composing
// NewMapOutput(NewMapOutput(p, f), g) behaves exactly like NewMapOutput(p, g∘f).
//
// Example:
//
//	lengths := stepz.NewMapOutput(words, func(s string) int {
//	    return len(s)
//	})
func NewMapOutput[I, O, T any](p Process[I, T], f func(I) O) MapOutput[I, O, T] {
	return MapOutput[I, O, T]{inner: p, f: f}
}

// Step implements Process.
func (m MapOutput[I, O, T]) Step() Update[Process[O, T], O, T] {
	u := MapUpdateOutput(m.inner.Step(), m.f)
	return MapState(u, func(next Process[I, T]) Process[O, T] {
		return MapOutput[I, O, T]{inner: next, f: m.f}
	})
}

// MapTerminal transforms the terminal of an inner process. Create it with
// NewMapTerminal.
type MapTerminal[O, T, T2 any] struct {
	inner Process[O, T]
	f     func(T) T2
}

// NewMapTerminal wraps p so that its terminal is passed through f.
//
// Outputs pass through unchanged; f is called exactly once, on termination.
// A whole-sequence failure reported at the end needs nothing more than this:
//
//	checked := stepz.NewMapTerminal(rows, func(n int) stepz.Result[int] {
//	    if n == 0 {
//	        return stepz.Fail[int](ErrNoRows)
//	    }
//	    return stepz.Ok(n)
//	})
func NewMapTerminal[O, T, T2 any](p Process[O, T], f func(T) T2) MapTerminal[O, T, T2] {
	return MapTerminal[O, T, T2]{inner: p, f: f}
}

// Step implements Process.
func (m MapTerminal[O, T, T2]) Step() Update[Process[O, T2], O, T2] {
	u := MapUpdateTerminal(m.inner.Step(), m.f)
	return MapState(u, func(next Process[O, T]) Process[O, T2] {
		return MapTerminal[O, T, T2]{inner: next, f: m.f}
	})
}
