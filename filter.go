package stepz

// Filter passes on only the outputs of an inner process that satisfy a predicate.
// Create it with NewFilter.
//
// A single Filter step keeps stepping the inner process until an output is kept or
// the inner process terminates, so one outer step may cost many inner steps. The
// terminal passes through unchanged.
//
// Example:
//
//	active := stepz.NewFilter(users, func(u User) bool { return u.Active })
type Filter[O, T any] struct {
	inner Process[O, T]
	keep  func(O) bool
}

// NewFilter creates a Filter keeping the outputs of p for which keep returns true.
func NewFilter[O, T any](p Process[O, T], keep func(O) bool) Filter[O, T] {
	return Filter[O, T]{inner: p, keep: keep}
}

// Step implements Process.
func (f Filter[O, T]) Step() Update[Process[O, T], O, T] {
	p := f.inner
	for {
		u := p.Step()
		next, out, ok := u.Continue()
		if !ok {
			t, _ := u.Terminal()
			return finish[O](t)
		}
		if f.keep(out) {
			return advance[O, T](Filter[O, T]{inner: next, keep: f.keep}, out)
		}
		p = next
	}
}
