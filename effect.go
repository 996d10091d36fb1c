package stepz

// Effect runs a side effect on every output of an inner process and passes the
// output on unchanged. Create it with NewEffect.
//
// The function must not modify the value it inspects. It is for metrics, audit
// trails and similar observation; use MapOutput to transform and
// TerminateOnResidual to stop.
//
// Example:
//
//	seen := 0
//	counted := stepz.NewEffect(rows, func(Row) { seen++ })
type Effect[O, T any] struct {
	inner Process[O, T]
	fn    func(O)
}

// NewEffect creates an Effect calling fn with every output of p.
func NewEffect[O, T any](p Process[O, T], fn func(O)) Effect[O, T] {
	return Effect[O, T]{inner: p, fn: fn}
}

// Step implements Process.
func (e Effect[O, T]) Step() Update[Process[O, T], O, T] {
	u := e.inner.Step()
	next, out, ok := u.Continue()
	if !ok {
		return u
	}
	e.fn(out)
	return advance[O, T](Effect[O, T]{inner: next, fn: e.fn}, out)
}
