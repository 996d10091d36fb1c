package stepz

// ForEach steps p until it terminates, calling fn with every output, and returns the
// terminal.
//
// ForEach has no other exit: an infinite process never returns. Use ForEachUntil or a
// Driver with a step limit when termination is not guaranteed.
func ForEach[O, T any](p Process[O, T], fn func(O)) T {
	for {
		u := p.Step()
		next, out, ok := u.Continue()
		if !ok {
			t, _ := u.Terminal()
			return t
		}
		fn(out)
		p = next
	}
}

// ForEachUntil steps p calling fn with every output for as long as fn returns true.
//
// If p terminates first, its terminal is returned with done set. If fn returns false,
// the unconsumed continuation (the state following the output fn rejected) is
// returned as rest, which the caller may resume or drop.
//
// Example, dropping the remainder after a prefix and keeping only the terminal:
//
//	rest, term, done := stepz.ForEachUntil(p, keep)
//	if !done {
//	    term = stepz.Drain(rest)
//	}
func ForEachUntil[O, T any](p Process[O, T], fn func(O) bool) (rest Process[O, T], terminal T, done bool) {
	for {
		u := p.Step()
		next, out, ok := u.Continue()
		if !ok {
			t, _ := u.Terminal()
			return nil, t, true
		}
		if !fn(out) {
			return next, terminal, false
		}
		p = next
	}
}

// Drain discards every output of p and returns its terminal.
func Drain[O, T any](p Process[O, T]) T {
	return ForEach(p, func(O) {})
}

// Collect gathers every output of p in order along with the terminal.
func Collect[O, T any](p Process[O, T]) ([]O, T) {
	var outs []O
	t := ForEach(p, func(o O) {
		outs = append(outs, o)
	})
	return outs, t
}

// Take steps p at most n times.
//
// It returns the outputs produced and, when p terminated within those steps, the
// terminal with done set. Otherwise rest is the continuation after the n-th output.
func Take[O, T any](p Process[O, T], n int) (outs []O, rest Process[O, T], terminal T, done bool) {
	if n <= 0 {
		return nil, p, terminal, false
	}
	rest, terminal, done = ForEachUntil(p, func(o O) bool {
		outs = append(outs, o)
		return len(outs) < n
	})
	return outs, rest, terminal, done
}
