package stepz

// Update is the outcome of a single step: either Next, holding the continuation state
// S and one output O, or Terminate, holding the terminal T.
//
// Updates are only built through Next and Terminate, which guarantees exactly one arm
// is populated. The zero Update is a Next with zero state and output and should not
// be relied on.
//
// The transformers (MapState, MapUpdateOutput, MapUpdateTerminal, Branch) name the
// common rewrites a combinator performs on its inner process's update:
//
//	func (w Wrapper) Step() stepz.Update[stepz.Process[int, int], int, int] {
//	    u := stepz.MapState(w.inner.Step(), wrap)
//	    u = stepz.MapUpdateOutput(u, double)
//	    return stepz.MapUpdateTerminal(u, triple)
//	}
type Update[S, O, T any] struct {
	state    S
	output   O
	terminal T
	done     bool
}

// Next builds the non-final update of a step.
func Next[S, O, T any](state S, output O) Update[S, O, T] {
	return Update[S, O, T]{state: state, output: output}
}

// Terminate builds the final update of a process.
func Terminate[S, O, T any](terminal T) Update[S, O, T] {
	return Update[S, O, T]{terminal: terminal, done: true}
}

// IsNext reports whether the step produced an output and a continuation.
func (u Update[S, O, T]) IsNext() bool {
	return !u.done
}

// IsTerminal reports whether the step ended the process.
func (u Update[S, O, T]) IsTerminal() bool {
	return u.done
}

// Continue returns the continuation and output of a Next update.
// ok is false for a Terminate update.
func (u Update[S, O, T]) Continue() (state S, output O, ok bool) {
	if u.done {
		return state, output, false
	}
	return u.state, u.output, true
}

// Terminal returns the terminal of a Terminate update.
// ok is false for a Next update.
func (u Update[S, O, T]) Terminal() (terminal T, ok bool) {
	if !u.done {
		return terminal, false
	}
	return u.terminal, true
}

// Either converts the update into Left((state, output)) or Right(terminal).
func (u Update[S, O, T]) Either() Either[Pair[S, O], T] {
	if u.done {
		return Right[Pair[S, O]](u.terminal)
	}
	return Left[Pair[S, O], T](Pair[S, O]{First: u.state, Second: u.output})
}

// UpdateFromEither is the inverse of Update.Either.
func UpdateFromEither[S, O, T any](e Either[Pair[S, O], T]) Update[S, O, T] {
	if t, ok := e.GetRight(); ok {
		return Terminate[S, O](t)
	}
	p, _ := e.GetLeft()
	return Next[S, O, T](p.First, p.Second)
}

// MapState applies f to the continuation of a Next update.
func MapState[S, O, T, S2 any](u Update[S, O, T], f func(S) S2) Update[S2, O, T] {
	if u.done {
		return Terminate[S2, O](u.terminal)
	}
	return Next[S2, O, T](f(u.state), u.output)
}

// MapUpdateOutput applies f to the output of a Next update.
func MapUpdateOutput[S, O, T, O2 any](u Update[S, O, T], f func(O) O2) Update[S, O2, T] {
	if u.done {
		return Terminate[S, O2](u.terminal)
	}
	return Next[S, O2, T](u.state, f(u.output))
}

// MapUpdateTerminal applies f to the terminal of a Terminate update.
func MapUpdateTerminal[S, O, T, T2 any](u Update[S, O, T], f func(T) T2) Update[S, O, T2] {
	if u.done {
		return Terminate[S, O](f(u.terminal))
	}
	return Next[S, O, T2](u.state, u.output)
}

// Branch lets f turn the output of a Next update into either a new output (Left) or
// a terminal (Right). When f terminates, the continuation is discarded.
func Branch[S, O, T, O2 any](u Update[S, O, T], f func(O) Either[O2, T]) Update[S, O2, T] {
	if u.done {
		return Terminate[S, O2](u.terminal)
	}
	e := f(u.output)
	if t, ok := e.GetRight(); ok {
		return Terminate[S, O2](t)
	}
	o, _ := e.GetLeft()
	return Next[S, O2, T](u.state, o)
}

// MatchUpdate calls onNext or onTerminal depending on the arm of u.
func MatchUpdate[S, O, T, R any](u Update[S, O, T], onNext func(S, O) R, onTerminal func(T) R) R {
	if u.done {
		return onTerminal(u.terminal)
	}
	return onNext(u.state, u.output)
}
