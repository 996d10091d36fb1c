package stepz

// TerminateOnResidual stops an inner process at the first residual output.
// Create it with NewTerminateOnResidual.
//
// split decides, for every inner output, whether it is a success (Left) to pass on or
// a residual (Right) that ends the whole process. On a residual the process terminates
// with Right(residual) and the unconsumed inner process is dropped: there is no
// resumption past a residual. If the inner process terminates on its own, the
// terminal is wrapped as Left(terminal).
//
// Unlike ranging over a sequence of results, nothing lets a caller obtain an output
// after the residual: once Step returns Terminate there is no continuation.
type TerminateOnResidual[I, X, E, T any] struct {
	inner Process[I, T]
	split func(I) Either[X, E]
}

// NewTerminateOnResidual wraps p, splitting each output with split.
//
// Example, treating negative readings as residuals:
//
//	readings := stepz.NewTerminateOnResidual(raw, func(v int) stepz.Either[int, int] {
//	    if v < 0 {
//	        return stepz.Right[int](v)
//	    }
//	    return stepz.Left[int, int](v)
//	})
func NewTerminateOnResidual[I, X, E, T any](p Process[I, T], split func(I) Either[X, E]) TerminateOnResidual[I, X, E, T] {
	return TerminateOnResidual[I, X, E, T]{inner: p, split: split}
}

// Step implements Process.
func (r TerminateOnResidual[I, X, E, T]) Step() Update[Process[X, Either[T, E]], X, Either[T, E]] {
	u := MapState(r.inner.Step(), func(next Process[I, T]) Process[X, Either[T, E]] {
		return TerminateOnResidual[I, X, E, T]{inner: next, split: r.split}
	})
	u2 := MapUpdateTerminal(u, func(t T) Either[T, E] {
		return Left[T, E](t)
	})
	return Branch(u2, func(in I) Either[X, Either[T, E]] {
		return MapRight(r.split(in), func(e E) Either[T, E] {
			return Right[T](e)
		})
	})
}

// TerminateOnErr stops an inner process at the first failed Result output.
// Create it with NewTerminateOnErr.
//
// Successful outputs pass on as their Value. The first output with a non-nil Err ends
// the whole process with Fail(err), dropping the rest of the inner process: the first
// failure wins. If the inner process terminates on its own, its terminal is wrapped
// with Ok.
type TerminateOnErr[X, T any] struct {
	inner Process[Result[X], T]
}

// NewTerminateOnErr wraps p.
//
// Example:
//
//	lines := stepz.NewTerminateOnErr(readLines)
//	res := stepz.ForEach(lines, func(line string) { count++ })
//	if res.Err != nil {
//	    return res.Err
//	}
func NewTerminateOnErr[X, T any](p Process[Result[X], T]) TerminateOnErr[X, T] {
	return TerminateOnErr[X, T]{inner: p}
}

// Step implements Process.
func (r TerminateOnErr[X, T]) Step() Update[Process[X, Result[T]], X, Result[T]] {
	u := MapState(r.inner.Step(), func(next Process[Result[X], T]) Process[X, Result[T]] {
		return TerminateOnErr[X, T]{inner: next}
	})
	return Branch(MapUpdateTerminal(u, Ok[T]), func(res Result[X]) Either[X, Result[T]] {
		if res.Err != nil {
			return Right[X](Fail[T](res.Err))
		}
		return Left[X, Result[T]](res.Value)
	})
}
