package stepz

// Either holds exactly one of a Left or a Right value.
//
// stepz gives the arms no fixed meaning beyond what each function documents. By
// convention Left is the "keep going" arm and Right the "stop" arm: Update.Either
// puts the continuation on the Left and the terminal on the Right, and
// TerminateOnResidual treats Right outputs as residuals.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left builds an Either holding l.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right builds an Either holding r.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isRight: true}
}

// IsLeft reports whether e holds a Left value.
func (e Either[L, R]) IsLeft() bool { return !e.isRight }

// IsRight reports whether e holds a Right value.
func (e Either[L, R]) IsRight() bool { return e.isRight }

// GetLeft returns the Left value and true, or the zero value and false.
func (e Either[L, R]) GetLeft() (l L, ok bool) {
	if e.isRight {
		return l, false
	}
	return e.left, true
}

// GetRight returns the Right value and true, or the zero value and false.
func (e Either[L, R]) GetRight() (r R, ok bool) {
	if !e.isRight {
		return r, false
	}
	return e.right, true
}

// MatchEither calls onLeft or onRight with the held value.
func MatchEither[L, R, X any](e Either[L, R], onLeft func(L) X, onRight func(R) X) X {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// MapLeft applies f to a Left value.
func MapLeft[L, R, L2 any](e Either[L, R], f func(L) L2) Either[L2, R] {
	if e.isRight {
		return Right[L2](e.right)
	}
	return Left[L2, R](f(e.left))
}

// MapRight applies f to a Right value.
func MapRight[L, R, R2 any](e Either[L, R], f func(R) R2) Either[L, R2] {
	if e.isRight {
		return Right[L](f(e.right))
	}
	return Left[L, R2](e.left)
}

// Pair groups two values. AndThen terminates with the Pair of its constituents'
// terminals.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Result is a value or the error that prevented it.
// A non-nil Err means Value must be ignored.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok builds a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail builds a failed Result.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Get returns the value and error in the usual Go order.
func (r Result[T]) Get() (T, error) {
	return r.Value, r.Err
}
