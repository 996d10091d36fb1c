package stepz

import "go.uber.org/zap"

// Logged debug-logs values as they pass through an inner process. Create it with
// NewLogged.
type Logged[O, T any] struct {
	inner  Process[O, T]
	logger *zap.Logger
	step   int
}

// NewLogged wraps p so that every output and the terminal are logged at debug level
// with the process name and step index. A nil logger disables logging.
func NewLogged[O, T any](name Name, p Process[O, T], logger *zap.Logger) Logged[O, T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Logged[O, T]{
		inner:  p,
		logger: logger.With(zap.String("process", name)),
	}
}

// Step implements Process.
func (l Logged[O, T]) Step() Update[Process[O, T], O, T] {
	u := l.inner.Step()
	next, out, ok := u.Continue()
	if !ok {
		t, _ := u.Terminal()
		l.logger.Debug("terminated", zap.Int("step", l.step), zap.Any("terminal", t))
		return u
	}
	l.logger.Debug("output", zap.Int("step", l.step), zap.Any("output", out))
	return advance[O, T](Logged[O, T]{inner: next, logger: l.logger, step: l.step + 1}, out)
}
