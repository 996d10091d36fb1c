package stepz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
	"go.uber.org/zap"
)

// Observability constants for the Driver.
const (
	// Metrics.
	DriverRunsTotal        = metricz.Key("driver.runs.total")
	DriverStepsTotal       = metricz.Key("driver.steps.total")
	DriverOutputsTotal     = metricz.Key("driver.outputs.total")
	DriverTerminatedTotal  = metricz.Key("driver.terminated.total")
	DriverInterruptedTotal = metricz.Key("driver.interrupted.total")
	DriverLastSteps        = metricz.Key("driver.last.steps")
	DriverDurationMs       = metricz.Key("driver.duration.ms")

	// Spans.
	DriverRunSpan = tracez.Key("driver.run")

	// Tags.
	DriverTagName       = tracez.Tag("driver.name")
	DriverTagSteps      = tracez.Tag("driver.steps")
	DriverTagTerminated = tracez.Tag("driver.terminated")
	DriverTagError      = tracez.Tag("driver.error")

	// Hook event keys.
	DriverEventTerminated  = hookz.Key("driver.terminated")
	DriverEventInterrupted = hookz.Key("driver.interrupted")
)

// DriverEvent describes the end of a run.
// It is emitted via hookz when a run terminates or is interrupted.
type DriverEvent struct {
	Name       Name          // Driver name
	Terminal   any           // Terminal value (terminated runs only)
	Error      error         // Cause (interrupted runs only)
	Steps      int           // Number of Step calls made by the run
	Duration   time.Duration // How long the run took
	Timestamp  time.Time     // When the event occurred
	Terminated bool          // Whether the process reached its terminal
}

// Driver repeatedly steps a Process on behalf of a caller, adding the concerns the
// process model deliberately leaves out: cancellation, deadlines, step limits,
// logging, metrics, tracing and events.
//
// Processes are immutable values; the Driver is the mutable, configurable part. It
// keeps no process state between runs, so one Driver can run many processes, also
// concurrently.
//
// A run ends either with the process terminal or with an *Error[O, T]. Every check
// happens between steps: a Step call is never cut short, and whenever the process
// is still valid the error carries it in Remaining so the run can be resumed.
//
// # Observability
//
// Metrics:
//   - driver.runs.total: Counter of runs started
//   - driver.steps.total: Counter of Step calls
//   - driver.outputs.total: Counter of outputs delivered to callbacks
//   - driver.terminated.total: Counter of runs that reached a terminal
//   - driver.interrupted.total: Counter of interrupted runs
//   - driver.last.steps: Gauge of steps taken by the last run
//   - driver.duration.ms: Gauge of the last run's duration
//
// Traces:
//   - driver.run: Span for each run
//
// Events (via hooks):
//   - driver.terminated: Fired when a run reaches the terminal
//   - driver.interrupted: Fired when a run is interrupted
//
// Example:
//
//	driver := stepz.NewDriver[Row, stepz.Result[stepz.Unit]]("import").
//	    WithMaxSteps(1_000_000).
//	    WithTimeout(30 * time.Second)
//
//	res, err := driver.Run(ctx, rows, func(ctx context.Context, r Row) error {
//	    return store.Insert(ctx, r)
//	})
//	var runErr *stepz.Error[Row, stepz.Result[stepz.Unit]]
//	if errors.As(err, &runErr) && runErr.Resumable() {
//	    res, err = driver.Run(ctx, runErr.Remaining, insert)
//	}
type Driver[O, T any] struct {
	clock    clockz.Clock
	logger   *zap.Logger
	metrics  *metricz.Registry
	tracer   *tracez.Tracer
	hooks    *hookz.Hooks[DriverEvent]
	name     Name
	maxSteps int
	timeout  time.Duration
	mu       sync.RWMutex
}

// NewDriver creates a Driver with no limits and a no-op logger.
func NewDriver[O, T any](name Name) *Driver[O, T] {
	metrics := metricz.New()
	metrics.Counter(DriverRunsTotal)
	metrics.Counter(DriverStepsTotal)
	metrics.Counter(DriverOutputsTotal)
	metrics.Counter(DriverTerminatedTotal)
	metrics.Counter(DriverInterruptedTotal)
	metrics.Gauge(DriverLastSteps)
	metrics.Gauge(DriverDurationMs)

	return &Driver[O, T]{
		name:    name,
		logger:  zap.NewNop(),
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[DriverEvent](),
	}
}

// NewDriverFromConfig creates a Driver configured from cfg, including its logger.
func NewDriverFromConfig[O, T any](name Name, cfg Config) (*Driver[O, T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	return NewDriver[O, T](name).
		WithMaxSteps(cfg.MaxSteps).
		WithTimeout(cfg.Timeout).
		WithLogger(logger), nil
}

// WithClock sets a custom clock for testing.
func (d *Driver[O, T]) WithClock(clock clockz.Clock) *Driver[O, T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock = clock
	return d
}

// WithLogger sets the logger. A nil logger disables logging.
func (d *Driver[O, T]) WithLogger(logger *zap.Logger) *Driver[O, T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
	return d
}

// WithMaxSteps bounds the number of Step calls per run. Zero or less removes the bound.
func (d *Driver[O, T]) WithMaxSteps(n int) *Driver[O, T] {
	if n < 0 {
		n = 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxSteps = n
	return d
}

// WithTimeout bounds the duration of each run. Zero or less removes the deadline.
// The deadline is measured with the driver clock and checked between steps.
func (d *Driver[O, T]) WithTimeout(timeout time.Duration) *Driver[O, T] {
	if timeout < 0 {
		timeout = 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeout = timeout
	return d
}

// getClock returns the clock to use.
func (d *Driver[O, T]) getClock() clockz.Clock {
	if d.clock == nil {
		return clockz.RealClock
	}
	return d.clock
}

// run is the state of a single Run call.
type run[O, T any] struct {
	ctx      context.Context
	clock    clockz.Clock
	logger   *zap.Logger
	start    time.Time
	tag      func(tracez.Tag, string)
	timeout  time.Duration
	maxSteps int
	steps    int
}

// Run steps p until it terminates, calling fn with every output, and returns the
// terminal.
//
// Before every step the driver checks ctx, the deadline and the step limit. A failing
// check, an error from fn, or a panic in fn or in the process interrupts the run
// with an *Error[O, T]. When fn fails, Remaining is the continuation following the
// output fn received, so resuming does not deliver that output again.
func (d *Driver[O, T]) Run(ctx context.Context, p Process[O, T], fn func(context.Context, O) error) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	d.mu.RLock()
	r := run[O, T]{
		clock:    d.getClock(),
		logger:   d.logger,
		timeout:  d.timeout,
		maxSteps: d.maxSteps,
	}
	d.mu.RUnlock()

	d.metrics.Counter(DriverRunsTotal).Inc()
	r.start = r.clock.Now()

	runCtx, span := d.tracer.StartSpan(ctx, DriverRunSpan)
	defer span.Finish()
	r.ctx = runCtx
	r.tag = span.SetTag
	r.tag(DriverTagName, d.name)

	current := p
	for {
		if err := r.ctx.Err(); err != nil {
			return d.interrupt(&r, current, err)
		}
		if r.timeout > 0 && r.clock.Since(r.start) >= r.timeout {
			return d.interrupt(&r, current, ErrDeadline)
		}
		if r.maxSteps > 0 && r.steps >= r.maxSteps {
			return d.interrupt(&r, current, ErrStepLimit)
		}

		u, err := safeStep(current)
		r.steps++
		d.metrics.Counter(DriverStepsTotal).Inc()
		if err != nil {
			return d.interrupt(&r, nil, err)
		}

		next, out, ok := u.Continue()
		if !ok {
			t, _ := u.Terminal()
			d.terminate(&r, t)
			return t, nil
		}

		d.metrics.Counter(DriverOutputsTotal).Inc()
		if err := safeCall(r.ctx, fn, out); err != nil {
			return d.interrupt(&r, next, err)
		}
		current = next
	}
}

// Drain runs p discarding every output.
func (d *Driver[O, T]) Drain(ctx context.Context, p Process[O, T]) (T, error) {
	return d.Run(ctx, p, func(context.Context, O) error { return nil })
}

// Collect runs p gathering every output. On interruption the outputs delivered so
// far are returned with the error.
func (d *Driver[O, T]) Collect(ctx context.Context, p Process[O, T]) ([]O, T, error) {
	var outs []O
	t, err := d.Run(ctx, p, func(_ context.Context, o O) error {
		outs = append(outs, o)
		return nil
	})
	return outs, t, err
}

func (d *Driver[O, T]) terminate(r *run[O, T], t T) {
	elapsed := r.clock.Since(r.start)
	d.metrics.Counter(DriverTerminatedTotal).Inc()
	d.metrics.Gauge(DriverLastSteps).Set(float64(r.steps))
	d.metrics.Gauge(DriverDurationMs).Set(float64(elapsed.Milliseconds()))

	r.tag(DriverTagSteps, fmt.Sprintf("%d", r.steps))
	r.tag(DriverTagTerminated, "true")

	r.logger.Debug("run terminated",
		zap.String("driver", d.name),
		zap.Int("steps", r.steps),
		zap.Duration("duration", elapsed),
		zap.Any("terminal", t))

	_ = d.hooks.Emit(r.ctx, DriverEventTerminated, DriverEvent{ //nolint:errcheck
		Name:       d.name,
		Terminal:   t,
		Steps:      r.steps,
		Duration:   elapsed,
		Timestamp:  r.clock.Now(),
		Terminated: true,
	})
}

func (d *Driver[O, T]) interrupt(r *run[O, T], remaining Process[O, T], cause error) (T, error) {
	elapsed := r.clock.Since(r.start)
	d.metrics.Counter(DriverInterruptedTotal).Inc()
	d.metrics.Gauge(DriverLastSteps).Set(float64(r.steps))
	d.metrics.Gauge(DriverDurationMs).Set(float64(elapsed.Milliseconds()))

	runErr := &Error[O, T]{
		Remaining: remaining,
		Timestamp: r.clock.Now(),
		Err:       cause,
		Path:      []Name{d.name},
		Duration:  elapsed,
		Steps:     r.steps,
		Timeout:   errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, ErrDeadline),
		Canceled:  errors.Is(cause, context.Canceled),
	}

	r.tag(DriverTagSteps, fmt.Sprintf("%d", r.steps))
	r.tag(DriverTagTerminated, "false")
	r.tag(DriverTagError, cause.Error())

	r.logger.Warn("run interrupted",
		zap.String("driver", d.name),
		zap.Int("steps", r.steps),
		zap.Duration("duration", elapsed),
		zap.Bool("resumable", remaining != nil),
		zap.Error(cause))

	_ = d.hooks.Emit(r.ctx, DriverEventInterrupted, DriverEvent{ //nolint:errcheck
		Name:      d.name,
		Error:     runErr,
		Steps:     r.steps,
		Duration:  elapsed,
		Timestamp: runErr.Timestamp,
	})

	var zero T
	return zero, runErr
}

func safeStep[O, T any](p Process[O, T]) (u Update[Process[O, T], O, T], err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	return p.Step(), nil
}

func safeCall[O any](ctx context.Context, fn func(context.Context, O) error, o O) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	return fn(ctx, o)
}

// Name returns the name of this driver.
func (d *Driver[O, T]) Name() Name {
	return d.name
}

// Metrics returns the metrics registry for this driver.
func (d *Driver[O, T]) Metrics() *metricz.Registry {
	return d.metrics
}

// Tracer returns the tracer for this driver.
func (d *Driver[O, T]) Tracer() *tracez.Tracer {
	return d.tracer
}

// Close gracefully shuts down observability components.
func (d *Driver[O, T]) Close() error {
	if d.tracer != nil {
		d.tracer.Close()
	}
	d.hooks.Close()
	return nil
}

// OnTerminated registers a handler for runs that reach the terminal.
// The handler is called asynchronously after the run returns.
func (d *Driver[O, T]) OnTerminated(handler func(context.Context, DriverEvent) error) error {
	_, err := d.hooks.Hook(DriverEventTerminated, handler)
	return err
}

// OnInterrupted registers a handler for interrupted runs.
// The handler is called asynchronously; event.Error is the *Error[O, T] returned.
func (d *Driver[O, T]) OnInterrupted(handler func(context.Context, DriverEvent) error) error {
	_, err := d.hooks.Hook(DriverEventInterrupted, handler)
	return err
}
