// Package testing provides test utilities and helpers for stepz-based code.
//
// It includes scripted processes, a tracker that catches a process being stepped
// twice, chaos injection, and assertion helpers for output sequences and terminals.
//
// Example usage:
//
//	func TestMyCombinator(t *testing.T) {
//		tracker := testing.NewTracker[int, string](t, "source")
//		src := tracker.Track(testing.NewScript[int, string](1, 2, 3).Then("done"))
//
//		testing.AssertSequence(t, myCombinator(src), []int{2, 4, 6}, "done")
//		testing.AssertSingleUse(t, tracker)
//		testing.AssertSteps(t, tracker, 4)
//	}
package testing

import (
	"crypto/rand"
	"fmt"
	mathrand "math/rand"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/stepz"
)

// Script is a process that produces a fixed list of outputs and then a terminal.
// It can be told to panic at a given step to exercise recovery paths.
type Script[O, T any] struct {
	outputs  []O
	terminal T
	panicMsg string
	panicIn  int // steps until the panic plus one; zero disables it
}

// NewScript creates a script producing outputs and terminating with the zero T.
func NewScript[O, T any](outputs ...O) Script[O, T] {
	return Script[O, T]{outputs: outputs}
}

// Then sets the terminal.
func (s Script[O, T]) Then(terminal T) Script[O, T] {
	s.terminal = terminal
	return s
}

// WithPanicAt makes the step with index step (counting from zero) panic with msg.
func (s Script[O, T]) WithPanicAt(step int, msg string) Script[O, T] {
	s.panicIn = step + 1
	s.panicMsg = msg
	return s
}

// Step implements stepz.Process.
func (s Script[O, T]) Step() stepz.Update[stepz.Process[O, T], O, T] {
	if s.panicIn == 1 {
		panic(s.panicMsg)
	}
	if len(s.outputs) == 0 {
		return stepz.Terminate[stepz.Process[O, T], O](s.terminal)
	}
	next := s
	next.outputs = s.outputs[1:]
	if s.panicIn > 0 {
		next.panicIn = s.panicIn - 1
	}
	return stepz.Next[stepz.Process[O, T], O, T](next, s.outputs[0])
}

// StepRecord represents a single observed step.
type StepRecord[O, T any] struct {
	Timestamp time.Time
	Output    O
	Terminal  T
	Index     int
	Done      bool
}

// Tracker records the steps taken by the processes it tracks and reports any
// process value that is stepped more than once.
type Tracker[O, T any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t          *testing.T
	name       string
	stepCount  int64
	mu         sync.Mutex
	stepped    map[int]bool
	reused     []int
	history    []StepRecord[O, T]
	maxHistory int
}

// NewTracker creates a tracker. Reuse is reported through t as it happens; pass a
// nil t to only record it.
func NewTracker[O, T any](t *testing.T, name string) *Tracker[O, T] {
	return &Tracker[O, T]{
		t:          t,
		name:       name,
		stepped:    make(map[int]bool),
		maxHistory: 100, // Keep last 100 steps by default
	}
}

// WithHistorySize configures how many steps to keep in history.
// Set to 0 to disable history tracking.
func (tr *Tracker[O, T]) WithHistorySize(size int) *Tracker[O, T] {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.maxHistory = size
	if size == 0 {
		tr.history = nil
	} else if len(tr.history) > size {
		tr.history = tr.history[len(tr.history)-size:]
	}
	return tr
}

// Track wraps p. The returned process and each of its continuations are numbered;
// stepping the same number twice is recorded as reuse. Use one tracker per process.
func (tr *Tracker[O, T]) Track(p stepz.Process[O, T]) Tracked[O, T] {
	return Tracked[O, T]{tracker: tr, inner: p}
}

// Tracked is a process observed by a Tracker.
type Tracked[O, T any] struct {
	tracker *Tracker[O, T]
	inner   stepz.Process[O, T]
	index   int
}

// Step implements stepz.Process.
func (p Tracked[O, T]) Step() stepz.Update[stepz.Process[O, T], O, T] {
	p.tracker.enter(p.index)
	u := p.inner.Step()

	next, out, ok := u.Continue()
	if !ok {
		term, _ := u.Terminal()
		p.tracker.record(StepRecord[O, T]{Index: p.index, Terminal: term, Done: true})
		return u
	}
	p.tracker.record(StepRecord[O, T]{Index: p.index, Output: out})
	return stepz.Next[stepz.Process[O, T], O, T](Tracked[O, T]{tracker: p.tracker, inner: next, index: p.index + 1}, out)
}

func (tr *Tracker[O, T]) enter(index int) {
	atomic.AddInt64(&tr.stepCount, 1)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.stepped[index] {
		tr.reused = append(tr.reused, index)
		if tr.t != nil {
			tr.t.Errorf("process %s: step %d was taken more than once", tr.name, index)
		}
		return
	}
	tr.stepped[index] = true
}

func (tr *Tracker[O, T]) record(rec StepRecord[O, T]) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.maxHistory == 0 {
		return
	}
	rec.Timestamp = time.Now()
	tr.history = append(tr.history, rec)
	if len(tr.history) > tr.maxHistory {
		tr.history = tr.history[1:] // Remove oldest
	}
}

// Name returns the name of the tracker.
func (tr *Tracker[O, T]) Name() stepz.Name {
	return tr.name
}

// StepCount returns the number of Step calls observed.
func (tr *Tracker[O, T]) StepCount() int {
	return int(atomic.LoadInt64(&tr.stepCount))
}

// Reused returns the indices of steps that were taken more than once.
func (tr *Tracker[O, T]) Reused() []int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]int(nil), tr.reused...)
}

// History returns a copy of the recorded steps.
func (tr *Tracker[O, T]) History() []StepRecord[O, T] {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.maxHistory == 0 {
		return nil
	}
	history := make([]StepRecord[O, T], len(tr.history))
	copy(history, tr.history)
	return history
}

// Terminated reports whether a tracked process reached its terminal.
func (tr *Tracker[O, T]) Terminated() bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, rec := range tr.history {
		if rec.Done {
			return true
		}
	}
	return false
}

// Reset clears all tracking.
func (tr *Tracker[O, T]) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	atomic.StoreInt64(&tr.stepCount, 0)
	tr.stepped = make(map[int]bool)
	tr.reused = nil
	tr.history = nil
}

// Assertion Helpers

// AssertSteps verifies that a tracker observed exactly n Step calls.
func AssertSteps[O, T any](t *testing.T, tr *Tracker[O, T], expectedSteps int) {
	t.Helper()
	if actual := tr.StepCount(); actual != expectedSteps {
		t.Errorf("expected process %s to be stepped %d times, but was stepped %d times",
			tr.name, expectedSteps, actual)
	}
}

// AssertNotStepped verifies that a tracked process was never stepped.
func AssertNotStepped[O, T any](t *testing.T, tr *Tracker[O, T]) {
	t.Helper()
	AssertSteps(t, tr, 0)
}

// AssertSingleUse verifies that no tracked process value was stepped twice.
func AssertSingleUse[O, T any](t *testing.T, tr *Tracker[O, T]) {
	t.Helper()
	if reused := tr.Reused(); len(reused) > 0 {
		t.Errorf("expected process %s to be stepped at most once per value, reused steps: %v", tr.name, reused)
	}
}

// exportAll lets cmp look inside stepz values such as Either.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// AssertSequence runs p to its terminal and compares outputs and terminal.
func AssertSequence[O, T any](t *testing.T, p stepz.Process[O, T], wantOutputs []O, wantTerminal T) {
	t.Helper()
	outs, term := stepz.Collect(p)
	if diff := cmp.Diff(wantOutputs, outs, exportAll); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTerminal, term, exportAll); diff != "" {
		t.Errorf("terminal mismatch (-want +got):\n%s", diff)
	}
}

// StepN steps p exactly n times, failing the test if it terminates first, and
// returns the outputs together with the continuation.
func StepN[O, T any](t *testing.T, p stepz.Process[O, T], n int) ([]O, stepz.Process[O, T]) {
	t.Helper()
	outs := make([]O, 0, n)
	for i := 0; i < n; i++ {
		u := p.Step()
		next, out, ok := u.Continue()
		if !ok {
			term, _ := u.Terminal()
			t.Fatalf("expected %d outputs, process terminated after %d with %v", n, i, term)
			return outs, nil
		}
		outs = append(outs, out)
		p = next
	}
	return outs, p
}

// Chaos wraps a process and panics at random steps.
type Chaos[O, T any] struct {
	state *chaosState
	inner stepz.Process[O, T]
}

type chaosState struct {
	rng        *mathrand.Rand
	panicRate  float64
	mu         sync.Mutex
	totalSteps int64
	panics     int64
}

// ChaosConfig holds configuration for chaos testing.
type ChaosConfig struct {
	PanicRate float64 // Probability of panicking on a step (0.0 to 1.0)
	Seed      int64   // Random seed for reproducible chaos (0 for random seed)
}

// NewChaos creates a chaos process wrapping p. Continuations share the random source
// and statistics of the returned process.
func NewChaos[O, T any](p stepz.Process[O, T], config ChaosConfig) Chaos[O, T] {
	seed := config.Seed
	if seed == 0 {
		var seedBytes [8]byte
		if _, err := rand.Read(seedBytes[:]); err != nil {
			seed = time.Now().UnixNano()
		} else {
			for _, b := range seedBytes {
				seed = seed<<8 | int64(b)
			}
		}
	}
	return Chaos[O, T]{
		inner: p,
		state: &chaosState{
			panicRate: config.PanicRate,
			rng:       mathrand.New(mathrand.NewSource(seed)), //nolint:gosec // G404: Test utility uses weak RNG for deterministic chaos scenarios
		},
	}
}

// Step implements stepz.Process with panic injection.
func (c Chaos[O, T]) Step() stepz.Update[stepz.Process[O, T], O, T] {
	atomic.AddInt64(&c.state.totalSteps, 1)

	c.state.mu.Lock()
	fire := c.state.rng.Float64() < c.state.panicRate
	c.state.mu.Unlock()

	if fire {
		atomic.AddInt64(&c.state.panics, 1)
		panic("chaos process induced panic")
	}
	return stepz.MapState(c.inner.Step(), func(next stepz.Process[O, T]) stepz.Process[O, T] {
		return Chaos[O, T]{state: c.state, inner: next}
	})
}

// Stats returns statistics about chaos injection.
func (c Chaos[O, T]) Stats() ChaosStats {
	return ChaosStats{
		TotalSteps: atomic.LoadInt64(&c.state.totalSteps),
		Panics:     atomic.LoadInt64(&c.state.panics),
	}
}

// ChaosStats holds statistics about chaos injection.
type ChaosStats struct {
	TotalSteps int64
	Panics     int64
}

// PanicRate returns the actual panic rate observed.
func (s ChaosStats) PanicRate() float64 {
	if s.TotalSteps == 0 {
		return 0
	}
	return float64(s.Panics) / float64(s.TotalSteps)
}

// String returns a human-readable representation of the stats.
func (s ChaosStats) String() string {
	return fmt.Sprintf("ChaosStats{Steps: %d, Panics: %d (%.1f%%)}", s.TotalSteps, s.Panics, s.PanicRate()*100)
}

// ParallelTest runs a test function in parallel with multiple goroutines.
func ParallelTest(t *testing.T, goroutines int, testFunc func(int)) {
	t.Helper()

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}

	wg.Wait()
}
