package stepz

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOnce(t *testing.T) {
	t.Run("Runs Normally", func(t *testing.T) {
		outs, term := Collect[int, string](Once[int, string](countdown(3)))
		if diff := cmp.Diff([]int{2, 1, 0}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if term != "liftoff" {
			t.Errorf("expected liftoff, got %q", term)
		}
	})

	t.Run("Second Step Panics", func(t *testing.T) {
		p := Once[int, string](countdown(3))
		p.Step()
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrConsumed) {
				t.Errorf("expected ErrConsumed panic, got %v", r)
			}
		}()
		p.Step()
		t.Error("expected panic")
	})

	t.Run("TryStep Reports Reuse", func(t *testing.T) {
		p := Once[int, string](countdown(1))
		if _, err := p.TryStep(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Consumed() {
			t.Error("expected consumed after a step")
		}
		u, err := p.TryStep()
		if !errors.Is(err, ErrConsumed) {
			t.Errorf("expected ErrConsumed, got %v", err)
		}
		if next, _, _ := u.Continue(); next != nil {
			t.Error("a rejected step must not carry a continuation")
		}
	})

	t.Run("Concurrent Steps Have One Winner", func(t *testing.T) {
		p := Once[int, string](countdown(5))
		var wins, rejected atomic.Int32
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := p.TryStep(); err != nil {
					rejected.Add(1)
					return
				}
				wins.Add(1)
			}()
		}
		wg.Wait()
		if wins.Load() != 1 || rejected.Load() != 15 {
			t.Errorf("expected 1 winner and 15 rejections, got %d and %d", wins.Load(), rejected.Load())
		}
	})

	t.Run("Continuation Is Guarded", func(t *testing.T) {
		next, _, _ := Once[int, string](countdown(3)).Step().Continue()
		guarded, ok := next.(*Affine[int, string])
		if !ok {
			t.Fatalf("expected guarded continuation, got %T", next)
		}
		guarded.Step()
		if _, err := guarded.TryStep(); !errors.Is(err, ErrConsumed) {
			t.Errorf("expected ErrConsumed, got %v", err)
		}
	})

	t.Run("Discard", func(t *testing.T) {
		p := Once[int, string](countdown(3))
		p.Discard()
		if _, err := p.TryStep(); !errors.Is(err, ErrConsumed) {
			t.Errorf("expected ErrConsumed after discard, got %v", err)
		}
	})
}
