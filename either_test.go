package stepz

import (
	"errors"
	"testing"
)

func TestEither(t *testing.T) {
	t.Run("Left", func(t *testing.T) {
		e := Left[int, string](1)
		if !e.IsLeft() || e.IsRight() {
			t.Fatal("expected left")
		}
		if l, ok := e.GetLeft(); !ok || l != 1 {
			t.Errorf("expected left 1, got %d (ok=%v)", l, ok)
		}
		if r, ok := e.GetRight(); ok || r != "" {
			t.Errorf("expected no right, got %q (ok=%v)", r, ok)
		}
	})

	t.Run("Right", func(t *testing.T) {
		e := Right[int]("stop")
		if !e.IsRight() || e.IsLeft() {
			t.Fatal("expected right")
		}
		if r, ok := e.GetRight(); !ok || r != "stop" {
			t.Errorf("expected right stop, got %q (ok=%v)", r, ok)
		}
		if _, ok := e.GetLeft(); ok {
			t.Error("expected no left")
		}
	})

	t.Run("Match", func(t *testing.T) {
		size := func(e Either[int, string]) int {
			return MatchEither(e, func(l int) int { return l }, func(r string) int { return len(r) })
		}
		if got := size(Left[int, string](4)); got != 4 {
			t.Errorf("expected 4, got %d", got)
		}
		if got := size(Right[int]("abc")); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
	})

	t.Run("Map Only Touches One Side", func(t *testing.T) {
		double := func(x int) int { return x * 2 }
		if l, _ := MapLeft(Left[int, string](2), double).GetLeft(); l != 4 {
			t.Errorf("expected 4, got %d", l)
		}
		if r, _ := MapLeft(Right[int]("r"), double).GetRight(); r != "r" {
			t.Errorf("expected r, got %q", r)
		}
		if r, _ := MapRight(Right[string](3), double).GetRight(); r != 6 {
			t.Errorf("expected 6, got %d", r)
		}
		if l, _ := MapRight(Left[string, int]("l"), double).GetLeft(); l != "l" {
			t.Errorf("expected l, got %q", l)
		}
	})
}

func TestResult(t *testing.T) {
	v, err := Ok(5).Get()
	if err != nil || v != 5 {
		t.Errorf("expected (5, nil), got (%d, %v)", v, err)
	}

	boom := errors.New("boom")
	v, err = Fail[int](boom).Get()
	if !errors.Is(err, boom) || v != 0 {
		t.Errorf("expected (0, boom), got (%d, %v)", v, err)
	}
}
