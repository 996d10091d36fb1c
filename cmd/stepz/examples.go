package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/stepz"
)

func emit[O any](env *Env) func(context.Context, O) error {
	return func(_ context.Context, o O) error {
		printOutput(env, o)
		return nil
	}
}

// ConcatExample runs two phases back to back.
type ConcatExample struct{}

func (*ConcatExample) Name() string { return "concat" }

func (*ConcatExample) Description() string {
	return "Run one process after another and pair their terminals"
}

func (*ConcatExample) Demo(ctx context.Context, env *Env) error {
	phase := func(name string, steps ...string) stepz.Process[string, string] {
		return stepz.NewMapTerminal[string, stepz.Unit, string](stepz.FromSlice(steps), func(stepz.Unit) string {
			return name + " complete"
		})
	}
	p := stepz.NewAndThen(phase("boot", "power on", "self test"), phase("load", "mount", "start services", "ready"))

	d := newDriver[string, stepz.Pair[string, string]](env, "concat")
	defer d.Close()

	term, err := d.Run(ctx, p, emit[string](env))
	if err != nil {
		return err
	}
	printTerminal(env, fmt.Sprintf("(%s, %s)", term.First, term.Second))
	return nil
}

// numbered labels each word with its position and stops at the word "stop".
type numbered struct {
	n int
}

func (w numbered) StepWith(word string) stepz.Update[stepz.Transducer[string, string, int], string, int] {
	if word == "stop" {
		return stepz.Terminate[stepz.Transducer[string, string, int], string](w.n)
	}
	return stepz.Next[stepz.Transducer[string, string, int], string, int](numbered{n: w.n + 1}, fmt.Sprintf("%d:%s", w.n+1, strings.ToUpper(word)))
}

// PipeExample feeds a source through a transducer.
type PipeExample struct{}

func (*PipeExample) Name() string { return "pipe" }

func (*PipeExample) Description() string {
	return "Feed a source through a transducer"
}

func (*PipeExample) Demo(ctx context.Context, env *Env) error {
	type term = stepz.PipeTerminal[stepz.Unit, string, string, stepz.Unit, int]
	d := newDriver[string, term](env, "pipe")
	defer d.Close()

	for _, words := range [][]string{
		{"alpha", "beta", "gamma"},
		{"alpha", "stop", "omega"},
	} {
		fmt.Fprintf(env.Out, "  source %v\n", words)
		t, err := d.Run(ctx, stepz.Feed[string, stepz.Unit, string, int](stepz.FromSlice(words), numbered{}), emit[string](env))
		if err != nil {
			return err
		}
		if t.UpstreamTerminated() {
			printTerminal(env, "source exhausted")
			continue
		}
		up, count, _ := t.Downstream()
		inFlight, _ := t.InFlight()
		rest, _ := stepz.Collect(stepz.Generate(up))
		printTerminal(env, fmt.Sprintf("consumer stopped after %d words on %q, unread %v", count, inFlight, rest))
	}
	return nil
}

// ErrorsExample stops at the first failed result.
type ErrorsExample struct{}

func (*ErrorsExample) Name() string { return "errors" }

func (*ErrorsExample) Description() string {
	return "Stop at the first failed result"
}

var errUnlucky = errors.New("4 is unlucky")

func (*ErrorsExample) Demo(ctx context.Context, env *Env) error {
	check := func(n int) stepz.Result[int] {
		if n == 4 {
			return stepz.Fail[int](errUnlucky)
		}
		return stepz.Ok(n)
	}
	results := stepz.NewMapOutput[int, stepz.Result[int], stepz.Unit](stepz.FromSlice([]int{1, 2, 3, 4, 5}), check)

	d := newDriver[int, stepz.Result[stepz.Unit]](env, "errors")
	defer d.Close()

	term, err := d.Run(ctx, stepz.NewTerminateOnErr[int, stepz.Unit](results), emit[int](env))
	if err != nil {
		return err
	}
	if _, failure := term.Get(); failure != nil {
		printTerminal(env, "failed: "+failure.Error())
		return nil
	}
	printTerminal(env, "all values passed")
	return nil
}

// ResidualExample stops at the first value that cannot continue.
type ResidualExample struct{}

func (*ResidualExample) Name() string { return "residual" }

func (*ResidualExample) Description() string {
	return "Stop at the first value that cannot continue"
}

func (*ResidualExample) Demo(ctx context.Context, env *Env) error {
	parse := func(s string) stepz.Either[int, string] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return stepz.Right[int](s)
		}
		return stepz.Left[int, string](n)
	}
	p := stepz.NewTerminateOnResidual(stepz.Process[string, stepz.Unit](stepz.FromSlice([]string{"10", "20", "thirty", "40"})), parse)

	d := newDriver[int, stepz.Either[stepz.Unit, string]](env, "residual")
	defer d.Close()

	term, err := d.Run(ctx, p, emit[int](env))
	if err != nil {
		return err
	}
	printTerminal(env, stepz.MatchEither(term,
		func(stepz.Unit) string { return "input exhausted" },
		func(r string) string { return fmt.Sprintf("stopped on %q", r) },
	))
	return nil
}

// ResumeExample interrupts a run and resumes it from the remainder.
type ResumeExample struct{}

func (*ResumeExample) Name() string { return "resume" }

func (*ResumeExample) Description() string {
	return "Interrupt a run and resume it from the remainder"
}

func (*ResumeExample) Demo(ctx context.Context, env *Env) error {
	const batch = 3

	var p stepz.Process[int, stepz.Pair[stepz.Unit, stepz.Unit]] = stepz.NewAndThen[int, stepz.Unit, stepz.Unit](
		stepz.FromSlice([]int{1, 2, 3, 4}),
		stepz.FromSlice([]int{5, 6, 7}),
	)

	d := newDriver[int, stepz.Pair[stepz.Unit, stepz.Unit]](env, "resume").WithMaxSteps(batch)
	defer d.Close()

	for run := 1; ; run++ {
		_, err := d.Run(ctx, p, emit[int](env))
		if err == nil {
			printTerminal(env, fmt.Sprintf("finished in %d runs", run))
			return nil
		}
		var runErr *stepz.Error[int, stepz.Pair[stepz.Unit, stepz.Unit]]
		if !errors.As(err, &runErr) || !errors.Is(err, stepz.ErrStepLimit) || !runErr.Resumable() {
			return err
		}
		fmt.Fprintf(env.Out, "  %s… paused after %d steps%s\n", colorGray, runErr.Steps, colorReset)
		p = runErr.Remaining
	}
}
