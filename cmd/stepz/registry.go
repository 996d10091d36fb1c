package main

import (
	"context"
	"io"

	"github.com/zoobzio/stepz"
	"go.uber.org/zap"
)

// Example defines the interface that all demos must implement.
type Example interface {
	Name() string
	Description() string
	Demo(ctx context.Context, env *Env) error
}

// Env is what a demo needs from the command line.
type Env struct {
	Out    io.Writer
	Config stepz.Config
	Logger *zap.Logger
}

// getAllExamples returns all registered examples in a consistent order.
func getAllExamples() []Example {
	return []Example{
		&ConcatExample{},
		&PipeExample{},
		&ErrorsExample{},
		&ResidualExample{},
		&ResumeExample{},
	}
}

// getExampleByName returns a specific example by name.
func getExampleByName(name string) (Example, bool) {
	for _, ex := range getAllExamples() {
		if ex.Name() == name {
			return ex, true
		}
	}
	return nil, false
}

// newDriver builds a driver for a demo from the configured limits and logger.
func newDriver[O, T any](env *Env, name string) *stepz.Driver[O, T] {
	return stepz.NewDriver[O, T](name).
		WithMaxSteps(env.Config.MaxSteps).
		WithTimeout(env.Config.Timeout).
		WithLogger(env.Logger)
}
