// Package picker asks the desktop for a directory.
package picker

import (
	"context"
	"errors"
)

// ErrCancelled is returned when the user closes the chooser without picking anything.
var ErrCancelled = errors.New("directory selection cancelled")

// Picker opens a directory chooser and returns the absolute path picked.
type Picker interface {
	PickDirectory(ctx context.Context) (string, error)
}

// Func adapts a plain function to Picker.
type Func func(ctx context.Context) (string, error)

func (f Func) PickDirectory(ctx context.Context) (string, error) {
	return f(ctx)
}
