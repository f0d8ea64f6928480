// Package options implements the functional-option pattern shared by the
// decoders and adapters of this module.
package options

import (
	"errors"
	"fmt"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to the Option interface.
type Func[T any] struct {
	name string
	fn   func(T) error
}

func (f *Func[T]) apply(target T) error {
	if err := f.fn(target); err != nil {
		if f.name != "" {
			return fmt.Errorf("%s: %w", f.name, err)
		}

		return err
	}

	return nil
}

// New creates an option from a validating setter. name prefixes any error it returns.
func New[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{name: name, fn: fn}
}

// NoError creates an option from a setter that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply applies every option in order. All options run even when an earlier
// one fails; the failures are joined into the returned error.
func Apply[T any](target T, opts ...Option[T]) error {
	var failed []error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			failed = append(failed, err)
		}
	}

	return errors.Join(failed...)
}
