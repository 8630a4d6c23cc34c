// Package prompt defines the interactive question contract used by the
// create and migrate flows. A cancelled prompt is its own outcome, distinct
// from any answer value.
package prompt

import "errors"

// ErrNoDefault is returned by non-interactive prompters when a question has
// no acceptable default answer.
var ErrNoDefault = errors.New("prompt has no default answer")

// Answer is either an answered value or a cancellation.
type Answer[T any] struct {
	value     T
	cancelled bool
}

// Answered wraps a value the user chose.
func Answered[T any](v T) Answer[T] {
	return Answer[T]{value: v}
}

// Cancelled is the answer to a prompt the user aborted.
func Cancelled[T any]() Answer[T] {
	return Answer[T]{cancelled: true}
}

// Get returns the value and true, or the zero value and false when the
// prompt was cancelled.
func (a Answer[T]) Get() (T, bool) {
	return a.value, !a.cancelled
}

// IsCancelled reports whether the prompt was cancelled.
func (a Answer[T]) IsCancelled() bool {
	return a.cancelled
}

// Or returns the value, or fallback when cancelled.
func (a Answer[T]) Or(fallback T) T {
	if a.cancelled {
		return fallback
	}
	return a.value
}

// Option is one choice of a Select prompt.
type Option struct {
	Value string
	Label string
	Hint  string
}

// Validator rejects a text answer with a user-facing error.
type Validator func(string) error

// Prompter asks the user questions. The returned error is reserved for I/O
// failures; a user abort is reported as a cancelled Answer.
type Prompter interface {
	// Confirm asks a yes/no question. def is preselected.
	Confirm(message string, def bool) (Answer[bool], error)
	// Select asks for one of options and returns its Value. def is the
	// preselected Value.
	Select(message string, options []Option, def string) (Answer[string], error)
	// Text asks for free text. validate may be nil. def is used when the
	// user submits an empty line.
	Text(message, def string, validate Validator) (Answer[string], error)
}

// Confirmed reports whether a confirm prompt was answered yes. A cancelled
// prompt counts as no.
func Confirmed(a Answer[bool]) bool {
	v, ok := a.Get()
	return ok && v
}

// IndexOf returns the index of the option with value, or -1.
func IndexOf(options []Option, value string) int {
	for i, o := range options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Display returns the label, falling back to the value.
func (o Option) Display() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}
