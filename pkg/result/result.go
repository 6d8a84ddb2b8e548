// Package result implements a tagged outcome value.
//
// A Result is either unset, a success carrying a value, or a failure carrying an error.
// It lets an outcome be stored and queried later,
// instead of only being observable at the call site that received the error.
package result

import (
	"fmt"

	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrUnset is returned by Result.Get when the Result holds no outcome yet.
	ErrUnset errorkit.Error = "result is not set"
	// ErrNilError replaces a nil error given to Err.
	ErrNilError errorkit.Error = "failure without an error value"
)

type kind int

const (
	unset kind = iota
	success
	failure
)

// Result is a tagged union of a success value and a failure error.
// The zero value is an unset Result.
type Result[T any] struct {
	kind  kind
	value T
	err   error
}

// Ok makes a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{kind: success, value: v}
}

// Err makes a failed Result.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = ErrNilError
	}
	return Result[T]{kind: failure, err: err}
}

// Of converts a conventional (value, error) pair into a Result.
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsSet() bool { return r.kind != unset }

func (r Result[T]) IsOK() bool { return r.kind == success }

func (r Result[T]) IsErr() bool { return r.kind == failure }

// Value returns the success value, and reports whether the Result is a success.
func (r Result[T]) Value() (T, bool) {
	if r.kind != success {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the failure error, or nil when the Result is not a failure.
func (r Result[T]) Err() error {
	if r.kind != failure {
		return nil
	}
	return r.err
}

// Get unwraps the Result into the conventional (value, error) pair.
func (r Result[T]) Get() (T, error) {
	switch r.kind {
	case success:
		return r.value, nil
	case failure:
		var zero T
		return zero, r.err
	default:
		var zero T
		return zero, ErrUnset
	}
}

func (r Result[T]) String() string {
	switch r.kind {
	case success:
		return fmt.Sprintf("Ok(%v)", r.value)
	case failure:
		return fmt.Sprintf("Err(%s)", r.err.Error())
	default:
		return "Unset"
	}
}
